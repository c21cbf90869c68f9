package calculator

import (
	"testing"

	"bprime/grid"
	"bprime/model"

	"github.com/stretchr/testify/require"
)

// 线性曲线 Bc(Bg) = a*Bg + c，Hw(Bg) = h0 + h1*Bg (MJ/kg)
type linearCurve struct {
	a, c   float64
	h0, h1 float64
}

func (lc linearCurve) bc(bg float64) float64 { return lc.a*bg + lc.c }
func (lc linearCurve) hw(bg float64) float64 { return lc.h0 + lc.h1*bg }

// 负分支扫描值为 Bf，Bg = Bf - Bc(Bg)
func (lc linearCurve) bgOfBf(bf float64) float64 { return (bf - lc.c) / (1 + lc.a) }

// 按求解器的嵌套顺序 压力 -> Bg -> 温度 生成两个分支的原始表格
func synthesize(g model.GridSpec, lc linearCurve) (pos, neg *model.RawBranchTable) {
	pos = &model.RawBranchTable{Branch: model.Positive}
	neg = &model.RawBranchTable{Branch: model.Negative}
	for _, p := range g.Pressures {
		for _, s := range g.PositiveBranch() {
			for _, t := range g.Temperatures {
				pos.Rows = append(pos.Rows, model.RawBranchRow{
					Pressure:     p * model.PascalToBar,
					SweepParam:   s,
					Temperature:  t,
					AblationRate: lc.bc(s),
					WallEnthalpy: lc.hw(s),
				})
			}
		}
		for _, s := range g.NegativeBranch() {
			bg := lc.bgOfBf(s)
			for _, t := range g.Temperatures {
				neg.Rows = append(neg.Rows, model.RawBranchRow{
					Pressure:     p * model.PascalToBar,
					SweepParam:   s,
					Temperature:  t,
					AblationRate: lc.bc(bg),
					WallEnthalpy: lc.hw(bg),
				})
			}
		}
	}
	return pos, neg
}

func mustGrid(t *testing.T, temps, pressures, rates []float64) model.GridSpec {
	t.Helper()
	g, err := grid.New(temps, pressures, rates)
	require.NoError(t, err)
	return g
}

func sequential() Options {
	opts := DefaultOptions()
	opts.Workers = 1
	return opts
}
