package calculator

import (
	"math"
	"sort"

	"bprime/model"

	log "github.com/sirupsen/logrus"
)

// 扫描值匹配容差，相对于 Bg 网格步长
const sweepToleranceFactor = 1e-3

// 某个 (压力, 温度) 的重采样结果，与 GridSpec.BlowingRates 对齐
type Resampled struct {
	AblationRate []float64
	WallEnthalpy []float64 // MJ/kg
	Warnings     []Warning
}

// 分支合并引擎
// 原始行按压力预先分块，之后按数值（带容差）定位温度与扫描值
type Engine struct {
	grid     model.GridSpec
	tempTol  float64
	sweepTol float64

	// [分支][压力下标] -> 该压力下的所有行
	blocks [2][][]model.RawBranchRow
}

func NewEngine(grid model.GridSpec, pos, neg *model.RawBranchTable, opts Options) (*Engine, error) {
	if pos.Branch != model.Positive {
		return nil, &BranchTagError{Want: model.Positive, Got: pos.Branch}
	}
	if neg.Branch != model.Negative {
		return nil, &BranchTagError{Want: model.Negative, Got: neg.Branch}
	}
	e := &Engine{
		grid:     grid,
		tempTol:  opts.TemperatureTolerance,
		sweepTol: sweepToleranceFactor * (grid.BlowingRates[1] - grid.BlowingRates[0]),
	}
	for _, table := range []*model.RawBranchTable{pos, neg} {
		e.blocks[table.Branch] = splitByPressure(grid.Pressures, table, opts.PressureTolerance)
	}
	return e, nil
}

// 按压力分块，求解器输出的压力单位为 bar
func splitByPressure(pressures []float64, table *model.RawBranchTable, relTol float64) [][]model.RawBranchRow {
	blocks := make([][]model.RawBranchRow, len(pressures))
	unmatched := 0
	for _, row := range table.Rows {
		k := -1
		for idx, p := range pressures {
			bar := p * model.PascalToBar
			if math.Abs(row.Pressure-bar) <= relTol*bar {
				k = idx
				break
			}
		}
		if k < 0 {
			unmatched++
			continue
		}
		blocks[k] = append(blocks[k], row)
	}
	if unmatched > 0 {
		log.WithFields(log.Fields{
			"branch": table.Branch.String(),
			"rows":   unmatched,
		}).Warn("忽略不在压力网格上的行")
	}
	return blocks
}

// 取出某分支在 (压力 k, 温度 t) 下的行，按分支扫描值排列，每个扫描值必须恰好匹配一行
func (e *Engine) slice(b model.Branch, k int, t float64) ([]model.RawBranchRow, error) {
	var candidates []model.RawBranchRow
	for _, row := range e.blocks[b][k] {
		if math.Abs(row.Temperature-t) <= e.tempTol {
			candidates = append(candidates, row)
		}
	}
	rates := e.grid.BranchRates(b)
	rows := make([]model.RawBranchRow, len(rates))
	for j, s := range rates {
		matches := 0
		for _, row := range candidates {
			if math.Abs(row.SweepParam-s) <= e.sweepTol {
				rows[j] = row
				matches++
			}
		}
		if matches != 1 {
			mismatch := &GridMismatchError{
				Branch:      b,
				Pressure:    e.grid.Pressures[k],
				Temperature: t,
				Sweep:       s,
				Matches:     matches,
			}
			if len(candidates) == 0 {
				mismatch.Reason = "temperature not found"
			}
			return nil, mismatch
		}
	}
	return rows, nil
}

// 合并两个分支并重采样到 Bg 网格
func (e *Engine) Reconcile(k, i int) (*Resampled, error) {
	t := e.grid.Temperatures[i]
	pos, err := e.slice(model.Positive, k, t)
	if err != nil {
		return nil, err
	}
	neg, err := e.slice(model.Negative, k, t)
	if err != nil {
		return nil, err
	}
	res, err := Resample(Merge(pos, neg), e.grid.BlowingRates)
	if err != nil {
		return nil, err
	}
	for w := range res.Warnings {
		res.Warnings[w].Pressure = e.grid.Pressures[k]
		res.Warnings[w].Temperature = t
	}
	return res, nil
}

// 在合并曲线上构建 Bg->Bc、Bg->Hw 两个插值函数，并在 rates 上求值
func Resample(curve model.MergedCurve, rates []float64) (*Resampled, error) {
	res := &Resampled{}
	if !curve.Monotonic() {
		curve = sortCurve(curve)
		lo, hi := curve[0].Bg, curve[len(curve)-1].Bg
		res.Warnings = append(res.Warnings, Warning{Kind: KindNonMonotonic, Count: len(curve), Lo: lo, Hi: hi})
	}

	xs := make([]float64, len(curve))
	bc := make([]float64, len(curve))
	hw := make([]float64, len(curve))
	for j, p := range curve {
		xs[j], bc[j], hw[j] = p.Bg, p.AblationRate, p.WallEnthalpy
	}
	fbc, err := NewLinear(xs, bc)
	if err != nil {
		return nil, err
	}
	fhw, err := NewLinear(xs, hw)
	if err != nil {
		return nil, err
	}

	res.AblationRate = fbc.EvalAll(rates)
	res.WallEnthalpy = fhw.EvalAll(rates)

	lo, hi := fbc.Domain()
	outside := 0
	for _, bg := range rates {
		if bg < lo || bg > hi {
			outside++
		}
	}
	if outside > 0 {
		res.Warnings = append(res.Warnings, Warning{Kind: KindExtrapolation, Count: outside, Lo: lo, Hi: hi})
	}
	return res, nil
}

// 按 Bg 稳定排序，相同 Bg 只保留第一次出现的点
func sortCurve(curve model.MergedCurve) model.MergedCurve {
	sorted := append(model.MergedCurve(nil), curve...)
	sort.SliceStable(sorted, func(a, b int) bool {
		return sorted[a].Bg < sorted[b].Bg
	})
	out := sorted[:1]
	for _, p := range sorted[1:] {
		if p.Bg != out[len(out)-1].Bg {
			out = append(out, p)
		}
	}
	return out
}
