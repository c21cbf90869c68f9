package calculator

import (
	"context"
	"time"

	"bprime/model"

	log "github.com/sirupsen/logrus"
)

var _ Calculator = (*Assembler)(nil)

// 遍历 (压力, 温度)，调用合并引擎并写入最终表格
type Assembler struct {
	opts Options
}

func NewAssembler(opts Options) *Assembler {
	if opts.Workers < 1 {
		opts.Workers = 1
	}
	return &Assembler{opts: opts}
}

func (a *Assembler) Assemble(ctx context.Context, grid model.GridSpec, pos, neg *model.RawBranchTable) (*model.FinalTable, *Diagnostics, error) {
	start := time.Now()
	engine, err := NewEngine(grid, pos, neg, a.opts)
	if err != nil {
		return nil, nil, err
	}

	table := model.NewFinalTable(grid)
	nT := len(grid.Temperatures)
	total := len(grid.Pressures) * nT
	// 每个 (压力, 温度) 独占一个槽位
	warnings := make([][]Warning, total)

	e := newExecutor(a.opts.Workers)
	err = e.run(ctx, total, func(t task) error {
		for q := t.start; q < t.end; q++ {
			k, i := q/nT, q%nT
			res, err := engine.Reconcile(k, i)
			if err != nil {
				return err
			}
			store(table, grid, k, i, res)
			warnings[q] = res.Warnings
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	if missing := table.Missing(); len(missing) > 0 {
		return nil, nil, &IncompleteTableError{Missing: len(missing), Total: table.Len()}
	}

	diagnostics := &Diagnostics{}
	for _, w := range warnings {
		diagnostics.Warnings = append(diagnostics.Warnings, w...)
	}
	log.WithFields(log.Fields{
		"pairs":         total,
		"cells":         table.Len(),
		"workers":       a.opts.Workers,
		"extrapolation": diagnostics.Count(KindExtrapolation),
		"nonMonotonic":  diagnostics.Count(KindNonMonotonic),
		"cost":          time.Since(start).String(),
	}).Info("B' 表组装完成")
	return table, diagnostics, nil
}

// 单位换算: 压力 Pa -> bar，壁面焓 MJ/kg -> kJ/kg
func store(table *model.FinalTable, grid model.GridSpec, k, i int, res *Resampled) {
	p := grid.Pressures[k] * model.PascalToBar
	t := grid.Temperatures[i]
	for j, bg := range grid.BlowingRates {
		table.Set(k, j, i, model.OutputCell{
			Pressure:     p,
			Bg:           bg,
			Temperature:  t,
			AblationRate: res.AblationRate[j],
			WallEnthalpy: res.WallEnthalpy[j] * model.MegaToKilo,
		})
	}
}
