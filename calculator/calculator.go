// Package calculator reconciles the two solver branches into one B' table:
// it converts each branch's sweep parameter to the normalized blowing rate,
// joins the branches at their shared midpoint, and resamples ablation rate
// and wall enthalpy onto the uniform (pressure, Bg, temperature) grid.
package calculator

import (
	"context"

	"bprime/model"
)

// calculator 的接口定义
type Calculator interface {
	// 由两个分支的原始表格组装最终表格
	Assemble(ctx context.Context, grid model.GridSpec, pos, neg *model.RawBranchTable) (*model.FinalTable, *Diagnostics, error)
}

// 计算参数
type Options struct {
	Workers              int
	TemperatureTolerance float64 // 绝对容差，K
	PressureTolerance    float64 // 相对容差
}

func DefaultOptions() Options {
	return Options{
		Workers:              4,
		TemperatureTolerance: 1e-10,
		PressureTolerance:    1e-4,
	}
}
