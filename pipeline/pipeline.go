// Package pipeline runs the two stages of a B' table build: fetch both
// solver branches, then reconcile and assemble them onto the grid.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"bprime/calculator"
	"bprime/grid"
	"bprime/model"
	"bprime/solver"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// 求解器调用，solver.Runner 与 LogReader 均实现此接口
type Invoker interface {
	Invoke(ctx context.Context, req solver.Request) (*model.RawBranchTable, error)
}

// 一次建表任务
type Job struct {
	ID      string
	Grid    model.GridSpec
	Mixture solver.Mixture
}

func NewJob(g model.GridSpec, mix solver.Mixture) Job {
	return Job{ID: uuid.NewString(), Grid: g, Mixture: mix}
}

// 两阶段之间的中间结果
type Branches struct {
	Positive *model.RawBranchTable
	Negative *model.RawBranchTable
}

type Result struct {
	Table       *model.FinalTable
	Diagnostics *calculator.Diagnostics
	Branches    *Branches
}

type Pipeline struct {
	invoker    Invoker
	calculator calculator.Calculator
}

func New(invoker Invoker, calc calculator.Calculator) *Pipeline {
	return &Pipeline{invoker: invoker, calculator: calc}
}

// 第一阶段: 先正分支后负分支，任一失败立即返回
func (p *Pipeline) Fetch(ctx context.Context, job Job) (*Branches, error) {
	b := &Branches{}
	for _, branch := range []model.Branch{model.Positive, model.Negative} {
		start := time.Now()
		tr, pr, br := grid.SolverRanges(job.Grid, branch)
		req := solver.Request{
			Branch:      branch,
			Mixture:     job.Mixture,
			Temperature: tr,
			Pressure:    pr,
			BlowingRate: br,
		}
		table, err := p.invoker.Invoke(ctx, req)
		if err != nil {
			return nil, fmt.Errorf("fetch %s branch: %w", branch, err)
		}
		log.WithFields(log.Fields{
			"run":    job.ID,
			"branch": branch.String(),
			"rows":   table.Len(),
			"cost":   time.Since(start).String(),
		}).Info("分支数据获取完成")
		if branch == model.Positive {
			b.Positive = table
		} else {
			b.Negative = table
		}
	}
	return b, nil
}

// 第二阶段
func (p *Pipeline) Assemble(ctx context.Context, job Job, b *Branches) (*Result, error) {
	table, diag, err := p.calculator.Assemble(ctx, job.Grid, b.Positive, b.Negative)
	if err != nil {
		return nil, fmt.Errorf("assemble run %s: %w", job.ID, err)
	}
	return &Result{Table: table, Diagnostics: diag, Branches: b}, nil
}

func (p *Pipeline) Run(ctx context.Context, job Job) (*Result, error) {
	log.WithFields(log.Fields{
		"run":     job.ID,
		"mixture": job.Mixture.Name,
		"cells":   job.Grid.Cells(),
	}).Info("开始生成 B' 表")
	b, err := p.Fetch(ctx, job)
	if err != nil {
		return nil, err
	}
	return p.Assemble(ctx, job, b)
}
