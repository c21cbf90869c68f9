package pipeline

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"bprime/calculator"
	"bprime/grid"
	"bprime/model"
	"bprime/solver"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 按请求生成 Bc = Bg + 2、Hw = 10 MJ/kg 的分支数据
type fakeInvoker struct {
	calls []solver.Request
	fail  model.Branch
	err   error
}

func (f *fakeInvoker) Invoke(ctx context.Context, req solver.Request) (*model.RawBranchTable, error) {
	f.calls = append(f.calls, req)
	if f.err != nil && req.Branch == f.fail {
		return nil, f.err
	}
	table := &model.RawBranchTable{Branch: req.Branch}
	g, err := grid.FromRanges(req.Temperature, req.Pressure, model.Range{Start: -1, Step: 1, End: 1})
	if err != nil {
		return nil, err
	}
	for _, p := range g.Pressures {
		for _, s := range g.BranchRates(req.Branch) {
			for _, t := range g.Temperatures {
				bg := s
				if req.Branch == model.Negative {
					bg = (s - 2) / 2
				}
				table.Rows = append(table.Rows, model.RawBranchRow{
					Pressure:     p * model.PascalToBar,
					SweepParam:   s,
					Temperature:  t,
					AblationRate: bg + 2,
					WallEnthalpy: 10,
				})
			}
		}
	}
	return table, nil
}

func testJob(t *testing.T) Job {
	t.Helper()
	g, err := grid.New([]float64{300, 400}, []float64{1e5}, []float64{-1, 0, 1})
	require.NoError(t, err)
	return NewJob(g, solver.Mixture{Name: "tacot26.xml", BoundaryLayer: "edge", Pyrolysis: "pyro"})
}

func TestRun(t *testing.T) {
	job := testJob(t)
	inv := &fakeInvoker{}
	p := New(inv, calculator.NewAssembler(calculator.DefaultOptions()))

	res, err := p.Run(context.Background(), job)
	require.NoError(t, err)

	require.Len(t, inv.calls, 2)
	assert.Equal(t, model.Positive, inv.calls[0].Branch)
	assert.Equal(t, model.Negative, inv.calls[1].Branch)
	assert.Equal(t, model.Range{Start: 0, Step: 1, End: 1}, inv.calls[0].BlowingRate)
	assert.Equal(t, model.Range{Start: -1, Step: 1, End: 0}, inv.calls[1].BlowingRate)

	require.NotNil(t, res.Branches.Positive)
	require.NotNil(t, res.Branches.Negative)
	assert.Equal(t, 6, res.Table.Len())
	assert.Empty(t, res.Table.Missing())
	for _, c := range res.Table.Cells() {
		assert.InDelta(t, c.Bg+2, c.AblationRate, 1e-12)
		assert.Equal(t, 10000.0, c.WallEnthalpy)
	}
}

func TestJobIDs(t *testing.T) {
	a, b := testJob(t), testJob(t)
	assert.NotEmpty(t, a.ID)
	assert.NotEqual(t, a.ID, b.ID)
}

func TestFetchStopsOnPositiveFailure(t *testing.T) {
	boom := errors.New("boom")
	inv := &fakeInvoker{fail: model.Positive, err: boom}
	p := New(inv, calculator.NewAssembler(calculator.DefaultOptions()))

	res, err := p.Run(context.Background(), testJob(t))
	assert.ErrorIs(t, err, boom)
	assert.Nil(t, res)
	assert.Len(t, inv.calls, 1)
}

func TestFetchNegativeFailure(t *testing.T) {
	fail := &solver.SolverInvocationError{Branch: model.Negative, Binary: "solver", Err: errors.New("exit status 1")}
	inv := &fakeInvoker{fail: model.Negative, err: fail}
	p := New(inv, calculator.NewAssembler(calculator.DefaultOptions()))

	res, err := p.Run(context.Background(), testJob(t))
	assert.Nil(t, res)
	var target *solver.SolverInvocationError
	require.ErrorAs(t, err, &target)
	assert.Equal(t, model.Negative, target.Branch)
	assert.Len(t, inv.calls, 2)
}

func TestAssembleMismatch(t *testing.T) {
	job := testJob(t)
	p := New(&fakeInvoker{}, calculator.NewAssembler(calculator.DefaultOptions()))
	b, err := p.Fetch(context.Background(), job)
	require.NoError(t, err)

	b.Negative.Rows = b.Negative.Rows[:1]
	_, err = p.Assemble(context.Background(), job, b)
	var target *calculator.GridMismatchError
	assert.ErrorAs(t, err, &target)
}

func TestLogReader(t *testing.T) {
	dir := t.TempDir()
	pos := filepath.Join(dir, "bprime_positive.log")
	neg := filepath.Join(dir, "bprime_negative.log")
	require.NoError(t, os.WriteFile(pos, []byte("P B T Bc Hw\n"+
		"1 0 300 2 10\n1 0 400 2 10\n1 1 300 3 10\n1 1 400 3 10\n"), 0o644))
	require.NoError(t, os.WriteFile(neg, []byte("P B T Bc Hw\n"+
		"1 -1 300 0.5 10\n1 -1 400 0.5 10\n1 0 300 1 10\n1 0 400 1 10\n"), 0o644))

	p := New(LogReader{Positive: pos, Negative: neg}, calculator.NewAssembler(calculator.DefaultOptions()))
	res, err := p.Run(context.Background(), testJob(t))
	require.NoError(t, err)
	assert.Equal(t, model.Positive, res.Branches.Positive.Branch)
	assert.Equal(t, model.Negative, res.Branches.Negative.Branch)
	// Bg = -1 在负分支 Bg = -1.5 与正分支 Bg = 0 之间插值
	assert.InDelta(t, 1.0, res.Table.At(0, 0, 0).AblationRate, 1e-12)
}

func TestLogReaderMissingFile(t *testing.T) {
	r := LogReader{Positive: filepath.Join(t.TempDir(), "nope.log")}
	_, err := r.Invoke(context.Background(), solver.Request{Branch: model.Positive})
	var target *solver.SolverInvocationError
	assert.ErrorAs(t, err, &target)
}
