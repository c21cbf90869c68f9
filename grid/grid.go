// Package grid builds the uniform temperature, pressure and blowing-rate
// sequences a B' table is sampled on, and the per-branch ranges handed to
// the equilibrium solver.
package grid

import (
	"fmt"
	"math"

	"bprime/model"

	"gonum.org/v1/gonum/floats"
)

// 与求解器循环条件 x < end + 1e-6 保持一致
const loopSlack = 1e-6

// 判断等差/等比的相对容差
const spacingTolerance = 1e-6

// 单压力网格时交给求解器的占位比值，求解器循环 P *= ratio 需要大于 1
const singlePressureRatio = 10.0

type InvalidGridError struct {
	Axis   string
	Reason string
}

func (e *InvalidGridError) Error() string {
	return fmt.Sprintf("invalid %s grid: %s", e.Axis, e.Reason)
}

func invalid(axis, format string, args ...interface{}) error {
	return &InvalidGridError{Axis: axis, Reason: fmt.Sprintf(format, args...)}
}

// 根据 start:step:end 生成网格，压力的 step 为比值
func FromRanges(t, p, b model.Range) (model.GridSpec, error) {
	temps, err := linear("temperature", t)
	if err != nil {
		return model.GridSpec{}, err
	}
	pressures, err := logarithmic("pressure", p)
	if err != nil {
		return model.GridSpec{}, err
	}
	rates, err := linear("blowing rate", b)
	if err != nil {
		return model.GridSpec{}, err
	}
	return New(temps, pressures, rates)
}

func linear(axis string, r model.Range) ([]float64, error) {
	if r.Step == 0 || r.Start == r.End {
		return []float64{r.Start}, nil
	}
	if r.Step < 0 || r.End < r.Start {
		return nil, invalid(axis, "range %s is not increasing", r)
	}
	n := int(math.Floor((r.End-r.Start)/r.Step+loopSlack)) + 1
	if n < 2 {
		return []float64{r.Start}, nil
	}
	dst := make([]float64, n)
	floats.Span(dst, r.Start, r.Start+r.Step*float64(n-1))
	return dst, nil
}

func logarithmic(axis string, r model.Range) ([]float64, error) {
	if r.Start <= 0 {
		return nil, invalid(axis, "range %s must start above zero", r)
	}
	if r.Step == 0 || r.Start == r.End {
		return []float64{r.Start}, nil
	}
	if r.Step <= 1 || r.End < r.Start {
		return nil, invalid(axis, "range %s needs a ratio above 1", r)
	}
	n := int(math.Floor(math.Log(r.End/r.Start)/math.Log(r.Step)+loopSlack)) + 1
	if n < 2 {
		return []float64{r.Start}, nil
	}
	last := r.Start * math.Pow(r.Step, float64(n-1))
	dst := make([]float64, n)
	floats.LogSpan(dst, r.Start, last)
	// 端点取精确值
	dst[0], dst[n-1] = r.Start, last
	return dst, nil
}

// 校验显式给出的网格
func New(temps, pressures, rates []float64) (model.GridSpec, error) {
	if err := checkLinear("temperature", temps); err != nil {
		return model.GridSpec{}, err
	}
	if err := checkRatio("pressure", pressures); err != nil {
		return model.GridSpec{}, err
	}
	rates, err := checkRates(rates)
	if err != nil {
		return model.GridSpec{}, err
	}
	return model.GridSpec{
		Temperatures: append([]float64(nil), temps...),
		Pressures:    append([]float64(nil), pressures...),
		BlowingRates: rates,
	}, nil
}

func checkLinear(axis string, xs []float64) error {
	if len(xs) == 0 {
		return invalid(axis, "no points")
	}
	if len(xs) == 1 {
		return nil
	}
	step := xs[1] - xs[0]
	if step <= 0 {
		return invalid(axis, "values must be strictly increasing")
	}
	for i := 2; i < len(xs); i++ {
		d := xs[i] - xs[i-1]
		if math.Abs(d-step) > spacingTolerance*step {
			return invalid(axis, "step %g at index %d differs from %g", d, i, step)
		}
	}
	return nil
}

func checkRatio(axis string, xs []float64) error {
	if len(xs) == 0 {
		return invalid(axis, "no points")
	}
	if xs[0] <= 0 {
		return invalid(axis, "values must be positive")
	}
	if len(xs) == 1 {
		return nil
	}
	ratio := xs[1] / xs[0]
	if ratio <= 1 {
		return invalid(axis, "values must be strictly increasing")
	}
	for i := 2; i < len(xs); i++ {
		r := xs[i] / xs[i-1]
		if math.Abs(r-ratio) > spacingTolerance*ratio {
			return invalid(axis, "ratio %g at index %d differs from %g", r, i, ratio)
		}
	}
	return nil
}

func checkRates(xs []float64) ([]float64, error) {
	const axis = "blowing rate"
	if len(xs) < 3 {
		return nil, invalid(axis, "need at least 3 points, got %d", len(xs))
	}
	if len(xs)%2 == 0 {
		return nil, invalid(axis, "need an odd number of points so both branches share the midpoint, got %d", len(xs))
	}
	if err := checkLinear(axis, xs); err != nil {
		return nil, err
	}
	step := xs[1] - xs[0]
	tol := spacingTolerance * step
	n := len(xs)
	for i := 0; i < n/2; i++ {
		if math.Abs(xs[i]+xs[n-1-i]) > tol {
			return nil, invalid(axis, "values are not symmetric about zero (%g, %g)", xs[i], xs[n-1-i])
		}
	}
	mid := n / 2
	if math.Abs(xs[mid]) > tol {
		return nil, invalid(axis, "midpoint %g is not zero", xs[mid])
	}
	out := append([]float64(nil), xs...)
	out[mid] = 0
	return out, nil
}

// 某一分支交给求解器的温度、压力、扫描范围
func SolverRanges(g model.GridSpec, b model.Branch) (t, p, bg model.Range) {
	ts := g.Temperatures
	t = model.Range{Start: ts[0], Step: 1, End: ts[len(ts)-1]}
	if len(ts) > 1 {
		t.Step = ts[1] - ts[0]
	}

	ps := g.Pressures
	p = model.Range{Start: ps[0], Step: singlePressureRatio, End: ps[len(ps)-1]}
	if len(ps) > 1 {
		p.Step = ps[1] / ps[0]
	}

	rates := g.BranchRates(b)
	bg = model.Range{Start: rates[0], Step: rates[1] - rates[0], End: rates[len(rates)-1]}
	return t, p, bg
}
