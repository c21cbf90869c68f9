package calculator

import (
	"errors"

	"gonum.org/v1/gonum/interp"
)

// 分段线性插值，超出采样范围时沿首/末段线性外推
type Linear struct {
	xs, ys []float64
	pl     interp.PiecewiseLinear
}

// xs 需严格递增
func NewLinear(xs, ys []float64) (*Linear, error) {
	if len(xs) != len(ys) {
		return nil, errors.New("interp: xs and ys differ in length")
	}
	if len(xs) < 2 {
		return nil, errors.New("interp: need at least 2 points")
	}
	l := &Linear{
		xs: append([]float64(nil), xs...),
		ys: append([]float64(nil), ys...),
	}
	if err := l.pl.Fit(l.xs, l.ys); err != nil {
		return nil, err
	}
	return l, nil
}

func (l *Linear) Eval(x float64) float64 {
	n := len(l.xs)
	if x < l.xs[0] {
		return extrapolate(l.xs[0], l.ys[0], l.xs[1], l.ys[1], x)
	}
	if x > l.xs[n-1] {
		return extrapolate(l.xs[n-2], l.ys[n-2], l.xs[n-1], l.ys[n-1], x)
	}
	return l.pl.Predict(x)
}

// 批量求值，可传入 out 复用内存
func (l *Linear) EvalAll(xs []float64, out ...[]float64) []float64 {
	var dst []float64
	if len(out) > 0 && len(out[0]) >= len(xs) {
		dst = out[0][:len(xs)]
	} else {
		dst = make([]float64, len(xs))
	}
	for i, x := range xs {
		dst[i] = l.Eval(x)
	}
	return dst
}

// 采样区间
func (l *Linear) Domain() (lo, hi float64) {
	return l.xs[0], l.xs[len(l.xs)-1]
}

func extrapolate(x0, y0, x1, y1, x float64) float64 {
	return y0 + (y1-y0)/(x1-x0)*(x-x0)
}
