package model

import "fmt"

// 求解器的两种扫描模式
// Positive: 热解气体注入，扫描参数即 Bg
// Negative: 边界层气体抽吸，扫描参数为总质量通量 Bf，Bg = Bf - Bc
type Branch int

const (
	Positive Branch = iota
	Negative
)

func (b Branch) String() string {
	switch b {
	case Positive:
		return "positive"
	case Negative:
		return "negative"
	default:
		return fmt.Sprintf("branch(%d)", int(b))
	}
}

// 求解器输出的一行
// Pressure 为求解器打印的 bar 值，WallEnthalpy 单位 MJ/kg
type RawBranchRow struct {
	Pressure     float64
	SweepParam   float64
	Temperature  float64
	AblationRate float64
	WallEnthalpy float64
}

// 带分支标记的原始表格
type RawBranchTable struct {
	Branch Branch
	Rows   []RawBranchRow
}

func (t *RawBranchTable) Len() int {
	return len(t.Rows)
}

// 合并曲线上的一个点
// Bf 为总质量通量，最终表格不使用
type CurvePoint struct {
	Bg           float64
	Bf           float64
	AblationRate float64
	WallEnthalpy float64
}

// 某个 (压力, 温度) 下按扫描顺序拼接的两支曲线
type MergedCurve []CurvePoint

// 是否严格递增
func (c MergedCurve) Monotonic() bool {
	for i := 1; i < len(c); i++ {
		if c[i].Bg <= c[i-1].Bg {
			return false
		}
	}
	return true
}
