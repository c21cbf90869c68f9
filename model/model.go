package model

import (
	"fmt"
	"strconv"
)

// 扫描范围 start:step:end，压力的 step 为相邻两点的比值
type Range struct {
	Start float64 `json:"start" yaml:"start"`
	Step  float64 `json:"step" yaml:"step"`
	End   float64 `json:"end" yaml:"end"`
}

func (r Range) String() string {
	return fmt.Sprintf("%s:%s:%s", formatFloat(r.Start), formatFloat(r.Step), formatFloat(r.End))
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// 网格定义
// Temperatures 单位 K，Pressures 单位 Pa，BlowingRates 关于 0 对称，
// 中点 BlowingRates[len/2] == 0 由两个分支共享
type GridSpec struct {
	Temperatures []float64 `json:"temperatures"`
	Pressures    []float64 `json:"pressures"`
	BlowingRates []float64 `json:"blowing_rates"`
}

// 分支共享点的下标
func (g GridSpec) Mid() int {
	return len(g.BlowingRates) / 2
}

// Bg <= 0 的分支，包含共享点
func (g GridSpec) NegativeBranch() []float64 {
	return g.BlowingRates[:g.Mid()+1]
}

// Bg >= 0 的分支，包含共享点
func (g GridSpec) PositiveBranch() []float64 {
	return g.BlowingRates[g.Mid():]
}

// 指定分支的扫描值
func (g GridSpec) BranchRates(b Branch) []float64 {
	if b == Negative {
		return g.NegativeBranch()
	}
	return g.PositiveBranch()
}

// 输出表格总行数
func (g GridSpec) Cells() int {
	return len(g.Pressures) * len(g.BlowingRates) * len(g.Temperatures)
}

// 前后端通信消息结构
type Msg struct {
	Type    string `json:"type"`
	Content string `json:"content"`
}
