package model

// 单位换算
// 1. 网格压力单位 Pa，输出表格压力单位 bar
// 2. 求解器输出的壁面焓单位 MJ/kg，输出表格单位 kJ/kg

const (
	PascalToBar = 1e-5
	MegaToKilo  = 1e3
)

// 输出表格表头
const TableHeader = "// P (bar) Bg T (K) Bc Hw(kJ/kg)"
