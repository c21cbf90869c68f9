package calculator

import (
	"bprime/deque"
	"bprime/model"
)

// 不同分支的扫描参数含义不同，合并前先统一换算为 Bg
type conversion func(row model.RawBranchRow) model.CurvePoint

// 正分支: 扫描参数即 Bg
func identity(row model.RawBranchRow) model.CurvePoint {
	return model.CurvePoint{
		Bg:           row.SweepParam,
		Bf:           row.SweepParam + row.AblationRate,
		AblationRate: row.AblationRate,
		WallEnthalpy: row.WallEnthalpy,
	}
}

// 负分支: 扫描参数为 Bf，Bg = Bf - Bc
func subtractAblation(row model.RawBranchRow) model.CurvePoint {
	return model.CurvePoint{
		Bg:           row.SweepParam - row.AblationRate,
		Bf:           row.SweepParam,
		AblationRate: row.AblationRate,
		WallEnthalpy: row.WallEnthalpy,
	}
}

func conversionOf(b model.Branch) conversion {
	if b == model.Negative {
		return subtractAblation
	}
	return identity
}

// 按分支换算一行
func ConvertRow(b model.Branch, row model.RawBranchRow) model.CurvePoint {
	return conversionOf(b)(row)
}

// 拼接合并曲线
// pos, neg 均按扫描值递增排列，neg 的最后一行与 pos 的第一行为共享点，保留正分支的那一行
func Merge(pos, neg []model.RawBranchRow) model.MergedCurve {
	d := deque.NewArrDeque(len(pos) + len(neg))
	toBg := conversionOf(model.Positive)
	for _, row := range pos {
		d.AddLast(toBg(row))
	}
	toBg = conversionOf(model.Negative)
	// 从共享点向外
	for j := len(neg) - 2; j >= 0; j-- {
		d.AddFirst(toBg(neg[j]))
	}
	return d.Curve()
}
