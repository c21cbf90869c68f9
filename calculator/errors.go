package calculator

import (
	"fmt"
	"strings"

	"bprime/model"
)

// 原始表格中无法唯一定位某个网格点，说明求解器实际扫描的网格与请求不一致
type GridMismatchError struct {
	Branch      model.Branch
	Pressure    float64 // Pa
	Temperature float64 // K
	Sweep       float64 // 分支内扫描值
	Matches     int     // 匹配到的行数
	Reason      string
}

func (e *GridMismatchError) Error() string {
	var parts []string
	parts = append(parts, fmt.Sprintf("grid mismatch in %s branch", e.Branch))
	parts = append(parts, fmt.Sprintf("P=%g Pa T=%g K sweep=%g", e.Pressure, e.Temperature, e.Sweep))
	parts = append(parts, fmt.Sprintf("%d matching rows, want 1", e.Matches))
	if e.Reason != "" {
		parts = append(parts, e.Reason)
	}
	return strings.Join(parts, " - ")
}

// 两个分支的表格标记与位置不符
type BranchTagError struct {
	Want model.Branch
	Got  model.Branch
}

func (e *BranchTagError) Error() string {
	return fmt.Sprintf("expected %s branch table, got %s", e.Want, e.Got)
}

// 组装结束后仍有未写入的单元
type IncompleteTableError struct {
	Missing int
	Total   int
}

func (e *IncompleteTableError) Error() string {
	return fmt.Sprintf("table incomplete: %d of %d cells missing", e.Missing, e.Total)
}
