package solver

import (
	"fmt"
	"strings"

	"bprime/model"
)

// 求解器调用失败或输出格式错误
type SolverInvocationError struct {
	Branch model.Branch
	Binary string
	Line   int    // 出错的输出行号，进程失败时为 0
	Stderr string // 求解器 stderr
	Err    error
}

func (e *SolverInvocationError) Error() string {
	var parts []string
	parts = append(parts, fmt.Sprintf("solver %s branch", e.Branch))
	if e.Binary != "" {
		parts = append(parts, fmt.Sprintf("binary %s", e.Binary))
	}
	if e.Line > 0 {
		parts = append(parts, fmt.Sprintf("line %d", e.Line))
	}
	if e.Err != nil {
		parts = append(parts, e.Err.Error())
	}
	if s := strings.TrimSpace(e.Stderr); s != "" {
		parts = append(parts, fmt.Sprintf("stderr: %s", s))
	}
	return strings.Join(parts, " - ")
}

func (e *SolverInvocationError) Unwrap() error {
	return e.Err
}
