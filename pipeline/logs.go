package pipeline

import (
	"context"

	"bprime/model"
	"bprime/solver"
)

// 从已保存的求解器日志读取分支数据，用于离线建表
type LogReader struct {
	Positive string
	Negative string
}

func (l LogReader) Invoke(ctx context.Context, req solver.Request) (*model.RawBranchTable, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	path := l.Positive
	if req.Branch == model.Negative {
		path = l.Negative
	}
	return solver.ReadLog(path, req.Branch)
}
