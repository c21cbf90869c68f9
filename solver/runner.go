package solver

import (
	"bytes"
	"context"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"bprime/model"

	log "github.com/sirupsen/logrus"
)

// 外部平衡求解器
type Runner struct {
	Binary   string
	WorkDir  string
	KeepLogs bool // 保留 bprime_<branch>.log
}

func NewRunner(binary, workDir string, keepLogs bool) *Runner {
	return &Runner{
		Binary:   binary,
		WorkDir:  workDir,
		KeepLogs: keepLogs,
	}
}

// 调用一次求解器并解析输出，失败时不重试
func (r *Runner) Invoke(ctx context.Context, req Request) (*model.RawBranchTable, error) {
	start := time.Now()
	args := Args(req)
	log.WithFields(log.Fields{
		"branch": req.Branch.String(),
		"binary": r.Binary,
		"args":   args,
	}).Info("调用求解器")

	var stdout, stderr bytes.Buffer
	var out io.Writer = &stdout
	var logFile *os.File
	if r.KeepLogs {
		f, err := os.Create(filepath.Join(r.WorkDir, LogName(req.Branch)))
		if err != nil {
			return nil, &SolverInvocationError{Branch: req.Branch, Binary: r.Binary, Err: err}
		}
		logFile = f
		defer logFile.Close()
		out = io.MultiWriter(&stdout, logFile)
	}

	cmd := exec.CommandContext(ctx, r.Binary, args...)
	cmd.Dir = r.WorkDir
	cmd.Stdout = out
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return nil, &SolverInvocationError{
			Branch: req.Branch,
			Binary: r.Binary,
			Stderr: stderr.String(),
			Err:    err,
		}
	}

	table, err := Parse(&stdout, req.Branch)
	if err != nil {
		if e, ok := err.(*SolverInvocationError); ok {
			e.Binary = r.Binary
			e.Stderr = stderr.String()
		}
		return nil, err
	}
	log.WithFields(log.Fields{
		"branch": req.Branch.String(),
		"rows":   table.Len(),
		"cost":   time.Since(start).String(),
	}).Info("求解器完成")
	return table, nil
}
