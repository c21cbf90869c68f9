package calculator

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// 基于下标区间的任务分配
// 任务之间写入的表格区域互不相交，不需要加锁
type executor struct {
	workers int
}

type task struct {
	start int
	end   int
}

func newExecutor(workers int) *executor {
	if workers < 1 {
		workers = 1
	}
	return &executor{workers: workers}
}

// 将 [0, total) 切分为任务，每个 worker 约分到两个任务，余数逐个分配
func (e *executor) split(total int) []task {
	if total <= 0 {
		return nil
	}
	totalTasks := e.workers * 2
	taskLen, remainder := total/totalTasks, total%totalTasks
	var tasks []task
	start := 0
	if taskLen > 0 {
		for start < total-remainder {
			tasks = append(tasks, task{start: start, end: start + taskLen})
			start += taskLen
		}
	}
	for start < total {
		tasks = append(tasks, task{start: start, end: start + 1})
		start++
	}
	return tasks
}

// 执行全部任务，任一任务出错即取消剩余任务并返回该错误
func (e *executor) run(ctx context.Context, total int, f func(t task) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	tasks := e.split(total)
	if e.workers == 1 {
		for _, t := range tasks {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := f(t); err != nil {
				return err
			}
		}
		return nil
	}

	g, ctx := errgroup.WithContext(ctx)
	dispatchChan := make(chan task)
	g.Go(func() error {
		defer close(dispatchChan)
		for _, t := range tasks {
			if err := ctx.Err(); err != nil {
				return err
			}
			select {
			case dispatchChan <- t:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return nil
	})
	for i := 0; i < e.workers; i++ {
		g.Go(func() error {
			for t := range dispatchChan {
				if ctx.Err() != nil {
					continue
				}
				if err := f(t); err != nil {
					return err
				}
			}
			return nil
		})
	}
	return g.Wait()
}
