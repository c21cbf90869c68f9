package calculator

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestExecutorSplit(t *testing.T) {
	e := newExecutor(4)
	for _, total := range []int{0, 1, 7, 8, 37, 604} {
		covered := make([]int, total)
		for _, tk := range e.split(total) {
			require.Less(t, tk.start, tk.end)
			for q := tk.start; q < tk.end; q++ {
				covered[q]++
			}
		}
		for q, n := range covered {
			assert.Equal(t, 1, n, "total %d index %d", total, q)
		}
	}
}

func TestExecutorRun(t *testing.T) {
	defer goleak.VerifyNone(t)

	for _, workers := range []int{0, 1, 3, 8} {
		e := newExecutor(workers)
		visited := make([]int, 101)
		err := e.run(context.Background(), len(visited), func(tk task) error {
			for q := tk.start; q < tk.end; q++ {
				visited[q]++
			}
			return nil
		})
		require.NoError(t, err)
		for q, n := range visited {
			assert.Equal(t, 1, n, "workers %d index %d", workers, q)
		}
	}
}

func TestExecutorRunError(t *testing.T) {
	defer goleak.VerifyNone(t)

	boom := errors.New("boom")
	for _, workers := range []int{1, 4} {
		e := newExecutor(workers)
		err := e.run(context.Background(), 200, func(tk task) error {
			if tk.start <= 10 && 10 < tk.end {
				return boom
			}
			return nil
		})
		assert.ErrorIs(t, err, boom)
	}
}

func TestExecutorRunCanceled(t *testing.T) {
	defer goleak.VerifyNone(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := newExecutor(1).run(ctx, 10, func(task) error { return nil })
	assert.ErrorIs(t, err, context.Canceled)

	err = newExecutor(4).run(ctx, 10, func(task) error { return nil })
	assert.ErrorIs(t, err, context.Canceled)
}
