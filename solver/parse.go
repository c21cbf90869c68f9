package solver

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"bprime/model"
)

// 每行至少需要的列: P, sweep, T, Bc, Hw
const minFields = 5

// 解析求解器输出
// 第一行为表头，丢弃；之后每个非空行取前 5 列，多余列（各组分摩尔分数）忽略
func Parse(r io.Reader, b Branch) (*model.RawBranchTable, error) {
	table := &model.RawBranchTable{Branch: b}
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		if line == 1 {
			continue
		}
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		if len(fields) < minFields {
			return nil, &SolverInvocationError{
				Branch: b,
				Line:   line,
				Err:    fmt.Errorf("expected at least %d columns, got %d", minFields, len(fields)),
			}
		}
		var v [minFields]float64
		for i := 0; i < minFields; i++ {
			x, err := strconv.ParseFloat(fields[i], 64)
			if err != nil {
				return nil, &SolverInvocationError{Branch: b, Line: line, Err: err}
			}
			v[i] = x
		}
		table.Rows = append(table.Rows, model.RawBranchRow{
			Pressure:     v[0],
			SweepParam:   v[1],
			Temperature:  v[2],
			AblationRate: v[3],
			WallEnthalpy: v[4],
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, &SolverInvocationError{Branch: b, Line: line, Err: err}
	}
	if line == 0 {
		return nil, &SolverInvocationError{Branch: b, Err: fmt.Errorf("empty output")}
	}
	return table, nil
}

// 读取已保存的求解器输出
func ReadLog(path string, b Branch) (*model.RawBranchTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &SolverInvocationError{Branch: b, Err: err}
	}
	defer f.Close()
	return Parse(f, b)
}
