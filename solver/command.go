package solver

import (
	"fmt"
	"strconv"

	"bprime/model"
)

type Branch = model.Branch

const (
	Positive = model.Positive
	Negative = model.Negative
)

// 一次求解器调用需要的参数
type Request struct {
	Branch      Branch
	Mixture     Mixture
	Temperature model.Range
	Pressure    model.Range // step 为比值
	BlowingRate model.Range // 分支内的扫描值
}

// 构建命令行参数
// 例: -m tacot26.xml -bl edge -py pyro -T 250:25:4000 -P 101.3250000000:10.0000000000:101325.0000000000 -b 0.00000:0.10000:10.00000
func Args(req Request) []string {
	return []string{
		"-m", req.Mixture.Name,
		"-bl", req.Mixture.BoundaryLayer,
		"-py", req.Mixture.Injected(req.Branch),
		"-T", temperatureRange(req.Temperature),
		"-P", fmt.Sprintf("%1.10f:%1.10f:%1.10f", req.Pressure.Start, req.Pressure.Step, req.Pressure.End),
		"-b", fmt.Sprintf("%1.5f:%1.5f:%1.5f", req.BlowingRate.Start, req.BlowingRate.Step, req.BlowingRate.End),
	}
}

func temperatureRange(r model.Range) string {
	f := func(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }
	return f(r.Start) + ":" + f(r.Step) + ":" + f(r.End)
}

// 日志文件名
func LogName(b Branch) string {
	return fmt.Sprintf("bprime_%s.log", b)
}
