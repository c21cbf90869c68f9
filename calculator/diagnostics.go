package calculator

import (
	"fmt"

	log "github.com/sirupsen/logrus"
)

// 警告类别
const (
	// 请求的 Bg 超出合并曲线的采样范围，按线性外推处理
	KindExtrapolation = "extrapolation"
	// 合并曲线的 Bg 非严格递增，插值前按 Bg 重新排序
	KindNonMonotonic = "non-monotonic"
)

// 非致命诊断，按 (压力, 温度) 汇总
type Warning struct {
	Kind        string  `yaml:"kind" json:"kind"`
	Pressure    float64 `yaml:"pressure" json:"pressure"`       // Pa
	Temperature float64 `yaml:"temperature" json:"temperature"` // K
	Count       int     `yaml:"count" json:"count"`
	Lo          float64 `yaml:"lo" json:"lo"` // 合并曲线 Bg 下限
	Hi          float64 `yaml:"hi" json:"hi"` // 合并曲线 Bg 上限
}

func (w Warning) String() string {
	return fmt.Sprintf("%s at P=%g Pa T=%g K: %d points, curve Bg in [%g, %g]",
		w.Kind, w.Pressure, w.Temperature, w.Count, w.Lo, w.Hi)
}

type Diagnostics struct {
	Warnings []Warning
}

func (d *Diagnostics) Count(kind string) int {
	n := 0
	for _, w := range d.Warnings {
		if w.Kind == kind {
			n++
		}
	}
	return n
}

func (d *Diagnostics) Log() {
	for _, w := range d.Warnings {
		log.WithFields(log.Fields{
			"kind":        w.Kind,
			"pressure":    w.Pressure,
			"temperature": w.Temperature,
			"count":       w.Count,
			"lo":          w.Lo,
			"hi":          w.Hi,
		}).Warn("插值诊断")
	}
}
