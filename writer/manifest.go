package writer

import (
	"os"
	"time"

	"bprime/calculator"
	"bprime/model"
	"bprime/solver"

	"gopkg.in/yaml.v3"
)

// 运行记录，与表格文件同名的 .yaml
type Manifest struct {
	RunID     string         `yaml:"run_id"`
	CreatedAt time.Time      `yaml:"created_at"`
	Table     string         `yaml:"table"`
	Mixture   solver.Mixture `yaml:"mixture"`
	Grid      Grid           `yaml:"grid"`
	Rows      int            `yaml:"rows"`

	Warnings []calculator.Warning `yaml:"warnings,omitempty"`
}

type Grid struct {
	Temperature  model.Range `yaml:"temperature"`
	Pressure     model.Range `yaml:"pressure"`
	BlowingRate  model.Range `yaml:"blowing_rate"`
	Temperatures int         `yaml:"temperatures"`
	Pressures    int         `yaml:"pressures"`
	BlowingRates int         `yaml:"blowing_rates"`
}

// 新建清单，RunID 由调用方给出(与日志中的 run 字段一致)
func NewManifest(runID, table string, mix solver.Mixture, g model.GridSpec, diag *calculator.Diagnostics) *Manifest {
	m := &Manifest{
		RunID:     runID,
		CreatedAt: time.Now().UTC().Truncate(time.Second),
		Table:     table,
		Mixture:   mix,
		Grid:      DescribeGrid(g),
		Rows:      g.Cells(),
	}
	if diag != nil {
		m.Warnings = diag.Warnings
	}
	return m
}

// 由网格生成清单中的网格描述
func DescribeGrid(g model.GridSpec) Grid {
	d := Grid{
		Temperatures: len(g.Temperatures),
		Pressures:    len(g.Pressures),
		BlowingRates: len(g.BlowingRates),
	}
	d.Temperature = span(g.Temperatures, func(a, b float64) float64 { return b - a })
	d.Pressure = span(g.Pressures, func(a, b float64) float64 { return b / a })
	d.BlowingRate = span(g.BlowingRates, func(a, b float64) float64 { return b - a })
	return d
}

func span(xs []float64, step func(a, b float64) float64) model.Range {
	r := model.Range{Start: xs[0], End: xs[len(xs)-1]}
	if len(xs) > 1 {
		r.Step = step(xs[0], xs[1])
	}
	return r
}

// 清单文件路径: 表格文件名 + .yaml
func ManifestPath(tablePath string) string {
	return tablePath + ".yaml"
}

func WriteManifest(path string, m *Manifest) error {
	data, err := yaml.Marshal(m)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func ReadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	m := &Manifest{}
	if err := yaml.Unmarshal(data, m); err != nil {
		return nil, err
	}
	return m, nil
}
