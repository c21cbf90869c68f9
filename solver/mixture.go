package solver

import (
	log "github.com/sirupsen/logrus"
)

// 混合物配置
// Name: 组分定义文件（mixture），BoundaryLayer: 边界层外缘组分，Pyrolysis: 热解气体组分
type Mixture struct {
	Name          string `json:"name" yaml:"name"`
	BoundaryLayer string `json:"boundary_layer" yaml:"boundary_layer"`
	Pyrolysis     string `json:"pyrolysis" yaml:"pyrolysis"`
}

func NewMixture(name, boundaryLayer, pyrolysis string) *Mixture {
	m := &Mixture{
		Name:          name,
		BoundaryLayer: boundaryLayer,
		Pyrolysis:     pyrolysis,
	}
	log.WithFields(log.Fields{
		"mixture":       name,
		"boundaryLayer": boundaryLayer,
		"pyrolysis":     pyrolysis,
	}).Info("设置混合物")
	return m
}

func (m *Mixture) SetName(name string) {
	m.Name = name
}

func (m *Mixture) SetBoundaryLayer(boundaryLayer string) {
	m.BoundaryLayer = boundaryLayer
}

func (m *Mixture) SetPyrolysis(pyrolysis string) {
	m.Pyrolysis = pyrolysis
}

// 注入组分选择: 正分支注入热解气体，负分支"注入"的是边界层气体本身
func (m *Mixture) Injected(b Branch) string {
	if b == Negative {
		return m.BoundaryLayer
	}
	return m.Pyrolysis
}
