package model

// 输出表格中的一行
type OutputCell struct {
	Pressure     float64 `json:"pressure"`      // bar
	Bg           float64 `json:"bg"`
	Temperature  float64 `json:"temperature"`   // K
	AblationRate float64 `json:"ablation_rate"`
	WallEnthalpy float64 `json:"wall_enthalpy"` // kJ/kg
}

// 最终的三维表格，压力(外) -> Bg(中) -> 温度(内)
type FinalTable struct {
	NP, NB, NT int

	cells  []OutputCell
	filled []bool
}

// 工厂方法
func NewFinalTable(g GridSpec) *FinalTable {
	n := g.Cells()
	return &FinalTable{
		NP:     len(g.Pressures),
		NB:     len(g.BlowingRates),
		NT:     len(g.Temperatures),
		cells:  make([]OutputCell, n),
		filled: make([]bool, n),
	}
}

func (t *FinalTable) Index(k, j, i int) int {
	return k*t.NB*t.NT + j*t.NT + i
}

func (t *FinalTable) Len() int {
	return len(t.cells)
}

// 不同 (k, i) 写入的下标互不相交，可以并发调用
func (t *FinalTable) Set(k, j, i int, cell OutputCell) {
	idx := t.Index(k, j, i)
	t.cells[idx] = cell
	t.filled[idx] = true
}

func (t *FinalTable) At(k, j, i int) OutputCell {
	return t.cells[t.Index(k, j, i)]
}

// 按写出顺序遍历
func (t *FinalTable) Cells() []OutputCell {
	return t.cells
}

// 未被写入的下标
func (t *FinalTable) Missing() []int {
	var missing []int
	for idx, ok := range t.filled {
		if !ok {
			missing = append(missing, idx)
		}
	}
	return missing
}
