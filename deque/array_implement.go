package deque

import (
	"bprime/model"
)

type ArrDeque struct {
	// 两个数组一个负责头部操作，一个负责尾部操作
	// container 逆序存放: container[len-1] 为队首
	container  []model.CurvePoint
	container1 []model.CurvePoint
}

// 工厂方法
func NewArrDeque(capacity int) *ArrDeque {
	if capacity < 0 {
		capacity = 0
	}
	return &ArrDeque{
		container:  make([]model.CurvePoint, 0, capacity/2+1),
		container1: make([]model.CurvePoint, 0, capacity/2+1),
	}
}

func (ad *ArrDeque) Size() int {
	return len(ad.container) + len(ad.container1)
}

func (ad *ArrDeque) locate(i int) (arr []model.CurvePoint, idx int) {
	l1 := len(ad.container)
	if i < 0 || i >= l1+len(ad.container1) {
		panic("index out of length")
	}
	if i < l1 {
		return ad.container, l1 - 1 - i
	}
	return ad.container1, i - l1
}

func (ad *ArrDeque) Get(i int) model.CurvePoint {
	arr, idx := ad.locate(i)
	return arr[idx]
}

func (ad *ArrDeque) Set(i int, p model.CurvePoint) {
	arr, idx := ad.locate(i)
	arr[idx] = p
}

func (ad *ArrDeque) Traverse(f func(i int, p *model.CurvePoint)) {
	k := 0
	for z := len(ad.container) - 1; z >= 0; z-- {
		f(k, &ad.container[z])
		k++
	}
	for z := range ad.container1 {
		f(k, &ad.container1[z])
		k++
	}
}

func (ad *ArrDeque) AddLast(p model.CurvePoint) {
	ad.container1 = append(ad.container1, p)
}

func (ad *ArrDeque) AddFirst(p model.CurvePoint) {
	ad.container = append(ad.container, p)
}

func (ad *ArrDeque) RemoveLast() model.CurvePoint {
	if len(ad.container1) > 0 {
		n := len(ad.container1) - 1
		p := ad.container1[n]
		ad.container1 = ad.container1[:n]
		return p
	}
	if len(ad.container) == 0 {
		panic("remove from empty deque")
	}
	// 尾部数组已空，从头部数组的最底部取
	p := ad.container[0]
	ad.container = ad.container[1:]
	return p
}

func (ad *ArrDeque) RemoveFirst() model.CurvePoint {
	if len(ad.container) > 0 {
		n := len(ad.container) - 1
		p := ad.container[n]
		ad.container = ad.container[:n]
		return p
	}
	if len(ad.container1) == 0 {
		panic("remove from empty deque")
	}
	p := ad.container1[0]
	ad.container1 = ad.container1[1:]
	return p
}

func (ad *ArrDeque) IsEmpty() bool {
	return ad.Size() == 0
}

// 按顺序拷贝为合并曲线
func (ad *ArrDeque) Curve() model.MergedCurve {
	curve := make(model.MergedCurve, 0, ad.Size())
	ad.Traverse(func(_ int, p *model.CurvePoint) {
		curve = append(curve, *p)
	})
	return curve
}
