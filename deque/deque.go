/**
 *
 * 利用两个数组实现双端队列：一个数组负责头部操作（逆序存放），一个负责尾部操作
 * 用于拼接 B' 合并曲线：正分支从共享点向后追加，负分支从共享点向前插入
 *
 */

package deque

import "bprime/model"

type Deque interface {
	// 队列的长度
	Size() int

	// 获取队列中对应下标的元素
	Get(i int) model.CurvePoint

	// 设定队列中对应下标的元素
	Set(i int, p model.CurvePoint)

	// 正向遍历
	Traverse(f func(i int, p *model.CurvePoint))

	// 在队列结尾增加一个元素
	AddLast(p model.CurvePoint)

	// 在队列结尾删除一个元素
	RemoveLast() model.CurvePoint

	// 在队列头部增加一个元素
	AddFirst(p model.CurvePoint)

	// 在队列头部删除一个元素
	RemoveFirst() model.CurvePoint

	IsEmpty() bool
}
