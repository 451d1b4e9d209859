package utils

import (
	"container/heap"

	"golang.org/x/exp/constraints"
)

// Smallest first priority queue that works on indexes rather than sorting
// the input. Extract (pop) only removes the index, not the value.
type priorityQueueSf[T constraints.Ordered] struct {
	Index []int
	Input []T
}

func (pq priorityQueueSf[T]) Len() int { return len(pq.Index) }
func (pq priorityQueueSf[T]) Less(i, j int) bool {
	return pq.Input[pq.Index[i]] < pq.Input[pq.Index[j]]
}
func (pq priorityQueueSf[T]) Swap(i, j int) {
	pq.Index[i], pq.Index[j] = pq.Index[j], pq.Index[i]
}

func (pq *priorityQueueSf[T]) Push(x any) {
	pq.Index = append(pq.Index, x.(int))
}

func (pq *priorityQueueSf[T]) Pop() any {
	last := len(pq.Index) - 1
	item := pq.Index[last]
	pq.Index = pq.Index[:last]
	return item
}

// For small topCount this beats sorting the whole array: track the
// smallest-of-the-largest in a small heap and replace it when beaten.
// Does not modify the input. Largest values first.
func FindTopNInArray[T constraints.Ordered](array []T, topCount int) []Pair[int, T] {
	if topCount > len(array) {
		topCount = len(array)
	}
	pq := priorityQueueSf[T]{Input: array, Index: make([]int, topCount)}
	for i := range pq.Index {
		pq.Index[i] = i
	}
	heap.Init(&pq)

	for i := topCount; i < len(array); i++ {
		if array[pq.Index[0]] < array[i] {
			pq.Index[0] = i
			heap.Fix(&pq, 0)
		}
	}

	topSet := make([]Pair[int, T], topCount)
	for i := 0; i < topCount; i++ {
		index := heap.Pop(&pq).(int)
		// Backwards, because we were tracking the smallest-of-the-largest.
		topSet[topCount-i-1] = Pair[int, T]{index, array[index]}
	}
	return topSet
}
