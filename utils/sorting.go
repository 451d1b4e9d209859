package utils

import (
	"sort"

	"github.com/intel/forGoParallel/parallel"
	"github.com/intel/forGoParallel/psort"
)

// Adapter to parallel-merge-sort any slice with a comparison function.
type parallelSorter[T any] struct {
	s    []T
	less func(a, b T) bool
}

func (s parallelSorter[T]) Assign(source psort.StableSorter) func(i, j, len int) {
	src := source.(parallelSorter[T])
	return func(i, j, len int) {
		copy(s.s[i:i+len], src.s[j:j+len])
	}
}

func (s parallelSorter[T]) Len() int {
	return len(s.s)
}

func (s parallelSorter[T]) Less(i, j int) bool {
	return s.less(s.s[i], s.s[j])
}

func (s parallelSorter[T]) NewTemp() psort.StableSorter {
	return parallelSorter[T]{s: make([]T, len(s.s)), less: s.less}
}

func (s parallelSorter[T]) SequentialSort(i, j int) {
	sub := s.s[i:j]
	sort.SliceStable(sub, func(a, b int) bool { return s.less(sub[a], sub[b]) })
}

func (s parallelSorter[T]) Swap(i, j int) {
	s.s[i], s.s[j] = s.s[j], s.s[i]
}

func ParallelSort[T any](s []T, less func(a, b T) bool) {
	psort.StableSort(parallelSorter[T]{s: s, less: less})
}

// Parallel fill; the serial loop is the dominant cost for large arrays.
func Fill[T any](s []T, v T) {
	parallel.Range(0, len(s), 0, func(low, high int) {
		for i := low; i < high; i++ {
			s[i] = v
		}
	})
}
