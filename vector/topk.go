package vector

import (
	"container/heap"
	"sort"
)

// TopK retains the k highest-ranking items seen so far from a candidate
// stream, in O(n log k) total time. Ranking is defined by a caller-supplied
// less function: less(a, b) reports whether a ranks strictly below b.
//
// While fewer than k items have been kept every pushed item is inserted;
// at capacity a new item evicts the current minimum only when it ranks
// strictly above it. Results returns the kept items sorted best-first.
//
// Not safe for concurrent use.
type TopK[T any] struct {
	k int
	h *itemHeap[T]
}

// NewTopK creates a selector keeping at most k items. k must be positive.
func NewTopK[T any](k int, less func(a, b T) bool) *TopK[T] {
	if k <= 0 {
		panic("vector: TopK capacity must be positive")
	}
	return &TopK[T]{
		k: k,
		h: &itemHeap[T]{less: less, items: make([]T, 0, k)},
	}
}

// Push offers an item to the selector.
func (t *TopK[T]) Push(item T) {
	if t.h.Len() < t.k {
		heap.Push(t.h, item)
		return
	}
	if t.h.less(t.h.items[0], item) {
		t.h.items[0] = item
		heap.Fix(t.h, 0)
	}
}

// Len reports how many items are currently kept.
func (t *TopK[T]) Len() int { return t.h.Len() }

// Results returns the kept items sorted best-first. The selector remains
// usable afterwards; the returned slice is a copy.
func (t *TopK[T]) Results() []T {
	out := make([]T, len(t.h.items))
	copy(out, t.h.items)
	sort.Slice(out, func(i, j int) bool { return t.h.less(out[j], out[i]) })
	return out
}

// itemHeap is a min-heap ordered by less, so the worst kept item sits at
// the root and can be evicted cheaply.
type itemHeap[T any] struct {
	less  func(a, b T) bool
	items []T
}

func (h *itemHeap[T]) Len() int            { return len(h.items) }
func (h *itemHeap[T]) Less(i, j int) bool  { return h.less(h.items[i], h.items[j]) }
func (h *itemHeap[T]) Swap(i, j int)       { h.items[i], h.items[j] = h.items[j], h.items[i] }
func (h *itemHeap[T]) Push(x any)          { h.items = append(h.items, x.(T)) }
func (h *itemHeap[T]) Pop() any {
	n := len(h.items)
	item := h.items[n-1]
	h.items = h.items[:n-1]
	return item
}
