// Package binheap implements a handle-based binary min-heap: entries are
// keyed by a lexicographically ordered Key, and each insertion returns an
// opaque *Handle that lets the caller decrease that entry's key in
// O(log n) without a linear search.
//
// The heap itself is a container/heap.Interface implementation with an
// explicit index kept current on every swap, the classic shape for a
// decrease-key priority queue built on stdlib container/heap.
package binheap

import "container/heap"

// Key is the heap ordering key: Primary is compared first, Secondary breaks
// ties on Primary, and Seq (an insertion-order counter) breaks ties on
// both, giving deterministic FIFO ordering among equal-priority entries.
type Key struct {
	Primary   float64
	Secondary float64
	Seq       uint64
}

// Less reports whether a sorts strictly before b.
func (a Key) Less(b Key) bool {
	if a.Primary != b.Primary {
		return a.Primary < b.Primary
	}
	if a.Secondary != b.Secondary {
		return a.Secondary < b.Secondary
	}
	return a.Seq < b.Seq
}

// entry is one element of the heap's backing slice.
type entry[T any] struct {
	key   Key
	value T
	idx   int
}

// Handle is an opaque token returned by Insert that the caller keeps
// alongside its own annotation to later call DecreasePriority. A handle is
// only valid between its entry's insertion and removal; dereferencing it
// afterwards is a caller bug, not a condition this package detects.
type Handle[T any] struct {
	e *entry[T]
}

// Heap is a min-heap of (Key, T) pairs ordered by Key.
type Heap[T any] struct {
	entries []*entry[T]
}

// New returns an empty heap.
func New[T any]() *Heap[T] {
	return &Heap[T]{}
}

func (h *Heap[T]) Len() int { return len(h.entries) }

func (h *Heap[T]) Less(i, j int) bool {
	return h.entries[i].key.Less(h.entries[j].key)
}

func (h *Heap[T]) Swap(i, j int) {
	h.entries[i], h.entries[j] = h.entries[j], h.entries[i]
	h.entries[i].idx = i
	h.entries[j].idx = j
}

func (h *Heap[T]) Push(x any) {
	e := x.(*entry[T])
	e.idx = len(h.entries)
	h.entries = append(h.entries, e)
}

func (h *Heap[T]) Pop() any {
	n := len(h.entries)
	e := h.entries[n-1]
	h.entries = h.entries[:n-1]
	return e
}

// Insert adds value under key and returns a handle usable for a later
// DecreasePriority call.
func (h *Heap[T]) Insert(key Key, value T) *Handle[T] {
	e := &entry[T]{key: key, value: value}
	heap.Push(h, e)
	return &Handle[T]{e: e}
}

// DecreasePriority moves handle's entry to a strictly-or-equally smaller
// key. It panics if newKey sorts after the entry's current key: calling it
// with an increased key is a caller bug, not a condition to tolerate.
func (h *Heap[T]) DecreasePriority(handle *Handle[T], newKey Key) {
	if handle.e.key.Less(newKey) {
		panic("binheap: DecreasePriority called with a larger key")
	}
	handle.e.key = newKey
	heap.Fix(h, handle.e.idx)
}

// RemoveMin removes and returns the minimum-key entry.
func (h *Heap[T]) RemoveMin() (Key, T) {
	e := heap.Pop(h).(*entry[T])
	return e.key, e.value
}

// Peek returns the minimum-key entry without removing it.
func (h *Heap[T]) Peek() (Key, T) {
	e := h.entries[0]
	return e.key, e.value
}

// IsEmpty reports whether the heap holds no entries.
func (h *Heap[T]) IsEmpty() bool {
	return len(h.entries) == 0
}
