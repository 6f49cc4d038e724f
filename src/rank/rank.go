// Package rank selects the most frequent words of a concordance.
package rank

import (
	"errors"

	"github.com/hyperbolic-timechamber/concordance-go/src/hashtable"
)

var ErrEmptyHeap = errors.New("Heap: heap is empty")

// Source is anything that can walk its entries, such as a hashtable.HashTable.
type Source interface {
	ForEach(visit func(hashtable.Entry) bool)
}

// before orders the heap: the root is the least frequent entry, and among
// equal counts the one whose key sorts last.
func before(a, b hashtable.Entry) bool {
	if a.Value != b.Value {
		return a.Value < b.Value
	}
	return a.Key > b.Key
}

// Heap is a min-heap of entries ordered by count.
type Heap struct {
	data []hashtable.Entry
}

func NewHeap() *Heap {
	return &Heap{}
}

func (h *Heap) Push(e hashtable.Entry) {
	h.data = append(h.data, e)
	h.heapifyUp(len(h.data) - 1)
}

func (h *Heap) Pop() (hashtable.Entry, error) {
	if len(h.data) == 0 {
		return hashtable.Entry{}, ErrEmptyHeap
	}
	min := h.data[0]
	last := len(h.data) - 1
	h.data[0] = h.data[last]
	h.data = h.data[:last]
	if len(h.data) > 0 {
		h.heapifyDown(0)
	}
	return min, nil
}

func (h *Heap) Peek() (hashtable.Entry, error) {
	if len(h.data) == 0 {
		return hashtable.Entry{}, ErrEmptyHeap
	}
	return h.data[0], nil
}

func (h *Heap) Size() int {
	return len(h.data)
}

func (h *Heap) heapifyUp(i int) {
	for i > 0 {
		parent := (i - 1) / 2
		if !before(h.data[i], h.data[parent]) {
			break
		}
		h.data[i], h.data[parent] = h.data[parent], h.data[i]
		i = parent
	}
}

func (h *Heap) heapifyDown(i int) {
	n := len(h.data)
	for {
		smallest := i
		left := 2*i + 1
		right := 2*i + 2

		if left < n && before(h.data[left], h.data[smallest]) {
			smallest = left
		}
		if right < n && before(h.data[right], h.data[smallest]) {
			smallest = right
		}
		if smallest == i {
			break
		}
		h.data[i], h.data[smallest] = h.data[smallest], h.data[i]
		i = smallest
	}
}

// TopK returns the k most frequent entries, highest count first and ties
// broken by key. k <= 0 yields nil.
func TopK(src Source, k int) []hashtable.Entry {
	if k <= 0 {
		return nil
	}
	h := NewHeap()
	src.ForEach(func(e hashtable.Entry) bool {
		if h.Size() < k {
			h.Push(e)
			return true
		}
		if root, _ := h.Peek(); before(root, e) {
			h.Pop()
			h.Push(e)
		}
		return true
	})
	top := make([]hashtable.Entry, h.Size())
	for i := len(top) - 1; i >= 0; i-- {
		top[i], _ = h.Pop()
	}
	return top
}
