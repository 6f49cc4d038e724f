package rank_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/hyperbolic-timechamber/concordance-go/src/hashtable"
	"github.com/hyperbolic-timechamber/concordance-go/src/rank"
)

type entries []hashtable.Entry

func (es entries) ForEach(visit func(hashtable.Entry) bool) {
	for _, e := range es {
		if !visit(e) {
			return
		}
	}
}

func TestPopOnEmptyHeap(t *testing.T) {
	h := rank.NewHeap()
	if _, err := h.Pop(); !errors.Is(err, rank.ErrEmptyHeap) {
		t.Fatal("expected ErrEmptyHeap")
	}
	if _, err := h.Peek(); !errors.Is(err, rank.ErrEmptyHeap) {
		t.Fatal("expected ErrEmptyHeap")
	}
}

func TestHeapPopsLeastFrequentFirst(t *testing.T) {
	h := rank.NewHeap()
	for _, e := range []hashtable.Entry{{Key: "a", Value: 5}, {Key: "b", Value: 1}, {Key: "c", Value: 3}, {Key: "d", Value: 1}} {
		h.Push(e)
	}
	var got []hashtable.Entry
	for h.Size() > 0 {
		e, _ := h.Pop()
		got = append(got, e)
	}
	want := []hashtable.Entry{{Key: "d", Value: 1}, {Key: "b", Value: 1}, {Key: "c", Value: 3}, {Key: "a", Value: 5}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unexpected pop order (-want +got):\n%s", diff)
	}
}

func TestTopK(t *testing.T) {
	src := entries{{Key: "the", Value: 9}, {Key: "fox", Value: 2}, {Key: "and", Value: 4}, {Key: "dog", Value: 2}, {Key: "cat", Value: 2}, {Key: "me", Value: 7}}
	got := rank.TopK(src, 4)
	want := []hashtable.Entry{{Key: "the", Value: 9}, {Key: "me", Value: 7}, {Key: "and", Value: 4}, {Key: "cat", Value: 2}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unexpected top 4 (-want +got):\n%s", diff)
	}
}

func TestTopKLargerThanSource(t *testing.T) {
	src := entries{{Key: "b", Value: 1}, {Key: "a", Value: 1}}
	got := rank.TopK(src, 10)
	want := []hashtable.Entry{{Key: "a", Value: 1}, {Key: "b", Value: 1}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unexpected result (-want +got):\n%s", diff)
	}
}

func TestTopKNonPositive(t *testing.T) {
	if got := rank.TopK(entries{{Key: "a", Value: 1}}, 0); got != nil {
		t.Fatalf("expected nil, got %v", got)
	}
}

func TestTopKFromHashTable(t *testing.T) {
	table, err := hashtable.New(10)
	if err != nil {
		t.Fatal(err)
	}
	for i := 1; i <= 30; i++ {
		for j := 0; j < i; j++ {
			table.Insert(fmt.Sprintf("w%02d", i), 1)
		}
	}
	got := rank.TopK(table, 3)
	want := []hashtable.Entry{{Key: "w30", Value: 30}, {Key: "w29", Value: 29}, {Key: "w28", Value: 28}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unexpected top 3 (-want +got):\n%s", diff)
	}
}
