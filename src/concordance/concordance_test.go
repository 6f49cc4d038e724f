package concordance_test

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/sirupsen/logrus/hooks/test"

	"github.com/hyperbolic-timechamber/concordance-go/src/concordance"
	"github.com/hyperbolic-timechamber/concordance-go/src/hashtable"
)

func newBuilder(t *testing.T) *concordance.Builder {
	t.Helper()
	table, err := hashtable.New(10)
	if err != nil {
		t.Fatal(err)
	}
	b := concordance.New(table)
	logger, _ := test.NewNullLogger()
	b.Logger = logger
	return b
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func counts(table *hashtable.HashTable) map[string]int {
	m := map[string]int{}
	table.ForEach(func(e hashtable.Entry) bool {
		m[e.Key] = e.Value
		return true
	})
	return m
}

func TestAddReader(t *testing.T) {
	b := newBuilder(t)
	n, err := b.AddReader(strings.NewReader("the fox and the dog"))
	if err != nil {
		t.Fatal(err)
	}
	if n != 5 {
		t.Fatalf("expected 5 words, got %d", n)
	}
	want := map[string]int{"the": 2, "fox": 1, "and": 1, "dog": 1}
	if diff := cmp.Diff(want, counts(b.Table)); diff != "" {
		t.Fatalf("unexpected counts (-want +got):\n%s", diff)
	}
}

func TestAddFiles(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.txt", "one two two\nthree")
	c := writeFile(t, dir, "c.txt", "Three two, one.")
	b := newBuilder(t)
	b.Workers = 1
	if err := b.AddFiles(context.Background(), a, c); err != nil {
		t.Fatal(err)
	}
	want := map[string]int{"one": 2, "two": 3, "three": 1, "Three": 1}
	if diff := cmp.Diff(want, counts(b.Table)); diff != "" {
		t.Fatalf("unexpected counts (-want +got):\n%s", diff)
	}
	res := b.Result()
	if res.Files != 2 || res.Words != 7 {
		t.Fatalf("expected 2 files and 7 words, got %+v", res)
	}
}

func TestAddFilesLowercase(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "a.txt", "The the THE")
	b := newBuilder(t)
	b.Lowercase = true
	if err := b.AddFiles(context.Background(), path); err != nil {
		t.Fatal(err)
	}
	if v, _ := b.Table.Lookup("the"); v != 3 {
		t.Fatalf("expected the=3, got %d", v)
	}
}

func TestAddFilesMissingFile(t *testing.T) {
	b := newBuilder(t)
	missing := filepath.Join(t.TempDir(), "nope.txt")
	err := b.AddFiles(context.Background(), missing)
	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("expected fs.ErrNotExist, got %v", err)
	}
	if !strings.Contains(err.Error(), missing) {
		t.Fatalf("expected error to name %s, got %v", missing, err)
	}
	if b.Table.Size() != 0 {
		t.Fatalf("expected empty table, got %d entries", b.Table.Size())
	}
}

func TestAddFilesCancelled(t *testing.T) {
	path := writeFile(t, t.TempDir(), "a.txt", "words words")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	b := newBuilder(t)
	if err := b.AddFiles(ctx, path); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestAddFilesGrowsTable(t *testing.T) {
	var sb strings.Builder
	for i := 0; i < 100; i++ {
		sb.WriteString(strings.Repeat("w", i+1))
		sb.WriteString(" ")
	}
	path := writeFile(t, t.TempDir(), "a.txt", sb.String())
	b := newBuilder(t)
	if err := b.AddFiles(context.Background(), path); err != nil {
		t.Fatal(err)
	}
	if b.Table.Size() != 100 {
		t.Fatalf("expected 100 entries, got %d", b.Table.Size())
	}
	if b.Table.Capacity() != 160 {
		t.Fatalf("expected capacity 160, got %d", b.Table.Capacity())
	}
}

func TestRemove(t *testing.T) {
	table, _ := hashtable.New(10)
	b := concordance.New(table)
	logger, hook := test.NewNullLogger()
	b.Logger = logger
	b.AddReader(strings.NewReader("and me and the cat"))

	removed := b.Remove("and", "me", "the", "dog")
	if removed != 3 {
		t.Fatalf("expected 3 removals, got %d", removed)
	}
	got := table.Entries()
	want := []hashtable.Entry{{Key: "cat", Value: 1}}
	if diff := cmp.Diff(want, got, cmpopts.EquateEmpty()); diff != "" {
		t.Fatalf("unexpected entries (-want +got):\n%s", diff)
	}
	if len(hook.Entries) != 1 || hook.LastEntry().Data["word"] != "dog" {
		t.Fatalf("expected one log entry for dog, got %v", hook.Entries)
	}
}
