// Package report renders a concordance: the word listing, an optional
// bucket dump and top-k section, and the table statistics.
package report

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"gopkg.in/yaml.v2"

	"github.com/hyperbolic-timechamber/concordance-go/src/concordance"
	"github.com/hyperbolic-timechamber/concordance-go/src/hashtable"
	"github.com/hyperbolic-timechamber/concordance-go/src/rank"
)

var (
	ErrUnknownFormat = errors.New("Report: unknown format")
	ErrUnknownOrder  = errors.New("Report: unknown sort order")
)

type Format string

const (
	Text Format = "text"
	JSON Format = "json"
	YAML Format = "yaml"
)

func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case Text, JSON, YAML:
		return f, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// Order is the order of the word listing.
type Order string

const (
	// TableOrder lists words the way the table stores them.
	TableOrder Order = "table"
	Alpha      Order = "alpha"
	// Count lists the most frequent words first.
	Count Order = "count"
)

func ParseOrder(s string) (Order, error) {
	switch o := Order(strings.ToLower(s)); o {
	case TableOrder, Alpha, Count:
		return o, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownOrder, s)
}

type Options struct {
	Format  Format
	Order   Order
	Top     int
	Buckets bool
}

// Table is the read-only view of a hash table the reporter needs.
type Table interface {
	ForEach(visit func(hashtable.Entry) bool)
	ForEachSlot(visit func(index int, entries []hashtable.Entry) bool)
	Stats() hashtable.Stats
}

type Bucket struct {
	Index   int               `json:"index" yaml:"index"`
	Entries []hashtable.Entry `json:"entries" yaml:"entries"`
}

type Document struct {
	Entries        []hashtable.Entry `json:"entries" yaml:"entries"`
	Top            []hashtable.Entry `json:"top,omitempty" yaml:"top,omitempty"`
	Buckets        []Bucket          `json:"buckets,omitempty" yaml:"buckets,omitempty"`
	Stats          hashtable.Stats   `json:"stats" yaml:"stats"`
	Files          int               `json:"files" yaml:"files"`
	WordCount      int               `json:"word_count" yaml:"word_count"`
	ElapsedSeconds float64           `json:"elapsed_seconds" yaml:"elapsed_seconds"`
}

func Build(t Table, res concordance.Result, opts Options) (Document, error) {
	doc := Document{
		Stats:          t.Stats(),
		Files:          res.Files,
		WordCount:      res.Words,
		ElapsedSeconds: res.Elapsed.Seconds(),
	}
	doc.Entries = make([]hashtable.Entry, 0, doc.Stats.Entries)
	t.ForEach(func(e hashtable.Entry) bool {
		doc.Entries = append(doc.Entries, e)
		return true
	})
	switch opts.Order {
	case TableOrder, "":
	case Alpha:
		sort.SliceStable(doc.Entries, func(i, j int) bool { return doc.Entries[i].Key < doc.Entries[j].Key })
	case Count:
		sort.SliceStable(doc.Entries, func(i, j int) bool {
			a, b := doc.Entries[i], doc.Entries[j]
			if a.Value != b.Value {
				return a.Value > b.Value
			}
			return a.Key < b.Key
		})
	default:
		return Document{}, fmt.Errorf("%w: %q", ErrUnknownOrder, opts.Order)
	}
	doc.Top = rank.TopK(t, opts.Top)
	if opts.Buckets {
		t.ForEachSlot(func(i int, entries []hashtable.Entry) bool {
			doc.Buckets = append(doc.Buckets, Bucket{Index: i, Entries: entries})
			return true
		})
	}
	return doc, nil
}

func Write(w io.Writer, t Table, res concordance.Result, opts Options) error {
	doc, err := Build(t, res, opts)
	if err != nil {
		return err
	}
	switch opts.Format {
	case Text, "":
		return writeText(w, doc)
	case JSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	case YAML:
		out, err := yaml.Marshal(doc)
		if err != nil {
			return err
		}
		_, err = w.Write(out)
		return err
	}
	return fmt.Errorf("%w: %q", ErrUnknownFormat, opts.Format)
}

func writeText(w io.Writer, doc Document) error {
	bw := bufio.NewWriter(w)
	for _, e := range doc.Entries {
		fmt.Fprintf(bw, "%s: %d\n", e.Key, e.Value)
	}
	if len(doc.Buckets) > 0 {
		for _, b := range doc.Buckets {
			fmt.Fprintf(bw, "\nBucket Index %d -> ", b.Index)
			for _, e := range b.Entries {
				fmt.Fprintf(bw, "Key:%s|Value:%d -> ", e.Key, e.Value)
			}
		}
		fmt.Fprintln(bw)
	}
	if len(doc.Top) > 0 {
		fmt.Fprintf(bw, "\nTop %d words:\n", len(doc.Top))
		for i, e := range doc.Top {
			fmt.Fprintf(bw, "%3d. %s (%d)\n", i+1, e.Key, e.Value)
		}
	}
	fmt.Fprintf(bw, "\nconcordance ran in %f seconds\n", doc.ElapsedSeconds)
	fmt.Fprintf(bw, "Table emptyBuckets = %d\n", doc.Stats.EmptySlots)
	fmt.Fprintf(bw, "Table count = %d\n", doc.Stats.Entries)
	fmt.Fprintf(bw, "Table capacity = %d\n", doc.Stats.Slots)
	fmt.Fprintf(bw, "Table load = %f\n", doc.Stats.LoadFactor)
	return bw.Flush()
}
