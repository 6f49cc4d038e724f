// Package concordance feeds words from files or readers into a hash table,
// counting how often each one occurs.
package concordance

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/hyperbolic-timechamber/concordance-go/src/hashtable"
	"github.com/hyperbolic-timechamber/concordance-go/src/tokenizer"
)

const DefaultWorkers = 4

type Result struct {
	Files   int           `json:"files" yaml:"files"`
	Words   int           `json:"words" yaml:"words"`
	Elapsed time.Duration `json:"elapsed" yaml:"elapsed"`
}

type Builder struct {
	Table *hashtable.HashTable

	// Workers bounds how many files are tokenized at once.
	Workers   int
	Lowercase bool
	Logger    log.FieldLogger

	files int
	words int
	spent time.Duration
}

func New(table *hashtable.HashTable) *Builder {
	return &Builder{
		Table:   table,
		Workers: DefaultWorkers,
		Logger:  log.StandardLogger(),
	}
}

func (b *Builder) tokenizerOptions() []tokenizer.Option {
	if b.Lowercase {
		return []tokenizer.Option{tokenizer.WithLowercase()}
	}
	return nil
}

func (b *Builder) insertAll(words []string) (int, error) {
	for i, w := range words {
		if err := b.Table.Insert(w, 1); err != nil {
			return i, errors.Wrapf(err, "inserting %q", w)
		}
	}
	return len(words), nil
}

// AddReader counts every word read from r and returns how many were read.
func (b *Builder) AddReader(r io.Reader) (int, error) {
	start := time.Now()
	defer func() { b.spent += time.Since(start) }()

	tr := tokenizer.NewReader(r, b.tokenizerOptions()...)
	n := 0
	for {
		w, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return n, errors.Wrap(err, "reading words")
		}
		if err := b.Table.Insert(w, 1); err != nil {
			return n, errors.Wrapf(err, "inserting %q", w)
		}
		n++
	}
	b.words += n
	return n, nil
}

func readWords(path string, opts []tokenizer.Option) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "opening %s", path)
	}
	defer f.Close()
	words, err := tokenizer.NewReader(f, opts...).All()
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", path)
	}
	return words, nil
}

// AddFiles tokenizes the files concurrently and then inserts their words
// in argument order. The table itself is only touched from this goroutine.
func (b *Builder) AddFiles(ctx context.Context, paths ...string) error {
	start := time.Now()
	defer func() { b.spent += time.Since(start) }()

	workers := b.Workers
	if workers <= 0 {
		workers = DefaultWorkers
	}
	opts := b.tokenizerOptions()
	results := make([][]string, len(paths))
	sem := make(chan struct{}, workers)

	g, gctx := errgroup.WithContext(ctx)
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			select {
			case sem <- struct{}{}:
			case <-gctx.Done():
				return gctx.Err()
			}
			defer func() { <-sem }()
			words, err := readWords(path, opts)
			if err != nil {
				return err
			}
			results[i] = words
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for i, words := range results {
		if err := ctx.Err(); err != nil {
			return err
		}
		n, err := b.insertAll(words)
		b.words += n
		if err != nil {
			return errors.Wrapf(err, "counting %s", paths[i])
		}
		b.files++
		b.Logger.WithFields(log.Fields{
			"file":  paths[i],
			"words": n,
		}).Debug("file counted")
	}
	return nil
}

// Remove deletes words from the concordance; missing words are skipped.
func (b *Builder) Remove(words ...string) int {
	removed := 0
	for _, w := range words {
		if b.Table.Remove(w) {
			removed++
		} else {
			b.Logger.WithField("word", w).Info("no such word to remove")
		}
	}
	return removed
}

func (b *Builder) Result() Result {
	return Result{
		Files:   b.files,
		Words:   b.words,
		Elapsed: b.spent,
	}
}
