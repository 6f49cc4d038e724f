// Package hashtable implements the chained hash table behind the concordance:
// string keys, integer counters, additive hashing and doubling growth.
//
// A HashTable is not safe for concurrent use.
package hashtable

import (
	"errors"
	"fmt"
	"math"
	"strings"

	log "github.com/sirupsen/logrus"
)

var (
	ErrInvalidArgument   = errors.New("HashTable: invalid argument")
	ErrNotFound          = errors.New("HashTable: key not found")
	ErrAllocationFailure = errors.New("HashTable: allocation failure")
	ErrDestroyed         = errors.New("HashTable: table destroyed")
)

type Entry struct {
	Key   string `json:"key" yaml:"key"`
	Value int    `json:"value" yaml:"value"`
}

type Stats struct {
	Entries      int     `json:"entries" yaml:"entries"`
	Slots        int     `json:"slots" yaml:"slots"`
	EmptySlots   int     `json:"empty_slots" yaml:"empty_slots"`
	LoadFactor   float64 `json:"load_factor" yaml:"load_factor"`
	LongestChain int     `json:"longest_chain" yaml:"longest_chain"`
	Resizes      int     `json:"resizes" yaml:"resizes"`
}

type HashTable struct {
	slots     []chain
	count     int
	resizes   int
	destroyed bool
	opts      *options
}

// New creates a table with the given number of empty slots.
func New(slots int, opts ...Option) (*HashTable, error) {
	if slots <= 0 {
		return nil, fmt.Errorf("%w: slot count %d must be positive", ErrInvalidArgument, slots)
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	if err := o.validate(); err != nil {
		return nil, err
	}
	if slots > o.maxSlots {
		return nil, fmt.Errorf("%w: slot count %d exceeds limit %d", ErrAllocationFailure, slots, o.maxSlots)
	}
	return &HashTable{
		slots: make([]chain, slots),
		opts:  o,
	}, nil
}

// Destroy drops every entry and the slot array. Calling it again is a no-op.
func (t *HashTable) Destroy() {
	if t.destroyed {
		return
	}
	for i := range t.slots {
		t.slots[i].clear()
	}
	t.slots = nil
	t.count = 0
	t.destroyed = true
}

func (t *HashTable) HashFunc() HashFunc {
	return t.opts.hashFunc
}

// Index returns the slot the key currently maps to, or -1 once the table
// has been destroyed.
func (t *HashTable) Index(key string) int {
	if t.destroyed {
		return -1
	}
	return slotIndex(t.opts.hashFunc.sum(key), len(t.slots))
}

// Insert stores key with value. If key is already present its value is
// incremented by one instead and value is ignored.
func (t *HashTable) Insert(key string, value int) error {
	if t.destroyed {
		return ErrDestroyed
	}
	return t.insert(key, value, true)
}

func (t *HashTable) insert(key string, value int, copyKey bool) error {
	idx := t.Index(key)
	if e := t.slots[idx].find(key); e != nil {
		e.Value++
		return nil
	}
	if float64(t.count+1)/float64(len(t.slots)) > t.opts.loadFactor {
		if err := t.grow(); err != nil {
			return err
		}
		idx = t.Index(key)
	}
	if copyKey {
		key = strings.Clone(key)
	}
	t.slots[idx].pushFront(key, value)
	t.count++
	return nil
}

// grow doubles the slot count. Entries are moved through insert on a
// temporary table that never grows itself, so stored values carry over
// unchanged.
func (t *HashTable) grow() error {
	n := len(t.slots)
	if n > t.opts.maxSlots/2 {
		return fmt.Errorf("%w: cannot grow %d slots past limit %d", ErrAllocationFailure, n, t.opts.maxSlots)
	}
	next := &HashTable{
		slots: make([]chain, 2*n),
		opts: &options{
			hashFunc:   t.opts.hashFunc,
			loadFactor: math.Inf(1),
			maxSlots:   t.opts.maxSlots,
			logger:     t.opts.logger,
		},
	}
	var err error
	for i := range t.slots {
		t.slots[i].each(func(e Entry) bool {
			err = next.insert(e.Key, e.Value, false)
			return err == nil
		})
		if err != nil {
			return err
		}
	}
	for i := range t.slots {
		t.slots[i].clear()
	}
	t.slots = next.slots
	t.resizes++
	t.opts.logger.WithFields(log.Fields{
		"old_slots": n,
		"new_slots": len(t.slots),
		"entries":   t.count,
	}).Debug("hash table resized")
	return nil
}

func (t *HashTable) Lookup(key string) (int, error) {
	if t.destroyed {
		return 0, ErrNotFound
	}
	if e := t.slots[t.Index(key)].find(key); e != nil {
		return e.Value, nil
	}
	return 0, ErrNotFound
}

func (t *HashTable) Contains(key string) bool {
	_, err := t.Lookup(key)
	return err == nil
}

// Remove unlinks key from its chain. Removing a key that is not present
// is not an error; it reports false.
func (t *HashTable) Remove(key string) bool {
	if t.destroyed || !t.slots[t.Index(key)].remove(key) {
		t.opts.logger.WithField("key", key).Debug("remove: no such key")
		return false
	}
	t.count--
	return true
}

func (t *HashTable) Size() int {
	return t.count
}

func (t *HashTable) Capacity() int {
	return len(t.slots)
}

func (t *HashTable) EmptySlots() int {
	empty := 0
	for i := range t.slots {
		if t.slots[i].empty() {
			empty++
		}
	}
	return empty
}

func (t *HashTable) LoadFactor() float64 {
	if len(t.slots) == 0 {
		return 0
	}
	return float64(t.count) / float64(len(t.slots))
}

// ForEach visits entries in slot order and, within a slot, newest first.
// Returning false from visit stops the walk.
func (t *HashTable) ForEach(visit func(Entry) bool) {
	for i := range t.slots {
		if !t.slots[i].each(visit) {
			return
		}
	}
}

// ForEachSlot visits every non-empty slot with a copy of its chain.
func (t *HashTable) ForEachSlot(visit func(index int, entries []Entry) bool) {
	for i := range t.slots {
		if t.slots[i].empty() {
			continue
		}
		if !visit(i, t.slots[i].values()) {
			return
		}
	}
}

func (t *HashTable) Entries() []Entry {
	entries := make([]Entry, 0, t.count)
	t.ForEach(func(e Entry) bool {
		entries = append(entries, e)
		return true
	})
	return entries
}

func (t *HashTable) Stats() Stats {
	s := Stats{
		Entries:    t.count,
		Slots:      len(t.slots),
		EmptySlots: t.EmptySlots(),
		LoadFactor: t.LoadFactor(),
		Resizes:    t.resizes,
	}
	for i := range t.slots {
		if n := t.slots[i].len(); n > s.LongestChain {
			s.LongestChain = n
		}
	}
	return s
}
