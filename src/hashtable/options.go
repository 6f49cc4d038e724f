package hashtable

import (
	"fmt"
	"io"
	"math"

	log "github.com/sirupsen/logrus"
)

const (
	DefaultLoadFactor = 1.0
	DefaultMaxSlots   = 1 << 30
)

type Option func(*options)

type options struct {
	hashFunc   HashFunc
	loadFactor float64
	maxSlots   int
	logger     log.FieldLogger
}

func defaultOptions() *options {
	discard := log.New()
	discard.SetOutput(io.Discard)
	return &options{
		hashFunc:   Additive,
		loadFactor: DefaultLoadFactor,
		maxSlots:   DefaultMaxSlots,
		logger:     discard,
	}
}

// WithHashFunc fixes the hash function for the lifetime of the table.
func WithHashFunc(f HashFunc) Option {
	return func(o *options) {
		o.hashFunc = f
	}
}

// WithLoadFactor sets the threshold that entries/slots may not exceed after
// a new key is placed.
func WithLoadFactor(threshold float64) Option {
	return func(o *options) {
		o.loadFactor = threshold
	}
}

// WithMaxSlots caps the slot count; growing past it fails with
// ErrAllocationFailure.
func WithMaxSlots(n int) Option {
	return func(o *options) {
		o.maxSlots = n
	}
}

func WithLogger(l log.FieldLogger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

func (o *options) validate() error {
	if o.hashFunc != Additive && o.hashFunc != Weighted {
		return fmt.Errorf("%w: hash function %v", ErrInvalidArgument, o.hashFunc)
	}
	if !(o.loadFactor > 0) || math.IsInf(o.loadFactor, 0) {
		return fmt.Errorf("%w: load factor %v must be a positive number", ErrInvalidArgument, o.loadFactor)
	}
	if o.maxSlots <= 0 {
		return fmt.Errorf("%w: max slots %d must be positive", ErrInvalidArgument, o.maxSlots)
	}
	return nil
}
