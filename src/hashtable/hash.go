package hashtable

import (
	"fmt"
	"strings"
)

// HashFunc selects how a key is turned into a raw hash value.
type HashFunc int

const (
	// Additive sums the byte values of the key.
	Additive HashFunc = iota + 1
	// Weighted sums (position+1) * byte value, position starting at 0.
	Weighted
)

func ParseHashFunc(s string) (HashFunc, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "additive", "1":
		return Additive, nil
	case "weighted", "2":
		return Weighted, nil
	}
	return 0, fmt.Errorf("%w: unknown hash function %q", ErrInvalidArgument, s)
}

func (f HashFunc) String() string {
	switch f {
	case Additive:
		return "additive"
	case Weighted:
		return "weighted"
	}
	return fmt.Sprintf("HashFunc(%d)", int(f))
}

// Both sums wrap around in 32 bits, so the result may be negative.
func additiveHash(s string) int32 {
	var r int32
	for i := 0; i < len(s); i++ {
		r += int32(s[i])
	}
	return r
}

func weightedHash(s string) int32 {
	var r int32
	for i := 0; i < len(s); i++ {
		r += int32(i+1) * int32(s[i])
	}
	return r
}

func (f HashFunc) sum(s string) int32 {
	if f == Weighted {
		return weightedHash(s)
	}
	return additiveHash(s)
}

// slotIndex reduces a raw hash into [0, slots).
func slotIndex(h int32, slots int) int {
	idx := int(int64(h) % int64(slots))
	if idx < 0 {
		idx += slots
	}
	return idx
}
