// Package bitstring provides the fixed-length bit strings evolved by the
// optimizer. Fitness of a bit string is its Hamming weight.
package bitstring

import (
	"fmt"
	"strings"

	"github.com/bits-and-blooms/bitset"
)

// BitString is a fixed-length sequence of bits. Copies of a BitString value
// share storage; use Clone for an independent copy.
type BitString struct {
	set *bitset.BitSet
	n   int
}

// New returns an all-zero bit string of length n.
func New(n int) BitString {
	if n < 0 {
		n = 0
	}
	return BitString{set: bitset.New(uint(n)), n: n}
}

// Parse decodes a string of '0' and '1' characters, position 0 first.
func Parse(s string) (BitString, error) {
	b := New(len(s))
	for i, c := range s {
		switch c {
		case '1':
			b.set.Set(uint(i))
		case '0':
		default:
			return BitString{}, fmt.Errorf("bitstring: invalid character %q at position %d", c, i)
		}
	}
	return b, nil
}

// MustParse is like Parse but panics on malformed input.
func MustParse(s string) BitString {
	b, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return b
}

func (b BitString) Len() int {
	return b.n
}

func (b BitString) Has(pos int) bool {
	b.check(pos)
	return b.set.Test(uint(pos))
}

func (b BitString) Set(pos int) {
	b.check(pos)
	b.set.Set(uint(pos))
}

func (b BitString) Clear(pos int) {
	b.check(pos)
	b.set.Clear(uint(pos))
}

// Flip inverts the bit at pos.
func (b BitString) Flip(pos int) {
	b.check(pos)
	b.set.Flip(uint(pos))
}

// CopyBit copies the bit at pos from src.
func (b BitString) CopyBit(src BitString, pos int) {
	if src.Has(pos) {
		b.Set(pos)
	} else {
		b.Clear(pos)
	}
}

// Fitness returns the number of bits set to one.
func (b BitString) Fitness() int {
	if b.set == nil {
		return 0
	}
	return int(b.set.Count())
}

// IsOptimum reports whether every bit is one.
func (b BitString) IsOptimum() bool {
	return b.n > 0 && b.Fitness() == b.n
}

func (b BitString) Equal(other BitString) bool {
	if b.n != other.n {
		return false
	}
	if b.n == 0 {
		return true
	}
	return b.set.Equal(other.set)
}

func (b BitString) Clone() BitString {
	if b.set == nil {
		return New(b.n)
	}
	return BitString{set: b.set.Clone(), n: b.n}
}

func (b BitString) String() string {
	var sb strings.Builder
	sb.Grow(b.n)
	for i := 0; i < b.n; i++ {
		if b.set.Test(uint(i)) {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	return sb.String()
}

func (b BitString) check(pos int) {
	if pos < 0 || pos >= b.n {
		panic(fmt.Sprintf("bitstring: position %d out of range [0,%d)", pos, b.n))
	}
}
