// Package molecule holds the pure-Go side of fingerprint handling: bit
// vectors decoded from the native library's bit strings or byte buffers,
// and the similarity measures computed over them.
package molecule

import (
	"fmt"
	"math/bits"
	"strings"

	"github.com/turtacn/rdkit-go/pkg/errors"
)

// BitVector is a fixed-length fingerprint.  Bit i lives in byte i/8 at
// position i%8, matching the native "_as_bytes" layout.
type BitVector struct {
	kind   string
	data   []byte
	length int
	onBits int
}

// ParseBitString decodes an RDKit bit string, one '0' or '1' per bit.
func ParseBitString(kind, s string) (*BitVector, error) {
	if s == "" {
		return nil, errors.New(errors.ErrCodeMoleculeInvalidFormat, "empty fingerprint")
	}
	bv := &BitVector{kind: kind, data: make([]byte, (len(s)+7)/8), length: len(s)}
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '0':
		case '1':
			bv.data[i/8] |= 1 << uint(i%8)
			bv.onBits++
		default:
			return nil, errors.Newf(errors.ErrCodeMoleculeInvalidFormat,
				"invalid fingerprint character %q at position %d", s[i], i)
		}
	}
	return bv, nil
}

// BitVectorFromBytes wraps a packed buffer of length bits.  Bits past length
// in the last byte must be clear.
func BitVectorFromBytes(kind string, data []byte, length int) (*BitVector, error) {
	if length <= 0 || (length+7)/8 != len(data) {
		return nil, errors.Newf(errors.ErrCodeMoleculeInvalidFormat,
			"fingerprint of %d bytes cannot hold %d bits", len(data), length)
	}
	if rem := length % 8; rem != 0 && data[len(data)-1]>>uint(rem) != 0 {
		return nil, errors.New(errors.ErrCodeMoleculeInvalidFormat, "fingerprint has bits set past its length")
	}
	buf := make([]byte, len(data))
	copy(buf, data)
	bv := &BitVector{kind: kind, data: buf, length: length}
	for _, b := range buf {
		bv.onBits += bits.OnesCount8(b)
	}
	return bv, nil
}

// Kind is the fingerprint family the vector came from.
func (bv *BitVector) Kind() string { return bv.kind }

// Len is the number of bits.
func (bv *BitVector) Len() int { return bv.length }

// Count is the number of set bits.
func (bv *BitVector) Count() int { return bv.onBits }

// Density is Count/Len.
func (bv *BitVector) Density() float64 {
	return float64(bv.onBits) / float64(bv.length)
}

// Test reports whether bit i is set; out-of-range indexes are clear.
func (bv *BitVector) Test(i int) bool {
	if i < 0 || i >= bv.length {
		return false
	}
	return bv.data[i/8]&(1<<uint(i%8)) != 0
}

// OnBits lists the indexes of set bits in ascending order.
func (bv *BitVector) OnBits() []int {
	out := make([]int, 0, bv.onBits)
	for i, b := range bv.data {
		for b != 0 {
			j := bits.TrailingZeros8(b)
			out = append(out, i*8+j)
			b &= b - 1
		}
	}
	return out
}

// Bytes returns a copy of the packed representation.
func (bv *BitVector) Bytes() []byte {
	out := make([]byte, len(bv.data))
	copy(out, bv.data)
	return out
}

// String renders the vector back as a bit string.
func (bv *BitVector) String() string {
	var sb strings.Builder
	sb.Grow(bv.length)
	for i := 0; i < bv.length; i++ {
		if bv.Test(i) {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	return sb.String()
}

// intersect returns |a AND b| and |a OR b|.
func intersect(a, b *BitVector) (and, or int, err error) {
	if a.length != b.length {
		return 0, 0, errors.New(errors.ErrCodeValidation,
			fmt.Sprintf("fingerprint lengths differ: %d and %d", a.length, b.length))
	}
	for i := range a.data {
		and += bits.OnesCount8(a.data[i] & b.data[i])
		or += bits.OnesCount8(a.data[i] | b.data[i])
	}
	return and, or, nil
}

//Personal.AI order the ending
