package molecule

import (
	"strconv"
	"strings"

	"github.com/bits-and-blooms/bitset"
)

// ─────────────────────────────────────────────────────────────────────────────
// Fingerprint Structure
// ─────────────────────────────────────────────────────────────────────────────

// Fingerprint is a fixed-length bit vector with one bit per schema property.
type Fingerprint struct {
	bits   *bitset.BitSet
	length int
}

// NewFingerprint returns an all-zero fingerprint of the given length.
func NewFingerprint(length int) *Fingerprint {
	if length < 0 {
		length = 0
	}
	return &Fingerprint{bits: bitset.New(uint(length)), length: length}
}

// Len is the number of bits, equal to the schema size.
func (fp *Fingerprint) Len() int {
	return fp.length
}

// Set turns bit i on.  Out-of-range indices are ignored.
func (fp *Fingerprint) Set(i int) {
	if i < 0 || i >= fp.length {
		return
	}
	fp.bits.Set(uint(i))
}

// Indices returns the set bit positions in increasing order.
func (fp *Fingerprint) Indices() []int {
	out := make([]int, 0, fp.bits.Count())
	for i, ok := fp.bits.NextSet(0); ok && int(i) < fp.length; i, ok = fp.bits.NextSet(i + 1) {
		out = append(out, int(i))
	}
	return out
}

// String renders the indices of set bits joined by commas, for example
// "0,2,17".  An empty fingerprint renders as the empty string.
func (fp *Fingerprint) String() string {
	idx := fp.Indices()
	var sb strings.Builder
	for n, i := range idx {
		if n > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(strconv.Itoa(i))
	}
	return sb.String()
}

// PackedBytes returns the bits packed most-significant-bit first, padded to
// whole bytes.  This is the layout Milvus expects for binary vectors.
func (fp *Fingerprint) PackedBytes() []byte {
	out := make([]byte, (fp.length+7)/8)
	for _, i := range fp.Indices() {
		out[i/8] |= 0x80 >> uint(i%8)
	}
	return out
}

//Personal.AI order the ending
