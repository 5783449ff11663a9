// Package fingerprint implements the 48-byte compact state encoding
// spec.md §4.3 pins as the cross-implementation state-identity
// surface. It intentionally does not depend on package game: it is
// handed raw piles and a stock-cursor value so that game.State (which
// needs a Fingerprint method) can depend on this package without a
// cycle.
//
// This is a deliberately different technique from the teacher's
// zobrist package: zobrist hashing folds a position down to a
// randomized 64-bit integer for transposition-table lookups, where
// occasional hash collisions are an accepted cost. Here the encoding
// must be an exact, deterministic byte string that two independent
// implementations of this solver produce identically for the same
// position -- a randomized hash cannot serve that role, so this
// package builds the packed-bitstream encoding spec.md specifies
// directly instead of reusing a zobrist-style hash.
package fingerprint

import "github.com/cardforge/klondike-solver/card"

// Size is the fixed length of a Fingerprint in bytes. Derived from
// spec.md §4.3: a single 52-card deck produces exactly 52 card fields
// plus 11 pile-separator sentinels (one after each of the 7 tableau
// piles and each of the 4 foundation piles) plus 1 stock-cursor field
// = 64 six-bit fields = 384 bits = 48 bytes, regardless of how the 52
// cards are currently distributed across piles.
const Size = 48

const fieldBits = 6
const totalFields = 64

// sentinel is the all-ones 6-bit value used to separate piles.
const sentinel = 0x3f

// Fingerprint is the packed byte encoding of a searchable state.
type Fingerprint [Size]byte

// bitWriter packs 6-bit fields into a byte buffer, little-endian
// within each byte: the first field occupies bits 0..5 of byte 0, the
// next occupies bits 6..7 of byte 0 and bits 0..3 of byte 1, and so
// on, exactly as spec.md §4.3 requires.
type bitWriter struct {
	buf      [Size]byte
	bitIndex int
}

func (w *bitWriter) writeField(v uint8) {
	bit := w.bitIndex
	for i := 0; i < fieldBits; i++ {
		if v&(1<<uint(i)) != 0 {
			byteIdx := (bit + i) / 8
			bitIdx := uint((bit + i) % 8)
			w.buf[byteIdx] |= 1 << bitIdx
		}
	}
	w.bitIndex += fieldBits
}

// Encode packs the tableau, foundation, and stock piles plus the
// current stock cursor into a Fingerprint, in the exact field order
// spec.md §4.3 specifies: tableau[0..6] (each followed by a sentinel),
// foundation[0..3] (each followed by a sentinel), stock, then
// stockPosition.
//
// tableaus must have length 7 and foundations length 4; this is an
// internal invariant of game.State, not something callers need to
// vary.
func Encode(tableaus [][]card.Card, foundations [][]card.Card, stock []card.Card, stockPosition int) Fingerprint {
	w := &bitWriter{}
	for _, p := range tableaus {
		for _, c := range p {
			w.writeField(uint8(c.Code()))
		}
		w.writeField(sentinel)
	}
	for _, p := range foundations {
		for _, c := range p {
			w.writeField(uint8(c.Code()))
		}
		w.writeField(sentinel)
	}
	for _, c := range stock {
		w.writeField(uint8(c.Code()))
	}
	w.writeField(uint8(stockPosition & 0x3f))

	fieldsWritten := w.bitIndex / fieldBits
	if fieldsWritten != totalFields {
		panic("fingerprint: unexpected field count; is the card multiset not exactly 52?")
	}
	return Fingerprint(w.buf)
}

// Bytes returns the fingerprint as a byte slice.
func (f Fingerprint) Bytes() []byte {
	return f[:]
}
