// Package pile implements the ordered card sequences Klondike is built
// from: the seven tableau columns, the four foundations, and the
// stock. A Pile is a thin, allocation-conscious wrapper around a
// []card.Card; the hot path in the solver calls MoveCards with small
// n many millions of times per solve, so this package avoids anything
// fancier than slice append/truncate.
package pile

import "github.com/cardforge/klondike-solver/card"

// Kind tags what a Pile is for. It does not constrain what cards can
// be in it; package movegen only generates moves that follow the
// Klondike placement rules, and game.State applies them unchecked.
type Kind uint8

const (
	None Kind = iota
	Tableau
	Foundation
	Stock
)

// Pile is an ordered sequence of cards. The tail of Cards is the top
// of the pile: the card not overlapped by any other.
type Pile struct {
	Kind  Kind
	Cards []card.Card
}

// New returns an empty pile of the given kind.
func New(k Kind) *Pile {
	return &Pile{Kind: k, Cards: make([]card.Card, 0, 13)}
}

// Size returns the number of cards in the pile.
func (p *Pile) Size() int { return len(p.Cards) }

// HasCards reports whether the pile is non-empty.
func (p *Pile) HasCards() bool { return len(p.Cards) > 0 }

// Top returns the top card and true, or the zero Card and false if
// the pile is empty.
func (p *Pile) Top() (card.Card, bool) {
	if len(p.Cards) == 0 {
		return card.Card{}, false
	}
	return p.Cards[len(p.Cards)-1], true
}

// GetFromTop returns the card k positions down from the top: k=0 is
// the top card itself. It panics if k is out of range, the same way
// an out-of-bounds slice index would; callers are expected to check
// Size first.
func (p *Pile) GetFromTop(k int) card.Card {
	return p.Cards[len(p.Cards)-1-k]
}

// At returns the card at absolute index i, 0 being the bottom of the
// pile.
func (p *Pile) At(i int) card.Card { return p.Cards[i] }

// Set overwrites the card at absolute index i in place, used by
// do/undo to flip a card's FaceUp bit without disturbing order.
func (p *Pile) Set(i int, c card.Card) { p.Cards[i] = c }

// MoveCards transfers the last n cards of from (in order, so the top
// of from becomes the top of to) onto the tail of to.
func MoveCards(from, to *Pile, n int) {
	if n == 0 {
		return
	}
	split := len(from.Cards) - n
	to.Cards = append(to.Cards, from.Cards[split:]...)
	from.Cards = from.Cards[:split]
}

// MoveCard removes the card at fromPos (negative indexes count from
// the top, -1 being the top card itself) from "from" and inserts it
// at toPos in "to" (negative indexes count from the tail, -1 meaning
// "append to the tail").
func MoveCard(from *Pile, fromPos int, to *Pile, toPos int) {
	idx := resolveIndex(fromPos, len(from.Cards))
	c := from.Cards[idx]
	from.Cards = append(from.Cards[:idx], from.Cards[idx+1:]...)

	insertAt := resolveInsertIndex(toPos, len(to.Cards))
	to.Cards = append(to.Cards, card.Card{})
	copy(to.Cards[insertAt+1:], to.Cards[insertAt:])
	to.Cards[insertAt] = c
}

// resolveIndex turns a possibly-negative element index (Python-slice
// style, -1 == last element) into an absolute index into a slice of
// the given length.
func resolveIndex(pos, length int) int {
	if pos < 0 {
		return length + pos
	}
	return pos
}

// resolveInsertIndex turns a possibly-negative insertion index into
// an absolute insertion point; -1 means "after the last element",
// i.e. append.
func resolveInsertIndex(pos, length int) int {
	if pos < 0 {
		return length + pos + 1
	}
	return pos
}

// Clone returns a deep copy of the pile.
func (p *Pile) Clone() *Pile {
	c := &Pile{Kind: p.Kind, Cards: make([]card.Card, len(p.Cards))}
	copy(c.Cards, p.Cards)
	return c
}
