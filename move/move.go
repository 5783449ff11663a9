// Package move defines the tagged Move record spec.md §3 specifies: a
// reversible transition plus the minimum data do/undo needs to invert
// it. This mirrors the shape of domino14/macondo's move.Move (a
// single struct carrying a MoveType discriminant and only the fields
// that type needs) but the fields themselves are entirely
// Klondike-specific -- there is no "tiles played" or "equity" here,
// just pile coordinates and the flip/cursor bookkeeping do/undo need.
package move

import (
	"fmt"

	"github.com/cardforge/klondike-solver/card"
)

// Type discriminates the four move shapes spec.md §3 defines.
type Type uint8

const (
	// Tableau moves a full face-up run from one tableau pile to
	// another, or a single tableau top card to its foundation.
	Tableau Type = iota
	// TableauPartial moves a suffix of a face-up run, leaving at
	// least one face-up card behind on the source pile.
	TableauPartial
	// Stock moves the currently-reachable stock card onto a tableau
	// or foundation pile, then advances the stock cursor.
	Stock
	// RepileStock resets the stock cursor to the start of a fresh
	// pass.
	RepileStock
)

func (t Type) String() string {
	switch t {
	case Tableau:
		return "Tableau"
	case TableauPartial:
		return "TableauPartial"
	case Stock:
		return "Stock"
	case RepileStock:
		return "RepileStock"
	}
	return "Unknown"
}

// PileRef identifies one of the game's piles by kind and index:
// Tableau selects a tableau or a foundation pile, Index is 0..6 or 0..3. The
// stock is referenced implicitly (there is only one), so it needs no
// PileRef.
type PileRef struct {
	Tableau bool // true: tableau[Index]; false: foundation[Index]
	Index   int
}

// Move is a tagged record. Only the fields relevant to Action are
// meaningful; the rest are zero. This keeps the type a single flat
// struct, the way macondo's move.Move is a single struct behind a
// MoveType discriminant, rather than an interface with four
// implementations -- the solver constructs, copies, and pushes
// millions of these per solve, and a flat struct avoids both
// allocation and a type switch on the hot path.
type Move struct {
	Action Type

	// Tableau / TableauPartial
	MovedCard   card.Card
	From        PileRef
	To          PileRef
	CardsToMove int
	FlippedCard bool

	// Stock
	PrevStockPosition int
	StockMovePosition int
	StockTo           PileRef

	// RepileStock
	// PrevStockPosition (above) is reused for RepileStock's undo data.
}

// ShortDescription renders a one-line human-readable summary, in the
// spirit of macondo's move.Move.ShortDescription, used in logs and in
// solution listings.
func (m Move) ShortDescription() string {
	switch m.Action {
	case Tableau:
		return fmt.Sprintf("move %s run(%d) %s -> %s", m.MovedCard, m.CardsToMove, pileLabel(m.From), pileLabel(m.To))
	case TableauPartial:
		return fmt.Sprintf("split %s run(%d) %s -> %s", m.MovedCard, m.CardsToMove, pileLabel(m.From), pileLabel(m.To))
	case Stock:
		return fmt.Sprintf("stock %s[%d] -> %s", m.MovedCard, m.StockMovePosition, pileLabel(m.StockTo))
	case RepileStock:
		return "repile stock"
	}
	return "unknown move"
}

func pileLabel(p PileRef) string {
	if p.Tableau {
		return fmt.Sprintf("tableau[%d]", p.Index)
	}
	return fmt.Sprintf("foundation[%d]", p.Index)
}

func (m Move) String() string {
	return m.ShortDescription()
}
