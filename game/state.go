// Package game implements the Klondike game-state model: spec.md §3's
// "Game state" -- the seven tableau piles, four foundations, one
// stock, and the stock cursor -- plus the operations spec.md §4.3
// assigns it (SetUp, IsWon, IsStockDirty, RepileStock,
// GetNextInStock, Fingerprint) and the move applier of §4.4
// (DoMove/UndoMove).
//
// This plays the role domino14/macondo/game.Game plays for Scrabble,
// but the state representation itself is not adapted from that
// file: macondo's Game carries a move-history-driven snapshot stack
// (BackupMode, stateStack) because a Scrabble move is not cheaply
// reversible (it touches cross-sets across the whole board). A
// Klondike move is cheap to invert directly (spec.md §4.4), so this
// State carries no history at all; move.Move itself carries
// everything DoMove/UndoMove need, per spec.md's design note in §9.
package game

import (
	"errors"
	"fmt"

	"github.com/cardforge/klondike-solver/card"
	"github.com/cardforge/klondike-solver/deck"
	"github.com/cardforge/klondike-solver/fingerprint"
	"github.com/cardforge/klondike-solver/move"
	"github.com/cardforge/klondike-solver/pile"
)

// NumDraw is the standard Klondike three-card draw. spec.md's
// glossary calls out that the system is "parameterized for future
// variation but currently fixes it at 3"; NumDraw is that fixed
// point, referenced everywhere a literal 3 would otherwise appear.
const NumDraw = 3

const numTableau = 7
const numFoundation = card.NumSuits

// State is one Klondike position. It is created by SetUp, mutated
// exclusively by DoMove/UndoMove, and read by movegen and Fingerprint.
// Each State exclusively owns its piles; nothing about it is safe to
// share across goroutines, the same restriction macondo's Game places
// on its Board.
type State struct {
	Tableau       [numTableau]*pile.Pile
	Foundation    [numFoundation]*pile.Pile
	Stock         *pile.Pile
	StockPosition int
	Seed          uint64
}

// SetUp deals a fresh game from seed: generates the deck, deals
// tableau[i] = i+1 cards for i in 0..6 (flipping all but the top of
// each pile face-down), puts the rest in stock, and repiles the
// stock cursor. Only single-deck Klondike is within this solver's
// reachable-state model (spec.md never defines a win condition, a
// fingerprint size, or a move set for more than 52 cards), so numDecks
// other than 1 is rejected here even though package deck accepts it
// for deck-code interoperability (see SPEC_FULL.md §4).
func SetUp(seed uint64, numDecks int) (*State, error) {
	if numDecks != 1 {
		return nil, fmt.Errorf("game: solver only supports a single 52-card deck, got numDecks=%d", numDecks)
	}

	cards, err := deck.Generate(uint32(seed), numDecks)
	if err != nil {
		return nil, err
	}

	s := &State{Seed: seed}
	for i := range s.Tableau {
		s.Tableau[i] = pile.New(pile.Tableau)
	}
	for i := range s.Foundation {
		s.Foundation[i] = pile.New(pile.Foundation)
	}
	s.Stock = pile.New(pile.Stock)
	s.Stock.Cards = append(s.Stock.Cards, cards...)

	for i := 0; i < numTableau; i++ {
		pile.MoveCards(s.Stock, s.Tableau[i], i+1)
		t := s.Tableau[i]
		for j := 0; j < t.Size(); j++ {
			c := t.At(j)
			c.FaceUp = j == t.Size()-1
			t.Set(j, c)
		}
	}

	s.RepileStock()
	return s, nil
}

// IsWon reports whether the stock and tableau are empty and every
// foundation holds a complete ascending run of its suit.
func (s *State) IsWon() bool {
	if s.Stock.HasCards() {
		return false
	}
	for _, t := range s.Tableau {
		if t.HasCards() {
			return false
		}
	}
	for i, f := range s.Foundation {
		if f.Size() != card.MaxRank {
			return false
		}
		for j, c := range f.Cards {
			if c.Suit != card.Suit(i) || c.Rank != j+1 {
				return false
			}
		}
	}
	return true
}

// freshStockPosition is the canonical "start of a fresh pass" cursor
// position: the last of up to NumDraw cards from the top of the
// stock.
func freshStockPosition(stockSize int) int {
	n := stockSize
	if n > NumDraw {
		n = NumDraw
	}
	return n - 1
}

// RepileStock resets the visible-cursor to the start of a fresh pass.
// Valid even with an empty stock, in which case it leaves the cursor
// at -1, an unused overflow position.
func (s *State) RepileStock() {
	s.StockPosition = freshStockPosition(s.Stock.Size())
}

// IsStockDirty reports whether a RepileStock right now would be a
// meaningful move rather than a no-op: the stock must have cards, and
// the cursor must not already sit at the canonical fresh-pass
// position a RepileStock would put it at.
func (s *State) IsStockDirty() bool {
	if !s.Stock.HasCards() {
		return false
	}
	return s.StockPosition != freshStockPosition(s.Stock.Size())
}

// GetNextInStock returns the next visible stock index after i: i+3 if
// that stays within the stock, the final index (to expose the
// trailing 1- or 2-card tail) if i+3 would overshoot but i is not
// already the last card, or stock.Size() (meaning "end of iteration")
// if i is already the last card.
func (s *State) GetNextInStock(i int) int {
	size := s.Stock.Size()
	if next := i + NumDraw; next < size {
		return next
	}
	if i == size-1 {
		return size
	}
	return size - 1
}

// Fingerprint returns the 48-byte packed encoding of the current
// searchable state, per spec.md §4.3 / package fingerprint.
func (s *State) Fingerprint() fingerprint.Fingerprint {
	tableaus := make([][]card.Card, numTableau)
	for i, t := range s.Tableau {
		tableaus[i] = t.Cards
	}
	foundations := make([][]card.Card, numFoundation)
	for i, f := range s.Foundation {
		foundations[i] = f.Cards
	}
	return fingerprint.Encode(tableaus, foundations, s.Stock.Cards, s.StockPosition)
}

// Pile resolves a move.PileRef to the concrete pile it names.
func (s *State) Pile(ref move.PileRef) *pile.Pile {
	if ref.Tableau {
		return s.Tableau[ref.Index]
	}
	return s.Foundation[ref.Index]
}

// CardMultiset returns every card currently in play, used by tests
// asserting spec.md §8's card-conservation invariant.
func (s *State) CardMultiset() []card.Card {
	all := make([]card.Card, 0, 52)
	for _, t := range s.Tableau {
		all = append(all, t.Cards...)
	}
	for _, f := range s.Foundation {
		all = append(all, f.Cards...)
	}
	all = append(all, s.Stock.Cards...)
	return all
}

// ErrNotFaceUp reports an operation that would need to act on a
// face-down card. No function in this package currently returns it:
// DoMove and UndoMove trust movegen to only ever offer legal moves
// and do no checking of their own.
var ErrNotFaceUp = errors.New("game: card is not face-up")
