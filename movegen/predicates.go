// Package movegen enumerates candidate moves from a game.State: the
// full-run, partial-run, stock, and foundation move classes of
// spec.md §4.6, plus the auto-move rules of §4.7 that the solver
// applies greedily before it ever branches. This plays the role
// domino14/macondo's movegen package plays (board.go's cross-sets plus
// movegen.go's GenerateAll), but the predicates themselves have no
// Scrabble analog -- they encode Klondike's stacking and foundation
// rules directly.
package movegen

import (
	"github.com/cardforge/klondike-solver/card"
	"github.com/cardforge/klondike-solver/game"
	"github.com/cardforge/klondike-solver/pile"
)

// CanStack reports whether higher can be placed directly on top of
// lower in a tableau run: opposite colors, and lower's rank is one
// greater than higher's.
func CanStack(lower, higher card.Card) bool {
	return lower.OppositeColor(higher) && lower.Rank == higher.Rank+1
}

// CanFoundation reports whether c can be placed on foundation f: an
// empty foundation accepts only an Ace, otherwise c must be one rank
// above the current top.
func CanFoundation(c card.Card, f *pile.Pile) bool {
	top, ok := f.Top()
	if !ok {
		return c.Rank == card.MinRank
	}
	return top.Suit == c.Suit && c.Rank == top.Rank+1
}

// oppositeColorFoundations returns the two foundations of the color
// opposite c's suit.
func oppositeColorFoundations(s *game.State, c card.Card) [2]*pile.Pile {
	if c.Suit.IsRed() {
		return [2]*pile.Pile{s.Foundation[card.Clubs], s.Foundation[card.Spades]}
	}
	return [2]*pile.Pile{s.Foundation[card.Hearts], s.Foundation[card.Diamonds]}
}

// GuaranteedFoundation reports whether sending c to its foundation is
// provably safe: c is foundation-legal right now, and both
// opposite-color foundations have already climbed high enough that no
// tableau card of rank ≤ c.Rank will ever again need c to still be in
// the tableau to receive it. See spec.md §4.5 for the rank arithmetic.
func GuaranteedFoundation(s *game.State, c card.Card) bool {
	if !CanFoundation(c, s.Foundation[c.Suit]) {
		return false
	}
	opp := oppositeColorFoundations(s, c)
	minTop := minFoundationTopRank(opp[0])
	if t := minFoundationTopRank(opp[1]); t < minTop {
		minTop = t
	}
	return c.Rank <= 2+minTop
}

func minFoundationTopRank(f *pile.Pile) int {
	top, ok := f.Top()
	if !ok {
		return 0
	}
	return top.Rank
}

// TopOfRun locates the face-up suffix of p: firstFaceUp is the index
// of the first face-up card (size if the pile is all face-down or
// empty), and length is how many cards make up the run.
func TopOfRun(p *pile.Pile) (firstFaceUp, length int) {
	n := p.Size()
	i := n
	for i > 0 && p.At(i-1).FaceUp {
		i--
	}
	return i, n - i
}

// canPlaceOnTableauTop reports whether c could legally be placed atop
// tableau pile t: an empty pile accepts only a King, otherwise c must
// stack under the pile's current top.
func canPlaceOnTableauTop(t *pile.Pile, c card.Card) bool {
	top, ok := t.Top()
	if !ok {
		return c.Rank == card.MaxRank
	}
	return CanStack(top, c)
}

// TwoTableauSlots reports whether at least two distinct tableau piles
// currently have a spot c could be placed into. Retained per spec.md
// §4.5 for the extended-strategy "two-spots" auto-move variant, which
// is not wired into the default auto-move set (see
// spec.md §9's open-question resolution, recorded in DESIGN.md).
func TwoTableauSlots(s *game.State, c card.Card) bool {
	count := 0
	for _, t := range s.Tableau {
		if canPlaceOnTableauTop(t, c) {
			count++
			if count >= 2 {
				return true
			}
		}
	}
	return false
}

// HasRoomForAllKings counts empty tableau piles plus piles whose
// bottom card (face up or not) is a King, and reports whether that
// total is at least four -- i.e. whether every King already has, or
// can ever reach, a home. It also returns the index of the last empty
// pile (-1 if there is none), whatever the total; that pile is the
// destination an auto-move King relocation uses. Peeking at face-down bottom cards is deliberate: once a King
// sits at the bottom of a pile, that pile can never need a different
// King, so it counts as "spoken for" whether or not it has been
// uncovered yet.
func HasRoomForAllKings(s *game.State) (ok bool, emptyIndex int) {
	count := 0
	emptyIndex = -1
	for i, t := range s.Tableau {
		if !t.HasCards() {
			count++
			emptyIndex = i
			continue
		}
		if t.At(0).Rank == card.MaxRank {
			count++
		}
	}
	return count >= 4, emptyIndex
}

// kingAvailable reports whether some King exists outside the
// foundations -- on a tableau top-of-run, or reachable in the visible
// stock sequence -- making a Clear-with-King relocation meaningful.
func kingAvailable(s *game.State) bool {
	for _, t := range s.Tableau {
		first, _ := TopOfRun(t)
		if first < t.Size() && t.At(first).Rank == card.MaxRank {
			return true
		}
	}
	for i := s.StockPosition; i >= 0 && i < s.Stock.Size(); i = s.GetNextInStock(i) {
		if s.Stock.At(i).Rank == card.MaxRank {
			return true
		}
	}
	return false
}

// sameColorRankAvailableInStock reports whether a card equal to c (by
// rank and color, not suit) sits reachable in the visible stock
// sequence -- used by the partial-run split rule to decide whether
// splitting a run is ever going to pay off.
func sameColorRankAvailableInStock(s *game.State, c card.Card) bool {
	for i := s.StockPosition; i >= 0 && i < s.Stock.Size(); i = s.GetNextInStock(i) {
		sc := s.Stock.At(i)
		if sc.Rank == c.Rank && sc.Suit.IsRed() == c.Suit.IsRed() {
			return true
		}
	}
	return false
}

// sameColorRankAvailableOnTableau reports whether a card of c's rank
// and color sits at the top of some tableau pile.
func sameColorRankAvailableOnTableau(s *game.State, c card.Card) bool {
	for _, t := range s.Tableau {
		top, ok := t.Top()
		if ok && top.Rank == c.Rank && top.Suit.IsRed() == c.Suit.IsRed() {
			return true
		}
	}
	return false
}
