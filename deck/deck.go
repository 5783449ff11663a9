// Package deck turns a seed into a shuffled deck: a pure function
// seed -> ordered card list, as pinned in spec.md §4.1. Deck
// generation itself is explicitly out of this solver's scope as a
// design concern (spec.md §1 lists "the deterministic PRNG-based
// shuffle" among the external collaborators whose *interface* is
// pinned but whose internals are not), but the shuffle's determinism
// is exactly what makes a seed a reproducible deal, so its bit-exact
// behavior is still a hard requirement, not a free implementation
// choice.
package deck

import (
	"fmt"

	"github.com/cardforge/klondike-solver/card"
)

// Generate builds the canonically-ordered deck (suit-major H,D,C,S;
// rank 1..13 within each suit) for numDecks copies of a standard
// 52-card deck, then applies an in-place Fisher-Yates shuffle driven
// by MT19937 seeded with seed. All cards are returned face-up; callers
// decide what to do with FaceUp during setup.
func Generate(seed uint32, numDecks int) ([]card.Card, error) {
	if numDecks < 1 {
		return nil, fmt.Errorf("deck: numDecks must be >= 1, got %d", numDecks)
	}

	cards := make([]card.Card, 0, 52*numDecks)
	for d := 0; d < numDecks; d++ {
		for s := card.Hearts; s <= card.Spades; s++ {
			for r := card.MinRank; r <= card.MaxRank; r++ {
				cards = append(cards, card.Card{Suit: s, Rank: r, FaceUp: true})
			}
		}
	}

	rng := newMT19937(seed)
	for i := len(cards) - 1; i >= 1; i-- {
		j := rng.uniformInt(uint32(i))
		cards[i], cards[j] = cards[j], cards[i]
	}
	return cards, nil
}
