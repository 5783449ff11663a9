package movegen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cardforge/klondike-solver/card"
	"github.com/cardforge/klondike-solver/game"
	"github.com/cardforge/klondike-solver/move"
)

func TestFindAutoMoveGuaranteedFoundation(t *testing.T) {
	s, err := game.SetUp(1, 1)
	require.NoError(t, err)
	for r := 1; r <= 4; r++ {
		s.Foundation[card.Hearts].Cards = append(s.Foundation[card.Hearts].Cards, card.New(card.Hearts, r))
	}
	for r := 1; r <= 5; r++ {
		s.Foundation[card.Clubs].Cards = append(s.Foundation[card.Clubs].Cards, card.New(card.Clubs, r))
		s.Foundation[card.Spades].Cards = append(s.Foundation[card.Spades].Cards, card.New(card.Spades, r))
	}
	for i := range s.Tableau {
		s.Tableau[i].Cards = []card.Card{card.New(card.Spades, 9)}
		s.Tableau[i].Cards[0].FaceUp = true
	}
	s.Tableau[2].Cards = []card.Card{card.New(card.Hearts, 5)}
	s.Tableau[2].Cards[0].FaceUp = true

	m, ok := FindAutoMove(s)
	require.True(t, ok)
	assert.Equal(t, move.Tableau, m.Action)
	assert.True(t, m.MovedCard.Equals(card.New(card.Hearts, 5)))
	assert.False(t, m.To.Tableau)
}

func TestFindAutoMoveKingRunToEmptyPile(t *testing.T) {
	s, err := game.SetUp(1, 1)
	require.NoError(t, err)
	for i := range s.Tableau {
		s.Tableau[i].Cards = []card.Card{card.New(card.Hearts, 9)}
	}
	s.Tableau[0].Cards = []card.Card{card.New(card.Hearts, 9)}
	s.Tableau[1].Cards = []card.Card{card.New(card.Spades, 13)}
	s.Tableau[2].Cards = []card.Card{card.New(card.Hearts, 13)}
	s.Tableau[3].Cards = []card.Card{card.New(card.Clubs, 13)}
	s.Tableau[4].Cards = nil
	s.Tableau[5].Cards = []card.Card{
		card.New(card.Clubs, 2),
		card.New(card.Diamonds, 13),
	}
	s.Tableau[5].Cards[1].FaceUp = true

	m, ok := FindAutoMove(s)
	require.True(t, ok)
	assert.Equal(t, move.Tableau, m.Action)
	assert.True(t, m.MovedCard.Equals(card.New(card.Diamonds, 13)))
	assert.Equal(t, 4, m.To.Index)
	assert.True(t, m.FlippedCard)
}

func TestFindAutoMoveNoneWhenNothingApplies(t *testing.T) {
	s, err := game.SetUp(1, 1)
	require.NoError(t, err)
	// Mid-rank tops with nothing built on the foundations yet, no King
	// exposed beneath a face-down card, and a stock whose checked
	// positions are neither foundation-eligible nor Kings.
	for i := range s.Tableau {
		s.Tableau[i].Cards = []card.Card{card.New(card.Hearts, 9)}
		s.Tableau[i].Cards[0].FaceUp = true
	}
	s.Stock.Cards = make([]card.Card, 0, 24)
	for r := 4; r <= 9; r++ {
		s.Stock.Cards = append(s.Stock.Cards, card.New(card.Clubs, r))
	}
	s.StockPosition = 2

	_, ok := FindAutoMove(s)
	assert.False(t, ok)
}
