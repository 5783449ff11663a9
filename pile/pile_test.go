package pile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cardforge/klondike-solver/card"
)

func build(cards ...card.Card) *Pile {
	p := New(Tableau)
	p.Cards = append(p.Cards, cards...)
	return p
}

func TestMoveCardsPreservesOrder(t *testing.T) {
	from := build(card.New(card.Hearts, 5), card.New(card.Clubs, 4), card.New(card.Diamonds, 3))
	to := build(card.New(card.Spades, 13))

	MoveCards(from, to, 2)

	require.Equal(t, 1, from.Size())
	require.Equal(t, 3, to.Size())
	assert.Equal(t, card.New(card.Clubs, 4), to.At(1))
	assert.Equal(t, card.New(card.Diamonds, 3), to.At(2))
}

func TestMoveCardsAllInvolution(t *testing.T) {
	from := build(card.New(card.Hearts, 5), card.New(card.Clubs, 4))
	to := New(Tableau)

	MoveCards(from, to, 2)
	MoveCards(to, from, 2)

	require.Equal(t, 2, from.Size())
	assert.Equal(t, card.New(card.Hearts, 5), from.At(0))
	assert.Equal(t, card.New(card.Clubs, 4), from.At(1))
	assert.Equal(t, 0, to.Size())
}

func TestMoveCardTopToTail(t *testing.T) {
	from := build(card.New(card.Hearts, 5), card.New(card.Clubs, 4))
	to := build(card.New(card.Spades, 13))

	MoveCard(from, -1, to, -1)

	require.Equal(t, 1, from.Size())
	require.Equal(t, 2, to.Size())
	assert.Equal(t, card.New(card.Clubs, 4), to.At(1))
}

func TestMoveCardArbitraryIndex(t *testing.T) {
	from := build(card.New(card.Hearts, 5), card.New(card.Clubs, 4), card.New(card.Diamonds, 9))
	to := New(Stock)

	// move the middle card (index 1, the "4C") to the tail of "to".
	MoveCard(from, 1, to, -1)

	require.Equal(t, 2, from.Size())
	assert.Equal(t, card.New(card.Hearts, 5), from.At(0))
	assert.Equal(t, card.New(card.Diamonds, 9), from.At(1))
	assert.Equal(t, card.New(card.Clubs, 4), to.At(0))
}

func TestGetFromTop(t *testing.T) {
	p := build(card.New(card.Hearts, 5), card.New(card.Clubs, 4), card.New(card.Diamonds, 3))
	assert.Equal(t, card.New(card.Diamonds, 3), p.GetFromTop(0))
	assert.Equal(t, card.New(card.Clubs, 4), p.GetFromTop(1))
	assert.Equal(t, card.New(card.Hearts, 5), p.GetFromTop(2))
}

func TestCloneIsIndependent(t *testing.T) {
	p := build(card.New(card.Hearts, 5))
	c := p.Clone()
	c.Cards[0].FaceUp = true
	assert.False(t, p.Cards[0].FaceUp)
}
