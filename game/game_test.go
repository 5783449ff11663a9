package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cardforge/klondike-solver/card"
	"github.com/cardforge/klondike-solver/move"
)

func TestSetUpDealsCorrectPileSizes(t *testing.T) {
	s, err := SetUp(1, 1)
	require.NoError(t, err)

	for i, t2 := range s.Tableau {
		assert.Equalf(t, i+1, t2.Size(), "tableau[%d] size", i)
		top, ok := t2.Top()
		require.True(t, ok)
		assert.True(t, top.FaceUp)
		for j := 0; j < t2.Size()-1; j++ {
			assert.Falsef(t, t2.At(j).FaceUp, "tableau[%d][%d] should be face-down", i, j)
		}
	}
	assert.Equal(t, 52-28, s.Stock.Size())
	for _, f := range s.Foundation {
		assert.Equal(t, 0, f.Size())
	}
}

func TestSetUpRejectsMultiDeck(t *testing.T) {
	_, err := SetUp(1, 2)
	assert.Error(t, err)
}

func TestSetUpIsDeterministic(t *testing.T) {
	a, err := SetUp(42, 1)
	require.NoError(t, err)
	b, err := SetUp(42, 1)
	require.NoError(t, err)
	assert.Equal(t, a.Fingerprint(), b.Fingerprint())
}

func TestSetUpConservesAllCards(t *testing.T) {
	s, err := SetUp(7, 1)
	require.NoError(t, err)

	seen := make(map[int]bool)
	for _, c := range s.CardMultiset() {
		assert.False(t, seen[c.Code()], "duplicate card code %d", c.Code())
		seen[c.Code()] = true
	}
	assert.Len(t, seen, 52)
}

func TestRepileStockPositionFormula(t *testing.T) {
	s, err := SetUp(1, 1)
	require.NoError(t, err)
	require.GreaterOrEqual(t, s.Stock.Size(), NumDraw)

	s.RepileStock()
	assert.Equal(t, NumDraw-1, s.StockPosition)
	assert.False(t, s.IsStockDirty())

	s.StockPosition = 0
	assert.True(t, s.IsStockDirty())
}

func TestIsWonRequiresEverythingCleared(t *testing.T) {
	s, err := SetUp(1, 1)
	require.NoError(t, err)
	assert.False(t, s.IsWon())

	for i := range s.Tableau {
		s.Tableau[i].Cards = nil
	}
	s.Stock.Cards = nil
	assert.False(t, s.IsWon(), "empty tableau/stock alone isn't a win without full foundations")

	for i := range s.Foundation {
		cards := make([]card.Card, 0, 13)
		for r := 1; r <= 13; r++ {
			cards = append(cards, card.New(card.Suit(i), r))
		}
		s.Foundation[i].Cards = cards
	}
	assert.True(t, s.IsWon())
}

func TestGetNextInStockSequence(t *testing.T) {
	s, err := SetUp(3, 1)
	require.NoError(t, err)
	size := s.Stock.Size()
	require.Greater(t, size, NumDraw)

	i := s.GetNextInStock(-1)
	assert.Equal(t, NumDraw-1, i)

	steps := 0
	for i != size {
		next := s.GetNextInStock(i)
		assert.Greater(t, next, i)
		i = next
		steps++
		require.Less(t, steps, size+2, "GetNextInStock should terminate")
	}
}

func TestDoUndoTableauMoveIsInvolution(t *testing.T) {
	s, err := SetUp(5, 1)
	require.NoError(t, err)
	before := s.Fingerprint()

	m := move.Move{
		Action:      move.Tableau,
		From:        move.PileRef{Tableau: true, Index: 6},
		To:          move.PileRef{Tableau: true, Index: 0},
		CardsToMove: 1,
		FlippedCard: true,
	}
	s.DoMove(m)
	assert.NotEqual(t, before, s.Fingerprint())

	s.UndoMove(m)
	assert.Equal(t, before, s.Fingerprint())
}

func TestDoUndoStockMoveIsInvolution(t *testing.T) {
	s, err := SetUp(5, 1)
	require.NoError(t, err)
	before := s.Fingerprint()
	beforePos := s.StockPosition

	pos := s.StockPosition
	c := s.Stock.At(pos)
	m := move.Move{
		Action:            move.Stock,
		MovedCard:         c,
		StockTo:           move.PileRef{Tableau: true, Index: 0},
		StockMovePosition: pos,
		PrevStockPosition: beforePos,
	}
	s.DoMove(m)
	assert.NotEqual(t, before, s.Fingerprint())

	s.UndoMove(m)
	assert.Equal(t, before, s.Fingerprint())
	assert.Equal(t, beforePos, s.StockPosition)
}

func TestDoUndoRepileStockIsInvolution(t *testing.T) {
	s, err := SetUp(5, 1)
	require.NoError(t, err)
	beforePos := s.StockPosition
	s.StockPosition = 0

	m := move.Move{Action: move.RepileStock, PrevStockPosition: 0}
	s.DoMove(m)
	assert.Equal(t, NumDraw-1, s.StockPosition)

	s.UndoMove(m)
	assert.Equal(t, 0, s.StockPosition)
	_ = beforePos
}
