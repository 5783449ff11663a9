package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cardforge/klondike-solver/game"
	"github.com/cardforge/klondike-solver/move"
)

func TestBoardContainsEachTableauPile(t *testing.T) {
	s, err := game.SetUp(1, 1)
	require.NoError(t, err)

	out := Board(s)
	for i := 0; i < 7; i++ {
		assert.Contains(t, out, "T"+string(rune('0'+i))+":")
	}
	assert.Contains(t, out, "Foundations:")
	assert.Contains(t, out, "Stock (")
}

func TestSolutionRendersEveryMove(t *testing.T) {
	s, err := game.SetUp(5, 1)
	require.NoError(t, err)

	solution := []move.Move{
		{Action: move.RepileStock, PrevStockPosition: s.StockPosition},
	}
	out := Solution(s, solution)
	assert.Contains(t, out, "1 moves")
	assert.Contains(t, out, "repile stock")
}
