package move

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cardforge/klondike-solver/card"
)

func TestShortDescriptionTableau(t *testing.T) {
	m := Move{
		Action:      Tableau,
		MovedCard:   card.New(card.Hearts, 5),
		From:        PileRef{Tableau: true, Index: 0},
		To:          PileRef{Tableau: true, Index: 3},
		CardsToMove: 2,
	}
	assert.Contains(t, m.ShortDescription(), "tableau[0]")
	assert.Contains(t, m.ShortDescription(), "tableau[3]")
}

func TestShortDescriptionRepileStock(t *testing.T) {
	m := Move{Action: RepileStock}
	assert.Equal(t, "repile stock", m.ShortDescription())
}

func TestTypeString(t *testing.T) {
	assert.Equal(t, "Stock", Stock.String())
	assert.Equal(t, "TableauPartial", TableauPartial.String())
}

func TestPileLabelFoundation(t *testing.T) {
	m := Move{
		Action:  Stock,
		StockTo: PileRef{Tableau: false, Index: 2},
	}
	assert.Contains(t, m.ShortDescription(), "foundation[2]")
}
