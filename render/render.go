// Package render pretty-prints a game.State and a solution's move
// sequence as ASCII text, for solutions/<seed>.txt (spec.md §6). This
// is grounded on macondo's game/display.go -- the idea of a single
// Board-shaped text dump with one line per structural element -- but
// is entirely Klondike-specific: there is no board grid here, just
// tableau columns, foundations, and a stock cursor.
package render

import (
	"fmt"
	"strings"

	"github.com/cardforge/klondike-solver/card"
	"github.com/cardforge/klondike-solver/game"
	"github.com/cardforge/klondike-solver/move"
)

// Board renders one line listing the top of each foundation, one line
// per tableau pile, and a line describing the stock and its cursor.
func Board(s *game.State) string {
	var b strings.Builder

	b.WriteString("Foundations: ")
	for suit := card.Hearts; suit <= card.Spades; suit++ {
		top, ok := s.Foundation[suit].Top()
		if !ok {
			fmt.Fprintf(&b, "%s:-- ", suit)
			continue
		}
		fmt.Fprintf(&b, "%s:%s ", suit, top)
	}
	b.WriteString("\n")

	for i, t := range s.Tableau {
		fmt.Fprintf(&b, "T%d:", i)
		for _, c := range t.Cards {
			b.WriteString(" ")
			b.WriteString(c.String())
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "Stock (%d cards, cursor=%d):", s.Stock.Size(), s.StockPosition)
	if s.StockPosition >= 0 && s.StockPosition < s.Stock.Size() {
		fmt.Fprintf(&b, " visible=%s", s.Stock.At(s.StockPosition))
	}
	b.WriteString("\n")

	return b.String()
}

// Solution renders the full move listing interleaved with board
// states: s must be freshly set up (the same deal the solution was
// computed against); Solution mutates s in place by applying every
// move in order and does not undo them, so callers should pass a
// state dedicated to rendering rather than one still needed live.
func Solution(s *game.State, solution []move.Move) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%d moves\n\n", len(solution))
	b.WriteString(Board(s))
	b.WriteString("\n")

	for i, m := range solution {
		fmt.Fprintf(&b, "%d: %s\n", i+1, m.ShortDescription())
		s.DoMove(m)
		b.WriteString(Board(s))
		b.WriteString("\n")
	}

	return b.String()
}
