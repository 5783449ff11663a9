package game

import (
	"github.com/cardforge/klondike-solver/move"
	"github.com/cardforge/klondike-solver/pile"
)

// DoMove applies m to s. Callers (movegen, solver) are the sole
// source of Move values and are trusted to only construct legal
// moves; DoMove does no legality checking of its own, the same
// division of responsibility macondo draws between its move
// generator and game.Game.PlayMove.
func (s *State) DoMove(m move.Move) {
	switch m.Action {
	case move.Tableau, move.TableauPartial:
		from := s.Pile(m.From)
		to := s.Pile(m.To)
		pile.MoveCards(from, to, m.CardsToMove)
		if m.FlippedCard {
			flipTop(from, true)
		}

	case move.Stock:
		to := s.Pile(m.StockTo)
		pile.MoveCard(s.Stock, m.StockMovePosition, to, -1)
		if m.StockMovePosition != 0 {
			s.StockPosition = m.StockMovePosition - 1
		} else {
			s.RepileStock()
		}

	case move.RepileStock:
		s.RepileStock()
	}
}

// UndoMove reverses the effect of a prior DoMove(m), restoring s
// exactly to the state it was in beforehand. This is the other half
// of spec.md §4.4's do/undo pair that lets the search walk the game
// tree in place instead of copying State at every node.
func (s *State) UndoMove(m move.Move) {
	switch m.Action {
	case move.Tableau, move.TableauPartial:
		from := s.Pile(m.From)
		to := s.Pile(m.To)
		if m.FlippedCard {
			flipTop(from, false)
		}
		pile.MoveCards(to, from, m.CardsToMove)

	case move.Stock:
		to := s.Pile(m.StockTo)
		pile.MoveCard(to, -1, s.Stock, m.StockMovePosition)
		s.StockPosition = m.PrevStockPosition

	case move.RepileStock:
		s.StockPosition = m.PrevStockPosition
	}
}

// flipTop sets the face-up bit of the current top card of p, if any.
// An empty pile is left untouched: a Tableau move that empties its
// source pile never sets FlippedCard.
func flipTop(p *pile.Pile, up bool) {
	if !p.HasCards() {
		return
	}
	i := p.Size() - 1
	c := p.At(i)
	c.FaceUp = up
	p.Set(i, c)
}
