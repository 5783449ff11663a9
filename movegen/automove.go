package movegen

import (
	"github.com/cardforge/klondike-solver/card"
	"github.com/cardforge/klondike-solver/game"
	"github.com/cardforge/klondike-solver/move"
)

// FindAutoMove returns at most one move: the first of spec.md §4.7's
// auto-move rules that applies to s. The solver calls this repeatedly
// until it returns ok=false, applying each move greedily before ever
// branching. Every rule here is individually provable not to reduce
// winnability; none of them should be reordered without re-checking
// that proof.
func FindAutoMove(s *game.State) (m move.Move, ok bool) {
	if mv, ok := guaranteedFoundationFromTableau(s); ok {
		return mv, true
	}
	if mv, ok := kingRunToEmptyPile(s); ok {
		return mv, true
	}
	if mv, ok := safeStockMove(s); ok {
		return mv, true
	}
	return move.Move{}, false
}

func guaranteedFoundationFromTableau(s *game.State) (move.Move, bool) {
	for srcIdx, t := range s.Tableau {
		top, has := t.Top()
		if !has || !GuaranteedFoundation(s, top) {
			continue
		}
		flip := false
		if t.Size() > 1 {
			flip = !t.At(t.Size() - 2).FaceUp
		}
		return move.Move{
			Action:      move.Tableau,
			MovedCard:   top,
			From:        tableauRef(srcIdx),
			To:          foundationRef(int(top.Suit)),
			CardsToMove: 1,
			FlippedCard: flip,
		}, true
	}
	return move.Move{}, false
}

func kingRunToEmptyPile(s *game.State) (move.Move, bool) {
	for srcIdx, t := range s.Tableau {
		firstFaceUp, length := TopOfRun(t)
		if length == 0 || firstFaceUp == 0 {
			continue
		}
		if t.At(firstFaceUp).Rank != card.MaxRank {
			continue
		}
		room, emptyIdx := HasRoomForAllKings(s)
		if !room || emptyIdx == -1 {
			continue
		}
		return move.Move{
			Action:      move.Tableau,
			MovedCard:   t.At(firstFaceUp),
			From:        tableauRef(srcIdx),
			To:          tableauRef(emptyIdx),
			CardsToMove: length,
			FlippedCard: true,
		}, true
	}
	return move.Move{}, false
}

// safeStockMove checks the stock positions spec.md §4.7 identifies as
// provably not changing which stock cards are reachable: the final
// card, the second-to-last card when the cursor sits at the end of a
// draw chunk, and the currently visible card when it already lies
// within the trailing incomplete chunk.
func safeStockMove(s *game.State) (move.Move, bool) {
	size := s.Stock.Size()
	if size == 0 {
		return move.Move{}, false
	}

	candidates := []int{size - 1}
	if s.StockPosition%game.NumDraw == game.NumDraw-1 && size >= 2 {
		candidates = append(candidates, size-2)
	}
	if remainder := size % game.NumDraw; remainder != 0 && s.StockPosition >= size-remainder {
		candidates = append(candidates, s.StockPosition)
	}

	seen := make(map[int]bool)
	for _, idx := range candidates {
		if seen[idx] {
			continue
		}
		seen[idx] = true

		c := s.Stock.At(idx)
		if GuaranteedFoundation(s, c) {
			return stockMove(s, idx, c, foundationRef(int(c.Suit))), true
		}
		if c.Rank == card.MaxRank {
			if room, emptyIdx := HasRoomForAllKings(s); room && emptyIdx != -1 {
				return stockMove(s, idx, c, tableauRef(emptyIdx)), true
			}
		}
	}
	return move.Move{}, false
}
