package movegen

import (
	"sort"

	"github.com/cardforge/klondike-solver/card"
	"github.com/cardforge/klondike-solver/game"
	"github.com/cardforge/klondike-solver/move"
)

// Priority base values for the move classes spec.md §4.6 defines.
// Lower values are tried first.
const (
	PriorityReveal     = 100
	PriorityClearKing  = 200
	PriorityStock      = 300
	PriorityFoundation = 400
	PriorityRepile     = 400
	PriorityPartial    = 600
)

// Candidate pairs a Move with the priority it was enumerated at, so
// the solver can stable-sort the full set before trying them.
type Candidate struct {
	Move     move.Move
	Priority int
}

// Enumerate returns the candidate moves from s, split into the four
// categories of spec.md §4.6 plus RepileStock when IsStockDirty,
// stable-sorted ascending by priority. inFlight is the solver's
// partial_run_in_flight set (see spec.md §4.7): cards currently
// mid-split are not offered as new partial-run split points, to avoid
// A→B→A oscillation.
func Enumerate(s *game.State, inFlight map[card.Card]int) []move.Move {
	var candidates []Candidate
	candidates = append(candidates, fullRunMoves(s)...)
	candidates = append(candidates, partialRunMoves(s, inFlight)...)
	candidates = append(candidates, stockToTableauMoves(s)...)
	candidates = append(candidates, movesToFoundation(s)...)
	if s.IsStockDirty() {
		candidates = append(candidates, Candidate{
			Move:     move.Move{Action: move.RepileStock, PrevStockPosition: s.StockPosition},
			Priority: PriorityRepile,
		})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Priority < candidates[j].Priority
	})

	moves := make([]move.Move, len(candidates))
	for i, c := range candidates {
		moves[i] = c.Move
	}
	return moves
}

func fullRunMoves(s *game.State) []Candidate {
	var out []Candidate
	for srcIdx, src := range s.Tableau {
		if !src.HasCards() {
			continue
		}
		firstFaceUp, length := TopOfRun(src)
		topCard := src.At(firstFaceUp)
		wholePile := firstFaceUp == 0

		if wholePile && topCard.Rank == card.MaxRank {
			// Already a King anchoring its own pile: relocating it
			// anywhere else is a no-op.
			continue
		}

		destIdx := -1
		for j, dest := range s.Tableau {
			if j == srcIdx {
				continue
			}
			if canPlaceOnTableauTop(dest, topCard) {
				destIdx = j
				break
			}
		}
		if destIdx == -1 {
			continue
		}

		m := move.Move{
			Action:      move.Tableau,
			MovedCard:   topCard,
			From:        tableauRef(srcIdx),
			To:          tableauRef(destIdx),
			CardsToMove: length,
			FlippedCard: !wholePile,
		}

		if !wholePile {
			depth := firstFaceUp
			out = append(out, Candidate{Move: m, Priority: PriorityReveal - (depth - 1)})
			continue
		}
		if kingAvailable(s) {
			out = append(out, Candidate{Move: m, Priority: PriorityClearKing})
		}
	}
	return out
}

func partialRunMoves(s *game.State, inFlight map[card.Card]int) []Candidate {
	var out []Candidate
	for srcIdx, src := range s.Tableau {
		firstFaceUp, length := TopOfRun(src)
		if length < 2 {
			continue
		}
		for k := firstFaceUp + 1; k < src.Size(); k++ {
			c := src.At(k)
			if inFlight[c] > 0 || inFlight[card.New(c.Suit, c.Rank)] > 0 {
				continue
			}

			destIdx := -1
			for j, dest := range s.Tableau {
				if j == srcIdx {
					continue
				}
				if canPlaceOnTableauTop(dest, c) {
					destIdx = j
					break
				}
			}
			if destIdx == -1 {
				continue
			}

			uncovered := src.At(k - 1)
			foundationReachable := CanFoundation(uncovered, s.Foundation[uncovered.Suit])
			replacementAvailable := sameColorRankAvailableInStock(s, c) ||
				sameColorRankAvailableOnTableauExcept(s, srcIdx, c)
			if !foundationReachable && !replacementAvailable {
				continue
			}

			out = append(out, Candidate{
				Move: move.Move{
					Action:      move.TableauPartial,
					MovedCard:   c,
					From:        tableauRef(srcIdx),
					To:          tableauRef(destIdx),
					CardsToMove: src.Size() - k,
				},
				Priority: PriorityPartial,
			})
		}
	}
	return out
}

func stockToTableauMoves(s *game.State) []Candidate {
	var out []Candidate
	for i := s.StockPosition; i >= 0 && i < s.Stock.Size(); i = s.GetNextInStock(i) {
		c := s.Stock.At(i)
		for destIdx, dest := range s.Tableau {
			if !canPlaceOnTableauTop(dest, c) {
				continue
			}
			out = append(out, Candidate{
				Move: stockMove(s, i, c, tableauRef(destIdx)),
				Priority: PriorityStock - i,
			})
		}
	}
	return out
}

func movesToFoundation(s *game.State) []Candidate {
	var out []Candidate
	for srcIdx, src := range s.Tableau {
		top, ok := src.Top()
		if !ok || !CanFoundation(top, s.Foundation[top.Suit]) {
			continue
		}
		flip := false
		if src.Size() > 1 {
			flip = !src.At(src.Size() - 2).FaceUp
		}
		out = append(out, Candidate{
			Move: move.Move{
				Action:      move.Tableau,
				MovedCard:   top,
				From:        tableauRef(srcIdx),
				To:          foundationRef(int(top.Suit)),
				CardsToMove: 1,
				FlippedCard: flip,
			},
			Priority: PriorityFoundation,
		})
	}
	for i := s.StockPosition; i >= 0 && i < s.Stock.Size(); i = s.GetNextInStock(i) {
		c := s.Stock.At(i)
		if !CanFoundation(c, s.Foundation[c.Suit]) {
			continue
		}
		out = append(out, Candidate{
			Move:     stockMove(s, i, c, foundationRef(int(c.Suit))),
			Priority: PriorityFoundation,
		})
	}
	return out
}

func stockMove(s *game.State, stockIdx int, c card.Card, to move.PileRef) move.Move {
	return move.Move{
		Action:            move.Stock,
		MovedCard:         c,
		To:                to,
		StockTo:           to,
		StockMovePosition: stockIdx,
		PrevStockPosition: s.StockPosition,
	}
}

func sameColorRankAvailableOnTableauExcept(s *game.State, except int, c card.Card) bool {
	for i, t := range s.Tableau {
		if i == except {
			continue
		}
		top, ok := t.Top()
		if ok && top.Rank == c.Rank && top.Suit.IsRed() == c.Suit.IsRed() {
			return true
		}
	}
	return false
}

func tableauRef(i int) move.PileRef    { return move.PileRef{Tableau: true, Index: i} }
func foundationRef(i int) move.PileRef { return move.PileRef{Tableau: false, Index: i} }
