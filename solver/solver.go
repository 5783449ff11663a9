// Package solver implements the bounded depth-first search of
// spec.md §4.7: a single-agent decision procedure, not a two-player
// game-tree search, so it is grounded on the control-flow shape of
// domino14/macondo's endgame/negamax solver (recurse, try each
// candidate in priority order, undo, backtrack) without any of that
// solver's alpha-beta pruning, principal-variation tracking, or
// killer-move tables -- none of those have a meaning when there is no
// opponent and no score to bound, only a single WIN/LOSE/UNKNOWN
// verdict.
package solver

import (
	"math"

	"github.com/pbnjay/memory"
	"github.com/rs/zerolog/log"

	"github.com/cardforge/klondike-solver/card"
	"github.com/cardforge/klondike-solver/fingerprint"
	"github.com/cardforge/klondike-solver/game"
	"github.com/cardforge/klondike-solver/move"
	"github.com/cardforge/klondike-solver/movegen"
)

// Outcome is the three-valued verdict spec.md §1 defines.
type Outcome uint8

const (
	Lose Outcome = iota
	Win
	Unknown
)

func (o Outcome) String() string {
	switch o {
	case Win:
		return "WIN"
	case Lose:
		return "LOSE"
	case Unknown:
		return "UNKNOWN"
	}
	return "?"
}

// GameResult is the output of one solve, per spec.md §3.
type GameResult struct {
	PositionsTried uint64
	Seed           uint64
	Solution       []move.Move
	Outcome        Outcome
}

// minSeenStatesCapacity is the floor on the seen-states map's initial
// bucket reservation: below this, the benefit of pre-sizing is not
// worth computing the fraction-of-memory estimate.
const minSeenStatesCapacity = 1 << 16

// Solver runs one bounded DFS at a time. It is not safe for concurrent
// use: the batch harness gives each worker its own Solver, the same
// way macondo gives each automatic-play worker its own Game instance.
type Solver struct {
	maxStates      uint64
	memoryFraction float64

	seenStates     map[fingerprint.Fingerprint]struct{}
	partialInFlight map[card.Card]int
	moveSequence   []move.Move
	solution       []move.Move
	statesTried    uint64
}

// New returns a Solver with the given per-solve state-visit budget (0
// means unbounded) and the fraction of total system memory it may use
// to pre-reserve its seen-states table, mirroring the sizing strategy
// of macondo's TranspositionTable.Reset.
func New(maxStates uint64, memoryFraction float64) *Solver {
	return &Solver{maxStates: maxStates, memoryFraction: memoryFraction}
}

// reserveCapacity estimates how many fingerprint entries to pre-size
// the seen-states map for for, from either the max-states budget or a
// fraction of total system RAM, whichever is smaller -- the same
// trade-off macondo's Reset makes, adapted from a fixed power-of-2
// array (acceptable there because transposition-table collisions are
// tolerated) to a plain Go map, which this solver requires for exact
// fingerprint equality (see package fingerprint's doc comment).
func (sv *Solver) reserveCapacity() int {
	budget := sv.maxStates
	if budget == 0 {
		budget = math.MaxUint32
	}

	totalMem := memory.TotalMemory()
	byMemory := uint64(sv.memoryFraction * float64(totalMem) / float64(fingerprint.Size))

	capacity := budget
	if byMemory < capacity {
		capacity = byMemory
	}
	if capacity < minSeenStatesCapacity {
		capacity = minSeenStatesCapacity
	}
	if capacity > math.MaxInt32 {
		capacity = math.MaxInt32
	}
	return int(capacity)
}

// Solve runs the bounded DFS from s, which must already be set up
// (game.SetUp). The solver clears and re-reserves its seen-states
// table on every call, bounding peak memory across repeated solves
// the way spec.md §5 requires.
func (sv *Solver) Solve(s *game.State) GameResult {
	sv.seenStates = make(map[fingerprint.Fingerprint]struct{}, sv.reserveCapacity())
	sv.partialInFlight = make(map[card.Card]int)
	sv.moveSequence = sv.moveSequence[:0]
	sv.solution = nil
	sv.statesTried = 0

	outcome := sv.solveNode(s, false)
	return GameResult{
		PositionsTried: sv.statesTried,
		Seed:           s.Seed,
		Solution:       sv.solution,
		Outcome:        outcome,
	}
}

// solveNode is the recursive contract of spec.md §4.7. afterRepile
// suppresses the fingerprint check/insert immediately following a
// RepileStock move, since that state is definitionally card-identical
// to one just visited and recording it would poison the search.
func (sv *Solver) solveNode(s *game.State, afterRepile bool) Outcome {
	if !afterRepile {
		fp := s.Fingerprint()
		if _, seen := sv.seenStates[fp]; seen {
			return Lose
		}
		sv.seenStates[fp] = struct{}{}
	}

	var autoMoves []move.Move
	for {
		m, ok := movegen.FindAutoMove(s)
		if !ok {
			break
		}
		sv.apply(s, m)
		autoMoves = append(autoMoves, m)
	}

	outcome := sv.searchFromHere(s)

	for i := len(autoMoves) - 1; i >= 0; i-- {
		sv.undo(s, autoMoves[i])
	}
	return outcome
}

func (sv *Solver) searchFromHere(s *game.State) Outcome {
	if s.IsWon() {
		sv.captureSolution()
		return Win
	}
	if sv.maxStates > 0 && sv.statesTried >= sv.maxStates {
		return Unknown
	}

	for _, m := range movegen.Enumerate(s, sv.partialInFlight) {
		sv.apply(s, m)
		sv.statesTried++
		result := sv.solveNode(s, m.Action == move.RepileStock)
		sv.undo(s, m)
		if result != Lose {
			return result
		}
	}
	return Lose
}

func (sv *Solver) apply(s *game.State, m move.Move) {
	s.DoMove(m)
	sv.moveSequence = append(sv.moveSequence, m)
	if m.Action == move.TableauPartial {
		sv.partialInFlight[m.MovedCard]++
	}
}

func (sv *Solver) undo(s *game.State, m move.Move) {
	if m.Action == move.TableauPartial {
		if sv.partialInFlight[m.MovedCard] <= 0 {
			log.Error().Str("card", m.MovedCard.String()).Msg("solver: undoing partial-run move for a card not in the in-flight set")
		} else {
			sv.partialInFlight[m.MovedCard]--
			if sv.partialInFlight[m.MovedCard] == 0 {
				delete(sv.partialInFlight, m.MovedCard)
			}
		}
	}
	s.UndoMove(m)
	sv.moveSequence = sv.moveSequence[:len(sv.moveSequence)-1]
}

func (sv *Solver) captureSolution() {
	solution := make([]move.Move, len(sv.moveSequence))
	copy(solution, sv.moveSequence)
	sv.solution = solution
}

// Replay applies solution to s in order and reports whether the
// resulting state is won, used by tests to sanity-check a solver's
// output. The batch harness does not call it.
func Replay(s *game.State, solution []move.Move) bool {
	for _, m := range solution {
		s.DoMove(m)
	}
	return s.IsWon()
}
