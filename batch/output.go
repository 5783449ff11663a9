package batch

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/aybabtme/uniplot/histogram"
	"github.com/samber/lo"
	"gonum.org/v1/gonum/stat"

	"github.com/cardforge/klondike-solver/config"
	"github.com/cardforge/klondike-solver/deck"
	"github.com/cardforge/klondike-solver/game"
	"github.com/cardforge/klondike-solver/render"
	"github.com/cardforge/klondike-solver/solver"
)

// outputWriter owns the append-only result files spec.md §6 defines.
// Only the coordinator goroutine touches it, between batches, so it
// needs no internal locking of its own -- the mutex here guards
// nothing from concurrent workers, just documents that Run() never
// calls writeBatch concurrently with itself.
type outputWriter struct {
	mu sync.Mutex

	dir                string
	writeGameSolutions bool
	writeDecks         bool

	wins     *os.File
	losses   *os.File
	unknowns *os.File
	decks    *os.File
}

func newOutputWriter(dir string, writeGameSolutions, writeDecks bool) (*outputWriter, error) {
	open := func(name string) (*os.File, error) {
		return os.OpenFile(filepath.Join(dir, name), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	}

	wins, err := open("winning_seeds.txt")
	if err != nil {
		return nil, fmt.Errorf("batch: %w", err)
	}
	losses, err := open("losing_seeds.txt")
	if err != nil {
		return nil, fmt.Errorf("batch: %w", err)
	}
	unknowns, err := open("unknown_seeds.txt")
	if err != nil {
		return nil, fmt.Errorf("batch: %w", err)
	}

	w := &outputWriter{
		dir:                dir,
		writeGameSolutions: writeGameSolutions,
		writeDecks:         writeDecks,
		wins:               wins,
		losses:             losses,
		unknowns:           unknowns,
	}

	if writeDecks {
		decks, err := open("decks.txt")
		if err != nil {
			return nil, fmt.Errorf("batch: %w", err)
		}
		w.decks = decks
	}

	return w, nil
}

func (w *outputWriter) Close() {
	w.wins.Close()
	w.losses.Close()
	w.unknowns.Close()
	if w.decks != nil {
		w.decks.Close()
	}
}

// writeBatch appends one batch's results (already sorted by seed) to
// the per-outcome logs, optional solution playback files, optional
// deck listing, and the rolling stats.txt summary. elapsed is the
// wall-clock time runBatch spent actually solving, reported verbatim
// in stats.txt's "batch runtime" line.
func (w *outputWriter) writeBatch(results []solver.GameResult, opts *config.Options, elapsed time.Duration) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	for _, r := range results {
		var err error
		switch r.Outcome {
		case solver.Win:
			_, err = fmt.Fprintf(w.wins, "%010d (positions tried: %d, solution length: %d)\n",
				r.Seed, r.PositionsTried, len(r.Solution))
		case solver.Lose:
			_, err = fmt.Fprintf(w.losses, "%d (positions tried: %d)\n", r.Seed, r.PositionsTried)
		case solver.Unknown:
			_, err = fmt.Fprintf(w.unknowns, "%d (positions tried: %d)\n", r.Seed, r.PositionsTried)
		}
		if err != nil {
			return fmt.Errorf("batch: writing result for seed %d: %w", r.Seed, err)
		}

		if w.writeGameSolutions && r.Outcome == solver.Win {
			if err := w.writeSolution(r); err != nil {
				return err
			}
		}
		if w.writeDecks {
			if err := w.writeDeck(r.Seed); err != nil {
				return err
			}
		}
	}

	return w.appendStats(results, elapsed)
}

func (w *outputWriter) writeSolution(r solver.GameResult) error {
	s, err := game.SetUp(r.Seed, 1)
	if err != nil {
		return fmt.Errorf("batch: re-dealing seed %d for solution render: %w", r.Seed, err)
	}
	path := filepath.Join(w.dir, "solutions", fmt.Sprintf("%d.txt", r.Seed))
	return os.WriteFile(path, []byte(render.Solution(s, r.Solution)), 0o644)
}

func (w *outputWriter) writeDeck(seed uint64) error {
	cards, err := deck.Generate(uint32(seed), 1)
	if err != nil {
		return fmt.Errorf("batch: generating deck for seed %d: %w", seed, err)
	}
	codes := make([]string, len(cards))
	for i, c := range cards {
		codes[i] = fmt.Sprintf("%d", c.Code())
	}
	_, err = fmt.Fprintln(w.decks, strings.Join(codes, " "))
	return err
}

// appendStats writes one rolling-statistics block to stats.txt, per
// spec.md §6: start/end seed, outcome percentages, average
// positions-tried by outcome, solution-depth stats, runtime, then a
// "********" separator. elapsed is the batch's actual solve time, as
// measured by runBatch around its worker pool's g.Wait().
func (w *outputWriter) appendStats(results []solver.GameResult, elapsed time.Duration) error {
	f, err := os.OpenFile(filepath.Join(w.dir, "stats.txt"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("batch: opening stats.txt: %w", err)
	}
	defer f.Close()

	wins := lo.Filter(results, func(r solver.GameResult, _ int) bool { return r.Outcome == solver.Win })
	losses := lo.Filter(results, func(r solver.GameResult, _ int) bool { return r.Outcome == solver.Lose })
	unknowns := lo.Filter(results, func(r solver.GameResult, _ int) bool { return r.Outcome == solver.Unknown })

	total := float64(len(results))
	pct := func(n int) float64 {
		if total == 0 {
			return 0
		}
		return 100 * float64(n) / total
	}

	positionsTried := func(rs []solver.GameResult) []float64 {
		return lo.Map(rs, func(r solver.GameResult, _ int) float64 { return float64(r.PositionsTried) })
	}
	avg := func(vals []float64) float64 {
		if len(vals) == 0 {
			return 0
		}
		return stat.Mean(vals, nil)
	}

	allPositions := positionsTried(results)
	solutionDepths := lo.Map(wins, func(r solver.GameResult, _ int) float64 { return float64(len(r.Solution)) })

	fmt.Fprintf(f, "seed range: %d..%d\n", firstSeed(results), lastSeed(results))
	fmt.Fprintf(f, "total: %d  wins: %d (%.2f%%)  losses: %d (%.2f%%)  unknown: %d (%.2f%%)  solved: %.2f%%\n",
		len(results), len(wins), pct(len(wins)), len(losses), pct(len(losses)), len(unknowns), pct(len(unknowns)),
		pct(len(wins))+pct(len(losses)))
	fmt.Fprintf(f, "avg positions tried: wins=%.1f losses=%.1f combined=%.1f\n",
		avg(positionsTried(wins)), avg(positionsTried(losses)), avg(allPositions))

	if len(solutionDepths) > 0 {
		minDepth, maxDepth := lo.Min(solutionDepths), lo.Max(solutionDepths)
		fmt.Fprintf(f, "solution depth: avg=%.1f min=%.0f max=%.0f\n", avg(solutionDepths), minDepth, maxDepth)
	}

	if len(allPositions) >= 2 {
		bins := 10
		if bins > len(allPositions) {
			bins = len(allPositions)
		}
		h := histogram.Hist(bins, allPositions)
		if err := histogram.Fprint(f, h, histogram.Linear(40)); err != nil {
			fmt.Fprintf(f, "(histogram unavailable: %v)\n", err)
		}
	}

	fmt.Fprintf(f, "batch runtime: %.3fs\n", elapsed.Seconds())
	fmt.Fprintln(f, "********")

	return nil
}

func firstSeed(results []solver.GameResult) uint64 {
	if len(results) == 0 {
		return 0
	}
	return results[0].Seed
}

func lastSeed(results []solver.GameResult) uint64 {
	if len(results) == 0 {
		return 0
	}
	return results[len(results)-1].Seed
}
