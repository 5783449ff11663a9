// Package batch implements the external batch harness spec.md §4.8
// pins at the interface level: a fixed-size worker pool solving many
// seeds in parallel, writing append-only result logs between
// batches. This is grounded on domino14/macondo's automatic package
// (game_runner.go's goroutine-pool-over-a-jobs-channel shape,
// automatic_utils.go's WaitGroup draining, logfile_analysis.go's CSV
// stat aggregation, seeds.go's seed-file read/write), adapted from
// "play N computer-vs-computer Scrabble games and log turns" to "run
// N independent Klondike solves and log outcomes." The worker pool
// itself is rebuilt on golang.org/x/sync/errgroup rather than a raw
// WaitGroup, the same upgrade path the rest of the example corpus
// (jason-s-yu-cambia) takes for bounded concurrent fan-out.
package batch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"sync"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/cardforge/klondike-solver/config"
	"github.com/cardforge/klondike-solver/game"
	"github.com/cardforge/klondike-solver/solver"
)

const memoryFraction = 0.10

// seenStatesMemoryFraction is how much of system RAM a single
// solver's seen-states table may pre-reserve toward, per spec.md §5's
// "pre-reserve capacity ... to avoid rehashing" guidance. Divided
// across however many solvers run concurrently.
func seenStatesMemoryFraction(numSolvers int) float64 {
	if numSolvers < 1 {
		numSolvers = 1
	}
	return memoryFraction / float64(numSolvers)
}

// Run executes the full batch defined by opts: it resolves the seed
// source, creates the output directory, and drives batches of solves
// until the seed source (or --num-batches) is exhausted.
func Run(ctx context.Context, opts *config.Options) error {
	runID := uuid.NewString()
	log.Info().Str("run_id", runID).Msg("starting batch run")

	if err := retry.Do(func() error {
		return os.MkdirAll(opts.OutputDir, 0o755)
	}, retry.Attempts(3)); err != nil {
		return fmt.Errorf("batch: creating output directory: %w", err)
	}
	if opts.WriteGameSolutions {
		if err := os.MkdirAll(filepath.Join(opts.OutputDir, "solutions"), 0o755); err != nil {
			return fmt.Errorf("batch: creating solutions directory: %w", err)
		}
	}

	source, err := resolveSeedSource(opts)
	if err != nil {
		return err
	}

	numSolvers := opts.NumSolvers
	if numSolvers <= 0 {
		numSolvers = runtime.NumCPU()
	}
	fraction := seenStatesMemoryFraction(numSolvers)

	w, err := newOutputWriter(opts.OutputDir, opts.WriteGameSolutions, opts.WriteDecks)
	if err != nil {
		return err
	}
	defer w.Close()

	for batchIndex := 0; opts.NumBatches == 0 || batchIndex < opts.NumBatches; batchIndex++ {
		seeds, ok := source.next(opts.BatchSize)
		if len(seeds) == 0 {
			if !ok {
				break
			}
			continue
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		results, elapsed, err := runBatch(ctx, seeds, numSolvers, opts.MaxStates, fraction, runID)
		if err != nil {
			return err
		}

		if err := w.writeBatch(results, opts, elapsed); err != nil {
			return err
		}

		if !ok {
			break
		}
	}

	log.Info().Str("run_id", runID).Msg("batch run complete")
	return nil
}

func resolveSeedSource(opts *config.Options) (seedSource, error) {
	if opts.SeedFile == "" {
		return newRangeSource(opts.FirstSeed, opts.NumBatches, opts.BatchSize), nil
	}
	all, err := ReadSeedFile(opts.SeedFile)
	if err != nil {
		return nil, err
	}
	return newFileSource(all, opts.FirstSeed)
}

// runBatch solves every seed in seeds using numSolvers concurrent
// workers and returns results sorted by seed, per spec.md §5's
// ordering guarantee, plus the wall-clock time the solving itself
// took (for stats.txt's "total runtime seconds", spec.md §6).
func runBatch(ctx context.Context, seeds []uint64, numSolvers int, maxStates uint64, memFraction float64, runID string) ([]solver.GameResult, time.Duration, error) {
	var (
		mu      sync.Mutex
		results = make([]solver.GameResult, 0, len(seeds))
		next    = 0
	)

	batchStart := time.Now()

	g, gctx := errgroup.WithContext(ctx)
	workers := numSolvers
	if workers > len(seeds) {
		workers = len(seeds)
	}
	if workers < 1 {
		workers = 1
	}

	for w := 0; w < workers; w++ {
		g.Go(func() error {
			sv := solver.New(maxStates, memFraction)
			for {
				mu.Lock()
				if next >= len(seeds) {
					mu.Unlock()
					return nil
				}
				seed := seeds[next]
				next++
				mu.Unlock()

				select {
				case <-gctx.Done():
					return gctx.Err()
				default:
				}

				s, err := game.SetUp(seed, 1)
				if err != nil {
					return fmt.Errorf("batch: setting up seed %d: %w", seed, err)
				}
				start := time.Now()
				result := sv.Solve(s)
				elapsed := time.Since(start)

				log.Debug().
					Str("run_id", runID).
					Uint64("seed", seed).
					Str("outcome", result.Outcome.String()).
					Uint64("positions_tried", result.PositionsTried).
					Uint64("fingerprint_hash", xxhash.Sum64(s.Fingerprint().Bytes())).
					Dur("elapsed", elapsed).
					Msg("solve complete")

				mu.Lock()
				results = append(results, result)
				mu.Unlock()
			}
		})
	}

	if err := g.Wait(); err != nil {
		return nil, 0, err
	}
	elapsed := time.Since(batchStart)

	sort.Slice(results, func(i, j int) bool { return results[i].Seed < results[j].Seed })
	return results, elapsed, nil
}
