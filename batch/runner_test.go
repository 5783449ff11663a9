package batch

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cardforge/klondike-solver/config"
)

// A maxStates budget of 1 forces every solve in this test to hit the
// budget within a handful of branch points, so Run terminates quickly
// and deterministically regardless of whether any given seed is
// actually solvable.
func tinyOpts(t *testing.T) *config.Options {
	t.Helper()
	return &config.Options{
		FirstSeed:  1,
		NumBatches: 1,
		BatchSize:  3,
		MaxStates:  1,
		NumSolvers: 2,
		OutputDir:  t.TempDir(),
	}
}

func TestRunWritesOneLinePerSeedAcrossTheOutcomeFiles(t *testing.T) {
	opts := tinyOpts(t)

	require.NoError(t, Run(context.Background(), opts))

	total := 0
	for _, name := range []string{"winning_seeds.txt", "losing_seeds.txt", "unknown_seeds.txt"} {
		data, err := os.ReadFile(filepath.Join(opts.OutputDir, name))
		require.NoError(t, err)
		total += countNonEmptyLines(string(data))
	}
	assert.Equal(t, opts.BatchSize, total)
}

func TestRunWritesStatsBlockPerBatch(t *testing.T) {
	opts := tinyOpts(t)

	require.NoError(t, Run(context.Background(), opts))

	data, err := os.ReadFile(filepath.Join(opts.OutputDir, "stats.txt"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "seed range:")
	assert.Contains(t, string(data), "********")
}

func TestRunWriteDecksProducesOneLinePerSeed(t *testing.T) {
	opts := tinyOpts(t)
	opts.WriteDecks = true

	require.NoError(t, Run(context.Background(), opts))

	data, err := os.ReadFile(filepath.Join(opts.OutputDir, "decks.txt"))
	require.NoError(t, err)
	assert.Equal(t, opts.BatchSize, countNonEmptyLines(string(data)))
}

func TestRunRespectsSeedFileStartingPoint(t *testing.T) {
	seedFile := filepath.Join(t.TempDir(), "seeds.txt")
	require.NoError(t, os.WriteFile(seedFile, []byte("5\n6\n7\n8\n"), 0o644))

	opts := tinyOpts(t)
	opts.SeedFile = seedFile
	opts.FirstSeed = 6
	opts.NumBatches = 0
	opts.BatchSize = 10

	require.NoError(t, Run(context.Background(), opts))

	total := 0
	for _, name := range []string{"winning_seeds.txt", "losing_seeds.txt", "unknown_seeds.txt"} {
		data, err := os.ReadFile(filepath.Join(opts.OutputDir, name))
		require.NoError(t, err)
		total += countNonEmptyLines(string(data))
	}
	assert.Equal(t, 3, total) // seeds 6, 7, 8
}

func countNonEmptyLines(s string) int {
	n := 0
	for _, line := range splitLines(s) {
		if line != "" {
			n++
		}
	}
	return n
}

func splitLines(s string) []string {
	var lines []string
	start := 0
	for i, r := range s {
		if r == '\n' {
			lines = append(lines, s[start:i])
			start = i + 1
		}
	}
	if start < len(s) {
		lines = append(lines, s[start:])
	}
	return lines
}
