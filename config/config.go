// Package config parses the batch runner's command-line interface,
// spec.md §6's flag table. Macondo's own config.Config.Load is a thin
// wrapper around namsral/flag with no environment-variable layering;
// this one is grounded on that same "one Load(args) call populates a
// struct" shape but built on spf13/pflag (for the combined short/long
// POSIX flags §6 specifies, like -f/--first) layered with spf13/viper
// so KLONDIKE_SOLVE_-prefixed environment variables can override
// defaults the same way a production batch job would want to tune
// worker count or output directory without touching its invocation.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Options holds one parsed invocation of the batch runner, per
// spec.md §6's flag table.
type Options struct {
	FirstSeed          uint64
	NumBatches         int
	BatchSize          int
	MaxStates          uint64
	NumSolvers         int
	OutputDir          string
	SeedFile           string
	WriteGameSolutions bool
	WriteDecks         bool
	Help               bool
}

const envPrefix = "KLONDIKE_SOLVE"

// Load parses args (typically os.Args[1:]) into Options, applying
// environment-variable overrides of the form KLONDIKE_SOLVE_FIRST,
// KLONDIKE_SOLVE_OUTPUT_DIR, etc. between the flag defaults and
// whatever the user passed explicitly on the command line.
func Load(args []string) (*Options, error) {
	fs := pflag.NewFlagSet("klondike-solve", pflag.ContinueOnError)

	fs.Uint64P("first", "f", 0, "first seed")
	fs.IntP("num-batches", "n", 100, "batch count; 0 = infinite")
	fs.IntP("batch-size", "b", 1000, "seeds per batch")
	fs.Uint64P("max-states", "s", 10_000_000, "per-solve state budget; 0 = unbounded")
	fs.IntP("num-solvers", "t", 0, "worker count; 0 = auto-detect cores")
	fs.StringP("output-dir", "o", "./results/", "output directory")
	fs.StringP("seed-file", "F", "", "optional seed file; seeds are read starting at the first match of --first")
	fs.Bool("write-game-solutions", false, "render full solution playback files")
	fs.Bool("write-decks", false, "write generated decks (requires --seed-file)")
	fs.BoolP("help", "?", false, "show usage and exit")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(fs); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	opts := &Options{
		FirstSeed:          v.GetUint64("first"),
		NumBatches:         v.GetInt("num-batches"),
		BatchSize:          v.GetInt("batch-size"),
		MaxStates:          v.GetUint64("max-states"),
		NumSolvers:         v.GetInt("num-solvers"),
		OutputDir:          v.GetString("output-dir"),
		SeedFile:           v.GetString("seed-file"),
		WriteGameSolutions: v.GetBool("write-game-solutions"),
		WriteDecks:         v.GetBool("write-decks"),
		Help:               v.GetBool("help"),
	}

	if opts.WriteDecks && opts.SeedFile == "" {
		return nil, fmt.Errorf("config: --write-decks requires --seed-file")
	}

	return opts, nil
}

// Usage returns the pflag-generated usage string for --help output.
func Usage() string {
	fs := pflag.NewFlagSet("klondike-solve", pflag.ContinueOnError)
	fs.Uint64P("first", "f", 0, "first seed")
	fs.IntP("num-batches", "n", 100, "batch count; 0 = infinite")
	fs.IntP("batch-size", "b", 1000, "seeds per batch")
	fs.Uint64P("max-states", "s", 10_000_000, "per-solve state budget; 0 = unbounded")
	fs.IntP("num-solvers", "t", 0, "worker count; 0 = auto-detect cores")
	fs.StringP("output-dir", "o", "./results/", "output directory")
	fs.StringP("seed-file", "F", "", "optional seed file; seeds are read starting at the first match of --first")
	fs.Bool("write-game-solutions", false, "render full solution playback files")
	fs.Bool("write-decks", false, "write generated decks (requires --seed-file)")
	fs.BoolP("help", "?", false, "show usage and exit")
	return fs.FlagUsages()
}
