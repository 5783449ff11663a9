package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/cardforge/klondike-solver/batch"
	"github.com/cardforge/klondike-solver/config"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	opts, err := config.Load(os.Args[1:])
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	if opts.Help {
		os.Stdout.WriteString(config.Usage())
		return
	}

	log.Info().
		Uint64("first_seed", opts.FirstSeed).
		Int("num_batches", opts.NumBatches).
		Int("batch_size", opts.BatchSize).
		Uint64("max_states", opts.MaxStates).
		Int("num_solvers", opts.NumSolvers).
		Str("output_dir", opts.OutputDir).
		Msg("starting klondike batch solve")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		log.Info().Str("signal", sig.String()).Msg("received shutdown signal")
		cancel()
	}()

	if err := batch.Run(ctx, opts); err != nil && err != context.Canceled {
		log.Fatal().Err(err).Msg("batch run failed")
	}

	log.Info().Msg("batch solve stopped")
}
