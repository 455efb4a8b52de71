package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/alexflint/go-arg"
	"github.com/mattn/go-colorable"
	"github.com/rs/zerolog/log"

	"github.com/chess-seventh/reddit-wallpyper/api"
	"github.com/chess-seventh/reddit-wallpyper/config"
	"github.com/chess-seventh/reddit-wallpyper/internal/logging"
	"github.com/chess-seventh/reddit-wallpyper/internal/metrics"
)

func main() {
	var args AppArguments
	arg.MustParse(&args)

	logging.Setup(args.Verbose)
	log.Debug().Any("app_arguments", args).Send()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx, &args)
	stop()

	switch {
	case err == nil:
	case errors.Is(err, ErrInvalidSubreddit):
		// Already reported, this is not a failure of the program.
	case errors.Is(err, context.Canceled):
		log.Warn().Msg("interrupted")
	default:
		log.Fatal().Err(err).Msg("error running the app")
	}
}

func run(ctx context.Context, args *AppArguments) error {
	cfg, err := config.Load(args.Config, args.overrides())
	if err != nil {
		return err
	}

	client := api.DefaultClient().
		WithUserAgent(cfg.Default.UserAgent).
		WithTimeout(cfg.Default.Timeout).
		WithRequestInterval(cfg.Default.RequestInterval)

	m := metrics.New(cfg.Reddit.Subreddit)
	saver := NewSaver(client, cfg, NewReporter(colorable.NewColorableStdout()), m)

	_, err = saver.Run(ctx)

	if cfg.Default.MetricsFile != "" {
		if merr := m.WriteTextfile(cfg.Default.MetricsFile); merr != nil {
			log.Err(merr).Msg("failed to export metrics")
		}
	}

	return err
}
