package main

import (
	"time"

	"github.com/chess-seventh/reddit-wallpyper/config"
)

// AppArguments are the command-line arguments.
// Pointer fields stay nil when the flag is not given, so they don't override the configuration file.
type AppArguments struct {
	Subreddit *string `arg:"positional" help:"subreddit to download from, without the r/ prefix"`

	Config          string         `arg:"-c,--config" help:"path to a YAML configuration file"`
	Directory       *string        `arg:"-d,--dir" help:"base directory, images are saved to DIR/SUBREDDIT"`
	MinWidth        *int           `arg:"--width" help:"minimal image width"`
	MinHeight       *int           `arg:"--height" help:"minimal image height"`
	JSONLimit       *int           `arg:"-l,--limit" help:"posts per page, at most 100"`
	Loops           *int           `arg:"--loops" help:"amount of pages to fetch"`
	Sort            *string        `arg:"-s,--sort" help:"listing sort: hot, new, top, rising, controversial, best"`
	Timeframe       *string        `arg:"-t,--timeframe" help:"listing timeframe: hour, day, week, month, year, all"`
	RequestInterval *time.Duration `arg:"--request-interval" help:"minimal time between reddit requests, e.g. 2s"`
	Timeout         *time.Duration `arg:"--timeout" help:"timeout of a single HTTP request, e.g. 30s"`
	MetricsFile     *string        `arg:"--metrics-file" help:"write run metrics to this file in the Prometheus textfile format"`
	Verbose         bool           `arg:"-v,--verbose" help:"enable debug logging"`
}

func (AppArguments) Description() string {
	return "Downloads wallpapers from a subreddit."
}

func (a *AppArguments) overrides() *config.Overrides {
	return &config.Overrides{
		Directory:       a.Directory,
		Subreddit:       a.Subreddit,
		Sort:            a.Sort,
		Timeframe:       a.Timeframe,
		MinWidth:        a.MinWidth,
		MinHeight:       a.MinHeight,
		JSONLimit:       a.JSONLimit,
		Loops:           a.Loops,
		RequestInterval: a.RequestInterval,
		Timeout:         a.Timeout,
		MetricsFile:     a.MetricsFile,
	}
}
