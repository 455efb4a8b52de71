package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/rs/zerolog/log"

	"github.com/chess-seventh/reddit-wallpyper/api"
	"github.com/chess-seventh/reddit-wallpyper/config"
	"github.com/chess-seventh/reddit-wallpyper/filter"
	"github.com/chess-seventh/reddit-wallpyper/internal/metrics"
)

var ErrInvalidSubreddit = errors.New("invalid subreddit")

// Saver runs the whole pipeline for the configured subreddit: validation, fetching the
// listing, filtering every post and storing the ones that pass.
type Saver struct {
	client  *api.Client
	cfg     *config.Config
	chain   *filter.Chain
	report  *Reporter
	metrics *metrics.Metrics
}

func NewSaver(client *api.Client, cfg *config.Config, report *Reporter, m *metrics.Metrics) *Saver {
	return &Saver{
		client: client,
		cfg:    cfg,
		chain: filter.NewChain(client, filter.Default(
			cfg.Size.MinWidth,
			cfg.Size.MinHeight,
			cfg.DownloadDirectory(),
		)...),
		report:  report,
		metrics: m,
	}
}

// Run returns the amount of downloaded images.
// Only a failed validation or listing request stops the run, a post that can't be
// filtered or stored is reported and skipped.
func (s *Saver) Run(ctx context.Context) (int, error) {
	dir := s.cfg.DownloadDirectory()
	if err := PrepareDirectory(dir); err != nil {
		return 0, err
	}

	sub := s.cfg.Reddit.Subreddit
	if !s.client.Subreddit.Validate(ctx, sub) {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		s.report.InvalidSubreddit(sub)
		return 0, fmt.Errorf("%w: r/%s", ErrInvalidSubreddit, sub)
	}

	posts, err := s.client.Subreddit.GetPages(ctx, api.RequestOptions{
		Count:     s.cfg.Default.JSONLimit,
		Sorting:   s.cfg.Reddit.Sort,
		Timeframe: s.cfg.Reddit.Timeframe,
		Subreddit: sub,
	}, s.cfg.Default.Loops)
	if err != nil {
		return 0, fmt.Errorf("%w: couldn't fetch posts(subreddit=%s)", err, sub)
	}
	s.metrics.Posts.Add(float64(len(posts)))

	s.report.Banner(Banner{
		Directory: dir,
		Subreddit: sub,
		MinWidth:  s.cfg.Size.MinWidth,
		MinHeight: s.cfg.Size.MinHeight,
		Max:       s.cfg.MaxDownloads(),
	})

	downloaded := 0
	for i := range posts {
		if err := ctx.Err(); err != nil {
			s.report.Summary(downloaded, dir)
			return downloaded, err
		}

		index := i + 1
		surl := posts[i].URL()

		v := s.chain.Apply(ctx, surl)
		if !v.Passed() {
			log.Debug().
				Err(v.Err).
				Str("kind", posts[i].Kind).
				Str("subreddit", posts[i].Data.Subreddit).
				Str("title", posts[i].Title()).
				Str("url", surl).
				Int("width", v.Width).
				Int("height", v.Height).
				Stringer("reason", v.Reason).
				Msg("skipped post")
			s.metrics.Skipped.WithLabelValues(v.Reason.Label()).Inc()
			s.report.Skipped(index, v.Reason)
			continue
		}

		name, err := s.Store(ctx, surl, dir)
		if err != nil {
			log.Err(err).Str("url", surl).Msg("failed to store image")
			s.metrics.Failures.Inc()
			s.report.Failed(index)
			continue
		}

		downloaded++
		s.metrics.Downloads.Inc()
		s.report.Downloaded(index, name)
	}

	s.report.Summary(downloaded, dir)

	return downloaded, nil
}

// Store downloads surl into dir, named after the last segment of its path.
func (s *Saver) Store(ctx context.Context, surl, dir string) (string, error) {
	name := filter.Basename(surl)

	n, err := WriteFile(filepath.Join(dir, name), func(w io.Writer) (int64, error) {
		return s.client.Download(ctx, surl, w)
	})
	if err != nil {
		return "", err
	}
	s.metrics.Bytes.Add(float64(n))

	return name, nil
}
