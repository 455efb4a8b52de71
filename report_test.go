package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/chess-seventh/reddit-wallpyper/filter"
)

func TestReporter(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	r := NewReporter(&buf)

	r.Banner(Banner{
		Directory: "/walls/wallpaper",
		Subreddit: "wallpaper",
		MinWidth:  1920,
		MinHeight: 1080,
		Max:       200,
	})
	r.Skipped(1, filter.ReasonUnreachable)
	r.Skipped(2, filter.ReasonPortrait)
	r.Downloaded(3, "a.jpg")
	r.Failed(4)
	r.Summary(1, "/walls/wallpaper")

	want := "Downloading to /walls/wallpaper\n" +
		"From r/wallpaper\n" +
		"Minimum resolution 1920x1080\n" +
		"Maximum downloads 200\n" +
		"1) 404 error\n" +
		"2) skipping portrait image\n" +
		"3) Downloaded a.jpg\n" +
		"4) unexpected error\n" +
		"1 images was downloaded to /walls/wallpaper\n"

	// A buffer is not a terminal, so the output carries no escape codes.
	assert.Equal(t, want, buf.String())
}

func TestReporterInvalidSubreddit(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	NewReporter(&buf).InvalidSubreddit("nope")
	assert.Equal(t, "r/nope is not a valid subreddit\n", buf.String())
}
