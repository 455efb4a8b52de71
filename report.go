package main

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/chess-seventh/reddit-wallpyper/filter"
)

// Reporter prints the progress of a run for the user, one line per post.
// It is separate from the logger, which only carries diagnostics.
type Reporter struct {
	w io.Writer

	info    lipgloss.Style
	skipped lipgloss.Style
	success lipgloss.Style
	failure lipgloss.Style
}

// NewReporter renders to w, colors are dropped when w is not a terminal.
func NewReporter(w io.Writer) *Reporter {
	r := lipgloss.NewRenderer(w)
	return &Reporter{
		w:       w,
		info:    r.NewStyle().Foreground(lipgloss.Color("6")),
		skipped: r.NewStyle().Foreground(lipgloss.Color("3")),
		success: r.NewStyle().Foreground(lipgloss.Color("2")).Bold(true),
		failure: r.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
	}
}

type Banner struct {
	Directory string
	Subreddit string
	MinWidth  int
	MinHeight int
	Max       int
}

func (r *Reporter) Banner(b Banner) {
	r.println(r.info, "Downloading to %s", b.Directory)
	r.println(r.info, "From r/%s", b.Subreddit)
	r.println(r.info, "Minimum resolution %dx%d", b.MinWidth, b.MinHeight)
	r.println(r.info, "Maximum downloads %d", b.Max)
}

func (r *Reporter) Skipped(index int, reason filter.Reason) {
	style := r.skipped
	if reason == filter.ReasonUnreachable {
		style = r.failure
	}
	r.println(style, "%d) %s", index, reason)
}

func (r *Reporter) Downloaded(index int, name string) {
	r.println(r.success, "%d) Downloaded %s", index, name)
}

func (r *Reporter) Failed(index int) {
	r.println(r.failure, "%d) unexpected error", index)
}

func (r *Reporter) InvalidSubreddit(subreddit string) {
	r.println(r.failure, "r/%s is not a valid subreddit", subreddit)
}

func (r *Reporter) Summary(downloaded int, directory string) {
	r.println(r.info, "%d images was downloaded to %s", downloaded, directory)
}

func (r *Reporter) println(style lipgloss.Style, format string, a ...any) {
	fmt.Fprintln(r.w, style.Render(fmt.Sprintf(format, a...)))
}
