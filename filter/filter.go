// Package filter decides which posts are worth downloading.
//
// A Chain runs its filters in order and stops at the first one that rejects the post,
// the rejection carries a Reason (and an error, when one caused it) so callers can tell
// "portrait image" apart from "image could not be fetched". Every filter fails closed:
// an error only ever rejects the post it happened on.
package filter

import (
	"context"
	"image"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// Remote is what the filters need from the network.
type Remote interface {
	// Status performs a GET request and returns the status code.
	Status(ctx context.Context, url string) (int, error)
	// ImageConfig decodes the dimensions of the image behind url.
	ImageConfig(ctx context.Context, url string) (image.Config, string, error)
}

// DeciderFunc returns whether the candidate should be kept.
// A non-nil error always means the candidate is rejected.
type DeciderFunc func(ctx context.Context, c *Candidate) (bool, error)

// Filter is a single step of the chain.
type Filter struct {
	Reason Reason
	Keeps  DeciderFunc
}

// Verdict is the outcome of applying a chain to a post.
type Verdict struct {
	Err    error
	Reason Reason
	Width  int
	Height int
}

// Passed reports whether no filter rejected the post.
func (v Verdict) Passed() bool {
	return v.Reason == ReasonNone
}

type Chain struct {
	remote  Remote
	filters []Filter
}

func NewChain(remote Remote, filters ...Filter) *Chain {
	return &Chain{
		remote:  remote,
		filters: filters,
	}
}

// Apply runs the filters against the URL until one of them rejects it.
func (ch *Chain) Apply(ctx context.Context, rawURL string) Verdict {
	c := &Candidate{URL: rawURL, remote: ch.remote}

	for _, f := range ch.filters {
		keep, err := f.Keeps(ctx, c)
		if err != nil || !keep {
			return Verdict{Err: err, Reason: f.Reason, Width: c.width, Height: c.height}
		}
	}

	return Verdict{Reason: ReasonNone, Width: c.width, Height: c.height}
}

// Default returns the filters in the order they should be applied.
func Default(minWidth, minHeight int, directory string) []Filter {
	return []Filter{
		Reachable(),
		KnownHost(),
		ImageExtension(),
		Landscape(),
		Resolution(minWidth, minHeight),
		NotDownloaded(directory),
	}
}

// Reachable rejects URLs that return 404 or can not be requested at all.
func Reachable() Filter {
	return Filter{
		Reason: ReasonUnreachable,
		Keeps: func(ctx context.Context, c *Candidate) (bool, error) {
			status, err := c.remote.Status(ctx, c.URL)
			if err != nil {
				return false, err
			}
			return status != http.StatusNotFound, nil
		},
	}
}

var knownHosts = []string{
	"https://i.redd.it/",
	"https://i.imgur.com/",
}

// KnownHost keeps URLs of hosts that serve images directly.
func KnownHost() Filter {
	return Filter{
		Reason: ReasonUnknownHost,
		Keeps: func(_ context.Context, c *Candidate) (bool, error) {
			lower := strings.ToLower(c.URL)
			for _, prefix := range knownHosts {
				if strings.HasPrefix(lower, prefix) {
					return true, nil
				}
			}
			return false, nil
		},
	}
}

var imageExtensions = []string{".png", ".jpeg", ".jpg"}

// ImageExtension keeps URLs that end in a supported image extension, the match is case-sensitive.
func ImageExtension() Filter {
	return Filter{
		Reason: ReasonNotImage,
		Keeps: func(_ context.Context, c *Candidate) (bool, error) {
			for _, ext := range imageExtensions {
				if strings.HasSuffix(c.URL, ext) {
					return true, nil
				}
			}
			return false, nil
		},
	}
}

// Landscape keeps images that are at least as wide as they are tall.
func Landscape() Filter {
	return Filter{
		Reason: ReasonPortrait,
		Keeps: func(ctx context.Context, c *Candidate) (bool, error) {
			w, h, err := c.Dimensions(ctx)
			if err != nil {
				return false, err
			}
			return w >= h, nil
		},
	}
}

// Resolution keeps images of at least minWidth x minHeight.
func Resolution(minWidth, minHeight int) Filter {
	return Filter{
		Reason: ReasonLowResolution,
		Keeps: func(ctx context.Context, c *Candidate) (bool, error) {
			w, h, err := c.Dimensions(ctx)
			if err != nil {
				return false, err
			}
			return w >= minWidth && h >= minHeight, nil
		},
	}
}

// NotDownloaded rejects URLs whose basename already exists as a file in directory.
func NotDownloaded(directory string) Filter {
	return Filter{
		Reason: ReasonDownloaded,
		Keeps: func(_ context.Context, c *Candidate) (bool, error) {
			return !FileExists(filepath.Join(directory, Basename(c.URL))), nil
		},
	}
}

// Basename returns the last segment of the URL path, which is used as the local filename.
// Percent-encoding is kept, so the name matches the URL as posted.
func Basename(rawURL string) string {
	if u, err := url.Parse(rawURL); err == nil {
		rawURL = u.EscapedPath()
	}
	return path.Base(rawURL)
}

// FileExists returns whether a regular file exists at filename.
func FileExists(filename string) bool {
	info, err := os.Stat(filename)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
