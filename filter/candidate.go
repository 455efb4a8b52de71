package filter

import (
	"context"

	"github.com/rs/zerolog/log"
)

// Candidate is a post URL going through the chain.
// The image header is fetched at most once, no matter how many filters need the dimensions.
type Candidate struct {
	URL string

	remote Remote

	probed   bool
	probeErr error
	width    int
	height   int
}

// Dimensions returns the width and height of the linked image.
func (c *Candidate) Dimensions(ctx context.Context) (w, h int, err error) {
	if !c.probed {
		c.probed = true
		cfg, format, err := c.remote.ImageConfig(ctx, c.URL)
		if err != nil {
			c.probeErr = err
		} else {
			c.width, c.height = cfg.Width, cfg.Height
			log.Debug().
				Str("url", c.URL).
				Str("format", format).
				Int("width", c.width).
				Int("height", c.height).
				Msg("decoded image header")
		}
	}
	return c.width, c.height, c.probeErr
}
