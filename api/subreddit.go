package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/rs/zerolog/log"
)

type SubredditService struct {
	client *Client
}

// Validate reports whether the subreddit resolves to a listing.
// It can not tell a missing subreddit from a network failure, both are reported as false.
func (s *SubredditService) Validate(ctx context.Context, subreddit string) bool {
	surl := s.client.aboutURL(subreddit)

	res, err := s.client.doReddit(ctx, http.MethodGet, surl, http.NoBody)
	if err != nil {
		log.Debug().Err(err).Str("url", surl).Msg("subreddit validation request failed")
		return false
	}
	defer res.Body.Close()

	if _, _, err := decodeListing(res); err != nil {
		log.Debug().Err(err).Str("url", surl).Msg("subreddit validation failed")
		return false
	}

	return true
}

// GetPosts returns a single page of posts and the "after" cursor of that page (consult reddit api).
func (s *SubredditService) GetPosts(ctx context.Context, opts *RequestOptions) ([]Post, string, error) {
	res, err := s.client.Do(ctx, opts, http.MethodGet, http.NoBody)
	if err != nil {
		return nil, "", err
	}
	defer res.Body.Close()

	return decodeListing(res)
}

// GetPages issues exactly loops requests, chaining the cursor of each page into the next one,
// and returns the posts of all pages in order.
func (s *SubredditService) GetPages(ctx context.Context, opts RequestOptions, loops int) ([]Post, error) {
	posts := make([]Post, 0, loops*opts.Count)

	for i := 0; i < loops; i++ {
		page, after, err := s.GetPosts(ctx, &opts)
		if err != nil {
			return nil, fmt.Errorf("%w: couldn't fetch page(index=%d,after=%s)", err, i, opts.After)
		}
		log.Debug().
			Int("page", i+1).
			Int("posts", len(page)).
			Str("after", after).
			Msg("fetched page")

		posts = append(posts, page...)
		opts.After = after
	}

	return posts, nil
}

func decodeListing(res *http.Response) ([]Post, string, error) {
	if res.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("%w: %s", ErrInvalidStatusCode, http.StatusText(res.StatusCode))
	}

	var l Listing
	if err := json.NewDecoder(res.Body).Decode(&l); err != nil {
		return nil, "", fmt.Errorf("%w: couldn't decode listing", err)
	}
	if l.Kind != "Listing" {
		return nil, "", fmt.Errorf("%w: kind=%q", ErrNotListing, l.Kind)
	}

	return l.Data.Children, l.Data.After, nil
}
