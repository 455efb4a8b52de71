package api

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"
)

const (
	clientTimeout    = time.Minute
	defaultBaseURL   = "https://reddit.com"
	defaultUserAgent = "go:wallpyper"
)

// Client makes requests to reddit and to the hosts linked from posts.
type Client struct {
	Subreddit *SubredditService

	client  *http.Client
	limiter *rate.Limiter

	base      *url.URL
	userAgent string
}

type RequestOptions struct {
	After     string
	Count     int
	Sorting   string
	Timeframe string
	Subreddit string
}

func (c *Client) WithTimeout(timeout time.Duration) *Client {
	c.client.Timeout = timeout
	return c
}

func (c *Client) WithBaseURL(u *url.URL) *Client {
	c.base = u
	return c
}

func (c *Client) WithUserAgent(ua string) *Client {
	if ua != "" {
		c.userAgent = ua
	}
	return c
}

// WithTransport replaces the transport of the underlying http.Client.
func (c *Client) WithTransport(rt http.RoundTripper) *Client {
	c.client.Transport = rt
	return c
}

// WithRequestInterval spaces out requests to reddit by at least d.
// Zero or negative d removes the limit.
func (c *Client) WithRequestInterval(d time.Duration) *Client {
	c.limiter = rate.NewLimiter(rate.Every(d), 1)
	return c
}

// Do performs a request to the listing described by opts.
func (c *Client) Do(ctx context.Context, opts *RequestOptions, method string, body io.Reader) (*http.Response, error) {
	if opts == nil {
		return nil, ErrEmptyOptions
	}
	return c.doReddit(ctx, method, c.optsURL(opts), body)
}

// GetURL performs a GET request to an arbitrary URL, the caller has to close the body.
func (c *Client) GetURL(ctx context.Context, surl string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, surl, http.NoBody)
	if err != nil {
		return nil, err
	}
	req.Header.Add("User-Agent", c.userAgent)

	return c.client.Do(req)
}

func (c *Client) doReddit(ctx context.Context, method, surl string, body io.Reader) (*http.Response, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, method, surl, body)
	if err != nil {
		return nil, err
	}
	req.Header.Add("User-Agent", c.userAgent)

	return c.client.Do(req)
}

func (c *Client) optsURL(opts *RequestOptions) string {
	u := c.base.
		JoinPath("r").
		JoinPath(opts.Subreddit).
		JoinPath(opts.Sorting, ".json")

	values := u.Query()
	values.Add("after", opts.After)
	values.Add("limit", fmt.Sprint(opts.Count))
	values.Add("t", opts.Timeframe)

	u.RawQuery = values.Encode()

	return u.String()
}

func (c *Client) aboutURL(subreddit string) string {
	return c.base.JoinPath("r", subreddit+".json").String()
}

func DefaultClient() *Client {
	baseURL, _ := url.Parse(defaultBaseURL)
	c := &Client{
		client: &http.Client{
			Transport: &http.Transport{
				Proxy:        http.ProxyFromEnvironment,
				TLSNextProto: map[string]func(authority string, c *tls.Conn) http.RoundTripper{},
			},
			Timeout: clientTimeout,
		},
		limiter:   rate.NewLimiter(rate.Inf, 1),
		base:      baseURL,
		userAgent: defaultUserAgent,
	}
	c.Subreddit = &SubredditService{
		client: c,
	}
	return c
}
