package api

import (
	"bufio"
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"
)

// probeChunkSize is the size of the reads made while looking for image dimensions.
const probeChunkSize = 1024

// Status performs a GET request and returns the status code, the body is never read.
func (c *Client) Status(ctx context.Context, surl string) (int, error) {
	res, err := c.GetURL(ctx, surl)
	if err != nil {
		return 0, err
	}
	res.Body.Close()

	return res.StatusCode, nil
}

// ImageConfig reads just enough of the image at surl to know its dimensions and format.
// The response body is streamed and the connection is closed as soon as the header is decoded.
func (c *Client) ImageConfig(ctx context.Context, surl string) (image.Config, string, error) {
	res, err := c.GetURL(ctx, surl)
	if err != nil {
		return image.Config{}, "", err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return image.Config{}, "", fmt.Errorf("%w: %s", ErrInvalidStatusCode, http.StatusText(res.StatusCode))
	}

	cfg, format, err := image.DecodeConfig(bufio.NewReaderSize(res.Body, probeChunkSize))
	if err != nil {
		return image.Config{}, "", fmt.Errorf("%w: couldn't decode image header(url=%s)", err, surl)
	}

	return cfg, format, nil
}

// Download copies the resource at surl into w and returns the amount of bytes written.
func (c *Client) Download(ctx context.Context, surl string, w io.Writer) (int64, error) {
	res, err := c.GetURL(ctx, surl)
	if err != nil {
		return 0, err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("%w: %s", ErrInvalidStatusCode, http.StatusText(res.StatusCode))
	}

	return io.Copy(w, res.Body)
}
