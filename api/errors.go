package api

import "errors"

var (
	ErrEmptyOptions      = errors.New("empty options")
	ErrInvalidStatusCode = errors.New("invalid status code")
	ErrNotListing        = errors.New("response is not a listing")
)
