// package api contains the code required to validate subreddits, page through listings and fetch the
// media linked from posts.
// Only the parts of the public JSON api needed for downloading wallpapers are modelled here.
package api

import (
	"strings"
)

// Listing mimics reddit's response for subreddit listings.
type Listing struct {
	Kind string `json:"kind"`
	Data struct {
		After    string `json:"after"`
		Children []Post `json:"children"`
	} `json:"data"`
}

type Post struct {
	Kind string `json:"kind"`
	Data struct {
		Title     string `json:"title"`
		URL       string `json:"url"`
		Subreddit string `json:"subreddit"`
	} `json:"data"`
}

// Title is just the post title.
func (p *Post) Title() string {
	return p.Data.Title
}

// URL returns the externally linked resource of the post.
func (p *Post) URL() string {
	return strings.ReplaceAll(p.Data.URL, "&amp;", "&")
}
