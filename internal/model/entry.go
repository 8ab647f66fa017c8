package model

import "time"

// Entry represents a blog post.
//
// HTML is a rendered cache of Markdown and is recomputed on every edit;
// the two never diverge. Slug is derived from the title at creation and
// never changes afterwards, even when the title is edited.
type Entry struct {
	ID        int64     `json:"id"`
	AuthorID  int64     `json:"author_id"`
	Title     string    `json:"title"`
	Slug      string    `json:"slug"`
	Markdown  string    `json:"markdown"`
	HTML      string    `json:"html"`
	Published time.Time `json:"published"`
	Updated   time.Time `json:"updated"`
}

// Permalink returns the site-relative URL of the entry.
func (e *Entry) Permalink() string {
	return "/entry/" + e.Slug
}
