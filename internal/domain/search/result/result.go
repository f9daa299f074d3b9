// Package result holds the post hits returned by a search.
package result

import (
	"strings"
	"time"
)

// Author is the uploader of a post.
type Author struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// Name is a named relation of a post (tag or artist).
type Name struct {
	Name string `json:"name"`
}

// Post is a single search hit.
type Post struct {
	ID               string    `json:"id"`
	Description      string    `json:"description"`
	Author           Author    `json:"author"`
	Likes            int64     `json:"likes"`
	Views            int64     `json:"views"`
	CommentCount     int64     `json:"commentCount"`
	ModerationStatus string    `json:"moderationStatus"`
	SourceLink       string    `json:"sourceLink"`
	Tags             []Name    `json:"tags"`
	Artists          []Name    `json:"artists"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// SplitNames turns a comma-joined name list ("a,b,c") into names.
// Blank entries are dropped.
func SplitNames(joined string) []Name {
	if joined == "" {
		return []Name{}
	}
	parts := strings.Split(joined, ",")
	out := make([]Name, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, Name{Name: p})
	}
	return out
}
