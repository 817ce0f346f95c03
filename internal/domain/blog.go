package domain

import "time"

// BlogPost is an article with its tags resolved.
type BlogPost struct {
	ID          string
	Title       string
	Description string
	ImageURL    *string
	Published   bool
	Tags        []Tag
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Tag labels blog posts. Names are unique.
type Tag struct {
	ID        string
	Name      string
	CreatedAt time.Time
}
