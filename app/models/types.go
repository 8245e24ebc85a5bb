package models

import "time"

// Post represents a blog post with comments.
type Post struct {
	Slug      string     `json:"slug" validate:"required,max=100,slug"`
	Title     string     `json:"title" validate:"required,max=200"`
	Body      string     `json:"body" validate:"required"`
	CreatedAt time.Time  `json:"createdAt"`
	Comments  []*Comment `json:"-" validate:"-"`
}

// Comment represents a comment on a blog post.
type Comment struct {
	ID        int       `json:"id" validate:"gte=0"`
	PostSlug  string    `json:"postSlug" validate:"required"`
	Name      string    `json:"name" validate:"required,max=80"`
	Body      string    `json:"body" validate:"required,max=2000"`
	CreatedAt time.Time `json:"createdAt"`
	Post      *Post     `json:"-" validate:"-"`
}
