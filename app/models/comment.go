package models

import (
	"errors"
	"time"
)

// Validate checks if the comment meets all validation requirements
func (c *Comment) Validate() error {
	if err := validate.Struct(c); err != nil {
		return err
	}

	if c.CreatedAt.IsZero() {
		return errors.New("created_at cannot be zero")
	}

	return nil
}

// ValidateInput checks only the author-supplied fields. The post reference
// and timestamps are assigned by the server and are not checked here.
func (c *Comment) ValidateInput() error {
	return validate.StructPartial(c, "Name", "Body")
}

// BeforeCreate sets up any necessary fields before creation
func (c *Comment) BeforeCreate() {
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now().UTC()
	}
}

// SetPost sets the parent post and updates the PostSlug, replacing
// whatever reference the comment carried before.
func (c *Comment) SetPost(post *Post) error {
	if post == nil {
		return errors.New("post cannot be nil")
	}

	c.Post = post
	c.PostSlug = post.Slug
	return nil
}
