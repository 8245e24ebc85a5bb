package models

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommentValidation(t *testing.T) {
	tests := []struct {
		name    string
		comment *Comment
		wantErr bool
	}{
		{
			name: "valid comment",
			comment: &Comment{
				PostSlug:  "hello-world",
				Name:      "Alice",
				Body:      "Nice post",
				CreatedAt: time.Now(),
			},
			wantErr: false,
		},
		{
			name: "missing post reference",
			comment: &Comment{
				Name:      "Alice",
				Body:      "Nice post",
				CreatedAt: time.Now(),
			},
			wantErr: true,
		},
		{
			name: "empty name",
			comment: &Comment{
				PostSlug:  "hello-world",
				Body:      "Nice post",
				CreatedAt: time.Now(),
			},
			wantErr: true,
		},
		{
			name: "name too long",
			comment: &Comment{
				PostSlug:  "hello-world",
				Name:      strings.Repeat("a", 81),
				Body:      "Nice post",
				CreatedAt: time.Now(),
			},
			wantErr: true,
		},
		{
			name: "zero creation time",
			comment: &Comment{
				PostSlug: "hello-world",
				Name:     "Alice",
				Body:     "Nice post",
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.comment.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCommentValidateInput(t *testing.T) {
	// Post reference and timestamp are not the author's concern.
	assert.NoError(t, (&Comment{Name: "Alice", Body: "Nice post"}).ValidateInput())

	err := (&Comment{Body: "Nice post"}).ValidateInput()
	require.Error(t, err)

	errs := FieldErrors(err)
	assert.Equal(t, "name is a required field", errs["name"])
	assert.NotContains(t, errs, "body")
}

func TestFieldErrors(t *testing.T) {
	assert.Nil(t, FieldErrors(nil))

	errs := FieldErrors((&Post{Slug: "Bad Slug", Title: "x", Body: "y"}).Validate())
	assert.Contains(t, errs["slug"], "lower-case")

	errs = FieldErrors(assert.AnError)
	assert.Equal(t, assert.AnError.Error(), errs[""])
}

func TestCommentBeforeCreate(t *testing.T) {
	comment := &Comment{Name: "Alice", Body: "Nice post"}

	assert.True(t, comment.CreatedAt.IsZero())
	comment.BeforeCreate()
	assert.False(t, comment.CreatedAt.IsZero())
}

func TestCommentSetPost(t *testing.T) {
	comment := &Comment{
		PostSlug: "spoofed",
		Name:     "Alice",
		Body:     "Nice post",
	}

	t.Run("set valid post", func(t *testing.T) {
		post := &Post{Slug: "hello-world", Title: "Hello", Body: "..."}

		err := comment.SetPost(post)
		assert.NoError(t, err)
		assert.Equal(t, "hello-world", comment.PostSlug)
		assert.Equal(t, post, comment.Post)
	})

	t.Run("set nil post", func(t *testing.T) {
		err := comment.SetPost(nil)
		assert.Error(t, err)
	})
}
