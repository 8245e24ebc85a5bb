// Package forms binds submitted request fields to model candidates and
// collects per-field validation messages for re-rendering.
package forms

import (
	"net/url"
	"strings"

	"blog/app/models"
)

// CommentForm is the comment submission form shown on a post's page.
// An unbound form is empty; a bound form carries submitted values and,
// after IsValid, any field errors.
type CommentForm struct {
	Name   string
	Body   string
	Errors map[string]string

	bound     bool
	validated bool
}

// NewCommentForm returns an unbound, empty form.
func NewCommentForm() *CommentForm {
	return &CommentForm{Errors: map[string]string{}}
}

// BindCommentForm binds submitted values. Fields other than name and body,
// including any attempt to name a post, are ignored.
func BindCommentForm(values url.Values) *CommentForm {
	return &CommentForm{
		Name:   strings.TrimSpace(values.Get("name")),
		Body:   strings.TrimSpace(values.Get("body")),
		Errors: map[string]string{},
		bound:  true,
	}
}

// IsBound reports whether the form carries submitted data.
func (f *CommentForm) IsBound() bool {
	return f.bound
}

// IsValid validates a bound form and records field errors. An unbound form
// is never valid.
func (f *CommentForm) IsValid() bool {
	if !f.bound {
		return false
	}
	if !f.validated {
		f.Errors = map[string]string{}
		for field, msg := range models.FieldErrors(f.candidate().ValidateInput()) {
			f.Errors[field] = msg
		}
		f.validated = true
	}
	return len(f.Errors) == 0
}

// Error returns the message for one field, or "".
func (f *CommentForm) Error(field string) string {
	return f.Errors[field]
}

// Comment returns the comment candidate built from the form. It carries no
// post reference; the caller binds it to the resolved post.
func (f *CommentForm) Comment() *models.Comment {
	return f.candidate()
}

func (f *CommentForm) candidate() *models.Comment {
	return &models.Comment{Name: f.Name, Body: f.Body}
}
