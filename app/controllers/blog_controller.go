package controllers

import (
	"errors"
	"net/http"

	"blog/app/forms"
	"blog/app/middleware"
	"blog/app/models"
	"blog/app/repositories"
	"blog/app/services"
	"blog/app/views"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// PostReader is the read side of post persistence used by the handlers.
type PostReader interface {
	ListPosts() ([]services.PostSummary, error)
	GetPost(slug string) (*models.Post, error)
}

// CommentWriter persists a comment bound to a post.
type CommentWriter interface {
	CreateComment(post *models.Post, comment *models.Comment) error
}

// Renderer writes a named page.
type Renderer interface {
	Render(w http.ResponseWriter, status int, name string, data interface{}) error
}

// RequestKind is how the detail page treats a request.
type RequestKind int

const (
	// Read shows the post with an empty comment form.
	Read RequestKind = iota
	// Submit binds, validates and possibly stores a comment.
	Submit
)

// KindOf classifies a request for the detail page.
func KindOf(r *http.Request) RequestKind {
	if r.Method == http.MethodPost {
		return Submit
	}
	return Read
}

// BlogController handles the blog's page requests
type BlogController struct {
	posts    PostReader
	comments CommentWriter
	views    Renderer
	log      *zap.SugaredLogger
}

// NewBlogController creates a new BlogController
func NewBlogController(posts PostReader, comments CommentWriter, views Renderer, log *zap.SugaredLogger) *BlogController {
	return &BlogController{
		posts:    posts,
		comments: comments,
		views:    views,
		log:      log,
	}
}

// IndexPage is the data behind the post list.
type IndexPage struct {
	Posts []services.PostSummary
}

// DetailPage is the data behind a post's page.
type DetailPage struct {
	Post *models.Post
	Form *forms.CommentForm
}

// Index handles listing all posts
func (bc *BlogController) Index(w http.ResponseWriter, r *http.Request) {
	posts, err := bc.posts.ListPosts()
	if err != nil {
		bc.serverError(w, r, err)
		return
	}

	bc.render(w, r, http.StatusOK, views.PageIndex, IndexPage{Posts: posts})
}

// Detail shows a post and its comment form, and accepts comment submissions.
// A valid submission is stored and answered with a redirect back to the
// post; an invalid one re-renders the page with the errors.
func (bc *BlogController) Detail(w http.ResponseWriter, r *http.Request) {
	slug := mux.Vars(r)["slug"]

	post, err := bc.posts.GetPost(slug)
	if errors.Is(err, repositories.ErrNotFound) {
		bc.NotFound(w, r)
		return
	}
	if err != nil {
		bc.serverError(w, r, err)
		return
	}

	var form *forms.CommentForm
	switch KindOf(r) {
	case Submit:
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Failed to parse form", http.StatusBadRequest)
			return
		}
		form = forms.BindCommentForm(r.PostForm)
		if form.IsValid() {
			comment := form.Comment()
			if err := bc.comments.CreateComment(post, comment); err != nil {
				bc.serverError(w, r, err)
				return
			}
			bc.log.Infow("comment created",
				"post", post.Slug,
				"comment_id", comment.ID,
				"request_id", middleware.GetRequestID(r.Context()),
			)
			http.Redirect(w, r, DetailPath(post.Slug), http.StatusFound)
			return
		}
	default:
		form = forms.NewCommentForm()
	}

	bc.render(w, r, http.StatusOK, views.PageDetail, DetailPage{Post: post, Form: form})
}

// Contact renders the static contact page
func (bc *BlogController) Contact(w http.ResponseWriter, r *http.Request) {
	bc.render(w, r, http.StatusOK, views.PageContact, nil)
}

// NotFound renders the 404 page
func (bc *BlogController) NotFound(w http.ResponseWriter, r *http.Request) {
	bc.render(w, r, http.StatusNotFound, views.PageNotFound, nil)
}

// DetailPath is the URL of a post's page.
func DetailPath(slug string) string {
	return "/" + slug + "/"
}

// Helper methods for consistent response handling

func (bc *BlogController) render(w http.ResponseWriter, r *http.Request, status int, page string, data interface{}) {
	err := bc.views.Render(w, status, page, data)
	if err == nil {
		return
	}
	bc.log.Errorw("template error",
		"page", page,
		"error", err,
		"request_id", middleware.GetRequestID(r.Context()),
	)
	// Headers are already out once writing the body failed.
	if !errors.Is(err, views.ErrResponseWrite) {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

func (bc *BlogController) serverError(w http.ResponseWriter, r *http.Request, err error) {
	bc.log.Errorw("request failed",
		"method", r.Method,
		"path", r.URL.Path,
		"error", err,
		"request_id", middleware.GetRequestID(r.Context()),
	)
	bc.render(w, r, http.StatusInternalServerError, views.PageError, "The server could not complete your request.")
}
