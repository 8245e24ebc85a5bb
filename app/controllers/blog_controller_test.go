package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"blog/app/models"
	"blog/app/repositories/mock"
	"blog/app/services"
	"blog/app/views"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type testEnv struct {
	router      *mux.Router
	postRepo    *mock.PostRepository
	commentRepo *mock.CommentRepository
}

func setupTestController(t *testing.T) *testEnv {
	postRepo := mock.NewPostRepository()
	commentRepo := mock.NewCommentRepository()
	postService := services.NewPostService(postRepo, commentRepo)
	commentService := services.NewCommentService(commentRepo)

	renderer, err := views.New(views.Options{SiteTitle: "Test Blog"})
	require.NoError(t, err)

	require.NoError(t, postService.CreatePost(&models.Post{
		Slug:  "hello-world",
		Title: "Hello",
		Body:  "The very first post.",
	}))

	controller := NewBlogController(postService, commentService, renderer, zap.NewNop().Sugar())
	return &testEnv{
		router:      setupRouter(controller),
		postRepo:    postRepo,
		commentRepo: commentRepo,
	}
}

func setupRouter(controller *BlogController) *mux.Router {
	router := mux.NewRouter()
	router.HandleFunc("/", controller.Index).Methods("GET")
	router.HandleFunc("/contact/", controller.Contact).Methods("GET")
	router.HandleFunc("/{slug}/", controller.Detail).Methods("GET", "POST")
	return router
}

func (e *testEnv) do(method, path string, form url.Values) *httptest.ResponseRecorder {
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, path, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, Read, KindOf(httptest.NewRequest(http.MethodGet, "/x/", nil)))
	assert.Equal(t, Read, KindOf(httptest.NewRequest(http.MethodHead, "/x/", nil)))
	assert.Equal(t, Submit, KindOf(httptest.NewRequest(http.MethodPost, "/x/", nil)))
}

func TestIndex(t *testing.T) {
	env := setupTestController(t)

	w := env.do("GET", "/", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Hello")
	assert.Contains(t, w.Body.String(), "/hello-world/")

	t.Run("persistence failure", func(t *testing.T) {
		env.postRepo.Err = errors.New("disk on fire")
		defer func() { env.postRepo.Err = nil }()

		w := env.do("GET", "/", nil)
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.NotContains(t, w.Body.String(), "disk on fire")
	})
}

func TestDetailRead(t *testing.T) {
	env := setupTestController(t)

	t.Run("existing post", func(t *testing.T) {
		w := env.do("GET", "/hello-world/", nil)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Hello")
		assert.Contains(t, w.Body.String(), "The very first post.")
		assert.Contains(t, w.Body.String(), `name="name"`)
		assert.NotContains(t, w.Body.String(), `class="error"`)
	})

	t.Run("missing post", func(t *testing.T) {
		w := env.do("GET", "/missing-slug/", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("reads do not write", func(t *testing.T) {
		env.do("GET", "/hello-world/", nil)
		assert.Equal(t, 0, env.commentRepo.Total())
	})
}

func TestDetailSubmit(t *testing.T) {
	env := setupTestController(t)

	t.Run("valid comment redirects", func(t *testing.T) {
		w := env.do("POST", "/hello-world/", url.Values{"name": {"Alice"}, "body": {"Nice post"}})
		assert.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, "/hello-world/", w.Header().Get("Location"))
		assert.Equal(t, 1, env.commentRepo.Total())

		w = env.do("GET", "/hello-world/", nil)
		assert.Contains(t, w.Body.String(), "Alice")
		assert.Contains(t, w.Body.String(), "Nice post")
	})

	t.Run("invalid comment re-renders", func(t *testing.T) {
		w := env.do("POST", "/hello-world/", url.Values{"name": {""}, "body": {"Anonymous"}})
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, w.Header().Get("Location"))
		assert.Contains(t, w.Body.String(), "name is a required field")
		assert.Contains(t, w.Body.String(), "Anonymous")
		assert.Equal(t, 1, env.commentRepo.Total())
	})

	t.Run("client cannot pick the post", func(t *testing.T) {
		require.NoError(t, env.postRepo.Create(&models.Post{Slug: "other", Title: "Other", Body: "..."}))

		w := env.do("POST", "/hello-world/", url.Values{"name": {"Mallory"}, "body": {"hi"}, "post": {"other"}})
		assert.Equal(t, http.StatusFound, w.Code)

		others, err := env.commentRepo.ListByPost("other")
		require.NoError(t, err)
		assert.Empty(t, others)
	})

	t.Run("duplicate submissions each create a comment", func(t *testing.T) {
		before := env.commentRepo.Total()
		for i := 0; i < 2; i++ {
			w := env.do("POST", "/hello-world/", url.Values{"name": {"Bob"}, "body": {"Same again"}})
			assert.Equal(t, http.StatusFound, w.Code)
		}
		assert.Equal(t, before+2, env.commentRepo.Total())
	})

	t.Run("missing post", func(t *testing.T) {
		before := env.commentRepo.Total()
		w := env.do("POST", "/missing-slug/", url.Values{"name": {"Alice"}, "body": {"Nice post"}})
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, before, env.commentRepo.Total())
	})

	t.Run("write failure", func(t *testing.T) {
		env.commentRepo.Err = errors.New("disk full")
		defer func() { env.commentRepo.Err = nil }()

		w := env.do("POST", "/hello-world/", url.Values{"name": {"Alice"}, "body": {"Nice post"}})
		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestContact(t *testing.T) {
	env := setupTestController(t)

	w := env.do("GET", "/contact/", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Contact")
	assert.Equal(t, 0, env.commentRepo.Total())
}

type failingRenderer struct{}

func (failingRenderer) Render(http.ResponseWriter, int, string, interface{}) error {
	return errors.New("template exploded")
}

func TestRenderFailure(t *testing.T) {
	controller := NewBlogController(nil, nil, failingRenderer{}, zap.NewNop().Sugar())

	w := httptest.NewRecorder()
	controller.Contact(w, httptest.NewRequest("GET", "/contact/", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

// brokenPipeRenderer sends the status line and then fails on the body.
type brokenPipeRenderer struct{}

func (brokenPipeRenderer) Render(w http.ResponseWriter, status int, _ string, _ interface{}) error {
	w.WriteHeader(status)
	return fmt.Errorf("%w: broken pipe", views.ErrResponseWrite)
}

func TestRenderWriteFailure(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	controller := NewBlogController(nil, nil, brokenPipeRenderer{}, zap.New(core).Sugar())

	w := httptest.NewRecorder()
	controller.Contact(w, httptest.NewRequest("GET", "/contact/", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "Internal Server Error")
	assert.Equal(t, 1, logs.FilterMessage("template error").Len())
}
