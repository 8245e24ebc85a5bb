package routes

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"blog/app/models"
	"blog/app/repositories"
	"blog/app/services"
	"blog/app/views"

	"github.com/dgraph-io/badger/v4"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupTestDB(t *testing.T) *badger.DB {
	db, err := repositories.Open(repositories.Options{InMemory: true})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func setupTestRouter(t *testing.T, db *badger.DB) *mux.Router {
	renderer, err := views.New(views.Options{SiteTitle: "Test Blog", Minify: true})
	require.NoError(t, err)
	router, release := SetupRoutes(db, renderer, zap.NewNop().Sugar())
	t.Cleanup(func() { release() })
	return router
}

func createPost(t *testing.T, db *badger.DB, post *models.Post) {
	comments := repositories.NewBadgerCommentRepository(db)
	defer comments.Close()
	postService := services.NewPostService(repositories.NewBadgerPostRepository(db), comments)
	require.NoError(t, postService.CreatePost(post))
}

func serve(router http.Handler, method, path string, form url.Values) *httptest.ResponseRecorder {
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, path, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}
