package routes

import (
	"net/http"

	"blog/app/controllers"
	"blog/app/middleware"
	"blog/app/repositories"
	"blog/app/services"
	"blog/app/views"

	"github.com/dgraph-io/badger/v4"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// slugPattern matches post slugs in URLs; it must stay in step with the
// slug validation on models.Post.
const slugPattern = `[a-z0-9]+(?:-[a-z0-9]+)*`

// SetupRoutes wires the Badger-backed repositories, services and controller
// into a router. The returned release func must run before db is closed.
func SetupRoutes(db *badger.DB, renderer *views.Renderer, log *zap.SugaredLogger) (*mux.Router, func() error) {
	postRepo := repositories.NewBadgerPostRepository(db)
	commentRepo := repositories.NewBadgerCommentRepository(db)

	postService := services.NewPostService(postRepo, commentRepo)
	commentService := services.NewCommentService(commentRepo)

	controller := controllers.NewBlogController(postService, commentService, renderer, log)
	return NewRouter(controller, log), commentRepo.Close
}

// NewRouter defines the application's routes for controller.
func NewRouter(controller *controllers.BlogController, log *zap.SugaredLogger) *mux.Router {
	router := mux.NewRouter()

	// Apply global middleware
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger(log))
	router.Use(middleware.Recoverer(log))

	router.NotFoundHandler = middleware.RequestID(middleware.Logger(log)(http.HandlerFunc(controller.NotFound)))

	// Serve static files
	router.PathPrefix("/static/").Handler(views.StaticHandler("/static/")).Methods("GET", "HEAD")

	// Web routes. /contact/ is registered before the slug route so it is
	// never looked up as a post.
	router.HandleFunc("/", controller.Index).Methods("GET", "HEAD")
	router.HandleFunc("/contact/", controller.Contact).Methods("GET", "HEAD")
	router.HandleFunc("/{slug:"+slugPattern+"}/", controller.Detail).Methods("GET", "HEAD", "POST")

	return router
}
