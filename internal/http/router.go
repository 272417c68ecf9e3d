package http

import (
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bookclub/internal/auth"
	"github.com/mrlokans/bookclub/internal/database"
	"github.com/mrlokans/bookclub/internal/database/books"
	"github.com/mrlokans/bookclub/internal/database/reviews"
	"github.com/mrlokans/bookclub/internal/metadata"
)

// RouterConfig carries all dependencies needed to build the HTTP router.
type RouterConfig struct {
	Database       *database.Database
	BooksRepo      *books.Repository
	ReviewsRepo    *reviews.Repository
	AuthService    *auth.Service
	SessionManager *auth.SessionManager
	ReviewCounts   *metadata.ReviewCountsClient
	TemplatesPath  string
	StaticPath     string
	CSRFSecret     []byte
	SecureCookies  bool
	Version        string
}

// NewRouter creates and configures the HTTP router with all endpoints.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	// Apply security headers to all responses
	router.Use(auth.SecurityHeadersMiddleware())

	// CSRF must run before session so that session context is preserved
	if len(cfg.CSRFSecret) > 0 {
		router.Use(auth.CSRFMiddleware(cfg.CSRFSecret, cfg.SecureCookies))
	}

	router.Use(cfg.SessionManager.SessionLoadSave())
	router.Use(auth.SessionContext(cfg.SessionManager))

	tmpl := template.Must(template.New("").ParseGlob(cfg.TemplatesPath + "/*.html"))
	router.SetHTMLTemplate(tmpl)

	// Serve static files
	router.Static("/static", cfg.StaticPath)

	// Session/auth routes
	authController := auth.NewAuthController(cfg.AuthService, cfg.SessionManager)
	authController.RegisterRoutes(router)

	// Create controllers with appropriate dependencies
	health := NewHealthController(cfg.Database, cfg.Version)
	searchController := NewSearchController(cfg.BooksRepo)
	booksController := NewBooksController(cfg.BooksRepo, cfg.ReviewsRepo, cfg.ReviewCounts)
	apiController := NewAPIController(cfg.BooksRepo, cfg.ReviewsRepo)

	// Health endpoint
	router.GET("/health", health.Status)

	// Landing page
	router.GET("/", func(c *gin.Context) {
		c.HTML(http.StatusOK, "index.html", mergePageData(c, gin.H{
			"Title": "Book Club",
		}))
	})

	// Catalog routes
	router.GET("/search", searchController.SearchPage)
	router.GET("/random", booksController.RandomBook)
	router.GET("/books/:id", booksController.BookPage)
	router.POST("/books/:id", auth.RequireAuth(cfg.SessionManager), booksController.SubmitReview)

	// Public API
	router.GET("/api/:isbn", apiController.GetBookStats)

	return router
}
