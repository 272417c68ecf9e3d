package entrypoint

import (
	"context"
	"encoding/hex"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bookclub/internal/auth"
	"github.com/mrlokans/bookclub/internal/config"
	"github.com/mrlokans/bookclub/internal/database"
	"github.com/mrlokans/bookclub/internal/database/books"
	"github.com/mrlokans/bookclub/internal/database/reviews"
	"github.com/mrlokans/bookclub/internal/database/users"
	http_controllers "github.com/mrlokans/bookclub/internal/http"
	"github.com/mrlokans/bookclub/internal/metadata"
)

func Serve(router *gin.Engine, cfg *config.Config) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler: router,
	}

	go func() {
		fmt.Printf("Starting server at %s:%d\n", cfg.HTTP.Host, cfg.HTTP.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// Graceful shutdown on SIGINT/SIGTERM
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Printf("Shutdown Server, waiting %v before killing\n", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server Shutdown:", err)
	}

	log.Println("Server exiting")
}

func Run(cfg *config.Config, version string) {
	log.Printf("Starting Book Club v%s", version)

	// Initialize database
	db, err := database.NewDatabase(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	}()

	booksRepo := books.NewRepository(db.DB)
	usersRepo := users.NewRepository(db.DB)
	reviewsRepo := reviews.NewRepository(db.DB)

	authService := auth.NewService(usersRepo)

	// Get underlying SQL DB for the session store
	sqlDB, err := db.DB.DB()
	if err != nil {
		log.Fatalf("Failed to get SQL DB for sessions: %v", err)
	}

	sessionManager, err := auth.NewSessionManager(sqlDB, cfg.Auth)
	if err != nil {
		log.Fatalf("Failed to initialize session manager: %v", err)
	}

	// Generate or use configured CSRF secret
	var csrfSecret []byte
	if cfg.Auth.SessionSecret != "" {
		csrfSecret, err = hex.DecodeString(cfg.Auth.SessionSecret)
		if err != nil {
			// Not hex, use as raw bytes
			csrfSecret = []byte(cfg.Auth.SessionSecret)
		}
	} else {
		secret, err := auth.GenerateSessionSecret()
		if err != nil {
			log.Fatalf("Failed to generate CSRF secret: %v", err)
		}
		csrfSecret, _ = hex.DecodeString(secret)
		log.Printf("Generated session secret (set AUTH_SESSION_SECRET to persist)")
	}

	// External review-counts client. Without an API key the service
	// rejects every call, so leave the client unset and let pages render
	// without aggregate data.
	var reviewCounts *metadata.ReviewCountsClient
	if cfg.Reviews.APIKey != "" {
		reviewCounts = metadata.NewReviewCountsClient(cfg.Reviews)
	} else {
		log.Printf("WARNING: Reviews API key is not set. Book pages will render without external review counts. Set 'REVIEWS_API_KEY' to enable.")
	}

	count, err := booksRepo.CountBooks()
	if err == nil && count == 0 {
		log.Printf("The catalog is empty. Seed it with '%s import-books -file books.csv'.", os.Args[0])
	}

	routerCfg := http_controllers.RouterConfig{
		Database:       db,
		BooksRepo:      booksRepo,
		ReviewsRepo:    reviewsRepo,
		AuthService:    authService,
		SessionManager: sessionManager,
		ReviewCounts:   reviewCounts,
		TemplatesPath:  cfg.UI.TemplatesPath,
		StaticPath:     cfg.UI.StaticPath,
		CSRFSecret:     csrfSecret,
		SecureCookies:  cfg.Auth.SecureCookies,
		Version:        version,
	}

	router := http_controllers.NewRouter(routerCfg)

	Serve(router, cfg)
}
