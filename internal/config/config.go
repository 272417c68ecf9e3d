package config

import (
	"time"

	"github.com/spf13/viper"
)

type (
	Config struct {
		HTTP
		Global
		Database
		Reviews
		Auth
		UI
	}

	HTTP struct {
		Port int32
		Host string
	}
	Global struct {
		ShutdownTimeoutInSeconds int
	}
	Database struct {
		Path string
	}
	// Reviews configures the external review-aggregation service used to
	// enrich book detail pages with community review counts and ratings.
	Reviews struct {
		APIKey  string
		BaseURL string
		Timeout time.Duration
	}
	Auth struct {
		SessionSecret   string
		SessionLifetime time.Duration
		SecureCookies   bool // set to false for local dev without HTTPS
	}
	UI struct {
		TemplatesPath string
		StaticPath    string
	}
)

func NewConfig() *Config {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("port", 8188)
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("shutdown_timeout_in_seconds", 2)
	v.SetDefault("database_path", DefaultDatabasePath)
	v.SetDefault("templates_path", "./templates")
	v.SetDefault("static_path", "./static")

	// External review-aggregation service defaults
	v.SetDefault("reviews_api_key", "")
	v.SetDefault("reviews_base_url", DefaultReviewsBaseURL)
	v.SetDefault("reviews_timeout", "10s")

	// Auth defaults
	v.SetDefault("auth_session_secret", "") // auto-generated if empty
	v.SetDefault("auth_session_lifetime", "24h")
	v.SetDefault("auth_secure_cookies", true)

	return &Config{
		HTTP: HTTP{
			Port: v.GetInt32("PORT"),
			Host: v.GetString("HOST"),
		},
		Global: Global{
			ShutdownTimeoutInSeconds: v.GetInt("SHUTDOWN_TIMEOUT_IN_SECONDS"),
		},
		Database: Database{
			Path: v.GetString("DATABASE_PATH"),
		},
		Reviews: Reviews{
			APIKey:  v.GetString("REVIEWS_API_KEY"),
			BaseURL: v.GetString("REVIEWS_BASE_URL"),
			Timeout: v.GetDuration("REVIEWS_TIMEOUT"),
		},
		Auth: Auth{
			SessionSecret:   v.GetString("AUTH_SESSION_SECRET"),
			SessionLifetime: v.GetDuration("AUTH_SESSION_LIFETIME"),
			SecureCookies:   v.GetBool("AUTH_SECURE_COOKIES"),
		},
		UI: UI{
			TemplatesPath: v.GetString("TEMPLATES_PATH"),
			StaticPath:    v.GetString("STATIC_PATH"),
		},
	}
}
