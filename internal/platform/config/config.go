// Package config builds runtime configuration from the environment so main
// stays lean.
package config

import (
	"os"
	"strings"
	"time"

	"barangay/internal/clearance/policy"
)

// Config captures everything the server needs at startup.
type Config struct {
	Addr          string
	LogLevel      string
	JWTSigningKey string
	SessionTTL    time.Duration

	PostgresDSN string
	RedisURL    string

	AdminUsername     string
	AdminPasswordHash string
	AdminDisplayName  string

	Docs DocsConfig
}

// DocsConfig holds the external document provider credentials and the
// per-clearance-type template bindings.
type DocsConfig struct {
	ClientID      string
	ClientSecret  string
	RefreshToken  string
	FolderID      string
	PhotoFolderID string
	Templates     map[policy.Type]string
}

// FromEnv reads configuration from environment variables. Template IDs come
// from BARANGAY_TEMPLATE_<TYPE> with dashes mapped to underscores, e.g.
// BARANGAY_TEMPLATE_GOOD_MORAL.
func FromEnv() Config {
	cfg := Config{
		Addr:              envOr("BARANGAY_ADDR", ":8080"),
		LogLevel:          envOr("BARANGAY_LOG_LEVEL", "info"),
		JWTSigningKey:     envOr("BARANGAY_JWT_SIGNING_KEY", "dev-secret-key-change-in-production"),
		SessionTTL:        envDuration("BARANGAY_SESSION_TTL", 8*time.Hour),
		PostgresDSN:       os.Getenv("BARANGAY_POSTGRES_DSN"),
		RedisURL:          os.Getenv("BARANGAY_REDIS_URL"),
		AdminUsername:     envOr("BARANGAY_ADMIN_USERNAME", "admin"),
		AdminPasswordHash: os.Getenv("BARANGAY_ADMIN_PASSWORD_HASH"),
		AdminDisplayName:  envOr("BARANGAY_ADMIN_DISPLAY_NAME", "Barangay Administrator"),
		Docs: DocsConfig{
			ClientID:      os.Getenv("BARANGAY_DOCS_CLIENT_ID"),
			ClientSecret:  os.Getenv("BARANGAY_DOCS_CLIENT_SECRET"),
			RefreshToken:  os.Getenv("BARANGAY_DOCS_REFRESH_TOKEN"),
			FolderID:      os.Getenv("BARANGAY_DOCS_FOLDER_ID"),
			PhotoFolderID: os.Getenv("BARANGAY_DOCS_PHOTO_FOLDER_ID"),
			Templates:     templatesFromEnv(),
		},
	}
	return cfg
}

func templatesFromEnv() map[policy.Type]string {
	templates := make(map[policy.Type]string)
	for _, t := range policy.All() {
		key := "BARANGAY_TEMPLATE_" + strings.ToUpper(strings.ReplaceAll(string(t), "-", "_"))
		if id := os.Getenv(key); id != "" {
			templates[t] = id
		}
	}
	return templates
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
