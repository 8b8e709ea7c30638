package config

import (
	"os"
	"strconv"
	"time"

	"todo_webapp/internal/logger"

	"github.com/joho/godotenv"
)

type Config struct {
	AppPort     string
	AppBaseURL  string
	DatabaseURL string

	// Managed identity + storage service
	SupabaseURL       string
	SupabaseAnonKey   string
	SupabaseJWTSecret string
	StorageBucket     string
	UploadPrefix      string

	// Redis rate limiting (optional; in-memory fallback when unset)
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	APIRateLimit   int
	APIRateWindow  time.Duration
	AuthRateLimit  int
	AuthRateWindow time.Duration

	// Page prefixes that require a signed-in session
	RequireAuthPrefixes []string
}

// Load reads configuration from the environment, applying defaults where safe
// and failing fast on anything the server cannot run without.
func Load() *Config {
	_ = godotenv.Load()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		logger.Fatal("DATABASE_URL is not set")
	}

	supabaseURL := os.Getenv("SUPABASE_URL")
	if supabaseURL == "" {
		logger.Fatal("SUPABASE_URL is not set")
	}

	anonKey := os.Getenv("SUPABASE_ANON_KEY")
	if anonKey == "" {
		logger.Fatal("SUPABASE_ANON_KEY is not set")
	}

	jwtSecret := os.Getenv("SUPABASE_JWT_SECRET")
	if jwtSecret == "" {
		logger.Fatal("SUPABASE_JWT_SECRET is not set")
	}

	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8080"
	}

	baseURL := os.Getenv("APP_BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:" + port
	}

	bucket := os.Getenv("STORAGE_BUCKET")
	if bucket == "" {
		bucket = "todos"
	}

	prefix := os.Getenv("UPLOAD_PREFIX")
	if prefix == "" {
		prefix = "uploads"
	}

	redisDB := 0
	if v := os.Getenv("REDIS_DB"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			redisDB = n
		}
	}

	return &Config{
		AppPort:             port,
		AppBaseURL:          baseURL,
		DatabaseURL:         dbURL,
		SupabaseURL:         supabaseURL,
		SupabaseAnonKey:     anonKey,
		SupabaseJWTSecret:   jwtSecret,
		StorageBucket:       bucket,
		UploadPrefix:        prefix,
		RedisAddr:           os.Getenv("REDIS_ADDR"),
		RedisPassword:       os.Getenv("REDIS_PASSWORD"),
		RedisDB:             redisDB,
		APIRateLimit:        envInt("API_RATE_LIMIT", 60),
		APIRateWindow:       envSeconds("API_RATE_WINDOW_SECONDS", time.Minute),
		AuthRateLimit:       envInt("AUTH_RATE_LIMIT", 5),
		AuthRateWindow:      envSeconds("AUTH_RATE_WINDOW_SECONDS", time.Minute),
		RequireAuthPrefixes: []string{"/admin"},
	}
}

func envInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return def
}

func envSeconds(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return time.Duration(n) * time.Second
		}
	}
	return def
}
