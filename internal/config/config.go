package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// DefaultAPIBaseURL is the upstream tutoring API.
const DefaultAPIBaseURL = "https://test.worldsacross.com/api"

// Config holds all application configuration.
type Config struct {
	ServerPort string
	GinMode    string
	LogLevel   string
	LogFormat  string

	APIBaseURL       string
	UpstreamTimeout  time.Duration
	RedisURL         string
	UpstreamCacheTTL time.Duration

	// AllowedOrigins controls HTTP CORS.
	// Empty slice means all origins are permitted (dev default).
	AllowedOrigins []string

	Locale   string
	Location *time.Location

	TutorPageSize   int
	StudentPageSize int
	ClassPageSize   int

	RefreshRatePerMinute int
}

// Load reads configuration from environment variables with sensible defaults.
// It loads .env file if present but does not fail if missing.
func Load() *Config {
	_ = godotenv.Load() // .env is optional

	return &Config{
		ServerPort:           getEnv("SERVER_PORT", "8080"),
		GinMode:              getEnv("GIN_MODE", "debug"),
		LogLevel:             getEnv("LOG_LEVEL", "info"),
		LogFormat:            getEnv("LOG_FORMAT", "pretty"),
		APIBaseURL:           strings.TrimRight(getEnv("API_BASE_URL", DefaultAPIBaseURL), "/"),
		UpstreamTimeout:      time.Duration(getEnvInt("UPSTREAM_TIMEOUT_SECONDS", 15)) * time.Second,
		RedisURL:             getEnv("REDIS_URL", ""),
		UpstreamCacheTTL:     time.Duration(getEnvInt("UPSTREAM_CACHE_TTL_SECONDS", 30)) * time.Second,
		AllowedOrigins:       parseOrigins(getEnv("ALLOWED_ORIGINS", "")),
		Locale:               getEnv("LOCALE", "es_ES"),
		Location:             parseLocation(getEnv("TIMEZONE", "")),
		TutorPageSize:        getEnvPositive("TUTOR_PAGE_SIZE", 10),
		StudentPageSize:      getEnvPositive("STUDENT_PAGE_SIZE", 10),
		ClassPageSize:        getEnvPositive("CLASS_PAGE_SIZE", 8),
		RefreshRatePerMinute: getEnvPositive("REFRESH_RATE_PER_MINUTE", 6),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

// getEnvPositive is getEnvInt for values that must be at least 1 (page sizes, rates).
func getEnvPositive(key string, fallback int) int {
	if n := getEnvInt(key, fallback); n > 0 {
		return n
	}
	return fallback
}

// parseOrigins splits a comma-separated origins string into a trimmed slice.
// Returns nil (allow-all) if the input is empty.
func parseOrigins(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}

// parseLocation resolves an IANA zone name, falling back to the host zone.
func parseLocation(name string) *time.Location {
	if name == "" {
		return time.Local
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.Local
	}
	return loc
}
