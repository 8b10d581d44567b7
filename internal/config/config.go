package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port              string
	BaseURL           string // Public base URL used to build short links and QR codes
	DatabaseURL       string // Empty selects the in-memory store
	RedisURL          string // Empty or unreachable falls back to the in-memory cache
	JWTSecret         string // Secret key for session token signing
	JWTTTL            int    // Session token lifetime in hours
	ShortCodeLength   int
	CheckURLReachable bool // Probe target URLs with a HEAD request before shortening
	CookieSecure      bool
	LogLevel          string
	LogFile           string // Rotated log file name; empty logs to stdout only
	GinMode           string

	RateLimitRPS           float64 // General API endpoints (requests per second)
	RateLimitBurst         int
	RateLimitAuthRPS       float64 // Auth endpoints (stricter)
	RateLimitAuthBurst     int
	RateLimitShortenRPS    float64 // URL shortening (stricter)
	RateLimitShortenBurst  int
	RateLimitRedirectRPS   float64 // Redirects (lenient)
	RateLimitRedirectBurst int
}

func Load() *Config {
	// Missing .env is fine, the environment wins anyway
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("config: failed to read .env: %v", err)
	}

	return &Config{
		Port:              getEnv("PORT", "8080"),
		BaseURL:           strings.TrimRight(getEnv("BASE_URL", "http://localhost:8080"), "/"),
		DatabaseURL:       getEnv("DATABASE_URL", ""),
		RedisURL:          getEnv("REDIS_URL", ""),
		JWTSecret:         getEnv("JWT_SECRET", "change-me-in-production"),
		JWTTTL:            getEnvInt("JWT_TTL_HOURS", 24),
		ShortCodeLength:   getEnvInt("SHORT_CODE_LENGTH", 6),
		CheckURLReachable: getEnvBool("CHECK_URL_REACHABLE", false),
		CookieSecure:      getEnvBool("COOKIE_SECURE", false),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		LogFile:           getEnv("LOG_FILE", ""),
		GinMode:           getEnv("GIN_MODE", "release"),

		RateLimitRPS:           getEnvFloat("RATE_LIMIT_RPS", 10),
		RateLimitBurst:         getEnvInt("RATE_LIMIT_BURST", 20),
		RateLimitAuthRPS:       getEnvFloat("RATE_LIMIT_AUTH_RPS", 5),
		RateLimitAuthBurst:     getEnvInt("RATE_LIMIT_AUTH_BURST", 10),
		RateLimitShortenRPS:    getEnvFloat("RATE_LIMIT_SHORTEN_RPS", 2),
		RateLimitShortenBurst:  getEnvInt("RATE_LIMIT_SHORTEN_BURST", 5),
		RateLimitRedirectRPS:   getEnvFloat("RATE_LIMIT_REDIRECT_RPS", 30),
		RateLimitRedirectBurst: getEnvInt("RATE_LIMIT_REDIRECT_BURST", 60),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
