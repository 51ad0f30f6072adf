package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	// Server
	Port string
	Env  string

	// Database
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Wallet auth. Tokens are issued by the external identity service and
	// signed with the shared secret; when RequireWalletAuth is false a
	// missing token is allowed and wallets are taken from the request body.
	WalletJWTSecret   string
	RequireWalletAuth bool

	// Award issuance hook
	PipelineAPIKey string

	// HTTP edge
	RateLimitPerSecond float64
	CORSAllowedOrigins []string
	MetricsEnabled     bool
}

var appConfig *Config

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if not already loaded
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	config := &Config{
		// Server
		Port: getEnv("PORT", "8080"),
		Env:  getEnv("ENV", "development"),

		// Database
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "campfire"),
		DBPassword: getEnv("DB_PASSWORD", "campfire"),
		DBName:     getEnv("DB_NAME", "campfire"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		WalletJWTSecret:   getEnv("WALLET_JWT_SECRET", ""),
		RequireWalletAuth: getBool("REQUIRE_WALLET_AUTH", false),

		PipelineAPIKey: getEnv("PIPELINE_API_KEY", ""),

		CORSAllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		MetricsEnabled:     getBool("METRICS_ENABLED", true),
	}

	rateStr := getEnv("RATE_LIMIT_PER_SECOND", "10")
	rate, err := strconv.ParseFloat(rateStr, 64)
	if err != nil || rate < 0 {
		log.Printf("Warning: invalid RATE_LIMIT_PER_SECOND value '%s', falling back to 10\n", rateStr)
		rate = 10
	}
	config.RateLimitPerSecond = rate

	appConfig = config
	return config, nil
}

// Get returns the application configuration
func Get() *Config {
	if appConfig == nil {
		var err error
		appConfig, err = Load()
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}
	}
	return appConfig
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		log.Printf("Warning: invalid %s value '%s', falling back to %t\n", key, value, defaultValue)
		return defaultValue
	}
	return b
}

func splitList(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
