package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	ServerPort     string
	DatabaseType   string
	DatabasePath   string
	DatabaseURL    string
	MigrationsPath string

	// TokenSecret signs session tokens; TokenLifetime bounds their validity.
	TokenSecret   string
	TokenLifetime time.Duration

	// AdvanceDelay is how long the puzzle shows feedback before moving on.
	AdvanceDelay time.Duration
	// EmotionWindow is the number of classifier ticks buffered per question.
	EmotionWindow int

	// SES credential delivery (disabled when FromEmail is empty)
	AWSRegion string
	FromEmail string
	FromName  string

	// Bootstrap operator account, created on startup when absent.
	OperatorUsername string
	OperatorPassword string
}

// Load reads configuration from environment variables with sensible defaults.
// A .env file in the working directory is honoured when present.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		ServerPort:     getEnv("PORT", "8080"),
		DatabaseType:   getEnv("DB_TYPE", "sqlite"),
		DatabasePath:   getEnv("DB_PATH", "./emotispell.db"),
		DatabaseURL:    getEnv("DB_URL", ""),
		MigrationsPath: getEnv("MIGRATIONS_PATH", "./migrations"),
		TokenSecret:    getEnv("TOKEN_SECRET", ""),
		TokenLifetime:  1 * time.Hour,
		AdvanceDelay:   1 * time.Second,
		EmotionWindow:  4,
		AWSRegion:      getEnv("AWS_REGION", "us-east-1"),
		FromEmail:      getEnv("SES_FROM_EMAIL", ""),
		FromName:       getEnv("SES_FROM_NAME", "EmotiSpell"),

		OperatorUsername: getEnv("OPERATOR_USERNAME", "operator"),
		OperatorPassword: getEnv("OPERATOR_PASSWORD", ""),
	}
}

// getEnv reads an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
