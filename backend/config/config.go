package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	DBDriver   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPath     string
	JWTSecret  string
	ServerPort string

	LogFormat string
	LogLevel  string

	LeetCode LeetCodeConfig
}

// LeetCodeConfig holds the external statistics providers and refresh policy.
type LeetCodeConfig struct {
	PrimaryURL   string
	SecondaryURL string
	FallbackURL  string
	Timeout      time.Duration
	Refresh      time.Duration
	SyncLimit    int
}

func LoadConfig() (*Config, error) {
	err := godotenv.Load()
	if err != nil {
		log.Println("Error loading .env file, using environment variables")
	}

	return &Config{
		DBDriver:   getEnv("DB_DRIVER", "postgres"),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", "postgres"),
		DBName:     getEnv("DB_NAME", "devtracker"),
		DBPath:     getEnv("DB_PATH", "devtracker.db"),
		JWTSecret:  getEnv("JWT_SECRET", "secret"),
		ServerPort: getEnv("SERVER_PORT", "8080"),
		LogFormat:  getEnv("LOG_FORMAT", "json"),
		LogLevel:   getEnv("LOG_LEVEL", "info"),
		LeetCode: LeetCodeConfig{
			PrimaryURL:   getEnv("LEETCODE_PRIMARY_URL", "https://leetcode-api-faisalshohag.vercel.app"),
			SecondaryURL: getEnv("LEETCODE_SECONDARY_URL", "https://alfa-leetcode-api.onrender.com"),
			FallbackURL:  getEnv("LEETCODE_FALLBACK_URL", "https://leetcode-stats-api.herokuapp.com"),
			Timeout:      getDuration("LEETCODE_TIMEOUT", 10*time.Second),
			Refresh:      getDuration("LEETCODE_REFRESH", 5*time.Minute),
			SyncLimit:    getInt("LEETCODE_SYNC_LIMIT", 50),
		},
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	raw, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		log.Printf("Invalid %s=%q, using %s", key, raw, defaultValue)
		return defaultValue
	}
	return d
}

func getInt(key string, defaultValue int) int {
	raw, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		log.Printf("Invalid %s=%q, using %d", key, raw, defaultValue)
		return defaultValue
	}
	return n
}
