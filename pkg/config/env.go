package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all process-wide settings. It is loaded once at startup and
// injected into components at construction time; nothing reads the
// environment after Load returns.
type Config struct {
	TableName      string
	JWTSecret      string
	AWSRegion      string
	AWSEndpoint    string // LocalStack endpoint for local runs, empty in AWS
	StorageBackend string // "dynamodb" (default), "postgres" or "memory"
	StorageTimeout time.Duration
	RedisAddr      string
	SNSTopicARN    string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
}

// LoadEnv loads environment variables from .env.local if APP_ENV is "local"
func LoadEnv() {
	appEnv := os.Getenv("APP_ENV")
	if appEnv == "" {
		appEnv = "development" // Default to development if not set
		os.Setenv("APP_ENV", appEnv)
	}

	if appEnv == "local" {
		err := godotenv.Load(".env.local") // Assumes .env.local exists in root or where app is run
		if err != nil {
			log.Printf("Warning: .env.local file not found, or error loading: %v. Relying on system environment variables.", err)
		} else {
			log.Println("Loaded .env.local for local development.")
		}
	} else {
		log.Printf("Running in %s environment. Not loading .env.local.", appEnv)
	}
}

// Load collects configuration from the environment with defaults suitable
// for local development against LocalStack.
func Load() Config {
	endpoint := os.Getenv("AWS_ENDPOINT")
	if endpoint == "" && os.Getenv("APP_ENV") == "local" {
		endpoint = "http://127.0.0.1:4566" // LocalStack
	}
	return Config{
		TableName:      getenv("PRODUCTS_TABLE", "products"),
		JWTSecret:      os.Getenv("JWT_SECRET"),
		AWSRegion:      getenv("AWS_REGION", "us-east-1"),
		AWSEndpoint:    endpoint,
		StorageBackend: getenv("STORAGE_BACKEND", "dynamodb"),
		StorageTimeout: durenv("STORAGE_TIMEOUT_SECONDS", 5),
		RedisAddr:      os.Getenv("REDIS_ADDR"),
		SNSTopicARN:    os.Getenv("SNS_TOPIC_ARN"),
		DBHost:         os.Getenv("DB_HOST"),
		DBPort:         getenv("DB_PORT", "5432"),
		DBUser:         os.Getenv("DB_USER"),
		DBPassword:     os.Getenv("DB_PASSWORD"),
		DBName:         os.Getenv("DB_NAME"),
	}
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func durenv(key string, defSec int) time.Duration {
	sec := defSec
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			sec = n
		}
	}
	return time.Duration(sec) * time.Second
}
