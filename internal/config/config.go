package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Config holds all environment driven settings for the server.
type Config struct {
	Port           string
	MongoURI       string
	MongoDB        string
	JWTSecret      string
	GoogleClientID string
	TokenExpiry    time.Duration
	UploadDir      string
}

// LoadConfig reads configuration from the .env file and the environment.
func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		logrus.Warn("No .env file found, relying on environment variables")
	}

	cfg := &Config{
		Port:           getEnv("PORT", "8080"),
		MongoURI:       getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:        getEnv("MONGO_DB", "challengeon"),
		JWTSecret:      getEnv("JWT_SECRET", ""),
		GoogleClientID: getEnv("GOOGLE_CLIENT_ID", ""),
		TokenExpiry:    getDurationEnv("TOKEN_EXPIRY", 7*24*time.Hour),
		UploadDir:      getEnv("UPLOAD_DIR", "uploads"),
	}

	if cfg.JWTSecret == "" {
		logrus.Fatal("JWT_SECRET is not set")
	}

	return cfg
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		logrus.WithField(key, value).Warn("Invalid duration, using default")
		return fallback
	}
	return d
}
