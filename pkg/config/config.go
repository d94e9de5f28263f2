package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort        string
	FirebaseProject   string
	StorageBucket     string
	Environment       string
	ChatRetentionHrs  int64
	ReaperIntervalMin int64
}

func Load() (*Config, error) {
	godotenv.Load()

	config := &Config{
		ServerPort:        getEnv("SERVER_PORT", "8080"),
		FirebaseProject:   getEnv("FIREBASE_PROJECT_ID", ""),
		StorageBucket:     getEnv("STORAGE_BUCKET", ""),
		Environment:       getEnv("ENVIRONMENT", "development"),
		ChatRetentionHrs:  getEnvAsInt64("CHAT_RETENTION_HOURS", 6),
		ReaperIntervalMin: getEnvAsInt64("REAPER_INTERVAL_MINUTES", 10),
	}

	return config, nil
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	if value, exists := os.LookupEnv(key); exists {
		intValue, err := strconv.ParseInt(value, 10, 64)
		if err == nil {
			return intValue
		}
	}
	return defaultValue
}
