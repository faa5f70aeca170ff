package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Environment        string
	Port               string
	SnapshotDir        string
	GmailTokenPath     string
	GoogleClientID     string
	GoogleClientSecret string
	GoogleRedirectURL  string
	WatchInterval      time.Duration
}

func NewConfig() (*Config, error) {
	env := os.Getenv("DAYBOARD_ENV")
	if env == "" {
		env = "development"
	}

	if env == "development" {
		if err := godotenv.Load(); err != nil {
			fmt.Println("Warning: .env file not found, using environment variables")
		}
	}

	snapshotDir := getEnvOrDefault("DAYBOARD_SNAPSHOT_DIR", "mails_widget")

	config := &Config{
		Environment:        env,
		Port:               getEnvOrDefault("PORT", "3001"),
		SnapshotDir:        snapshotDir,
		GmailTokenPath:     getEnvOrDefault("DAYBOARD_GMAIL_TOKEN", filepath.Join(snapshotDir, "token.json")),
		GoogleClientID:     os.Getenv("GOOGLE_CLIENT_ID"),
		GoogleClientSecret: os.Getenv("GOOGLE_CLIENT_SECRET"),
		GoogleRedirectURL:  os.Getenv("GOOGLE_REDIRECT_URI"),
		WatchInterval:      watchIntervalFromEnv(),
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func (c *Config) Validate() error {
	if c.GoogleClientID == "" {
		return fmt.Errorf("GOOGLE_CLIENT_ID is required")
	}

	if c.GoogleClientSecret == "" {
		return fmt.Errorf("GOOGLE_CLIENT_SECRET is required")
	}

	return nil
}

func watchIntervalFromEnv() time.Duration {
	// Defaults to the monitor's own 30-second poll interval.
	seconds := 30
	if value := os.Getenv("DAYBOARD_WATCH_INTERVAL_SECONDS"); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil && parsed > 0 {
			seconds = parsed
		}
	}
	return time.Duration(seconds) * time.Second
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
