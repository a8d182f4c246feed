package config

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port             string
	BackendURL       string
	BackendTimeout   time.Duration
	SnapshotsDSN     string
	UploadsPath      string
	PlaceholderImage string
}

// Load reads an optional .env file and then the environment.
func Load(files ...string) *Config {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Warn("could not load env file", "error", err)
	}
	return FromEnv()
}

func FromEnv() *Config {
	return &Config{
		Port:             env("PORT", "3000"),
		BackendURL:       env("BACKEND_URL", "http://localhost:5000"),
		BackendTimeout:   duration("BACKEND_TIMEOUT", 30*time.Second),
		SnapshotsDSN:     os.Getenv("SNAPSHOTS_DATABASE_URL"),
		UploadsPath:      env("UPLOADS_PATH", "/uploads/"),
		PlaceholderImage: env("PLACEHOLDER_IMAGE", "/static/img/profile-placeholder.png"),
	}
}

func env(name, def string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return def
}

func duration(name string, def time.Duration) time.Duration {
	v := os.Getenv(name)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		slog.Warn("invalid duration, using default", "name", name, "value", v, "default", def)
		return def
	}
	return d
}
