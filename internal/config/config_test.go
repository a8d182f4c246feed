package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestFromEnvDefaults(t *testing.T) {
	for _, k := range []string{"PORT", "BACKEND_URL", "BACKEND_TIMEOUT", "SNAPSHOTS_DATABASE_URL", "UPLOADS_PATH", "PLACEHOLDER_IMAGE"} {
		t.Setenv(k, "")
	}

	cfg := FromEnv()
	if cfg.Port != "3000" || cfg.BackendURL != "http://localhost:5000" {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.BackendTimeout != 30*time.Second {
		t.Errorf("timeout = %s", cfg.BackendTimeout)
	}
	if cfg.SnapshotsDSN != "" || cfg.UploadsPath != "/uploads/" {
		t.Errorf("cfg = %+v", cfg)
	}
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("BACKEND_TIMEOUT", "5s")
	t.Setenv("SNAPSHOTS_DATABASE_URL", "postgres://localhost/cv")

	cfg := FromEnv()
	if cfg.Port != "8080" || cfg.BackendTimeout != 5*time.Second || cfg.SnapshotsDSN != "postgres://localhost/cv" {
		t.Fatalf("cfg = %+v", cfg)
	}
}

func TestInvalidDurationFallsBack(t *testing.T) {
	t.Setenv("BACKEND_TIMEOUT", "soon")
	if got := FromEnv().BackendTimeout; got != 30*time.Second {
		t.Fatalf("timeout = %s", got)
	}
}

func TestLoadEnvFile(t *testing.T) {
	t.Setenv("BACKEND_URL", "")
	os.Unsetenv("BACKEND_URL")
	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte("BACKEND_URL=http://backend:5000\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if got := Load(path).BackendURL; got != "http://backend:5000" {
		t.Fatalf("backend url = %q", got)
	}
	// A missing file is not an error.
	Load(filepath.Join(t.TempDir(), "missing.env"))
}
