package migration

import (
	"context"
	"log/slog"

	"github.com/jackc/pgx/v4/pgxpool"
)

// RunMigrations creates the snapshot journal schema on startup.
func RunMigrations(ctx context.Context, pool *pgxpool.Pool) error {
	slog.Info("Starting database migrations")

	for _, m := range Migrations() {
		if err := m.Up(ctx, pool); err != nil {
			slog.Error("Migration failed", "name", m.Name, "error", err)
			return err
		}
		slog.Info("Migration completed", "name", m.Name)
	}

	slog.Info("All migrations completed successfully")
	return nil
}

// Migration represents a database migration
type Migration struct {
	Name string
	Up   func(ctx context.Context, pool *pgxpool.Pool) error
}

// Migrations lists the schema steps in the order they run.
func Migrations() []Migration {
	return []Migration{
		{Name: "create_cv_snapshots", Up: execStep(`
			CREATE TABLE IF NOT EXISTS cv_snapshots (
				id UUID PRIMARY KEY,
				session_id UUID NOT NULL,
				cv_id INTEGER NOT NULL,
				cv_name TEXT NOT NULL DEFAULT '',
				template_id INTEGER NOT NULL DEFAULT 1,
				document JSONB NOT NULL DEFAULT '{}'::jsonb,
				saved_at TIMESTAMPTZ NOT NULL DEFAULT now()
			);
		`)},
		{Name: "index_cv_snapshots_cv_id", Up: execStep(`
			CREATE INDEX IF NOT EXISTS cv_snapshots_cv_id_saved_at
			ON cv_snapshots (cv_id, saved_at DESC);
		`)},
	}
}

func execStep(query string) func(ctx context.Context, pool *pgxpool.Pool) error {
	return func(ctx context.Context, pool *pgxpool.Pool) error {
		_, err := pool.Exec(ctx, query)
		return err
	}
}
