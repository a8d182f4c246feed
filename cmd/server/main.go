package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	httpadapter "cv-editor/internal/adapter/http"
	repo "cv-editor/internal/adapter/repository"
	"cv-editor/internal/config"
	"cv-editor/internal/infrastructure/migration"
	"cv-editor/internal/usecase"
	"cv-editor/pkg/backend"
	infra "cv-editor/pkg/infrastructure"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v4/pgxpool"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := config.Load()

	// infra setup
	pool := openJournal(ctx, cfg.SnapshotsDSN, migration.RunMigrations)
	if pool != nil {
		defer pool.Close()
	}

	snapshots := repo.NewSnapshotsRepo(pool)
	client := backend.NewClient(cfg.BackendURL, cfg.BackendTimeout)
	sessions := usecase.NewSessions(client, snapshots, usecase.Options{
		UploadsPath:      cfg.UploadsPath,
		PlaceholderImage: cfg.PlaceholderImage,
	})

	app := fiber.New(fiber.Config{BodyLimit: 8 * 1024 * 1024})
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "sessions": sessions.Len(), "journal": snapshots.Enabled()})
	})
	httpadapter.NewHandler(sessions).Register(app)

	go func() {
		slog.Info("editor service listening", "port", cfg.Port, "backend", cfg.BackendURL)
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Fatalf("server failed: %v", err)
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down")
	if err := app.Shutdown(); err != nil {
		slog.Error("shutdown failed", "error", err)
	}
}

// openJournal connects and migrates the snapshot journal. Any failure
// disables the journal instead of stopping the service.
func openJournal(ctx context.Context, dsn string, migrate func(context.Context, *pgxpool.Pool) error) *pgxpool.Pool {
	pool, err := infra.NewSnapshotsPool(ctx, dsn)
	if err != nil {
		slog.Warn("snapshot journal not available", "error", err)
		return nil
	}
	if err := migrate(ctx, pool); err != nil {
		slog.Error("snapshot journal disabled: migrations failed", "error", err)
		pool.Close()
		return nil
	}
	return pool
}
