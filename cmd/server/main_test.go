package main

import (
	"context"
	"testing"

	repo "cv-editor/internal/adapter/repository"

	"github.com/jackc/pgx/v4/pgxpool"
)

func TestOpenJournalWithoutDSNDisablesJournal(t *testing.T) {
	migrated := false
	pool := openJournal(context.Background(), "", func(context.Context, *pgxpool.Pool) error {
		migrated = true
		return nil
	})
	if pool != nil {
		t.Fatal("expected no pool without a dsn")
	}
	if migrated {
		t.Fatal("migrations ran without a pool")
	}
	if repo.NewSnapshotsRepo(pool).Enabled() {
		t.Fatal("journal enabled without a pool")
	}
}
