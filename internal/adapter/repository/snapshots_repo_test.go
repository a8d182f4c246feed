package repository

import (
	"context"
	"errors"
	"testing"

	"cv-editor/internal/domain"
)

func TestDisabledJournal(t *testing.T) {
	r := NewSnapshotsRepo(nil)
	if r.Enabled() {
		t.Fatal("nil pool reported enabled")
	}
	if err := r.Save(context.Background(), &domain.Snapshot{CVID: 1}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if _, err := r.Latest(context.Background(), 1); !errors.Is(err, domain.ErrJournalDisabled) {
		t.Fatalf("err = %v, want ErrJournalDisabled", err)
	}
}
