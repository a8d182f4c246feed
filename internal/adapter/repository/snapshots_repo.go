package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"cv-editor/internal/domain"
	"cv-editor/internal/model"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

// SnapshotsRepo journals successfully saved documents. With a nil pool the
// journal is disabled: saves are dropped and lookups fail with
// domain.ErrJournalDisabled.
type SnapshotsRepo struct {
	pool *pgxpool.Pool
}

func NewSnapshotsRepo(pool *pgxpool.Pool) *SnapshotsRepo {
	return &SnapshotsRepo{pool: pool}
}

func (r *SnapshotsRepo) Enabled() bool { return r.pool != nil }

func (r *SnapshotsRepo) Save(ctx context.Context, s *domain.Snapshot) error {
	if r.pool == nil {
		return nil
	}

	docB, err := json.Marshal(s.Document)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}

	_, err = r.pool.Exec(ctx, `INSERT INTO cv_snapshots (id, session_id, cv_id, cv_name, template_id, document, saved_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
		ON CONFLICT (id) DO UPDATE SET cv_name = EXCLUDED.cv_name, template_id = EXCLUDED.template_id, document = EXCLUDED.document, saved_at = EXCLUDED.saved_at`,
		s.ID, s.SessionID, s.CVID, s.CVName, s.TemplateID, docB, s.SavedAt)
	if err != nil {
		return fmt.Errorf("insert snapshot: %w", err)
	}
	return nil
}

// Latest returns the most recent snapshot journaled for cvID.
func (r *SnapshotsRepo) Latest(ctx context.Context, cvID int) (*domain.Snapshot, error) {
	if r.pool == nil {
		return nil, domain.ErrJournalDisabled
	}

	var (
		s    domain.Snapshot
		docB []byte
	)
	err := r.pool.QueryRow(ctx, `SELECT id, session_id, cv_id, cv_name, template_id, document, saved_at
		FROM cv_snapshots WHERE cv_id = $1 ORDER BY saved_at DESC LIMIT 1`, cvID).
		Scan(&s.ID, &s.SessionID, &s.CVID, &s.CVName, &s.TemplateID, &docB, &s.SavedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("snapshot for cv %d: %w", cvID, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("query snapshot: %w", err)
	}

	var doc model.CVDocument
	if err := json.Unmarshal(docB, &doc); err != nil {
		return nil, fmt.Errorf("unmarshal snapshot: %w", err)
	}
	s.Document = &doc
	return &s, nil
}
