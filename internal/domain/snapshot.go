package domain

import (
	"time"

	"cv-editor/internal/model"

	"github.com/google/uuid"
)

// Snapshot is a journaled copy of a document as it was successfully saved.
type Snapshot struct {
	ID         uuid.UUID         `json:"id"`
	SessionID  uuid.UUID         `json:"session_id"`
	CVID       int               `json:"cv_id"`
	CVName     string            `json:"cv_name"`
	TemplateID int               `json:"template_id"`
	Document   *model.CVDocument `json:"document"`
	SavedAt    time.Time         `json:"saved_at"`
}
