package domain

import (
	"errors"
	"time"

	"cv-editor/internal/model"

	"github.com/google/uuid"
)

var (
	ErrNotFound        = errors.New("not found")
	ErrJournalDisabled = errors.New("snapshot journal disabled")
)

// ImageState records whether the CV has a profile image and its stored
// filename (or absolute URL).
type ImageState struct {
	Present  bool   `json:"present"`
	Filename string `json:"filename"`
}

// Session is the editor state owned by one page controller. It replaces the
// dashboard globals (current cv id, current template, upload flags).
type Session struct {
	ID         uuid.UUID         `json:"id"`
	CVID       *int              `json:"cv_id,omitempty"`
	TemplateID int               `json:"template_id"`
	Image      ImageState        `json:"image"`
	LastSaved  *model.CVDocument `json:"-"`
	// Revision increases on every reset so an in-flight save can tell that
	// a different document was loaded meanwhile.
	Revision  int       `json:"revision"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewSession() *Session {
	now := time.Now()
	return &Session{
		ID:         uuid.New(),
		TemplateID: model.DefaultTemplateID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// Reset returns the session to an unsaved document on the default template.
func (s *Session) Reset() {
	s.CVID = nil
	s.TemplateID = model.DefaultTemplateID
	s.Image = ImageState{}
	s.LastSaved = nil
	s.Revision++
	s.Touch()
}

func (s *Session) Touch() { s.UpdatedAt = time.Now() }

// Saved reports whether the document has been persisted at least once.
func (s Session) Saved() bool { return s.CVID != nil }
