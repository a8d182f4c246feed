package usecase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"cv-editor/internal/domain"
	"cv-editor/internal/form"
	"cv-editor/internal/model"
	"cv-editor/pkg/backend"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// Save collects the form and persists it. Saves on one editor run one at a
// time. On success the assigned cv id is written back so the next save
// updates instead of duplicating; on failure nothing local changes.
func (e *Editor) Save(ctx context.Context) (*backend.SaveResult, error) {
	if e.backend == nil {
		return nil, ErrNoBackend
	}
	e.saveMu.Lock()
	defer e.saveMu.Unlock()

	e.mu.Lock()
	doc := e.collect()
	rev := e.session.Revision
	e.mu.Unlock()

	res, err := e.backend.SaveCV(ctx, doc)
	if err != nil {
		e.fail("save", err, "Error saving CV draft")
		return nil, err
	}

	// doc belongs to the backend call now; record a copy carrying the id.
	id := res.CVID
	saved := *doc
	saved.CVID = &id

	e.mu.Lock()
	// A reset while the request was in flight means another document now
	// owns the form; it must not inherit this id.
	if e.session.Revision == rev {
		e.session.CVID = &id
		e.session.LastSaved = &saved
		e.session.Touch()
	}
	sessionID := e.session.ID
	e.mu.Unlock()

	if e.repo != nil {
		snap := &domain.Snapshot{
			ID:         uuid.New(),
			SessionID:  sessionID,
			CVID:       id,
			CVName:     saved.CVName,
			TemplateID: saved.TemplateID,
			Document:   &saved,
			SavedAt:    time.Now(),
		}
		if err := e.repo.Save(ctx, snap); err != nil {
			e.log.Warn("snapshot journal write failed (non-fatal)", "cv_id", id, "error", err)
		}
	}

	e.notify(domain.LevelSuccess, "CV draft saved successfully")
	return res, nil
}

// Dirty reports whether the form differs from the last saved document.
func (e *Editor) Dirty() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.session.LastSaved == nil {
		return true
	}
	cur, err1 := json.Marshal(e.collect())
	last, err2 := json.Marshal(e.session.LastSaved)
	return err1 != nil || err2 != nil || !bytes.Equal(cur, last)
}

// Load fetches a stored CV and replaces the form with it.
func (e *Editor) Load(ctx context.Context, cvID int) (*model.CVDocument, error) {
	if e.backend == nil {
		return nil, ErrNoBackend
	}
	stored, err := e.backend.GetCV(ctx, cvID)
	if err != nil {
		e.fail("load", err, "Error loading CV")
		return nil, err
	}
	doc := e.loadStored(stored)
	e.refreshTemplate(ctx, doc.TemplateID)
	e.notify(domain.LevelSuccess, "CV loaded successfully")
	return doc, nil
}

func (e *Editor) loadStored(stored *backend.StoredCV) *model.CVDocument {
	doc := stored.Data
	id := stored.ID
	doc.CVID = &id
	if stored.Name != "" {
		doc.CVName = stored.Name
	}
	if stored.TemplateID > 0 {
		doc.TemplateID = stored.TemplateID
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.apply(&doc, true)
	e.session.LastSaved = e.collect()
	return &doc
}

// Restore loads the latest journaled snapshot of a CV into a cleared form.
func (e *Editor) Restore(ctx context.Context, cvID int) (*model.CVDocument, error) {
	if e.repo == nil {
		return nil, domain.ErrJournalDisabled
	}
	snap, err := e.repo.Latest(ctx, cvID)
	if err != nil {
		e.fail("restore", err, "No saved snapshot to restore")
		return nil, err
	}
	var doc model.CVDocument
	if snap.Document != nil {
		doc = *snap.Document
	}
	id := snap.CVID
	doc.CVID = &id
	e.Apply(&doc, true)
	e.notify(domain.LevelSuccess, "Restored last saved snapshot")
	return &doc, nil
}

// Delete removes a stored CV. Deleting the CV being edited resets the form.
func (e *Editor) Delete(ctx context.Context, cvID int) error {
	if e.backend == nil {
		return ErrNoBackend
	}
	if err := e.backend.DeleteCV(ctx, cvID); err != nil {
		e.fail("delete", err, "Error deleting CV")
		return err
	}
	e.mu.Lock()
	if e.session.CVID != nil && *e.session.CVID == cvID {
		e.reset()
	}
	e.mu.Unlock()
	e.notify(domain.LevelSuccess, "CV deleted successfully")
	return nil
}

// SelectTemplate switches the template and shows only the form parts it
// renders. Entries are kept so switching back loses nothing.
func (e *Editor) SelectTemplate(ctx context.Context, templateID int) (*backend.TemplateFields, error) {
	if templateID <= 0 {
		return nil, fmt.Errorf("invalid template id %d", templateID)
	}
	e.mu.Lock()
	e.session.TemplateID = templateID
	e.session.Touch()
	e.mu.Unlock()
	if e.backend == nil {
		return nil, ErrNoBackend
	}
	return e.refreshTemplate(ctx, templateID)
}

func (e *Editor) refreshTemplate(ctx context.Context, templateID int) (*backend.TemplateFields, error) {
	fields, err := e.backend.TemplateFields(ctx, templateID)
	if err != nil {
		e.fail("template fields", err, "Error loading template, please try again")
		return nil, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.form.SetImageVisible(fields.RequiresImage)
	for _, part := range form.Parts {
		e.form.SetVisible(part, contains(fields.Fields, part))
	}
	return fields, nil
}

// Bootstrap prepares a page: it fetches the template list, the language
// and technology vocabularies and, when cvID is set, the CV to edit,
// concurrently. The vocabularies seed the multi-select options.
func (e *Editor) Bootstrap(ctx context.Context, cvID *int) ([]backend.Template, error) {
	if e.backend == nil {
		return nil, ErrNoBackend
	}
	var (
		templates        []backend.Template
		languages, techs []backend.Option
		stored           *backend.StoredCV
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		templates, err = e.backend.Templates(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		languages, err = e.backend.Languages(gctx, "")
		return err
	})
	g.Go(func() error {
		var err error
		techs, err = e.backend.Technologies(gctx, "")
		return err
	})
	if cvID != nil {
		id := *cvID
		g.Go(func() error {
			var err error
			stored, err = e.backend.GetCV(gctx, id)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		e.fail("bootstrap", err, "Error loading dashboard")
		return nil, err
	}

	e.mu.Lock()
	seedOptions(e.form.Select(form.SelectLanguages), languages)
	seedOptions(e.form.Select(form.SelectTechnologies), techs)
	e.mu.Unlock()

	templateID := model.DefaultTemplateID
	if stored != nil {
		templateID = e.loadStored(stored).TemplateID
	}
	e.refreshTemplate(ctx, templateID)
	return templates, nil
}

func seedOptions(ms *form.MultiSelect, opts []backend.Option) {
	for _, o := range opts {
		if o.Text != "" {
			ms.AddOption(o.Text)
		}
	}
}

// UploadImage sends a profile image to the backend and shows it.
func (e *Editor) UploadImage(ctx context.Context, filename string, r io.Reader) (*backend.UploadResult, error) {
	if e.backend == nil {
		return nil, ErrNoBackend
	}
	res, err := e.backend.UploadProfileImage(ctx, filename, r)
	if err != nil {
		e.fail("upload image", err, "Error uploading image")
		return nil, err
	}
	e.mu.Lock()
	e.form.SetImage(form.Image{Src: res.FileURL, Filename: res.Filename})
	e.session.Image = domain.ImageState{Present: true, Filename: res.Filename}
	e.session.Touch()
	e.mu.Unlock()
	e.notify(domain.LevelSuccess, "Image uploaded successfully")
	return res, nil
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
