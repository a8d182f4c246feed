package usecase

import (
	"context"
	"regexp"
	"strings"
	"time"

	"cv-editor/internal/domain"
	"cv-editor/internal/model"
)

// Export collects the form and renders it as the downloadable JSON file.
func (e *Editor) Export() ([]byte, error) {
	b, err := model.Encode(e.Collect())
	if err != nil {
		e.fail("export", err, "Error exporting CV data")
		return nil, err
	}
	e.notify(domain.LevelSuccess, "CV data exported successfully")
	return b, nil
}

var unsafeFilename = regexp.MustCompile(`[^a-z0-9]`)

// ExportFilename names the export after the CV and the day it was taken,
// e.g. "jane_s_cv_2024-05-01.json".
func (e *Editor) ExportFilename(now time.Time) string {
	name := e.Collect().CVName
	return unsafeFilename.ReplaceAllString(strings.ToLower(name), "_") + "_" + now.Format("2006-01-02") + ".json"
}

// Import parses a CV file and loads it into a cleared form. On a parse
// failure the form is left untouched and the *model.ParseError returned.
// The file's cv_id is dropped so saving the import creates a new CV
// instead of overwriting whichever record it was exported from. Importing
// never saves.
func (e *Editor) Import(b []byte) (*model.CVDocument, error) {
	doc, err := model.Decode(b)
	if err != nil {
		e.fail("import", err, "Error parsing JSON file")
		return nil, err
	}
	doc.CVID = nil
	e.Apply(doc, true)
	e.notify(domain.LevelSuccess, "CV data imported successfully")
	return doc, nil
}

// ImportSample loads the backend's sample CV through the regular import
// path: the form is replaced and nothing is saved.
func (e *Editor) ImportSample(ctx context.Context) (*model.CVDocument, error) {
	if e.backend == nil {
		return nil, ErrNoBackend
	}
	b, err := e.backend.SampleCV(ctx)
	if err != nil {
		e.fail("load sample", err, "Failed to load sample CV data")
		return nil, err
	}
	return e.Import(b)
}
