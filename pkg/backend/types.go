package backend

import (
	"encoding/json"

	"cv-editor/internal/model"
)

// envelope is the {success, error} wrapper most dashboard endpoints use.
type envelope struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

func (e envelope) failure() (bool, string) { return !e.Success, e.Error }

type SaveResult struct {
	envelope
	CVID   int    `json:"cv_id"`
	PDFURL string `json:"pdf_url,omitempty"`
}

// StoredCV is a CV record as returned by /get_cv.
type StoredCV struct {
	ID         int              `json:"id"`
	Name       string           `json:"name"`
	TemplateID int              `json:"template_id"`
	Data       model.CVDocument `json:"data"`
}

type getCVResponse struct {
	envelope
	Data StoredCV `json:"data"`
}

// TemplateFields lists which form parts a template renders.
type TemplateFields struct {
	ID            int      `json:"id"`
	Name          string   `json:"name"`
	RequiresImage bool     `json:"requires_image"`
	Fields        []string `json:"fields"`
}

type Template struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type templatesResponse struct {
	envelope
	Templates []Template `json:"templates"`
}

type RecommendRequest struct {
	Prompt string            `json:"prompt"`
	Field  string            `json:"field"`
	CVData *model.CVDocument `json:"cv_data"`
}

type recommendResponse struct {
	envelope
	Recommendation string `json:"recommendation"`
}

type UploadResult struct {
	envelope
	FileURL  string `json:"file_url"`
	Filename string `json:"filename"`
}

// Option is one vocabulary entry in the select widget format.
type Option struct {
	ID   json.Number `json:"id"`
	Text string      `json:"text"`
}
