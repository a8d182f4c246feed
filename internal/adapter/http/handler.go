package http

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"cv-editor/internal/domain"
	"cv-editor/internal/form"
	"cv-editor/internal/model"
	"cv-editor/internal/usecase"
	"cv-editor/pkg/backend"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type Handler struct {
	sessions *usecase.Sessions
}

func NewHandler(s *usecase.Sessions) *Handler {
	return &Handler{sessions: s}
}

// Register mounts the editor routes on app.
func (h *Handler) Register(app *fiber.App) {
	s := app.Group("/sessions")
	s.Post("/", h.OpenSession)
	s.Delete("/:id", h.CloseSession)

	s.Get("/:id/form", h.withEditor(h.GetForm))
	s.Patch("/:id/fields", h.withEditor(h.SetFields))
	s.Post("/:id/sections/:section", h.withEditor(h.AddEntry))
	s.Put("/:id/sections/:section/:index", h.withEditor(h.UpdateEntry))
	s.Delete("/:id/sections/:section/:index", h.withEditor(h.RemoveEntry))
	s.Put("/:id/selects/:name", h.withEditor(h.SetSelect))

	s.Get("/:id/document", h.withEditor(h.GetDocument))
	s.Put("/:id/document", h.withEditor(h.ApplyDocument))
	s.Get("/:id/export", h.withEditor(h.Export))
	s.Post("/:id/import", h.withEditor(h.Import))
	s.Post("/:id/sample", h.withEditor(h.ImportSample))
	s.Post("/:id/new", h.withEditor(h.NewCV))

	s.Post("/:id/bootstrap", h.withEditor(h.Bootstrap))
	s.Post("/:id/save", h.withEditor(h.Save))
	s.Post("/:id/load/:cv", h.withEditor(h.Load))
	s.Post("/:id/restore/:cv", h.withEditor(h.Restore))
	s.Delete("/:id/cvs/:cv", h.withEditor(h.Delete))
	s.Post("/:id/template/:tid", h.withEditor(h.SelectTemplate))
	s.Post("/:id/recommend", h.withEditor(h.Recommend))
	s.Post("/:id/image", h.withEditor(h.UploadImage))
	s.Get("/:id/notifications", h.withEditor(h.Notifications))
}

type editorHandler func(c *fiber.Ctx, e *usecase.Editor) error

func (h *Handler) withEditor(next editorHandler) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid session id"})
		}
		e, err := h.sessions.Get(id)
		if err != nil {
			return respondError(c, err)
		}
		return next(c, e)
	}
}

// respondError maps editor errors to HTTP statuses.
func respondError(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	var (
		parseErr *model.ParseError
		apiErr   *backend.APIError
	)
	switch {
	case errors.As(err, &parseErr):
		status = fiber.StatusBadRequest
	case errors.Is(err, usecase.ErrSessionNotFound), errors.Is(err, domain.ErrNotFound), errors.Is(err, backend.ErrNotFound):
		status = fiber.StatusNotFound
	case errors.Is(err, form.ErrUnknownField), errors.Is(err, form.ErrUnknownSection),
		errors.Is(err, form.ErrUnknownSelect), errors.Is(err, form.ErrNoEntry),
		errors.Is(err, usecase.ErrUnsupportedField):
		status = fiber.StatusBadRequest
	case errors.Is(err, domain.ErrJournalDisabled), errors.Is(err, usecase.ErrNoBackend):
		status = fiber.StatusServiceUnavailable
	case errors.As(err, &apiErr):
		status = fiber.StatusBadGateway
	}
	if status >= fiber.StatusInternalServerError {
		slog.Error("request failed", "path", c.Path(), "error", err)
	}
	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}

func (h *Handler) OpenSession(c *fiber.Ctx) error {
	e := h.sessions.Open()
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"id": e.ID().String(), "form": e.View()})
}

func (h *Handler) CloseSession(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid session id"})
	}
	h.sessions.Close(id)
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *Handler) GetForm(c *fiber.Ctx, e *usecase.Editor) error {
	return c.JSON(fiber.Map{"session": e.Session(), "form": e.View(), "dirty": e.Dirty()})
}

func (h *Handler) SetFields(c *fiber.Ctx, e *usecase.Editor) error {
	var req map[string]string
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid payload"})
	}
	err := e.Edit(func(f *form.State) error {
		for name := range req {
			if !form.IsField(name) {
				return fmt.Errorf("%w: %q", form.ErrUnknownField, name)
			}
		}
		for name, v := range req {
			f.SetField(name, v)
		}
		return nil
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(e.View())
}

type entryReq struct {
	Fields           map[string]string `json:"fields"`
	Responsibilities *[]string         `json:"responsibilities,omitempty"`
}

func (h *Handler) AddEntry(c *fiber.Ctx, e *usecase.Editor) error {
	section := model.Section(c.Params("section"))
	err := e.Edit(func(f *form.State) error {
		_, err := f.AddEntry(section)
		return err
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(e.View())
}

func (h *Handler) UpdateEntry(c *fiber.Ctx, e *usecase.Editor) error {
	section := model.Section(c.Params("section"))
	index, err := c.ParamsInt("index")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid entry index"})
	}
	var req entryReq
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid payload"})
	}
	allowed := usecase.EntryFields(section)
	err = e.Edit(func(f *form.State) error {
		entry, err := f.Entry(section, index)
		if err != nil {
			return err
		}
		for name := range req.Fields {
			if !contains(allowed, name) {
				return fmt.Errorf("%w: %s.%s", form.ErrUnknownField, section, name)
			}
		}
		for name, v := range req.Fields {
			entry.SetField(name, v)
		}
		if req.Responsibilities != nil && section.HasResponsibilities() {
			entry.SetResponsibilities(*req.Responsibilities)
		}
		return nil
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(e.View())
}

func (h *Handler) RemoveEntry(c *fiber.Ctx, e *usecase.Editor) error {
	section := model.Section(c.Params("section"))
	index, err := c.ParamsInt("index")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid entry index"})
	}
	if err := e.Edit(func(f *form.State) error { return f.RemoveEntry(section, index) }); err != nil {
		return respondError(c, err)
	}
	return c.JSON(e.View())
}

type selectReq struct {
	Values []string `json:"values"`
}

func (h *Handler) SetSelect(c *fiber.Ctx, e *usecase.Editor) error {
	name := c.Params("name")
	var req selectReq
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid payload"})
	}
	err := e.Edit(func(f *form.State) error {
		ms := f.Select(name)
		if ms == nil {
			return fmt.Errorf("%w: %q", form.ErrUnknownSelect, name)
		}
		ms.SetTags(req.Values)
		return nil
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(e.View())
}

func (h *Handler) GetDocument(c *fiber.Ctx, e *usecase.Editor) error {
	return c.JSON(e.Collect())
}

// ApplyDocument writes a document into the form; ?reset=false overlays it
// on the current state instead of replacing it.
func (h *Handler) ApplyDocument(c *fiber.Ctx, e *usecase.Editor) error {
	if bytes.Equal(bytes.TrimSpace(c.Body()), []byte("null")) {
		return c.JSON(e.View())
	}
	doc, err := model.Decode(c.Body())
	if err != nil {
		return respondError(c, err)
	}
	e.Apply(doc, c.QueryBool("reset", true))
	return c.JSON(e.View())
}

func (h *Handler) Export(c *fiber.Ctx, e *usecase.Editor) error {
	b, err := e.Export()
	if err != nil {
		return respondError(c, err)
	}
	c.Attachment(e.ExportFilename(time.Now()))
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSONCharsetUTF8)
	return c.Send(b)
}

func (h *Handler) Import(c *fiber.Ctx, e *usecase.Editor) error {
	if _, err := e.Import(c.Body()); err != nil {
		return respondError(c, err)
	}
	return c.JSON(e.View())
}

func (h *Handler) ImportSample(c *fiber.Ctx, e *usecase.Editor) error {
	if _, err := e.ImportSample(c.UserContext()); err != nil {
		return respondError(c, err)
	}
	return c.JSON(e.View())
}

// Bootstrap prepares the dashboard; ?cv=<id> also loads that CV.
func (h *Handler) Bootstrap(c *fiber.Ctx, e *usecase.Editor) error {
	var cvID *int
	if q := c.Query("cv"); q != "" {
		id, err := strconv.Atoi(q)
		if err != nil || id <= 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid cv id"})
		}
		cvID = &id
	}
	templates, err := e.Bootstrap(c.UserContext(), cvID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"templates": templates, "form": e.View()})
}

func (h *Handler) NewCV(c *fiber.Ctx, e *usecase.Editor) error {
	e.NewCV()
	return c.JSON(e.View())
}

func (h *Handler) Save(c *fiber.Ctx, e *usecase.Editor) error {
	res, err := e.Save(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"cv_id": res.CVID, "pdf_url": res.PDFURL})
}

func (h *Handler) Load(c *fiber.Ctx, e *usecase.Editor) error {
	cvID, err := c.ParamsInt("cv")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid cv id"})
	}
	if _, err := e.Load(c.UserContext(), cvID); err != nil {
		return respondError(c, err)
	}
	return c.JSON(e.View())
}

func (h *Handler) Restore(c *fiber.Ctx, e *usecase.Editor) error {
	cvID, err := c.ParamsInt("cv")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid cv id"})
	}
	if _, err := e.Restore(c.UserContext(), cvID); err != nil {
		return respondError(c, err)
	}
	return c.JSON(e.View())
}

func (h *Handler) Delete(c *fiber.Ctx, e *usecase.Editor) error {
	cvID, err := c.ParamsInt("cv")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid cv id"})
	}
	if err := e.Delete(c.UserContext(), cvID); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *Handler) SelectTemplate(c *fiber.Ctx, e *usecase.Editor) error {
	tid, err := c.ParamsInt("tid")
	if err != nil || tid <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid template id"})
	}
	fields, err := e.SelectTemplate(c.UserContext(), tid)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"template": fields, "form": e.View()})
}

type recommendReq struct {
	Field  string `json:"field"`
	Prompt string `json:"prompt"`
	Apply  bool   `json:"apply"`
}

func (h *Handler) Recommend(c *fiber.Ctx, e *usecase.Editor) error {
	var req recommendReq
	if err := c.BodyParser(&req); err != nil || req.Field == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid payload"})
	}
	text, err := e.Recommend(c.UserContext(), req.Field, req.Prompt)
	if err != nil {
		return respondError(c, err)
	}
	if req.Apply && text != "" {
		if err := e.ApplyRecommendation(req.Field, text); err != nil {
			return respondError(c, err)
		}
	}
	return c.JSON(fiber.Map{"recommendation": text, "applied": req.Apply && text != ""})
}

func (h *Handler) UploadImage(c *fiber.Ctx, e *usecase.Editor) error {
	fh, err := c.FormFile("profile_image")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "No file part"})
	}
	f, err := fh.Open()
	if err != nil {
		return respondError(c, err)
	}
	defer f.Close()

	res, err := e.UploadImage(c.UserContext(), fh.Filename, f)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"file_url": res.FileURL, "filename": res.Filename})
}

func (h *Handler) Notifications(c *fiber.Ctx, e *usecase.Editor) error {
	return c.JSON(e.Notifications())
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
