package usecase

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"sync"

	"cv-editor/internal/domain"
	"cv-editor/internal/form"
	"cv-editor/internal/model"
	"cv-editor/pkg/backend"

	"github.com/google/uuid"
)

// Backend is the remote CV store and its helper endpoints.
type Backend interface {
	SaveCV(ctx context.Context, doc *model.CVDocument) (*backend.SaveResult, error)
	GetCV(ctx context.Context, id int) (*backend.StoredCV, error)
	DeleteCV(ctx context.Context, id int) error
	TemplateFields(ctx context.Context, templateID int) (*backend.TemplateFields, error)
	Templates(ctx context.Context) ([]backend.Template, error)
	Recommend(ctx context.Context, in backend.RecommendRequest) (string, error)
	UploadProfileImage(ctx context.Context, filename string, r io.Reader) (*backend.UploadResult, error)
	Languages(ctx context.Context, input string) ([]backend.Option, error)
	Technologies(ctx context.Context, input string) ([]backend.Option, error)
	SampleCV(ctx context.Context) ([]byte, error)
}

type SnapshotsRepo interface {
	Save(ctx context.Context, s *domain.Snapshot) error
	Latest(ctx context.Context, cvID int) (*domain.Snapshot, error)
}

var ErrNoBackend = errors.New("no backend configured")

type Options struct {
	// UploadsPath prefixes bare image filenames to build a display URL.
	UploadsPath      string
	PlaceholderImage string
	// Options seeds the multi-select widgets, keyed by widget name.
	Options map[string][]string
}

// Editor keeps one form projection and its session in sync with CV
// documents. All form access goes through mu; saves are additionally
// sequenced by saveMu so a later save never races an earlier one.
type Editor struct {
	mu      sync.Mutex
	saveMu  sync.Mutex
	session *domain.Session
	form    *form.State
	inbox   domain.Inbox

	backend Backend
	repo    SnapshotsRepo
	opts    Options
	log     *slog.Logger
}

func NewEditor(b Backend, repo SnapshotsRepo, opts Options) *Editor {
	if opts.UploadsPath == "" {
		opts.UploadsPath = "/uploads/"
	}
	s := domain.NewSession()
	return &Editor{
		session: s,
		form:    form.New(opts.PlaceholderImage, opts.Options),
		backend: b,
		repo:    repo,
		opts:    opts,
		log:     slog.Default().With("session", s.ID.String()),
	}
}

func (e *Editor) ID() uuid.UUID { return e.session.ID }

// Session returns a copy of the session state.
func (e *Editor) Session() domain.Session {
	e.mu.Lock()
	defer e.mu.Unlock()
	s := *e.session
	if s.CVID != nil {
		id := *s.CVID
		s.CVID = &id
	}
	return s
}

// View returns a read-only copy of the form.
func (e *Editor) View() form.View {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.form.View()
}

// Edit runs fn with exclusive access to the form, for direct user input.
func (e *Editor) Edit(fn func(f *form.State) error) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.session.Touch()
	return fn(e.form)
}

// Notifications drains the pending user notifications.
func (e *Editor) Notifications() []domain.Notification {
	return e.inbox.Drain()
}

func (e *Editor) notify(level domain.Level, msg string) {
	e.inbox.Push(level, msg)
}

// fail logs err and surfaces msg to the user. A backend-provided message
// takes precedence over msg.
func (e *Editor) fail(op string, err error, msg string) {
	e.log.Error(op+" failed", "error", err)
	var apiErr *backend.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		msg = apiErr.Message
	}
	e.notify(domain.LevelError, msg)
}

// Collect reads the form into a fresh, fully populated document.
func (e *Editor) Collect() *model.CVDocument {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.collect()
}

func (e *Editor) collect() *model.CVDocument {
	doc := &model.CVDocument{
		CVName:     e.form.Field(form.FieldCVName),
		TemplateID: e.session.TemplateID,
	}
	if doc.CVName == "" {
		doc.CVName = model.DefaultCVName
	}
	if e.session.CVID != nil {
		id := *e.session.CVID
		doc.CVID = &id
	}
	for _, b := range documentBindings {
		*b.ref(doc) = e.form.Field(b.name)
	}
	doc.PersonalInfo.Image = model.NoImage
	if e.session.Image.Present {
		doc.PersonalInfo.Image = e.session.Image.Filename
	}

	c := &doc.Content
	c.Education = make([]model.Education, 0, len(e.form.Entries(model.SectionEducation)))
	for _, entry := range e.form.Entries(model.SectionEducation) {
		var ed model.Education
		readEntry(entry, educationBindings, &ed)
		c.Education = append(c.Education, ed)
	}
	c.Experience = make([]model.Experience, 0, len(e.form.Entries(model.SectionExperience)))
	for _, entry := range e.form.Entries(model.SectionExperience) {
		var ex model.Experience
		readEntry(entry, experienceBindings, &ex)
		ex.Responsibilities = collectLines(entry)
		c.Experience = append(c.Experience, ex)
	}
	c.Projects = make([]model.Project, 0, len(e.form.Entries(model.SectionProjects)))
	for _, entry := range e.form.Entries(model.SectionProjects) {
		var p model.Project
		readEntry(entry, projectBindings, &p)
		p.Responsibilities = collectLines(entry)
		c.Projects = append(c.Projects, p)
	}
	c.Languages = e.form.Select(form.SelectLanguages).Selected()
	c.Technologies = e.form.Select(form.SelectTechnologies).Selected()
	return doc
}

// Apply writes doc into the form. With resetFirst the form and session are
// cleared first (loading a different CV). Without it doc is laid over the
// current state: empty strings and absent sections keep what is on the
// form, present sections replace theirs. The image is the exception: a
// missing image always shows the placeholder. A nil doc is a no-op.
func (e *Editor) Apply(doc *model.CVDocument, resetFirst bool) {
	if doc == nil {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.apply(doc, resetFirst)
}

func (e *Editor) apply(doc *model.CVDocument, resetFirst bool) {
	if resetFirst {
		e.reset()
	}
	e.session.Touch()

	if doc.CVID != nil {
		id := *doc.CVID
		e.session.CVID = &id
	}
	switch {
	case doc.CVName != "":
		e.form.SetField(form.FieldCVName, doc.CVName)
	case resetFirst:
		e.form.SetField(form.FieldCVName, model.DefaultCVName)
	}
	if doc.TemplateID > 0 {
		e.session.TemplateID = doc.TemplateID
	}

	for _, b := range documentBindings {
		if v := *b.ref(doc); v != "" || resetFirst {
			e.form.SetField(b.name, v)
		}
	}
	e.applyImage(doc.PersonalInfo.Image)

	c := &doc.Content
	if c.Education != nil {
		e.form.ClearSection(model.SectionEducation)
		for i := range c.Education {
			entry, _ := e.form.AddEntry(model.SectionEducation)
			writeEntry(entry, educationBindings, &c.Education[i])
		}
	}
	if c.Experience != nil {
		e.form.ClearSection(model.SectionExperience)
		for i := range c.Experience {
			entry, _ := e.form.AddEntry(model.SectionExperience)
			writeEntry(entry, experienceBindings, &c.Experience[i])
			entry.SetResponsibilities(c.Experience[i].Responsibilities)
		}
	}
	if c.Projects != nil {
		e.form.ClearSection(model.SectionProjects)
		for i := range c.Projects {
			entry, _ := e.form.AddEntry(model.SectionProjects)
			writeEntry(entry, projectBindings, &c.Projects[i])
			entry.SetResponsibilities(c.Projects[i].Responsibilities)
		}
	}
	if c.Languages != nil {
		e.form.Select(form.SelectLanguages).SetTags(c.Languages)
	}
	if c.Technologies != nil {
		e.form.Select(form.SelectTechnologies).SetTags(c.Technologies)
	}
}

// applyImage shows a real image reference, or the placeholder when the
// document has none (empty or the NoImage sentinel), in both apply modes.
func (e *Editor) applyImage(image string) {
	if image == "" || image == model.NoImage {
		e.form.ResetImage()
		e.session.Image = domain.ImageState{}
		return
	}
	e.form.SetImage(form.Image{Src: e.imageURL(image), Filename: image})
	e.session.Image = domain.ImageState{Present: true, Filename: image}
}

// imageURL resolves a stored image reference to something displayable:
// absolute URLs pass through, bare filenames live under the uploads path.
func (e *Editor) imageURL(image string) string {
	if strings.HasPrefix(image, "http://") || strings.HasPrefix(image, "https://") {
		return image
	}
	return strings.TrimSuffix(e.opts.UploadsPath, "/") + "/" + strings.TrimPrefix(image, "/")
}

func (e *Editor) reset() {
	e.form.Reset()
	e.session.Reset()
}

// NewCV clears the form for a fresh, unsaved CV on the default template.
func (e *Editor) NewCV() {
	e.mu.Lock()
	e.reset()
	e.mu.Unlock()
	e.notify(domain.LevelSuccess, "Created new CV")
}
