// Package form holds the editable projection of a CV: scalar inputs,
// repeatable section entries with responsibility lines, multi-select
// widgets that accept free tags, and the profile image widget.
//
// A State is not safe for concurrent use; callers serialize access.
package form

import (
	"errors"
	"fmt"

	"cv-editor/internal/model"
)

// Scalar input names.
const (
	FieldCVName    = "cv-name"
	FieldName      = "name"
	FieldEmail     = "email"
	FieldPhone     = "phone"
	FieldLinkedIn  = "linkedin"
	FieldGitHub    = "github"
	FieldLocation  = "location"
	FieldObjective = "objective"
)

// Multi-select widget names.
const (
	SelectLanguages    = "languages"
	SelectTechnologies = "technologies"
)

// Parts are the toggleable form sections a template may require.
var Parts = []string{"objective", "education", "experience", "projects", "skills"}

var scalarFields = []string{
	FieldCVName, FieldName, FieldEmail, FieldPhone,
	FieldLinkedIn, FieldGitHub, FieldLocation, FieldObjective,
}

var (
	ErrUnknownField   = errors.New("unknown form field")
	ErrUnknownSection = errors.New("unknown form section")
	ErrUnknownSelect  = errors.New("unknown multi-select")
	ErrNoEntry        = errors.New("no such entry")
)

// Image is the profile image widget: the displayed source and the stored
// filename input.
type Image struct {
	Src      string `json:"src"`
	Filename string `json:"filename"`
}

type State struct {
	fields       map[string]string
	sections     map[model.Section][]*Entry
	selects      map[string]*MultiSelect
	image        Image
	placeholder  string
	hidden       map[string]bool
	imageVisible bool
}

// New returns an empty form showing the placeholder image. options seeds
// the multi-select widgets with known values.
func New(placeholder string, options map[string][]string) *State {
	s := &State{
		fields:       map[string]string{},
		sections:     map[model.Section][]*Entry{},
		selects:      map[string]*MultiSelect{},
		placeholder:  placeholder,
		hidden:       map[string]bool{},
		imageVisible: true,
	}
	for _, name := range []string{SelectLanguages, SelectTechnologies} {
		ms := &MultiSelect{}
		for _, o := range options[name] {
			ms.AddOption(o)
		}
		s.selects[name] = ms
	}
	s.image = Image{Src: placeholder}
	return s
}

// IsField reports whether name is a scalar input of the form.
func IsField(name string) bool {
	for _, f := range scalarFields {
		if f == name {
			return true
		}
	}
	return false
}

// Field returns the value of a scalar input; unknown names read as "".
func (s *State) Field(name string) string {
	return s.fields[name]
}

func (s *State) SetField(name, value string) error {
	if !IsField(name) {
		return fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
	s.fields[name] = value
	return nil
}

// Entries returns the rendered entries of a section in display order.
func (s *State) Entries(section model.Section) []*Entry {
	return s.sections[section]
}

// AddEntry appends a blank entry to the section, the way the add button
// does. Entries with responsibilities start with one empty line.
func (s *State) AddEntry(section model.Section) (*Entry, error) {
	if !section.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSection, section)
	}
	e := &Entry{fields: map[string]string{}}
	if section.HasResponsibilities() {
		e.lines = []string{""}
	}
	s.sections[section] = append(s.sections[section], e)
	return e, nil
}

// Entry returns the i-th entry of a section.
func (s *State) Entry(section model.Section, i int) (*Entry, error) {
	if !section.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSection, section)
	}
	entries := s.sections[section]
	if i < 0 || i >= len(entries) {
		return nil, fmt.Errorf("%w: %s[%d]", ErrNoEntry, section, i)
	}
	return entries[i], nil
}

func (s *State) RemoveEntry(section model.Section, i int) error {
	if _, err := s.Entry(section, i); err != nil {
		return err
	}
	entries := s.sections[section]
	s.sections[section] = append(entries[:i:i], entries[i+1:]...)
	return nil
}

func (s *State) ClearSection(section model.Section) {
	delete(s.sections, section)
}

// Select returns the named multi-select widget, or nil if there is none.
func (s *State) Select(name string) *MultiSelect {
	return s.selects[name]
}

func (s *State) Image() Image { return s.image }

func (s *State) SetImage(img Image) { s.image = img }

// ResetImage shows the placeholder and clears the stored filename.
func (s *State) ResetImage() { s.image = Image{Src: s.placeholder} }

func (s *State) Placeholder() string { return s.placeholder }

func (s *State) SetVisible(part string, visible bool) {
	if visible {
		delete(s.hidden, part)
		return
	}
	s.hidden[part] = true
}

func (s *State) Visible(part string) bool { return !s.hidden[part] }

func (s *State) SetImageVisible(visible bool) { s.imageVisible = visible }

func (s *State) ImageVisible() bool { return s.imageVisible }

// Reset clears every input, entry, selection and the image. Options added
// as free tags stay available, like a native form reset. Section
// visibility is a template concern and is kept.
func (s *State) Reset() {
	s.fields = map[string]string{}
	s.sections = map[model.Section][]*Entry{}
	for _, ms := range s.selects {
		ms.Clear()
	}
	s.ResetImage()
}
