package form

import (
	"errors"
	"reflect"
	"testing"

	"cv-editor/internal/model"
)

func TestSetFieldRejectsUnknown(t *testing.T) {
	s := New("/ph.png", nil)
	if err := s.SetField(FieldEmail, "a@b.c"); err != nil {
		t.Fatalf("SetField: %v", err)
	}
	if got := s.Field(FieldEmail); got != "a@b.c" {
		t.Fatalf("email = %q", got)
	}
	if err := s.SetField("favourite-colour", "blue"); !errors.Is(err, ErrUnknownField) {
		t.Fatalf("err = %v, want ErrUnknownField", err)
	}
}

func TestAddEntry(t *testing.T) {
	s := New("", nil)

	ed, err := s.AddEntry(model.SectionEducation)
	if err != nil {
		t.Fatal(err)
	}
	if got := ed.Responsibilities(); len(got) != 0 {
		t.Fatalf("education entry has lines %q", got)
	}

	ex, _ := s.AddEntry(model.SectionExperience)
	if got := ex.Responsibilities(); !reflect.DeepEqual(got, []string{""}) {
		t.Fatalf("experience entry lines = %q, want one blank", got)
	}

	if _, err := s.AddEntry("hobbies"); !errors.Is(err, ErrUnknownSection) {
		t.Fatalf("err = %v, want ErrUnknownSection", err)
	}
}

func TestRemoveEntryKeepsOrder(t *testing.T) {
	s := New("", nil)
	for _, title := range []string{"a", "b", "c"} {
		e, _ := s.AddEntry(model.SectionProjects)
		e.SetField("title", title)
	}

	if err := s.RemoveEntry(model.SectionProjects, 1); err != nil {
		t.Fatal(err)
	}
	var titles []string
	for _, e := range s.Entries(model.SectionProjects) {
		titles = append(titles, e.Field("title"))
	}
	if !reflect.DeepEqual(titles, []string{"a", "c"}) {
		t.Fatalf("titles = %v", titles)
	}
	if err := s.RemoveEntry(model.SectionProjects, 5); !errors.Is(err, ErrNoEntry) {
		t.Fatalf("err = %v, want ErrNoEntry", err)
	}
}

func TestSetResponsibilities(t *testing.T) {
	var e Entry
	e.SetResponsibilities(nil)
	if got := e.Responsibilities(); !reflect.DeepEqual(got, []string{""}) {
		t.Fatalf("lines = %q", got)
	}

	in := []string{"one", "two"}
	e.SetResponsibilities(in)
	in[0] = "changed"
	if got := e.Responsibilities(); !reflect.DeepEqual(got, []string{"one", "two"}) {
		t.Fatalf("lines = %q, want a copy of the input", got)
	}
}

func TestMultiSelectFreeTags(t *testing.T) {
	s := New("", map[string][]string{SelectTechnologies: {"Go", "Python"}})
	ms := s.Select(SelectTechnologies)

	ms.SetTags([]string{"Rust", "Go"})
	if got := ms.Selected(); !reflect.DeepEqual(got, []string{"Rust", "Go"}) {
		t.Fatalf("selected = %q", got)
	}
	if got := ms.Options(); !reflect.DeepEqual(got, []string{"Go", "Python", "Rust"}) {
		t.Fatalf("options = %q", got)
	}

	ms.Select([]string{"Haskell", "Python"})
	if got := ms.Selected(); !reflect.DeepEqual(got, []string{"Python"}) {
		t.Fatalf("selected = %q, want values without option skipped", got)
	}

	if s.Select("hobbies") != nil {
		t.Fatal("unknown select should be nil")
	}
}

func TestResetKeepsOptionsAndVisibility(t *testing.T) {
	s := New("/ph.png", nil)
	s.SetField(FieldName, "Ann")
	s.AddEntry(model.SectionExperience)
	s.Select(SelectLanguages).SetTags([]string{"Basque"})
	s.SetImage(Image{Src: "/uploads/a.png", Filename: "a.png"})
	s.SetVisible("projects", false)
	s.SetImageVisible(false)

	s.Reset()

	if s.Field(FieldName) != "" || len(s.Entries(model.SectionExperience)) != 0 {
		t.Fatal("inputs not cleared")
	}
	ms := s.Select(SelectLanguages)
	if len(ms.Selected()) != 0 || !ms.HasOption("Basque") {
		t.Fatalf("select after reset: options %q selected %q", ms.Options(), ms.Selected())
	}
	if s.Image() != (Image{Src: "/ph.png"}) {
		t.Fatalf("image = %+v", s.Image())
	}
	if s.Visible("projects") || s.ImageVisible() {
		t.Fatal("visibility changed by reset")
	}
}

func TestView(t *testing.T) {
	s := New("/ph.png", nil)
	s.SetField(FieldObjective, "Grow")
	e, _ := s.AddEntry(model.SectionExperience)
	e.SetField("role", "Dev")
	e.AddResponsibility("Coded")
	s.SetVisible("skills", false)

	v := s.View()
	if v.Fields[FieldObjective] != "Grow" {
		t.Errorf("objective = %q", v.Fields[FieldObjective])
	}
	exp := v.Sections[string(model.SectionExperience)]
	if len(exp) != 1 || exp[0].Fields["role"] != "Dev" || !reflect.DeepEqual(exp[0].Responsibilities, []string{"", "Coded"}) {
		t.Errorf("experience view = %+v", exp)
	}
	if edu := v.Sections[string(model.SectionEducation)]; edu == nil || len(edu) != 0 {
		t.Errorf("education view = %#v", edu)
	}
	if !reflect.DeepEqual(v.HiddenParts, []string{"skills"}) {
		t.Errorf("hidden = %v", v.HiddenParts)
	}

	// Views are copies.
	v.Fields[FieldObjective] = "x"
	if s.Field(FieldObjective) != "Grow" {
		t.Fatal("view aliases form state")
	}
}
