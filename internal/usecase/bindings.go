package usecase

import (
	"strings"

	"cv-editor/internal/form"
	"cv-editor/internal/model"
)

// binding ties a form input name to the document string it mirrors.
// Collect and Apply walk the same tables in opposite directions.
type binding[T any] struct {
	name string
	ref  func(*T) *string
}

var documentBindings = []binding[model.CVDocument]{
	{form.FieldName, func(d *model.CVDocument) *string { return &d.PersonalInfo.Name }},
	{form.FieldEmail, func(d *model.CVDocument) *string { return &d.PersonalInfo.Email }},
	{form.FieldPhone, func(d *model.CVDocument) *string { return &d.PersonalInfo.Phone }},
	{form.FieldLinkedIn, func(d *model.CVDocument) *string { return &d.PersonalInfo.LinkedIn }},
	{form.FieldGitHub, func(d *model.CVDocument) *string { return &d.PersonalInfo.GitHub }},
	{form.FieldLocation, func(d *model.CVDocument) *string { return &d.PersonalInfo.Location }},
	{form.FieldObjective, func(d *model.CVDocument) *string { return &d.Content.Objective }},
}

var educationBindings = []binding[model.Education]{
	{"degree", func(e *model.Education) *string { return &e.Degree }},
	{"university", func(e *model.Education) *string { return &e.University }},
	{"startDate", func(e *model.Education) *string { return &e.StartDate }},
	{"endDate", func(e *model.Education) *string { return &e.EndDate }},
	{"gpa", func(e *model.Education) *string { return &e.GPA }},
	{"certificate", func(e *model.Education) *string { return &e.Certificate }},
	{"coursework", func(e *model.Education) *string { return &e.Coursework }},
}

var experienceBindings = []binding[model.Experience]{
	{"role", func(e *model.Experience) *string { return &e.Role }},
	{"company", func(e *model.Experience) *string { return &e.Company }},
	{"location", func(e *model.Experience) *string { return &e.Location }},
	{"startDate", func(e *model.Experience) *string { return &e.StartDate }},
	{"endDate", func(e *model.Experience) *string { return &e.EndDate }},
}

var projectBindings = []binding[model.Project]{
	{"title", func(p *model.Project) *string { return &p.Title }},
	{"github_link", func(p *model.Project) *string { return &p.GitHubLink }},
}

// EntryFields returns the input names an entry of section carries.
func EntryFields(section model.Section) []string {
	var names []string
	switch section {
	case model.SectionEducation:
		for _, b := range educationBindings {
			names = append(names, b.name)
		}
	case model.SectionExperience:
		for _, b := range experienceBindings {
			names = append(names, b.name)
		}
	case model.SectionProjects:
		for _, b := range projectBindings {
			names = append(names, b.name)
		}
	}
	return names
}

func readEntry[T any](e *form.Entry, bs []binding[T], into *T) {
	for _, b := range bs {
		*b.ref(into) = e.Field(b.name)
	}
}

func writeEntry[T any](e *form.Entry, bs []binding[T], from *T) {
	for _, b := range bs {
		e.SetField(b.name, *b.ref(from))
	}
}

// collectLines trims responsibility inputs and drops blank ones.
func collectLines(e *form.Entry) []string {
	out := []string{}
	for _, l := range e.Responsibilities() {
		if t := strings.TrimSpace(l); t != "" {
			out = append(out, t)
		}
	}
	return out
}
