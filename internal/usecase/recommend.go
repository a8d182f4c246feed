package usecase

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"cv-editor/internal/domain"
	"cv-editor/internal/form"
	"cv-editor/pkg/backend"
)

var ErrUnsupportedField = errors.New("recommendations cannot be applied to this field")

const noRecommendation = "No recommendations available at this time."

// Recommend asks the backend for a suggestion for field, sending the
// current CV as context, and returns the cleaned text.
func (e *Editor) Recommend(ctx context.Context, field, prompt string) (string, error) {
	if e.backend == nil {
		return "", ErrNoBackend
	}
	text, err := e.backend.Recommend(ctx, backend.RecommendRequest{
		Prompt: prompt,
		Field:  field,
		CVData: e.Collect(),
	})
	if err != nil {
		e.fail("ai recommend", err, "An error occurred. Please try again later.")
		return "", err
	}
	text = CleanRecommendation(text, field)
	if text == "" {
		e.notify(domain.LevelInfo, noRecommendation)
	}
	return text, nil
}

var (
	recommendationNoise = strings.NewReplacer(`"`, "", "{", "", "}", "", "`", "")
	labelledFields      = map[string]*regexp.Regexp{}
)

func init() {
	for _, f := range []string{"objective", "skills", "languages"} {
		labelledFields[f] = regexp.MustCompile(`(?i)` + f + `\s?:`)
	}
}

// CleanRecommendation strips quoting and braces the model tends to add and,
// for list and objective fields, the echoed "<field>:" label.
func CleanRecommendation(text, field string) string {
	text = recommendationNoise.Replace(text)
	if re, ok := labelledFields[field]; ok {
		text = re.ReplaceAllString(text, "")
	}
	return strings.TrimSpace(text)
}

// ApplyRecommendation writes an accepted suggestion into the form.
// Skills and languages are comma separated and become free tags.
func (e *Editor) ApplyRecommendation(field, text string) error {
	e.mu.Lock()
	switch field {
	case "objective":
		e.form.SetField(form.FieldObjective, text)
	case "skills":
		e.form.Select(form.SelectTechnologies).SetTags(SplitTags(text))
	case "languages":
		e.form.Select(form.SelectLanguages).SetTags(SplitTags(text))
	default:
		e.mu.Unlock()
		return fmt.Errorf("%w: %q", ErrUnsupportedField, field)
	}
	e.session.Touch()
	e.mu.Unlock()
	e.notify(domain.LevelSuccess, "AI recommendation applied")
	return nil
}

// SplitTags splits a comma separated list, dropping blanks and repeats.
func SplitTags(text string) []string {
	out := []string{}
	seen := map[string]bool{}
	for _, t := range strings.Split(text, ",") {
		t = strings.TrimSpace(t)
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}
