package form

// MultiSelect is a tag-style select: a list of options and an ordered
// selection. Values not yet in the option list can be added as free tags.
type MultiSelect struct {
	options  []string
	selected []string
}

func (m *MultiSelect) Options() []string {
	out := make([]string, len(m.options))
	copy(out, m.options)
	return out
}

// Selected returns the selection in widget order. It is never nil.
func (m *MultiSelect) Selected() []string {
	out := make([]string, len(m.selected))
	copy(out, m.selected)
	return out
}

func (m *MultiSelect) HasOption(v string) bool {
	for _, o := range m.options {
		if o == v {
			return true
		}
	}
	return false
}

// AddOption creates an option for v unless one exists.
func (m *MultiSelect) AddOption(v string) {
	if !m.HasOption(v) {
		m.options = append(m.options, v)
	}
}

func (m *MultiSelect) Clear() { m.selected = nil }

// Select makes values the selection, in the given order. Values without an
// option are skipped.
func (m *MultiSelect) Select(values []string) {
	m.selected = make([]string, 0, len(values))
	for _, v := range values {
		if m.HasOption(v) {
			m.selected = append(m.selected, v)
		}
	}
}

// SetTags clears the selection, creates options for unknown values and
// selects exactly values.
func (m *MultiSelect) SetTags(values []string) {
	m.Clear()
	for _, v := range values {
		m.AddOption(v)
	}
	m.Select(values)
}
