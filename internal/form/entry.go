package form

// Entry is one rendered item of a repeatable section.
type Entry struct {
	fields map[string]string
	lines  []string
}

func (e *Entry) Field(name string) string { return e.fields[name] }

func (e *Entry) SetField(name, value string) { e.fields[name] = value }

// Responsibilities returns the responsibility inputs as rendered,
// including blank ones.
func (e *Entry) Responsibilities() []string {
	out := make([]string, len(e.lines))
	copy(out, e.lines)
	return out
}

func (e *Entry) AddResponsibility(line string) {
	e.lines = append(e.lines, line)
}

// SetResponsibilities replaces the lines. An empty input still renders one
// blank line so the entry stays editable.
func (e *Entry) SetResponsibilities(lines []string) {
	if len(lines) == 0 {
		e.lines = []string{""}
		return
	}
	e.lines = make([]string, len(lines))
	copy(e.lines, lines)
}
