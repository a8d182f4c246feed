package form

import "cv-editor/internal/model"

type EntryView struct {
	Fields           map[string]string `json:"fields"`
	Responsibilities []string          `json:"responsibilities,omitempty"`
}

type SelectView struct {
	Options  []string `json:"options"`
	Selected []string `json:"selected"`
}

// View is a read-only copy of the form, used to render it.
type View struct {
	Fields              map[string]string      `json:"fields"`
	Sections            map[string][]EntryView `json:"sections"`
	Selects             map[string]SelectView  `json:"selects"`
	Image               Image                  `json:"image"`
	ImageSectionVisible bool                   `json:"image_section_visible"`
	HiddenParts         []string               `json:"hidden_parts"`
}

func (s *State) View() View {
	v := View{
		Fields:              map[string]string{},
		Sections:            map[string][]EntryView{},
		Selects:             map[string]SelectView{},
		Image:               s.image,
		ImageSectionVisible: s.imageVisible,
		HiddenParts:         []string{},
	}
	for _, f := range scalarFields {
		v.Fields[f] = s.fields[f]
	}
	for _, sec := range model.Sections {
		entries := make([]EntryView, 0, len(s.sections[sec]))
		for _, e := range s.sections[sec] {
			ev := EntryView{Fields: map[string]string{}}
			for k, val := range e.fields {
				ev.Fields[k] = val
			}
			if sec.HasResponsibilities() {
				ev.Responsibilities = e.Responsibilities()
			}
			entries = append(entries, ev)
		}
		v.Sections[string(sec)] = entries
	}
	for name, ms := range s.selects {
		v.Selects[name] = SelectView{Options: ms.Options(), Selected: ms.Selected()}
	}
	for _, p := range Parts {
		if s.hidden[p] {
			v.HiddenParts = append(v.HiddenParts, p)
		}
	}
	return v
}
