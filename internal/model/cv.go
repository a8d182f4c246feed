package model

// Go models that match the CV document exchanged with the backend and with
// imported/exported files.

const (
	DefaultCVName     = "Untitled CV"
	DefaultTemplateID = 1
	// NoImage is the value the backend stores when no profile image is set.
	NoImage = "path/to/image"
)

type PersonalInfo struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	LinkedIn string `json:"linkedin"`
	GitHub   string `json:"github"`
	Location string `json:"location"`
	Image    string `json:"image"`
}

type Education struct {
	Degree      string `json:"degree"`
	University  string `json:"university"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	GPA         string `json:"gpa"`
	Certificate string `json:"certificate"`
	Coursework  string `json:"coursework"`
}

type Experience struct {
	Role             string   `json:"role"`
	Company          string   `json:"company"`
	Location         string   `json:"location"`
	StartDate        string   `json:"startDate"`
	EndDate          string   `json:"endDate"`
	Responsibilities []string `json:"responsibilities"`
}

type Project struct {
	Title            string   `json:"title"`
	GitHubLink       string   `json:"github_link"`
	Responsibilities []string `json:"responsibilities"`
}

// Content holds the editable sections. A nil slice means the section was
// absent from the source document; an empty slice means it was present but
// empty.
type Content struct {
	Objective    string       `json:"objective"`
	Education    []Education  `json:"education"`
	Experience   []Experience `json:"experience"`
	Projects     []Project    `json:"projects"`
	Languages    []string     `json:"languages"`
	Technologies []string     `json:"technologies"`
}

type CVDocument struct {
	CVID         *int         `json:"cv_id"`
	CVName       string       `json:"cv_name"`
	TemplateID   int          `json:"template_id"`
	PersonalInfo PersonalInfo `json:"personal_info"`
	Content      Content      `json:"content"`
}

// Section names a repeatable part of the form.
type Section string

const (
	SectionEducation  Section = "education"
	SectionExperience Section = "experience"
	SectionProjects   Section = "projects"
)

// Sections lists the repeatable sections in form order.
var Sections = []Section{SectionEducation, SectionExperience, SectionProjects}

func (s Section) Valid() bool {
	switch s {
	case SectionEducation, SectionExperience, SectionProjects:
		return true
	}
	return false
}

// HasResponsibilities reports whether entries of the section carry
// responsibility lines.
func (s Section) HasResponsibilities() bool {
	return s == SectionExperience || s == SectionProjects
}

// HasImage reports whether the personal info carries a real image reference.
func (p PersonalInfo) HasImage() bool {
	return p.Image != "" && p.Image != NoImage
}
