package model

// Go models for the résumé document. JSON field names follow the
// enrichment gateway contract, so the same types are used on the wire.

type PersonalInfo struct {
	Name      string `json:"name"`
	Title     string `json:"title"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Location  string `json:"location"`
	LinkedIn  string `json:"linkedin"`
	GitHub    string `json:"github"`
	Portfolio string `json:"portfolio"`
}

// IsZero reports whether every field is blank.
func (p PersonalInfo) IsZero() bool {
	return p == PersonalInfo{}
}

type Experience struct {
	ID               string   `json:"id"`
	Title            string   `json:"title"`
	Company          string   `json:"company"`
	Location         string   `json:"location"`
	StartDate        string   `json:"startDate"`
	EndDate          string   `json:"endDate"`
	IsCurrent        bool     `json:"isCurrent"`
	Responsibilities []string `json:"responsibilities"`
}

// Period is the display range; IsCurrent wins over whatever EndDate says.
// present is the label shown for ongoing roles.
func (e Experience) Period(present string) string {
	end := e.EndDate
	if e.IsCurrent {
		end = present
	}
	return e.StartDate + " – " + end
}

type Education struct {
	ID         string `json:"id"`
	Degree     string `json:"degree"`
	University string `json:"university"`
	Location   string `json:"location"`
	StartDate  string `json:"startDate"`
	EndDate    string `json:"endDate"`
}

type Project struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	TechStack   []string `json:"techStack"`
	Link        string   `json:"link"`
	Description string   `json:"description"`
}

type Certification struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Provider string `json:"provider"`
	Date     string `json:"date"`
	Link     string `json:"link,omitempty"`
}

type CustomSection struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

// Key is the section key this custom section occupies in SectionOrder.
func (c CustomSection) Key() string {
	return KeyForTitle(c.Title)
}

// Resume is the aggregate root. It is owned by a single writer; all shape
// changes go through the editor use case.
type Resume struct {
	PersonalInfo   PersonalInfo    `json:"personalInfo"`
	Summary        string          `json:"summary"`
	Experience     []Experience    `json:"experience"`
	Education      []Education     `json:"education"`
	Projects       []Project       `json:"projects"`
	Skills         []string        `json:"skills"`
	Certifications []Certification `json:"certifications"`
	CustomSections []CustomSection `json:"customSections"`
	SectionOrder   []string        `json:"sectionOrder"`
}

// NewResume returns an empty document with no visible sections.
func NewResume() *Resume {
	return &Resume{
		Experience:     []Experience{},
		Education:      []Education{},
		Projects:       []Project{},
		Skills:         []string{},
		Certifications: []Certification{},
		CustomSections: []CustomSection{},
		SectionOrder:   []string{},
	}
}

// Clone returns a deep copy so callers can stage a mutation and commit it
// only when every check passes.
func (r *Resume) Clone() *Resume {
	out := &Resume{
		PersonalInfo:   r.PersonalInfo,
		Summary:        r.Summary,
		Experience:     make([]Experience, len(r.Experience)),
		Education:      append([]Education{}, r.Education...),
		Projects:       make([]Project, len(r.Projects)),
		Skills:         append([]string{}, r.Skills...),
		Certifications: append([]Certification{}, r.Certifications...),
		CustomSections: append([]CustomSection{}, r.CustomSections...),
		SectionOrder:   append([]string{}, r.SectionOrder...),
	}
	for i, e := range r.Experience {
		e.Responsibilities = append([]string{}, e.Responsibilities...)
		out.Experience[i] = e
	}
	for i, p := range r.Projects {
		p.TechStack = append([]string{}, p.TechStack...)
		out.Projects[i] = p
	}
	return out
}

// CustomSectionByKey finds the custom section whose lower-cased title is key.
func (r *Resume) CustomSectionByKey(key string) (CustomSection, int, bool) {
	for i, cs := range r.CustomSections {
		if cs.Key() == key {
			return cs, i, true
		}
	}
	return CustomSection{}, -1, false
}

func (r *Resume) CustomSectionByID(id string) (CustomSection, int, bool) {
	for i, cs := range r.CustomSections {
		if cs.ID == id {
			return cs, i, true
		}
	}
	return CustomSection{}, -1, false
}

func (r *Resume) ExperienceByID(id string) (int, bool) {
	for i, e := range r.Experience {
		if e.ID == id {
			return i, true
		}
	}
	return -1, false
}

// InOrder reports whether key currently appears in SectionOrder.
func (r *Resume) InOrder(key string) bool {
	return indexOf(r.SectionOrder, key) >= 0
}

func indexOf(list []string, s string) int {
	for i, v := range list {
		if v == s {
			return i
		}
	}
	return -1
}
