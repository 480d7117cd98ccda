package model

// Partial is an externally supplied document fragment, typically the output
// of the enrichment gateway. Absent or empty fields mean "keep what is there".
// A nil SectionOrder means the order was not provided.
type Partial struct {
	PersonalInfo   *PersonalInfo   `json:"personalInfo,omitempty"`
	Summary        string          `json:"summary,omitempty"`
	Experience     []Experience    `json:"experience,omitempty"`
	Education      []Education     `json:"education,omitempty"`
	Projects       []Project       `json:"projects,omitempty"`
	Skills         []string        `json:"skills,omitempty"`
	Certifications []Certification `json:"certifications,omitempty"`
	CustomSections []CustomSection `json:"customSections,omitempty"`
	SectionOrder   []string        `json:"sectionOrder,omitempty"`
}
