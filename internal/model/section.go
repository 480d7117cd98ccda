package model

import "strings"

// SectionKey names one of the six built-in sections.
type SectionKey string

const (
	SectionSummary        SectionKey = "summary"
	SectionExperience     SectionKey = "experience"
	SectionEducation      SectionKey = "education"
	SectionSkills         SectionKey = "skills"
	SectionProjects       SectionKey = "projects"
	SectionCertifications SectionKey = "certifications"
)

// FixedSections is the canonical order of the built-in sections.
var FixedSections = []SectionKey{
	SectionSummary,
	SectionExperience,
	SectionEducation,
	SectionSkills,
	SectionProjects,
	SectionCertifications,
}

// IsFixed reports whether key names a built-in section.
func IsFixed(key string) bool {
	for _, k := range FixedSections {
		if string(k) == key {
			return true
		}
	}
	return false
}

// KeyForTitle lower-cases a custom section title into its section key.
func KeyForTitle(title string) string {
	return strings.ToLower(title)
}

type SectionKind int

const (
	KindFixed SectionKind = iota + 1
	KindCustom
)

// SectionRef is the resolved form of a plain string section key: either a
// fixed section or a reference to a custom section by id.
type SectionRef struct {
	Kind     SectionKind
	Fixed    SectionKey
	CustomID string
}

// Resolve maps a section key to the section it references. Keys that match
// neither a fixed section nor an existing custom section do not resolve.
func (r *Resume) Resolve(key string) (SectionRef, bool) {
	if IsFixed(key) {
		return SectionRef{Kind: KindFixed, Fixed: SectionKey(key)}, true
	}
	if cs, _, ok := r.CustomSectionByKey(key); ok {
		return SectionRef{Kind: KindCustom, CustomID: cs.ID}, true
	}
	return SectionRef{}, false
}

// HasData reports whether the collection behind a fixed section is non-empty.
func (r *Resume) HasData(key SectionKey) bool {
	switch key {
	case SectionSummary:
		return r.Summary != ""
	case SectionExperience:
		return len(r.Experience) > 0
	case SectionEducation:
		return len(r.Education) > 0
	case SectionSkills:
		return len(r.Skills) > 0
	case SectionProjects:
		return len(r.Projects) > 0
	case SectionCertifications:
		return len(r.Certifications) > 0
	}
	return false
}

// Collection names the four id-addressed list collections.
type Collection string

const (
	CollectionExperience     Collection = "experience"
	CollectionEducation      Collection = "education"
	CollectionProjects       Collection = "projects"
	CollectionCertifications Collection = "certifications"
)

func ParseCollection(s string) (Collection, bool) {
	switch c := Collection(s); c {
	case CollectionExperience, CollectionEducation, CollectionProjects, CollectionCertifications:
		return c, true
	}
	return "", false
}
