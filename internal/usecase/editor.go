package usecase

import (
	"fmt"
	"strings"

	"resume-builder/internal/model"
	"resume-builder/pkg/apperror"
	"resume-builder/pkg/logger"
	"resume-builder/pkg/metrics"

	"go.uber.org/zap"
)

// Editor is the only code path that changes a document's shape. Each
// operation stages its change on a copy, re-checks the document invariants
// and commits only if they hold, so a rejected call leaves the document
// exactly as it was.
type Editor struct {
	ids IDGenerator
	log logger.Logger
}

func NewEditor(ids IDGenerator, log logger.Logger) *Editor {
	if ids == nil {
		ids = UUIDGenerator{}
	}
	if log == nil {
		log = logger.NewNop()
	}
	return &Editor{ids: ids, log: log}
}

func (e *Editor) apply(doc *model.Resume, op string, fn func(d *model.Resume) error) error {
	next := doc.Clone()
	err := fn(next)
	if err == nil {
		err = model.CheckInvariants(next)
	}
	metrics.Mutations.WithLabelValues(op, metrics.Result(err)).Inc()
	if err != nil {
		e.log.Warn("mutation rejected", zap.String("op", op), zap.Error(err))
		return err
	}
	*doc = *next
	return nil
}

// AddFixedSection appends a fixed section key to the order. The section's
// data is left untouched.
func (e *Editor) AddFixedSection(doc *model.Resume, key string) error {
	return e.apply(doc, "add_fixed_section", func(d *model.Resume) error {
		if !model.IsFixed(key) {
			return apperror.NewInvalidInput(fmt.Sprintf("'%s' is not a fixed section", key), nil)
		}
		if d.InOrder(key) {
			return apperror.NewAlreadyExists(key)
		}
		d.SectionOrder = append(d.SectionOrder, key)
		return nil
	})
}

// AddCustomSection creates a custom section and appends its key to the
// order. Titles collide case-insensitively with visible keys, fixed section
// names and hidden custom sections alike.
func (e *Editor) AddCustomSection(doc *model.Resume, title, content string) (model.CustomSection, error) {
	var created model.CustomSection
	err := e.apply(doc, "add_custom_section", func(d *model.Resume) error {
		if strings.TrimSpace(title) == "" {
			return apperror.NewInvalidInput("section title is required", nil)
		}
		key := model.KeyForTitle(title)
		if err := checkTitleFree(d, key, title, ""); err != nil {
			return err
		}
		created = model.CustomSection{ID: e.ids.NewID(), Title: title, Content: content}
		d.CustomSections = append(d.CustomSections, created)
		d.SectionOrder = append(d.SectionOrder, key)
		return nil
	})
	if err != nil {
		return model.CustomSection{}, err
	}
	return created, nil
}

func checkTitleFree(d *model.Resume, key, title, exceptID string) error {
	if model.IsFixed(key) {
		return apperror.NewDuplicateTitle(title)
	}
	for _, cs := range d.CustomSections {
		if cs.ID != exceptID && cs.Key() == key {
			return apperror.NewDuplicateTitle(title)
		}
	}
	if exceptID == "" && d.InOrder(key) {
		return apperror.NewDuplicateTitle(title)
	}
	return nil
}

// UpdateCustomSection edits a custom section in place. A title change keeps
// the section's slot in the order under its new key.
func (e *Editor) UpdateCustomSection(doc *model.Resume, id, title, content string) error {
	return e.apply(doc, "update_custom_section", func(d *model.Resume) error {
		cs, i, ok := d.CustomSectionByID(id)
		if !ok {
			return apperror.NewNotFound("custom section", id)
		}
		if strings.TrimSpace(title) == "" {
			return apperror.NewInvalidInput("section title is required", nil)
		}
		oldKey, newKey := cs.Key(), model.KeyForTitle(title)
		if newKey != oldKey {
			if err := checkTitleFree(d, newKey, title, id); err != nil {
				return err
			}
			for j, k := range d.SectionOrder {
				if k == oldKey {
					d.SectionOrder[j] = newKey
				}
			}
		}
		d.CustomSections[i].Title = title
		d.CustomSections[i].Content = content
		return nil
	})
}

// RemoveSection hides a section by dropping its key from the order. The
// data behind it stays so the section can be added back unchanged.
func (e *Editor) RemoveSection(doc *model.Resume, key string) error {
	return e.apply(doc, "remove_section", func(d *model.Resume) error {
		d.SectionOrder = without(d.SectionOrder, key)
		return nil
	})
}

// RemoveCustomSectionPermanently deletes a custom section's record together
// with its order entry.
func (e *Editor) RemoveCustomSectionPermanently(doc *model.Resume, id string) error {
	return e.apply(doc, "remove_custom_section", func(d *model.Resume) error {
		cs, i, ok := d.CustomSectionByID(id)
		if !ok {
			return apperror.NewNotFound("custom section", id)
		}
		d.CustomSections = append(d.CustomSections[:i], d.CustomSections[i+1:]...)
		d.SectionOrder = without(d.SectionOrder, cs.Key())
		return nil
	})
}

// ReorderSections replaces the order with a permutation of itself.
func (e *Editor) ReorderSections(doc *model.Resume, newOrder []string) error {
	return e.apply(doc, "reorder_sections", func(d *model.Resume) error {
		if !isPermutation(d.SectionOrder, newOrder) {
			return apperror.NewInvalidOrder("new order must be a permutation of the current order")
		}
		d.SectionOrder = append([]string{}, newOrder...)
		return nil
	})
}

// MoveSection splices the key at from out of the order and reinserts it at
// to, where to indexes the list after the removal.
func (e *Editor) MoveSection(doc *model.Resume, from, to int) error {
	return e.apply(doc, "move_section", func(d *model.Resume) error {
		n := len(d.SectionOrder)
		if from < 0 || from >= n {
			return apperror.NewIndexOutOfRange(from, n)
		}
		if to < 0 || to >= n {
			return apperror.NewIndexOutOfRange(to, n)
		}
		if from == to {
			return nil
		}
		key := d.SectionOrder[from]
		rest := append(append([]string{}, d.SectionOrder[:from]...), d.SectionOrder[from+1:]...)
		out := make([]string, 0, n)
		out = append(out, rest[:to]...)
		out = append(out, key)
		out = append(out, rest[to:]...)
		d.SectionOrder = out
		return nil
	})
}

// AddListItem appends an item to one of the id-addressed collections and
// returns the id assigned to it. Any id on the incoming item is replaced.
func (e *Editor) AddListItem(doc *model.Resume, collection model.Collection, item interface{}) (string, error) {
	id := ""
	err := e.apply(doc, "add_list_item", func(d *model.Resume) error {
		id = e.ids.NewID()
		switch v := item.(type) {
		case model.Experience:
			if collection != model.CollectionExperience {
				return mismatch(collection, v)
			}
			v.ID = id
			v.Responsibilities = append([]string{}, v.Responsibilities...)
			d.Experience = append(d.Experience, v)
		case model.Education:
			if collection != model.CollectionEducation {
				return mismatch(collection, v)
			}
			v.ID = id
			d.Education = append(d.Education, v)
		case model.Project:
			if collection != model.CollectionProjects {
				return mismatch(collection, v)
			}
			v.ID = id
			v.TechStack = append([]string{}, v.TechStack...)
			d.Projects = append(d.Projects, v)
		case model.Certification:
			if collection != model.CollectionCertifications {
				return mismatch(collection, v)
			}
			v.ID = id
			d.Certifications = append(d.Certifications, v)
		default:
			return mismatch(collection, v)
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return id, nil
}

// UpdateListItem replaces the item carrying the same id.
func (e *Editor) UpdateListItem(doc *model.Resume, collection model.Collection, item interface{}) error {
	return e.apply(doc, "update_list_item", func(d *model.Resume) error {
		switch v := item.(type) {
		case model.Experience:
			if collection != model.CollectionExperience {
				return mismatch(collection, v)
			}
			for i := range d.Experience {
				if d.Experience[i].ID == v.ID {
					v.Responsibilities = append([]string{}, v.Responsibilities...)
					d.Experience[i] = v
					return nil
				}
			}
			return apperror.NewNotFound("experience", v.ID)
		case model.Education:
			if collection != model.CollectionEducation {
				return mismatch(collection, v)
			}
			for i := range d.Education {
				if d.Education[i].ID == v.ID {
					d.Education[i] = v
					return nil
				}
			}
			return apperror.NewNotFound("education", v.ID)
		case model.Project:
			if collection != model.CollectionProjects {
				return mismatch(collection, v)
			}
			for i := range d.Projects {
				if d.Projects[i].ID == v.ID {
					v.TechStack = append([]string{}, v.TechStack...)
					d.Projects[i] = v
					return nil
				}
			}
			return apperror.NewNotFound("project", v.ID)
		case model.Certification:
			if collection != model.CollectionCertifications {
				return mismatch(collection, v)
			}
			for i := range d.Certifications {
				if d.Certifications[i].ID == v.ID {
					d.Certifications[i] = v
					return nil
				}
			}
			return apperror.NewNotFound("certification", v.ID)
		}
		return mismatch(collection, item)
	})
}

// RemoveListItem hard-deletes an item by id.
func (e *Editor) RemoveListItem(doc *model.Resume, collection model.Collection, id string) error {
	return e.apply(doc, "remove_list_item", func(d *model.Resume) error {
		removed := false
		switch collection {
		case model.CollectionExperience:
			for i := range d.Experience {
				if d.Experience[i].ID == id {
					d.Experience = append(d.Experience[:i], d.Experience[i+1:]...)
					removed = true
					break
				}
			}
		case model.CollectionEducation:
			for i := range d.Education {
				if d.Education[i].ID == id {
					d.Education = append(d.Education[:i], d.Education[i+1:]...)
					removed = true
					break
				}
			}
		case model.CollectionProjects:
			for i := range d.Projects {
				if d.Projects[i].ID == id {
					d.Projects = append(d.Projects[:i], d.Projects[i+1:]...)
					removed = true
					break
				}
			}
		case model.CollectionCertifications:
			for i := range d.Certifications {
				if d.Certifications[i].ID == id {
					d.Certifications = append(d.Certifications[:i], d.Certifications[i+1:]...)
					removed = true
					break
				}
			}
		default:
			return apperror.NewInvalidInput(fmt.Sprintf("unknown collection '%s'", collection), nil)
		}
		if !removed {
			return apperror.NewNotFound(string(collection), id)
		}
		return nil
	})
}

func mismatch(collection model.Collection, item interface{}) error {
	return apperror.NewInvalidInput(fmt.Sprintf("item of type %T does not belong to '%s'", item, collection), nil)
}

// AddResponsibility appends a bullet to an experience entry.
func (e *Editor) AddResponsibility(doc *model.Resume, experienceID, text string) error {
	return e.apply(doc, "add_responsibility", func(d *model.Resume) error {
		i, ok := d.ExperienceByID(experienceID)
		if !ok {
			return apperror.NewNotFound("experience", experienceID)
		}
		d.Experience[i].Responsibilities = append(d.Experience[i].Responsibilities, text)
		return nil
	})
}

// RemoveResponsibility deletes the bullet at index. Out of range indexes are
// rejected with ErrIndexOutOfRange.
func (e *Editor) RemoveResponsibility(doc *model.Resume, experienceID string, index int) error {
	return e.apply(doc, "remove_responsibility", func(d *model.Resume) error {
		i, ok := d.ExperienceByID(experienceID)
		if !ok {
			return apperror.NewNotFound("experience", experienceID)
		}
		list := d.Experience[i].Responsibilities
		if index < 0 || index >= len(list) {
			return apperror.NewIndexOutOfRange(index, len(list))
		}
		d.Experience[i].Responsibilities = append(list[:index], list[index+1:]...)
		return nil
	})
}

func (e *Editor) UpdateResponsibility(doc *model.Resume, experienceID string, index int, text string) error {
	return e.apply(doc, "update_responsibility", func(d *model.Resume) error {
		i, ok := d.ExperienceByID(experienceID)
		if !ok {
			return apperror.NewNotFound("experience", experienceID)
		}
		list := d.Experience[i].Responsibilities
		if index < 0 || index >= len(list) {
			return apperror.NewIndexOutOfRange(index, len(list))
		}
		list[index] = text
		return nil
	})
}

// AddSkill appends a trimmed skill. Blank and already present skills are
// ignored; the return value reports whether anything was added.
func (e *Editor) AddSkill(doc *model.Resume, text string) (bool, error) {
	added := false
	err := e.apply(doc, "add_skill", func(d *model.Resume) error {
		s := strings.TrimSpace(text)
		if s == "" {
			return nil
		}
		for _, existing := range d.Skills {
			if existing == s {
				return nil
			}
		}
		d.Skills = append(d.Skills, s)
		added = true
		return nil
	})
	return added, err
}

// RemoveSkill drops every entry equal to text.
func (e *Editor) RemoveSkill(doc *model.Resume, text string) error {
	return e.apply(doc, "remove_skill", func(d *model.Resume) error {
		d.Skills = without(d.Skills, text)
		return nil
	})
}

func (e *Editor) SetSummary(doc *model.Resume, summary string) error {
	return e.apply(doc, "set_summary", func(d *model.Resume) error {
		d.Summary = summary
		return nil
	})
}

func (e *Editor) SetPersonalInfo(doc *model.Resume, info model.PersonalInfo) error {
	return e.apply(doc, "set_personal_info", func(d *model.Resume) error {
		d.PersonalInfo = info
		return nil
	})
}

// AssignIDs gives every entity of an incoming partial a fresh id.
func (e *Editor) AssignIDs(p *model.Partial) {
	for i := range p.Experience {
		p.Experience[i].ID = e.ids.NewID()
	}
	for i := range p.Education {
		p.Education[i].ID = e.ids.NewID()
	}
	for i := range p.Projects {
		p.Projects[i].ID = e.ids.NewID()
	}
	for i := range p.Certifications {
		p.Certifications[i].ID = e.ids.NewID()
	}
	for i := range p.CustomSections {
		p.CustomSections[i].ID = e.ids.NewID()
	}
}

// BulkReplace overlays a partial document. Every non-empty top-level field
// of the partial replaces the current one wholesale; empty fields keep the
// current value. A provided SectionOrder is taken as-is, otherwise the order
// becomes every fixed section with data in canonical order followed by the
// partial's custom sections in arrival order.
func (e *Editor) BulkReplace(doc *model.Resume, p *model.Partial) error {
	return e.apply(doc, "bulk_replace", func(d *model.Resume) error {
		in := (&model.Resume{
			Experience:     p.Experience,
			Education:      p.Education,
			Projects:       p.Projects,
			Skills:         p.Skills,
			Certifications: p.Certifications,
			CustomSections: p.CustomSections,
			SectionOrder:   p.SectionOrder,
		}).Clone()

		if p.PersonalInfo != nil && !p.PersonalInfo.IsZero() {
			d.PersonalInfo = *p.PersonalInfo
		}
		if p.Summary != "" {
			d.Summary = p.Summary
		}
		if len(in.Experience) > 0 {
			d.Experience = in.Experience
		}
		if len(in.Education) > 0 {
			d.Education = in.Education
		}
		if len(in.Projects) > 0 {
			d.Projects = in.Projects
		}
		if len(in.Skills) > 0 {
			d.Skills = dedupe(in.Skills)
		}
		if len(in.Certifications) > 0 {
			d.Certifications = in.Certifications
		}
		if len(in.CustomSections) > 0 {
			d.CustomSections = in.CustomSections
		}

		if p.SectionOrder != nil {
			d.SectionOrder = in.SectionOrder
			return nil
		}
		order := []string{}
		for _, k := range model.FixedSections {
			if d.HasData(k) {
				order = append(order, string(k))
			}
		}
		for _, cs := range in.CustomSections {
			order = append(order, cs.Key())
		}
		d.SectionOrder = order
		return nil
	})
}

// ApplyAnalysis takes the rewrites from an analysis: the suggested summary
// and, for experiences whose id matches, the suggested bullets. Suggestions
// for unknown ids are dropped.
func (e *Editor) ApplyAnalysis(doc *model.Resume, a *model.Analysis) error {
	return e.apply(doc, "apply_analysis", func(d *model.Resume) error {
		if a.SummarySuggestions != "" {
			d.Summary = a.SummarySuggestions
		}
		for _, s := range a.ExperienceSuggestions {
			if i, ok := d.ExperienceByID(s.ExperienceID); ok {
				d.Experience[i].Responsibilities = append([]string{}, s.Suggestions...)
			}
		}
		return nil
	})
}

func without(list []string, s string) []string {
	out := make([]string, 0, len(list))
	for _, v := range list {
		if v != s {
			out = append(out, v)
		}
	}
	return out
}

func dedupe(list []string) []string {
	seen := make(map[string]bool, len(list))
	out := make([]string, 0, len(list))
	for _, v := range list {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	return out
}

func isPermutation(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	counts := make(map[string]int, len(a))
	for _, k := range a {
		counts[k]++
	}
	for _, k := range b {
		counts[k]--
		if counts[k] < 0 {
			return false
		}
	}
	return true
}
