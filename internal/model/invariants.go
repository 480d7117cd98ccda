package model

import (
	"fmt"

	"resume-builder/pkg/apperror"
)

// CheckInvariants verifies the structural rules of a document: unique,
// resolvable section keys, unique custom titles that do not shadow fixed
// sections, unique non-empty ids per collection and unique skills.
func CheckInvariants(r *Resume) error {
	titles := map[string]bool{}
	for _, cs := range r.CustomSections {
		key := cs.Key()
		if key == "" {
			return apperror.NewInvalidInput("custom section title is empty", nil)
		}
		if IsFixed(key) || titles[key] {
			return apperror.NewDuplicateTitle(cs.Title)
		}
		titles[key] = true
	}

	seen := map[string]bool{}
	for _, key := range r.SectionOrder {
		if seen[key] {
			return apperror.NewInvalidOrder(fmt.Sprintf("duplicate key '%s'", key))
		}
		seen[key] = true
		if _, ok := r.Resolve(key); !ok {
			return apperror.NewInvalidOrder(fmt.Sprintf("key '%s' references no section", key))
		}
	}

	if err := uniqueIDs("experience", len(r.Experience), func(i int) string { return r.Experience[i].ID }); err != nil {
		return err
	}
	if err := uniqueIDs("education", len(r.Education), func(i int) string { return r.Education[i].ID }); err != nil {
		return err
	}
	if err := uniqueIDs("projects", len(r.Projects), func(i int) string { return r.Projects[i].ID }); err != nil {
		return err
	}
	if err := uniqueIDs("certifications", len(r.Certifications), func(i int) string { return r.Certifications[i].ID }); err != nil {
		return err
	}
	if err := uniqueIDs("customSections", len(r.CustomSections), func(i int) string { return r.CustomSections[i].ID }); err != nil {
		return err
	}

	skills := map[string]bool{}
	for _, s := range r.Skills {
		if skills[s] {
			return apperror.NewInvalidInput(fmt.Sprintf("duplicate skill '%s'", s), nil)
		}
		skills[s] = true
	}
	return nil
}

func uniqueIDs(collection string, n int, id func(int) string) error {
	seen := make(map[string]bool, n)
	for i := 0; i < n; i++ {
		v := id(i)
		if v == "" {
			return apperror.NewInvalidInput(fmt.Sprintf("%s[%d] has no id", collection, i), nil)
		}
		if seen[v] {
			return apperror.NewInvalidInput(fmt.Sprintf("%s id '%s' is not unique", collection, v), nil)
		}
		seen[v] = true
	}
	return nil
}
