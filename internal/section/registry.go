// Package section is the catalogue of section keys: which fixed sections
// exist, which can still be added, and how a key is titled for display.
package section

import (
	"strings"

	"resume-builder/internal/model"
)

// ListFixed returns the six fixed section keys in canonical order.
func ListFixed() []string {
	out := make([]string, len(model.FixedSections))
	for i, k := range model.FixedSections {
		out[i] = string(k)
	}
	return out
}

// AvailableToAdd lists the fixed sections missing from the document's order.
func AvailableToAdd(doc *model.Resume) []string {
	out := []string{}
	for _, k := range model.FixedSections {
		if !doc.InOrder(string(k)) {
			out = append(out, string(k))
		}
	}
	return out
}

// DisplayTitle is the navigation label for a key. Custom sections keep the
// user's casing; unknown keys are returned as-is.
func DisplayTitle(doc *model.Resume, key string) string {
	if model.IsFixed(key) {
		if key == string(model.SectionSummary) {
			return "Summary/Profile"
		}
		return capitalize(key)
	}
	if cs, _, ok := doc.CustomSectionByKey(key); ok {
		return cs.Title
	}
	return key
}

// Entry is one row of the navigation list.
type Entry struct {
	Key    string `json:"key"`
	Title  string `json:"title"`
	Custom bool   `json:"custom"`
}

// Entries describes the document's current order for navigation.
func Entries(doc *model.Resume) []Entry {
	out := make([]Entry, 0, len(doc.SectionOrder))
	for _, key := range doc.SectionOrder {
		out = append(out, Entry{Key: key, Title: DisplayTitle(doc, key), Custom: !model.IsFixed(key)})
	}
	return out
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
