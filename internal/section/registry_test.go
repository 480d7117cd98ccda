package section

import (
	"testing"

	"resume-builder/internal/model"

	"github.com/stretchr/testify/assert"
)

func TestListFixed(t *testing.T) {
	assert.Equal(t, []string{"summary", "experience", "education", "skills", "projects", "certifications"}, ListFixed())
}

func TestAvailableToAdd(t *testing.T) {
	doc := model.NewResume()
	assert.Equal(t, ListFixed(), AvailableToAdd(doc))

	doc.SectionOrder = []string{"skills", "summary"}
	assert.Equal(t, []string{"experience", "education", "projects", "certifications"}, AvailableToAdd(doc))

	assert.Empty(t, AvailableToAdd(model.SampleResume()))
}

func TestDisplayTitle(t *testing.T) {
	doc := model.NewResume()
	doc.CustomSections = []model.CustomSection{{ID: "c1", Title: "Open Source"}}

	assert.Equal(t, "Summary/Profile", DisplayTitle(doc, "summary"))
	assert.Equal(t, "Experience", DisplayTitle(doc, "experience"))
	assert.Equal(t, "Open Source", DisplayTitle(doc, "open source"))
	assert.Equal(t, "ghost", DisplayTitle(doc, "ghost"))
}

func TestEntries(t *testing.T) {
	doc := model.NewResume()
	doc.CustomSections = []model.CustomSection{{ID: "c1", Title: "Awards"}}
	doc.SectionOrder = []string{"awards", "skills"}

	assert.Equal(t, []Entry{
		{Key: "awards", Title: "Awards", Custom: true},
		{Key: "skills", Title: "Skills"},
	}, Entries(doc))
}
