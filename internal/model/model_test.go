package model

import (
	"errors"
	"testing"

	"resume-builder/pkg/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCloneIsDeep(t *testing.T) {
	orig := SampleResume()
	cp := orig.Clone()

	cp.Experience[0].Responsibilities[0] = "changed"
	cp.Projects[0].TechStack[0] = "changed"
	cp.Skills[0] = "changed"
	cp.SectionOrder[0] = "changed"

	assert.NotEqual(t, "changed", orig.Experience[0].Responsibilities[0])
	assert.NotEqual(t, "changed", orig.Projects[0].TechStack[0])
	assert.NotEqual(t, "changed", orig.Skills[0])
	assert.Equal(t, "summary", orig.SectionOrder[0])
}

func TestResolve(t *testing.T) {
	r := NewResume()
	r.CustomSections = append(r.CustomSections, CustomSection{ID: "c1", Title: "Publications"})

	ref, ok := r.Resolve("skills")
	require.True(t, ok)
	assert.Equal(t, KindFixed, ref.Kind)
	assert.Equal(t, SectionSkills, ref.Fixed)

	ref, ok = r.Resolve("publications")
	require.True(t, ok)
	assert.Equal(t, KindCustom, ref.Kind)
	assert.Equal(t, "c1", ref.CustomID)

	_, ok = r.Resolve("Publications")
	assert.False(t, ok)
	_, ok = r.Resolve("volunteering")
	assert.False(t, ok)
}

func TestPeriodPrefersIsCurrent(t *testing.T) {
	e := Experience{StartDate: "2020", EndDate: "2022", IsCurrent: true}
	assert.Equal(t, "2020 – Present", e.Period("Present"))
	e.IsCurrent = false
	assert.Equal(t, "2020 – 2022", e.Period("Present"))
}

func TestCheckInvariants(t *testing.T) {
	require.NoError(t, CheckInvariants(SampleResume()))
	require.NoError(t, CheckInvariants(NewResume()))

	r := SampleResume()
	r.SectionOrder = append(r.SectionOrder, "summary")
	assert.True(t, errors.Is(CheckInvariants(r), apperror.ErrInvalidOrder))

	r = SampleResume()
	r.SectionOrder = append(r.SectionOrder, "awards")
	assert.True(t, errors.Is(CheckInvariants(r), apperror.ErrInvalidOrder))

	r = SampleResume()
	r.CustomSections = []CustomSection{{ID: "a", Title: "Skills"}}
	assert.True(t, errors.Is(CheckInvariants(r), apperror.ErrDuplicateTitle))

	r = SampleResume()
	r.CustomSections = []CustomSection{{ID: "a", Title: "Awards"}, {ID: "b", Title: "AWARDS"}}
	assert.True(t, errors.Is(CheckInvariants(r), apperror.ErrDuplicateTitle))

	r = SampleResume()
	r.Education = append(r.Education, Education{ID: "edu1"})
	assert.True(t, errors.Is(CheckInvariants(r), apperror.ErrInvalidInput))

	r = SampleResume()
	r.Skills = append(r.Skills, "Figma")
	assert.True(t, errors.Is(CheckInvariants(r), apperror.ErrInvalidInput))
}

func TestValidateExtraction(t *testing.T) {
	ok := map[string]interface{}{
		"summary": "Engineer",
		"skills":  []interface{}{"Go"},
		"experience": []interface{}{
			map[string]interface{}{"title": "Dev", "isCurrent": true, "responsibilities": []interface{}{"Built things"}},
		},
	}
	require.NoError(t, ValidateExtraction(ok))

	bad := map[string]interface{}{
		"experience": []interface{}{
			map[string]interface{}{"isCurrent": "yes"},
		},
	}
	require.Error(t, ValidateExtraction(bad))
}

func TestValidateAnalysis(t *testing.T) {
	require.NoError(t, ValidateAnalysis(map[string]interface{}{"score": 72.0}))
	require.Error(t, ValidateAnalysis(map[string]interface{}{"score": 140.0}))
	require.Error(t, ValidateAnalysis(map[string]interface{}{"missingKeywords": []interface{}{"k8s"}}))
}
