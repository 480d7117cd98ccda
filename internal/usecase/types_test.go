package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeExtraction(t *testing.T) {
	in := map[string]interface{}{
		"personalInfo": map[string]interface{}{"name": "Jane", "phone": 5551234.0, "github": nil},
		"summary":      nil,
		"experience": map[string]interface{}{
			"id": "from-gateway", "title": "SWE", "isCurrent": "yes",
			"responsibilities": []interface{}{"• Led team", nil, "  "},
		},
		"projects": []interface{}{
			map[string]interface{}{"name": "CLI", "techStack": "Go, Cobra"},
			"not an object",
		},
		"customSections": []interface{}{
			map[string]interface{}{"title": "", "content": "orphan"},
			map[string]interface{}{"title": "Awards", "content": "- Gold"},
		},
		"education":    []interface{}{},
		"sectionOrder": []interface{}{"summary"},
	}

	out := NormalizeExtraction(in)
	assert.Equal(t, map[string]interface{}{"name": "Jane", "phone": "5551234"}, out["personalInfo"])
	assert.NotContains(t, out, "summary")
	assert.NotContains(t, out, "education")
	assert.NotContains(t, out, "sectionOrder")

	exp := out["experience"].([]interface{})
	require.Len(t, exp, 1)
	e := exp[0].(map[string]interface{})
	assert.NotContains(t, e, "id")
	assert.Equal(t, true, e["isCurrent"])
	assert.Equal(t, []interface{}{"Led team"}, e["responsibilities"])

	projects := out["projects"].([]interface{})
	require.Len(t, projects, 1)
	assert.Equal(t, []interface{}{"Go", "Cobra"}, projects[0].(map[string]interface{})["techStack"])

	custom := out["customSections"].([]interface{})
	require.Len(t, custom, 1)
	assert.Equal(t, "Awards", custom[0].(map[string]interface{})["title"])
}

func TestPartialFromMap(t *testing.T) {
	p, err := PartialFromMap(map[string]interface{}{
		"summary": "Engineer",
		"skills":  []interface{}{"Go", 42.0},
	})
	require.NoError(t, err)
	assert.Equal(t, "Engineer", p.Summary)
	assert.Equal(t, []string{"Go", "42"}, p.Skills)
	assert.Nil(t, p.PersonalInfo)
	assert.Nil(t, p.SectionOrder)
}

func TestAnalysisFromMap(t *testing.T) {
	a, err := AnalysisFromMap(map[string]interface{}{
		"score":       72.5,
		"weakPhrases": "responsible for, helped with",
		"experienceSuggestions": []interface{}{
			map[string]interface{}{"experienceId": "exp1", "suggestions": "Cut costs\nShipped v2"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 72.5, a.Score)
	assert.Equal(t, []string{"responsible for", "helped with"}, a.WeakPhrases)
	require.Len(t, a.ExperienceSuggestions, 1)
	assert.Equal(t, []string{"Cut costs", "Shipped v2"}, a.ExperienceSuggestions[0].Suggestions)

	_, err = AnalysisFromMap(map[string]interface{}{"summarySuggestions": "x"})
	assert.Error(t, err, "score is required")
}
