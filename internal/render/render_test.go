package render

import (
	"strings"
	"testing"

	"resume-builder/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderIsIdempotent(t *testing.T) {
	r := MustNew()
	doc := model.SampleResume()
	st := DefaultStyle()

	for _, target := range []Target{Screen, PDF} {
		a, err := r.Render(doc, st, target)
		require.NoError(t, err)
		b, err := r.Render(doc, st, target)
		require.NoError(t, err)
		assert.Equal(t, a, b, target.String())
	}
}

func TestEmptySectionsAreSkipped(t *testing.T) {
	r := MustNew()
	doc := model.SampleResume()
	doc.Experience = []model.Experience{}

	frags, err := r.Fragments(doc, DefaultStyle())
	require.NoError(t, err)
	for _, f := range frags {
		assert.NotEqual(t, "experience", f.Key)
	}
	out, err := r.Render(doc, DefaultStyle(), PDF)
	require.NoError(t, err)
	assert.NotContains(t, string(out), `data-section="experience"`)
}

func TestUnresolvableKeysAreSkipped(t *testing.T) {
	r := MustNew()
	doc := model.SampleResume()
	doc.SectionOrder = append(doc.SectionOrder, "deleted custom section")

	h, err := r.Section(doc, "deleted custom section", DefaultStyle())
	require.NoError(t, err)
	assert.Empty(t, h)

	frags, err := r.Fragments(doc, DefaultStyle())
	require.NoError(t, err)
	assert.Len(t, frags, 6)
}

func TestFragmentsFollowSectionOrder(t *testing.T) {
	r := MustNew()
	doc := model.SampleResume()
	doc.CustomSections = []model.CustomSection{{ID: "c1", Title: "Volunteering", Content: "- Food bank\n- Mentoring"}}
	doc.SectionOrder = []string{"skills", "volunteering", "summary"}

	frags, err := r.Fragments(doc, DefaultStyle())
	require.NoError(t, err)
	require.Len(t, frags, 3)
	assert.Equal(t, "skills", frags[0].Key)
	assert.Equal(t, "volunteering", frags[1].Key)
	assert.Contains(t, string(frags[1].HTML), "Volunteering")
	assert.Contains(t, string(frags[1].HTML), "- Food bank\n- Mentoring")
	assert.Equal(t, "summary", frags[2].Key)
}

func TestVariantsAreInterchangeable(t *testing.T) {
	r := MustNew()
	doc := model.SampleResume()

	a := DefaultStyle()
	b := DefaultStyle()
	b.Variant = TemplateB

	fa, err := r.Fragments(doc, a)
	require.NoError(t, err)
	fb, err := r.Fragments(doc, b)
	require.NoError(t, err)
	assert.Equal(t, fa, fb)

	pa, err := r.Render(doc, a, Screen)
	require.NoError(t, err)
	pb, err := r.Render(doc, b, Screen)
	require.NoError(t, err)
	assert.NotEqual(t, pa, pb)
	assert.Contains(t, string(pa), `class="resume template-a"`)
	assert.Contains(t, string(pb), `class="resume template-b"`)
}

func TestLabelsOverrideFixedHeadings(t *testing.T) {
	r := MustNew()
	doc := model.SampleResume()
	st := DefaultStyle()
	st.Labels = map[string]string{"skills": "Competências", "present": "Atual"}

	h, err := r.Section(doc, "skills", st)
	require.NoError(t, err)
	assert.Contains(t, string(h), "Competências")

	h, err = r.Section(doc, "experience", st)
	require.NoError(t, err)
	assert.Contains(t, string(h), "Atual")
	assert.Contains(t, string(h), "Experience")
}

func TestContentIsEscaped(t *testing.T) {
	r := MustNew()
	doc := model.NewResume()
	doc.Summary = "<script>alert(1)</script>"
	doc.SectionOrder = []string{"summary"}

	h, err := r.Section(doc, "summary", DefaultStyle())
	require.NoError(t, err)
	assert.NotContains(t, string(h), "<script>")
}

func TestStyleReachesStylesheet(t *testing.T) {
	r := MustNew()
	st, err := ParseStyle("TemplateB", "Times-Roman", "#16A34A")
	require.NoError(t, err)

	out, err := r.Render(model.SampleResume(), st, PDF)
	require.NoError(t, err)
	assert.Contains(t, string(out), "--accent:#16a34a")
	assert.Contains(t, string(out), "@page{size:A4")
	assert.Contains(t, string(out), "Times")
}

func TestParseStyle(t *testing.T) {
	st, err := ParseStyle("", "", "")
	require.NoError(t, err)
	assert.Equal(t, DefaultStyle(), st)

	_, err = ParseStyle("TemplateC", "", "")
	assert.Error(t, err)
	_, err = ParseStyle("", "Comic Sans", "")
	assert.Error(t, err)
	_, err = ParseStyle("", "", "red")
	assert.Error(t, err)
	_, err = ParseStyle("", "", "#12345")
	assert.Error(t, err)
}

func TestLinkLabel(t *testing.T) {
	assert.Equal(t, "alexmorgan.design", linkLabel("alexmorgan.design/fintrack"))
	assert.Equal(t, "github.com", linkLabel("https://www.github.com/me"))
	assert.Equal(t, "example.co.uk", linkLabel("http://blog.example.co.uk/post"))
	assert.Equal(t, "https://github.com/me", href("http://github.com/me"))
}

func TestEndToEndSkillBadge(t *testing.T) {
	r := MustNew()
	doc := model.NewResume()
	doc.SectionOrder = []string{"summary", "skills"}
	doc.Summary = "Engineer"
	doc.Skills = []string{"Go"}

	out, err := r.Render(doc, DefaultStyle(), Screen)
	require.NoError(t, err)
	html := string(out)
	assert.Equal(t, 1, strings.Count(html, `data-section="summary"`))
	assert.Equal(t, 1, strings.Count(html, `data-section="skills"`))
	assert.Equal(t, 1, strings.Count(html, `<span class="badge">Go</span>`))
	assert.NotContains(t, html, `class="resume-header"`)
}
