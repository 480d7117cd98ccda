package render

import (
	"fmt"
	"html/template"
	"regexp"
	"strings"

	"resume-builder/pkg/apperror"
)

// Variant selects one of the two visual layouts. Variants differ only in
// CSS; the markup of every section is shared.
type Variant string

const (
	TemplateA Variant = "TemplateA"
	TemplateB Variant = "TemplateB"
)

func (v Variant) class() string {
	if v == TemplateB {
		return "template-b"
	}
	return "template-a"
}

type Font string

const (
	Helvetica  Font = "Helvetica"
	TimesRoman Font = "Times-Roman"
)

// Fonts lists the whitelisted font families.
var Fonts = []Font{Helvetica, TimesRoman}

type Color struct {
	Name string `json:"name"`
	Hex  string `json:"hex"`
}

// Palette holds the accent colours offered by default. Any #rrggbb value is
// accepted as an accent.
var Palette = []Color{
	{Name: "Blue", Hex: "#2563eb"},
	{Name: "Emerald", Hex: "#16a34a"},
	{Name: "Purple", Hex: "#9333ea"},
	{Name: "Red", Hex: "#dc2626"},
	{Name: "Orange", Hex: "#ea580c"},
	{Name: "Teal", Hex: "#0d9488"},
	{Name: "Black", Hex: "#18181b"},
}

var hexColor = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// Style is the target independent style configuration used by every
// renderer. Labels optionally overrides the fixed section headings, keyed by
// section key.
type Style struct {
	Font    Font
	Accent  string
	Variant Variant
	Labels  map[string]string
}

func DefaultStyle() Style {
	return Style{Font: Helvetica, Accent: Palette[0].Hex, Variant: TemplateA}
}

// ParseStyle builds a Style from loosely typed request values. Empty values
// fall back to the defaults; values outside the whitelist are rejected.
func ParseStyle(variant, font, accent string) (Style, error) {
	st := DefaultStyle()
	switch {
	case variant == "":
	case strings.EqualFold(variant, string(TemplateA)):
		st.Variant = TemplateA
	case strings.EqualFold(variant, string(TemplateB)):
		st.Variant = TemplateB
	default:
		return Style{}, apperror.NewInvalidInput(fmt.Sprintf("unknown template '%s'", variant), nil)
	}
	if font != "" {
		found := false
		for _, f := range Fonts {
			if strings.EqualFold(font, string(f)) {
				st.Font, found = f, true
				break
			}
		}
		if !found {
			return Style{}, apperror.NewInvalidInput(fmt.Sprintf("font '%s' is not supported", font), nil)
		}
	}
	if accent != "" {
		if !hexColor.MatchString(accent) {
			return Style{}, apperror.NewInvalidInput(fmt.Sprintf("accent '%s' is not a #rrggbb colour", accent), nil)
		}
		st.Accent = strings.ToLower(accent)
	}
	return st, nil
}

// Target is an output medium. Both targets share the section markup and
// differ in page CSS and font stacks.
type Target int

const (
	Screen Target = iota
	PDF
)

func (t Target) String() string {
	if t == PDF {
		return "pdf"
	}
	return "screen"
}

func (t Target) fontFamily(f Font) string {
	switch {
	case f == TimesRoman && t == PDF:
		return `Times, "Times New Roman", serif`
	case f == TimesRoman:
		return `"Times New Roman", serif`
	case t == PDF:
		return "Helvetica, Arial, sans-serif"
	}
	return "Helvetica, sans-serif"
}

func (t Target) stylesheet() string {
	if t == PDF {
		return "templates/print.css"
	}
	return "templates/screen.css"
}

// vars is built only from whitelisted values, so it is safe to mark as CSS.
func (s Style) vars(t Target) template.CSS {
	return template.CSS(fmt.Sprintf(":root{--accent:%s;--accent-tint:%s15;--font:%s;}",
		s.Accent, s.Accent, t.fontFamily(s.Font)))
}

func DefaultLabels() map[string]string {
	return map[string]string{
		"summary":        "Summary",
		"experience":     "Experience",
		"education":      "Education",
		"skills":         "Skills",
		"projects":       "Projects",
		"certifications": "Certifications",
		"present":        "Present",
		"tech":           "Tech",
	}
}

func (s Style) label(key string) string {
	if v := strings.TrimSpace(s.Labels[key]); v != "" {
		return v
	}
	return DefaultLabels()[key]
}
