package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"strings"

	"resume-builder/internal/model"
)

//go:embed templates/*
var files embed.FS

// Fragment is the rendered form of one visible section.
type Fragment struct {
	Key  string
	HTML template.HTML
}

// Renderer turns a document into HTML for a target. Rendering is a pure
// function of its inputs: the same document and style always produce the
// same bytes.
type Renderer struct {
	tpl *template.Template
	css map[string]string
}

func New() (*Renderer, error) {
	tpl, err := template.New("resume").Funcs(template.FuncMap{
		"href":      href,
		"linkLabel": linkLabel,
		"join":      strings.Join,
	}).ParseFS(files, "templates/*.gohtml")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	css := map[string]string{}
	for _, name := range []string{"templates/base.css", "templates/screen.css", "templates/print.css"} {
		b, err := fs.ReadFile(files, name)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", name, err)
		}
		css[name] = string(b)
	}
	return &Renderer{tpl: tpl, css: css}, nil
}

// MustNew is New for package initialisation; the templates are embedded so a
// failure is a build defect.
func MustNew() *Renderer {
	r, err := New()
	if err != nil {
		panic(err)
	}
	return r
}

type sectionView struct {
	Key     string
	Heading string
	Doc     *model.Resume
	Custom  model.CustomSection
	Present string
	Tech    string
}

// Section renders a single section key. It returns an empty fragment when
// the key resolves to nothing or the fixed section has no data.
func (r *Renderer) Section(doc *model.Resume, key string, st Style) (template.HTML, error) {
	ref, ok := doc.Resolve(key)
	if !ok {
		return "", nil
	}
	view := sectionView{Key: key, Doc: doc, Present: st.label("present"), Tech: st.label("tech")}
	name := "section-custom"
	switch ref.Kind {
	case model.KindFixed:
		if !doc.HasData(ref.Fixed) {
			return "", nil
		}
		view.Heading = st.label(key)
		name = "section-" + key
	case model.KindCustom:
		cs, _, _ := doc.CustomSectionByID(ref.CustomID)
		view.Heading = cs.Title
		view.Custom = cs
	}
	var buf bytes.Buffer
	if err := r.tpl.ExecuteTemplate(&buf, name, view); err != nil {
		return "", fmt.Errorf("render section %s: %w", key, err)
	}
	return template.HTML(buf.String()), nil
}

// Fragments renders the document's sections in order, dropping the ones
// that render to nothing.
func (r *Renderer) Fragments(doc *model.Resume, st Style) ([]Fragment, error) {
	out := make([]Fragment, 0, len(doc.SectionOrder))
	for _, key := range doc.SectionOrder {
		h, err := r.Section(doc, key, st)
		if err != nil {
			return nil, err
		}
		if h == "" {
			continue
		}
		out = append(out, Fragment{Key: key, HTML: h})
	}
	return out, nil
}

type pageView struct {
	Title    string
	CSS      template.CSS
	Target   string
	Variant  string
	Info     model.PersonalInfo
	Sections []Fragment
}

// Render produces a complete HTML page for the target with the stylesheets
// inlined, so the result can be saved or handed to a layout engine as is.
func (r *Renderer) Render(doc *model.Resume, st Style, target Target) ([]byte, error) {
	sections, err := r.Fragments(doc, st)
	if err != nil {
		return nil, err
	}
	title := strings.TrimSpace(doc.PersonalInfo.Name)
	if title == "" {
		title = "Resume"
	}
	css := st.vars(target) + template.CSS(r.css["templates/base.css"]) + template.CSS(r.css[target.stylesheet()])
	view := pageView{
		Title:    title,
		CSS:      css,
		Target:   target.String(),
		Variant:  st.Variant.class(),
		Info:     doc.PersonalInfo,
		Sections: sections,
	}
	var buf bytes.Buffer
	if err := r.tpl.ExecuteTemplate(&buf, "page", view); err != nil {
		return nil, fmt.Errorf("render page: %w", err)
	}
	return buf.Bytes(), nil
}
