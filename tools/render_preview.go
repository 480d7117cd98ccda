// render_preview writes the screen and print HTML of a résumé document to
// disk. It reads a document JSON file when one is given, otherwise it uses
// the built-in sample.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"resume-builder/internal/model"
	"resume-builder/internal/render"
)

func main() {
	doc := model.SampleResume()
	if len(os.Args) > 1 {
		b, err := os.ReadFile(os.Args[1])
		if err != nil {
			fmt.Fprintf(os.Stderr, "read document: %v\n", err)
			os.Exit(2)
		}
		doc = model.NewResume()
		if err := json.Unmarshal(b, doc); err != nil {
			fmt.Fprintf(os.Stderr, "unmarshal: %v\n", err)
			os.Exit(2)
		}
		if err := model.CheckInvariants(doc); err != nil {
			fmt.Fprintf(os.Stderr, "invalid document: %v\n", err)
			os.Exit(2)
		}
	}

	r, err := render.New()
	if err != nil {
		fmt.Fprintf(os.Stderr, "parse templates: %v\n", err)
		os.Exit(2)
	}
	outDir := filepath.Join("resume-data", "generated")
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "create out dir: %v\n", err)
		os.Exit(2)
	}

	for _, v := range []render.Variant{render.TemplateA, render.TemplateB} {
		st := render.DefaultStyle()
		st.Variant = v
		for _, target := range []render.Target{render.Screen, render.PDF} {
			page, err := r.Render(doc, st, target)
			if err != nil {
				fmt.Fprintf(os.Stderr, "render: %v\n", err)
				os.Exit(2)
			}
			out := filepath.Join(outDir, fmt.Sprintf("preview_%s_%s.html", v, target))
			if err := os.WriteFile(out, page, 0o644); err != nil {
				fmt.Fprintf(os.Stderr, "write: %v\n", err)
				os.Exit(2)
			}
			fmt.Printf("wrote %s\n", out)
		}
	}
}
