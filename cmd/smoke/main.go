// Command smoke drives an import, analysis and export against a mock
// enrichment service. With -pdf it also prints through headless Chrome.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"time"

	"resume-builder/internal/model"
	"resume-builder/internal/render"
	"resume-builder/internal/usecase"
	"resume-builder/pkg/ai"
	"resume-builder/pkg/infrastructure"
	"resume-builder/pkg/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// mockGateway answers /v1/chat with canned outputs chosen from the prompt.
func mockGateway() *httptest.Server {
	extraction := map[string]interface{}{
		"personalInfo": map[string]interface{}{"name": "Test User", "title": "Engineer", "email": "t@example.com", "github": "github.com/test"},
		"summary":      "Backend engineer focused on reliable data pipelines.",
		"experience": []map[string]interface{}{{
			"title": "Engineer", "company": "Acme", "startDate": "2021", "isCurrent": "true",
			"responsibilities": "- Built event pipelines\n- Cut incident rate by 40%",
		}},
		"skills":         "Go, Postgres, Kubernetes",
		"customSections": []map[string]interface{}{{"title": "Talks", "content": "Scaling Go Microservices (2023)"}},
	}
	analysis := map[string]interface{}{
		"score":              "78%",
		"missingKeywords":    []string{"Terraform"},
		"summarySuggestions": "Backend engineer building reliable, observable data pipelines in Go.",
	}

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Input string `json:"input"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Input == "" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		var out interface{} = extraction
		switch {
		case strings.Contains(req.Input, "job description"):
			out = analysis
		case strings.Contains(req.Input, "headings"):
			out = map[string]string{}
		}
		b, _ := json.Marshal(out)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{"agent": "mock", "output": "```json\n" + string(b) + "\n```"})
	}))
}

func main() {
	withPDF := flag.Bool("pdf", false, "render the PDF with headless Chrome")
	outDir := flag.String("out", filepath.Join("resume-data", "generated"), "output directory")
	flag.Parse()

	log := logger.NewZapLogger("development")
	srv := mockGateway()
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	client := ai.NewClient(ai.Options{BaseURL: srv.URL, Log: log})
	editor := usecase.NewEditor(usecase.UUIDGenerator{}, log)
	enricher := usecase.NewEnricher(client, nil, editor, "smoke-key", log)

	doc := model.NewResume()
	if err := enricher.ImportText(ctx, doc, "<h1>Test User</h1><p>Engineer at Acme</p>"); err != nil {
		log.Fatal("import failed", err)
	}
	a, err := enricher.Analyze(ctx, doc, "Platform engineer with Go, Kubernetes and Terraform")
	if err != nil {
		log.Fatal("analysis failed", err)
	}
	if err := enricher.ApplyAnalysis(doc, a); err != nil {
		log.Fatal("apply failed", err)
	}
	log.Info("document ready", zap.Strings("order", doc.SectionOrder), zap.Float64("score", a.Score))

	store, err := infrastructure.NewLocalStore(*outDir)
	if err != nil {
		log.Fatal("storage failed", err)
	}
	html := render.MustNew()
	st, _ := render.ParseStyle("TemplateB", "", "#0d9488")

	page, err := html.Render(doc, st, render.Screen)
	if err != nil {
		log.Fatal("render failed", err)
	}
	loc, err := store.Put(ctx, "smoke/preview.html", page, "text/html")
	if err != nil {
		log.Fatal("write failed", err)
	}
	fmt.Printf("preview written to %s\n", loc)

	if !*withPDF {
		return
	}
	x := usecase.NewExporter(html, infrastructure.NewChromedpRenderer(os.Getenv("CHROME_PATH")), store, nil, log, usecase.ExporterOptions{})
	res, err := x.Export(ctx, uuid.New(), doc, st)
	if err != nil {
		log.Fatal("export failed", err)
	}
	fmt.Printf("exported %s (%d bytes) to %s\n", res.FileName, len(res.PDF), res.Record.StorageKey)
}
