package usecase

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"resume-builder/internal/domain"
	"resume-builder/internal/model"
	"resume-builder/internal/render"
	"resume-builder/pkg/apperror"
	"resume-builder/pkg/logger"
	"resume-builder/pkg/metrics"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Renderer is the PDF layout engine.
type Renderer interface {
	RenderHTMLToPDF(ctx context.Context, html string) ([]byte, error)
}

// ArtifactStore keeps exported files. Put returns a locator for the stored
// object.
type ArtifactStore interface {
	Put(ctx context.Context, key string, data []byte, contentType string) (string, error)
}

type ExportsRepo interface {
	Save(ctx context.Context, r *domain.ExportRecord) error
}

type ExporterOptions struct {
	Attempts int
	Backoff  time.Duration
}

// Exporter feeds a document through the PDF target and the layout engine.
type Exporter struct {
	html  *render.Renderer
	pdf   Renderer
	store ArtifactStore
	repo  ExportsRepo
	log   logger.Logger

	attempts int
	backoff  time.Duration
}

func NewExporter(html *render.Renderer, pdf Renderer, store ArtifactStore, repo ExportsRepo, log logger.Logger, opts ExporterOptions) *Exporter {
	if opts.Attempts <= 0 {
		opts.Attempts = 3
	}
	if opts.Backoff <= 0 {
		opts.Backoff = time.Second
	}
	if log == nil {
		log = logger.NewNop()
	}
	return &Exporter{html: html, pdf: pdf, store: store, repo: repo, log: log, attempts: opts.Attempts, backoff: opts.Backoff}
}

type ExportResult struct {
	FileName string
	PDF      []byte
	Record   *domain.ExportRecord
}

// Export renders doc to PDF. The HTML handed to the engine is stored first so
// it survives a failed render. Recording the export is best-effort.
func (x *Exporter) Export(ctx context.Context, sessionID uuid.UUID, doc *model.Resume, st render.Style) (*ExportResult, error) {
	start := time.Now()
	now := start.UTC()
	rec := &domain.ExportRecord{
		ID:        uuid.New(),
		SessionID: sessionID,
		FileName:  ExportFileName(doc.PersonalInfo.Name),
		Template:  string(st.Variant),
		Font:      string(st.Font),
		Accent:    st.Accent,
		Metadata:  map[string]interface{}{},
		CreatedAt: now,
		UpdatedAt: now,
	}
	log := x.log.With(zap.String("export_id", rec.ID.String()), zap.String("template", rec.Template))

	html, err := x.html.Render(doc, st, render.PDF)
	if err != nil {
		return nil, x.fail(ctx, rec, apperror.NewInternal("could not render the document", err))
	}

	prefix := fmt.Sprintf("exports/%s/%s/", sessionID, rec.ID)
	if x.store != nil {
		if loc, err := x.store.Put(ctx, prefix+"resume.html", html, "text/html; charset=utf-8"); err != nil {
			log.Warn("could not store export html", zap.Error(err))
		} else {
			rec.Metadata["generated_html"] = loc
		}
	}

	pdf, err := x.renderWithRetry(ctx, log, string(html))
	if err != nil {
		rec.Metadata["pdf_render_error"] = err.Error()
		return nil, x.fail(ctx, rec, apperror.NewInternal("PDF rendering failed", err))
	}

	rec.Size = len(pdf)
	if x.store != nil {
		loc, err := x.store.Put(ctx, prefix+"resume.pdf", pdf, "application/pdf")
		if err != nil {
			log.Warn("could not store export pdf", zap.Error(err))
		} else {
			rec.StorageKey = loc
		}
	}
	rec.Status = domain.ExportCompleted
	x.save(ctx, rec)
	metrics.Exports.WithLabelValues(rec.Template, "ok").Inc()
	log.Info("export finished", zap.Int("bytes", len(pdf)), zap.Duration("took", time.Since(start)))
	return &ExportResult{FileName: rec.FileName, PDF: pdf, Record: rec}, nil
}

func (x *Exporter) renderWithRetry(ctx context.Context, log logger.Logger, html string) ([]byte, error) {
	var lastErr error
	for i := 0; i < x.attempts; i++ {
		pdf, err := x.pdf.RenderHTMLToPDF(ctx, html)
		if err == nil {
			if bytes.HasPrefix(pdf, []byte("%PDF")) {
				return pdf, nil
			}
			err = fmt.Errorf("invalid PDF output (len=%d)", len(pdf))
		}
		lastErr = err
		log.Warn("render attempt failed", zap.Int("attempt", i+1), zap.Error(err))
		if i < x.attempts-1 {
			select {
			case <-time.After(time.Duration(1<<i) * x.backoff):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}
	}
	return nil, fmt.Errorf("rendering failed after %d attempts: %w", x.attempts, lastErr)
}

func (x *Exporter) fail(ctx context.Context, rec *domain.ExportRecord, err error) error {
	rec.Status = domain.ExportFailed
	x.save(ctx, rec)
	metrics.Exports.WithLabelValues(rec.Template, "error").Inc()
	x.log.Error("export failed", err, zap.String("export_id", rec.ID.String()))
	return err
}

func (x *Exporter) save(ctx context.Context, rec *domain.ExportRecord) {
	if x.repo == nil {
		return
	}
	if err := x.repo.Save(ctx, rec); err != nil {
		x.log.Warn("could not record export (non-fatal)", zap.Error(err))
	}
}

var whitespaceRun = regexp.MustCompile(`\s+`)

// ExportFileName derives the download name from the person's name. Path
// separators count as whitespace so the name survives as one file name.
func ExportFileName(name string) string {
	name = strings.TrimSpace(strings.NewReplacer("/", " ", "\\", " ").Replace(name))
	if name == "" {
		return "Resume.pdf"
	}
	return whitespaceRun.ReplaceAllString(name, "_") + "_Resume.pdf"
}
