package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"resume-builder/internal/model"
	"resume-builder/pkg/apperror"
	"resume-builder/pkg/logger"

	"go.uber.org/zap"
)

// Gateway is the external document-understanding service.
type Gateway interface {
	ExtractFromFile(ctx context.Context, apiKey, mimeType string, data []byte) (map[string]interface{}, error)
	ExtractFromText(ctx context.Context, apiKey, html string) (map[string]interface{}, error)
	Analyze(ctx context.Context, apiKey string, resume interface{}, jobDescription string) (map[string]interface{}, error)
	Rewrite(ctx context.Context, apiKey, text, kind, jobDescription string) (string, error)
	FormatLabels(ctx context.Context, apiKey string) (map[string]string, error)
}

// CredentialStore holds the enrichment API key. Get returns "" when no key
// has been stored.
type CredentialStore interface {
	Get(ctx context.Context) (string, error)
	Set(ctx context.Context, apiKey string) error
}

// Media types the gateway accepts as binary input.
var SupportedMediaTypes = []string{"application/pdf", "image/png", "image/jpeg"}

const docxMediaType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

// Rewrite contexts.
var RewriteKinds = []string{"summary", "bullet point", "project description", "custom section"}

// Enricher runs gateway calls and merges their results through the editor.
// The document is only touched after a call has fully resolved.
type Enricher struct {
	gateway    Gateway
	creds      CredentialStore
	editor     *Editor
	defaultKey string
	log        logger.Logger

	mu     sync.Mutex
	labels map[string]string
}

func NewEnricher(g Gateway, creds CredentialStore, editor *Editor, defaultKey string, log logger.Logger) *Enricher {
	if log == nil {
		log = logger.NewNop()
	}
	return &Enricher{gateway: g, creds: creds, editor: editor, defaultKey: defaultKey, log: log}
}

// APIKey returns the stored credential, falling back to the configured
// default.
func (e *Enricher) APIKey(ctx context.Context) (string, error) {
	if e.creds != nil {
		key, err := e.creds.Get(ctx)
		if err != nil {
			return "", apperror.NewInternal("could not read the enrichment credential", err)
		}
		if key != "" {
			return key, nil
		}
	}
	if e.defaultKey != "" {
		return e.defaultKey, nil
	}
	return "", apperror.NewCredentialMissing()
}

func (e *Enricher) SetAPIKey(ctx context.Context, key string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return apperror.NewInvalidInput("apiKey is required", nil)
	}
	if e.creds == nil {
		return apperror.NewInternal("no credential store configured", nil)
	}
	if err := e.creds.Set(ctx, key); err != nil {
		return apperror.NewInternal("could not store the enrichment credential", err)
	}
	return nil
}

// ImportFile extracts a binary résumé and bulk-replaces it into doc.
func (e *Enricher) ImportFile(ctx context.Context, doc *model.Resume, mimeType string, data []byte) error {
	mimeType = strings.ToLower(strings.TrimSpace(strings.SplitN(mimeType, ";", 2)[0]))
	if mimeType == docxMediaType {
		return apperror.NewInvalidInput("DOCX files must be converted to text before import", nil)
	}
	if !contains(SupportedMediaTypes, mimeType) {
		return apperror.NewInvalidInput(fmt.Sprintf("unsupported media type '%s'", mimeType), nil)
	}
	if len(data) == 0 {
		return apperror.NewInvalidInput("file is empty", nil)
	}
	key, err := e.APIKey(ctx)
	if err != nil {
		return err
	}
	raw, err := e.gateway.ExtractFromFile(ctx, key, mimeType, data)
	if err != nil {
		return err
	}
	return e.merge(doc, raw)
}

// ImportText extracts a résumé from HTML, typically a converted DOCX.
func (e *Enricher) ImportText(ctx context.Context, doc *model.Resume, html string) error {
	if strings.TrimSpace(html) == "" {
		return apperror.NewInvalidInput("html is required", nil)
	}
	key, err := e.APIKey(ctx)
	if err != nil {
		return err
	}
	raw, err := e.gateway.ExtractFromText(ctx, key, html)
	if err != nil {
		return err
	}
	return e.merge(doc, raw)
}

func (e *Enricher) merge(doc *model.Resume, raw map[string]interface{}) error {
	p, err := PartialFromMap(raw)
	if err != nil {
		e.log.Warn("extraction rejected", zap.Error(err))
		return err
	}
	e.editor.AssignIDs(p)
	return e.editor.BulkReplace(doc, p)
}

// Analyze scores doc against a job description. The document is not
// changed; use ApplyAnalysis to take the suggestions.
func (e *Enricher) Analyze(ctx context.Context, doc *model.Resume, jobDescription string) (*model.Analysis, error) {
	if strings.TrimSpace(jobDescription) == "" {
		return nil, apperror.NewInvalidInput("jobDescription is required", nil)
	}
	key, err := e.APIKey(ctx)
	if err != nil {
		return nil, err
	}
	raw, err := e.gateway.Analyze(ctx, key, doc.Clone(), jobDescription)
	if err != nil {
		return nil, err
	}
	return AnalysisFromMap(raw)
}

func (e *Enricher) ApplyAnalysis(doc *model.Resume, a *model.Analysis) error {
	if a == nil {
		return apperror.NewInvalidInput("analysis is required", nil)
	}
	return e.editor.ApplyAnalysis(doc, a)
}

// Rewrite polishes text for one of RewriteKinds.
func (e *Enricher) Rewrite(ctx context.Context, text, kind, jobDescription string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", apperror.NewInvalidInput("text is required", nil)
	}
	if !contains(RewriteKinds, kind) {
		return "", apperror.NewInvalidInput(fmt.Sprintf("unknown rewrite context '%s'", kind), nil)
	}
	key, err := e.APIKey(ctx)
	if err != nil {
		return "", err
	}
	return e.gateway.Rewrite(ctx, key, text, kind, jobDescription)
}

// Labels returns localized section headings, fetched once and cached. Any
// failure yields nil so renderers fall back to the English defaults.
func (e *Enricher) Labels(ctx context.Context) map[string]string {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.labels != nil {
		return e.labels
	}
	key, err := e.APIKey(ctx)
	if err != nil {
		e.log.Warn("labels unavailable, using defaults", zap.Error(err))
		return nil
	}
	labels, err := e.gateway.FormatLabels(ctx, key)
	if err != nil {
		e.log.Warn("labels unavailable, using defaults", zap.Error(err))
		return nil
	}
	e.labels = labels
	return labels
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
