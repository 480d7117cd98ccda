package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"resume-builder/pkg/ai/formatters"
	"resume-builder/pkg/apperror"
	"resume-builder/pkg/logger"
	"resume-builder/pkg/metrics"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"
)

// Client calls the document-understanding service. Every call is a single
// attempt; a circuit breaker fails fast once the service keeps failing.
type Client struct {
	BaseURL  string
	HTTP     *http.Client
	Language string

	breaker *gobreaker.CircuitBreaker
	log     logger.Logger
}

type Options struct {
	BaseURL  string
	Language string
	Timeout  time.Duration
	Log      logger.Logger
}

func NewClient(opts Options) *Client {
	if opts.BaseURL == "" {
		opts.BaseURL = "http://ai-service:8000"
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 60 * time.Second
	}
	if opts.Language == "" {
		opts.Language = "English"
	}
	if opts.Log == nil {
		opts.Log = logger.NewNop()
	}
	log := opts.Log.With(zap.String("component", "ai.client"))
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "ai-gateway",
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn("circuit breaker state changed", zap.String("name", name), zap.String("from", from.String()), zap.String("to", to.String()))
		},
	})
	return &Client{
		BaseURL:  opts.BaseURL,
		HTTP:     &http.Client{Timeout: opts.Timeout},
		Language: opts.Language,
		breaker:  cb,
		log:      log,
	}
}

type chatRequest struct {
	Agent       string                  `json:"agent"`
	Input       string                  `json:"input"`
	Attachments []formatters.Attachment `json:"attachments,omitempty"`
}

type chatResponse struct {
	Agent  string `json:"agent"`
	Output string `json:"output"`
}

// Chat posts one prompt to /v1/chat and returns the output string. Every
// failure is reported as an ErrGateway AppError.
func (c *Client) Chat(ctx context.Context, kind, apiKey, input string, attachments ...formatters.Attachment) (string, error) {
	start := time.Now()
	out, err := c.breaker.Execute(func() (interface{}, error) {
		return c.post(ctx, apiKey, chatRequest{Agent: "auto", Input: input, Attachments: attachments})
	})
	metrics.GatewayRequests.WithLabelValues(kind, metrics.Result(err)).Inc()
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			err = apperror.NewGateway("the enrichment service is temporarily unavailable", err)
		}
		c.log.Error("gateway call failed", err, zap.String("kind", kind), zap.Duration("took", time.Since(start)))
		return "", err
	}
	c.log.Info("gateway call finished", zap.String("kind", kind), zap.Duration("took", time.Since(start)))
	return out.(string), nil
}

func (c *Client) post(ctx context.Context, apiKey string, body chatRequest) (string, error) {
	b, err := json.Marshal(body)
	if err != nil {
		return "", apperror.NewGateway("could not encode request", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/v1/chat", bytes.NewReader(b))
	if err != nil {
		return "", apperror.NewGateway("could not build request", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+apiKey)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return "", apperror.NewGateway("the enrichment service could not be reached", err)
	}
	defer resp.Body.Close()

	rb, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", apperror.NewGateway("could not read the enrichment response", err)
	}
	c.log.Info("gateway response", zap.Int("status", resp.StatusCode), zap.Int("request_bytes", len(b)), zap.Int("response_bytes", len(rb)))

	if resp.StatusCode != http.StatusOK {
		return "", apperror.NewGateway(fmt.Sprintf("the enrichment service returned status %d", resp.StatusCode), nil)
	}
	var chat chatResponse
	if err := json.Unmarshal(rb, &chat); err != nil {
		return "", apperror.NewGateway("the enrichment service returned a malformed response", err)
	}
	return chat.Output, nil
}

// Factory methods for the specialised formatters.
func (c *Client) NewExtractionFormatter() *formatters.ExtractionFormatter {
	return formatters.NewExtractionFormatter(c)
}

func (c *Client) NewAnalysisFormatter() *formatters.AnalysisFormatter {
	return formatters.NewAnalysisFormatter(c)
}

func (c *Client) NewRewriteFormatter() *formatters.RewriteFormatter {
	return formatters.NewRewriteFormatter(c)
}

func (c *Client) NewLabelsFormatter() *formatters.LabelsFormatter {
	return formatters.NewLabelsFormatter(c, c.Language)
}

// ExtractFromFile sends a binary résumé and returns the raw extracted map.
func (c *Client) ExtractFromFile(ctx context.Context, apiKey, mimeType string, data []byte) (map[string]interface{}, error) {
	m, err := c.NewExtractionFormatter().FromFile(ctx, apiKey, mimeType, data)
	return m, asGateway(err)
}

// ExtractFromText sends HTML extracted from a document by the caller.
func (c *Client) ExtractFromText(ctx context.Context, apiKey, html string) (map[string]interface{}, error) {
	m, err := c.NewExtractionFormatter().FromText(ctx, apiKey, html)
	return m, asGateway(err)
}

func (c *Client) Analyze(ctx context.Context, apiKey string, resume interface{}, jobDescription string) (map[string]interface{}, error) {
	m, err := c.NewAnalysisFormatter().Analyze(ctx, apiKey, resume, jobDescription)
	return m, asGateway(err)
}

func (c *Client) Rewrite(ctx context.Context, apiKey, text, kind, jobDescription string) (string, error) {
	s, err := c.NewRewriteFormatter().Rewrite(ctx, apiKey, text, kind, jobDescription)
	return s, asGateway(err)
}

// FormatLabels returns the fixed section headings in the client's language.
func (c *Client) FormatLabels(ctx context.Context, apiKey string) (map[string]string, error) {
	m, err := c.NewLabelsFormatter().Format(ctx, apiKey)
	return m, asGateway(err)
}

// asGateway keeps AppErrors from the transport and wraps decode failures.
func asGateway(err error) error {
	if err == nil {
		return nil
	}
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		return err
	}
	return apperror.NewGateway("the enrichment service returned unusable content", err)
}
