package ai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"resume-builder/pkg/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type captured struct {
	auth string
	body chatRequest
}

func gateway(t *testing.T, status int, output string, seen *captured) (*httptest.Server, *int32) {
	t.Helper()
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		assert.Equal(t, "/v1/chat", r.URL.Path)
		if seen != nil {
			seen.auth = r.Header.Get("Authorization")
			_ = json.NewDecoder(r.Body).Decode(&seen.body)
		}
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(chatResponse{Agent: "auto", Output: output})
	}))
	t.Cleanup(srv.Close)
	return srv, &hits
}

func TestExtractFromTextRecoversFencedJSON(t *testing.T) {
	var seen captured
	srv, _ := gateway(t, http.StatusOK, "```json\n{\"summary\":\"Engineer\",\"skills\":[\"Go\"]}\n```", &seen)
	c := NewClient(Options{BaseURL: srv.URL})

	m, err := c.ExtractFromText(context.Background(), "key-1", "<p>Engineer</p>")
	require.NoError(t, err)
	assert.Equal(t, "Engineer", m["summary"])
	assert.Equal(t, []interface{}{"Go"}, m["skills"])
	assert.Equal(t, "Bearer key-1", seen.auth)
	assert.Equal(t, "auto", seen.body.Agent)
	assert.Contains(t, seen.body.Input, "<p>Engineer</p>")
	assert.Empty(t, seen.body.Attachments)
}

func TestExtractFromFileSendsAttachment(t *testing.T) {
	var seen captured
	srv, _ := gateway(t, http.StatusOK, `{"summary":"x"}`, &seen)
	c := NewClient(Options{BaseURL: srv.URL})

	_, err := c.ExtractFromFile(context.Background(), "k", "application/pdf", []byte("%PDF-1.4"))
	require.NoError(t, err)
	require.Len(t, seen.body.Attachments, 1)
	assert.Equal(t, "application/pdf", seen.body.Attachments[0].MimeType)
	assert.Equal(t, "JVBERi0xLjQ=", seen.body.Attachments[0].Data)
}

func TestNon200IsGatewayError(t *testing.T) {
	srv, _ := gateway(t, http.StatusInternalServerError, "", nil)
	c := NewClient(Options{BaseURL: srv.URL})

	_, err := c.Analyze(context.Background(), "k", map[string]string{}, "Go developer")
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperror.ErrGateway))
}

func TestNonJSONOutputIsGatewayError(t *testing.T) {
	srv, _ := gateway(t, http.StatusOK, "I cannot help with that.", nil)
	c := NewClient(Options{BaseURL: srv.URL})

	_, err := c.ExtractFromText(context.Background(), "k", "text")
	assert.True(t, errors.Is(err, apperror.ErrGateway))
}

func TestUnreachableIsGatewayError(t *testing.T) {
	c := NewClient(Options{BaseURL: "http://127.0.0.1:1"})
	_, err := c.Rewrite(context.Background(), "k", "text", "summary", "")
	assert.True(t, errors.Is(err, apperror.ErrGateway))
}

func TestRewriteFallsBackToInput(t *testing.T) {
	srv, _ := gateway(t, http.StatusOK, "   ", nil)
	c := NewClient(Options{BaseURL: srv.URL})

	out, err := c.Rewrite(context.Background(), "k", "Did stuff", "bullet point", "")
	require.NoError(t, err)
	assert.Equal(t, "Did stuff", out)
}

func TestRewriteTrimsOutput(t *testing.T) {
	var seen captured
	srv, _ := gateway(t, http.StatusOK, "  Delivered features.\n", &seen)
	c := NewClient(Options{BaseURL: srv.URL})

	out, err := c.Rewrite(context.Background(), "k", "Did stuff", "bullet point", "Backend role")
	require.NoError(t, err)
	assert.Equal(t, "Delivered features.", out)
	assert.Contains(t, seen.body.Input, "Tailor it to this job description: Backend role")
}

func TestFormatLabelsKeepsKnownKeys(t *testing.T) {
	srv, _ := gateway(t, http.StatusOK, `{"summary":"Resumo","skills":"Competências","bogus":"x","tech":""}`, nil)
	c := NewClient(Options{BaseURL: srv.URL, Language: "Portuguese"})

	labels, err := c.FormatLabels(context.Background(), "k")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"summary": "Resumo", "skills": "Competências"}, labels)
}

func TestBreakerOpensAfterConsecutiveFailures(t *testing.T) {
	srv, hits := gateway(t, http.StatusBadGateway, "", nil)
	c := NewClient(Options{BaseURL: srv.URL})

	for i := 0; i < 5; i++ {
		_, err := c.Chat(context.Background(), "test", "k", "hi")
		require.Error(t, err)
	}
	_, err := c.Chat(context.Background(), "test", "k", "hi")
	assert.True(t, errors.Is(err, apperror.ErrGateway))
	assert.Equal(t, int32(5), atomic.LoadInt32(hits), "open breaker must not reach the service")
}
