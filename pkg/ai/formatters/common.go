package formatters

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// Attachment is a binary document sent alongside a prompt. Data is base64.
type Attachment struct {
	MimeType string `json:"mimeType"`
	Data     string `json:"data"`
}

// Chatter sends one prompt to the gateway and returns the model's raw output.
// Kind names the call for metrics and logs.
type Chatter interface {
	Chat(ctx context.Context, kind, apiKey, input string, attachments ...Attachment) (string, error)
}

// DecodeObject parses model output as a JSON object. Output wrapped in prose
// or markdown fences is recovered by parsing from the first '{' to the last
// '}'.
func DecodeObject(output string, v interface{}) error {
	err := json.Unmarshal([]byte(output), v)
	if err == nil {
		return nil
	}
	start := strings.IndexByte(output, '{')
	end := strings.LastIndexByte(output, '}')
	if start >= 0 && end > start {
		if err2 := json.Unmarshal([]byte(output[start:end+1]), v); err2 == nil {
			return nil
		}
	}
	return fmt.Errorf("ai-service returned non-json content: %w", err)
}

func mustMarshal(v interface{}) string {
	b, _ := json.Marshal(v)
	return string(b)
}
