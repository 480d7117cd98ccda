package formatters

import (
	"context"
	"fmt"
)

// LabelKeys are the headings a localized label set must provide.
var LabelKeys = []string{"summary", "experience", "education", "skills", "projects", "certifications", "present", "tech"}

type LabelsFormatter struct {
	chat     Chatter
	language string
}

func NewLabelsFormatter(c Chatter, language string) *LabelsFormatter {
	return &LabelsFormatter{chat: c, language: language}
}

// Format asks for the section headings translated into the formatter's
// language. Keys missing from the answer are left out; callers fill them
// with defaults.
func (lf *LabelsFormatter) Format(ctx context.Context, apiKey string) (map[string]string, error) {
	instr := fmt.Sprintf(`You are a professional resume label translator. Translate section headings to %s.

RULES:
1. Return ONLY valid JSON (no markdown, no code blocks, no explanation)
2. Translate VALUES to %s ONLY - do NOT change the KEY names
3. Each value must be a professional heading (1-3 words)

REQUIRED OUTPUT FORMAT:
{
  "summary": "Summary",
  "experience": "Experience",
  "education": "Education",
  "skills": "Skills",
  "projects": "Projects",
  "certifications": "Certifications",
  "present": "Present",
  "tech": "Tech"
}`, lf.language, lf.language)

	out, err := lf.chat.Chat(ctx, "labels", apiKey, "Translate UI labels to "+lf.language+":\n"+instr)
	if err != nil {
		return nil, err
	}
	raw := map[string]interface{}{}
	if err := DecodeObject(out, &raw); err != nil {
		return nil, err
	}
	labels := make(map[string]string, len(LabelKeys))
	for _, k := range LabelKeys {
		if s, ok := raw[k].(string); ok && s != "" {
			labels[k] = s
		}
	}
	return labels, nil
}
