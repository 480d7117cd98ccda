package formatters

import (
	"context"
	"encoding/base64"
)

const extractionInstructions = `Parse the resume. Extract all standard sections and any custom sections like 'Publications' or 'Volunteering'. Structure custom sections with a title and content, using newlines for bullet points (e.g. "- Point one.\n- Point two."). If a standard field is not present, omit it from the JSON. For dates, use formats like 'Month YYYY'.

Return ONLY a single JSON object with this shape and NOTHING ELSE (no markdown, no code fences):
{
  "personalInfo": {"name": "", "title": "", "email": "", "phone": "", "location": "", "linkedin": "", "github": "", "portfolio": ""},
  "summary": "",
  "experience": [{"title": "", "company": "", "location": "", "startDate": "", "endDate": "", "isCurrent": false, "responsibilities": [""]}],
  "education": [{"degree": "", "university": "", "location": "", "startDate": "", "endDate": ""}],
  "projects": [{"name": "", "techStack": [""], "link": "", "description": ""}],
  "skills": [""],
  "certifications": [{"name": "", "provider": "", "date": "", "link": ""}],
  "customSections": [{"title": "", "content": ""}]
}`

// ExtractionFormatter turns an uploaded document, or text already extracted
// from one, into a loosely typed partial résumé map.
type ExtractionFormatter struct {
	chat Chatter
}

func NewExtractionFormatter(c Chatter) *ExtractionFormatter {
	return &ExtractionFormatter{chat: c}
}

func (ef *ExtractionFormatter) FromFile(ctx context.Context, apiKey, mimeType string, data []byte) (map[string]interface{}, error) {
	att := Attachment{MimeType: mimeType, Data: base64.StdEncoding.EncodeToString(data)}
	out, err := ef.chat.Chat(ctx, "extract_file", apiKey, "Parse the resume from the attached file.\n\n"+extractionInstructions, att)
	if err != nil {
		return nil, err
	}
	return decodeMap(out)
}

func (ef *ExtractionFormatter) FromText(ctx context.Context, apiKey, html string) (map[string]interface{}, error) {
	input := "Parse the resume from this HTML content.\n\n" + extractionInstructions + "\n\nHTML Content:\n" + html
	out, err := ef.chat.Chat(ctx, "extract_text", apiKey, input)
	if err != nil {
		return nil, err
	}
	return decodeMap(out)
}

func decodeMap(out string) (map[string]interface{}, error) {
	m := map[string]interface{}{}
	if err := DecodeObject(out, &m); err != nil {
		return nil, err
	}
	return m, nil
}
