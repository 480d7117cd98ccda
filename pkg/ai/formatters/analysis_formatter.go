package formatters

import (
	"context"
	"fmt"
)

// AnalysisFormatter scores a résumé against a job description.
type AnalysisFormatter struct {
	chat Chatter
}

func NewAnalysisFormatter(c Chatter) *AnalysisFormatter {
	return &AnalysisFormatter{chat: c}
}

// Analyze sends the whole document; experience ids must survive the round
// trip so suggestions can be mapped back.
func (af *AnalysisFormatter) Analyze(ctx context.Context, apiKey string, resume interface{}, jobDescription string) (map[string]interface{}, error) {
	input := fmt.Sprintf(`You are an expert ATS (Applicant Tracking System) and professional resume writer. Analyze this resume (JSON format): %s against this job description: %s. Provide a detailed analysis. The experience IDs are crucial for mapping suggestions back to the resume.

Return ONLY a single JSON object and NOTHING ELSE:
{
  "score": 0,
  "missingKeywords": [""],
  "summarySuggestions": "",
  "experienceSuggestions": [{"experienceId": "", "suggestions": [""]}],
  "weakPhrases": [""]
}
score is the match score from 0 to 100. summarySuggestions is a rewritten summary tailored to the job description. suggestions are rewritten bullet points for that experience.`,
		mustMarshal(resume), jobDescription)
	out, err := af.chat.Chat(ctx, "analyze", apiKey, input)
	if err != nil {
		return nil, err
	}
	return decodeMap(out)
}
