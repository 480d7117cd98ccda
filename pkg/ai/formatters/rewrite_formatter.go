package formatters

import (
	"context"
	"fmt"
	"strings"
)

// RewriteFormatter polishes a single piece of résumé text.
type RewriteFormatter struct {
	chat Chatter
}

func NewRewriteFormatter(c Chatter) *RewriteFormatter {
	return &RewriteFormatter{chat: c}
}

// Rewrite returns the model's plain text rewrite. An empty answer yields the
// input unchanged.
func (rf *RewriteFormatter) Rewrite(ctx context.Context, apiKey, text, kind, jobDescription string) (string, error) {
	tailor := ""
	if strings.TrimSpace(jobDescription) != "" {
		tailor = "Tailor it to this job description: " + jobDescription
	}
	input := fmt.Sprintf(`You are a professional resume writer. Rewrite this resume %s: %q to be more concise, professional, and impactful, using action verbs. %s. Return only the rewritten text, without any additional formatting or intro.`, kind, text, tailor)
	out, err := rf.chat.Chat(ctx, "rewrite", apiKey, input)
	if err != nil {
		return "", err
	}
	if s := strings.TrimSpace(out); s != "" {
		return s, nil
	}
	return text, nil
}
