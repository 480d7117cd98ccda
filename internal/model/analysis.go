package model

// Analysis is the job-description match report returned by the gateway.
type Analysis struct {
	Score                 float64                `json:"score"`
	MissingKeywords       []string               `json:"missingKeywords"`
	SummarySuggestions    string                 `json:"summarySuggestions"`
	ExperienceSuggestions []ExperienceSuggestion `json:"experienceSuggestions"`
	WeakPhrases           []string               `json:"weakPhrases"`
}

type ExperienceSuggestion struct {
	ExperienceID string   `json:"experienceId"`
	Suggestions  []string `json:"suggestions"`
}
