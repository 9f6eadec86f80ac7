package models

// MatchClassification is the three-way outcome of a similarity match.
type MatchClassification string

const (
	MatchResultMatch     MatchClassification = "match"
	MatchResultNoMatch   MatchClassification = "no_match"
	MatchResultUncertain MatchClassification = "uncertain"
)

// MatchResult carries the per-field similarities, the weighted overall score
// and the derived classification.
type MatchResult struct {
	NameSimilarity    float64             `json:"name_similarity"`
	AddressSimilarity float64             `json:"address_similarity"`
	OverallScore      float64             `json:"overall_score"`
	Classification    MatchClassification `json:"classification"`
}
