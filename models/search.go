package models

// SearchResult is one typeahead hit ranked by semantic similarity.
type SearchResult struct {
	ProfileID       string  `json:"profile_id"`
	FullName        string  `json:"full_name"`
	Address         string  `json:"address"`
	SimilarityScore float64 `json:"similarity_score"`
}
