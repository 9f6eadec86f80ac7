package extraction

import (
	"encoding/json"
	"fmt"
	"strings"

	"idvault/models"
	"idvault/utils"
)

type rawField struct {
	Value      *string `json:"value"`
	Confidence float64 `json:"confidence"`
}

// parseExtractionResponse turns the model's JSON reply into normalized
// fields. Markdown code fences and surrounding prose are tolerated.
func parseExtractionResponse(response string) (map[string]models.ExtractedField, error) {
	response = stripCodeFences(response)

	start := strings.Index(response, "{")
	end := strings.LastIndex(response, "}")
	if start == -1 || end == -1 || end < start {
		return nil, fmt.Errorf("no JSON object in extraction response")
	}

	var raw map[string]rawField
	if err := json.Unmarshal([]byte(response[start:end+1]), &raw); err != nil {
		return nil, fmt.Errorf("parse extraction response: %w", err)
	}

	normalizers := map[string]func(string) string{
		models.FieldFullName:    utils.NormalizeName,
		models.FieldDateOfBirth: utils.NormalizeDate,
		models.FieldAddress:     utils.NormalizeAddress,
		models.FieldIDNumber:    utils.NormalizeIDNumber,
		models.FieldExpiryDate:  utils.NormalizeDate,
	}

	fields := make(map[string]models.ExtractedField, len(normalizers))
	for name, normalize := range normalizers {
		rf := raw[name]
		var value string
		if rf.Value != nil {
			value = normalize(*rf.Value)
		}
		fields[name] = models.ExtractedField{
			Value:      value,
			Confidence: rf.Confidence,
		}
	}
	return fields, nil
}

func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
