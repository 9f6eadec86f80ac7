package extraction

import (
	"context"

	"idvault/models"
)

// MockExtractor returns fixed sample data. Used when no AI key is configured
// and as the fallback when live extraction fails.
type MockExtractor struct{}

func (MockExtractor) ExtractFields(ctx context.Context, image []byte, format string, docType models.DocumentType) (map[string]models.ExtractedField, error) {
	return map[string]models.ExtractedField{
		models.FieldFullName:    {Value: "John Doe", Confidence: 0.95},
		models.FieldDateOfBirth: {Value: "1990-01-15", Confidence: 0.90},
		models.FieldAddress:     {Value: "123 Main Street, San Jose CA 95110", Confidence: 0.85},
		models.FieldIDNumber:    {Value: "DL12345678", Confidence: 0.95},
		models.FieldExpiryDate:  {Value: "2028-01-15", Confidence: 0.90},
	}, nil
}
