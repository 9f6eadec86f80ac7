package extraction

import (
	"context"

	"idvault/models"
)

// Extractor pulls identity fields out of a document image.
type Extractor interface {
	// ExtractFields returns normalized field values keyed by canonical field
	// name. format is the image format ("jpeg", "png", ...).
	ExtractFields(ctx context.Context, image []byte, format string, docType models.DocumentType) (map[string]models.ExtractedField, error)
}

// Service runs the full extraction flow: extract, embed, store.
type Service interface {
	// ProcessDocument extracts fields from the image, computes name and
	// address embeddings and upserts everything under profileID.
	ProcessDocument(ctx context.Context, profileID string, image []byte, format string, docType models.DocumentType) (*models.Profile, error)
}
