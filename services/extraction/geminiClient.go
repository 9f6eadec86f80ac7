package extraction

import (
	"context"
	"fmt"
	"strings"

	"idvault/models"

	genai "github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// GeminiExtractor extracts document fields with Gemini Vision.
type GeminiExtractor struct {
	model *genai.GenerativeModel
}

// NewGeminiExtractor creates a Gemini-backed extractor.
func NewGeminiExtractor(apiKey string) (*GeminiExtractor, error) {
	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	model := client.GenerativeModel("gemini-2.5-flash")
	return &GeminiExtractor{model: model}, nil
}

func (g *GeminiExtractor) ExtractFields(ctx context.Context, image []byte, format string, docType models.DocumentType) (map[string]models.ExtractedField, error) {
	resp, err := g.model.GenerateContent(ctx,
		genai.Text(extractionPrompt(docType)),
		genai.ImageData(format, image),
	)
	if err != nil {
		return nil, fmt.Errorf("gemini generate error: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, fmt.Errorf("gemini returned no candidates")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if textPart, ok := part.(genai.Text); ok {
			sb.WriteString(string(textPart))
		}
	}
	return parseExtractionResponse(sb.String())
}

func extractionPrompt(docType models.DocumentType) string {
	return fmt.Sprintf(`You are a document data extraction AI. Extract the following fields from this %s document.

IMPORTANT: Look carefully at the document and extract EXACTLY what you see.

Extract these fields and return ONLY a valid JSON object with this exact structure:

{
  "full_name": {"value": "extracted name", "confidence": 0.95},
  "date_of_birth": {"value": "extracted dob", "confidence": 0.90},
  "address": {"value": "extracted address", "confidence": 0.85},
  "id_number": {"value": "extracted id number", "confidence": 0.95},
  "expiry_date": {"value": "extracted expiry date", "confidence": 0.90}
}

Rules:
- Extract EXACTLY what you see in the document
- confidence should be a number between 0 and 1
- If a field is not found, set value to null and confidence to 0.0
- Return ONLY the JSON object, no additional text before or after
- For dates, include them in any readable format (we'll normalize later)
- For names, include full name as shown on document
- For address, include complete address as shown
- For ID number, include the license/document number`, docType)
}
