package models

import "time"

// DocumentType enumerates the supported identity document kinds.
type DocumentType string

const (
	DocumentDriverLicense DocumentType = "driver_license"
	DocumentPassport      DocumentType = "passport"
	DocumentIDCard        DocumentType = "id_card"
	DocumentOther         DocumentType = "other"
)

// Valid reports whether the document type is one of the supported kinds.
func (d DocumentType) Valid() bool {
	switch d {
	case DocumentDriverLicense, DocumentPassport, DocumentIDCard, DocumentOther:
		return true
	}
	return false
}

// Canonical profile field names as produced by extraction.
const (
	FieldFullName    = "full_name"
	FieldDateOfBirth = "date_of_birth"
	FieldAddress     = "address"
	FieldIDNumber    = "id_number"
	FieldExpiryDate  = "expiry_date"
)

// fieldAliases maps alternate request spellings to canonical field names.
var fieldAliases = map[string]string{
	"dob": FieldDateOfBirth,
}

// CanonicalField resolves an incoming field name to its canonical form.
func CanonicalField(name string) string {
	if canonical, ok := fieldAliases[name]; ok {
		return canonical
	}
	return name
}

// ExtractedField is a single field value pulled from a document, with the
// extractor's confidence in [0,1].
type ExtractedField struct {
	Value      string  `json:"value" bson:"value"`
	Confidence float64 `json:"confidence" bson:"confidence"`
}

// Embedding pairs a vector with the model that produced it. Vectors from
// different models are not comparable.
type Embedding struct {
	Model  string    `json:"model" bson:"model"`
	Vector []float32 `json:"vector" bson:"vector"`
}

// Profile is a stored subject record keyed by an opaque identifier.
type Profile struct {
	ID         string                    `json:"profile_id" bson:"id"`
	Fields     map[string]ExtractedField `json:"fields" bson:"fields"`
	Embeddings map[string]Embedding      `json:"-" bson:"embeddings"`
	CreatedAt  time.Time                 `json:"created_at" bson:"createdAt"`
	UpdatedAt  time.Time                 `json:"updated_at" bson:"updatedAt"`
}

// FieldValue returns the stored value for a canonical field name.
func (p *Profile) FieldValue(name string) (string, bool) {
	f, ok := p.Fields[name]
	if !ok {
		return "", false
	}
	return f.Value, true
}

// Clone returns a deep copy so callers cannot mutate stored state.
func (p *Profile) Clone() *Profile {
	cp := &Profile{
		ID:        p.ID,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
	if p.Fields != nil {
		cp.Fields = make(map[string]ExtractedField, len(p.Fields))
		for k, v := range p.Fields {
			cp.Fields[k] = v
		}
	}
	if p.Embeddings != nil {
		cp.Embeddings = make(map[string]Embedding, len(p.Embeddings))
		for k, v := range p.Embeddings {
			vec := make([]float32, len(v.Vector))
			copy(vec, v.Vector)
			cp.Embeddings[k] = Embedding{Model: v.Model, Vector: vec}
		}
	}
	return cp
}
