package pdf

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"idvault/utils"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"go.uber.org/zap"
)

// ErrInvalidFormType is returned for form type values that are empty or try
// to escape the templates directory.
var ErrInvalidFormType = errors.New("invalid form type")

// Service fills PDF form templates with field values.
type Service interface {
	// FillForm fills the template named formType with fields and returns the
	// resulting PDF. A missing template or a fill failure falls back to a
	// generated summary document.
	FillForm(ctx context.Context, formType string, fields map[string]string) ([]byte, error)
}

// DefaultPDFService looks up templates as <TemplatesDir>/<formType>.pdf.
type DefaultPDFService struct {
	TemplatesDir string
}

func (s *DefaultPDFService) FillForm(ctx context.Context, formType string, fields map[string]string) ([]byte, error) {
	if formType == "" || formType != filepath.Base(formType) || strings.ContainsAny(formType, "./\\") {
		return nil, ErrInvalidFormType
	}
	logger := utils.GetLogger()

	templatePath := filepath.Join(s.TemplatesDir, formType+".pdf")
	if _, err := os.Stat(templatePath); err != nil {
		logger.Info("template not found, generating summary PDF",
			zap.String("formType", formType))
		return s.generateSummary(fields)
	}

	out, err := s.fillTemplate(templatePath, fields)
	if err != nil {
		logger.Error("form fill failed, generating summary PDF",
			zap.String("formType", formType), zap.Error(err))
		return s.generateSummary(fields)
	}
	return out, nil
}

// fillTemplate fills AcroForm text fields by name via pdfcpu's form JSON.
func (s *DefaultPDFService) fillTemplate(templatePath string, fields map[string]string) ([]byte, error) {
	f, err := os.Open(templatePath)
	if err != nil {
		return nil, fmt.Errorf("open template: %w", err)
	}
	defer f.Close()

	formData, err := json.Marshal(formFillData(fields))
	if err != nil {
		return nil, err
	}

	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed

	var buf bytes.Buffer
	if err := api.FillForm(f, bytes.NewReader(formData), &buf, conf); err != nil {
		return nil, fmt.Errorf("fill form: %w", err)
	}
	return buf.Bytes(), nil
}

type formTextField struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type formPage struct {
	TextField []formTextField `json:"textfield"`
}

type formFile struct {
	Forms []formPage `json:"forms"`
}

// formFillData builds pdfcpu's form-fill JSON with one text field entry per
// provided value, in deterministic order.
func formFillData(fields map[string]string) formFile {
	names := sortedKeys(fields)
	tf := make([]formTextField, 0, len(names))
	for _, name := range names {
		tf = append(tf, formTextField{Name: name, Value: fields[name]})
	}
	return formFile{Forms: []formPage{{TextField: tf}}}
}

type createText struct {
	Value    string     `json:"value"`
	Position [2]float64 `json:"position"`
	Font     createFont `json:"font"`
}

type createFont struct {
	Name string  `json:"name"`
	Size float64 `json:"size"`
}

type createContent struct {
	Text []createText `json:"text"`
}

type createPage struct {
	Content createContent `json:"content"`
}

type createFile struct {
	Pages map[string]createPage `json:"pages"`
}

// generateSummary builds a simple field-listing PDF through pdfcpu's
// create-from-JSON API.
func (s *DefaultPDFService) generateSummary(fields map[string]string) ([]byte, error) {
	texts := []createText{{
		Value:    "Personal Information Form",
		Position: [2]float64{50, 742},
		Font:     createFont{Name: "Helvetica-Bold", Size: 16},
	}}

	y := 692.0
	for _, name := range sortedKeys(fields) {
		value := fields[name]
		if value == "" {
			value = "N/A"
		}
		texts = append(texts,
			createText{
				Value:    displayName(name) + ":",
				Position: [2]float64{50, y},
				Font:     createFont{Name: "Helvetica-Bold", Size: 12},
			},
			createText{
				Value:    value,
				Position: [2]float64{250, y},
				Font:     createFont{Name: "Helvetica", Size: 12},
			},
		)
		y -= 30
		if y < 50 {
			break
		}
	}

	desc, err := json.Marshal(createFile{
		Pages: map[string]createPage{"1": {Content: createContent{Text: texts}}},
	})
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := api.Create(nil, bytes.NewReader(desc), &buf, model.NewDefaultConfiguration()); err != nil {
		return nil, fmt.Errorf("generate pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// CreateSampleTemplate writes a labeled sample form to the templates
// directory unless one already exists.
func (s *DefaultPDFService) CreateSampleTemplate() error {
	templatePath := filepath.Join(s.TemplatesDir, "sample_form.pdf")
	if _, err := os.Stat(templatePath); err == nil {
		return nil
	}
	if err := os.MkdirAll(s.TemplatesDir, 0o755); err != nil {
		return err
	}

	labels := []string{"Full Name", "Date of Birth", "Address", "ID Number", "Expiry Date"}
	texts := []createText{{
		Value:    "Sample Application Form",
		Position: [2]float64{200, 742},
		Font:     createFont{Name: "Helvetica-Bold", Size: 18},
	}}
	y := 672.0
	for _, label := range labels {
		texts = append(texts, createText{
			Value:    label + ":  ______________________________",
			Position: [2]float64{50, y},
			Font:     createFont{Name: "Helvetica", Size: 12},
		})
		y -= 20
	}

	desc, err := json.Marshal(createFile{
		Pages: map[string]createPage{"1": {Content: createContent{Text: texts}}},
	})
	if err != nil {
		return err
	}

	out, err := os.Create(templatePath)
	if err != nil {
		return err
	}
	defer out.Close()

	return api.Create(nil, bytes.NewReader(desc), out, model.NewDefaultConfiguration())
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// displayName turns "full_name" into "Full Name".
func displayName(field string) string {
	words := strings.Split(field, "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
