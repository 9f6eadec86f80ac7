package handlers

import (
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"idvault/models"
	"idvault/services/extraction"
	"idvault/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Uploads larger than this are rejected before extraction.
const maxDocumentSize = 10 << 20

// ExtractionResponse is the HTTP payload returned after processing a document.
type ExtractionResponse struct {
	ProfileID    string                           `json:"profile_id"`
	DocumentType string                           `json:"document_type"`
	Fields       map[string]models.ExtractedField `json:"fields"`
}

// ExtractionHandler handles document upload and PII extraction.
type ExtractionHandler struct {
	Service extraction.Service
}

func NewExtractionHandler(svc extraction.Service) *ExtractionHandler {
	return &ExtractionHandler{Service: svc}
}

// ExtractHandler handles POST /extract with multipart file, profile_id and
// document_type form values.
func (h *ExtractionHandler) ExtractHandler(c *gin.Context) {
	logger := utils.GetLogger()

	docType := models.DocumentType(c.PostForm("document_type"))
	if !docType.Valid() {
		utils.JSONError(c, http.StatusBadRequest, "Invalid document_type", string(docType))
		return
	}

	profileID := c.PostForm("profile_id")
	if profileID == "" {
		profileID = uuid.New().String()
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Missing file", err.Error())
		return
	}
	if fileHeader.Size > maxDocumentSize {
		utils.JSONError(c, http.StatusRequestEntityTooLarge, "File too large", "")
		return
	}

	content, err := readUpload(fileHeader)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Failed to read file", err.Error())
		return
	}
	if len(content) == 0 {
		utils.JSONError(c, http.StatusBadRequest, "Empty file provided", "")
		return
	}

	logger.Info("processing extraction request",
		zap.String("profileID", profileID),
		zap.String("documentType", string(docType)),
		zap.Int("fileSize", len(content)))

	profile, err := h.Service.ProcessDocument(c.Request.Context(), profileID, content, imageFormat(content), docType)
	if err != nil {
		logger.Error("extraction failed", zap.String("profileID", profileID), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Extraction failed", err.Error())
		return
	}

	c.JSON(http.StatusOK, ExtractionResponse{
		ProfileID:    profile.ID,
		DocumentType: string(docType),
		Fields:       profile.Fields,
	})
}

func readUpload(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(io.LimitReader(f, maxDocumentSize+1))
}

// imageFormat sniffs the upload and returns the format name the vision model
// expects ("jpeg", "png", ...).
func imageFormat(content []byte) string {
	mime := http.DetectContentType(content)
	if strings.HasPrefix(mime, "image/") {
		return strings.TrimPrefix(mime, "image/")
	}
	return "jpeg"
}
