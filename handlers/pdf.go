package handlers

import (
	"errors"
	"net/http"

	"idvault/services/pdf"
	"idvault/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// PDFPrefillRequest is the JSON payload for POST /prefill-pdf.
type PDFPrefillRequest struct {
	FormType string            `json:"form_type" binding:"required"`
	Fields   map[string]string `json:"fields" binding:"required"`
}

// PDFHandler handles PDF form prefill requests.
type PDFHandler struct {
	Service pdf.Service
}

func NewPDFHandler(svc pdf.Service) *PDFHandler {
	return &PDFHandler{Service: svc}
}

func (h *PDFHandler) PrefillPDFHandler(c *gin.Context) {
	logger := utils.GetLogger()

	var req PDFPrefillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid JSON payload", err.Error())
		return
	}

	logger.Info("processing pdf prefill request",
		zap.String("formType", req.FormType),
		zap.Int("fields", len(req.Fields)))

	out, err := h.Service.FillForm(c.Request.Context(), req.FormType, req.Fields)
	if err != nil {
		if errors.Is(err, pdf.ErrInvalidFormType) {
			utils.JSONError(c, http.StatusBadRequest, "Invalid form type", req.FormType)
			return
		}
		logger.Error("pdf generation failed", zap.String("formType", req.FormType), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "PDF generation failed", err.Error())
		return
	}

	c.Header("Content-Disposition", "attachment; filename="+req.FormType+"_filled.pdf")
	c.Data(http.StatusOK, "application/pdf", out)
}
