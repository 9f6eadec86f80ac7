package handlers

import (
	"errors"
	"net/http"
	"time"

	profileRepo "idvault/database/repository/profile"
	"idvault/services/consent"
	"idvault/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ConsentCreateRequest is the JSON payload for POST /consent/create.
type ConsentCreateRequest struct {
	ProfileID     string   `json:"profile_id" binding:"required"`
	FieldsAllowed []string `json:"fields_allowed" binding:"required"`
}

// ConsentCreateResponse carries the issued token and its expiry.
type ConsentCreateResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// ConsentHandler handles consent token issuance and redemption.
type ConsentHandler struct {
	Service consent.Service
}

func NewConsentHandler(svc consent.Service) *ConsentHandler {
	return &ConsentHandler{Service: svc}
}

// CreateConsentHandler handles POST /consent/create.
func (h *ConsentHandler) CreateConsentHandler(c *gin.Context) {
	logger := utils.GetLogger()

	var req ConsentCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid JSON payload", err.Error())
		return
	}

	token, expiresAt, err := h.Service.Issue(req.ProfileID, req.FieldsAllowed, 0)
	if err != nil {
		if errors.Is(err, consent.ErrValidation) {
			utils.JSONError(c, http.StatusUnprocessableEntity, "Invalid consent request", err.Error())
			return
		}
		logger.Error("consent issuance failed", zap.String("profileID", req.ProfileID), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Failed to create consent token", err.Error())
		return
	}

	c.JSON(http.StatusOK, ConsentCreateResponse{Token: token, ExpiresAt: expiresAt})
}

// RedeemConsentHandler handles GET /consent/redeem?token=...
func (h *ConsentHandler) RedeemConsentHandler(c *gin.Context) {
	logger := utils.GetLogger()

	token := c.Query("token")
	if token == "" {
		utils.JSONError(c, http.StatusBadRequest, "Missing token", "token query parameter is required")
		return
	}

	fields, err := h.Service.Redeem(c.Request.Context(), token)
	if err != nil {
		switch {
		case errors.Is(err, consent.ErrMalformedToken):
			utils.JSONError(c, http.StatusBadRequest, "Malformed consent token", "")
		case errors.Is(err, consent.ErrInvalidSignature):
			utils.JSONError(c, http.StatusUnauthorized, "Invalid consent token", "")
		case errors.Is(err, consent.ErrTokenExpired):
			utils.JSONError(c, http.StatusUnauthorized, "Consent token has expired", "")
		case errors.Is(err, profileRepo.ErrNotFound):
			utils.JSONError(c, http.StatusNotFound, "Profile not found", "")
		default:
			logger.Error("consent redemption failed", zap.Error(err))
			utils.JSONError(c, http.StatusInternalServerError, "Failed to redeem consent token", "")
		}
		return
	}

	c.JSON(http.StatusOK, fields)
}
