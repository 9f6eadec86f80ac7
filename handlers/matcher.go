package handlers

import (
	"errors"
	"net/http"

	profileRepo "idvault/database/repository/profile"
	"idvault/services/matcher"
	"idvault/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// MatchRequest is the JSON payload for POST /match.
type MatchRequest struct {
	ProfileID string `json:"profile_id" binding:"required"`
	FullName  string `json:"full_name"`
	Address   string `json:"address"`
}

// MatchHandler handles similarity matching requests.
type MatchHandler struct {
	Service matcher.Service
}

func NewMatchHandler(svc matcher.Service) *MatchHandler {
	return &MatchHandler{Service: svc}
}

func (h *MatchHandler) MatchHandler(c *gin.Context) {
	logger := utils.GetLogger()

	var req MatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid JSON payload", err.Error())
		return
	}

	result, err := h.Service.Match(c.Request.Context(), req.ProfileID, req.FullName, req.Address)
	if err != nil {
		if errors.Is(err, profileRepo.ErrNotFound) {
			utils.JSONError(c, http.StatusNotFound, "Profile not found", req.ProfileID)
			return
		}
		logger.Error("match failed", zap.String("profileID", req.ProfileID), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Match failed", err.Error())
		return
	}

	c.JSON(http.StatusOK, result)
}
