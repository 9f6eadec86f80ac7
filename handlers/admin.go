package handlers

import (
	"net/http"

	profileRepo "idvault/database/repository/profile"
	"idvault/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AdminHandler exposes operational views over the profile store.
type AdminHandler struct {
	Repo profileRepo.Repository
}

func NewAdminHandler(repo profileRepo.Repository) *AdminHandler {
	return &AdminHandler{Repo: repo}
}

// ListProfilesHandler handles GET /api/admin/profiles. Only IDs are exposed;
// field values stay behind consent tokens.
func (h *AdminHandler) ListProfilesHandler(c *gin.Context) {
	ids, err := h.Repo.ListIDs(c.Request.Context())
	if err != nil {
		utils.GetLogger().Error("profile listing failed", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Failed to list profiles", "")
		return
	}
	if ids == nil {
		ids = []string{}
	}
	c.JSON(http.StatusOK, gin.H{"profiles": ids, "count": len(ids)})
}
