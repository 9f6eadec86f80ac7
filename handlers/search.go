package handlers

import (
	"net/http"
	"strconv"

	"idvault/models"
	search "idvault/services/search"
	"idvault/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SearchResponse is the typeahead response payload.
type SearchResponse struct {
	Query   string                `json:"query"`
	Results []models.SearchResult `json:"results"`
}

// SearchHandler handles semantic profile search.
type SearchHandler struct {
	Service search.Service
}

func NewSearchHandler(svc search.Service) *SearchHandler {
	return &SearchHandler{Service: svc}
}

// SearchHandler handles GET /search?query=...&limit=...
func (h *SearchHandler) SearchHandler(c *gin.Context) {
	query := c.Query("query")
	if query == "" {
		utils.JSONError(c, http.StatusBadRequest, "Missing query", "query parameter is required")
		return
	}

	limit := search.DefaultLimit
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > search.MaxLimit {
			utils.JSONError(c, http.StatusBadRequest, "Invalid limit", raw)
			return
		}
		limit = parsed
	}

	results, err := h.Service.Search(c.Request.Context(), query, limit)
	if err != nil {
		utils.GetLogger().Error("search failed", zap.String("query", query), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Search failed", err.Error())
		return
	}
	if results == nil {
		results = []models.SearchResult{}
	}

	c.JSON(http.StatusOK, SearchResponse{Query: query, Results: results})
}
