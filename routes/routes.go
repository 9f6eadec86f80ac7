package routes

import (
	"net/http"
	"time"

	"idvault/handlers"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterExtractionRoutes registers the document extraction endpoint.
func RegisterExtractionRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.POST("/extract", hb.ExtractHandler)
}

// RegisterMatcherRoutes registers the similarity matching endpoint.
func RegisterMatcherRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.POST("/match", hb.MatchHandler)
}

// RegisterConsentRoutes registers consent token issuance and redemption.
func RegisterConsentRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/consent")
	{
		api.POST("/create", hb.CreateConsentHandler)
		api.GET("/redeem", hb.RedeemConsentHandler)
	}
}

// RegisterSearchRoutes registers the typeahead search endpoint.
func RegisterSearchRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.GET("/search", hb.SearchHandler)
}

// RegisterPDFRoutes registers the PDF prefill endpoint.
func RegisterPDFRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.POST("/prefill-pdf", hb.PrefillPDFHandler)
}

// RegisterAdminRoutes sets up endpoints for admin operations.
func RegisterAdminRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	adminGroup := r.Group("/api/admin")
	{
		adminGroup.GET("/profiles", hb.ListProfilesHandler)
	}
}

// RegisterHealthRoute registers health and service-info endpoints.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"service": "idvault",
			"status":  "running",
			"endpoints": gin.H{
				"extract":        "POST /extract - Extract PII from documents",
				"match":          "POST /match - Match PII using similarity",
				"prefill-pdf":    "POST /prefill-pdf - Fill PDF forms",
				"consent_create": "POST /consent/create - Create consent token",
				"consent_redeem": "GET /consent/redeem - Redeem consent token",
				"search":         "GET /search - Semantic search",
			},
		})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	// Setup global middleware (e.g., CORS) here.
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterExtractionRoutes(r, hb)
	RegisterMatcherRoutes(r, hb)
	RegisterConsentRoutes(r, hb)
	RegisterSearchRoutes(r, hb)
	RegisterPDFRoutes(r, hb)
	RegisterAdminRoutes(r, hb)
	RegisterHealthRoute(r)
}
