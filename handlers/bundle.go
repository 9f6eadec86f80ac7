package handlers

import "github.com/gin-gonic/gin"

// HandlerBundle aggregates all route handlers for registration.
type HandlerBundle struct {
	// Extraction endpoints.
	ExtractHandler gin.HandlerFunc

	// Matching endpoints.
	MatchHandler gin.HandlerFunc

	// Consent endpoints.
	CreateConsentHandler gin.HandlerFunc
	RedeemConsentHandler gin.HandlerFunc

	// Search endpoints.
	SearchHandler gin.HandlerFunc

	// PDF endpoints.
	PrefillPDFHandler gin.HandlerFunc

	// Admin endpoints.
	ListProfilesHandler gin.HandlerFunc
}
