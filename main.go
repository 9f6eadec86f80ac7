package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"idvault/config"
	"idvault/database"
	profileRepo "idvault/database/repository/profile"
	"idvault/handlers"
	"idvault/middleware"
	"idvault/routes"
	"idvault/services/consent"
	"idvault/services/embedding"
	"idvault/services/extraction"
	"idvault/services/matcher"
	"idvault/services/pdf"
	search "idvault/services/search"
	"idvault/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	// Profile store.
	var repo profileRepo.Repository
	switch config.AppConfig.StorageBackend {
	case "mongo":
		database.InitDB()
		repo = profileRepo.NewMongoProfileRepo()
	default:
		repo = profileRepo.NewMemoryProfileRepo()
	}

	// Embedder: Ollama when a server is configured, deterministic local
	// fallback otherwise.
	var embedder embedding.Embedder
	if config.AppConfig.EmbedBaseURL != "" {
		ollamaEmbedder, err := embedding.NewOllamaEmbedder(
			config.AppConfig.EmbedModel,
			config.AppConfig.EmbedBaseURL,
			config.AppConfig.EmbedDim,
		)
		if err != nil {
			logger.Sugar().Fatalf("main: failed to initialize embedder: %v", err)
		}
		embedder = ollamaEmbedder
	} else {
		logger.Sugar().Warn("main: no embedding server configured, using local trigram embedder")
		embedder = embedding.NewHashEmbedder(config.AppConfig.EmbedDim)
	}
	if config.AppConfig.EmbedCacheEnabled {
		embedder = embedding.NewCachedEmbedder(
			embedder,
			utils.GetCacheClient(),
			time.Duration(config.AppConfig.EmbedCacheTTLMin)*time.Minute,
		)
	}

	// Document extractor: Gemini Vision when a key is configured.
	var extractor extraction.Extractor
	if config.AppConfig.GeminiAPIKey != "" {
		geminiExtractor, err := extraction.NewGeminiExtractor(config.AppConfig.GeminiAPIKey)
		if err != nil {
			logger.Sugar().Fatalf("main: failed to initialize gemini extractor: %v", err)
		}
		extractor = geminiExtractor
	} else {
		logger.Sugar().Warn("main: no AI provider configured, using mock extraction")
		extractor = extraction.MockExtractor{}
	}

	// Services.
	extractionService := &extraction.DefaultExtractionService{
		Extractor: extractor,
		Embedder:  embedder,
		Repo:      repo,
	}
	matcherService := &matcher.DefaultMatcherService{
		Repo:     repo,
		Embedder: embedder,
		Weights: matcher.Weights{
			Name:    config.AppConfig.NameWeight,
			Address: config.AppConfig.AddressWeight,
		},
		Thresholds: matcher.Thresholds{
			Match:   config.AppConfig.OverallMatchThreshold,
			NoMatch: config.AppConfig.NoMatchThreshold,
		},
	}
	consentService := &consent.DefaultConsentService{
		Repo:       repo,
		Secret:     []byte(config.AppConfig.JWTSecret),
		DefaultTTL: time.Duration(config.AppConfig.ConsentTTLMinutes) * time.Minute,
	}
	searchService := &search.DefaultSearchService{
		Repo:     repo,
		Embedder: embedder,
	}
	pdfService := &pdf.DefaultPDFService{
		TemplatesDir: config.AppConfig.TemplatesDir,
	}
	if err := pdfService.CreateSampleTemplate(); err != nil {
		logger.Sugar().Warnf("main: failed to create sample template: %v", err)
	}

	// Handlers.
	extractionHandler := handlers.NewExtractionHandler(extractionService)
	matchHandler := handlers.NewMatchHandler(matcherService)
	consentHandler := handlers.NewConsentHandler(consentService)
	searchHandler := handlers.NewSearchHandler(searchService)
	pdfHandler := handlers.NewPDFHandler(pdfService)
	adminHandler := handlers.NewAdminHandler(repo)

	handlerBundle := &handlers.HandlerBundle{
		ExtractHandler:       extractionHandler.ExtractHandler,
		MatchHandler:         matchHandler.MatchHandler,
		CreateConsentHandler: consentHandler.CreateConsentHandler,
		RedeemConsentHandler: consentHandler.RedeemConsentHandler,
		SearchHandler:        searchHandler.SearchHandler,
		PrefillPDFHandler:    pdfHandler.PrefillPDFHandler,
		ListProfilesHandler:  adminHandler.ListProfilesHandler,
	}

	// Create the Gin router.
	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(middleware.RequestLoggerMiddleware())
	router.Use(middleware.RateLimitMiddleware())

	routes.RegisterRoutes(router, handlerBundle)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
