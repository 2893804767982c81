package main

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/kalyan4133/Sales-project/config"
	httpDelivery "github.com/kalyan4133/Sales-project/internal/delivery/http"
	"github.com/kalyan4133/Sales-project/internal/domain"
	"github.com/kalyan4133/Sales-project/internal/infrastructure/cache"
	"github.com/kalyan4133/Sales-project/internal/infrastructure/catalog"
	"github.com/kalyan4133/Sales-project/internal/infrastructure/history"
	"github.com/kalyan4133/Sales-project/internal/infrastructure/llm"
	"github.com/kalyan4133/Sales-project/internal/usecase"
)

func main() {
	// Load .env if present; real deployments set env vars directly
	if err := godotenv.Load(); err == nil {
		log.Printf("Loaded environment from .env")
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Printf("Starting SalesIQ Backend v1.0.0")
	log.Printf("Environment: %s", cfg.Server.Environment)
	log.Printf("Port: %s", cfg.Server.Port)
	log.Printf("LLM provider: %s", cfg.LLM.Provider)

	// Load the data stores
	catalogStore, err := catalog.Load(cfg.Stores.CatalogPath)
	if err != nil {
		log.Fatalf("Failed to load product catalog from %s: %v", cfg.Stores.CatalogPath, err)
	}
	log.Printf("Catalog loaded: %d products from %s", catalogStore.Len(), cfg.Stores.CatalogPath)

	historyStore, err := history.Load(cfg.Stores.HistoryPath)
	if err != nil {
		log.Fatalf("Failed to load purchase history from %s: %v", cfg.Stores.HistoryPath, err)
	}
	log.Printf("History loaded: %d deals from %s", historyStore.Len(), cfg.Stores.HistoryPath)

	// Initialize the extraction backend
	backend, err := llm.New(llm.Config{
		Provider:  cfg.LLM.Provider,
		Model:     cfg.LLM.Model,
		APIKey:    cfg.LLM.APIKey,
		BaseURL:   cfg.LLM.BaseURL,
		MaxTokens: cfg.LLM.MaxTokens,
	})
	if err != nil {
		log.Fatalf("Failed to initialize extraction backend: %v", err)
	}

	// Result cache is optional
	var resultCache domain.CacheRepository
	if cfg.Cache.Enabled {
		resultCache = cache.NewMemoryCache()
		log.Printf("Result cache enabled, TTL: %s", cfg.Cache.TTL)
	}

	// Initialize usecase layer
	extractor := usecase.NewExtractor(backend, usecase.ExtractorConfig{
		RequestTimeout: cfg.LLM.RequestTimeout,
		MaxRetries:     cfg.LLM.MaxRetries,
	})

	matcher := usecase.NewMatcher(usecase.MatchConfig{
		TopK:                 cfg.Matching.TopK,
		ScoreThreshold:       cfg.Matching.ScoreThreshold,
		HistoryBonusCap:      cfg.Matching.HistoryBonusCap,
		ExplicitWeight:       cfg.Matching.ExplicitWeight,
		ImplicitWeight:       cfg.Matching.ImplicitWeight,
		StrictContradictions: cfg.Matching.StrictContradictions,
		EnableDebugLogging:   cfg.Matching.DebugLogging,
	})

	analysisService := usecase.NewAnalysisService(extractor, matcher, resultCache,
		usecase.AnalysisServiceConfig{CacheTTL: cfg.Cache.TTL})
	analysisService.Initialize(catalogStore, historyStore)

	log.Printf("Matching: top_k=%d, threshold=%.1f, strict_contradictions=%v",
		cfg.Matching.TopK, cfg.Matching.ScoreThreshold, cfg.Matching.StrictContradictions)

	// Create HTTP handler with dependencies
	handler := httpDelivery.NewHandler(analysisService)

	// Setup router
	router := httpDelivery.SetupRouter(cfg, handler)

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("Server listening on %s", addr)

	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func init() {
	// Set log flags for better debugging
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.SetOutput(os.Stdout)
}
