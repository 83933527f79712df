package main

import (
	"fmt"
	"log"
	"os"

	"github.com/shelfscan/backend/config"
	httpDelivery "github.com/shelfscan/backend/internal/delivery/http"
	"github.com/shelfscan/backend/internal/domain"
	"github.com/shelfscan/backend/internal/extract"
	"github.com/shelfscan/backend/internal/infrastructure/cache"
	"github.com/shelfscan/backend/internal/infrastructure/dealstore"
	"github.com/shelfscan/backend/internal/metrics"
	"github.com/shelfscan/backend/internal/search"
	"github.com/shelfscan/backend/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Printf("Starting ShelfScan Backend v1.0.0")
	log.Printf("Environment: %s", cfg.Server.Environment)
	log.Printf("Port: %s", cfg.Server.Port)
	log.Printf("Cache: %s (TTL %s)", cfg.Cache.Type, cfg.Cache.TTL)

	debug := cfg.Matching.EnableDebugLogging || cfg.Server.Environment == "development"

	// Metrics registry shared by the pipeline and the /metrics endpoint
	m := metrics.New()

	// Deal cache: in-memory by default, SQLite when persistence is wanted
	var dealCache domain.DealCache
	if cfg.Cache.Type == "sqlite" {
		store, err := dealstore.Open(cfg.Cache.Path)
		if err != nil {
			log.Fatalf("Failed to open deal store at %s: %v", cfg.Cache.Path, err)
		}
		defer store.Close()
		dealCache = store
		log.Printf("Deal store: %s", cfg.Cache.Path)
	} else {
		dealCache = cache.NewMemoryDealCache()
	}

	// Search index client
	searchClient := search.NewClient(cfg.Search.APIKey, cfg.Search.BaseURL, cfg.Search.RequestsPerHour)
	if debug {
		searchClient.SetDebug(true)
		log.Printf("Search client debug mode enabled")
	}
	log.Printf("Search index: %s (%d domains allow-listed)", cfg.Search.BaseURL, len(cfg.Search.AllowedDomains))

	// Price extraction over fetched candidate pages
	fetcher := extract.NewFetcher(cfg.Fetch.Timeout, cfg.Fetch.UserAgent)
	extractor := extract.NewExtractor(fetcher, m, debug)

	// Initialize usecase layer
	dealService := usecase.NewDealService(
		dealCache,
		searchClient,
		extractor,
		m,
		usecase.DealServiceConfig{
			CacheTTL:           cfg.Cache.TTL,
			PassThreshold:      cfg.Matching.PassThreshold,
			MaxSearchResults:   cfg.Search.MaxResults,
			FetchConcurrency:   cfg.Fetch.Concurrency,
			PipelineDeadline:   cfg.Fetch.PipelineDeadline,
			AllowedDomains:     cfg.Search.AllowedDomains,
			EnableDebugLogging: debug,
		},
	)

	log.Printf("Matching: threshold=%.1f, debug=%v", cfg.Matching.PassThreshold, debug)
	log.Printf("Fetch: concurrency=%d, timeout=%s, deadline=%s",
		cfg.Fetch.Concurrency, cfg.Fetch.Timeout, cfg.Fetch.PipelineDeadline)

	// Create HTTP handler with dependencies
	handler := httpDelivery.NewHandler(dealService)

	// Setup router
	router := httpDelivery.SetupRouter(cfg, handler, m)

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
