package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/conflictcheck/namecheck/api"
	"github.com/conflictcheck/namecheck/config"
	"github.com/conflictcheck/namecheck/internal/analytics"
	"github.com/conflictcheck/namecheck/internal/classifier"
	"github.com/conflictcheck/namecheck/internal/pipeline"
	"github.com/conflictcheck/namecheck/store"
)

func main() {
	// Define command-line flags
	var (
		help        = flag.Bool("help", false, "Show help message")
		version     = flag.Bool("version", false, "Show version information")
		port        = flag.String("port", "3001", "Port to run the server on")
		recordsFile = flag.String("records", "", "JSON or YAML file with reference records to load at startup")
		model       = flag.String("model", "", "Classifier model identifier (default: claude-sonnet-4-20250514)")
		timeout     = flag.Duration("classifier-timeout", 0, "Classifier request timeout (default: 30s)")
	)

	flag.Parse()

	// Handle help flag
	if *help {
		fmt.Printf("Name Check API - conflict-checking name matching with tiered classification\n\n")
		fmt.Printf("Usage: %s [options]\n\n", os.Args[0])
		fmt.Printf("Options:\n")
		flag.PrintDefaults()
		fmt.Printf("\nExamples:\n")
		fmt.Printf("  %s                                # Start server on default port 3001\n", os.Args[0])
		fmt.Printf("  %s --port 9000                    # Start server on port 9000\n", os.Args[0])
		fmt.Printf("  %s --records ./clients.yaml       # Preload reference records\n", os.Args[0])
		return
	}

	// Handle version flag
	if *version {
		fmt.Printf("Name Check API v1.0.0\n")
		fmt.Printf("Deterministic pre-filtering with tiered semantic classification\n")
		return
	}

	settings := config.Settings{}
	settings.Classifier.APIKey = os.Getenv("ANTHROPIC_API_KEY")
	settings.Classifier.Model = *model
	settings.Classifier.Timeout = *timeout
	settings.ApplyDefaults()

	if problems := settings.Validate(); len(problems) > 0 {
		log.Fatalf("Invalid settings: %v", problems)
	}
	if settings.Classifier.APIKey == "" {
		log.Fatal("ANTHROPIC_API_KEY is not set")
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	referenceStore := store.NewReferenceStore()
	if *recordsFile != "" {
		if err := referenceStore.LoadFile(*recordsFile); err != nil {
			log.Fatalf("Failed to load reference records: %v", err)
		}
		log.Printf("Loaded %d reference records from %s", referenceStore.Count(), *recordsFile)
	}

	analyticsService := analytics.NewService()
	tierClassifier := classifier.New(settings.Classifier, logger)
	checkPipeline := pipeline.New(settings, tierClassifier,
		pipeline.WithEventTracker(analyticsService),
		pipeline.WithLogger(logger))

	// Initialize Gin router
	router := gin.Default()

	// Setup API routes
	api.SetupRoutes(router, checkPipeline, referenceStore, analyticsService)

	// Start the server
	log.Printf("Starting name-check server on port %s (classifier timeout %s)...",
		*port, settings.Classifier.Timeout.Round(time.Second))
	if err := router.Run(":" + *port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
