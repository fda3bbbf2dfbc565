package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/MKLambda/uscsearch/internal/config"
	"github.com/MKLambda/uscsearch/internal/corpus"
	"github.com/MKLambda/uscsearch/internal/mcp"
	"github.com/MKLambda/uscsearch/internal/search"
	"github.com/MKLambda/uscsearch/internal/tracker"
)

var (
	version   = "dev"
	buildTime = "unknown"
)

func main() {
	// Handle version flag
	if len(os.Args) > 1 && os.Args[1] == "--version" {
		fmt.Printf("US Code Search MCP Server\n")
		fmt.Printf("Version: %s\n", version)
		fmt.Printf("Build Time: %s\n", buildTime)
		fmt.Printf("Build Mode: %s\n", tracker.BuildMode)
		fmt.Printf("SQLite Driver: %s\n", tracker.DriverName)
		os.Exit(0)
	}

	// Log startup info to stderr (stdout reserved for MCP protocol)
	log.SetOutput(os.Stderr)
	log.Printf("US Code Search MCP Server v%s starting...", version)
	log.Printf("Build Mode: %s, Driver: %s", tracker.BuildMode, tracker.DriverName)

	cfg, err := config.Load(os.Getenv("USCSEARCH_CONFIG"))
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	store, err := corpus.NewDirStore(cfg.DataDir, corpus.Options{
		CacheSize: cfg.Cache.Size,
		CacheTTL:  cfg.CacheTTL(),
	})
	if err != nil {
		log.Fatalf("Failed to open corpus at %s: %v", cfg.DataDir, err)
	}

	tr, err := tracker.Open(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to open tracker database at %s: %v", cfg.DBPath, err)
	}

	engine := search.NewEngine(store, search.Options{
		SnippetWidth: cfg.Search.SnippetWidth,
		SuggestLimit: cfg.Search.SuggestLimit,
		MaxResults:   cfg.Search.MaxResults,
	})

	// Set up graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Warm the cache and record what was ingested before serving
	loaded, err := store.LoadAll(ctx)
	if err != nil {
		log.Fatalf("Failed to load corpus: %v", err)
	}
	for _, lr := range loaded {
		if err := tr.RecordLoad(ctx, lr.TitleNumber, lr.Release, lr.ContentHash, time.Now()); err != nil {
			log.Printf("Warning: failed to record load of title %d: %v", lr.TitleNumber, err)
		}
	}
	log.Printf("Loaded %d titles from %s", len(loaded), cfg.DataDir)

	server := mcp.NewServer(store, engine, tr)

	// Handle shutdown signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	// Start server in a goroutine
	errChan := make(chan error, 1)
	go func() {
		log.Println("MCP server ready, listening on stdio...")
		errChan <- server.Serve(ctx)
	}()

	// Wait for shutdown signal or error
	select {
	case sig := <-sigChan:
		log.Printf("Received signal %v, shutting down gracefully...", sig)
		cancel()
	case err := <-errChan:
		if err != nil {
			log.Fatalf("Server error: %v", err)
		}
	}

	log.Println("Server stopped")
}
