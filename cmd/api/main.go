package main

import (
	"context"
	"log"
	"log/slog"
	nethttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"groupscope/internal/analyzer"
	"groupscope/internal/config"
	"groupscope/internal/extractor"
	"groupscope/internal/groups"
	"groupscope/internal/http"
	"groupscope/internal/indexer"
	"groupscope/internal/llm"
	"groupscope/internal/storage"
	"groupscope/internal/vectorstore"
	"groupscope/internal/workspace"
)

func main() {
	// Load configuration first (needed for log level)
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Configure structured logging with configurable level and format
	opts := &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}
	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	slog.SetDefault(slog.New(handler))

	// Initialize snapshot database (shared) and favorites database (user-scoped)
	db, err := storage.New(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer func() {
		_ = db.Close()
	}()
	if err := storage.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	favDB, err := storage.New(cfg.FavoritesDBPath)
	if err != nil {
		log.Fatalf("Failed to open favorites database: %v", err)
	}
	defer func() {
		_ = favDB.Close()
	}()
	if err := storage.MigrateFavorites(favDB); err != nil {
		log.Fatalf("Failed to run favorites migrations: %v", err)
	}
	slog.Info("Databases initialized", "snapshot", cfg.DBPath, "favorites", cfg.FavoritesDBPath)

	snapshotRepo := storage.NewSnapshotRepo(db)
	favoriteRepo := storage.NewFavoriteRepo(favDB)

	// The index is constructed and owned here; every layer receives it
	// explicitly rather than reaching for process-global state.
	index := groups.NewIndex()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Restore persisted state. Load failure is soft: log and start from a
	// fresh scan instead.
	if snapshot, err := snapshotRepo.Load(ctx); err != nil {
		slog.Warn("Failed to load snapshot, starting fresh", "error", err)
	} else if len(snapshot) > 0 {
		index.Restore(snapshot)
		slog.Info("Snapshot restored", "functionalities", len(index.DistinctFunctionalities()))
	}
	if favorites, err := favoriteRepo.Load(ctx); err != nil {
		slog.Warn("Failed to load favorites", "error", err)
	} else {
		index.ApplyFavorites(favorites)
	}

	// Initialize workspace manager and scan pipeline
	ws, err := workspace.NewManager(cfg.WorkspaceRoots, cfg.IgnorePatterns)
	if err != nil {
		log.Fatalf("Failed to initialize workspace manager: %v", err)
	}
	slog.Info("Workspace manager initialized", "roots", len(ws.Roots()))

	pipeline := indexer.NewPipeline(ws, extractor.NewRegistry(), index)

	// Select the similarity oracle at composition time
	var oracle analyzer.SimilarityOracle = analyzer.StringOracle{}
	if cfg.OracleMode == config.OracleEmbedding {
		vectorStore, err := vectorstore.NewQdrantStore(cfg.QdrantURL)
		if err != nil {
			log.Fatalf("Failed to create Qdrant client: %v", err)
		}
		if err := vectorStore.EnsureCollection(ctx, cfg.QdrantCollection, cfg.QdrantVectorSize); err != nil {
			log.Fatalf("Failed to ensure Qdrant collection: %v", err)
		}
		embedder := llm.NewEmbeddingsClient(cfg.EmbeddingBaseURL, cfg.EmbeddingAPIKey, cfg.EmbeddingModelName, cfg.QdrantVectorSize)
		oracle = analyzer.NewEmbeddingOracle(embedder, vectorStore, cfg.QdrantCollection)
		slog.Info("Embedding oracle ready", "collection", cfg.QdrantCollection, "vector_size", cfg.QdrantVectorSize)
	}
	engine := analyzer.NewEngine(index, oracle, cfg.SimilarityThreshold)

	// Throttled persistence: at most one write per window, flushed on shutdown
	persister := storage.NewPersister(index, snapshotRepo, favoriteRepo, cfg.PersistWindow)
	go persister.Run(ctx)

	// Initial workspace scan in the background after the router is ready
	go func() {
		slog.Info("Starting initial workspace scan")
		if _, err := pipeline.ScanAll(ctx); err != nil {
			slog.Error("Initial scan completed with errors", "error", err)
		}
	}()

	router := http.NewRouter(&http.Deps{
		Index:    index,
		Pipeline: pipeline,
		Engine:   engine,
	})

	addr := ":" + cfg.APIPort
	server := &nethttp.Server{Addr: addr, Handler: router}

	go func() {
		slog.Info("Starting API server", "addr", addr)
		if err := server.ListenAndServe(); err != nil && err != nethttp.ErrServerClosed {
			log.Fatalf("API server failed to start: %v", err)
		}
	}()

	<-ctx.Done()
	slog.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Warn("Server shutdown failed", "error", err)
	}
	// Forced flush bypasses the persistence throttle so no mutation is lost.
	if err := persister.Flush(shutdownCtx); err != nil {
		slog.Warn("Final flush failed", "error", err)
	} else {
		slog.Info("Index flushed")
	}
}
