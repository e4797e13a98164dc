package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/sellside/comps/internal/config"
	"github.com/sellside/comps/internal/db"
	dbMemory "github.com/sellside/comps/internal/db/memory"
	dbRedis "github.com/sellside/comps/internal/db/redis"
	"github.com/sellside/comps/internal/domain"
	logpkg "github.com/sellside/comps/internal/logger"
	"github.com/sellside/comps/internal/metrics"
	compsrepo "github.com/sellside/comps/internal/repository/comps"
	chiTransport "github.com/sellside/comps/internal/transport/chi"
	"github.com/sellside/comps/internal/transport/llm"
	openaiEmb "github.com/sellside/comps/internal/transport/openai"
	compsuc "github.com/sellside/comps/internal/usecase/comps"
	"github.com/sellside/comps/internal/usecase/retrieve"
	"github.com/sellside/comps/internal/usecase/score"
	"github.com/sellside/comps/internal/version"
)

func main() {
	// Load configuration based on ENV
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting comps API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("db_driver", cfg.Database.Driver),
		zap.Strings("db_addrs", cfg.Database.Addrs),
	)

	// Create vector store based on driver
	var store db.Store
	switch cfg.Database.Driver {
	case "redis":
		store, err = dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.Database.Addrs,
			Password: cfg.Database.Password,
		})
	case "memory":
		store = dbMemory.NewStore(dbMemory.Config{})
	default:
		logger.Fatal("Unknown database driver", zap.String("driver", cfg.Database.Driver))
	}
	if err != nil {
		logger.Fatal("Failed to create database store", zap.Error(err))
	}
	defer store.Close()

	ctx := context.Background()
	if err := store.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
		logger.Fatal("Database not ready", zap.Error(err))
	}
	logger.Info("Connected to database")

	metrics.RegisterEmbeddingMetrics()
	metrics.RegisterRetrievalMetrics()

	// TLD family table: config override or the built-in one
	families := domain.DefaultFamilies()
	if len(cfg.Families) > 0 {
		families, err = domain.NewFamilies(cfg.Families)
		if err != nil {
			logger.Fatal("Invalid TLD family table", zap.Error(err))
		}
	}

	embedder := openaiEmb.NewEmbedder(&openaiEmb.Config{
		APIKey:     cfg.Embedding.APIKey,
		BaseURL:    cfg.Embedding.BaseURL,
		Model:      cfg.Embedding.Model,
		Dimensions: cfg.Embedding.Dimensions,
		Provider:   cfg.Embedding.Provider,
		Logger:     logger,
	})
	logger.Info("Embedder created",
		zap.String("provider", cfg.Embedding.Provider),
		zap.String("model", cfg.Embedding.Model),
		zap.Int("dimensions", cfg.Embedding.Dimensions),
	)

	enricher, err := llm.NewEnricher(&llm.Config{
		APIKey:  cfg.Enrichment.APIKey,
		BaseURL: cfg.Enrichment.BaseURL,
		Model:   cfg.Enrichment.Model,
		Logger:  logger,
	})
	if err != nil {
		logger.Fatal("Failed to create enrichment client", zap.Error(err))
	}

	// Composition root: repo -> gateway -> retriever -> scorer -> pipeline
	repo := compsrepo.New(store, cfg.Database.IndexName)
	gateway := retrieve.NewGateway(repo, embedder)
	retriever := retrieve.New(gateway, families, retrieve.Config{
		ResultsPerQuery:  cfg.Retrieval.ResultsPerQuery,
		LengthBand:       cfg.Retrieval.LengthBand,
		TLDFallback:      *cfg.Retrieval.TLDFallback,
		MinResults:       cfg.Retrieval.MinResults,
		NumericFilter:    *cfg.Retrieval.NumericFilter,
		NumericThreshold: cfg.Retrieval.NumericThreshold,
	}, logger)

	bands := make([]score.RecencyBand, len(cfg.Scoring.RecencyBands))
	for i, b := range cfg.Scoring.RecencyBands {
		bands[i] = score.RecencyBand{MaxAgeDays: b.MaxAgeDays, Weight: b.Weight}
	}
	scorer := score.New(score.Config{
		Weights: score.Weights{
			Semantic: cfg.Scoring.SemanticWeight,
			Category: cfg.Scoring.CategoryWeight,
			Recency:  cfg.Scoring.RecencyWeight,
		},
		MinScore:     cfg.Scoring.MinScore,
		TopK:         cfg.Scoring.TopK,
		RecencyBands: bands,
		OldestWeight: cfg.Scoring.OldestWeight,
	}, families, logger)

	pipeline := compsuc.New(enricher, retriever, scorer, logger)

	server := chiTransport.NewServer(pipeline, logger)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      server.Routes(cfg.Auth.APIKeys),
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}
