package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/kumarnilima1512-bit/redcat-chatbot/internal/api"
	"github.com/kumarnilima1512-bit/redcat-chatbot/internal/config"
	"github.com/kumarnilima1512-bit/redcat-chatbot/internal/core"
	"github.com/kumarnilima1512-bit/redcat-chatbot/internal/gemini"
	"github.com/kumarnilima1512-bit/redcat-chatbot/internal/notion"
	"github.com/kumarnilima1512-bit/redcat-chatbot/internal/store"
	"github.com/kumarnilima1512-bit/redcat-chatbot/internal/webfetch"
)

func main() {
	// Load configuration
	config.LoadConfig()

	logger, err := buildLogger(config.AppConfig.LogLevel)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// Optional collaborators: the pipeline degrades gracefully when either
	// is absent, so neither is fatal at startup.
	var knowledgeBase *core.KnowledgeBase
	var notionClient *notion.Client
	if config.AppConfig.HasNotion() {
		notionClient = notion.NewClient(
			config.AppConfig.NotionAPIKey,
			config.AppConfig.NotionFAQDatabaseID,
			config.AppConfig.NotionServicesDatabaseID,
			config.AppConfig.NotionCompanyInfoDatabaseID,
			logger,
		)
		knowledgeBase = core.NewKnowledgeBase(notionClient, logger)
	}

	var generator *gemini.Client
	if config.AppConfig.HasGemini() {
		generator, err = gemini.NewClient(context.Background(), config.AppConfig.GeminiAPIKey, config.AppConfig.GeminiModel, logger)
		if err != nil {
			logger.Fatal("failed to initialize Gemini client", zap.Error(err))
		}
		defer generator.Close()
	}

	// Interaction log, disabled when DATABASE_URL is empty.
	var dbStore *store.SQLiteStore
	if config.AppConfig.DatabaseURL != "" {
		dbStore, err = store.NewSQLiteStore(config.AppConfig.DatabaseURL)
		if err != nil {
			logger.Fatal("failed to initialize database", zap.Error(err))
		}
		defer dbStore.Close()
	}

	fetcher := webfetch.NewFetcher(config.AppConfig.ProxyURL, logger)

	// The Generator interface is satisfied by *gemini.Client; a typed nil
	// must not reach the arbitrator.
	var coreGenerator core.Generator
	var directGenerator api.DirectGenerator
	if generator != nil {
		coreGenerator = generator
		directGenerator = generator
	}

	arbitrator := core.NewArbitrator(knowledgeBase, coreGenerator, logger)

	apiHandler := api.NewAPIHandler(arbitrator, notionClient, directGenerator, fetcher, dbStore, logger)
	router := api.NewRouter(apiHandler, logger)

	serverAddr := fmt.Sprintf(":%s", config.AppConfig.HTTPPort)

	srv := &http.Server{
		Addr:         serverAddr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second, // Gemini calls can take time
		IdleTimeout:  120 * time.Second,
	}

	// Graceful shutdown handling
	go func() {
		logger.Info("starting server", zap.String("addr", serverAddr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("could not listen", zap.String("addr", serverAddr), zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	// Give active connections time to finish.
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("server forced to shutdown", zap.Error(err))
	}

	logger.Info("server exiting gracefully")
}

func buildLogger(level string) (*zap.Logger, error) {
	if level == "DEBUG" {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
