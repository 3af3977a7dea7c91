package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/harmonyhq/harmony-engine/pkg/config"
	"github.com/harmonyhq/harmony-engine/pkg/database"
	"github.com/harmonyhq/harmony-engine/pkg/handlers"
	"github.com/harmonyhq/harmony-engine/pkg/llm"
	"github.com/harmonyhq/harmony-engine/pkg/media"
	"github.com/harmonyhq/harmony-engine/pkg/middleware"
	"github.com/harmonyhq/harmony-engine/pkg/repositories"
	"github.com/harmonyhq/harmony-engine/pkg/services"
	"github.com/harmonyhq/harmony-engine/pkg/services/workqueue"
)

// Version is set at build time via ldflags
var Version = "dev"

func main() {
	cfg, err := config.Load(Version)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := newLogger(cfg.Env)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Configuration loaded",
		zap.String("env", cfg.Env),
		zap.String("version", cfg.Version),
		zap.String("database", cfg.Database.Host),
		zap.Int("workers", cfg.Workers))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.NewConnection(ctx, &database.Config{
		URL:            cfg.Database.ConnectionString(),
		MaxConnections: cfg.Database.MaxConnections,
	})
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if err := db.RunMigrations(cfg.MigrationsPath, logger); err != nil {
		logger.Fatal("Failed to run migrations", zap.Error(err))
	}

	chain, err := buildProviderChain(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("Failed to build provider chain", zap.Error(err))
	}
	if len(chain.Providers()) == 0 {
		logger.Warn("No text provider configured, synthesis requests will fail")
	} else {
		logger.Info("Text providers configured", zap.Strings("providers", chain.Providers()))
	}

	queue := workqueue.New(logger, workqueue.WithMaxConcurrent(cfg.Workers))
	defer queue.Cancel()

	subjectRepo := repositories.NewSubjectRepository(db)
	matchRepo := repositories.NewMatchRepository(db)
	readingRepo := repositories.NewReadingRepository(db)

	images := media.NewFalClient(&media.FalConfig{
		APIKey:  cfg.Image.APIKey,
		Model:   cfg.Image.Model,
		Timeout: cfg.Image.RequestTimeout,
	}, logger)

	var speech media.SpeechSynthesizer
	if cfg.Speech.APIKey != "" {
		speech, err = media.NewElevenLabsClient(&media.ElevenLabsConfig{
			APIKey:        cfg.Speech.APIKey,
			VoiceID:       cfg.Speech.VoiceID,
			Model:         cfg.Speech.Model,
			FallbackModel: cfg.Speech.FallbackModel,
		}, logger)
		if err != nil {
			logger.Fatal("Failed to create speech client", zap.Error(err))
		}
	} else {
		logger.Info("Speech synthesis disabled, readings will have no narration")
	}

	compatService := services.NewCompatibilityService(subjectRepo, matchRepo, chain, queue, logger)
	readingService := services.NewReadingService(readingRepo, matchRepo, subjectRepo, chain, images, speech, queue, logger)

	mux := http.NewServeMux()
	handlers.NewHealthHandler(cfg, db, chain.Providers(), logger).RegisterRoutes(mux)
	handlers.NewSubjectsHandler(subjectRepo, logger).RegisterRoutes(mux)
	handlers.NewMatchesHandler(compatService, logger).RegisterRoutes(mux)
	handlers.NewReadingsHandler(readingService, logger).RegisterRoutes(mux)

	server := &http.Server{
		Addr:              cfg.BindAddr + ":" + cfg.Port,
		Handler:           middleware.RequestLogger(logger)(mux),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("Starting harmony-engine",
			zap.String("addr", server.Addr),
			zap.String("version", cfg.Version))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("Shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown failed", zap.Error(err))
	}

	logger.Info("harmony-engine stopped")
}

// newLogger builds the zap logger for the given environment.
func newLogger(env string) (*zap.Logger, error) {
	if env == "local" {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

// buildProviderChain wires every configured text provider into a fallback
// chain, in priority order: Gemini, OpenAI, Anthropic.
func buildProviderChain(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*llm.Chain, error) {
	var clients []llm.TextClient

	if cfg.Providers.Gemini.APIKey != "" {
		gemini, err := llm.NewGeminiClient(ctx, &llm.GeminiConfig{
			APIKey: cfg.Providers.Gemini.APIKey,
			Model:  cfg.Providers.Gemini.Model,
		}, logger)
		if err != nil {
			return nil, err
		}
		clients = append(clients, gemini)
	}
	if cfg.Providers.OpenAI.APIKey != "" {
		openai, err := llm.NewOpenAIClient(&llm.OpenAIConfig{
			APIKey:   cfg.Providers.OpenAI.APIKey,
			Model:    cfg.Providers.OpenAI.Model,
			Endpoint: cfg.Providers.OpenAI.Endpoint,
		}, logger)
		if err != nil {
			return nil, err
		}
		clients = append(clients, openai)
	}
	if cfg.Providers.Anthropic.APIKey != "" {
		anthropic, err := llm.NewAnthropicClient(&llm.AnthropicConfig{
			APIKey: cfg.Providers.Anthropic.APIKey,
			Model:  cfg.Providers.Anthropic.Model,
		}, logger)
		if err != nil {
			return nil, err
		}
		clients = append(clients, anthropic)
	}

	return llm.NewChain(logger, clients...), nil
}
