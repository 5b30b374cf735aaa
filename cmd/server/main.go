package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dwalsh/recall/internal/api"
	"github.com/dwalsh/recall/internal/config"
	"github.com/dwalsh/recall/internal/db"
	"github.com/dwalsh/recall/internal/llm"
	"github.com/dwalsh/recall/internal/logger"
	"github.com/dwalsh/recall/internal/mathgen"
	"github.com/dwalsh/recall/internal/repository/sqlite"
	"github.com/dwalsh/recall/internal/services"
)

func main() {
	cfg := config.Load()

	log := logger.New(
		logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
		logger.WithColors(true),
	)
	logger.SetDefault(log)

	log.Info("===========================================")
	log.Info("Recall Server Starting")
	log.Info("===========================================")
	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration: %v", err)
		os.Exit(1)
	}
	log.Info("configuration loaded")
	log.Debug("addr=%s", cfg.Addr)
	log.Debug("db_path=%s", cfg.DBPath)
	log.Debug("log_level=%s", cfg.LogLevel)
	log.Debug("llm_provider=%s", cfg.LLMProvider)
	log.Debug("llm_timeout=%s", cfg.LLMTimeout)
	log.Debug("rephrase_questions=%t", cfg.RephraseQuestions)

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		log.Error("failed to open database: %v", err)
		os.Exit(1)
	}
	defer func() {
		log.Debug("closing database connection")
		database.Close()
	}()

	llmClient := llm.NewClient(&cfg)

	questionRepo := sqlite.NewQuestionRepository(database.DB)
	progressRepo := sqlite.NewTemplateProgressRepository(database.DB)
	mathRepo := sqlite.NewMathQuestionRepository(database.DB)
	reviewRepo := sqlite.NewReviewRepository(database.DB)

	now := time.Now
	// Shared across handler goroutines; *rand.Rand is not.
	rng := mathgen.SystemRand()

	mathService := services.NewMathService(progressRepo, mathRepo, reviewRepo, llmClient, now, rng)
	learnService := services.NewLearnService(
		questionRepo, progressRepo, reviewRepo,
		mathService, llmClient, cfg.RephraseQuestions, now, rng,
	)
	questionService := services.NewQuestionService(questionRepo, llmClient, now)
	settingsService := services.NewSettingsService(&cfg, llmClient)

	srv := api.NewServer(learnService, questionService, mathService, settingsService)

	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      srv.Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("HTTP server listening on %s", cfg.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error: %v", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	sig := <-stop

	log.Info("received signal %v, initiating graceful shutdown", sig)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	log.Debug("shutting down HTTP server")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error: %v", err)
	}

	log.Info("===========================================")
	log.Info("Recall Server Stopped")
	log.Info("===========================================")
}
