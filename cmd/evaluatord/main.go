package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/vendorlens/vendorlens/internal/common"
	"github.com/vendorlens/vendorlens/internal/export"
	"github.com/vendorlens/vendorlens/internal/extract"
	"github.com/vendorlens/vendorlens/internal/llm/openai"
	"github.com/vendorlens/vendorlens/internal/pipeline"
	"github.com/vendorlens/vendorlens/internal/scorecard"
	"github.com/vendorlens/vendorlens/internal/server"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	gen := openai.NewClient(openai.Config{
		APIKey:         cfg.LLM.APIKey,
		BaseURL:        cfg.LLM.BaseURL,
		ExtractModel:   cfg.LLM.ExtractModel,
		NarrativeModel: cfg.LLM.NarrativeModel,
		Temperature:    cfg.LLM.Temperature,
		Timeout:        cfg.LLM.Timeout,
	}, logger)
	if !gen.Enabled() {
		logger.Warn("generative capability disabled, no API key configured")
	}

	figures := extract.NewFigureParser(extract.PDFExtractor{}, gen, logger, cfg.Extract.MaxLLMChars)
	evaluator := pipeline.NewEvaluator(scorecard.NewEngine(logger), figures, gen, logger)
	handler := server.NewHandler(evaluator, export.NewService(logger), logger, cfg.Server.MaxUploadBytes)

	srv := &http.Server{
		Addr:    cfg.Server.HTTPAddr,
		Handler: server.NewRouter(handler),
	}

	errc := make(chan error, 1)
	go func() {
		logger.Info("http serving", "addr", cfg.Server.HTTPAddr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-errc:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server failed", "error", err)
			os.Exit(1)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown failed", "error", err)
		os.Exit(1)
	}
	logger.Info("shutdown complete")
}
