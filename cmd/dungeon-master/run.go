package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"dungeon-master/internal/archive"
	"dungeon-master/internal/chat"
	"dungeon-master/internal/config"
	"dungeon-master/internal/console"
	"dungeon-master/internal/logger"
	"dungeon-master/internal/mechanics"
	"dungeon-master/internal/models"
	"dungeon-master/internal/prompts"
	"dungeon-master/internal/session"
	"dungeon-master/internal/store"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

func run(ctx context.Context, variant models.Variant, opts *options) error {
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if opts.saveDir != "" {
		cfg.SaveDir = opts.saveDir
	}
	if opts.model != "" {
		cfg.AIModel = opts.model
	}
	if opts.questionLimit > 0 {
		cfg.QuestionLimit = opts.questionLimit
	}

	log, err := logger.New(logger.Config{
		Level:      cfg.LogLevel,
		Encoding:   cfg.LogEncoding,
		OutputPath: cfg.LogOutput,
	})
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()
	log = log.With(zap.String("variant", string(variant)))
	log.Info("Configuration loaded", cfg.LogFields()...)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.MetricsAddr != "" {
		srv := startMetricsServer(cfg.MetricsAddr, log)
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()
	}

	title, preamble := "AI Dungeon Master", prompts.DungeonMasterPreamble
	if variant == models.VariantQuestions {
		title, preamble = "Twenty Questions", prompts.QuestionMasterPreamble
	}

	client, err := chat.NewClient(chat.SettingsFromConfig(cfg, preamble), log)
	if err != nil {
		return fmt.Errorf("failed to create chat client: %w", err)
	}

	term := console.New(os.Stdin, os.Stdout)
	orchestrator := chat.NewOrchestrator(client, term, chat.NewTiktokenCounter(cfg.AIModel, log), cfg.AIModel, log)

	repo := openArchive(ctx, cfg.ArchiveDSN, log)
	defer repo.Close()

	ctl := session.NewController(variant, cfg.QuestionLimit, session.Deps{
		Chat:    orchestrator,
		Store:   store.NewFileStore(cfg.SaveDir, variant, cfg.QuestionLimit, log),
		Archive: repo,
		UI:      term,
		Rand:    mechanics.NewRand(),
		Logger:  log,
	})

	term.Header(title)

	// Reads from stdin cannot be interrupted, so the loop runs on its own goroutine
	// and an interrupt returns without waiting for it. Saves are atomic.
	done := make(chan error, 1)
	go func() { done <- ctl.Run(ctx) }()

	select {
	case err := <-done:
		if err != nil {
			log.Error("Session ended with error", zap.Error(err))
		}
		return err
	case <-ctx.Done():
		log.Info("Interrupted, exiting", zap.Stringer("state", ctl.State()))
		fmt.Fprintln(os.Stdout)
		return nil
	}
}

func openArchive(ctx context.Context, dsn string, log *zap.Logger) archive.Repository {
	if dsn == "" {
		return archive.NoopRepository{}
	}
	repo, err := archive.NewPostgresRepository(ctx, dsn, log)
	if err != nil {
		log.Warn("Results archive unavailable, continuing without it", zap.Error(err))
		return archive.NoopRepository{}
	}
	log.Info("Results archive connected")
	return repo
}

func startMetricsServer(addr string, log *zap.Logger) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status": "ok"}`))
	})

	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		log.Info("Starting metrics server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("Metrics server failed", zap.Error(err))
		}
	}()
	return srv
}
