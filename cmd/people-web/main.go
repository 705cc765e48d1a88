// Command people-web serves a small people directory whose list, details and
// editor pages are rendered entirely from resolved display metadata.
package main

import (
	"context"
	"errors"
	"io/fs"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/goliatone/go-displaymeta/internal/config"
	"github.com/goliatone/go-displaymeta/internal/console"
	"github.com/goliatone/go-displaymeta/internal/logging"
	"github.com/goliatone/go-displaymeta/internal/people"
	"github.com/goliatone/go-displaymeta/internal/web"
	"github.com/goliatone/go-displaymeta/pkg/metadata"
	"github.com/goliatone/go-displaymeta/pkg/model"
	"github.com/goliatone/go-displaymeta/pkg/orchestrator"
	"github.com/goliatone/go-displaymeta/pkg/overlay"
	"github.com/goliatone/go-displaymeta/pkg/validation"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		zap.NewExample().Fatal("load config", zap.Error(err))
	}

	logger := logging.New(cfg.Env)
	defer func() { _ = logger.Sync() }()

	if err := run(cfg, logger); err != nil {
		logger.Fatal("people-web stopped", zap.Error(err))
	}
}

func run(cfg *config.Config, logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if _, err := console.SetStdoutTitle(cfg.Env, cfg.ConsoleTitle); err != nil {
		logger.Warn("set console title", zap.Error(err))
	}

	db, err := people.Open(people.DBConfig{
		Driver:     cfg.DBDriver,
		DSN:        cfg.DSN,
		SQLitePath: cfg.SQLitePath,
		Logger:     logging.NewGormLogger(logger, logging.LevelFor(cfg.Env), 200*time.Millisecond),
	})
	if err != nil {
		return err
	}

	orch, err := orchestrator.New(
		orchestrator.WithScope(scopeRule(cfg)),
		orchestrator.WithCacheSize(cfg.MetadataCacheSize),
		orchestrator.WithOverlayFS(overlayFS(cfg)),
	)
	if err != nil {
		return err
	}

	report, err := people.Warmup(ctx, db, orch)
	if err != nil {
		return err
	}
	logger.Info("warmup complete",
		zap.Int64("people", report.People),
		zap.Int("fields", report.Fields),
		zap.Duration("duration", report.Duration),
	)

	validator, err := validation.New()
	if err != nil {
		return err
	}
	srv, err := web.New(people.NewRepository(db), orch, validator,
		web.WithLogger(logger),
		web.WithAppName(cfg.AppName),
	)
	if err != nil {
		return err
	}

	httpServer := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           srv.Routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", zap.String("addr", cfg.HTTPAddr), zap.String("driver", cfg.DBDriver))
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	logger.Info("shutting down")
	return httpServer.Shutdown(shutdownCtx)
}

// scopeRule limits generated labels to the configured types, or to Person
// when none are configured.
func scopeRule(cfg *config.Config) metadata.ScopeRule {
	targets := cfg.ScopeTargets
	if len(targets) == 0 {
		targets = []string{model.TypeNameOf(people.Person{})}
	}
	return metadata.ScopeRule{Targets: targets, IncludeDerived: cfg.ScopeIncludeDerived}
}

func overlayFS(cfg *config.Config) fs.FS {
	if cfg.OverlayDir != "" {
		return os.DirFS(cfg.OverlayDir)
	}
	return overlay.EmbeddedFS()
}
