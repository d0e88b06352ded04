// Command server exposes the Morceus analyzer as a JSON REST API.
//
// Endpoints:
//
//	GET /api/crunch?word=<word>[&vowel_length=strict|relaxed][&relax_ij=][&relax_uv=][&relax_case=][&enclitics=]
//	GET /api/analyze?word=<word>[&...same options]
//	GET /api/paradigm?lemma=<lemma>
//	GET /api/tables
//	GET /api/tables/{name}
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/cours-de-latin/morceus"
)

func main() {
	configPath := flag.String("config", os.Getenv("CONFIG_PATH"), "path to the YAML config file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		slog.Error("server stopped", slog.Any("error", err))
		os.Exit(1)
	}
}

func run(configPath string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	logger := newLogger(cfg.Log)

	start := time.Now()
	loadTables := morceus.TablesOnce(morceus.Config{
		Generate: &morceus.GenerateTables{Root: cfg.Data.Root},
		Logger:   logger,
	})
	tables, err := loadTables()
	if err != nil {
		return fmt.Errorf("build tables: %w", err)
	}
	logger.Info("tables ready", slog.Duration("took", time.Since(start)))

	srv := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      newHandler(morceus.NewCruncher(tables), cfg.CORS),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", slog.String("addr", cfg.Server.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// newLogger builds the process logger and installs it as the default.
// Format "text" adds source locations; anything else logs JSON.
func newLogger(cfg LogConfig) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level:     parseLevel(cfg.Level),
		AddSource: strings.EqualFold(cfg.Format, "text"),
	}

	var handler slog.Handler
	if strings.EqualFold(cfg.Format, "text") {
		handler = slog.NewTextHandler(os.Stderr, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
