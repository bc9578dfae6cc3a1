// Command authstub runs a development stand-in for the authentication
// backend. It serves the real wire shapes, including the field
// spelling quirks the normalizer exists for, so the client and
// session layers can be exercised end to end without the production
// backend.
//
// Configuration:
//
//	AUTHSTUB_PORT   - listen port (default: 9091)
//	AUTHSTUB_SECRET - token signing secret (default: dev value)
//	LOG_LEVEL, LOG_FORMAT - see pkg/logger
//
// Seeded accounts (password "secret1" for all): admin, jdoe (lawyer),
// maria (correspondent).
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lexhub/authcore/pkg/config"
	"github.com/lexhub/authcore/pkg/logger"
)

type stubConfig struct {
	Port     string        `env:"AUTHSTUB_PORT" envDefault:"9091"`
	Secret   string        `env:"AUTHSTUB_SECRET" envDefault:"authstub-dev-secret"`
	TokenTTL time.Duration `env:"AUTHSTUB_TOKEN_TTL" envDefault:"30m"`
	Log      logger.Config
}

func main() {
	var cfg stubConfig
	config.MustLoad(&cfg)

	log := logger.FromConfig(cfg.Log, logger.WithAttrs(slog.String("service", "authstub")))

	stub := newStub(cfg, log)
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           stub.routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info("authstub listening", slog.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("authstub failed", slog.Any("error", err))
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	log.Info("authstub shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
}
