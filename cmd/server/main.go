// Command server exposes the latest pokédex snapshot over a read-only JSON
// API. Documents come from PostgreSQL when database.dsn is set and from the
// newest snapshot file in export.dir otherwise.
//
// Flags:
//
//	--config   path to YAML config file (default: $CONFIG_PATH or ./config.yaml)
//	--migrate  apply database migrations on start-up
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/heartmarshall/shima-pokedex/internal/adapter/export"
	"github.com/heartmarshall/shima-pokedex/internal/adapter/postgres"
	"github.com/heartmarshall/shima-pokedex/internal/adapter/postgres/pokemon"
	"github.com/heartmarshall/shima-pokedex/internal/adapter/registry"
	"github.com/heartmarshall/shima-pokedex/internal/app"
	"github.com/heartmarshall/shima-pokedex/internal/transport/rest"
)

var (
	_ rest.Store = (*pokemon.Repo)(nil)
	_ rest.Store = (*export.FileStore)(nil)
)

func main() {
	configFlag := flag.String("config", "", "path to YAML config file")
	migrateFlag := flag.Bool("migrate", false, "apply database migrations on start-up")
	flag.Parse()

	cfg, logger, err := app.Bootstrap(*configFlag, "server")
	if err != nil {
		log.Fatalf("%v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var store rest.Store
	if cfg.Database.Enabled() {
		if *migrateFlag {
			if err := postgres.Migrate(ctx, cfg.Database.DSN, logger); err != nil {
				logger.Error("migrate database", slog.String("error", err.Error()))
				os.Exit(1)
			}
		}

		pool, err := postgres.NewPool(ctx, cfg.Database)
		if err != nil {
			logger.Error("connect to database", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer pool.Close()

		store = pokemon.New(pool, postgres.NewTxManager(pool))
		logger.Info("serving from database")
	} else {
		store = export.NewFileStore(cfg.Export.Dir, cfg.Export.Prefix, logger)
		logger.Info("serving from snapshot files", slog.String("dir", cfg.Export.Dir))
	}

	handler := rest.NewRouter(rest.Deps{
		Store:       store,
		Registry:    registry.NewStore(cfg.Registry.Path),
		Version:     app.BuildVersion(),
		CORSOrigins: cfg.Server.CORSOrigins,
		Logger:      logger,
	})

	srv := &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("server failed", slog.String("error", err.Error()))
			os.Exit(1)
		}
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger.Info("server stopped")
}
