// Command downloader fetches the pokédex sheet, transforms its rows into
// documents and writes a timestamped snapshot file. With a database
// configured the snapshot is also stored as the latest import.
//
// Flags:
//
//	--config   path to YAML config file (default: $CONFIG_PATH or ./config.yaml)
//	--dry-run  fetch and transform without writing a file or the database
//	--migrate  apply database migrations before storing
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/heartmarshall/shima-pokedex/internal/adapter/export"
	"github.com/heartmarshall/shima-pokedex/internal/adapter/postgres"
	"github.com/heartmarshall/shima-pokedex/internal/adapter/postgres/pokemon"
	"github.com/heartmarshall/shima-pokedex/internal/adapter/provider/appscript"
	"github.com/heartmarshall/shima-pokedex/internal/app"
	"github.com/heartmarshall/shima-pokedex/internal/app/pokedex"
)

// Compile-time interface assertions.
var (
	_ pokedex.RowSource      = (*appscript.Provider)(nil)
	_ pokedex.SnapshotWriter = (*export.Writer)(nil)
	_ pokedex.DocumentStore  = (*pokemon.Repo)(nil)
)

func main() {
	configFlag := flag.String("config", "", "path to YAML config file")
	dryRunFlag := flag.Bool("dry-run", false, "fetch and transform without writing a file or the database")
	migrateFlag := flag.Bool("migrate", false, "apply database migrations before storing")
	flag.Parse()

	cfg, logger, err := app.Bootstrap(*configFlag, "downloader")
	if err != nil {
		log.Fatalf("%v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, 10*time.Minute)
	defer cancel()

	source := appscript.NewProvider(cfg.Source.BaseURL, cfg.Source.Timeout, logger)
	writer := export.NewWriter(cfg.Export.Dir, cfg.Export.Prefix, logger)

	var store pokedex.DocumentStore
	if cfg.Database.Enabled() && !*dryRunFlag {
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
	}

	pipeline := pokedex.NewPipeline(logger, source, writer, store, pokedex.Options{
		DryRun: *dryRunFlag,
	})
	if err := pipeline.Run(ctx); err != nil {
		logger.Error("pipeline failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	report := pipeline.Report()
	if pipeline.HasErrors() {
		logger.Warn("pipeline completed with errors", slog.String("path", report.Path))
		os.Exit(1)
	}

	logger.Info("pipeline completed successfully",
		slog.String("path", report.Path),
		slog.Int("documents", report.Stats.Documents),
	)
}
