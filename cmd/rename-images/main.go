// Command rename-images renames sprite files so their names are derived from
// the species: lowercase, hyphens for spaces, only [a-z0-9-].
//
// Flags:
//
//	--config  path to YAML config file (default: $CONFIG_PATH or ./config.yaml)
//	--dir     image directory (default: images.dir)
//
// Exit codes: 0 = success, 1 = error or at least one file failed.
package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/heartmarshall/shima-pokedex/internal/app"
	"github.com/heartmarshall/shima-pokedex/internal/app/images"
)

func main() {
	configFlag := flag.String("config", "", "path to YAML config file")
	dirFlag := flag.String("dir", "", "image directory (default: images.dir)")
	flag.Parse()

	cfg, logger, err := app.Bootstrap(*configFlag, "rename-images")
	if err != nil {
		log.Fatalf("%v", err)
	}

	dir := cfg.Images.Dir
	if *dirFlag != "" {
		dir = *dirFlag
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	res, err := images.RenameDir(ctx, dir, logger)
	if err != nil {
		logger.Error("rename images", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("rename complete",
		slog.Int("found", res.Found),
		slog.Int("renamed", res.Renamed),
		slog.Int("skipped", res.Skipped),
		slog.Int("failed", res.Failed),
	)
	if res.Failed > 0 {
		os.Exit(1)
	}
}
