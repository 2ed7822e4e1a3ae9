// Command register maintains the hand-curated list of registered species
// (registry.path) and compares it against the sheet.
//
//	register list
//	register add NAME...
//	register remove NAME...
//	register pending [--from snapshot]
//	register unknown [--from snapshot]
//
// Names match after normalization (case and inner whitespace are ignored).
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/shima-pokedex/internal/adapter/export"
	"github.com/heartmarshall/shima-pokedex/internal/adapter/provider/appscript"
	"github.com/heartmarshall/shima-pokedex/internal/adapter/registry"
	"github.com/heartmarshall/shima-pokedex/internal/app"
	"github.com/heartmarshall/shima-pokedex/internal/app/pokedex/sheet"
	"github.com/heartmarshall/shima-pokedex/internal/config"
)

const (
	fromSheet    = "sheet"
	fromSnapshot = "snapshot"
)

type cli struct {
	configPath string
	from       string

	cfg    *config.Config
	logger *slog.Logger
	store  *registry.Store
}

func main() {
	if err := newRootCmd(os.Stdout).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(out io.Writer) *cobra.Command {
	c := &cli{}

	root := &cobra.Command{
		Use:          "register",
		Short:        "Maintain the registered species list",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := app.Bootstrap(c.configPath, "register")
			if err != nil {
				return err
			}
			c.cfg, c.logger = cfg, logger
			c.store = registry.NewStore(cfg.Registry.Path)
			return nil
		},
	}
	root.SetOut(out)
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "path to YAML config file")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "Print registered species",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			set, err := c.store.Load()
			if err != nil {
				return err
			}
			printNames(cmd.OutOrStdout(), set.Names())
			return nil
		},
	}

	addCmd := &cobra.Command{
		Use:   "add NAME...",
		Short: "Register species",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.update(cmd.OutOrStdout(), args, (*registry.Set).Add, "added", "already registered")
		},
	}

	removeCmd := &cobra.Command{
		Use:   "remove NAME...",
		Short: "Unregister species",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.update(cmd.OutOrStdout(), args, (*registry.Set).Remove, "removed", "not registered")
		},
	}

	pendingCmd := &cobra.Command{
		Use:   "pending",
		Short: "Print species from the sheet that are not registered yet",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			set, species, err := c.compare(cmd.Context())
			if err != nil {
				return err
			}
			printNames(cmd.OutOrStdout(), set.Pending(species))
			return nil
		},
	}

	unknownCmd := &cobra.Command{
		Use:   "unknown",
		Short: "Print registered species that no longer appear in the sheet",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			set, species, err := c.compare(cmd.Context())
			if err != nil {
				return err
			}
			printNames(cmd.OutOrStdout(), set.Unknown(species))
			return nil
		},
	}

	for _, cmd := range []*cobra.Command{pendingCmd, unknownCmd} {
		cmd.Flags().StringVar(&c.from, "from", fromSheet, "species source: sheet or snapshot")
	}

	root.AddCommand(listCmd, addCmd, removeCmd, pendingCmd, unknownCmd)
	return root
}

func (c *cli) update(out io.Writer, names []string, op func(*registry.Set, string) bool, did, skipped string) error {
	set, err := c.store.Load()
	if err != nil {
		return err
	}

	changed := 0
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if op(set, name) {
			changed++
			fmt.Fprintf(out, "%s: %s\n", did, name)
		} else {
			fmt.Fprintf(out, "%s: %s\n", skipped, name)
		}
	}
	if changed == 0 {
		return nil
	}

	if err := c.store.Save(set); err != nil {
		return err
	}
	c.logger.Info("registry saved",
		slog.String("path", c.store.Path()),
		slog.Int("changed", changed),
		slog.Int("registered", set.Len()),
	)
	return nil
}

// compare loads the registry and the current species list.
func (c *cli) compare(ctx context.Context) (*registry.Set, []string, error) {
	set, err := c.store.Load()
	if err != nil {
		return nil, nil, err
	}

	var species []string
	switch c.from {
	case fromSheet:
		p := appscript.NewProvider(c.cfg.Source.BaseURL, c.cfg.Source.Timeout, c.logger)
		rows, err := p.FetchRows(ctx, appscript.ActionPokemon)
		if err != nil {
			return nil, nil, err
		}
		species = sheet.Default.SpeciesNames(rows)
	case fromSnapshot:
		files := export.NewFileStore(c.cfg.Export.Dir, c.cfg.Export.Prefix, c.logger)
		species, err = files.Species(ctx)
		if err != nil {
			return nil, nil, err
		}
	default:
		return nil, nil, fmt.Errorf("--from must be %q or %q, got %q", fromSheet, fromSnapshot, c.from)
	}
	return set, species, nil
}

func printNames(out io.Writer, names []string) {
	for _, n := range names {
		fmt.Fprintln(out, n)
	}
}
