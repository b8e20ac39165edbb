// Package srlabelrange implements management subcommands for persisted
// segment-routing label range bindings (global block / SRLB reservations
// the SR allocator must not hand out to local labels).
package srlabelrange

import (
	"context"
	"fmt"

	"github.com/routeflow/ribd/pkg/config"
	"github.com/routeflow/ribd/pkg/config/store"
	"github.com/spf13/cobra"
)

// Cmd is the srlabelrange subcommand.
var Cmd = &cobra.Command{
	Use:     "srlabelrange",
	Aliases: []string{"sr-label-range"},
	Short:   "Manage segment-routing label range bindings",
	Long: `Manage persisted segment-routing label range bindings: the global
block and SRLB reservations the allocator excludes from local-label
assignment.

Subcommands:
  list    List label range bindings
  create  Create a label range binding
  delete  Delete a label range binding`,
}

var configFile string

func init() {
	Cmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default: $XDG_CONFIG_HOME/ribd/config.yaml)")
	Cmd.AddCommand(listCmd)
	Cmd.AddCommand(createCmd)
	Cmd.AddCommand(deleteCmd)
}

func openStore() (*store.Store, context.Context, error) {
	cfg, err := config.MustLoad(configFile)
	if err != nil {
		return nil, nil, err
	}
	s, err := store.New(&cfg.Database)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open control-plane store: %w", err)
	}
	return s, context.Background(), nil
}
