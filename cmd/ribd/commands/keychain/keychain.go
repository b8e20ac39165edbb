// Package keychain implements keychain management subcommands: the named
// authentication-key collections OSPF, IS-IS and BGP instances reference
// for PDU authentication (spec.md §7's auth kind).
package keychain

import (
	"context"
	"fmt"

	"github.com/routeflow/ribd/pkg/config"
	"github.com/routeflow/ribd/pkg/config/store"
	"github.com/spf13/cobra"
)

// Cmd is the keychain subcommand.
var Cmd = &cobra.Command{
	Use:   "keychain",
	Short: "Manage authentication keychains",
	Long: `Manage the named authentication-key collections shared across OSPF,
IS-IS and BGP instances.

Subcommands:
  list    List keychains
  create  Create a keychain
  delete  Delete a keychain`,
}

var configFile string

func init() {
	Cmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default: $XDG_CONFIG_HOME/ribd/config.yaml)")
	Cmd.AddCommand(listCmd)
	Cmd.AddCommand(createCmd)
	Cmd.AddCommand(deleteCmd)
}

// openStore loads the daemon configuration and opens the control-plane
// store the same way ribd start/migrate do, so keychain management acts
// on the same database the running daemon reads from.
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
