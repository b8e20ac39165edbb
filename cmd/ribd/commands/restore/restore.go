// Package restore implements restore subcommands, the inverse of
// cmd/ribd/commands/backup.
package restore

import (
	"github.com/spf13/cobra"
)

// Cmd is the restore subcommand.
var Cmd = &cobra.Command{
	Use:   "restore",
	Short: "Restore operations",
	Long: `Restore ribd's control-plane database from a backup.

Subcommands:
  controlplane  Restore keychains, SR label ranges and static routes`,
}

func init() {
	Cmd.AddCommand(controlplaneCmd)
}
