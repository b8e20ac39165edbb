// Package context implements context management subcommands: saved
// server URL/credential pairs a ribdctl invocation can switch between.
package context

import "github.com/spf13/cobra"

// Cmd is the context subcommand.
var Cmd = &cobra.Command{
	Use:   "context",
	Short: "Manage ribdctl contexts",
	Long: `Manage saved server contexts.

A context bundles a server URL with its bearer token so ribdctl can talk
to multiple ribd instances without re-authenticating each time.

Subcommands:
  current  Show current context
  list     List all configured contexts
  use      Switch to a different context
  rename   Rename a context
  delete   Delete a context`,
}

func init() {
	Cmd.AddCommand(currentCmd)
	Cmd.AddCommand(listCmd)
	Cmd.AddCommand(useCmd)
	Cmd.AddCommand(renameCmd)
	Cmd.AddCommand(deleteCmd)
}
