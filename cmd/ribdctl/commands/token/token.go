// Package token implements bearer-token lifecycle subcommands for ribd's
// machine-to-machine northbound API.
package token

import "github.com/spf13/cobra"

// Cmd is the token subcommand.
var Cmd = &cobra.Command{
	Use:   "token",
	Short: "Manage northbound API bearer tokens",
	Long: `Exchange the northbound API's shared signing secret for a bearer
token and store it in the current context.

Subcommands:
  issue  Issue a new bearer token and save it`,
}

func init() {
	Cmd.AddCommand(issueCmd)
}
