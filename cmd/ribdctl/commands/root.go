// Package commands implements the CLI commands for ribdctl, the client
// for ribd's northbound REST API.
package commands

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/routeflow/ribd/cmd/ribdctl/cmdutil"
	"github.com/routeflow/ribd/cmd/ribdctl/commands/context"
	"github.com/routeflow/ribd/cmd/ribdctl/commands/token"
)

var (
	// Version information injected at build time.
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "ribdctl",
	Short: "ribdctl - client for the ribd northbound API",
	Long: `ribdctl talks to a running ribd instance over its northbound REST API:
reading the config tree and submitting configuration transactions.

Use "ribdctl [command] --help" for more information about a command.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main(). It only needs to happen
// once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

// GetRootCmd returns the root command for testing purposes.
func GetRootCmd() *cobra.Command {
	return rootCmd
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cmdutil.Flags.ServerURL, "server", "", "ribd server URL (overrides the current context)")
	rootCmd.PersistentFlags().StringVar(&cmdutil.Flags.Token, "token", "", "bearer token (overrides the current context)")
	rootCmd.PersistentFlags().StringVarP(&cmdutil.Flags.Output, "output", "o", "table", "output format: table, json, yaml")
	rootCmd.PersistentFlags().BoolVar(&cmdutil.Flags.NoColor, "no-color", false, "disable colored output")
	rootCmd.PersistentFlags().BoolVarP(&cmdutil.Flags.Verbose, "verbose", "v", false, "verbose output")

	rootCmd.AddCommand(token.Cmd)
	rootCmd.AddCommand(context.Cmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(completionCmd)

	rootCmd.CompletionOptions.DisableDefaultCmd = true
}

// Exit prints an error and exits with code 1.
func Exit(format string, args ...any) {
	rootCmd.PrintErrf(format+"\n", args...)
	os.Exit(1)
}
