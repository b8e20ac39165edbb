package commands

import (
	"fmt"

	"github.com/routeflow/ribd/internal/cli/credentials"
	"github.com/spf13/cobra"
)

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Clear the stored bearer token",
	Long: `Clear the stored bearer token for the current context.

This removes the token but keeps the server URL and context
configuration, so issuing a new token only takes 'ribdctl token issue'.

Examples:
  ribdctl logout`,
	RunE: runLogout,
}

func runLogout(cmd *cobra.Command, args []string) error {
	store, err := credentials.NewStore()
	if err != nil {
		return fmt.Errorf("failed to initialize credential store: %w", err)
	}

	contextName := store.GetCurrentContextName()
	if contextName == "" {
		return fmt.Errorf("no current context set")
	}

	if err := store.ClearCurrentContext(); err != nil {
		return fmt.Errorf("failed to clear token: %w", err)
	}

	fmt.Printf("Cleared token for context: %s\n", contextName)
	return nil
}
