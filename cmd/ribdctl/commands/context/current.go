package context

import (
	"fmt"
	"os"

	"github.com/routeflow/ribd/internal/cli/credentials"
	"github.com/routeflow/ribd/internal/cli/output"
	"github.com/spf13/cobra"
)

var currentOutput string

var currentCmd = &cobra.Command{
	Use:   "current",
	Short: "Show current context",
	Long: `Display information about the current active context.

Examples:
  # Show current context
  ribdctl context current

  # Show as JSON
  ribdctl context current --output json`,
	RunE: runContextCurrent,
}

func init() {
	currentCmd.Flags().StringVarP(&currentOutput, "output", "o", "table", "Output format (table|json|yaml)")
}

func runContextCurrent(cmd *cobra.Command, args []string) error {
	store, err := credentials.NewStore()
	if err != nil {
		return fmt.Errorf("failed to initialize credential store: %w", err)
	}

	contextName := store.GetCurrentContextName()
	if contextName == "" {
		return fmt.Errorf("no current context set\n\n" +
			"Issue a token against a server first:\n" +
			"  ribdctl token issue --server http://localhost:8443")
	}

	ctx, err := store.GetContext(contextName)
	if err != nil {
		return fmt.Errorf("failed to get context: %w", err)
	}

	info := ContextInfo{
		Name:      contextName,
		Current:   true,
		ServerURL: ctx.ServerURL,
		LoggedIn:  ctx.AccessToken != "" && !ctx.IsExpired(),
	}

	format, err := output.ParseFormat(currentOutput)
	if err != nil {
		return err
	}

	switch format {
	case output.FormatJSON:
		return output.PrintJSON(os.Stdout, info)
	case output.FormatYAML:
		return output.PrintYAML(os.Stdout, info)
	default:
		fmt.Printf("Current context: %s\n", contextName)
		fmt.Printf("  Server: %s\n", ctx.ServerURL)
		if info.LoggedIn {
			fmt.Printf("  Status: token valid\n")
		} else {
			fmt.Printf("  Status: no valid token\n")
		}
	}

	return nil
}
