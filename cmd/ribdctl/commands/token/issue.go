package token

import (
	"fmt"
	"net/url"

	"github.com/spf13/cobra"

	"github.com/routeflow/ribd/cmd/ribdctl/cmdutil"
	"github.com/routeflow/ribd/internal/cli/credentials"
	"github.com/routeflow/ribd/internal/cli/prompt"
	"github.com/routeflow/ribd/pkg/apiclient"
)

var (
	issueServer   string
	issueClientID string
	issueSecret   string
)

var issueCmd = &cobra.Command{
	Use:   "issue",
	Short: "Issue a bearer token and save it as the current context",
	Long: `Exchange the daemon's shared signing secret for a bearer token.

The secret is the value of the environment variable named by
northbound.jwt_secret_env in the ribd server's config; it is never stored
on disk here, only the token it buys.

Examples:
  ribdctl token issue --server http://localhost:8443 --client-id ops-cli
  ribdctl token issue --server http://localhost:8443 --client-id ops-cli --secret ...`,
	RunE: runIssue,
}

func init() {
	issueCmd.Flags().StringVar(&issueServer, "server", "", "Server URL (required on first issue)")
	issueCmd.Flags().StringVar(&issueClientID, "client-id", "ribdctl", "Client identifier embedded in the token's subject claim")
	issueCmd.Flags().StringVar(&issueSecret, "secret", "", "Shared signing secret (prompted if omitted)")
}

func runIssue(cmd *cobra.Command, args []string) error {
	store, err := credentials.NewStore()
	if err != nil {
		return fmt.Errorf("failed to initialize credential store: %w", err)
	}

	serverURLStr := issueServer
	if serverURLStr == "" {
		ctx, err := store.GetCurrentContext()
		if err != nil || ctx == nil || ctx.ServerURL == "" {
			return fmt.Errorf("no server URL specified and no saved context found\n\n" +
				"Specify server URL:\n" +
				"  ribdctl token issue --server http://localhost:8443")
		}
		serverURLStr = ctx.ServerURL
	}

	parsedURL, err := url.Parse(serverURLStr)
	if err != nil {
		return fmt.Errorf("invalid server URL: %w", err)
	}
	if parsedURL.Scheme == "" {
		parsedURL.Scheme = "http"
		serverURLStr = parsedURL.String()
	}

	secret := issueSecret
	if secret == "" {
		secret, err = prompt.Password("Shared secret")
		if err != nil {
			return cmdutil.HandleAbort(err)
		}
	}

	client := apiclient.New(serverURLStr)
	fmt.Printf("Requesting token from %s for client %s...\n", serverURLStr, issueClientID)
	tok, err := client.IssueToken(issueClientID, secret)
	if err != nil {
		return fmt.Errorf("token issue failed: %w", err)
	}

	contextName := store.GetCurrentContextName()
	if contextName == "" {
		contextName = credentials.GenerateContextName(serverURLStr)
	}

	ctx := &credentials.Context{
		ServerURL:   serverURLStr,
		Username:    issueClientID,
		AccessToken: tok.AccessToken,
		ExpiresAt:   tok.ExpiresAt,
	}
	if err := store.SetContext(contextName, ctx); err != nil {
		return fmt.Errorf("failed to save credentials: %w", err)
	}
	if err := store.UseContext(contextName); err != nil {
		return fmt.Errorf("failed to set current context: %w", err)
	}

	fmt.Printf("Token issued for client: %s\n", issueClientID)
	fmt.Printf("Context: %s\n", contextName)
	fmt.Printf("Credentials saved to: %s\n", store.ConfigPath())
	return nil
}
