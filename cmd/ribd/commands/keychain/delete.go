package keychain

import (
	"fmt"

	"github.com/routeflow/ribd/internal/cli/prompt"
	"github.com/spf13/cobra"
)

var deleteForce bool

var deleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete a keychain",
	Long: `Delete a keychain and all of its keys.

Any OSPF, IS-IS or BGP configuration referencing this keychain by name
will fail authentication setup until it is removed or repointed.

Examples:
  ribd keychain delete isis-l2
  ribd keychain delete isis-l2 --force`,
	Args: cobra.ExactArgs(1),
	RunE: runDelete,
}

func init() {
	deleteCmd.Flags().BoolVarP(&deleteForce, "force", "f", false, "skip confirmation prompt")
}

func runDelete(cmd *cobra.Command, args []string) error {
	name := args[0]

	ok, err := prompt.ConfirmWithForce(fmt.Sprintf("Delete keychain %q and all of its keys?", name), deleteForce)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Println("Aborted.")
		return nil
	}

	s, ctx, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	if err := s.DeleteKeychain(ctx, name); err != nil {
		return fmt.Errorf("failed to delete keychain %q: %w", name, err)
	}

	fmt.Printf("Deleted keychain %q\n", name)
	return nil
}
