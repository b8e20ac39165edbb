package srlabelrange

import (
	"fmt"

	"github.com/routeflow/ribd/internal/cli/prompt"
	"github.com/spf13/cobra"
)

var deleteForce bool

var deleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete a label range binding",
	Args:  cobra.ExactArgs(1),
	RunE:  runDelete,
}

func init() {
	deleteCmd.Flags().BoolVarP(&deleteForce, "force", "f", false, "skip confirmation prompt")
}

func runDelete(cmd *cobra.Command, args []string) error {
	name := args[0]

	ok, err := prompt.ConfirmWithForce(fmt.Sprintf("Delete label range binding %q?", name), deleteForce)
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

	if err := s.DeleteSRLabelRange(ctx, name); err != nil {
		return fmt.Errorf("failed to delete label range binding %q: %w", name, err)
	}

	fmt.Printf("Deleted label range binding %q\n", name)
	return nil
}
