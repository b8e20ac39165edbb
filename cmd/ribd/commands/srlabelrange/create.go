package srlabelrange

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/routeflow/ribd/pkg/config/store"
	"github.com/spf13/cobra"
)

var (
	createStart uint32
	createEnd   uint32
)

var createCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a label range binding",
	Long: `Reserve a label range under the given name so the segment-routing
allocator excludes it from local-label assignment.

Examples:
  ribd srlabelrange create global-block --start 16000 --end 23999
  ribd srlabelrange create srlb --start 15000 --end 15999`,
	Args: cobra.ExactArgs(1),
	RunE: runCreate,
}

func init() {
	createCmd.Flags().Uint32Var(&createStart, "start", 0, "first label in the range (required)")
	createCmd.Flags().Uint32Var(&createEnd, "end", 0, "last label in the range (required)")
	_ = createCmd.MarkFlagRequired("start")
	_ = createCmd.MarkFlagRequired("end")
}

func runCreate(cmd *cobra.Command, args []string) error {
	name := args[0]
	if createEnd < createStart {
		return fmt.Errorf("end label %d must not be less than start label %d", createEnd, createStart)
	}

	s, ctx, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	r := &store.SRLabelRangeBinding{
		ID:    uuid.NewString(),
		Name:  name,
		Start: createStart,
		End:   createEnd,
	}
	if _, err := s.CreateSRLabelRange(ctx, r); err != nil {
		return fmt.Errorf("failed to create label range binding: %w", err)
	}

	fmt.Printf("Created label range binding %q [%d-%d]\n", name, createStart, createEnd)
	return nil
}
