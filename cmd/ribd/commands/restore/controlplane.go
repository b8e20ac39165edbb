package restore

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/routeflow/ribd/cmd/ribd/commands/backup"
	"github.com/routeflow/ribd/internal/cli/prompt"
	"github.com/routeflow/ribd/pkg/config"
	"github.com/routeflow/ribd/pkg/config/store"
	"github.com/spf13/cobra"
)

var (
	restoreInput  string
	restoreConfig string
	restoreForce  bool
)

var controlplaneCmd = &cobra.Command{
	Use:   "controlplane",
	Short: "Restore control-plane database from a JSON backup",
	Long: `Restore keychains, SR label range bindings and static routes from a
JSON export produced by 'ribd backup controlplane'.

The daemon should be stopped before restoring: existing records with the
same name or prefix/nexthop are not overwritten, so restoring into a
non-empty database will fail on the first conflict.

Examples:
  ribd restore controlplane --input /var/backups/ribd-2026-07-31.json`,
	RunE: runControlplaneRestore,
}

func init() {
	controlplaneCmd.Flags().StringVarP(&restoreInput, "input", "i", "", "input backup file path (required)")
	controlplaneCmd.Flags().StringVar(&restoreConfig, "config", "", "path to config file")
	controlplaneCmd.Flags().BoolVarP(&restoreForce, "force", "f", false, "skip confirmation prompt")
	_ = controlplaneCmd.MarkFlagRequired("input")
}

func runControlplaneRestore(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	file, err := os.Open(restoreInput)
	if err != nil {
		return fmt.Errorf("failed to open backup file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var data backup.ControlPlaneBackup
	if err := json.NewDecoder(file).Decode(&data); err != nil {
		return fmt.Errorf("failed to parse backup file: %w", err)
	}

	cfg, err := config.MustLoad(restoreConfig)
	if err != nil {
		return err
	}

	msg := fmt.Sprintf("Restore %d keychains, %d label ranges and %d static routes from %s (backup version %s, taken %s)?",
		len(data.Keychains), len(data.SRLabelRanges), len(data.StaticRoutes), restoreInput, data.Version, data.Timestamp)
	ok, err := prompt.ConfirmWithForce(msg, restoreForce)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Println("Aborted.")
		return nil
	}

	s, err := store.New(&cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to open control-plane store: %w", err)
	}
	defer func() { _ = s.Close() }()

	fmt.Printf("Restoring %d keychains...\n", len(data.Keychains))
	for _, kc := range data.Keychains {
		keys := kc.Keys
		kc.Keys = nil
		kcID, err := s.CreateKeychain(ctx, kc)
		if err != nil {
			return fmt.Errorf("failed to restore keychain %s: %w", kc.Name, err)
		}
		for i := range keys {
			k := keys[i]
			k.KeychainID = kcID
			if _, err := s.AddKey(ctx, &k); err != nil {
				return fmt.Errorf("failed to restore key %d for keychain %s: %w", k.KeyID, kc.Name, err)
			}
		}
	}

	fmt.Printf("Restoring %d SR label ranges...\n", len(data.SRLabelRanges))
	for _, r := range data.SRLabelRanges {
		if _, err := s.CreateSRLabelRange(ctx, r); err != nil {
			return fmt.Errorf("failed to restore label range %s: %w", r.Name, err)
		}
	}

	fmt.Printf("Restoring %d static routes...\n", len(data.StaticRoutes))
	for _, r := range data.StaticRoutes {
		if _, err := s.CreateStaticRoute(ctx, r); err != nil {
			return fmt.Errorf("failed to restore static route %s via %s: %w", r.Prefix, r.Nexthop, err)
		}
	}

	fmt.Println("Restore completed successfully")
	return nil
}
