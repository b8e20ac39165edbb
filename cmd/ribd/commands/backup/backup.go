// Package backup implements backup subcommands for the control-plane
// database (keychains, segment-routing label reservations, static
// routes). Live protocol state (the LSDB, the RIB) is not included: it
// rebuilds itself from neighbors and the control plane on restart.
package backup

import (
	"time"

	"github.com/routeflow/ribd/pkg/config/store"
	"github.com/spf13/cobra"
)

// Cmd is the backup subcommand.
var Cmd = &cobra.Command{
	Use:   "backup",
	Short: "Backup operations",
	Long: `Backup ribd's control-plane database.

Subcommands:
  controlplane  Backup keychains, SR label ranges and static routes`,
}

func init() {
	Cmd.AddCommand(controlplaneCmd)
}

// ControlPlaneBackup is the JSON export format for the control-plane
// database. Version is written as backupFormatVersion ("1"); restore
// does not check it.
type ControlPlaneBackup struct {
	Version       string                       `json:"version"`
	Timestamp     time.Time                    `json:"timestamp"`
	Keychains     []*store.Keychain            `json:"keychains"`
	SRLabelRanges []*store.SRLabelRangeBinding `json:"sr_label_ranges"`
	StaticRoutes  []*store.StaticRoute         `json:"static_routes"`
}

const backupFormatVersion = "1"
