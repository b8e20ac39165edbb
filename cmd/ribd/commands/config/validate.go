package config

import (
	"fmt"

	"github.com/routeflow/ribd/pkg/config"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate configuration file",
	Long: `Load and validate a ribd configuration file without starting the daemon.

Checks structural validity (required fields, value ranges) the same way
'ribd start' does, so configuration errors are caught before a restart.

Examples:
  # Validate the default config file
  ribd config validate

  # Validate a specific file
  ribd config validate --config /etc/ribd/config.yaml`,
	RunE: runConfigValidate,
}

func runConfigValidate(cmd *cobra.Command, args []string) error {
	configPath, _ := cmd.Flags().GetString("config")

	cfg, err := config.MustLoad(configPath)
	if err != nil {
		return err
	}

	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("configuration is invalid: %w", err)
	}

	fmt.Println("Configuration is valid")
	return nil
}
