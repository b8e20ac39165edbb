package commands

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"

	"github.com/routeflow/ribd/pkg/config"
	"github.com/spf13/cobra"
)

var initForce bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a sample configuration file",
	Long: `Initialize a sample ribd configuration file.

By default, the configuration file is created at $XDG_CONFIG_HOME/ribd/config.yaml.
Use --config to specify a custom path.

Examples:
  # Initialize with default location
  ribd init

  # Initialize with custom path
  ribd init --config /etc/ribd/config.yaml

  # Force overwrite existing config
  ribd init --force`,
	RunE: runInit,
}

func init() {
	initCmd.Flags().BoolVar(&initForce, "force", false, "Force overwrite existing config file")
}

func runInit(cmd *cobra.Command, args []string) error {
	configPath := GetConfigFile()
	if configPath == "" {
		configPath = config.GetDefaultConfigPath()
	}

	if !initForce {
		if _, err := os.Stat(configPath); err == nil {
			return fmt.Errorf("configuration file already exists: %s\nUse --force to overwrite", configPath)
		}
	}

	cfg := config.GetDefaultConfig()

	secret, err := generateSecret()
	if err != nil {
		return fmt.Errorf("failed to generate JWT secret: %w", err)
	}

	if err := config.SaveConfig(cfg, configPath); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	fmt.Printf("Configuration file created at: %s\n", configPath)
	fmt.Println("\nNext steps:")
	fmt.Println("  1. Edit the configuration file to set router-id and enable protocol instances")
	fmt.Printf("  2. Export the northbound API JWT secret:\n     export %s=%s\n", cfg.Northbound.JWTSecretEnv, secret)
	fmt.Printf("  3. Start the daemon with: ribd start --config %s\n", configPath)
	fmt.Println("\nSecurity note:")
	fmt.Println("  The secret printed above is for development use only. For production,")
	fmt.Println("  generate a secure secret out of band and never commit it to the config file.")

	return nil
}

// generateSecret returns a 64-character hex string (32 bytes of entropy),
// a reasonable default length for an HMAC-SHA signing secret.
func generateSecret() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
