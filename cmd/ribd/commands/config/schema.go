package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/invopop/jsonschema"
	"github.com/routeflow/ribd/pkg/config"
	"github.com/spf13/cobra"
)

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Generate JSON schema for the configuration file",
	Long: `Print a JSON Schema document describing the ribd configuration file
shape, for IDE autocompletion and validation. This is the same schema the
northbound API serves on GET /schema for its config tree.

Examples:
  ribd config schema > ribd.schema.json`,
	RunE: runConfigSchema,
}

func runConfigSchema(cmd *cobra.Command, args []string) error {
	schema := jsonschema.Reflect(&config.Config{})
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(schema); err != nil {
		return fmt.Errorf("failed to encode schema: %w", err)
	}
	return nil
}
