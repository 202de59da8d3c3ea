package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/invopop/jsonschema"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/lane-defense/internal/battle/levels/formats"
)

var flagSchemaOut string

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the JSON schema of battle files",
	Long: `Generate a JSON schema for the YAML battle files (templates and
levels). Editors with YAML language support can use it to validate files
under --levels.

Examples:
  lanedef schema
  lanedef schema --out ./schema/battle.json`,
	Run: runSchema,
}

func init() {
	schemaCmd.Flags().StringVar(&flagSchemaOut, "out", "", "Path to write the schema (stdout when empty)")
}

func runSchema(_ *cobra.Command, _ []string) {
	data, err := json.MarshalIndent(buildSchema(), "", "  ")
	if err != nil {
		exitf("marshal schema: %v", err)
	}
	data = append(data, '\n')

	if flagSchemaOut == "" {
		os.Stdout.Write(data)
		return
	}
	if err := writeSchema(flagSchemaOut, data); err != nil {
		exitf("%v", err)
	}
}

func buildSchema() *jsonschema.Schema {
	reflector := jsonschema.Reflector{
		PreferYAMLSchema: true,
	}
	schema := reflector.Reflect(new(formats.YAMLDocument))
	schema.Title = "Lane Defense battle file"
	schema.Description = "Enemy and operator templates and an optional level"
	return schema
}

func writeSchema(outPath string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return fmt.Errorf("create schema directory: %w", err)
	}

	tmpPath := outPath + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return fmt.Errorf("write temp schema: %w", err)
	}

	if err := os.Rename(tmpPath, outPath); err != nil {
		return fmt.Errorf("replace schema: %w", err)
	}

	return nil
}
