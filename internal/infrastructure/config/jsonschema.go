package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/invopop/jsonschema"
)

// Schema returns the JSON schema describing config.toml.
func Schema() *jsonschema.Schema {
	r := new(jsonschema.Reflector)
	schema := r.Reflect(&Config{})
	schema.ID = "https://github.com/bnema/sysparse/config.schema.json"
	schema.Title = "sysparse configuration"
	schema.Description = "Configuration schema for sysparse, a systemd unit and ip addr parser"
	return schema
}

// GenerateSchemaFile writes config.schema.json next to config.toml.
func GenerateSchemaFile(configDir string) error {
	data, err := json.MarshalIndent(Schema(), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal schema: %w", err)
	}

	if err := os.WriteFile(filepath.Join(configDir, schemaName), data, filePerm); err != nil {
		return fmt.Errorf("failed to write schema file: %w", err)
	}
	return nil
}
