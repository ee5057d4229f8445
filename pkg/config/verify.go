package config

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"
)

//go:embed schema.json
var embeddedSchema string

// VerifyAgainstEmbeddedSchema checks the config sections and their fields against the embedded JSON schema
func VerifyAgainstEmbeddedSchema(cfg *Config) error {
	var schema jsonschema.Schema
	if err := json.Unmarshal([]byte(embeddedSchema), &schema); err != nil {
		return fmt.Errorf("parse embedded schema: %w", err)
	}

	// convert config to JSON for validation
	configData, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	var configMap map[string]map[string]any
	if err := json.Unmarshal(configData, &configMap); err != nil {
		return fmt.Errorf("unmarshal config: %w", err)
	}

	root := &schema
	if schema.Ref != "" && schema.Definitions != nil {
		if def, ok := schema.Definitions["Config"]; ok {
			root = def
		}
	}
	if root.Properties == nil {
		return fmt.Errorf("schema has no properties")
	}

	for pair := root.Properties.Oldest(); pair != nil; pair = pair.Next() {
		section, ok := configMap[pair.Key]
		if !ok {
			return fmt.Errorf("section %s is missing", pair.Key)
		}
		def := resolve(&schema, pair.Value)
		for _, field := range def.Required {
			if _, ok := section[field]; !ok {
				return fmt.Errorf("%s.%s is required", pair.Key, field)
			}
		}
		if def.Properties == nil {
			continue
		}
		for key := range section {
			if _, ok := def.Properties.Get(key); !ok {
				return fmt.Errorf("%s.%s is not in schema", pair.Key, key)
			}
		}
	}
	return nil
}

// resolve follows local $ref to definitions
func resolve(root, s *jsonschema.Schema) *jsonschema.Schema {
	const prefix = "#/$defs/"
	if s.Ref != "" && len(s.Ref) > len(prefix) && root.Definitions != nil {
		if def, ok := root.Definitions[s.Ref[len(prefix):]]; ok {
			return def
		}
	}
	return s
}

// GenerateSchema generates a JSON schema for the Config struct
func GenerateSchema() (*jsonschema.Schema, error) {
	return jsonschema.Reflect(&Config{}), nil
}
