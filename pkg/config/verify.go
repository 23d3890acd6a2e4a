package config

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"
)

//go:embed schema.json
var embeddedSchema string

// VerifyAgainstEmbeddedSchema validates the config against the embedded JSON schema
func VerifyAgainstEmbeddedSchema(cfg *Config) error {
	var schema map[string]any
	if err := json.Unmarshal([]byte(embeddedSchema), &schema); err != nil {
		return fmt.Errorf("parse embedded schema: %w", err)
	}

	// config must round-trip through JSON to be checked against the schema
	configData, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	var configMap map[string]any
	if err := json.Unmarshal(configData, &configMap); err != nil {
		return fmt.Errorf("unmarshal config: %w", err)
	}

	if err := checkSections(schema, configMap); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	if err := validateRequiredFields(cfg); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	return nil
}

// checkSections reports top-level config sections missing from the schema,
// which means the embedded schema is stale and needs go generate
func checkSections(schema, configMap map[string]any) error {
	props := schemaProperties(schema)
	if props == nil {
		return fmt.Errorf("schema has no properties")
	}
	for key := range configMap {
		if _, ok := props[key]; !ok {
			return fmt.Errorf("section %q is not described by the schema", key)
		}
	}
	return nil
}

// schemaProperties returns the properties of the Config definition, resolving the $ref
// jsonschema.Reflect puts at the top level
func schemaProperties(schema map[string]any) map[string]any {
	if props, ok := schema["properties"].(map[string]any); ok {
		return props
	}
	defs, ok := schema["$defs"].(map[string]any)
	if !ok {
		return nil
	}
	cfgDef, ok := defs["Config"].(map[string]any)
	if !ok {
		return nil
	}
	props, _ := cfgDef["properties"].(map[string]any)
	return props
}

// validateRequiredFields performs basic validation of required fields
func validateRequiredFields(cfg *Config) error {
	if cfg.Server.Listen == "" {
		return fmt.Errorf("server.listen is required")
	}
	if cfg.Server.Timeout == 0 {
		return fmt.Errorf("server.timeout is required")
	}
	if cfg.Schedule.Interval == 0 {
		return fmt.Errorf("schedule.interval is required")
	}
	if cfg.LLM.Summary.ContentCategory == "" {
		return fmt.Errorf("llm.summary.content_category is required")
	}
	if cfg.LLM.Summary.EntityRange == "" {
		return fmt.Errorf("llm.summary.entity_range is required")
	}

	if cfg.Extraction.Enabled {
		if cfg.Extraction.Timeout == 0 {
			return fmt.Errorf("extraction.timeout is required when extraction is enabled")
		}
		if cfg.Extraction.MinTextLength < 0 {
			return fmt.Errorf("extraction.min_text_length must be non-negative")
		}
	}

	return nil
}

// GenerateSchema generates a JSON schema for the Config struct
func GenerateSchema() (*jsonschema.Schema, error) {
	return jsonschema.Reflect(&Config{}), nil
}
