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
	// parse schema
	var schema map[string]interface{}
	if err := json.Unmarshal([]byte(embeddedSchema), &schema); err != nil {
		return fmt.Errorf("parse embedded schema: %w", err)
	}

	// every section of the config has to be known to the schema
	configData, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	var configMap map[string]interface{}
	if err := json.Unmarshal(configData, &configMap); err != nil {
		return fmt.Errorf("unmarshal config: %w", err)
	}

	props := schemaProperties(schema)
	for section := range configMap {
		if _, ok := props[section]; !ok {
			return fmt.Errorf("section %q is not described by schema", section)
		}
	}

	// basic validation - check required fields match
	if err := validateRequiredFields(cfg); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	return nil
}

// schemaProperties returns top-level properties of the Config definition.
// jsonschema.Reflect puts the struct under $defs and refers to it from the root.
func schemaProperties(schema map[string]interface{}) map[string]interface{} {
	if props, ok := schema["properties"].(map[string]interface{}); ok {
		return props
	}
	defs, ok := schema["$defs"].(map[string]interface{})
	if !ok {
		return map[string]interface{}{}
	}
	cfgDef, ok := defs["Config"].(map[string]interface{})
	if !ok {
		return map[string]interface{}{}
	}
	props, ok := cfgDef["properties"].(map[string]interface{})
	if !ok {
		return map[string]interface{}{}
	}
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
	if cfg.Feed.Endpoint == "" {
		return fmt.Errorf("feed.endpoint is required")
	}
	if cfg.Report.Dir == "" {
		return fmt.Errorf("report.dir is required")
	}

	// semantic features need both models once the key is set
	if cfg.SemanticEnabled() {
		if cfg.LLM.ChatModel == "" {
			return fmt.Errorf("llm.chat_model is required when llm.api_key is set")
		}
		if cfg.LLM.EmbeddingModel == "" {
			return fmt.Errorf("llm.embedding_model is required when llm.api_key is set")
		}
	}

	return nil
}

// GenerateSchema generates a JSON schema for the Config struct
func GenerateSchema() (*jsonschema.Schema, error) {
	return jsonschema.Reflect(&Config{}), nil
}
