package session

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"gopkg.in/yaml.v3"
)

const settingsSchemaURL = "schema://session-settings.json"

// settingsSchema constrains settings files before they are decoded.
var settingsSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"initial_difficulty": map[string]any{
			"type":    "number",
			"minimum": 1,
			"maximum": 10,
		},
		"adaptive_difficulty": map[string]any{"type": "boolean"},
		"time_limit_seconds": map[string]any{
			"type":    "integer",
			"minimum": 1,
		},
		"session_limit": map[string]any{
			"type":    "integer",
			"minimum": 1,
		},
		"hints_enabled": map[string]any{"type": "boolean"},
		"sound_enabled": map[string]any{"type": "boolean"},
	},
	"additionalProperties": false,
}

var (
	compileOnce      sync.Once
	compiledSchema   *jsonschema.Schema
	compileSchemaErr error
)

// DefaultSettings returns the settings used when none are supplied.
func DefaultSettings() Settings {
	return Settings{
		InitialDifficulty:  1,
		AdaptiveDifficulty: true,
		HintsEnabled:       true,
		SoundEnabled:       false,
	}
}

// ParseSettings validates raw JSON against the settings schema and decodes
// it over DefaultSettings, so omitted fields keep their defaults.
func ParseSettings(raw []byte) (Settings, error) {
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return Settings{}, fmt.Errorf("%w: invalid JSON: %v", ErrInvalidSettings, err)
	}

	schema, err := getSettingsSchema()
	if err != nil {
		return Settings{}, fmt.Errorf("compile settings schema: %w", err)
	}
	if err := schema.Validate(parsed); err != nil {
		return Settings{}, fmt.Errorf("%w: %v", ErrInvalidSettings, err)
	}

	settings := DefaultSettings()
	if err := json.Unmarshal(raw, &settings); err != nil {
		return Settings{}, fmt.Errorf("%w: %v", ErrInvalidSettings, err)
	}
	return settings, nil
}

// ParseSettingsYAML accepts the same document as ParseSettings written in
// YAML. An empty document yields DefaultSettings.
func ParseSettingsYAML(raw []byte) (Settings, error) {
	var doc any
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return Settings{}, fmt.Errorf("%w: invalid YAML: %v", ErrInvalidSettings, err)
	}
	if doc == nil {
		return DefaultSettings(), nil
	}
	asJSON, err := json.Marshal(doc)
	if err != nil {
		return Settings{}, fmt.Errorf("%w: %v", ErrInvalidSettings, err)
	}
	return ParseSettings(asJSON)
}

func getSettingsSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		// The compiler expects a parsed JSON value, not Go map literals
		// with int constants.
		defBytes, err := json.Marshal(settingsSchema)
		if err != nil {
			compileSchemaErr = fmt.Errorf("marshal schema definition: %w", err)
			return
		}
		var def any
		if err := json.Unmarshal(defBytes, &def); err != nil {
			compileSchemaErr = fmt.Errorf("parse schema definition: %w", err)
			return
		}

		c := jsonschema.NewCompiler()
		if err := c.AddResource(settingsSchemaURL, def); err != nil {
			compileSchemaErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiledSchema, compileSchemaErr = c.Compile(settingsSchemaURL)
	})
	return compiledSchema, compileSchemaErr
}
