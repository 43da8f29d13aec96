package rules

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/xeipuuv/gojsonschema"
)

// rulesSchema pins only the shapes the interpreter depends on; unknown
// or missing sections fall through to the defaults.
const rulesSchema = `{
	"type": "object",
	"properties": {
		"weights": {
			"type": "object",
			"additionalProperties": {"type": "number"}
		},
		"scoring": {"type": "object"},
		"bonus_rules": {
			"type": "array",
			"items": {
				"type": "object",
				"required": ["label", "points"],
				"properties": {
					"label":  {"type": "string", "minLength": 1},
					"points": {"type": "number"},
					"when":   {"type": "object"}
				}
			}
		},
		"penalty_rules": {
			"type": "array",
			"items": {
				"type": "object",
				"required": ["label", "points"],
				"properties": {
					"label":  {"type": "string", "minLength": 1},
					"points": {"type": "number"},
					"when":   {"type": "object"}
				}
			}
		},
		"income_ranges": {
			"type": "object",
			"additionalProperties": {
				"type": "object",
				"required": ["max"],
				"properties": {"max": {"type": "number"}}
			}
		}
	}
}`

// Load reads a rules file on top of the built-in defaults. An empty
// path returns the defaults unchanged.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rules: %w", err)
	}
	if err := validate(data); err != nil {
		return nil, fmt.Errorf("rules: %w", err)
	}
	// Unmarshal over the defaults: present keys override, absent keys
	// keep their default values (maps merge per key).
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse rules: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func validate(data []byte) error {
	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(rulesSchema),
		gojsonschema.NewBytesLoader(data),
	)
	if err != nil {
		return fmt.Errorf("validate: %w", err)
	}
	if !result.Valid() {
		errs := result.Errors()
		first := "unknown"
		if len(errs) > 0 {
			first = errs[0].String()
		}
		return fmt.Errorf("invalid document (%d problems, first: %s)", len(errs), first)
	}
	return nil
}
