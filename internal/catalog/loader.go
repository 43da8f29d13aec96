package catalog

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/xeipuuv/gojsonschema"
)

// productsSchema is deliberately lenient: it pins identity and the
// card/loan split, and leaves everything optional elsewhere so that a
// catalog with missing fields loads with zero values instead of failing.
const productsSchema = `{
	"type": "object",
	"required": ["products"],
	"properties": {
		"products": {
			"type": "array",
			"items": {
				"type": "object",
				"required": ["id", "name", "kind"],
				"properties": {
					"id":   {"type": "string", "minLength": 1},
					"name": {"type": "string", "minLength": 1},
					"bank": {"type": "string"},
					"kind": {"type": "string", "enum": ["card", "loan"]},
					"match_factors": {
						"type": "object",
						"additionalProperties": {
							"type": "array",
							"items": {"type": "string"}
						}
					},
					"requirements": {"type": "object"},
					"card":         {"type": "object"},
					"loan":         {"type": "object"},
					"narrative":    {"type": "object"}
				}
			}
		}
	}
}`

type catalogDocument struct {
	Products []Product `json:"products"`
}

// Load reads and validates the product catalog from a JSON file.
// Catalog order is preserved; it is the tie-break order during ranking.
func Load(path string) ([]Product, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return Parse(data)
}

// Parse validates and decodes a catalog document.
func Parse(data []byte) ([]Product, error) {
	if err := validate(data, productsSchema); err != nil {
		return nil, fmt.Errorf("catalog: %w", err)
	}

	var doc catalogDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}

	seen := make(map[string]bool, len(doc.Products))
	for i := range doc.Products {
		p := &doc.Products[i]
		if seen[p.ID] {
			return nil, fmt.Errorf("catalog: duplicate product id %q", p.ID)
		}
		seen[p.ID] = true
		if err := checkKind(p); err != nil {
			return nil, err
		}
	}
	return doc.Products, nil
}

func checkKind(p *Product) error {
	switch p.Kind {
	case KindCard:
		if p.Loan != nil {
			return fmt.Errorf("catalog: card product %q carries loan economics", p.ID)
		}
	case KindLoan:
		if p.Card != nil {
			return fmt.Errorf("catalog: loan product %q carries card economics", p.ID)
		}
	default:
		return fmt.Errorf("catalog: product %q has unknown kind %q", p.ID, p.Kind)
	}
	return nil
}

func validate(data []byte, schema string) error {
	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(schema),
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
