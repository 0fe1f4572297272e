package validator

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"github.com/arcanaland/holocron/internal/card"
)

// catalogSchema describes the shape of cards.json
const catalogSchema = `{
  "type": "array",
  "items": {
    "type": ["object", "null"],
    "required": ["id", "title", "type", "set"],
    "properties": {
      "id":          {"type": "string"},
      "title":       {"type": "string"},
      "subtitle":    {"type": "string"},
      "type":        {"type": "string"},
      "aspects":     {"type": ["array", "null"], "items": {"type": "string"}},
      "traits":      {"type": ["array", "null"], "items": {"type": "string"}},
      "arenas":      {"type": ["array", "null"], "items": {"type": "string"}},
      "cost":        {"type": "integer", "minimum": 0},
      "power":       {"type": ["integer", "null"], "minimum": 0},
      "hp":          {"type": ["integer", "null"], "minimum": 0},
      "text":        {"type": "string"},
      "epicAction":  {"type": "string"},
      "set":         {"type": "string"},
      "number":      {"type": "string"},
      "rarity":      {"type": "string"},
      "artist":      {"type": "string"},
      "unique":      {"type": "boolean"},
      "doubleImage": {"type": "boolean"},
      "frontArt":    {"type": "string"},
      "backArt":     {"type": "string"}
    }
  }
}`

var knownTypes = map[string]bool{
	card.TypeUnit:    true,
	card.TypeEvent:   true,
	card.TypeUpgrade: true,
	card.TypeBase:    true,
	card.TypeLeader:  true,
	card.TypeToken:   true,
}

var knownRarities = map[string]bool{
	"common":    true,
	"uncommon":  true,
	"rare":      true,
	"legendary": true,
	"special":   true,
}

type ValidationResults struct {
	Errors   []string
	Warnings []string
}

// Valid reports whether no errors were found
func (r ValidationResults) Valid() bool {
	return len(r.Errors) == 0
}

type Validator struct {
	CatalogPath string
	Results     ValidationResults
}

func NewValidator(catalogPath string) *Validator {
	return &Validator{
		CatalogPath: catalogPath,
		Results:     ValidationResults{},
	}
}

// Validate checks the catalog file. An error is returned only when the file
// cannot be read or is not JSON; problems with its contents are reported in
// the results.
func (v *Validator) Validate() (ValidationResults, error) {
	data, err := os.ReadFile(v.CatalogPath)
	if err != nil {
		if os.IsNotExist(err) {
			return v.Results, fmt.Errorf("catalog not found: %s", v.CatalogPath)
		}
		return v.Results, fmt.Errorf("error reading catalog: %w", err)
	}

	if !json.Valid(data) {
		return v.Results, fmt.Errorf("%s is not valid JSON", v.CatalogPath)
	}

	if err := v.validateSchema(data); err != nil {
		return v.Results, err
	}

	// Field checks need a well-typed document
	if !v.Results.Valid() {
		return v.Results, nil
	}

	var cards []*card.Card
	if err := json.Unmarshal(data, &cards); err != nil {
		return v.Results, fmt.Errorf("error parsing catalog: %w", err)
	}

	v.validateIDs(cards)
	v.validateCards(cards)

	return v.Results, nil
}

func (v *Validator) validateSchema(data []byte) error {
	schemaLoader := gojsonschema.NewStringLoader(catalogSchema)
	documentLoader := gojsonschema.NewBytesLoader(data)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return fmt.Errorf("schema validation error: %w", err)
	}

	for _, desc := range result.Errors() {
		v.Results.Errors = append(v.Results.Errors, desc.String())
	}
	return nil
}

// validateIDs checks that every card has a unique ID
func (v *Validator) validateIDs(cards []*card.Card) {
	seen := make(map[string]int)
	for i, c := range cards {
		if c == nil {
			v.Results.Warnings = append(v.Results.Warnings,
				fmt.Sprintf("null entry at index %d", i))
			continue
		}

		id := strings.TrimSpace(c.ID)
		if id == "" {
			v.Results.Errors = append(v.Results.Errors,
				fmt.Sprintf("card at index %d has no id", i))
			continue
		}

		if first, ok := seen[id]; ok {
			v.Results.Errors = append(v.Results.Errors,
				fmt.Sprintf("duplicate card id %s at index %d (first seen at index %d)", id, i, first))
			continue
		}
		seen[id] = i
	}
}

// validateCards checks the fields a search relies on
func (v *Validator) validateCards(cards []*card.Card) {
	for i, c := range cards {
		if c == nil {
			continue
		}

		name := c.ID
		if name == "" {
			name = fmt.Sprintf("index %d", i)
		}

		if strings.TrimSpace(c.Title) == "" {
			v.Results.Warnings = append(v.Results.Warnings,
				fmt.Sprintf("card %s has no title", name))
		}

		if !knownTypes[strings.ToLower(c.Type)] {
			v.Results.Warnings = append(v.Results.Warnings,
				fmt.Sprintf("card %s has unknown type %q", name, c.Type))
		}

		if c.Rarity != "" && !knownRarities[strings.ToLower(c.Rarity)] {
			v.Results.Warnings = append(v.Results.Warnings,
				fmt.Sprintf("card %s has unknown rarity %q", name, c.Rarity))
		}

		if c.IsUnit() && len(c.Arenas) == 0 {
			v.Results.Warnings = append(v.Results.Warnings,
				fmt.Sprintf("unit %s has no arena", name))
		}

		if c.IsLeader() && c.BackArt == "" {
			v.Results.Warnings = append(v.Results.Warnings,
				fmt.Sprintf("leader %s has no back art", name))
		}
	}
}
