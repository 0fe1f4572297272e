// Package catalog loads, downloads and summarises the card database kept in
// cards.json. The catalog is read once per session and never modified by
// the search code.
package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/arcanaland/holocron/internal/card"
)

// ErrCatalogNotFound is returned when cards.json does not exist yet.
var ErrCatalogNotFound = errors.New("card catalog not found")

// ErrCardNotFound is returned by Find for an unknown card ID.
var ErrCardNotFound = errors.New("card not found")

// Load reads the catalog at path. Null entries are skipped.
func Load(path string) ([]*card.Card, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrCatalogNotFound, path)
		}
		return nil, fmt.Errorf("error reading catalog: %w", err)
	}

	var raw []*card.Card
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("error parsing catalog %s: %w", path, err)
	}

	cards := make([]*card.Card, 0, len(raw))
	for _, c := range raw {
		if c != nil {
			cards = append(cards, c)
		}
	}
	return cards, nil
}

// Exists reports whether a catalog file is present at path.
func Exists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// Find looks a card up by ID, ignoring case.
func Find(cards []*card.Card, id string) (*card.Card, error) {
	for _, c := range cards {
		if strings.EqualFold(c.ID, id) {
			return c, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrCardNotFound, id)
}

// SetCount is the number of cards of one set.
type SetCount struct {
	Set   string
	Count int
}

// CountBySet counts cards per set, in order of first appearance.
func CountBySet(cards []*card.Card) []SetCount {
	var counts []SetCount
	index := make(map[string]int)
	for _, c := range cards {
		i, ok := index[c.Set]
		if !ok {
			i = len(counts)
			index[c.Set] = i
			counts = append(counts, SetCount{Set: c.Set})
		}
		counts[i].Count++
	}
	return counts
}
