package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arcanaland/holocron/internal/card"
)

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cards.json")
	content := `[
  {"id": "SOR_010", "title": "Darth Vader", "subtitle": "Dark Lord of the Sith", "type": "leader", "set": "SOR", "power": 5, "hp": 8},
  null,
  {"id": "SHD_200", "title": "Bounty Hunter Crew", "type": "unit", "set": "SHD"}
]`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cards, err := Load(path)
	require.NoError(t, err)
	require.Len(t, cards, 2)

	assert.Equal(t, "SOR_010", cards[0].ID)
	require.NotNil(t, cards[0].Power)
	assert.Equal(t, 5, *cards[0].Power)
	assert.Nil(t, cards[1].Power)
}

func TestLoad_Missing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "cards.json"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrCatalogNotFound))
}

func TestLoad_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cards.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"id": "oops"`), 0644))

	_, err := Load(path)
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrCatalogNotFound))
}

func TestExists(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cards.json")

	assert.False(t, Exists(path))
	assert.False(t, Exists(dir))

	require.NoError(t, os.WriteFile(path, []byte("[]"), 0644))
	assert.True(t, Exists(path))
}

func TestFind(t *testing.T) {
	cards := []*card.Card{{ID: "SOR_010"}, {ID: "SHD_200"}}

	c, err := Find(cards, "shd_200")
	require.NoError(t, err)
	assert.Equal(t, "SHD_200", c.ID)

	_, err = Find(cards, "TWI_001")
	assert.True(t, errors.Is(err, ErrCardNotFound))
}

func TestCountBySet(t *testing.T) {
	cards := []*card.Card{
		{ID: "SOR_1", Set: "SOR"},
		{ID: "SHD_1", Set: "SHD"},
		{ID: "SOR_2", Set: "SOR"},
	}

	assert.Equal(t, []SetCount{{Set: "SOR", Count: 2}, {Set: "SHD", Count: 1}}, CountBySet(cards))
	assert.Empty(t, CountBySet(nil))
}
