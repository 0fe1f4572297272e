package card

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func lukeSkywalker() *Card {
	return &Card{
		ID:       "SOR_001",
		Title:    "Luke Skywalker",
		Subtitle: "Faithful Friend",
		Type:     "Unit",
		Aspects:  []string{"Heroism"},
		Traits:   []string{"Force", "Rebel"},
		Arenas:   []string{"Ground"},
		Cost:     6,
		Power:    intPtr(6),
		HP:       intPtr(8),
		Text:     "When Played: You may attack with a unit. It deals +2 damage for this attack.",
		Set:      "SOR",
		Number:   "001",
		Rarity:   "Legendary",
		Artist:   "Ameen Naksewee",
		Unique:   true,
	}
}

func TestCard_DecodeMissingOptionalFields(t *testing.T) {
	var c Card
	err := json.Unmarshal([]byte(`{"id":"SOR_002","title":"Basic Card","type":"Event","cost":2}`), &c)
	require.NoError(t, err)

	assert.Equal(t, "SOR_002", c.ID)
	assert.Equal(t, "Basic Card", c.Title)
	assert.Empty(t, c.Subtitle)
	assert.Empty(t, c.Aspects)
	assert.Nil(t, c.Power)
	assert.False(t, c.Unique)
}

func TestCard_DisplayTitle(t *testing.T) {
	c := lukeSkywalker()
	assert.Equal(t, "Luke Skywalker, Faithful Friend", c.DisplayTitle())

	c.Subtitle = ""
	assert.Equal(t, "Luke Skywalker", c.DisplayTitle())
}

func TestCard_TypeChecks(t *testing.T) {
	tests := []struct {
		cardType string
		check    func(*Card) bool
	}{
		{"Unit", (*Card).IsUnit},
		{"Event", (*Card).IsEvent},
		{"Upgrade", (*Card).IsUpgrade},
		{"Base", (*Card).IsBase},
		{"Leader", (*Card).IsLeader},
	}

	for _, tt := range tests {
		t.Run(tt.cardType, func(t *testing.T) {
			c := &Card{Type: tt.cardType}
			assert.True(t, tt.check(c))
			if tt.cardType != "Unit" {
				assert.False(t, c.IsUnit())
			}
		})
	}
}

func TestCard_HasAspect(t *testing.T) {
	c := lukeSkywalker()
	assert.True(t, c.HasAspect("Heroism"))
	assert.True(t, c.HasAspect("heroism"))
	assert.False(t, c.HasAspect("Villainy"))
}

func TestCard_HasTrait(t *testing.T) {
	c := lukeSkywalker()
	assert.True(t, c.HasTrait("Force"))
	assert.True(t, c.HasTrait("force"))
	assert.True(t, c.HasTrait("Reb"))
	assert.False(t, c.HasTrait("Imperial"))
}

func TestCard_HasArena(t *testing.T) {
	c := lukeSkywalker()
	assert.True(t, c.HasArena("ground"))
	assert.False(t, c.HasArena("Space"))
}

func TestCard_SortTitle(t *testing.T) {
	assert.Equal(t, "Death Star", (&Card{Title: "The Death Star"}).SortTitle())
	assert.Equal(t, "New Hope", (&Card{Title: "A New Hope"}).SortTitle())
	assert.Equal(t, "Imperial Shuttle", (&Card{Title: "An Imperial Shuttle"}).SortTitle())
	assert.Equal(t, "Luke Skywalker", (&Card{Title: "Luke Skywalker"}).SortTitle())
}

func TestCard_NilSafe(t *testing.T) {
	var c *Card
	assert.Empty(t, c.DisplayTitle())
	assert.False(t, c.IsLeader())
	assert.False(t, c.HasTrait("rebel"))
}
