package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arcanaland/holocron/internal/card"
)

func intPtr(v int) *int { return &v }

func testCatalog() []*card.Card {
	return []*card.Card{
		{ID: "SOR_005", Title: "Luke Skywalker", Subtitle: "Faithful Friend", Type: "Leader",
			Aspects: []string{"Vigilance", "Heroism"}, Traits: []string{"Force", "Rebel"},
			Cost: 6, Power: intPtr(4), HP: intPtr(7), Unique: true, Set: "SOR", Rarity: "Common"},
		{ID: "SOR_046", Title: "Alliance X-Wing", Type: "Unit", Arenas: []string{"Space"},
			Traits: []string{"Rebel", "Vehicle", "Fighter"}, Cost: 2, Power: intPtr(2), HP: intPtr(3),
			Set: "SOR", Rarity: "Common"},
		{ID: "SOR_131", Title: "Overwhelming Barrage", Type: "Event", Cost: 5,
			Text: "Give a friendly unit +2/+2 for this phase. Then, it deals damage equal to its power divided as you choose among any number of other units.",
			Set:  "SOR", Rarity: "Uncommon"},
		{ID: "SHD_017", Title: "Bounty Hunter Crew", Type: "Unit", Arenas: []string{"Ground"},
			Traits: []string{"Underworld", "Bounty Hunter"}, Cost: 5, Power: intPtr(3), HP: intPtr(5),
			Set: "SHD", Rarity: "Uncommon"},
	}
}

func ids(cards []*card.Card) []string {
	out := make([]string, len(cards))
	for i, c := range cards {
		out[i] = c.ID
	}
	return out
}

func TestParse_Valid(t *testing.T) {
	tests := []struct {
		raw     string
		clauses int
	}{
		{"type = unit", 1},
		{"type=unit", 1},
		{"gt c bad feeling", 1},
		{"trait contains rebel and cost <= 3", 2},
		{"trait c rebel AND type = unit OR unique = true", 3},
		{"power >= 4", 1},
		{"u = yes", 1},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			q := Parse(tt.raw)
			require.NoError(t, q.Err())
			assert.True(t, q.Valid())
			assert.Equal(t, tt.clauses, q.Len())
			assert.Equal(t, tt.raw, q.String())
		})
	}
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		raw string
		err error
	}{
		{"", ErrEmptyQuery},
		{"   ", ErrEmptyQuery},
		{"side = dark", ErrUnknownField},
		{"luke", ErrBadClause},
		{"title < luke", ErrBadOperator},
		{"cost c 3", ErrBadOperator},
		{"cost = cheap", ErrBadValue},
		{"unique = maybe", ErrBadValue},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			q := Parse(tt.raw)
			assert.False(t, q.Valid())
			assert.ErrorIs(t, q.Err(), tt.err)
			assert.Empty(t, q.Execute(testCatalog()))
		})
	}
}

func TestParse_LenCountsInvalidClauses(t *testing.T) {
	q := Parse("type = unit and side = dark")
	assert.False(t, q.Valid())
	assert.Equal(t, 2, q.Len())
}

func TestExecute(t *testing.T) {
	tests := []struct {
		raw  string
		want []string
	}{
		{"type = unit", []string{"SOR_046", "SHD_017"}},
		{"trait c reb", []string{"SOR_005", "SOR_046"}},
		{"trait m hunter", []string{"SHD_017"}},
		{"trait m hunt", nil},
		{"gt m power", []string{"SOR_131"}},
		{"cost <= 2", []string{"SOR_046"}},
		{"cost > 4 and type != event", []string{"SOR_005", "SHD_017"}},
		{"power = 3 or unique = true", []string{"SOR_005", "SHD_017"}},
		{"hp > 0", []string{"SOR_005", "SOR_046", "SHD_017"}},
		{"arena = space", []string{"SOR_046"}},
		{"set = shd and rarity = uncommon", []string{"SHD_017"}},
		{"name c LUKE", []string{"SOR_005"}},
	}

	catalog := testCatalog()
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			q := Parse(tt.raw)
			require.True(t, q.Valid(), "parse error: %v", q.Err())

			got := q.Execute(catalog)
			if tt.want == nil {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, tt.want, ids(got))
		})
	}
}

func TestExecute_AbsentNumbersNeverMatch(t *testing.T) {
	catalog := testCatalog()

	got := Parse("power != 2").Execute(catalog)
	assert.Equal(t, []string{"SOR_005", "SHD_017"}, ids(got))
}

func TestExecute_DoesNotModifyCatalog(t *testing.T) {
	catalog := testCatalog()
	before := ids(catalog)

	Parse("type = unit").Execute(catalog)
	assert.Equal(t, before, ids(catalog))
}

func TestParse_QuotedValueKeepsSeparators(t *testing.T) {
	catalog := []*card.Card{
		{ID: "TWI_100", Title: "Hit or Miss", Type: "Event"},
		{ID: "TWI_101", Title: "Hit Squad", Type: "Unit"},
		{ID: "TWI_102", Title: "Near Miss", Type: "Event"},
	}

	q := Parse(`title c "hit or miss"`)
	require.True(t, q.Valid())
	assert.Equal(t, 1, q.Len())
	assert.Equal(t, []string{"TWI_100"}, ids(q.Execute(catalog)))

	q = Parse(`title c "hit or miss" or type = unit`)
	require.True(t, q.Valid())
	assert.Equal(t, 2, q.Len())
	assert.Equal(t, []string{"TWI_100", "TWI_101"}, ids(q.Execute(catalog)))

	// unquoted, the value is split into two clauses
	q = Parse("title c hit or miss")
	assert.Equal(t, 2, q.Len())
	assert.False(t, q.Valid())
}
