package search

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/arcanaland/holocron/internal/card"
)

func TestScore_NoMatchIsZero(t *testing.T) {
	c := &card.Card{Title: "Darth Vader", Subtitle: "Dark Lord of the Sith", Type: "Leader"}
	assert.Equal(t, 0, Score(c, []string{"xyzzy"}))
}

func TestScore_EmptyCardAndNil(t *testing.T) {
	assert.Equal(t, 0, Score(nil, []string{"vader"}))
	assert.Equal(t, 0, Score(&card.Card{}, []string{"vader"}))
	assert.Equal(t, 0, Score(&card.Card{Title: "Vader"}, nil))
}

func TestScore_NonNegative(t *testing.T) {
	cards := []*card.Card{
		{},
		{Title: "Vader"},
		{Title: "Luke Skywalker", Traits: []string{"", "Force"}, Unique: true},
		{Title: "Han Solo", Text: "Ambush. When played: deal 2 damage."},
	}
	queries := [][]string{{"a"}, {"vader"}, {"luke", "skywalker"}, {"+2"}, {"(", ")"}, {"ambush."}}

	for _, c := range cards {
		for _, q := range queries {
			assert.GreaterOrEqual(t, Score(c, q), 0)
		}
	}
}

func TestScore_TierOrderWithinTitle(t *testing.T) {
	exact := Score(&card.Card{Title: "War"}, []string{"war"})
	edge := Score(&card.Card{Title: "War Juggernaut"}, []string{"war"})
	word := Score(&card.Card{Title: "Total War Machine"}, []string{"war"})
	prefix := Score(&card.Card{Title: "Warrior"}, []string{"war"})
	substring := Score(&card.Card{Title: "Rewards"}, []string{"war"})

	assert.Greater(t, exact, edge)
	assert.Greater(t, edge, word)
	assert.Greater(t, word, prefix)
	assert.Greater(t, prefix, substring)
	assert.Greater(t, substring, 0)
}

func TestScore_FieldPriority(t *testing.T) {
	term := []string{"rebel"}

	title := Score(&card.Card{Title: "Rebel"}, term)
	subtitle := Score(&card.Card{Title: "X", Subtitle: "Rebel"}, term)
	traits := Score(&card.Card{Title: "X", Traits: []string{"Rebel"}}, term)
	set := Score(&card.Card{Title: "X", Set: "Rebel"}, term)
	text := Score(&card.Card{Title: "X", Text: "Rebel"}, term)
	artist := Score(&card.Card{Title: "X", Artist: "Rebel"}, term)

	assert.Greater(t, title, subtitle)
	assert.Greater(t, subtitle, traits)
	assert.Greater(t, traits, set)
	assert.Greater(t, set, text)
	assert.Greater(t, text, artist)
	assert.Greater(t, artist, 0)
}

func TestScore_TitleExactBeatsEveryOtherField(t *testing.T) {
	everywhereElse := &card.Card{
		Title:    "X",
		Subtitle: "shield",
		Type:     "shield",
		Traits:   []string{"shield"},
		Aspects:  []string{"shield"},
		Set:      "shield",
		Text:     "shield",
		Rarity:   "shield",
		Artist:   "shield",
		Arenas:   []string{"shield"},
	}
	titleOnly := &card.Card{Title: "Shield"}

	assert.Greater(t, Score(titleOnly, []string{"shield"}), Score(everywhereElse, []string{"shield"}))
}

func TestScore_TextSubstringNeverBeatsTitleWord(t *testing.T) {
	titleWord := Score(&card.Card{Title: "Cunning Rebel Pilot"}, []string{"rebel"})
	textSubstring := Score(&card.Card{Title: "X", Text: "rebellion rebellious rebels"}, []string{"rebel"})
	assert.Greater(t, titleWord, textSubstring)
}

func TestScore_EpicActionScoresAsText(t *testing.T) {
	c := &card.Card{Title: "Grand Moff Tarkin", Type: "Leader",
		EpicAction: "If you control 5 or more resources, deploy this leader."}
	assert.Equal(t, int(textWeights[tierWord]), Score(c, []string{"resources"}))

	// matching both still counts once
	c.Text = "Search the top 5 cards of your deck for resources."
	assert.Equal(t, int(textWeights[tierWord]), Score(c, []string{"resources"}))
}

func TestScore_ShortTermSubstringExcluded(t *testing.T) {
	// "ar" appears only inside words of the text
	c := &card.Card{Title: "Fleet Lieutenant", Text: "Attack with a unit. It gets +2/+0 for this attack if it's a Rebel. Warbird."}
	assert.Equal(t, 0, Score(c, []string{"ar"}))

	// but prefix and whole-word matches still count
	assert.Greater(t, Score(&card.Card{Title: "Arquitens Assault Cruiser"}, []string{"ar"}), 0)
	assert.Greater(t, Score(&card.Card{Title: "X", Text: "deal 2 damage to a unit"}, []string{"2"}), 0)
}

func TestScore_ListFieldsCountOncePerTerm(t *testing.T) {
	one := Score(&card.Card{Title: "X", Traits: []string{"Rebel"}}, []string{"rebel"})
	many := Score(&card.Card{Title: "X", Traits: []string{"Rebel", "Rebel Fighter", "Rebellion"}}, []string{"rebel"})
	assert.Equal(t, one, many)
}

func TestScore_TraitPartialMatch(t *testing.T) {
	c := &card.Card{Title: "Luke Skywalker", Traits: []string{"Rebel", "Force"}}
	assert.Greater(t, Score(c, []string{"rebel"}), 0)
	assert.Greater(t, Score(c, []string{"reb"}), 0)
	assert.Greater(t, Score(c, []string{"rebel"}), Score(c, []string{"reb"}))
}

func TestScore_WholeWordAcrossPunctuation(t *testing.T) {
	c := &card.Card{Title: "X", Text: "Saboteur. When Played: defeat a shield."}
	withWord := Score(c, []string{"played"})
	assert.Equal(t, int(textWeights[tierWord]), withWord)
}

func TestScore_UniqueBonus(t *testing.T) {
	plain := Score(&card.Card{Title: "Boba Fett"}, []string{"boba"})
	unique := Score(&card.Card{Title: "Boba Fett", Unique: true}, []string{"boba"})
	assert.Equal(t, plain+uniqueBonus, unique)

	// the bonus alone never produces a match
	assert.Equal(t, 0, Score(&card.Card{Title: "Boba Fett", Unique: true}, []string{"xyzzy"}))
}

func TestScore_MultiTerm(t *testing.T) {
	terms := []string{"luke", "skywalker"}
	full := Score(&card.Card{Title: "Luke Skywalker"}, terms)
	partial := Score(&card.Card{Title: "Luke"}, terms)
	assert.Greater(t, full, partial)
	assert.Greater(t, partial, 0)
}

func TestScore_EarlierTermsWeighMore(t *testing.T) {
	first := Score(&card.Card{Title: "Chewbacca"}, []string{"chewbacca", "xyzzy"})
	second := Score(&card.Card{Title: "Chewbacca"}, []string{"xyzzy", "chewbacca"})
	assert.Greater(t, first, second)
}

func TestScore_FullQueryCountsAsExact(t *testing.T) {
	c := &card.Card{Title: "X", Subtitle: "Faithful Friend"}
	s := Score(c, []string{"faithful", "friend"})

	exact := subtitleWeights[tierExact]*positionWeight(0, 2) + subtitleWeights[tierExact]*positionWeight(1, 2) + 2*multiTermBonus
	assert.Equal(t, int(math.Round(exact)), s)
}

func TestIsEdgeWord(t *testing.T) {
	assert.True(t, isEdgeWord("vader's fist", "vader"))
	assert.True(t, isEdgeWord("darth vader", "vader"))
	assert.False(t, isEdgeWord("invaders", "vader"))
	assert.False(t, isEdgeWord("vaders fist", "vader"))
}

func TestPatternCache(t *testing.T) {
	p := newPatternCache(2)

	re := p.wholeWord("rebel")
	assert.Same(t, re, p.wholeWord("rebel"))
	assert.True(t, re.MatchString("a rebel pilot"))
	assert.True(t, re.MatchString("rebel"))
	assert.False(t, re.MatchString("rebels"))
	assert.False(t, re.MatchString("_rebel"))

	p.wholeWord("force")
	p.wholeWord("imperial")
	assert.Equal(t, 2, p.Len())
}
