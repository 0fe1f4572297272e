package search

import (
	"math"
	"strings"
	"unicode"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/arcanaland/holocron/internal/card"
)

// tier is the quality of a single field/term comparison, best first.
type tier int

const (
	tierExact tier = iota
	tierEdgeWord
	tierWord
	tierPrefix
	tierSubstring
	tierNone
)

// weights holds the points for each tier of one field, indexed by tier.
type weights [tierNone]float64

// Field weights. The non-title fields together (850) stay below a title
// exact match, and every title tier from whole-word up beats any text tier.
var (
	titleWeights    = weights{1000, 800, 700, 600, 300}
	subtitleWeights = weights{400, 320, 280, 240, 120}
	keywordWeights  = weights{100, 80, 70, 60, 30}
	setWeights      = weights{50, 40, 35, 30, 15}
	textWeights     = weights{40, 32, 28, 24, 12}
	minorWeights    = weights{20, 16, 14, 12, 6}
)

const (
	// minSubstringLen is the shortest term allowed to match as a bare substring.
	minSubstringLen = 3
	// positionStep is the extra weight per position an earlier term is ahead of the last one.
	positionStep = 0.05
	// multiTermBonus is added per matched term when the query has several terms.
	multiTermBonus = 50
	// uniqueBonus favours unique cards on otherwise equal matches.
	uniqueBonus = 5
)

// scoredField is one lower-cased card field ready for matching.
type scoredField struct {
	name    string
	values  []string
	weights weights
}

// Scorer computes relevance scores for cards.
type Scorer struct {
	patterns *patternCache
	logger   *zap.Logger
}

// NewScorer creates a scorer with its own pattern cache.
func NewScorer(logger *zap.Logger, cacheSize int) *Scorer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scorer{
		patterns: newPatternCache(cacheSize),
		logger:   logger,
	}
}

var defaultScorer = NewScorer(nil, defaultPatternCacheSize)

// Score computes the relevance of c for normalized query terms using the
// package default scorer.
func Score(c *card.Card, terms []string) int {
	return defaultScorer.Score(c, terms)
}

// Score returns 0 when no field of c matches any term, and a positive score
// that grows with match quality otherwise. A panic while scoring a card is
// recovered and scores 0.
func (s *Scorer) Score(c *card.Card, terms []string) (score int) {
	if c == nil || len(terms) == 0 {
		return 0
	}

	defer func() {
		if r := recover(); r != nil {
			s.logger.Debug("scoring failed, skipping card",
				zap.String("card_id", c.ID),
				zap.Any("panic", r))
			score = 0
		}
	}()

	fields := fieldsOf(c)
	fullQuery := strings.Join(terms, " ")
	n := len(terms)

	var total float64
	matched := 0
	for i, term := range terms {
		if term == "" {
			continue
		}

		var termScore float64
		for _, f := range fields {
			termScore += s.bestMatch(f, term, fullQuery)
		}

		if termScore > 0 {
			matched++
			total += termScore * positionWeight(i, n)
		}
	}

	if matched == 0 {
		return 0
	}

	if n > 1 {
		total += multiTermBonus * float64(matched)
	}
	if c.Unique {
		total += uniqueBonus
	}

	rounded := math.Round(total)
	if math.IsNaN(rounded) || rounded < 0 {
		return 0
	}
	return int(rounded)
}

// bestMatch returns the points of the best-matching value of a field.
func (s *Scorer) bestMatch(f scoredField, term, fullQuery string) float64 {
	best := tierNone
	for _, v := range f.values {
		if t := s.matchTier(v, term, fullQuery); t < best {
			best = t
			if best == tierExact {
				break
			}
		}
	}
	if best == tierNone {
		return 0
	}
	return f.weights[best]
}

// matchTier classifies how well term matches a lower-cased value.
func (s *Scorer) matchTier(value, term, fullQuery string) tier {
	if value == "" {
		return tierNone
	}

	switch {
	case value == term || value == fullQuery:
		return tierExact
	case isEdgeWord(value, term):
		return tierEdgeWord
	case strings.Contains(value, term) && s.patterns.wholeWord(term).MatchString(value):
		return tierWord
	case strings.HasPrefix(value, term):
		return tierPrefix
	case utf8.RuneCountInString(term) >= minSubstringLen && strings.Contains(value, term):
		return tierSubstring
	}
	return tierNone
}

// isEdgeWord reports whether term is a whole word at the start or end of value.
func isEdgeWord(value, term string) bool {
	if strings.HasPrefix(value, term) {
		next, _ := utf8.DecodeRuneInString(value[len(term):])
		if !isWordRune(next) {
			return true
		}
	}
	if strings.HasSuffix(value, term) {
		prev, _ := utf8.DecodeLastRuneInString(value[:len(value)-len(term)])
		if !isWordRune(prev) {
			return true
		}
	}
	return false
}

func isWordRune(r rune) bool {
	if r == utf8.RuneError {
		return false
	}
	return r == '_' || unicode.IsLetter(r) || unicode.IsNumber(r)
}

// positionWeight slightly favours earlier terms of a multi-term query.
func positionWeight(i, n int) float64 {
	return 1 + positionStep*float64(n-1-i)
}

// fieldsOf lower-cases every scored field of c. Absent fields are empty.
func fieldsOf(c *card.Card) []scoredField {
	return []scoredField{
		{name: "title", values: lowerOne(c.Title), weights: titleWeights},
		{name: "subtitle", values: lowerOne(c.Subtitle), weights: subtitleWeights},
		{name: "type", values: lowerOne(c.Type), weights: keywordWeights},
		{name: "traits", values: lowerAll(c.Traits), weights: keywordWeights},
		{name: "aspects", values: lowerAll(c.Aspects), weights: keywordWeights},
		{name: "set", values: lowerOne(c.Set), weights: setWeights},
		{name: "text", values: lowerAll([]string{c.Text, c.EpicAction}), weights: textWeights},
		{name: "rarity", values: lowerOne(c.Rarity), weights: minorWeights},
		{name: "artist", values: lowerOne(c.Artist), weights: minorWeights},
		{name: "arenas", values: lowerAll(c.Arenas), weights: minorWeights},
	}
}

func lowerOne(s string) []string {
	if s == "" {
		return nil
	}
	return []string{strings.ToLower(s)}
}

func lowerAll(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v != "" {
			out = append(out, strings.ToLower(v))
		}
	}
	return out
}
