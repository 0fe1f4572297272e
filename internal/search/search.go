package search

import (
	"sort"

	"go.uber.org/zap"

	"github.com/arcanaland/holocron/internal/card"
)

// ResultCountObserver receives the number of results after every search pass.
type ResultCountObserver interface {
	ResultCount(n int)
}

// ObserverFunc adapts a function to ResultCountObserver.
type ObserverFunc func(n int)

// ResultCount calls f(n).
func (f ObserverFunc) ResultCount(n int) { f(n) }

// Result pairs a card with its score for one query.
type Result struct {
	Card  *card.Card `json:"card" yaml:"card"`
	Score int        `json:"score" yaml:"score"`
}

// Searcher ranks a card catalog against free-text queries.
// It holds no per-query state; concurrent calls only share the observer.
type Searcher struct {
	scorer    *Scorer
	observer  ResultCountObserver
	logger    *zap.Logger
	cacheSize int
}

// Option configures a Searcher.
type Option func(*Searcher)

// WithObserver registers the result-count observer.
func WithObserver(o ResultCountObserver) Option {
	return func(s *Searcher) { s.observer = o }
}

// WithLogger sets the logger used for debug output.
func WithLogger(l *zap.Logger) Option {
	return func(s *Searcher) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithPatternCacheSize bounds the compiled whole-word pattern cache.
func WithPatternCacheSize(n int) Option {
	return func(s *Searcher) { s.cacheSize = n }
}

// NewSearcher creates a Searcher.
func NewSearcher(opts ...Option) *Searcher {
	s := &Searcher{
		logger:    zap.NewNop(),
		cacheSize: defaultPatternCacheSize,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.scorer = NewScorer(s.logger, s.cacheSize)
	return s
}

var defaultSearcher = NewSearcher()

// Search ranks catalog against rawQuery with a default Searcher.
func Search(catalog []*card.Card, rawQuery string) ([]*card.Card, int) {
	return defaultSearcher.Search(catalog, rawQuery)
}

// Search returns the cards matching rawQuery, best first, and their count.
// An empty or whitespace-only query returns the whole catalog in catalog
// order. Cards with equal scores keep their catalog order.
// The catalog is never modified.
func (s *Searcher) Search(catalog []*card.Card, rawQuery string) ([]*card.Card, int) {
	ranked := s.Rank(catalog, rawQuery)

	cards := make([]*card.Card, len(ranked))
	for i, r := range ranked {
		cards[i] = r.Card
	}

	s.report(len(cards))
	return cards, len(cards)
}

// Rank returns scored results for rawQuery, best first. It does not notify
// the observer. For an empty query every card is returned with score 0.
func (s *Searcher) Rank(catalog []*card.Card, rawQuery string) []Result {
	terms := Normalize(rawQuery)
	if len(terms) == 0 {
		all := make([]Result, len(catalog))
		for i, c := range catalog {
			all[i] = Result{Card: c}
		}
		return all
	}

	results := make([]Result, 0, len(catalog))
	for _, c := range catalog {
		if score := s.scorer.Score(c, terms); score > 0 {
			results = append(results, Result{Card: c, Score: score})
		}
	}

	// Stable so equal scores keep catalog order
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	s.logger.Debug("ranked catalog",
		zap.Strings("terms", terms),
		zap.Int("catalog", len(catalog)),
		zap.Int("matches", len(results)))

	return results
}

func (s *Searcher) report(n int) {
	if s.observer != nil {
		s.observer.ResultCount(n)
	}
}
