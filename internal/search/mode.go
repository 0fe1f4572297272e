package search

import (
	"errors"
	"fmt"
	"strings"

	"github.com/arcanaland/holocron/internal/card"
	"github.com/arcanaland/holocron/internal/query"
)

// ErrUnknownMode is returned by ParseMode for an unrecognised mode name.
var ErrUnknownMode = errors.New("unknown search mode")

// Mode selects how a query is evaluated.
type Mode int

const (
	// ModeRelevance ranks cards with the weighted relevance scorer.
	ModeRelevance Mode = iota
	// ModeStructured filters cards with the clause query language.
	ModeStructured
)

// ParseMode converts a mode name to a Mode.
func ParseMode(name string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "relevance", "title", "text":
		return ModeRelevance, nil
	case "query", "structured", "filter":
		return ModeStructured, nil
	}
	return ModeRelevance, fmt.Errorf("%w: %q", ErrUnknownMode, name)
}

func (m Mode) String() string {
	switch m {
	case ModeRelevance:
		return "relevance"
	case ModeStructured:
		return "query"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// Next returns the mode that follows m when toggling.
func (m Mode) Next() Mode {
	if m == ModeRelevance {
		return ModeStructured
	}
	return ModeRelevance
}

// Strategy evaluates a raw query against a catalog.
type Strategy interface {
	Search(catalog []*card.Card, rawQuery string) ([]*card.Card, int)
}

// StructuredStrategy evaluates queries with the clause query language.
type StructuredStrategy struct {
	observer ResultCountObserver
}

// NewStructuredStrategy creates a StructuredStrategy reporting to o, which may be nil.
func NewStructuredStrategy(o ResultCountObserver) *StructuredStrategy {
	return &StructuredStrategy{observer: o}
}

// Search returns the cards matching the query in catalog order. An empty
// query returns the whole catalog; an invalid one returns nothing.
func (s *StructuredStrategy) Search(catalog []*card.Card, rawQuery string) ([]*card.Card, int) {
	var results []*card.Card
	if strings.TrimSpace(rawQuery) == "" {
		results = append([]*card.Card(nil), catalog...)
	} else {
		results = query.Parse(rawQuery).Execute(catalog)
	}

	if s.observer != nil {
		s.observer.ResultCount(len(results))
	}
	return results, len(results)
}

// Engine dispatches queries to the strategy of the active mode. Only one
// mode is active at a time.
type Engine struct {
	mode       Mode
	strategies map[Mode]Strategy
}

// NewEngine creates an Engine starting in mode. Options configure the
// relevance Searcher; its observer is shared with the structured strategy.
func NewEngine(mode Mode, opts ...Option) *Engine {
	relevance := NewSearcher(opts...)
	return &Engine{
		mode: mode,
		strategies: map[Mode]Strategy{
			ModeRelevance:  relevance,
			ModeStructured: NewStructuredStrategy(relevance.observer),
		},
	}
}

// Mode returns the active mode.
func (e *Engine) Mode() Mode {
	return e.mode
}

// SetMode switches the active mode.
func (e *Engine) SetMode(m Mode) {
	e.mode = m
}

// Toggle switches to the next mode and returns it.
func (e *Engine) Toggle() Mode {
	e.mode = e.mode.Next()
	return e.mode
}

// Active returns the strategy of the active mode.
func (e *Engine) Active() Strategy {
	s, ok := e.strategies[e.mode]
	if !ok {
		s = e.strategies[ModeRelevance]
	}
	return s
}

// Search evaluates rawQuery with the active mode.
func (e *Engine) Search(catalog []*card.Card, rawQuery string) ([]*card.Card, int) {
	return e.Active().Search(catalog, rawQuery)
}
