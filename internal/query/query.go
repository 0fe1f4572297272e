// Package query implements the structured card filter: clauses of the form
// "field operator value" joined by "and" and "or".
//
//	type = unit and cost <= 3
//	trait c rebel or trait c force
//	gt m shielded
//
// "and" binds tighter than "or". A value containing " and " or " or " must be
// double-quoted, as in title c "hit or miss". A query that does not parse is
// invalid and matches nothing.
package query

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/arcanaland/holocron/internal/card"
)

var (
	// ErrEmptyQuery is reported for a blank query.
	ErrEmptyQuery = errors.New("empty query")
	// ErrUnknownField is reported for a clause on a field that does not exist.
	ErrUnknownField = errors.New("unknown field")
	// ErrBadClause is reported for a clause that is not "field operator value".
	ErrBadClause = errors.New("malformed clause")
	// ErrBadOperator is reported when an operator does not apply to a field.
	ErrBadOperator = errors.New("operator not supported for field")
	// ErrBadValue is reported when a value cannot be compared with a field.
	ErrBadValue = errors.New("invalid value")
)

var (
	orSplit  = regexp.MustCompile(`(?i)\s+or\s+`)
	andSplit = regexp.MustCompile(`(?i)\s+and\s+`)

	symbolClause = regexp.MustCompile(`^([a-zA-Z]+)\s*(<=|>=|!=|=|<|>)\s*(.+)$`)
	wordClause   = regexp.MustCompile(`(?i)^([a-z]+)\s+(contains|c|matches|m)\s+(.+)$`)
)

// FilterQuerySet is a parsed structured query.
type FilterQuerySet struct {
	raw     string
	groups  [][]*clause
	clauses int
	err     error
}

// Parse parses raw. It never fails; check Valid or Err on the result.
func Parse(raw string) *FilterQuerySet {
	q := &FilterQuerySet{raw: raw}

	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		q.err = ErrEmptyQuery
		return q
	}

	for _, disjunct := range splitUnquoted(trimmed, orSplit) {
		var group []*clause
		for _, part := range splitUnquoted(disjunct, andSplit) {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			q.clauses++

			c, err := parseClause(part)
			if err != nil {
				if q.err == nil {
					q.err = err
				}
				continue
			}
			group = append(group, c)
		}
		if len(group) > 0 {
			q.groups = append(q.groups, group)
		}
	}

	if q.err == nil && q.clauses == 0 {
		q.err = ErrEmptyQuery
	}
	return q
}

// Valid reports whether the query parsed as a well-formed clause expression.
func (q *FilterQuerySet) Valid() bool {
	return q != nil && q.err == nil
}

// Err returns the first parse error, or nil for a valid query.
func (q *FilterQuerySet) Err() error {
	if q == nil {
		return ErrEmptyQuery
	}
	return q.err
}

// Len returns the number of clauses in the query.
func (q *FilterQuerySet) Len() int {
	if q == nil {
		return 0
	}
	return q.clauses
}

// String returns the query as given to Parse.
func (q *FilterQuerySet) String() string {
	if q == nil {
		return ""
	}
	return q.raw
}

// Execute returns the cards matching the query in catalog order, or nothing
// if the query is not valid.
func (q *FilterQuerySet) Execute(catalog []*card.Card) []*card.Card {
	if !q.Valid() {
		return []*card.Card{}
	}

	out := make([]*card.Card, 0)
	for _, c := range catalog {
		if c != nil && q.match(c) {
			out = append(out, c)
		}
	}
	return out
}

// match reports whether any "and" group is fully satisfied by c.
func (q *FilterQuerySet) match(c *card.Card) bool {
	for _, group := range q.groups {
		all := true
		for _, cl := range group {
			if !cl.match(c) {
				all = false
				break
			}
		}
		if all {
			return true
		}
	}
	return false
}

func parseClause(s string) (*clause, error) {
	var name, op, value string
	if m := wordClause.FindStringSubmatch(s); m != nil {
		name, op, value = m[1], strings.ToLower(m[2]), m[3]
	} else if m := symbolClause.FindStringSubmatch(s); m != nil {
		name, op, value = m[1], m[2], m[3]
	} else {
		return nil, fmt.Errorf("%w: %q", ErrBadClause, s)
	}

	def, ok := lookupField(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownField, name)
	}

	return newClause(def, normalizeOperator(op), unquote(strings.TrimSpace(value)))
}

// splitUnquoted splits s around sep, ignoring separators inside double quotes.
func splitUnquoted(s string, sep *regexp.Regexp) []string {
	var parts []string
	start := 0
	for _, loc := range sep.FindAllStringIndex(s, -1) {
		if strings.Count(s[:loc[0]], `"`)%2 == 1 {
			continue
		}
		parts = append(parts, s[start:loc[0]])
		start = loc[1]
	}
	return append(parts, s[start:])
}

func unquote(value string) string {
	if len(value) >= 2 && strings.HasPrefix(value, `"`) && strings.HasSuffix(value, `"`) {
		return value[1 : len(value)-1]
	}
	return value
}
