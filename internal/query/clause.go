package query

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/arcanaland/holocron/internal/card"
)

type operator string

const (
	opContains operator = "contains"
	opMatches  operator = "matches"
	opEq       operator = "="
	opNe       operator = "!="
	opLt       operator = "<"
	opLe       operator = "<="
	opGt       operator = ">"
	opGe       operator = ">="
)

func normalizeOperator(op string) operator {
	switch op {
	case "c":
		return opContains
	case "m":
		return opMatches
	}
	return operator(op)
}

type fieldKind int

const (
	kindText fieldKind = iota
	kindNumber
	kindBool
)

type fieldDef struct {
	name   string
	kind   fieldKind
	text   func(*card.Card) []string
	number func(*card.Card) (int, bool)
	flag   func(*card.Card) bool

	// optional card helpers used instead of scanning text values
	equals   func(*card.Card, string) bool
	contains func(*card.Card, string) bool
}

func one(s string) []string { return []string{s} }

func optional(v *int) (int, bool) {
	if v == nil {
		return 0, false
	}
	return *v, true
}

var fields = []fieldDef{
	{name: "title", kind: kindText, text: func(c *card.Card) []string { return one(c.Title) }},
	{name: "subtitle", kind: kindText, text: func(c *card.Card) []string { return one(c.Subtitle) }},
	{name: "type", kind: kindText, text: func(c *card.Card) []string { return one(c.Type) }},
	{name: "aspect", kind: kindText, text: func(c *card.Card) []string { return c.Aspects }, equals: (*card.Card).HasAspect},
	{name: "trait", kind: kindText, text: func(c *card.Card) []string { return c.Traits }, contains: (*card.Card).HasTrait},
	{name: "arena", kind: kindText, text: func(c *card.Card) []string { return c.Arenas }, equals: (*card.Card).HasArena},
	{name: "set", kind: kindText, text: func(c *card.Card) []string { return one(c.Set) }},
	{name: "rarity", kind: kindText, text: func(c *card.Card) []string { return one(c.Rarity) }},
	{name: "text", kind: kindText, text: func(c *card.Card) []string { return []string{c.Text, c.EpicAction} }},
	{name: "artist", kind: kindText, text: func(c *card.Card) []string { return one(c.Artist) }},
	{name: "cost", kind: kindNumber, number: func(c *card.Card) (int, bool) { return c.Cost, true }},
	{name: "power", kind: kindNumber, number: func(c *card.Card) (int, bool) { return optional(c.Power) }},
	{name: "hp", kind: kindNumber, number: func(c *card.Card) (int, bool) { return optional(c.HP) }},
	{name: "unique", kind: kindBool, flag: func(c *card.Card) bool { return c.Unique }},
}

var aliases = map[string]string{
	"t":        "title",
	"name":     "title",
	"st":       "subtitle",
	"aspects":  "aspect",
	"a":        "aspect",
	"traits":   "trait",
	"tr":       "trait",
	"arenas":   "arena",
	"ar":       "arena",
	"r":        "rarity",
	"gametext": "text",
	"gt":       "text",
	"pow":      "power",
	"u":        "unique",
}

func lookupField(name string) (fieldDef, bool) {
	name = strings.ToLower(name)
	if canonical, ok := aliases[name]; ok {
		name = canonical
	}
	for _, f := range fields {
		if f.name == name {
			return f, true
		}
	}
	return fieldDef{}, false
}

// clause is one "field operator value" test.
type clause struct {
	field fieldDef
	op    operator
	value string
	num   int
	flag  bool
	word  *regexp.Regexp
}

func newClause(def fieldDef, op operator, value string) (*clause, error) {
	c := &clause{field: def, op: op, value: strings.ToLower(value)}

	switch def.kind {
	case kindText:
		switch op {
		case opContains, opEq, opNe:
		case opMatches:
			c.word = regexp.MustCompile(`(?i)(?:^|[^\p{L}\p{N}_])` + regexp.QuoteMeta(c.value) + `(?:$|[^\p{L}\p{N}_])`)
		default:
			return nil, fmt.Errorf("%w: %s %s", ErrBadOperator, def.name, op)
		}

	case kindNumber:
		switch op {
		case opEq, opNe, opLt, opLe, opGt, opGe:
		default:
			return nil, fmt.Errorf("%w: %s %s", ErrBadOperator, def.name, op)
		}
		n, err := strconv.Atoi(c.value)
		if err != nil {
			return nil, fmt.Errorf("%w: %s expects a number, got %q", ErrBadValue, def.name, value)
		}
		c.num = n

	case kindBool:
		if op != opEq && op != opNe {
			return nil, fmt.Errorf("%w: %s %s", ErrBadOperator, def.name, op)
		}
		switch c.value {
		case "true", "yes", "y", "1":
			c.flag = true
		case "false", "no", "n", "0":
			c.flag = false
		default:
			return nil, fmt.Errorf("%w: %s expects true or false, got %q", ErrBadValue, def.name, value)
		}
	}

	return c, nil
}

func (cl *clause) match(c *card.Card) bool {
	switch cl.field.kind {
	case kindNumber:
		v, ok := cl.field.number(c)
		if !ok {
			return false
		}
		return compare(v, cl.op, cl.num)

	case kindBool:
		if cl.op == opNe {
			return cl.field.flag(c) != cl.flag
		}
		return cl.field.flag(c) == cl.flag
	}

	switch {
	case cl.op == opEq && cl.field.equals != nil:
		return cl.field.equals(c, cl.value)
	case cl.op == opNe && cl.field.equals != nil:
		return !cl.field.equals(c, cl.value)
	case cl.op == opContains && cl.field.contains != nil:
		return cl.field.contains(c, cl.value)
	}

	values := cl.field.text(c)
	if cl.op == opNe {
		for _, v := range values {
			if strings.EqualFold(v, cl.value) {
				return false
			}
		}
		return true
	}

	for _, v := range values {
		if v == "" {
			continue
		}
		switch cl.op {
		case opContains:
			if strings.Contains(strings.ToLower(v), cl.value) {
				return true
			}
		case opMatches:
			if cl.word.MatchString(v) {
				return true
			}
		case opEq:
			if strings.EqualFold(v, cl.value) {
				return true
			}
		}
	}
	return false
}

func compare(v int, op operator, n int) bool {
	switch op {
	case opEq:
		return v == n
	case opNe:
		return v != n
	case opLt:
		return v < n
	case opLe:
		return v <= n
	case opGt:
		return v > n
	case opGe:
		return v >= n
	}
	return false
}
