package search

import (
	"regexp"

	lru "github.com/hashicorp/golang-lru/v2"
)

// defaultPatternCacheSize bounds the number of compiled whole-word patterns kept.
const defaultPatternCacheSize = 512

// wordChars is the character class that may not touch a whole-word match.
const wordChars = `\p{L}\p{N}_`

// patternCache compiles and caches whole-word patterns per term.
type patternCache struct {
	cache *lru.Cache[string, *regexp.Regexp]
}

func newPatternCache(size int) *patternCache {
	if size <= 0 {
		size = defaultPatternCacheSize
	}
	// lru.New only fails for a non-positive size
	c, _ := lru.New[string, *regexp.Regexp](size)
	return &patternCache{cache: c}
}

// wholeWord returns a case-insensitive pattern matching term when it is not
// immediately preceded or followed by a word character.
func (p *patternCache) wholeWord(term string) *regexp.Regexp {
	if re, ok := p.cache.Get(term); ok {
		return re
	}
	re := regexp.MustCompile(`(?i)(?:^|[^` + wordChars + `])` + regexp.QuoteMeta(term) + `(?:$|[^` + wordChars + `])`)
	p.cache.Add(term, re)
	return re
}

// Len reports how many patterns are cached.
func (p *patternCache) Len() int {
	return p.cache.Len()
}
