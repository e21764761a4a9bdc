package match

import (
	"strings"

	"harshagw/textanalysis/internal/analysis"
)

// windowCache maps a token sequence to its windows. It lives as long as the
// Matcher that owns it.
type windowCache struct {
	entries map[string]*analysis.Windows
	hits    int
	misses  int
}

func newWindowCache() *windowCache {
	return &windowCache{entries: make(map[string]*analysis.Windows)}
}

func (c *windowCache) get(tokens []string) *analysis.Windows {
	key := strings.Join(tokens, "\x00")
	if w, ok := c.entries[key]; ok {
		c.hits++
		return w
	}
	c.misses++
	w := analysis.NewWindows(tokens)
	c.entries[key] = w
	return w
}

// CacheStats reports window cache usage.
type CacheStats struct {
	Entries int
	Hits    int
	Misses  int
}

func (c *windowCache) stats() CacheStats {
	return CacheStats{Entries: len(c.entries), Hits: c.hits, Misses: c.misses}
}
