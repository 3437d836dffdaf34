// Package cache keeps recent upstream responses in process memory.
package cache

import (
	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/heartmarshall/paradict-backend/internal/config"
	"github.com/heartmarshall/paradict-backend/internal/domain"
)

// Responses caches autocomplete options and lookup results by normalized key.
// A nil *Responses is valid and caches nothing.
type Responses struct {
	suggestions *expirable.LRU[string, []domain.SuggestionOption]
	lookups     *expirable.LRU[string, domain.LookupResult]
}

// New creates a response cache from the cache policy.
// Returns nil when cfg.Size is 0. A MaxAge of 0 keeps entries until evicted.
func New(cfg config.CacheConfig) *Responses {
	if cfg.Size <= 0 {
		return nil
	}
	return &Responses{
		suggestions: expirable.NewLRU[string, []domain.SuggestionOption](cfg.Size, nil, cfg.MaxAge),
		lookups:     expirable.NewLRU[string, domain.LookupResult](cfg.Size, nil, cfg.MaxAge),
	}
}

// Suggestions returns cached options for prefix.
func (c *Responses) Suggestions(prefix string) ([]domain.SuggestionOption, bool) {
	if c == nil {
		return nil, false
	}
	return c.suggestions.Get(prefix)
}

// StoreSuggestions caches options for prefix.
func (c *Responses) StoreSuggestions(prefix string, options []domain.SuggestionOption) {
	if c == nil {
		return
	}
	c.suggestions.Add(prefix, options)
}

// Lookup returns the cached result for word.
func (c *Responses) Lookup(word string) (domain.LookupResult, bool) {
	if c == nil {
		return domain.LookupResult{}, false
	}
	return c.lookups.Get(word)
}

// StoreLookup caches the result for word.
func (c *Responses) StoreLookup(word string, result domain.LookupResult) {
	if c == nil {
		return
	}
	c.lookups.Add(word, result)
}

// Len returns the number of cached entries of both kinds.
func (c *Responses) Len() int {
	if c == nil {
		return 0
	}
	return c.suggestions.Len() + c.lookups.Len()
}

// Purge drops every cached entry.
func (c *Responses) Purge() {
	if c == nil {
		return
	}
	c.suggestions.Purge()
	c.lookups.Purge()
}
