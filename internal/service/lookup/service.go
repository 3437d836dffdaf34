// Package lookup implements the dictionary operations exposed over HTTP:
// autocomplete, single-word lookup and batch lookup.
package lookup

import (
	"context"
	"log/slog"

	"github.com/heartmarshall/paradict-backend/internal/config"
	"github.com/heartmarshall/paradict-backend/internal/domain"
)

type dictionaryProvider interface {
	FetchSuggestions(ctx context.Context, prefix string) ([]domain.SuggestionOption, error)
	FetchDefinitions(ctx context.Context, word string) ([]domain.DictionaryEntry, error)
}

type responseCache interface {
	Suggestions(prefix string) ([]domain.SuggestionOption, bool)
	StoreSuggestions(prefix string, options []domain.SuggestionOption)
	Lookup(word string) (domain.LookupResult, bool)
	StoreLookup(word string, result domain.LookupResult)
}

// Service resolves autocomplete prefixes and dictionary lookups against an
// upstream provider, with an optional response cache in front of it.
type Service struct {
	log      *slog.Logger
	provider dictionaryProvider
	cache    responseCache
	cfg      config.LookupConfig
}

// NewService creates a new lookup service. cache may be nil.
func NewService(
	logger *slog.Logger,
	provider dictionaryProvider,
	cache responseCache,
	cfg config.LookupConfig,
) *Service {
	if cache == nil {
		cache = noCache{}
	}
	return &Service{
		log:      logger.With("service", "lookup"),
		provider: provider,
		cache:    cache,
		cfg:      cfg,
	}
}

type noCache struct{}

func (noCache) Suggestions(string) ([]domain.SuggestionOption, bool) { return nil, false }
func (noCache) StoreSuggestions(string, []domain.SuggestionOption)   {}
func (noCache) Lookup(string) (domain.LookupResult, bool)            { return domain.LookupResult{}, false }
func (noCache) StoreLookup(string, domain.LookupResult)              {}
