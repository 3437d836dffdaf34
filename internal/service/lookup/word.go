package lookup

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/heartmarshall/paradict-backend/internal/domain"
)

// Lookup returns every dictionary that matched word. A result with empty
// Data (and nil error) means the word was not found.
func (s *Service) Lookup(ctx context.Context, word string) (domain.LookupResult, error) {
	word = strings.TrimSpace(word)
	key := domain.NormalizeText(word)
	if key == "" {
		return domain.LookupResult{}, domain.NewValidationError("search", "required")
	}

	if cached, ok := s.cache.Lookup(key); ok {
		s.log.DebugContext(ctx, "lookup cache hit", slog.String("word", word))
		cached.Word = word
		return cached, nil
	}

	entries, err := s.provider.FetchDefinitions(ctx, word)
	if err != nil {
		return domain.LookupResult{}, fmt.Errorf("lookup %q: %w", word, err)
	}
	if entries == nil {
		entries = []domain.DictionaryEntry{}
	}

	result := domain.LookupResult{Word: word, Data: entries}
	s.cache.StoreLookup(key, result)

	if !result.Found() {
		s.log.InfoContext(ctx, "word not found", slog.String("word", word))
	}
	return result, nil
}
