package lookup

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/heartmarshall/paradict-backend/internal/domain"
)

// Autocomplete returns suggestion options for a prefix of at least
// MinPrefixLen characters. Invalid prefixes never reach the upstream.
func (s *Service) Autocomplete(ctx context.Context, prefix string) ([]domain.SuggestionOption, error) {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		return nil, domain.NewValidationError("search", "required")
	}
	if utf8.RuneCountInString(prefix) < s.cfg.MinPrefixLen {
		return nil, domain.NewValidationError("search",
			fmt.Sprintf("must be at least %d characters", s.cfg.MinPrefixLen))
	}

	if options, ok := s.cache.Suggestions(prefix); ok {
		s.log.DebugContext(ctx, "autocomplete cache hit", slog.String("prefix", prefix))
		return options, nil
	}

	options, err := s.provider.FetchSuggestions(ctx, prefix)
	if err != nil {
		return nil, fmt.Errorf("autocomplete: %w", err)
	}

	s.cache.StoreSuggestions(prefix, options)
	return options, nil
}
