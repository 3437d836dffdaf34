package lookup

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/graph-gophers/dataloader/v7"
	"golang.org/x/sync/errgroup"

	"github.com/heartmarshall/paradict-backend/internal/domain"
)

// batchWait is how long the loader collects keys before dispatching.
const batchWait = 2 * time.Millisecond

// LookupMany looks up every word of a batch. Words that normalize to the same
// key are fetched once, and at most MaxConcurrent fetches run at a time.
// A failing word is reported in its item and never fails the batch.
func (s *Service) LookupMany(ctx context.Context, words []string) ([]domain.BatchItem, error) {
	cleaned := make([]string, 0, len(words))
	for _, w := range words {
		if w = strings.TrimSpace(w); w != "" {
			cleaned = append(cleaned, w)
		}
	}

	if len(cleaned) == 0 {
		return nil, domain.NewValidationError("q", "at least one word is required")
	}
	if s.cfg.MaxBatchWords > 0 && len(cleaned) > s.cfg.MaxBatchWords {
		return nil, domain.NewValidationError("q",
			fmt.Sprintf("at most %d words are allowed", s.cfg.MaxBatchWords))
	}

	loader := s.newWordLoader(len(cleaned))

	thunks := make([]dataloader.Thunk[domain.LookupResult], len(cleaned))
	for i, w := range cleaned {
		thunks[i] = loader.Load(ctx, domain.NormalizeText(w))
	}

	items := make([]domain.BatchItem, len(cleaned))
	for i, w := range cleaned {
		result, err := thunks[i]()
		items[i] = batchItem(w, result, err)
		if err != nil {
			s.log.WarnContext(ctx, "batch word failed",
				slog.String("word", w),
				slog.String("error", err.Error()),
			)
		}
	}

	return items, nil
}

// newWordLoader builds a per-call loader; its cache is what de-duplicates words.
func (s *Service) newWordLoader(capacity int) *dataloader.Loader[string, domain.LookupResult] {
	return dataloader.NewBatchedLoader(
		s.fetchWords,
		dataloader.WithWait[string, domain.LookupResult](batchWait),
		dataloader.WithBatchCapacity[string, domain.LookupResult](capacity),
	)
}

func (s *Service) fetchWords(ctx context.Context, keys []string) []*dataloader.Result[domain.LookupResult] {
	results := make([]*dataloader.Result[domain.LookupResult], len(keys))

	var g errgroup.Group
	if s.cfg.MaxConcurrent > 0 {
		g.SetLimit(s.cfg.MaxConcurrent)
	}

	for i, key := range keys {
		g.Go(func() error {
			res, err := s.Lookup(ctx, key)
			results[i] = &dataloader.Result[domain.LookupResult]{Data: res, Error: err}
			return nil
		})
	}
	_ = g.Wait()

	return results
}

func batchItem(word string, result domain.LookupResult, err error) domain.BatchItem {
	item := domain.BatchItem{Word: word, Data: []domain.DictionaryEntry{}}

	switch {
	case err != nil:
		item.Status = domain.BatchStatusFailed
		item.Error = failureReason(err)
	case !result.Found():
		item.Status = domain.BatchStatusNotFound
	default:
		item.Status = domain.BatchStatusOK
		item.Data = result.Data
	}
	return item
}

// failureReason hides upstream detail from clients.
func failureReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrParse):
		return "upstream response could not be parsed"
	case errors.Is(err, domain.ErrUpstream):
		return "upstream unavailable"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "request cancelled"
	default:
		return "lookup failed"
	}
}
