// Package longdo scrapes the Longdo dictionary sites: the head-word search
// used for autocomplete and the mobile dictionary page used for lookups.
package longdo

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/heartmarshall/paradict-backend/internal/config"
	"github.com/heartmarshall/paradict-backend/internal/domain"
)

const (
	suggestPath = "/BWTSearch/HeadSearch"
	dictPath    = "/mobile.php"

	// maxBodyBytes caps how much of an upstream response is read.
	maxBodyBytes = 4 << 20
)

// Provider fetches suggestions and dictionary pages from Longdo.
// It performs exactly one upstream request per call and never retries.
type Provider struct {
	suggestBaseURL string
	dictBaseURL    string
	userAgent      string
	httpClient     *http.Client
	log            *slog.Logger
}

// NewProvider creates a Provider from the upstream configuration.
func NewProvider(cfg config.UpstreamConfig, logger *slog.Logger) *Provider {
	return &Provider{
		suggestBaseURL: strings.TrimRight(cfg.SuggestBaseURL, "/"),
		dictBaseURL:    strings.TrimRight(cfg.DictBaseURL, "/"),
		userAgent:      cfg.UserAgent,
		httpClient:     &http.Client{Timeout: cfg.Timeout},
		log:            logger.With("adapter", "longdo"),
	}
}

// FetchSuggestions returns de-duplicated autocomplete options for prefix.
func (p *Provider) FetchSuggestions(ctx context.Context, prefix string) ([]domain.SuggestionOption, error) {
	query := url.Values{
		"json":  {"1"},
		"ds":    {"head"},
		"num":   {"20"},
		"count": {strconv.Itoa(utf8.RuneCountInString(prefix))},
		"key":   {prefix},
	}

	p.log.DebugContext(ctx, "longdo suggest request", slog.String("prefix", prefix))

	body, err := p.get(ctx, p.suggestBaseURL+suggestPath, query)
	if err != nil {
		p.log.ErrorContext(ctx, "longdo suggest failed", slog.String("prefix", prefix), slog.String("error", err.Error()))
		return nil, fmt.Errorf("longdo: fetch suggestions: %w", err)
	}

	options, err := ParseSuggestions(body)
	if err != nil {
		p.log.WarnContext(ctx, "longdo suggest response not parseable",
			slog.String("prefix", prefix),
			slog.Int("bytes", len(body)),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("longdo: parse suggestions: %w", err)
	}

	p.log.DebugContext(ctx, "longdo suggest response",
		slog.String("prefix", prefix),
		slog.Int("options", len(options)),
	)

	return options, nil
}

// FetchDefinitions returns one DictionaryEntry per upstream dictionary that
// matched word. An empty slice means no dictionary matched.
func (p *Provider) FetchDefinitions(ctx context.Context, word string) ([]domain.DictionaryEntry, error) {
	p.log.DebugContext(ctx, "longdo dict request", slog.String("word", word))

	body, err := p.get(ctx, p.dictBaseURL+dictPath, url.Values{"search": {word}})
	if err != nil {
		p.log.ErrorContext(ctx, "longdo dict failed", slog.String("word", word), slog.String("error", err.Error()))
		return nil, fmt.Errorf("longdo: fetch definitions: %w", err)
	}

	entries, err := ParseDictionaryPage(body, word)
	if err != nil {
		return nil, fmt.Errorf("longdo: parse definitions: %w", err)
	}

	p.log.DebugContext(ctx, "longdo dict response",
		slog.String("word", word),
		slog.Int("dictionaries", len(entries)),
	)

	return entries, nil
}

// Ping checks that the dictionary host answers. Any status below 500 counts as up.
func (p *Provider) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, p.dictBaseURL+"/", nil)
	if err != nil {
		return fmt.Errorf("longdo: create ping request: %w", err)
	}
	p.setHeaders(req)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("longdo: ping: %w: %v", domain.ErrUpstream, err)
	}
	resp.Body.Close()

	if resp.StatusCode >= http.StatusInternalServerError {
		return fmt.Errorf("longdo: ping: %w: status %d", domain.ErrUpstream, resp.StatusCode)
	}
	return nil
}

// get performs a single GET and returns the body of a 2xx response.
// Transport failures and other statuses are reported as domain.ErrUpstream.
func (p *Provider) get(ctx context.Context, endpoint string, query url.Values) ([]byte, error) {
	reqURL := endpoint + "?" + query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	p.setHeaders(req)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: unexpected status %d", domain.ErrUpstream, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %v", domain.ErrUpstream, err)
	}
	return body, nil
}

func (p *Provider) setHeaders(req *http.Request) {
	if p.userAgent != "" {
		req.Header.Set("User-Agent", p.userAgent)
	}
}
