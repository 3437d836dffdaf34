package app

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/paradict-backend/internal/config"
	"github.com/heartmarshall/paradict-backend/internal/transport/middleware"
)

const upstreamDictPage = `<html><body>
<b>Hope Dictionary</b>
<table class="result-table"><tr><td>cat</td><td>n. แมว</td></tr></table>
</body></html>`

type fakeLongdo struct {
	srv         *httptest.Server
	dictCalls   atomic.Int32
	suggestHits atomic.Int32
}

func newFakeLongdo(t *testing.T) *fakeLongdo {
	t.Helper()
	f := &fakeLongdo{}
	f.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/mobile.php":
			f.dictCalls.Add(1)
			w.Write([]byte(upstreamDictPage))
		case "/BWTSearch/HeadSearch":
			f.suggestHits.Add(1)
			w.Write([]byte(`cb([{"s":"head","d":"<FONT color=blue>cat</FONT>","w":"Cat","id":"1"}])`))
		default:
			w.WriteHeader(http.StatusOK)
		}
	}))
	t.Cleanup(f.srv.Close)
	return f
}

func testConfig(upstreamURL string) *config.Config {
	return &config.Config{
		Upstream: config.UpstreamConfig{
			SuggestBaseURL: upstreamURL,
			DictBaseURL:    upstreamURL,
			Timeout:        2 * time.Second,
			UserAgent:      "paradict-test",
		},
		Lookup:    config.LookupConfig{MinPrefixLen: 3, MaxConcurrent: 5, MaxBatchWords: 20},
		Cache:     config.CacheConfig{MaxAge: 12 * time.Hour, StaleWhileRevalidate: 24 * time.Hour, Size: 16},
		RateLimit: config.RateLimitConfig{PerMinute: 3, CleanupInterval: time.Minute},
		CORS:      config.CORSConfig{AllowedOrigins: "*", AllowedMethods: "GET,OPTIONS", AllowedHeaders: "Content-Type", MaxAge: 60},
	}
}

func newTestRouter(t *testing.T, cfg *config.Config) http.Handler {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	limiter := middleware.NewRateLimiter(cfg.RateLimit)
	t.Cleanup(limiter.Stop)
	return NewRouter(cfg, NewServices(cfg, logger), limiter, logger)
}

func get(h http.Handler, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	req.RemoteAddr = "192.0.2.10:4444"
	req.Header.Set("Origin", "https://paradict.example")
	h.ServeHTTP(rec, req)
	return rec
}

func TestRouter_DictEndToEnd(t *testing.T) {
	upstream := newFakeLongdo(t)
	h := newTestRouter(t, testConfig(upstream.srv.URL))

	rec := get(h, "/api/dict?search=cat")

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.JSONEq(t, `{"word":"cat","data":[{"dict":"Hope Dictionary","results":["(n.) แมว"]}]}`, rec.Body.String())
	assert.Equal(t, "public, max-age=43200, stale-while-revalidate=86400", rec.Header().Get("Cache-Control"))
	assert.NotEmpty(t, rec.Header().Get(middleware.RequestIDHeader))
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))

	// second request is served from the cache
	get(h, "/api/dict?search=CAT")
	assert.Equal(t, int32(1), upstream.dictCalls.Load())
}

func TestRouter_AutocompleteEndToEnd(t *testing.T) {
	upstream := newFakeLongdo(t)
	h := newTestRouter(t, testConfig(upstream.srv.URL))

	rec := get(h, "/api/autocomplete?search=cat")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[{"label":"**cat**","value":"cat"}]`, rec.Body.String())

	rec = get(h, "/api/autocomplete?search=ca")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, int32(1), upstream.suggestHits.Load())
}

func TestRouter_BatchLookupEndToEnd(t *testing.T) {
	upstream := newFakeLongdo(t)
	h := newTestRouter(t, testConfig(upstream.srv.URL))

	rec := get(h, "/api/lookup?q=cat&q=Cat&q=dog")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Words []struct {
			Word   string `json:"word"`
			Status string `json:"status"`
		} `json:"words"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Words, 3)
	assert.Equal(t, "ok", resp.Words[0].Status)
	assert.Equal(t, "ok", resp.Words[1].Status)
	assert.Equal(t, "not_found", resp.Words[2].Status)
	assert.Equal(t, int32(2), upstream.dictCalls.Load())
}

func TestRouter_RateLimitAppliesToAPIOnly(t *testing.T) {
	upstream := newFakeLongdo(t)
	h := newTestRouter(t, testConfig(upstream.srv.URL))

	for i := 0; i < 3; i++ {
		assert.NotEqual(t, http.StatusTooManyRequests, get(h, "/api/dict?search=cat").Code)
	}
	assert.Equal(t, http.StatusTooManyRequests, get(h, "/api/dict?search=cat").Code)

	assert.Equal(t, http.StatusOK, get(h, "/live").Code)
	assert.Equal(t, http.StatusOK, get(h, "/ready").Code)
}

func TestRouter_HealthReportsVersion(t *testing.T) {
	upstream := newFakeLongdo(t)
	h := newTestRouter(t, testConfig(upstream.srv.URL))

	rec := get(h, "/health")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, BuildVersion(), resp["version"])
}

func TestServe_StopsOnContextCancel(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	srv := &http.Server{Addr: "127.0.0.1:0", Handler: http.NotFoundHandler()}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- serve(ctx, srv, config.ServerConfig{ShutdownTimeout: time.Second}, logger) }()

	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("serve did not return after cancel")
	}
}

func TestServe_ReportsListenError(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	srv := &http.Server{Addr: "127.0.0.1:-1", Handler: http.NotFoundHandler()}

	err := serve(context.Background(), srv, config.ServerConfig{ShutdownTimeout: time.Second}, logger)
	assert.Error(t, err)
}
