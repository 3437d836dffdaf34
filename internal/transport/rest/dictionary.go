package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/heartmarshall/paradict-backend/internal/domain"
	"github.com/heartmarshall/paradict-backend/internal/searchquery"
)

// lookupService defines the minimal interface needed by DictionaryHandler.
type lookupService interface {
	Autocomplete(ctx context.Context, prefix string) ([]domain.SuggestionOption, error)
	Lookup(ctx context.Context, word string) (domain.LookupResult, error)
	LookupMany(ctx context.Context, words []string) ([]domain.BatchItem, error)
}

// DictionaryHandler serves the autocomplete, lookup and batch lookup endpoints.
type DictionaryHandler struct {
	svc          lookupService
	cacheControl string
	log          *slog.Logger
}

// NewDictionaryHandler creates a DictionaryHandler. cacheControl is sent on
// every successful (or not-found) response; empty disables the header.
func NewDictionaryHandler(svc lookupService, cacheControl string, logger *slog.Logger) *DictionaryHandler {
	return &DictionaryHandler{
		svc:          svc,
		cacheControl: cacheControl,
		log:          logger.With("handler", "dictionary"),
	}
}

// Register mounts the handler's routes on mux.
func (h *DictionaryHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/api/autocomplete", h.Autocomplete)
	mux.HandleFunc("/api/dict", h.Dict)
	mux.HandleFunc("/api/lookup", h.Lookup)
}

type batchResponse struct {
	Words []domain.BatchItem `json:"words"`
}

// Autocomplete handles GET /api/autocomplete?search=<prefix>.
func (h *DictionaryHandler) Autocomplete(w http.ResponseWriter, r *http.Request) {
	search, ok := searchParam(w, r)
	if !ok {
		return
	}

	options, err := h.svc.Autocomplete(r.Context(), search)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	if options == nil {
		options = []domain.SuggestionOption{}
	}

	h.setCacheControl(w)
	writeJSON(w, http.StatusOK, options)
}

// Dict handles GET /api/dict?search=<word>. No match is a 404 that still
// carries the {word, data: []} body.
func (h *DictionaryHandler) Dict(w http.ResponseWriter, r *http.Request) {
	search, ok := searchParam(w, r)
	if !ok {
		return
	}

	result, err := h.svc.Lookup(r.Context(), search)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	status := http.StatusOK
	if !result.Found() {
		status = http.StatusNotFound
		result.Data = []domain.DictionaryEntry{}
	}

	h.setCacheControl(w)
	writeJSON(w, status, result)
}

// Lookup handles GET /api/lookup?q=<word>&q=<word>... using the same query
// contract as the web UI, including the legacy search key.
func (h *DictionaryHandler) Lookup(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusBadRequest, "method must be GET")
		return
	}

	values := r.URL.Query()
	if migrated, ok := searchquery.MigrateLegacy(values); ok {
		values = migrated
	}

	items, err := h.svc.LookupMany(r.Context(), searchquery.DecodeWords(values))
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	h.setCacheControl(w)
	writeJSON(w, http.StatusOK, batchResponse{Words: items})
}

// searchParam enforces GET and a non-empty search parameter.
func searchParam(w http.ResponseWriter, r *http.Request) (string, bool) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusBadRequest, "method must be GET")
		return "", false
	}
	search := r.URL.Query().Get("search")
	if search == "" {
		writeError(w, http.StatusBadRequest, "search is required")
		return "", false
	}
	return search, true
}

func (h *DictionaryHandler) setCacheControl(w http.ResponseWriter) {
	if h.cacheControl != "" {
		w.Header().Set("Cache-Control", h.cacheControl)
	}
}
