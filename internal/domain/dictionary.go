package domain

// SuggestionOption is one autocomplete candidate.
// Label may carry **emphasis** markers; Value is the lowercased lookup key.
type SuggestionOption struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// DictionaryEntry groups the definitions one upstream dictionary returned for a word.
type DictionaryEntry struct {
	Dict    string   `json:"dict"`
	Results []string `json:"results"`
}

// LookupResult aggregates every dictionary that matched a word.
// An empty Data means the word was not found.
type LookupResult struct {
	Word string            `json:"word"`
	Data []DictionaryEntry `json:"data"`
}

// Found reports whether at least one dictionary matched.
func (r *LookupResult) Found() bool {
	return len(r.Data) > 0
}

// BatchStatus is the outcome of a single word inside a batch lookup.
type BatchStatus string

const (
	BatchStatusOK       BatchStatus = "ok"
	BatchStatusNotFound BatchStatus = "not_found"
	BatchStatusFailed   BatchStatus = "failed"
)

// BatchItem is one word of a batch lookup response.
type BatchItem struct {
	Word   string            `json:"word"`
	Status BatchStatus       `json:"status"`
	Data   []DictionaryEntry `json:"data"`
	Error  string            `json:"error,omitempty"`
}
