// Package searchquery encodes and decodes the query-string state shared by
// the web UI and the batch lookup endpoint.
package searchquery

import (
	"net/url"
	"strings"
)

// Query-string keys.
const (
	KeyWords  = "q"
	KeyEdit   = "edit"
	KeyLegacy = "search"
)

// State is the decoded query-string state.
type State struct {
	Words []string
	Edit  bool
}

// EncodeWords returns the query values for words. Blank words are dropped;
// order is kept.
func EncodeWords(words []string) url.Values {
	v := url.Values{}
	for _, w := range words {
		if strings.TrimSpace(w) == "" {
			continue
		}
		v.Add(KeyWords, w)
	}
	return v
}

// DecodeWords returns the non-blank words in values, in order.
func DecodeWords(values url.Values) []string {
	raw := values[KeyWords]
	words := make([]string, 0, len(raw))
	for _, w := range raw {
		if strings.TrimSpace(w) == "" {
			continue
		}
		words = append(words, w)
	}
	return words
}

// Decode returns the full state held by values.
func Decode(values url.Values) State {
	return State{
		Words: DecodeWords(values),
		Edit:  values.Has(KeyEdit),
	}
}

// Encode is the inverse of Decode.
func (s State) Encode() url.Values {
	v := EncodeWords(s.Words)
	if s.Edit {
		v.Set(KeyEdit, "true")
	}
	return v
}

// IsSearchView reports whether values describe the results view: at least
// one word and no edit flag.
func IsSearchView(values url.Values) bool {
	if values.Has(KeyEdit) {
		return false
	}
	return len(DecodeWords(values)) > 0
}

// MigrateLegacy moves values under the legacy "search" key to "q".
// ok is false when there is nothing to migrate; values itself is never modified.
func MigrateLegacy(values url.Values) (migrated url.Values, ok bool) {
	legacy, present := values[KeyLegacy]
	if !present {
		return values, false
	}

	migrated = clone(values)
	delete(migrated, KeyLegacy)
	for _, w := range legacy {
		if strings.TrimSpace(w) == "" {
			continue
		}
		migrated.Add(KeyWords, w)
	}
	return migrated, true
}

// ToggleEdit returns a copy of values with the edit flag flipped.
func ToggleEdit(values url.Values) url.Values {
	toggled := clone(values)
	if toggled.Has(KeyEdit) {
		toggled.Del(KeyEdit)
	} else {
		toggled.Set(KeyEdit, "true")
	}
	return toggled
}

func clone(values url.Values) url.Values {
	c := make(url.Values, len(values))
	for k, vs := range values {
		c[k] = append([]string(nil), vs...)
	}
	return c
}
