package longdo

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/heartmarshall/paradict-backend/internal/domain"
)

// rawSuggestion is one record of the head-word search payload.
type rawSuggestion struct {
	// D is the head word rendered with <FONT color=blue> highlights.
	D string `json:"d"`
	// W is the plain head word.
	W string `json:"w"`
}

var (
	highlightTagRe = regexp.MustCompile(`(?i)<FONT color=blue>|</FONT>`)
	lineBreakRe    = regexp.MustCompile(`\r?\n|\r`)
)

// extractSuggestionBlock returns the JSON array embedded in the upstream
// response: everything from the first '[' to the last ']' with line breaks removed.
func extractSuggestionBlock(body []byte) ([]byte, bool) {
	start := bytes.IndexByte(body, '[')
	end := bytes.LastIndexByte(body, ']')
	if start < 0 || end < start {
		return nil, false
	}
	return lineBreakRe.ReplaceAll(body[start:end+1], nil), true
}

// ParseSuggestions decodes the head-word search response into options,
// de-duplicated by lowercase label with the first occurrence kept in place.
func ParseSuggestions(body []byte) ([]domain.SuggestionOption, error) {
	block, ok := extractSuggestionBlock(body)
	if !ok {
		return nil, fmt.Errorf("%w: no json array in suggestion response", domain.ErrParse)
	}

	var raw []rawSuggestion
	if err := json.Unmarshal(block, &raw); err != nil {
		return nil, fmt.Errorf("%w: decode suggestions: %v", domain.ErrParse, err)
	}

	options := make([]domain.SuggestionOption, 0, len(raw))
	seen := make(map[string]struct{}, len(raw))
	for _, r := range raw {
		label := FormatLabel(r.D)
		key := strings.ToLower(label)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		options = append(options, domain.SuggestionOption{
			Label: label,
			Value: strings.ToLower(r.W),
		})
	}

	return options, nil
}

// FormatLabel turns upstream highlight tags into ** emphasis markers and
// drops the empty "****" pairs left by adjacent tags.
func FormatLabel(d string) string {
	s := highlightTagRe.ReplaceAllString(d, "**")
	return strings.ReplaceAll(s, "****", "")
}
