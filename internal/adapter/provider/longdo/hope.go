package longdo

import (
	"regexp"
	"strings"
)

// The Hope dictionary returns every sense of a word as one run-on string,
// e.g. "n. แมว (แคท) vi. ร้องเหมียว". hopeScanner splits it back into
// "(n.) แมว" and "(vi.) ร้องเหมียว".

type tokenKind int

const (
	tokenText tokenKind = iota
	tokenPartOfSpeech
	tokenPronunciation
)

var (
	partOfSpeechRe  = regexp.MustCompile(`^[a-z]{1,5}[.,]{1,2}$`)
	pronunciationRe = regexp.MustCompile(`^\([\x{0E01}-\x{0E4F}]+\)$`)

	// bareTags are part-of-speech abbreviations Hope sometimes prints without a period.
	bareTags = map[string]struct{}{
		"n": {}, "v": {}, "vi": {}, "vt": {}, "adj": {}, "adv": {},
		"prep": {}, "pron": {}, "conj": {}, "int": {}, "abbr": {},
	}
)

func classifyToken(tok string) tokenKind {
	if partOfSpeechRe.MatchString(tok) {
		return tokenPartOfSpeech
	}
	if _, ok := bareTags[tok]; ok {
		return tokenPartOfSpeech
	}
	if pronunciationRe.MatchString(tok) {
		return tokenPronunciation
	}
	return tokenText
}

// hopeEntry is one re-segmented sense.
type hopeEntry struct {
	partOfSpeech string
	meaning      string
}

func (e hopeEntry) String() string {
	return strings.TrimSpace("(" + e.partOfSpeech + ") " + e.meaning)
}

// hopeScanner is a greedy left-to-right state machine over whitespace tokens.
type hopeScanner struct {
	pendingTag     []string
	pendingMeaning []string
	entries        []hopeEntry
}

func (s *hopeScanner) feed(tok string) {
	switch classifyToken(tok) {
	case tokenPartOfSpeech:
		// A tag directly after another tag extends it ("vi.," "vt.").
		if len(s.pendingTag) == 0 || len(s.pendingMeaning) > 0 {
			s.flush()
			s.pendingTag = []string{tok}
			return
		}
		s.pendingTag = append(s.pendingTag, tok)
	case tokenPronunciation:
		// Dropped.
	case tokenText:
		// Text before the first tag has nothing to attach to.
		if len(s.pendingTag) > 0 {
			s.pendingMeaning = append(s.pendingMeaning, tok)
		}
	}
}

func (s *hopeScanner) flush() {
	if len(s.pendingTag) == 0 {
		return
	}
	s.entries = append(s.entries, hopeEntry{
		partOfSpeech: strings.Join(s.pendingTag, " "),
		meaning:      strings.Join(s.pendingMeaning, " "),
	})
	s.pendingTag = nil
	s.pendingMeaning = nil
}

// segmentHope splits a Hope definition into "(tag) meaning" strings.
// The split is heuristic: the upstream text has no real delimiters.
func segmentHope(definition string) []string {
	var s hopeScanner
	for _, tok := range strings.Fields(definition) {
		s.feed(tok)
	}
	s.flush()

	out := make([]string, 0, len(s.entries))
	for _, e := range s.entries {
		out = append(out, e.String())
	}
	return out
}

func isHopeDictionary(name string) bool {
	return strings.Contains(name, "Hope")
}
