package searchquery

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEncodeDecodeWords(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		words []string
		want  []string
	}{
		{"simple", []string{"cat", "dog"}, []string{"cat", "dog"}},
		{"keeps order", []string{"dog", "cat", "bird"}, []string{"dog", "cat", "bird"}},
		{"drops blanks", []string{"cat", "", "  ", "dog"}, []string{"cat", "dog"}},
		{"thai", []string{"แมว", "cat"}, []string{"แมว", "cat"}},
		{"keeps duplicates", []string{"cat", "cat"}, []string{"cat", "cat"}},
		{"empty", nil, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			// through the wire form as the browser would send it
			parsed, err := url.ParseQuery(EncodeWords(tt.words).Encode())
			assert.NoError(t, err)
			assert.Equal(t, tt.want, DecodeWords(parsed))
		})
	}
}

func TestEncodeWords_UsesArrayKey(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "q=cat&q=dog", EncodeWords([]string{"cat", "dog"}).Encode())
}

func TestIsSearchView(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		query string
		want  bool
	}{
		{"words", "q=cat", true},
		{"no words", "", false},
		{"blank words", "q=&q=+", false},
		{"edit flag", "q=cat&edit=true", false},
		{"edit flag any value", "q=cat&edit", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			values, err := url.ParseQuery(tt.query)
			assert.NoError(t, err)
			assert.Equal(t, tt.want, IsSearchView(values))
		})
	}
}

func TestMigrateLegacy(t *testing.T) {
	t.Parallel()

	values := url.Values{"search": {"cat", "dog"}, "edit": {"true"}}
	migrated, ok := MigrateLegacy(values)

	assert.True(t, ok)
	assert.Equal(t, []string{"cat", "dog"}, DecodeWords(migrated))
	assert.False(t, migrated.Has("search"))
	assert.True(t, migrated.Has("edit"))
	// input untouched
	assert.Equal(t, []string{"cat", "dog"}, values["search"])
}

func TestMigrateLegacy_AppendsToExistingWords(t *testing.T) {
	t.Parallel()

	migrated, ok := MigrateLegacy(url.Values{"q": {"cat"}, "search": {"dog"}})
	assert.True(t, ok)
	assert.Equal(t, []string{"cat", "dog"}, DecodeWords(migrated))
}

func TestMigrateLegacy_NothingToDo(t *testing.T) {
	t.Parallel()

	values := url.Values{"q": {"cat"}}
	migrated, ok := MigrateLegacy(values)
	assert.False(t, ok)
	assert.Equal(t, values, migrated)
}

func TestToggleEdit(t *testing.T) {
	t.Parallel()

	values := url.Values{"q": {"cat"}}

	on := ToggleEdit(values)
	assert.True(t, on.Has("edit"))
	assert.False(t, values.Has("edit"))
	assert.False(t, IsSearchView(on))

	off := ToggleEdit(on)
	assert.False(t, off.Has("edit"))
	assert.True(t, IsSearchView(off))
}

func TestState_RoundTrip(t *testing.T) {
	t.Parallel()

	s := State{Words: []string{"cat", "แมว"}, Edit: true}
	assert.Equal(t, s, Decode(s.Encode()))
}
