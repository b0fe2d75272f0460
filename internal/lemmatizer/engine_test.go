package lemmatizer

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/box1bs/lemmagen/internal/ruleset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const rulesA = `ing	3		1
nning	5	n	3
s	1		2
ies	3	y	4
`

func writeRules(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rules.tsv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestEngineLemmatize(t *testing.T) {
	e, err := New(writeRules(t, rulesA))
	require.NoError(t, err)

	tests := []struct {
		word string
		want string
	}{
		{"", ""},
		{"running", "run"},
		{"singing", "sing"},
		{"cats", "cat"},
		{"flies", "fly"},
		{"tree", "tree"},
		{"ing", ""},
	}
	for _, tt := range tests {
		t.Run(tt.word, func(t *testing.T) {
			assert.Equal(t, tt.want, e.Lemmatize(tt.word))
			assert.Equal(t, "x"+tt.want, string(e.LemmatizeTo([]byte("x"), tt.word)))
		})
	}
}

func TestEngineLiteralArithmetic(t *testing.T) {
	e, err := New(writeRules(t, "ing\t3\t\t1\n"))
	require.NoError(t, err)
	assert.Equal(t, "runn", e.Lemmatize("running"))
}

func TestEngineIdentityFallback(t *testing.T) {
	e, err := New(writeRules(t, "xyz\t3\t\t1\n"))
	require.NoError(t, err)

	for _, w := range []string{"a", "running", "Xyz", "xy", "ëxy", "日本語"} {
		assert.Equal(t, w, e.Lemmatize(w))
	}
}

func TestEngineSuffixProperty(t *testing.T) {
	store, err := ruleset.BuildFromBytes([]byte("ab\t2\tX\t1\ncd\t2\t\t1\nef\t2\tyz\t1\nгу\t2\tга\t1\n"))
	require.NoError(t, err)
	e := NewFromStore(store)

	for _, prefix := range []string{"", "q", "qqq", "пре"} {
		for _, r := range store.Rules() {
			assert.Equal(t, prefix+r.Append, e.Lemmatize(prefix+r.Suffix))
		}
	}
}

func TestEngineMaxLemmaLen(t *testing.T) {
	e, err := New(writeRules(t, "a\t1\tbcd\t1\nx\t0\tyy\t1\n"))
	require.NoError(t, err)

	for _, w := range []string{"a", "ba", "x", "ax", "none"} {
		assert.LessOrEqual(t, len(e.Lemmatize(w)), e.MaxLemmaLen(w), w)
	}
	assert.Equal(t, 3+2, e.MaxLemmaLen("abc"))
}

func TestNewPropagatesErrors(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "missing"))
	assert.True(t, errors.Is(err, ruleset.ErrFileNotFound))

	_, err = New(t.TempDir())
	assert.True(t, errors.Is(err, ruleset.ErrNotAFile))

	_, err = New(writeRules(t, "ing\t3\t\n"))
	assert.True(t, errors.Is(err, ruleset.ErrMalformedRuleFile))
}
