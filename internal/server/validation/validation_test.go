package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateWords(t *testing.T) {
	lv := &LemmatizeValidator{MaxWords: 2, MaxWordLength: 4, MaxTextLength: 8}

	assert.NoError(t, lv.ValidateWords([]string{"cats", "äöüß"}))
	assert.NoError(t, lv.ValidateWords(nil))
	assert.ErrorIs(t, lv.ValidateWords([]string{"a", "b", "c"}), ErrTooManyWords)
	assert.ErrorIs(t, lv.ValidateWords([]string{"kitten"}), ErrWordTooLong)
	assert.ErrorIs(t, lv.ValidateWords([]string{"\xff"}), ErrInvalidUTF8)
}

func TestValidateText(t *testing.T) {
	lv := &LemmatizeValidator{MaxWords: 2, MaxWordLength: 4, MaxTextLength: 8}

	assert.NoError(t, lv.ValidateText("two cats"))
	assert.ErrorIs(t, lv.ValidateText(strings.Repeat("a", 9)), ErrTextTooLong)
	assert.ErrorIs(t, lv.ValidateText("\xfe"), ErrInvalidUTF8)
}

func TestValidateSource(t *testing.T) {
	assert.NoError(t, ValidateSource("en.tsv", ""))
	assert.NoError(t, ValidateSource("", "en"))
	assert.ErrorIs(t, ValidateSource(" ", ""), ErrNoSource)
	assert.ErrorIs(t, ValidateSource("en.tsv", "en"), ErrAmbiguousSource)
}
