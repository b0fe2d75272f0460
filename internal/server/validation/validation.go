package validation

import (
	"strings"
	"unicode/utf8"

	"github.com/pkg/errors"
)

var (
	ErrEmptyRequest   = errors.New("request has neither words nor text")
	ErrTooManyWords   = errors.New("too many words in request")
	ErrWordTooLong    = errors.New("word too long")
	ErrTextTooLong    = errors.New("text too long")
	ErrInvalidUTF8    = errors.New("input is not valid UTF-8")
	ErrNoSource       = errors.New("either path or language must be set")
	ErrAmbiguousSource = errors.New("only one of path and language may be set")
)

type LemmatizeValidator struct {
	MaxWords 		int
	MaxWordLength 	int
	MaxTextLength 	int
}

func NewLemmatizeValidator() *LemmatizeValidator {
	return &LemmatizeValidator{
		MaxWords: 		10000,
		MaxWordLength: 	256,
		MaxTextLength: 	1 << 20,
	}
}

func (lv *LemmatizeValidator) ValidateWords(words []string) error {
	if len(words) > lv.MaxWords {
		return ErrTooManyWords
	}
	for _, w := range words {
		if !utf8.ValidString(w) {
			return ErrInvalidUTF8
		}
		if utf8.RuneCountInString(w) > lv.MaxWordLength {
			return errors.Wrapf(ErrWordTooLong, "%.32q", w)
		}
	}
	return nil
}

func (lv *LemmatizeValidator) ValidateText(text string) error {
	if len(text) > lv.MaxTextLength {
		return ErrTextTooLong
	}
	if !utf8.ValidString(text) {
		return ErrInvalidUTF8
	}
	return nil
}

func ValidateSource(path, language string) error {
	path, language = strings.TrimSpace(path), strings.TrimSpace(language)
	switch {
	case path == "" && language == "":
		return ErrNoSource
	case path != "" && language != "":
		return ErrAmbiguousSource
	}
	return nil
}
