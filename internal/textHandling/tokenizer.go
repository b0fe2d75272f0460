package textHandling

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/box1bs/lemmagen/internal/model"
)

type tokenType int

const (
	WORD tokenType = iota
	NUMBER
	ALPHANUMERIC
	WHITESPACE
	PUNCT
)

type Token struct {
	Type 	tokenType
	Value 	string
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsMark(r)
}

// Tokenize splits text into runs of letters, digits, whitespace and single
// punctuation characters. Concatenating the token values gives back text.
func Tokenize(text string) []Token {
	tokens := []Token{}
	for i := 0; i < len(text); {
		r, size := utf8.DecodeRuneInString(text[i:])
		start := i
		i += size

		switch {
		case isWordRune(r) || unicode.IsDigit(r):
			letters, digits := isWordRune(r), unicode.IsDigit(r)
			for i < len(text) {
				r, size = utf8.DecodeRuneInString(text[i:])
				if !isWordRune(r) && !unicode.IsDigit(r) {
					break
				}
				letters = letters || isWordRune(r)
				digits = digits || unicode.IsDigit(r)
				i += size
			}
			t := WORD
			if letters && digits {
				t = ALPHANUMERIC
			} else if digits {
				t = NUMBER
			}
			tokens = append(tokens, Token{Type: t, Value: text[start:i]})
		case unicode.IsSpace(r):
			for i < len(text) {
				r, size = utf8.DecodeRuneInString(text[i:])
				if !unicode.IsSpace(r) {
					break
				}
				i += size
			}
			tokens = append(tokens, Token{Type: WHITESPACE, Value: text[start:i]})
		default:
			tokens = append(tokens, Token{Type: PUNCT, Value: text[start:i]})
		}
	}
	return tokens
}

func Words(text string) []string {
	words := []string{}
	for _, t := range Tokenize(text) {
		if t.Type == WORD {
			words = append(words, t.Value)
		}
	}
	return words
}

// LemmatizeText replaces every word of text with its lemma and keeps
// everything between words as is.
func LemmatizeText(l model.Lemmatizer, text string) string {
	var sb strings.Builder
	sb.Grow(len(text))
	for _, t := range Tokenize(text) {
		if t.Type == WORD {
			sb.WriteString(l.Lemmatize(t.Value))
			continue
		}
		sb.WriteString(t.Value)
	}
	return sb.String()
}
