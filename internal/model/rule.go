package model

import (
	"strings"
	"unicode/utf8"
)

// Rule is a single suffix transformation: a word ending in Suffix loses its
// last Strip characters and gets Append attached.
type Rule struct {
	Suffix 	string	`json:"suffix"`
	Strip 	int		`json:"strip"`
	Append 	string	`json:"append"`
	Weight 	int64	`json:"weight"`
	Line 	int		`json:"line"`
}

func (r *Rule) SuffixLen() int {
	return utf8.RuneCountInString(r.Suffix)
}

// Growth is the largest number of bytes Apply can add to a word.
// Every stripped rune is at least one byte, so len(Append) - Strip bounds it.
func (r *Rule) Growth() int {
	return len(r.Append) - r.Strip
}

func (r *Rule) Matches(word string) bool {
	if !strings.HasSuffix(word, r.Suffix) {
		return false
	}
	if r.Strip <= r.SuffixLen() {
		return true
	}
	return utf8.RuneCountInString(word) >= r.Strip
}

func (r *Rule) Apply(word string) string {
	end := r.cut(word)
	if r.Append == "" {
		return word[:end]
	}
	return word[:end] + r.Append
}

func (r *Rule) AppendTo(dst []byte, word string) []byte {
	end := r.cut(word)
	dst = append(dst, word[:end]...)
	return append(dst, r.Append...)
}

func (r *Rule) cut(word string) int {
	end := len(word)
	for i := 0; i < r.Strip && end > 0; i++ {
		_, size := utf8.DecodeLastRuneInString(word[:end])
		end -= size
	}
	return end
}
