package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRuleApply(t *testing.T) {
	tests := []struct {
		name string
		rule Rule
		word string
		want string
	}{
		{"strip and append", Rule{Suffix: "ies", Strip: 3, Append: "y"}, "ponies", "pony"},
		{"strip only", Rule{Suffix: "ing", Strip: 3}, "running", "runn"},
		{"append only", Rule{Suffix: "", Strip: 0, Append: "e"}, "mak", "make"},
		{"partial strip", Rule{Suffix: "ied", Strip: 2, Append: ""}, "carried", "carri"},
		{"multibyte", Rule{Suffix: "ами", Strip: 3, Append: "а"}, "книгами", "книга"},
		{"whole word", Rule{Suffix: "was", Strip: 3, Append: "be"}, "was", "be"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, tt.rule.Matches(tt.word))
			assert.Equal(t, tt.want, tt.rule.Apply(tt.word))
			assert.Equal(t, ">"+tt.want, string(tt.rule.AppendTo([]byte(">"), tt.word)))
		})
	}
}

func TestRuleMatches(t *testing.T) {
	r := Rule{Suffix: "ing", Strip: 3}
	assert.False(t, r.Matches("in"))
	assert.False(t, r.Matches("ING"))
	assert.False(t, r.Matches("ringo"))

	// strip larger than the suffix only applies to long enough words
	wide := Rule{Suffix: "s", Strip: 3}
	assert.False(t, wide.Matches("as"))
	assert.True(t, wide.Matches("ass"))
}

func TestRuleGrowth(t *testing.T) {
	assert.Equal(t, -2, (&Rule{Suffix: "ies", Strip: 3, Append: "y"}).Growth())
	assert.Equal(t, 4, (&Rule{Suffix: "", Strip: 0, Append: "ää"}).Growth())
	assert.Equal(t, 0, (&Rule{Suffix: "", Append: "abc"}).SuffixLen())
	assert.Equal(t, 2, (&Rule{Suffix: "ää"}).SuffixLen())
}
