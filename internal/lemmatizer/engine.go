package lemmatizer

import (
	"github.com/box1bs/lemmagen/internal/ruleset"
)

// Engine lemmatizes words against one immutable rule store.
// It keeps no per-call state, so any number of goroutines may share it.
type Engine struct {
	store *ruleset.Store
}

func New(path string, opts ...ruleset.Option) (*Engine, error) {
	store, err := ruleset.Build(path, opts...)
	if err != nil {
		return nil, err
	}
	return NewFromStore(store), nil
}

func NewFromStore(store *ruleset.Store) *Engine {
	return &Engine{store: store}
}

// Lemmatize returns the lemma of word, or word itself when no rule applies.
func (e *Engine) Lemmatize(word string) string {
	if word == "" {
		return ""
	}
	r, ok := e.store.Match(word)
	if !ok {
		return word
	}
	return r.Apply(word)
}

// LemmatizeTo appends the lemma of word to dst.
func (e *Engine) LemmatizeTo(dst []byte, word string) []byte {
	if word == "" {
		return dst
	}
	r, ok := e.store.Match(word)
	if !ok {
		return append(dst, word...)
	}
	return r.AppendTo(dst, word)
}

// MaxLemmaLen is the largest byte length a lemma of word can have under this ruleset.
func (e *Engine) MaxLemmaLen(word string) int {
	return len(word) + e.store.MaxGrowth()
}

func (e *Engine) Store() *ruleset.Store {
	return e.store
}
