package ruleset

import (
	"io"
	"sort"
	"time"
	"unicode/utf8"

	"github.com/box1bs/lemmagen/internal/model"
	"github.com/box1bs/lemmagen/pkg/logger"
	"github.com/cespare/xxhash/v2"
	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
)

const (
	DefaultKeyLength = 2
	MaxKeyLength     = 8
)

// Store indexes rules by the last keyLen characters of their suffix.
// Rules with shorter suffixes are indexed under the whole suffix.
// A Store is never modified after Build returns and is safe for concurrent reads.
type Store struct {
	keyLen 		int
	index 		map[string][]*model.Rule
	rules 		[]*model.Rule
	maxSuffix 	int
	maxGrowth 	int
	fingerprint uint64
	size 		int
}

type options struct {
	keyLen 	int
	log 	*logger.Logger
	source 	string
}

type Option func(*options)

func WithKeyLength(n int) Option {
	return func(o *options) {
		o.keyLen = n
	}
}

func WithLogger(l *logger.Logger) Option {
	return func(o *options) {
		o.log = l
	}
}

func newOptions(opts []Option) (*options, error) {
	o := &options{keyLen: DefaultKeyLength}
	for _, opt := range opts {
		opt(o)
	}
	if o.keyLen < 1 || o.keyLen > MaxKeyLength {
		return nil, errors.Errorf("key length %d out of range [1, %d]", o.keyLen, MaxKeyLength)
	}
	return o, nil
}

// Build loads the rule file at path. It fails with ErrFileNotFound, ErrNotAFile
// or ErrMalformedRuleFile and never returns a partially built Store.
func Build(path string, opts ...Option) (*Store, error) {
	o, err := newOptions(opts)
	if err != nil {
		return nil, err
	}
	o.source = path

	var s *Store
	err = withSource(path, func(data []byte) error {
		var err error
		s, err = build(data, o)
		return err
	})
	if err != nil {
		o.log.Write(logger.NewMessage(logger.RULESET_LAYER, logger.ERROR, "failed to build ruleset from %s: %v", path, err))
		return nil, err
	}
	return s, nil
}

func BuildFromBytes(data []byte, opts ...Option) (*Store, error) {
	o, err := newOptions(opts)
	if err != nil {
		return nil, err
	}
	return build(data, o)
}

func BuildFromReader(r io.Reader, opts ...Option) (*Store, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "read ruleset")
	}
	return BuildFromBytes(data, opts...)
}

func build(raw []byte, o *options) (*Store, error) {
	start := time.Now()
	data, err := decompress(raw)
	if err != nil {
		return nil, err
	}
	rules, err := parse(data)
	if err != nil {
		return nil, err
	}

	s := &Store{
		keyLen: 		o.keyLen,
		index: 			make(map[string][]*model.Rule),
		rules: 			rules,
		fingerprint: 	xxhash.Sum64(raw),
		size: 			len(data),
	}
	for _, r := range rules {
		key := lastRunes(r.Suffix, s.keyLen)
		s.index[key] = append(s.index[key], r)
		s.maxSuffix = max(s.maxSuffix, r.SuffixLen())
		s.maxGrowth = max(s.maxGrowth, r.Growth())
	}
	for _, bucket := range s.index {
		sort.SliceStable(bucket, func(i, j int) bool {
			a, b := bucket[i], bucket[j]
			if la, lb := a.SuffixLen(), b.SuffixLen(); la != lb {
				return la > lb
			}
			if a.Weight != b.Weight {
				return a.Weight > b.Weight
			}
			return a.Line < b.Line
		})
	}

	source := o.source
	if source == "" {
		source = "memory"
	}
	o.log.Write(logger.NewMessage(logger.RULESET_LAYER, logger.INFO, "loaded %d rules in %d buckets (%s) from %s in %v",
		len(rules), len(s.index), humanize.Bytes(uint64(len(data))), source, time.Since(start)))
	return s, nil
}

// Match returns the applicable rule with the longest suffix; ties go to the
// higher weight, then to the rule that appears first in the source.
func (s *Store) Match(word string) (*model.Rule, bool) {
	var offs [MaxKeyLength + 1]int
	n := 0
	offs[0] = len(word)
	for end := len(word); n < s.keyLen && end > 0; {
		_, size := utf8.DecodeLastRuneInString(word[:end])
		end -= size
		n++
		offs[n] = end
	}

	// Below keyLen a bucket holds only rules whose whole suffix equals the key,
	// so the first hit walking k downwards is the longest match.
	for k := n; k >= 0; k-- {
		for _, r := range s.index[word[offs[k]:]] {
			if r.Matches(word) {
				return r, true
			}
		}
	}
	return nil, false
}

func (s *Store) Len() int {
	return len(s.rules)
}

func (s *Store) Buckets() int {
	return len(s.index)
}

func (s *Store) KeyLength() int {
	return s.keyLen
}

func (s *Store) MaxSuffixLen() int {
	return s.maxSuffix
}

// MaxGrowth bounds how many bytes longer than its input a lemma can be.
func (s *Store) MaxGrowth() int {
	return s.maxGrowth
}

func (s *Store) Fingerprint() uint64 {
	return s.fingerprint
}

// Size is the decoded size of the rule source in bytes.
func (s *Store) Size() int {
	return s.size
}

// Rules returns every rule in source order.
func (s *Store) Rules() []*model.Rule {
	out := make([]*model.Rule, len(s.rules))
	copy(out, s.rules)
	return out
}

func lastRunes(s string, k int) string {
	end := len(s)
	for i := 0; i < k && end > 0; i++ {
		_, size := utf8.DecodeLastRuneInString(s[:end])
		end -= size
	}
	return s[end:]
}
