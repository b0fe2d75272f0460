package lemmatizer

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/box1bs/lemmagen/internal/model"
	"github.com/box1bs/lemmagen/internal/ruleset"
	"github.com/box1bs/lemmagen/pkg/logger"
	"github.com/box1bs/lemmagen/pkg/workerPool"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/pkg/errors"
)

const batchChunk = 256

type Info struct {
	Source 		string		`json:"source"`
	Rules 		int			`json:"rules"`
	Buckets 	int			`json:"buckets"`
	Fingerprint uint64		`json:"fingerprint"`
	MaxGrowth 	int			`json:"max_growth"`
	LoadedAt 	time.Time	`json:"loaded_at"`
}

// Snapshot is one loaded ruleset together with its lemma cache.
// A reader that obtained a Snapshot keeps using it even if the Library
// is reloaded or unloaded meanwhile.
type Snapshot struct {
	engine 	*Engine
	cache 	*lru.Cache[string, string]
	info 	Info
}

func (s *Snapshot) Lemmatize(word string) string {
	if s.cache == nil || word == "" {
		return s.engine.Lemmatize(word)
	}
	if lemma, ok := s.cache.Get(word); ok {
		return lemma
	}
	lemma := s.engine.Lemmatize(word)
	s.cache.Add(word, lemma)
	return lemma
}

func (s *Snapshot) Engine() *Engine {
	return s.engine
}

func (s *Snapshot) Info() Info {
	return s.info
}

// Library holds at most one loaded ruleset. Load and Unload are serialized
// with each other; lemmatize calls only read an atomic pointer and never wait
// on a load. With WithCacheSize enabled, cache lookups share the LRU's mutex.
type Library struct {
	mu 			sync.Mutex
	current 	atomic.Pointer[Snapshot]
	keyLen 		int
	cacheSize 	int
	workers 	int
	queue 		int
	log 		*logger.Logger
}

type LibraryOption func(*Library)

func WithKeyLength(n int) LibraryOption {
	return func(l *Library) {
		l.keyLen = n
	}
}

// WithCacheSize enables a per-ruleset LRU of n lemmas. 0 disables it.
// Every lookup updates recency under the LRU's lock, so heavy concurrent
// readers may be faster with the cache off.
func WithCacheSize(n int) LibraryOption {
	return func(l *Library) {
		l.cacheSize = n
	}
}

func WithWorkers(workers, queue int) LibraryOption {
	return func(l *Library) {
		l.workers = workers
		l.queue = queue
	}
}

func WithLogger(log *logger.Logger) LibraryOption {
	return func(l *Library) {
		l.log = log
	}
}

func NewLibrary(opts ...LibraryOption) *Library {
	l := &Library{
		keyLen: 	ruleset.DefaultKeyLength,
		workers: 	8,
		queue: 		1024,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load replaces the current ruleset with the one at path.
// On failure the previous ruleset, if any, stays loaded.
func (l *Library) Load(path string) Status {
	return StatusOf(l.LoadFile(path))
}

func (l *Library) LoadFile(path string) error {
	return l.LoadContext(context.Background(), path)
}

// LoadContext is LoadFile that gives up, keeping the previous ruleset,
// when ctx is done before the new ruleset is installed.
func (l *Library) LoadContext(ctx context.Context, path string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return errors.Wrapf(err, "load %s", path)
	}
	store, err := ruleset.Build(path, ruleset.WithKeyLength(l.keyLen), ruleset.WithLogger(l.log))
	if err != nil {
		l.log.Write(logger.NewMessage(logger.ENGINE_LAYER, logger.ERROR, "load %s rejected, keeping previous ruleset: %v", path, err))
		return err
	}
	if err := ctx.Err(); err != nil {
		l.log.Write(logger.NewMessage(logger.ENGINE_LAYER, logger.INFO, "load %s cancelled, keeping previous ruleset", path))
		return errors.Wrapf(err, "load %s", path)
	}
	return l.swap(store, path)
}

// LoadEntry loads a ruleset kept in the catalog.
func (l *Library) LoadEntry(entry *model.RulesetEntry) error {
	if entry == nil {
		return errors.Wrap(ErrLoadFailed, "nil catalog entry")
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	store, err := ruleset.BuildFromBytes(entry.Data, ruleset.WithKeyLength(l.keyLen), ruleset.WithLogger(l.log))
	if err != nil {
		l.log.Write(logger.NewMessage(logger.ENGINE_LAYER, logger.ERROR, "load of language %s rejected, keeping previous ruleset: %v", entry.Language, err))
		return err
	}
	return l.swap(store, "catalog:"+entry.Language)
}

func (l *Library) swap(store *ruleset.Store, source string) error {
	snap := &Snapshot{
		engine: NewFromStore(store),
		info: Info{
			Source: 		source,
			Rules: 			store.Len(),
			Buckets: 		store.Buckets(),
			Fingerprint: 	store.Fingerprint(),
			MaxGrowth: 		store.MaxGrowth(),
			LoadedAt: 		time.Now(),
		},
	}
	if l.cacheSize > 0 {
		cache, err := lru.New[string, string](l.cacheSize)
		if err != nil {
			return errors.Wrap(err, "create lemma cache")
		}
		snap.cache = cache
	}

	prev := l.current.Swap(snap)
	if prev != nil {
		l.log.Write(logger.NewMessage(logger.ENGINE_LAYER, logger.INFO, "replaced ruleset %s (%016x) with %s (%016x)",
			prev.info.Source, prev.info.Fingerprint, source, store.Fingerprint()))
	} else {
		l.log.Write(logger.NewMessage(logger.ENGINE_LAYER, logger.INFO, "loaded ruleset %s (%016x)", source, store.Fingerprint()))
	}
	return nil
}

// Unload drops the current ruleset. Unloading an empty Library does nothing.
func (l *Library) Unload() {
	l.mu.Lock()
	defer l.mu.Unlock()

	if prev := l.current.Swap(nil); prev != nil {
		l.log.Write(logger.NewMessage(logger.ENGINE_LAYER, logger.INFO, "unloaded ruleset %s", prev.info.Source))
	}
}

func (l *Library) Loaded() bool {
	return l.current.Load() != nil
}

func (l *Library) Info() (Info, bool) {
	snap := l.current.Load()
	if snap == nil {
		return Info{}, false
	}
	return snap.info, true
}

// Current returns the loaded snapshot for repeated lock-free use.
func (l *Library) Current() (*Snapshot, error) {
	snap := l.current.Load()
	if snap == nil {
		return nil, ErrNotLoaded
	}
	return snap, nil
}

// Lemmatize writes the lemma of *word into out and returns its length.
// A nil word yields an empty lemma. out must have room for the whole lemma;
// a short buffer is reported with StatusBufferTooSmall and left untouched.
func (l *Library) Lemmatize(word *string, out []byte) (int, Status) {
	snap := l.current.Load()
	if snap == nil {
		return 0, StatusNotLoaded
	}
	if out == nil {
		return 0, StatusNullBuffer
	}
	if word == nil || *word == "" {
		return 0, StatusOK
	}

	lemma := snap.Lemmatize(*word)
	if len(lemma) > len(out) {
		return 0, StatusBufferTooSmall
	}
	return copy(out, lemma), StatusOK
}

func (l *Library) LemmatizeString(word string) (string, error) {
	snap := l.current.Load()
	if snap == nil {
		return "", ErrNotLoaded
	}
	return snap.Lemmatize(word), nil
}

// LemmatizeBatch lemmatizes words on the worker pool against a single snapshot.
// The result is index-aligned with words.
func (l *Library) LemmatizeBatch(ctx context.Context, words []string) ([]string, error) {
	snap, err := l.Current()
	if err != nil {
		return nil, err
	}
	return l.LemmatizeBatchOn(ctx, snap, words)
}

// LemmatizeBatchOn is LemmatizeBatch against a snapshot the caller already
// holds, so several steps of one request see the same ruleset.
func (l *Library) LemmatizeBatchOn(ctx context.Context, snap *Snapshot, words []string) ([]string, error) {
	if snap == nil {
		return nil, ErrNotLoaded
	}
	out := make([]string, len(words))
	if len(words) <= batchChunk {
		for i, w := range words {
			out[i] = snap.Lemmatize(w)
		}
		return out, nil
	}

	wp := workerPool.NewWorkerPool(l.workers, l.queue, ctx)
	defer wp.Stop()
	for start := 0; start < len(words); start += batchChunk {
		lo, hi := start, min(start+batchChunk, len(words))
		if !wp.Submit(func() {
			for i := lo; i < hi; i++ {
				out[i] = snap.Lemmatize(words[i])
			}
		}) {
			break
		}
	}
	wp.Wait()

	if err := ctx.Err(); err != nil {
		l.log.Write(logger.NewMessage(logger.WORKER_POOL_LAYER, logger.ERROR, "batch of %d words interrupted: %v", len(words), err))
		return nil, err
	}
	return out, nil
}
