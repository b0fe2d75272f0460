package repository

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/box1bs/lemmagen/internal/model"
	"github.com/box1bs/lemmagen/internal/ruleset"
	"github.com/box1bs/lemmagen/pkg/logger"
	"github.com/dgraph-io/badger/v3"
	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
)

const rulesetPrefix = "ruleset:"

var (
	ErrRulesetNotFound = errors.New("ruleset not found")
	ErrInvalidLanguage = errors.New("invalid language name")
)

// RulesetRepository keeps validated rule files in badger, keyed by language.
type RulesetRepository struct {
	DB 		*badger.DB
	log 	*logger.Logger
	keyLen 	int
}

func NewRulesetRepository(path string, logger *logger.Logger) (*RulesetRepository, error) {
	return open(badger.DefaultOptions(path).WithLoggingLevel(badger.WARNING), logger)
}

func NewInMemoryRulesetRepository(logger *logger.Logger) (*RulesetRepository, error) {
	return open(badger.DefaultOptions("").WithInMemory(true).WithLoggingLevel(badger.WARNING), logger)
}

func open(opts badger.Options, logger *logger.Logger) (*RulesetRepository, error) {
	db, err := badger.Open(opts)
	if err != nil {
		return nil, errors.Wrap(err, "open ruleset catalog")
	}
	return &RulesetRepository{
		DB: 	db,
		log: 	logger,
		keyLen: ruleset.DefaultKeyLength,
	}, nil
}

func (rr *RulesetRepository) Close() error {
	return rr.DB.Close()
}

func validLanguage(lang string) error {
	if lang == "" || strings.ContainsAny(lang, ": \t\n/") {
		return errors.Wrapf(ErrInvalidLanguage, "%q", lang)
	}
	return nil
}

// Import validates the rule file at path and stores it under lang,
// replacing any ruleset already kept for that language.
func (rr *RulesetRepository) Import(lang, path string) (*model.RulesetEntry, error) {
	if err := validLanguage(lang); err != nil {
		return nil, err
	}
	data, err := ruleset.ReadSource(path)
	if err != nil {
		return nil, err
	}
	store, err := ruleset.BuildFromBytes(data, ruleset.WithKeyLength(rr.keyLen))
	if err != nil {
		return nil, errors.Wrapf(err, "import %s", path)
	}

	entry := &model.RulesetEntry{
		Language: 		lang,
		Fingerprint: 	store.Fingerprint(),
		Size: 			len(data),
		Rules: 			store.Len(),
		ImportedAt: 	time.Now().UTC(),
		Data: 			data,
	}
	val, err := json.Marshal(entry)
	if err != nil {
		return nil, err
	}
	if err := rr.DB.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(rulesetPrefix+lang), val)
	}); err != nil {
		rr.log.Write(logger.NewMessage(logger.REPOSITORY_LAYER, logger.CRITICAL_ERROR, "error saving ruleset %s: %v", lang, err))
		return nil, err
	}

	rr.log.Write(logger.NewMessage(logger.REPOSITORY_LAYER, logger.INFO, "imported %d rules for %s (%s)", entry.Rules, lang, humanize.Bytes(uint64(entry.Size))))
	return entry, nil
}

func (rr *RulesetRepository) Get(lang string) (*model.RulesetEntry, error) {
	if err := validLanguage(lang); err != nil {
		return nil, err
	}
	entry := &model.RulesetEntry{}
	err := rr.DB.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(rulesetPrefix + lang))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, entry)
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, errors.Wrap(ErrRulesetNotFound, lang)
	}
	if err != nil {
		return nil, err
	}
	return entry, nil
}

// List returns the metadata of every stored ruleset, ordered by language, without rule data.
func (rr *RulesetRepository) List() ([]model.RulesetEntry, error) {
	out := []model.RulesetEntry{}
	opts := badger.DefaultIteratorOptions
	opts.Prefix = []byte(rulesetPrefix)

	err := rr.DB.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			var entry model.RulesetEntry
			if err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &entry)
			}); err != nil {
				return err
			}
			entry.Data = nil
			out = append(out, entry)
		}
		return nil
	})
	return out, err
}

func (rr *RulesetRepository) Delete(lang string) error {
	if err := validLanguage(lang); err != nil {
		return err
	}
	key := []byte(rulesetPrefix + lang)
	err := rr.DB.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get(key); err != nil {
			return err
		}
		return txn.Delete(key)
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return errors.Wrap(ErrRulesetNotFound, lang)
	}
	return err
}
