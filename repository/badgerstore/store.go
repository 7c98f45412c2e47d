// Package badgerstore keeps guild settings in an embedded Badger database.
// It is selected with STORAGE_DRIVER=badger for single-node deployments
// that run without PostgreSQL.
package badgerstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"hash/fnv"
	"sync"
	"time"

	"github.com/ssorr707/discord-system-bot2/domain/interfaces"

	"github.com/dgraph-io/badger"
	"github.com/dgraph-io/badger/options"
	log "github.com/sirupsen/logrus"
)

const (
	gcInterval     = time.Hour
	gcDiscardRatio = 0.7
	maxTxnRetries  = 16
	retryBackoff   = 2 * time.Millisecond
	lockStripes    = 64
)

// Store implements interfaces.SettingsStore on Badger
type Store struct {
	db           *badger.DB
	logger       *log.Entry
	verification *VerificationSettingsRepository
	welcome      *WelcomeSettingsRepository

	stopGC chan struct{}
	gcDone sync.WaitGroup
	once   sync.Once
}

// Open opens (or creates) the database in dir and starts value log GC
func Open(dir string) (*Store, error) {
	logger := log.WithField("component", "badgerstore")

	opts := badger.DefaultOptions(dir)
	opts.Truncate = true
	opts.ValueLogLoadingMode = options.FileIO
	opts.NumVersionsToKeep = 1
	opts.Logger = badgerLogger{logger.WithField("subsystem", "badger")}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger database at %s: %w", dir, err)
	}

	s := &Store{
		db:     db,
		logger: logger,
		stopGC: make(chan struct{}),
	}
	locks := &keyLocks{}
	s.verification = &VerificationSettingsRepository{db: db, locks: locks}
	s.welcome = &WelcomeSettingsRepository{db: db, locks: locks}

	s.gcDone.Add(1)
	go s.runGC()

	logger.WithField("dir", dir).Info("Opened settings store")
	return s, nil
}

// badgerLogger logs badger's table and compaction chatter at debug
type badgerLogger struct {
	*log.Entry
}

func (l badgerLogger) Infof(format string, args ...interface{}) {
	l.Entry.Debugf(format, args...)
}

func (s *Store) VerificationSettings() interfaces.VerificationSettingsRepository {
	return s.verification
}

func (s *Store) WelcomeSettings() interfaces.WelcomeSettingsRepository {
	return s.welcome
}

// Close stops GC and closes the database. It is safe to call more than once.
func (s *Store) Close() error {
	var err error
	s.once.Do(func() {
		close(s.stopGC)
		s.gcDone.Wait()
		err = s.db.Close()
	})
	return err
}

func (s *Store) runGC() {
	defer s.gcDone.Done()
	ticker := time.NewTicker(gcInterval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopGC:
			return
		case <-ticker.C:
			for {
				err := s.db.RunValueLogGC(gcDiscardRatio)
				if err == nil {
					continue
				}
				if !errors.Is(err, badger.ErrNoRewrite) {
					s.logger.WithError(err).Warn("Value log GC failed")
				}
				break
			}
		}
	}
}

// keyLocks serialises writers of the same key inside this process.
// Keys hash onto a fixed set of stripes.
type keyLocks [lockStripes]sync.Mutex

func (l *keyLocks) lock(key []byte) func() {
	h := fnv.New32a()
	_, _ = h.Write(key)
	mu := &l[h.Sum32()%lockStripes]
	mu.Lock()
	return mu.Unlock
}

// load decodes the record at key onto the value produced by defaults.
// Fields missing from the stored document keep their default value.
func load[T any](txn *badger.Txn, key []byte, defaults func() *T) (*T, bool, error) {
	record := defaults()
	item, err := txn.Get(key)
	if errors.Is(err, badger.ErrKeyNotFound) {
		return record, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	value, err := item.ValueCopy(nil)
	if err != nil {
		return nil, false, err
	}
	if err := json.Unmarshal(value, record); err != nil {
		return nil, false, fmt.Errorf("failed to decode %s: %w", key, err)
	}
	return record, true, nil
}

// get reads the record at key without writing
func get[T any](db *badger.DB, key []byte, defaults func() *T) (*T, bool, error) {
	var (
		record *T
		found  bool
	)
	err := db.View(func(txn *badger.Txn) error {
		var err error
		record, found, err = load(txn, key, defaults)
		return err
	})
	return record, found, err
}

// update runs mutate against the record at key inside a read-write transaction.
// Writers of one key take turns on its stripe lock. Conflicts are retried with backoff.
// Nothing is written when mutate returns an error.
func update[T any](ctx context.Context, db *badger.DB, locks *keyLocks, key []byte, defaults func() *T, mutate func(*T) error) (*T, error) {
	unlock := locks.lock(key)
	defer unlock()

	for attempt := 0; attempt < maxTxnRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(time.Duration(attempt) * retryBackoff):
			}
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		var record *T
		err := db.Update(func(txn *badger.Txn) error {
			current, _, err := load(txn, key, defaults)
			if err != nil {
				return err
			}
			if err := mutate(current); err != nil {
				return err
			}

			encoded, err := json.Marshal(current)
			if err != nil {
				return fmt.Errorf("failed to encode %s: %w", key, err)
			}
			if err := txn.Set(key, encoded); err != nil {
				return err
			}
			record = current
			return nil
		})
		if errors.Is(err, badger.ErrConflict) {
			continue
		}
		if err != nil {
			return nil, err
		}
		return record, nil
	}
	return nil, fmt.Errorf("failed to update %s: %w", key, badger.ErrConflict)
}
