package store

import (
	"errors"
	"fmt"
	"os"

	badger "github.com/dgraph-io/badger/v4"

	"github.com/caskdb/caskdb/internal/logger"
)

// ErrKeyNotFound is returned by Get when the key does not exist.
var ErrKeyNotFound = errors.New("key not found")

// Store is the persistent key-value storage engine.
type Store struct {
	db   *badger.DB
	opts Options
}

// Open opens or creates the database at opts.Path.
func Open(opts Options) (*Store, error) {
	info, err := os.Stat(opts.Path)
	exists := err == nil
	if exists && !info.IsDir() {
		return nil, fmt.Errorf("database path %s exists but is not a directory", opts.Path)
	}

	if !exists && !opts.CreateIfMissing {
		return nil, fmt.Errorf("database does not exist at %s and db.create-if-missing is false", opts.Path)
	}
	if exists && opts.ErrorIfExists {
		return nil, fmt.Errorf("database already exists at %s and db.error-if-exists is true", opts.Path)
	}

	badgerOpts := badger.DefaultOptions(opts.Path).
		WithSyncWrites(opts.WriteBufferMode == WriteBufferDirect).
		WithLogger(badgerLogger{})
	if opts.WriteBufferSize > 0 {
		badgerOpts = badgerOpts.WithMemTableSize(int64(opts.WriteBufferSize))
	}

	db, err := badger.Open(badgerOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to open database at %s: %w", opts.Path, err)
	}

	logger.Info("storage engine opened",
		"path", opts.Path,
		"sync_writes", opts.WriteBufferMode == WriteBufferDirect)

	return &Store{db: db, opts: opts}, nil
}

// Get returns the value stored under key, or ErrKeyNotFound.
func (s *Store) Get(key []byte) ([]byte, error) {
	var value []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(s.opts.Hashing.internalKey(key))
		if err == badger.ErrKeyNotFound {
			return ErrKeyNotFound
		}
		if err != nil {
			return err
		}
		return item.Value(func(encoded []byte) error {
			decoded, err := decodeValue(encoded)
			if err != nil {
				return err
			}
			value = decoded
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return value, nil
}

// Set stores value under key, replacing any previous value.
func (s *Store) Set(key, value []byte) error {
	encoded := encodeValue(s.opts.Compression, value)
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(s.opts.Hashing.internalKey(key), encoded)
	})
}

// Delete removes key. Deleting an absent key is not an error; the bool
// result reports whether the key existed.
func (s *Store) Delete(key []byte) (bool, error) {
	existed := false
	err := s.db.Update(func(txn *badger.Txn) error {
		ik := s.opts.Hashing.internalKey(key)
		if _, err := txn.Get(ik); err == badger.ErrKeyNotFound {
			return nil
		} else if err != nil {
			return err
		}
		existed = true
		return txn.Delete(ik)
	})
	return existed, err
}

// Exists reports whether key is present.
func (s *Store) Exists(key []byte) (bool, error) {
	err := s.db.View(func(txn *badger.Txn) error {
		_, err := txn.Get(s.opts.Hashing.internalKey(key))
		return err
	})
	if err == badger.ErrKeyNotFound {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Count returns the number of stored keys.
func (s *Store) Count() (int64, error) {
	var count int64
	err := s.db.View(func(txn *badger.Txn) error {
		iterOpts := badger.DefaultIteratorOptions
		iterOpts.PrefetchValues = false
		it := txn.NewIterator(iterOpts)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			count++
		}
		return nil
	})
	return count, err
}

// Close flushes and closes the database.
func (s *Store) Close() error {
	if err := s.db.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}
	logger.Info("storage engine closed", "path", s.opts.Path)
	return nil
}

// badgerLogger routes BadgerDB's own log output through the process
// logger. Badger is chatty at info level, so its info and debug records
// are demoted to debug.
type badgerLogger struct{}

func (badgerLogger) Errorf(format string, args ...any) {
	logger.Error(fmt.Sprintf("badger: "+format, args...))
}

func (badgerLogger) Warningf(format string, args ...any) {
	logger.Warn(fmt.Sprintf("badger: "+format, args...))
}

func (badgerLogger) Infof(format string, args ...any) {
	logger.Debug(fmt.Sprintf("badger: "+format, args...))
}

func (badgerLogger) Debugf(format string, args ...any) {
	logger.Debug(fmt.Sprintf("badger: "+format, args...))
}
