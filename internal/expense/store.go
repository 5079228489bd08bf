package expense

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"go.etcd.io/bbolt"
)

const (
	bucketName = "expenses"
	recordsKey = "records"
)

// Store holds the review-session record collection. All mutations are
// whole-collection replacements under a single-writer assumption; List
// returns the records in their stored order (newest batch first).
type Store interface {
	List() ([]*Expense, error)
	ReplaceAll(records []*Expense) error
	Close() error
}

// MemoryStore keeps the collection in memory for the session. This is the
// default store.
type MemoryStore struct {
	mu      sync.RWMutex
	records []*Expense
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// List returns a copy of the record slice. The records themselves are shared;
// callers replace rather than mutate them.
func (m *MemoryStore) List() ([]*Expense, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	records := make([]*Expense, len(m.records))
	copy(records, m.records)
	return records, nil
}

// ReplaceAll swaps in a new record collection.
func (m *MemoryStore) ReplaceAll(records []*Expense) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records = make([]*Expense, len(records))
	copy(m.records, records)
	return nil
}

// Close is a no-op for the in-memory store.
func (m *MemoryStore) Close() error {
	return nil
}

// BoltStore persists the collection in a BoltDB file so a review session can
// survive a restart. The whole collection is stored as one ordered JSON
// document, matching the replace-all mutation model.
type BoltStore struct {
	db *bbolt.DB
}

// NewBoltStore opens (or creates) the database file at path.
func NewBoltStore(path string) (*BoltStore, error) {
	db, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("opening boltdb: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketName))
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating bucket: %w", err)
	}

	return &BoltStore{db: db}, nil
}

// List returns all records in stored order.
func (b *BoltStore) List() ([]*Expense, error) {
	records := make([]*Expense, 0)
	err := b.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket([]byte(bucketName)).Get([]byte(recordsKey))
		if data == nil {
			return nil
		}
		if err := json.Unmarshal(data, &records); err != nil {
			return fmt.Errorf("unmarshaling records: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return records, nil
}

// ReplaceAll swaps in a new record collection.
func (b *BoltStore) ReplaceAll(records []*Expense) error {
	return b.db.Update(func(tx *bbolt.Tx) error {
		data, err := json.Marshal(records)
		if err != nil {
			return fmt.Errorf("marshaling records: %w", err)
		}
		return tx.Bucket([]byte(bucketName)).Put([]byte(recordsKey), data)
	})
}

// Close closes the database file.
func (b *BoltStore) Close() error {
	return b.db.Close()
}
