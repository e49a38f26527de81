package bbolt

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/adrg/xdg"
	"github.com/ansa-dev/ansa/internal/kv"
	"go.etcd.io/bbolt"
)

var callRecordsBucket = []byte("call_records")

// Store manages the persistence of call records in a local bbolt database. It
// backs the operator CLI; the deployed handler uses the DynamoDB store.
type Store struct {
	db *bbolt.DB
}

// NewStore creates a new Store and initializes the database at the default
// XDG data path.
func NewStore() (kv.Storer, error) {
	dbPath, err := xdg.DataFile("ansa/ansa.db")
	if err != nil {
		return nil, fmt.Errorf("%w: failed to get db path: %w", kv.ErrDBOperationFailed, err)
	}

	return newStore(dbPath)
}

// NewTestStore creates a new Store for testing purposes.
func NewTestStore(dbPath string) (kv.Storer, error) {
	return newStore(dbPath)
}

func newStore(dbPath string) (kv.Storer, error) {
	db, err := bbolt.Open(dbPath, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open db: %w", kv.ErrDBOperationFailed, err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists(callRecordsBucket); err != nil {
			return fmt.Errorf("%w: failed to create bucket '%s': %w", kv.ErrDBOperationFailed, callRecordsBucket, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// generateKey builds the composite key for a record. The timestamp suffix
// keeps repeated invocations for the same call id distinct.
func generateKey(callID, timestamp string) []byte {
	return []byte(callID + "@" + timestamp)
}

// PutCallRecord writes a single call record to the store.
func (s *Store) PutCallRecord(_ context.Context, record *kv.CallRecord) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(callRecordsBucket)

		buf, err := json.Marshal(record)
		if err != nil {
			return fmt.Errorf("%w: failed to marshal call record: %w", kv.ErrSerializationFailed, err)
		}

		if err := b.Put(generateKey(record.CallID, record.Timestamp), buf); err != nil {
			return fmt.Errorf("%w: failed to put call record: %w", kv.ErrDBOperationFailed, err)
		}
		return nil
	})
}

// GetCallRecord retrieves the most recent record for a call id.
func (s *Store) GetCallRecord(_ context.Context, callID string) (*kv.CallRecord, error) {
	var record *kv.CallRecord

	err := s.db.View(func(tx *bbolt.Tx) error {
		c := tx.Bucket(callRecordsBucket).Cursor()
		prefix := []byte(callID + "@")

		// Keys sort lexicographically and timestamps use the fixed-width
		// kv.TimestampLayout, so the last key under the prefix is the most
		// recent record.
		for k, v := c.Seek(prefix); k != nil && bytes.HasPrefix(k, prefix); k, v = c.Next() {
			var r kv.CallRecord
			if err := json.Unmarshal(v, &r); err != nil {
				return fmt.Errorf("%w: failed to unmarshal call record: %w", kv.ErrSerializationFailed, err)
			}
			record = &r
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, fmt.Errorf("%w: call record '%s'", kv.ErrNotFound, callID)
	}

	return record, nil
}

// ListCallRecords retrieves all call records from the store.
func (s *Store) ListCallRecords(_ context.Context) ([]*kv.CallRecord, error) {
	var records []*kv.CallRecord

	err := s.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(callRecordsBucket).ForEach(func(_, v []byte) error {
			var r kv.CallRecord
			if err := json.Unmarshal(v, &r); err != nil {
				return fmt.Errorf("%w: failed to unmarshal call record: %w", kv.ErrSerializationFailed, err)
			}
			records = append(records, &r)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	return records, nil
}

// ListCallRecordsByPhone retrieves all records for a phone number, most
// recent first.
func (s *Store) ListCallRecordsByPhone(ctx context.Context, phone string) ([]*kv.CallRecord, error) {
	records, err := s.ListCallRecords(ctx)
	if err != nil {
		return nil, err
	}

	var matches []*kv.CallRecord
	for _, r := range records {
		if r.CallerPhone == phone {
			matches = append(matches, r)
		}
	}

	sort.Slice(matches, func(i, j int) bool {
		return matches[i].Timestamp > matches[j].Timestamp
	})

	return matches, nil
}

// MarkNotificationSent flips the notification flag on an existing record.
func (s *Store) MarkNotificationSent(_ context.Context, callID, timestamp string) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(callRecordsBucket)
		key := generateKey(callID, timestamp)

		v := b.Get(key)
		if v == nil {
			return fmt.Errorf("%w: call record '%s'", kv.ErrNotFound, callID)
		}

		var r kv.CallRecord
		if err := json.Unmarshal(v, &r); err != nil {
			return fmt.Errorf("%w: failed to unmarshal call record: %w", kv.ErrSerializationFailed, err)
		}
		r.NotificationSent = true

		buf, err := json.Marshal(&r)
		if err != nil {
			return fmt.Errorf("%w: failed to marshal call record: %w", kv.ErrSerializationFailed, err)
		}

		if err := b.Put(key, buf); err != nil {
			return fmt.Errorf("%w: failed to put call record: %w", kv.ErrDBOperationFailed, err)
		}
		return nil
	})
}
