package datastore

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/ansa-dev/ansa/internal/kv"
)

// MockStore is a mock implementation of the Storer interface.
type MockStore struct {
	records map[string]*kv.CallRecord
	mu      sync.Mutex

	// PutErr, when set, is returned by PutCallRecord to simulate a store
	// outage.
	PutErr error
	// MarkErr, when set, is returned by MarkNotificationSent.
	MarkErr error
}

// NewMockStore creates a new MockStore.
func NewMockStore() *MockStore {
	return &MockStore{
		records: make(map[string]*kv.CallRecord),
	}
}

func (s *MockStore) generateKey(callID, timestamp string) string {
	return fmt.Sprintf("%s@%s", callID, timestamp)
}

// PutCallRecord adds a call record to the mock store.
func (s *MockStore) PutCallRecord(_ context.Context, record *kv.CallRecord) error {
	if s.PutErr != nil {
		return s.PutErr
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *record
	s.records[s.generateKey(record.CallID, record.Timestamp)] = &copied
	return nil
}

// GetCallRecord retrieves the most recent record for a call id.
func (s *MockStore) GetCallRecord(_ context.Context, callID string) (*kv.CallRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var latest *kv.CallRecord
	for _, r := range s.records {
		if r.CallID != callID {
			continue
		}
		if latest == nil || r.Timestamp > latest.Timestamp {
			latest = r
		}
	}
	if latest == nil {
		return nil, fmt.Errorf("%w: call record '%s'", kv.ErrNotFound, callID)
	}
	return latest, nil
}

// ListCallRecords retrieves all call records from the mock store.
func (s *MockStore) ListCallRecords(_ context.Context) ([]*kv.CallRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var records []*kv.CallRecord
	for _, r := range s.records {
		records = append(records, r)
	}
	return records, nil
}

// ListCallRecordsByPhone retrieves all records for a phone number, most
// recent first.
func (s *MockStore) ListCallRecordsByPhone(_ context.Context, phone string) ([]*kv.CallRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var records []*kv.CallRecord
	for _, r := range s.records {
		if r.CallerPhone == phone {
			records = append(records, r)
		}
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].Timestamp > records[j].Timestamp
	})
	return records, nil
}

// MarkNotificationSent flips the notification flag on an existing record.
func (s *MockStore) MarkNotificationSent(_ context.Context, callID, timestamp string) error {
	if s.MarkErr != nil {
		return s.MarkErr
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.records[s.generateKey(callID, timestamp)]
	if !ok {
		return fmt.Errorf("%w: call record '%s'", kv.ErrNotFound, callID)
	}
	r.NotificationSent = true
	return nil
}

// Close is a no-op for the mock store.
func (s *MockStore) Close() error {
	return nil
}
