package mocks

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/iho/finplan/internal/ledger"
)

// MockSnapshotStore is an in-memory mock implementation of SnapshotStore.
type MockSnapshotStore struct {
	mu   sync.Mutex
	blob []byte

	SaveCount int
	SaveFunc  func(ctx context.Context, blob []byte) error
	LoadFunc  func(ctx context.Context) ([]byte, error)
}

func NewMockSnapshotStore() *MockSnapshotStore {
	return &MockSnapshotStore{}
}

func (m *MockSnapshotStore) Save(ctx context.Context, blob []byte) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, blob)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.blob = append([]byte(nil), blob...)
	m.SaveCount++
	return nil
}

func (m *MockSnapshotStore) Load(ctx context.Context) ([]byte, error) {
	if m.LoadFunc != nil {
		return m.LoadFunc(ctx)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.blob == nil {
		return nil, ledger.ErrNoSnapshot
	}
	return append([]byte(nil), m.blob...), nil
}

// Seed preloads the store with a snapshot blob.
func (m *MockSnapshotStore) Seed(blob []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.blob = append([]byte(nil), blob...)
}

// MockIDGenerator is a mock implementation of IDGenerator that hands out
// sequential ids.
type MockIDGenerator struct {
	mu      sync.Mutex
	counter int

	GenerateFunc func() string
}

func NewMockIDGenerator() *MockIDGenerator {
	return &MockIDGenerator{}
}

func (m *MockIDGenerator) Generate() string {
	if m.GenerateFunc != nil {
		return m.GenerateFunc()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counter++
	return fmt.Sprintf("mock-id-%d", m.counter)
}

// MockClock is a mock implementation of Clock frozen at a fixed instant.
type MockClock struct {
	mu  sync.Mutex
	now time.Time
}

func NewMockClock(now time.Time) *MockClock {
	return &MockClock{now: now}
}

func (m *MockClock) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

// Set moves the clock to a new instant.
func (m *MockClock) Set(now time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = now
}
