package host

import (
	"context"
	"sync"

	"github.com/rotisserie/eris"
)

var (
	// ErrRecordNotFound is returned when no record is stored under a key.
	ErrRecordNotFound = eris.New("component record not found")

	// ErrConflict is returned when a record changed while an update was in flight. Nothing was
	// written; the caller may resubmit.
	ErrConflict = eris.New("component record modified concurrently")
)

// UpdateFunc computes the next value of a record from its current value. Returning an error
// aborts the update and leaves the record untouched.
type UpdateFunc func(current []byte) ([]byte, error)

// Store persists encoded component records by key.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	// Update runs fn with exclusive access to the record under key and commits its result, or
	// commits nothing if fn fails or the record changed underneath it.
	Update(ctx context.Context, key string, fn UpdateFunc) error
	Close() error
}

var (
	_ Store = (*MemoryStore)(nil)
	_ Store = (*RedisStore)(nil)
)

// MemoryStore is a process-local Store. A single mutex serializes all updates.
type MemoryStore struct {
	mu      sync.Mutex
	records map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[string][]byte)}
}

func (m *MemoryStore) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	value, ok := m.records[key]
	if !ok {
		return nil, eris.Wrapf(ErrRecordNotFound, "key %q", key)
	}
	return append([]byte(nil), value...), nil
}

func (m *MemoryStore) Put(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.records[key] = append([]byte(nil), value...)
	return nil
}

func (m *MemoryStore) Update(ctx context.Context, key string, fn UpdateFunc) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return eris.Wrap(err, "update cancelled")
	}

	current, ok := m.records[key]
	if !ok {
		return eris.Wrapf(ErrRecordNotFound, "key %q", key)
	}

	next, err := fn(append([]byte(nil), current...))
	if err != nil {
		return err
	}
	m.records[key] = next
	return nil
}

func (m *MemoryStore) Close() error {
	return nil
}
