package storex

import (
	"context"
	"sort"
	"sync"

	"github.com/Abraxas-365/customerr/logx"
)

// MemoryStore is a KeyValue kept in a map. It is safe for concurrent use.
type MemoryStore[V any] struct {
	mu     sync.RWMutex
	values map[string]V
}

var _ KeyValue[any] = (*MemoryStore[any])(nil)

// NewMemoryStore creates an empty store
func NewMemoryStore[V any]() *MemoryStore[V] {
	return &MemoryStore[V]{values: make(map[string]V)}
}

// Add stores value under key
func (s *MemoryStore[V]) Add(ctx context.Context, key string, value V) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.values[key]; ok {
		logx.Debug("storex: add rejected, key %q in use", key)
		return ErrKeyInUse.New("").WithDetail("key", key)
	}
	s.values[key] = value
	return nil
}

// Get returns the value stored under key
func (s *MemoryStore[V]) Get(ctx context.Context, key string) (V, error) {
	var zero V
	if err := ctx.Err(); err != nil {
		return zero, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.values[key]
	if !ok {
		return zero, ErrKeyNotFound.New("").WithDetail("key", key)
	}
	return v, nil
}

// Remove deletes key
func (s *MemoryStore[V]) Remove(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.values[key]; !ok {
		return ErrKeyNotFound.New("").WithDetail("key", key)
	}
	delete(s.values, key)
	return nil
}

// Keys returns every key, sorted
func (s *MemoryStore[V]) Keys(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sortedKeys(false), nil
}

// Paginate returns one page of entries in key order
func (s *MemoryStore[V]) Paginate(ctx context.Context, opts PaginationOptions) (Paginated[Entry[V]], error) {
	if err := ctx.Err(); err != nil {
		return Paginated[Entry[V]]{}, err
	}
	if opts.Page < 1 {
		opts.Page = 1
	}
	if opts.PageSize < 1 {
		opts.PageSize = DefaultPaginationOptions().PageSize
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	keys := s.sortedKeys(opts.Desc)
	start := min((opts.Page-1)*opts.PageSize, len(keys))
	end := min(start+opts.PageSize, len(keys))

	entries := make([]Entry[V], 0, end-start)
	for _, k := range keys[start:end] {
		entries = append(entries, Entry[V]{Key: k, Value: s.values[k]})
	}
	return NewPaginated(entries, opts.Page, opts.PageSize, len(keys)), nil
}

// sortedKeys must be called with mu held
func (s *MemoryStore[V]) sortedKeys(desc bool) []string {
	keys := make([]string, 0, len(s.values))
	for k := range s.values {
		keys = append(keys, k)
	}
	if desc {
		sort.Sort(sort.Reverse(sort.StringSlice(keys)))
	} else {
		sort.Strings(keys)
	}
	return keys
}
