package storex

import "context"

// Page represents pagination metadata
type Page struct {
	Number int `json:"page"`      // Current page number (1-based)
	Size   int `json:"page_size"` // Number of records per page
	Total  int `json:"total"`     // Total number of records
	Pages  int `json:"pages"`     // Total number of pages
}

// Paginated is a generic container for paginated data with metadata
type Paginated[T any] struct {
	Data  []T  `json:"data"`
	Page  Page `json:"pagination"`
	Empty bool `json:"empty"`
}

// NewPaginated creates a new paginated result with calculated fields
func NewPaginated[T any](data []T, page, size, total int) Paginated[T] {
	pages := 0
	if size > 0 {
		pages = (total + size - 1) / size
	}

	return Paginated[T]{
		Data: data,
		Page: Page{
			Number: page,
			Size:   size,
			Total:  total,
			Pages:  pages,
		},
		Empty: len(data) == 0,
	}
}

// HasNext returns whether there are more pages after the current one
func (p Paginated[T]) HasNext() bool {
	return p.Page.Number < p.Page.Pages
}

// HasPrevious returns whether there are pages before the current one
func (p Paginated[T]) HasPrevious() bool {
	return p.Page.Number > 1
}

// PaginationOptions selects a page of keys
type PaginationOptions struct {
	Page     int  // Page number (1-based)
	PageSize int  // Number of entries per page
	Desc     bool // Reverse key order
}

// DefaultPaginationOptions returns the first page of 25 entries
func DefaultPaginationOptions() PaginationOptions {
	return PaginationOptions{
		Page:     1,
		PageSize: 25,
	}
}

// Entry is a stored key and its value
type Entry[V any] struct {
	Key   string `json:"key"`
	Value V      `json:"value"`
}

// KeyValue is a keyed store whose failures are MapError instances.
//
// Add fails with ErrKeyInUse when the key exists; Get and Remove fail with
// ErrKeyNotFound when it does not.
type KeyValue[V any] interface {
	Add(ctx context.Context, key string, value V) error
	Get(ctx context.Context, key string) (V, error)
	Remove(ctx context.Context, key string) error
	Keys(ctx context.Context) ([]string, error)
	Paginate(ctx context.Context, opts PaginationOptions) (Paginated[Entry[V]], error)
}
