package services

import "context"

// Cursor is an opaque continuation token issued by a provider. Callers never
// inspect it, only hand it back on the next fetch.
type Cursor string

// Page is one unit of a paginated result set.
type Page[T any] struct {
	Items []T
	Next  *Cursor
}

// FetchFunc retrieves a single page. A nil cursor requests the first page.
type FetchFunc[T any] func(ctx context.Context, cursor *Cursor) (Page[T], error)

// Collect drains a paginated endpoint into a single slice.
//
// The walk starts with a nil cursor and follows Next until a page omits it.
// The result is all-or-nothing: an error on any page discards the items
// gathered so far.
func Collect[T any](ctx context.Context, fetch FetchFunc[T]) ([]T, error) {
	var items []T
	var cursor *Cursor

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		page, err := fetch(ctx, cursor)
		if err != nil {
			return nil, err
		}

		items = append(items, page.Items...)
		if page.Next == nil {
			return items, nil
		}
		cursor = page.Next
	}
}
