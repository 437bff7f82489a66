package services

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func cursorOf(s string) *Cursor {
	c := Cursor(s)
	return &c
}

func TestCollect(t *testing.T) {
	ctx := context.Background()

	t.Run("follows cursors across pages in arrival order", func(t *testing.T) {
		pages := []Page[string]{
			{Items: []string{"a", "b"}, Next: cursorOf("p2")},
			{Items: []string{"c"}, Next: cursorOf("p3")},
			{Items: []string{"d", "e"}, Next: nil},
		}
		calls := 0

		items, err := Collect(ctx, func(ctx context.Context, cursor *Cursor) (Page[string], error) {
			if calls == 0 && cursor != nil {
				t.Errorf("expected nil cursor on first call, got %q", *cursor)
			}
			if calls > 0 && cursor == nil {
				t.Error("expected cursor on continuation call")
			}
			page := pages[calls]
			calls++
			return page, nil
		})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if calls != 3 {
			t.Errorf("expected 3 fetch calls, got %d", calls)
		}
		want := []string{"a", "b", "c", "d", "e"}
		if len(items) != len(want) {
			t.Fatalf("expected %d items, got %d", len(want), len(items))
		}
		for i, item := range items {
			if item != want[i] {
				t.Errorf("item %d: expected %q, got %q", i, want[i], item)
			}
		}
	})

	t.Run("single page without cursor ends after one call", func(t *testing.T) {
		calls := 0
		items, err := Collect(ctx, func(ctx context.Context, cursor *Cursor) (Page[int], error) {
			calls++
			return Page[int]{Items: []int{1, 2, 3}}, nil
		})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if calls != 1 {
			t.Errorf("expected 1 fetch call, got %d", calls)
		}
		if len(items) != 3 {
			t.Errorf("expected 3 items, got %d", len(items))
		}
	})

	t.Run("empty page with cursor does not terminate the walk", func(t *testing.T) {
		pages := []Page[string]{
			{Items: []string{"a"}, Next: cursorOf("p2")},
			{Items: nil, Next: cursorOf("p3")},
			{Items: []string{"b"}, Next: nil},
		}
		calls := 0

		items, err := Collect(ctx, func(ctx context.Context, cursor *Cursor) (Page[string], error) {
			page := pages[calls]
			calls++
			return page, nil
		})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if calls != 3 {
			t.Errorf("expected 3 fetch calls, got %d", calls)
		}
		if len(items) != 2 {
			t.Errorf("expected 2 items, got %d", len(items))
		}
	})

	t.Run("error on any page discards gathered items", func(t *testing.T) {
		boom := errors.New("page 2 failed")
		calls := 0

		items, err := Collect(ctx, func(ctx context.Context, cursor *Cursor) (Page[string], error) {
			calls++
			if calls == 2 {
				return Page[string]{}, boom
			}
			return Page[string]{Items: []string{fmt.Sprintf("item-%d", calls)}, Next: cursorOf("next")}, nil
		})
		if !errors.Is(err, boom) {
			t.Errorf("expected page error, got %v", err)
		}
		if items != nil {
			t.Errorf("expected no partial results, got %v", items)
		}
	})

	t.Run("cancelled context stops the walk", func(t *testing.T) {
		cancelled, cancel := context.WithCancel(ctx)
		cancel()

		_, err := Collect(cancelled, func(ctx context.Context, cursor *Cursor) (Page[string], error) {
			t.Error("fetch must not run after cancellation")
			return Page[string]{}, nil
		})
		if !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
	})
}
