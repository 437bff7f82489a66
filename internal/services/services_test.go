package services

import (
	"encoding/json"
	"testing"
)

func TestItemJSON(t *testing.T) {
	t.Run("Marshal", func(t *testing.T) {
		t.Run("bare string without list id", func(t *testing.T) {
			data, err := json.Marshal(Item{Title: "Song One"})
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if string(data) != `"Song One"` {
				t.Errorf("expected bare string, got %s", data)
			}
		})

		t.Run("object with list id", func(t *testing.T) {
			data, err := json.Marshal(Item{Title: "Song One", ListID: "PL123"})
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if string(data) != `{"title":"Song One","listId":"PL123"}` {
				t.Errorf("unexpected object form: %s", data)
			}
		})
	})

	t.Run("Unmarshal", func(t *testing.T) {
		t.Run("bare string", func(t *testing.T) {
			var item Item
			if err := json.Unmarshal([]byte(`"Song Two"`), &item); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if item.Title != "Song Two" || item.ListID != "" {
				t.Errorf("unexpected item: %+v", item)
			}
		})

		t.Run("object", func(t *testing.T) {
			var item Item
			if err := json.Unmarshal([]byte(`{"title":"Song Three","listId":"PL456"}`), &item); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if item.Title != "Song Three" || item.ListID != "PL456" {
				t.Errorf("unexpected item: %+v", item)
			}
		})

		t.Run("mixed slice", func(t *testing.T) {
			var items []Item
			payload := `["Plain Title", {"title":"Tagged Title","listId":"PL789"}]`
			if err := json.Unmarshal([]byte(payload), &items); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if len(items) != 2 {
				t.Fatalf("expected 2 items, got %d", len(items))
			}
			if items[0].Title != "Plain Title" || items[0].ListID != "" {
				t.Errorf("unexpected first item: %+v", items[0])
			}
			if items[1].Title != "Tagged Title" || items[1].ListID != "PL789" {
				t.Errorf("unexpected second item: %+v", items[1])
			}
		})
	})
}
