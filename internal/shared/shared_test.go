package shared

import (
	"io"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestSetLogLevel(t *testing.T) {
	logger := NewLogger(io.Discard)

	SetLogLevel(logger, log.DebugLevel)
	if logger.GetLevel() != log.DebugLevel {
		t.Errorf("expected debug level, got %v", logger.GetLevel())
	}

	SetLogLevel(logger, log.WarnLevel)
	if logger.GetLevel() != log.WarnLevel {
		t.Errorf("expected warn level, got %v", logger.GetLevel())
	}
}

func TestGenerateState(t *testing.T) {
	first, err := GenerateState()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if first == "" {
		t.Fatal("expected non-empty state token")
	}

	second, err := GenerateState()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if first == second {
		t.Error("expected distinct state tokens across calls")
	}
}

func TestMarshalJSON(t *testing.T) {
	payload := map[string]any{"items": []string{"a", "b"}}

	t.Run("compact", func(t *testing.T) {
		data, err := MarshalJSON(payload, false)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if strings.Contains(string(data), "\n") {
			t.Errorf("expected compact output, got %q", string(data))
		}
	})

	t.Run("pretty", func(t *testing.T) {
		data, err := MarshalJSON(payload, true)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !strings.Contains(string(data), "\n  ") {
			t.Errorf("expected indented output, got %q", string(data))
		}
	})
}

func TestValidateJSON(t *testing.T) {
	if err := ValidateJSON([]byte(`{"ok":true}`)); err != nil {
		t.Errorf("expected valid JSON to pass, got %v", err)
	}
	if err := ValidateJSON([]byte(`{"ok":`)); err == nil {
		t.Error("expected error for truncated JSON")
	}
}
