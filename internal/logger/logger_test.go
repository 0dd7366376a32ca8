package logger

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNew(t *testing.T) {
	for _, json := range []bool{true, false} {
		l, err := New(json, true)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !l.Core().Enabled(zapcore.DebugLevel) {
			t.Fatalf("expected debug level to be enabled")
		}
	}

	l, err := New(false, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if l.Core().Enabled(zapcore.DebugLevel) {
		t.Fatalf("expected debug level to be disabled")
	}
}

func TestNonEmpty(t *testing.T) {
	fields := nonEmpty("provider", "  Gemini  ", "ignored", "   ", "dangling")

	if len(fields) != 1 {
		t.Fatalf("expected 1 field, got %d", len(fields))
	}

	if fields[0].Key != "provider" || fields[0].String != "Gemini" {
		t.Fatalf("unexpected provider field: %+v", fields[0])
	}
}

func TestWithModel(t *testing.T) {
	core, observed := observer.New(zapcore.InfoLevel)

	WithModel(zap.New(core), "gemini", "model-v1").Info("generated")
	WithModel(zap.New(core), "", "").Info("generated")
	WithModel(nil, "gemini", "model-v1").Info("dropped")

	entries := observed.All()
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}

	first := entries[0].ContextMap()
	if first[FieldProvider] != "gemini" || first[FieldModel] != "model-v1" {
		t.Fatalf("unexpected fields: %v", first)
	}

	if len(entries[1].Context) != 0 {
		t.Fatalf("expected blank values to be omitted, got %v", entries[1].ContextMap())
	}
}

func TestWithImport(t *testing.T) {
	core, observed := observer.New(zapcore.InfoLevel)

	WithImport(zap.New(core), "abc-123", "pdf").Info("imported")
	WithImport(zap.New(core), "abc-456", "").Info("imported")

	entries := observed.All()
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}

	first := entries[0].ContextMap()
	if first[FieldImportID] != "abc-123" || first[FieldSourceType] != "pdf" {
		t.Fatalf("unexpected fields: %v", first)
	}

	if _, ok := entries[1].ContextMap()[FieldSourceType]; ok {
		t.Fatalf("expected empty source type to be omitted")
	}
}

func TestTruncateForLog(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		input  string
		limit  int
		expect string
	}{
		{name: "returns empty when limit non-positive", input: "hello world", limit: 0, expect: ""},
		{name: "shorter than limit", input: "hello", limit: 10, expect: "hello"},
		{name: "truncates and adds ellipsis", input: "hello world", limit: 5, expect: "hello..."},
		{name: "trims surrounding whitespace", input: "  spaced  ", limit: 5, expect: "space..."},
		{name: "counts runes", input: "résumé", limit: 3, expect: "rés..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := TruncateForLog(tt.input, tt.limit); got != tt.expect {
				t.Fatalf("expected %q, got %q", tt.expect, got)
			}
		})
	}
}
