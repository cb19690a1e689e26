package logging

import (
	"bytes"
	"errors"
	"log"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func TestFieldHelpers(t *testing.T) {
	testErr := errors.New("boom")
	tests := []struct {
		name      string
		field     Field
		wantKey   string
		wantValue any
	}{
		{"String", String("key", "value"), "key", "value"},
		{"Int", Int("index", 42), "index", 42},
		{"Int64", Int64("value", 7540113804746346429), "value", int64(7540113804746346429)},
		{"Uint64", Uint64("n", 12345678901234567890), "n", uint64(12345678901234567890)},
		{"Float64", Float64("ratio", 0.5), "ratio", 0.5},
		{"Duration", Duration("took", time.Second), "took", time.Second},
		{"Err", Err(testErr), "error", testErr},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.field.Key != tt.wantKey {
				t.Errorf("Key = %q, want %q", tt.field.Key, tt.wantKey)
			}
			if tt.field.Value != tt.wantValue {
				t.Errorf("Value = %v, want %v", tt.field.Value, tt.wantValue)
			}
		})
	}
}

func TestNewLogger_IncludesComponent(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, "sequence")

	logger.Info("extended", Int("len", 12))

	output := buf.String()
	for _, want := range []string{"sequence", "extended", `"len":12`} {
		if !strings.Contains(output, want) {
			t.Errorf("output should contain %q, got: %s", want, output)
		}
	}
}

func TestZerologAdapter_Levels(t *testing.T) {
	var buf bytes.Buffer
	logger := NewZerologAdapter(zerolog.New(&buf).Level(zerolog.DebugLevel))

	logger.Debug("debug message", String("key", "value"))
	logger.Error("overflow reached", errors.New("int64 overflow"), Int("index", 92))

	output := buf.String()
	for _, want := range []string{"debug message", `"level":"debug"`, "overflow reached", "int64 overflow", `"index":92`} {
		if !strings.Contains(output, want) {
			t.Errorf("output should contain %q, got: %s", want, output)
		}
	}
}

func TestZerologAdapter_applyFields(t *testing.T) {
	tests := []struct {
		name     string
		field    Field
		contains string
	}{
		{"string", Field{Key: "str", Value: "hello"}, "hello"},
		{"int64", Field{Key: "big", Value: int64(9223372036854775807)}, "9223372036854775807"},
		{"duration", Field{Key: "took", Value: 1500 * time.Millisecond}, "took"},
		{"bool", Field{Key: "overflow", Value: true}, "true"},
		{"struct", Field{Key: "data", Value: struct{ X int }{X: 1}}, `"X":1`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			NewLogger(&buf, "test").Info("fields", tt.field)
			if !strings.Contains(buf.String(), tt.contains) {
				t.Errorf("output should contain %q, got: %s", tt.contains, buf.String())
			}
		})
	}
}

func TestZerologAdapter_PrintfPrintln(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, "test")

	logger.Printf("row %d of %d", 3, 20)
	logger.Println("cache", "ready")

	output := buf.String()
	if !strings.Contains(output, "row 3 of 20") || !strings.Contains(output, "cache ready") {
		t.Errorf("unexpected output: %s", output)
	}
}

func TestStdLoggerAdapter(t *testing.T) {
	tests := []struct {
		name     string
		log      func(Logger)
		contains []string
	}{
		{"info", func(l Logger) { l.Info("listening", String("addr", ":8080")) }, []string{"[INFO]", "listening", "addr=:8080"}},
		{"error", func(l Logger) { l.Error("write failed", errors.New("closed pipe")) }, []string{"[ERROR]", "write failed", "closed pipe"}},
		{"debug", func(l Logger) { l.Debug("extend", Int("index", 5)) }, []string{"[DEBUG]", "extend", "index=5"}},
		{"printf", func(l Logger) { l.Printf("value is %d", 13) }, []string{"value is 13"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.log(NewStdLoggerAdapter(log.New(&buf, "", 0)))
			for _, want := range tt.contains {
				if !strings.Contains(buf.String(), want) {
					t.Errorf("output should contain %q, got: %s", want, buf.String())
				}
			}
		})
	}
}

func TestSetGlobalLevel(t *testing.T) {
	prev := zerolog.GlobalLevel()
	defer zerolog.SetGlobalLevel(prev)

	if err := SetGlobalLevel("warn"); err != nil {
		t.Fatalf("SetGlobalLevel(warn) error: %v", err)
	}
	if zerolog.GlobalLevel() != zerolog.WarnLevel {
		t.Errorf("GlobalLevel = %v, want warn", zerolog.GlobalLevel())
	}
	if err := SetGlobalLevel("chatty"); err == nil {
		t.Error("expected error for unknown level")
	}
}

func TestLoggerInterface(t *testing.T) {
	var buf bytes.Buffer
	var _ Logger = NewLogger(&buf, "test")
	var _ Logger = NewStdLoggerAdapter(log.New(&buf, "", 0))
	var _ Logger = Nop()
}
