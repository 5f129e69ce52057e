package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Level: WARN, Format: TextFormat, Output: &buf})

	log.Debug("debug message")
	log.Info("info message")
	log.Warn("warn message")
	log.Error("error message", nil)

	out := buf.String()
	if strings.Contains(out, "debug message") || strings.Contains(out, "info message") {
		t.Errorf("messages below WARN leaked through:\n%s", out)
	}
	if !strings.Contains(out, "warn message") || !strings.Contains(out, "error message") {
		t.Errorf("messages at or above WARN missing:\n%s", out)
	}
}

func TestTextFormat(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Level: DEBUG, Format: TextFormat, Output: &buf, Component: "ingest"})

	log.Info("loaded data", map[string]interface{}{"rows": 42})

	out := buf.String()
	for _, want := range []string{"INFO", "[ingest]", "loaded data", "rows=42"} {
		if !strings.Contains(out, want) {
			t.Errorf("text output missing %q:\n%s", want, out)
		}
	}
}

func TestJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Level: DEBUG, Format: JSONFormat, Output: &buf})

	log.Warnf("dropped %d rows", 3)

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output is not valid JSON: %v\n%s", err, buf.String())
	}
	if entry["level"] != "WARN" {
		t.Errorf("level = %v, want WARN", entry["level"])
	}
	if entry["message"] != "dropped 3 rows" {
		t.Errorf("message = %v", entry["message"])
	}
}

func TestWithComponent(t *testing.T) {
	var buf bytes.Buffer
	base := New(Config{Level: INFO, Format: TextFormat, Output: &buf})

	base.WithComponent("charts").Info("rendered")
	if !strings.Contains(buf.String(), "[charts]") {
		t.Errorf("component tag missing:\n%s", buf.String())
	}

	buf.Reset()
	base.Info("plain")
	if strings.Contains(buf.String(), "[charts]") {
		t.Error("WithComponent mutated the base logger")
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  LogLevel
		ok    bool
	}{
		{"debug", DEBUG, true},
		{"INFO", INFO, true},
		{"Warn", WARN, true},
		{"error", ERROR, true},
		{"fatal", FATAL, true},
		{"verbose", INFO, false},
	}

	for _, tt := range tests {
		got, ok := ParseLevel(tt.input)
		if ok != tt.ok {
			t.Errorf("ParseLevel(%q) ok = %v, want %v", tt.input, ok, tt.ok)
			continue
		}
		if ok && got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestParseFormat(t *testing.T) {
	if got, ok := ParseFormat("json"); !ok || got != JSONFormat {
		t.Errorf("ParseFormat(json) = %v/%v", got, ok)
	}
	if got, ok := ParseFormat("text"); !ok || got != TextFormat {
		t.Errorf("ParseFormat(text) = %v/%v", got, ok)
	}
	if _, ok := ParseFormat("xml"); ok {
		t.Error("ParseFormat(xml) succeeded, want failure")
	}
}
