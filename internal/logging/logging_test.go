package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(Config{Format: JSONFormat, Level: InfoLevel, Output: &buf})

	logger.Info("hello", map[string]interface{}{"commits": 3})

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if entry["msg"] != "hello" {
		t.Errorf("msg = %v, want hello", entry["msg"])
	}
	if entry["commits"] != float64(3) {
		t.Errorf("commits = %v, want 3", entry["commits"])
	}
}

func TestHumanFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(Config{Format: HumanFormat, Level: InfoLevel, Output: &buf})

	logger.Warn("slow command", map[string]interface{}{"duration": "5s"})

	out := buf.String()
	if !strings.Contains(out, "slow command") {
		t.Errorf("output %q missing message", out)
	}
	if !strings.Contains(out, "duration=5s") {
		t.Errorf("output %q missing field", out)
	}
	if !strings.Contains(out, "WARN") {
		t.Errorf("output %q missing level", out)
	}
}

func TestLevelFiltering(t *testing.T) {
	tests := []struct {
		name      string
		level     LogLevel
		wantDebug bool
		wantError bool
	}{
		{"debug passes everything", DebugLevel, true, true},
		{"info drops debug", InfoLevel, false, true},
		{"error drops debug", ErrorLevel, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := NewLogger(Config{Format: HumanFormat, Level: tt.level, Output: &buf})

			logger.Debug("debug msg", nil)
			gotDebug := strings.Contains(buf.String(), "debug msg")
			if gotDebug != tt.wantDebug {
				t.Errorf("debug logged = %v, want %v", gotDebug, tt.wantDebug)
			}

			buf.Reset()
			logger.Error("error msg", nil)
			gotError := strings.Contains(buf.String(), "error msg")
			if gotError != tt.wantError {
				t.Errorf("error logged = %v, want %v", gotError, tt.wantError)
			}
		})
	}
}

func TestNilFields(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(Config{Format: JSONFormat, Level: InfoLevel, Output: &buf})

	logger.Info("no fields", nil)

	if buf.Len() == 0 {
		t.Error("expected output for nil fields")
	}
}
