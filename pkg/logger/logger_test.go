package logger

import (
	"bytes"
	"strings"
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestNew_Levels(t *testing.T) {
	var buf bytes.Buffer
	l, err := NewWithSink(Config{Level: "warn"}, zapcore.AddSync(&buf))
	if err != nil {
		t.Fatal(err)
	}
	l.Info("hidden")
	l.Warn("shown")
	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info message written at warn level: %q", out)
	}
	if !strings.Contains(out, "shown") || !strings.Contains(out, "WARN") {
		t.Errorf("missing warn message: %q", out)
	}
}

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer
	l, err := NewWithSink(Config{Level: "debug", Format: "json"}, zapcore.AddSync(&buf))
	if err != nil {
		t.Fatal(err)
	}
	l.Debug("child started")
	if !strings.Contains(buf.String(), `"msg":"child started"`) {
		t.Errorf("unexpected json output: %q", buf.String())
	}
}

func TestNew_Invalid(t *testing.T) {
	if _, err := New(Config{Level: "loud"}); err == nil {
		t.Error("expected invalid level error")
	}
	if _, err := New(Config{Format: "xml"}); err == nil {
		t.Error("expected invalid format error")
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		cfg Config
		ok  bool
	}{
		{Config{}, true},
		{Config{Level: "debug", Format: "json"}, true},
		{Config{Level: "error", Format: "console"}, true},
		{Config{Level: "loud"}, false},
		{Config{Format: "xml"}, false},
	}
	for _, tt := range tests {
		if err := tt.cfg.Validate(); (err == nil) != tt.ok {
			t.Errorf("Validate(%+v) = %v", tt.cfg, err)
		}
	}
}
