package logger

import (
	"bytes"
	"os"
	"strings"
	"testing"
)

func resetLogger() {
	Init("info")
	SetOutput(os.Stdout)
}

func TestInit_LevelParsing(t *testing.T) {
	defer resetLogger()
	tests := []struct {
		in   string
		want string
	}{
		{"debug", "debug"},
		{"DEBUG", "debug"},
		{" warn ", "warn"},
		{"warning", "warn"},
		{"error", "error"},
		{"fatal", "fatal"},
		{"", "info"},
		{"bogus", "info"},
	}
	for _, tc := range tests {
		Init(tc.in)
		if got := LevelString(); got != tc.want {
			t.Fatalf("Init(%q): level = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestLevelFiltering(t *testing.T) {
	defer resetLogger()
	var buf bytes.Buffer
	SetOutput(&buf)

	Init("warn")
	Debugf("debug line")
	Infof("info line")
	Warnf("warn line")
	Errorf("error line")

	got := buf.String()
	if strings.Contains(got, "debug line") || strings.Contains(got, "info line") {
		t.Fatalf("suppressed levels leaked: %q", got)
	}
	if !strings.Contains(got, "warn line") || !strings.Contains(got, "error line") {
		t.Fatalf("enabled levels missing: %q", got)
	}
}

func TestOutputFormat(t *testing.T) {
	defer resetLogger()
	var buf bytes.Buffer
	SetOutput(&buf)

	Init("info")
	Infof("formatted %d %s", 42, "values")

	got := buf.String()
	if !strings.Contains(got, "[INFO] ") {
		t.Fatalf("missing level tag: %q", got)
	}
	if !strings.Contains(got, "formatted 42 values") {
		t.Fatalf("format args not applied: %q", got)
	}
}

func TestSingleStringHelpers(t *testing.T) {
	defer resetLogger()
	var buf bytes.Buffer
	SetOutput(&buf)

	Init("debug")
	Debug("plain debug")
	Info("plain info")
	Warn("plain warn")
	Error("plain error")

	got := buf.String()
	for _, want := range []string{"plain debug", "plain info", "plain warn", "plain error"} {
		if !strings.Contains(got, want) {
			t.Fatalf("missing %q in output: %q", want, got)
		}
	}
}
