package logging

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]zerolog.Level{
		"debug":   zerolog.DebugLevel,
		"WARN":    zerolog.WarnLevel,
		"warning": zerolog.WarnLevel,
		"error":   zerolog.ErrorLevel,
		"off":     zerolog.Disabled,
		"":        zerolog.InfoLevel,
		"verbose": zerolog.InfoLevel,
	}
	for in, want := range tests {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestInitWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	Init(Config{Level: "info", Format: "json", Output: &buf})
	defer Init(Config{})

	Logger().Debug().Msg("hidden")
	Logger().Info().Str("addr", ":5000").Msg("listening")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Error("debug line written at info level")
	}
	if !strings.Contains(out, `"addr":":5000"`) || !strings.Contains(out, `"message":"listening"`) {
		t.Errorf("unexpected output: %s", out)
	}
}

func TestCtxFallsBackToGlobal(t *testing.T) {
	var buf bytes.Buffer
	Init(Config{Output: &buf})
	defer Init(Config{})

	Ctx(context.Background()).Info().Msg("global")

	var scoped bytes.Buffer
	l := zerolog.New(&scoped).With().Str("request_id", "r1").Logger()
	Ctx(WithContext(context.Background(), l)).Info().Msg("scoped")

	if !strings.Contains(buf.String(), "global") {
		t.Errorf("global logger not used: %q", buf.String())
	}
	if !strings.Contains(scoped.String(), `"request_id":"r1"`) {
		t.Errorf("context logger not used: %q", scoped.String())
	}
}
