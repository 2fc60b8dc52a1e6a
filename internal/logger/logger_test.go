package logger

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestNew(t *testing.T) {
	log := New(Options{Level: "warn", Format: FormatJSON})
	if log.GetLevel() != zerolog.WarnLevel {
		t.Errorf("Expected warn level, got %s", log.GetLevel())
	}
}

func TestNewWithWriter(t *testing.T) {
	buf := &bytes.Buffer{}
	log := NewWithWriter(buf)

	log.Info().Msg("test message")

	if !strings.Contains(buf.String(), "test message") {
		t.Errorf("Expected output to contain 'test message', got: %s", buf.String())
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]zerolog.Level{
		"debug":   zerolog.DebugLevel,
		"INFO":    zerolog.InfoLevel,
		" error ": zerolog.ErrorLevel,
		"":        zerolog.InfoLevel,
		"chatty":  zerolog.InfoLevel,
	}
	for in, expected := range cases {
		if got := ParseLevel(in); got != expected {
			t.Errorf("ParseLevel(%q): expected %s, got %s", in, expected, got)
		}
	}
}

func TestFromContext(t *testing.T) {
	t.Run("returns the stored logger", func(t *testing.T) {
		buf := &bytes.Buffer{}
		ctx := WithContext(context.Background(), NewWithWriter(buf))

		log := FromContext(ctx)
		log.Info().Msg("test")

		if buf.Len() == 0 {
			t.Error("Expected log output from retrieved logger")
		}
	})

	t.Run("returns a disabled logger when none is stored", func(t *testing.T) {
		log := FromContext(context.Background())
		if log.GetLevel() != zerolog.Disabled {
			t.Errorf("Expected disabled logger, got level %s", log.GetLevel())
		}
	})
}

func TestWithComponent(t *testing.T) {
	buf := &bytes.Buffer{}
	log := WithComponent(NewWithWriter(buf), "scheduler")

	log.Info().Msg("tick")

	if !strings.Contains(buf.String(), `"component":"scheduler"`) {
		t.Errorf("Expected component field in output, got: %s", buf.String())
	}
}
