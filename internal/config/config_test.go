package config

import (
	"log/slog"
	"reflect"
	"testing"
)

func TestParseDefaults(t *testing.T) {
	s, err := Parse(nil)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if s.SampleRate != SampleRate || s.Threshold != Threshold || s.Size != WindowSize {
		t.Fatalf("unexpected defaults: %+v", s)
	}
	if s.LogLevel != slog.LevelInfo {
		t.Fatalf("expected info level, got %v", s.LogLevel)
	}
	if got := s.Nyquist(); got != 22050 {
		t.Fatalf("expected nyquist 22050, got %v", got)
	}
}

func TestParseFlagsAndSources(t *testing.T) {
	s, err := Parse([]string{"-log-level", "debug", "-seed", "7", "-size", "20", "a.mp3", "music/"})
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if s.LogLevel != slog.LevelDebug {
		t.Fatalf("expected debug level, got %v", s.LogLevel)
	}
	if s.Seed != 7 {
		t.Fatalf("expected seed 7, got %d", s.Seed)
	}
	if s.Size != 100 {
		t.Fatalf("expected size clamped to 100, got %d", s.Size)
	}
	want := []string{"a.mp3", "music/"}
	if !reflect.DeepEqual(s.Sources, want) {
		t.Fatalf("Sources = %v, want %v", s.Sources, want)
	}
}

func TestParseRejectsBadValues(t *testing.T) {
	for _, args := range [][]string{
		{"-sample-rate", "0"},
		{"-threshold", "255"},
		{"-log-level", "loud"},
	} {
		if _, err := Parse(args); err == nil {
			t.Fatalf("expected error for %v", args)
		}
	}
}
