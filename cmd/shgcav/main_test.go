package main

import (
	"bytes"
	"errors"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/san-kum/shgcav/internal/logging"
)

func TestRootRejectsBadLogLevel(t *testing.T) {
	prev := logging.Discard()
	logger = prev

	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs([]string{"--log-level", "bogus", "presets"})

	err := root.Execute()
	if !errors.Is(err, logging.ErrInvalidLevel) {
		t.Fatalf("expected ErrInvalidLevel, got %v", err)
	}
	if logger != prev {
		t.Fatal("logger replaced after a failed level parse")
	}
	logger.Error(err)
}

func TestSetupLogger(t *testing.T) {
	logger = logging.Discard()
	logLevel = "warn"
	defer func() { logLevel = "info" }()

	if err := setupLogger(nil, nil); err != nil {
		t.Fatal(err)
	}
	if logger.GetLevel() != log.WarnLevel {
		t.Errorf("level = %v, want warn", logger.GetLevel())
	}
}
