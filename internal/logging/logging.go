// Package logging builds the structured logger shared by the commands.
package logging

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

// ErrInvalidLevel is returned for an unknown level name.
var ErrInvalidLevel = log.ErrInvalidLevel

const Prefix = "shgcav"

// ParseLevel accepts the charmbracelet level names plus "warning" and an
// empty string for info.
func ParseLevel(s string) (log.Level, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	switch name {
	case "":
		return log.InfoLevel, nil
	case "warning":
		name = "warn"
	}
	lvl, err := log.ParseLevel(name)
	if err != nil {
		return log.InfoLevel, fmt.Errorf("log level: %w", err)
	}
	return lvl, nil
}

// New returns a logger writing to w at the named level.
func New(w io.Writer, level string) (*log.Logger, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}
	return log.NewWithOptions(w, log.Options{
		Level:           lvl,
		ReportTimestamp: true,
		TimeFormat:      time.TimeOnly,
		Prefix:          Prefix,
	}), nil
}

// Discard is a logger that drops everything.
func Discard() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Prefix: Prefix})
}
