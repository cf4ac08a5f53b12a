package trace

import (
	"fmt"
	"strings"
)

// Level controls tracing verbosity.
type Level uint8

const (
	// LevelOff disables tracing.
	LevelOff    Level = iota
	LevelDriver       // commands and directory walks
	LevelFile         // + one span per file
	LevelPhase        // + scanner and validator phases
)

// String returns the string representation of Level.
func (l Level) String() string {
	switch l {
	case LevelOff:
		return "off"
	case LevelDriver:
		return "driver"
	case LevelFile:
		return "file"
	case LevelPhase:
		return "phase"
	default:
		return "unknown"
	}
}

// ParseLevel converts a string to a Level.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "off", "":
		return LevelOff, nil
	case "driver":
		return LevelDriver, nil
	case "file":
		return LevelFile, nil
	case "phase":
		return LevelPhase, nil
	default:
		return LevelOff, fmt.Errorf("invalid trace level: %q (expected: off|driver|file|phase)", s)
	}
}

// ShouldEmit reports whether events of scope pass this level.
func (l Level) ShouldEmit(scope Scope) bool {
	return l != LevelOff && uint8(scope) <= uint8(l)
}
