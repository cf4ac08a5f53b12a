package main

import (
	"fmt"
	"os"
	"strings"
)

// uiMode is the --ui setting of lcc check.
type uiMode uint8

const (
	uiModeAuto uiMode = iota
	uiModeOn
	uiModeOff
)

var uiModes = map[string]uiMode{"": uiModeAuto, "auto": uiModeAuto, "on": uiModeOn, "off": uiModeOff}

func readUIMode(value string) (uiMode, error) {
	mode, ok := uiModes[strings.ToLower(strings.TrimSpace(value))]
	if !ok {
		return uiModeAuto, fmt.Errorf("invalid --ui value %q (expected auto|on|off)", value)
	}
	return mode, nil
}

// enabled decides for auto mode from the terminal state of both streams:
// the progress view is drawn on stderr, stdout stays for diagnostics.
func (m uiMode) enabled(stdoutTTY, stderrTTY bool) bool {
	switch m {
	case uiModeOn:
		return true
	case uiModeOff:
		return false
	}
	return stdoutTTY && stderrTTY
}

func shouldUseTUI(mode uiMode) bool {
	return mode.enabled(isTerminal(os.Stdout), isTerminal(os.Stderr))
}
