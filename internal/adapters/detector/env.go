// Package detector decides how the watch loop presents rebuilds.
package detector

import (
	"os"
	"strings"

	"golang.org/x/term"
)

// OutputMode represents how rebuild reports are presented.
type OutputMode int

const (
	// ModeAuto picks a mode from the environment.
	ModeAuto OutputMode = iota
	// ModeInteractive clears the terminal before each rebuild report.
	ModeInteractive
	// ModeLinear appends reports, suitable for CI logs and pipes.
	ModeLinear
)

// String returns the flag spelling of the mode.
func (m OutputMode) String() string {
	switch m {
	case ModeInteractive:
		return "interactive"
	case ModeLinear:
		return "linear"
	default:
		return "auto"
	}
}

// DetectEnvironment returns ModeInteractive when stdout is a terminal outside CI.
func DetectEnvironment() OutputMode {
	isTTY := term.IsTerminal(int(os.Stdout.Fd()))
	if !isTTY || IsCI() {
		return ModeLinear
	}
	return ModeInteractive
}

// IsCI reports whether CI is set to "true" or "1".
func IsCI() bool {
	ci := os.Getenv("CI")
	return ci == "true" || ci == "1"
}

// ResolveMode applies a user flag to the detected mode.
// Unknown flags keep the detected mode.
func ResolveMode(autoDetected OutputMode, userFlag string) OutputMode {
	switch strings.ToLower(userFlag) {
	case "interactive", "tty":
		return ModeInteractive
	case "linear", "ci":
		return ModeLinear
	default:
		return autoDetected
	}
}
