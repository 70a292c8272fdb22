// Package output builds termenv outputs that honour NO_COLOR and prints
// the one-line status messages of the CLI.
package output

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"go.trai.ch/fusionary/internal/ui/style"
)

// ColorProfile returns Ascii when NO_COLOR is set and the detected profile otherwise.
func ColorProfile() termenv.Profile {
	if os.Getenv("NO_COLOR") != "" {
		return termenv.Ascii
	}
	return termenv.EnvColorProfile()
}

// New creates a termenv.Output for w. A nil writer means stderr.
func New(w io.Writer, opts ...termenv.OutputOption) *termenv.Output {
	if w == nil {
		w = os.Stderr
	}

	opts = append(opts,
		termenv.WithProfile(ColorProfile()),
		termenv.WithTTY(true),
	)

	return termenv.NewOutput(w, opts...)
}

// Success prints a check mark line.
func Success(w io.Writer, format string, args ...any) {
	status(w, style.Check, style.Green, format, args...)
}

// Skipped prints a line for work that was not needed.
func Skipped(w io.Writer, format string, args ...any) {
	status(w, style.Skip, style.Slate, format, args...)
}

// Failure prints a cross line.
func Failure(w io.Writer, format string, args ...any) {
	status(w, style.Cross, style.Red, format, args...)
}

func status(w io.Writer, icon string, color lipgloss.Color, format string, args ...any) {
	out := New(w)
	c := termenv.RGBColor(string(color))
	line := out.String(icon + " " + fmt.Sprintf(format, args...)).Foreground(c)
	_, _ = out.WriteString(line.String() + "\n")
}
