// Package style provides the colors and icons shared by the CLI output.
package style

import "github.com/charmbracelet/lipgloss"

// Palette.
var (
	Amber  = lipgloss.Color("#F59E0B")
	Slate  = lipgloss.Color("#667085")
	Teal   = lipgloss.Color("#0E9384")
	Green  = lipgloss.Color("#22A06B")
	Red    = lipgloss.Color("#D93025")
	Yellow = lipgloss.Color("#EAAA08")
)

// Icons.
const (
	Check   = "✓"
	Cross   = "✗"
	Warning = "!"
	Arrow   = "→"
	Skip    = "~"
)
