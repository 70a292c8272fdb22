package domain

import "strings"

// Default project paths applied when path defaults are enabled.
const (
	DefaultSource    = "./app/assets"
	DefaultOutput    = "./public/assets"
	DefaultEntry     = "./js/index.js"
	DefaultModernizr = ".modernizr-autorc"
)

// Mode is the build mode derived from NODE_ENV.
type Mode string

const (
	// ModeDevelopment enables the development-only branches.
	ModeDevelopment Mode = "development"
	// ModeProduction enables the production-only branches.
	ModeProduction Mode = "production"
)

// ParseMode validates a mode given on the command line.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(s))); m {
	case ModeDevelopment, ModeProduction:
		return m, nil
	default:
		return "", annotate(ErrUnknownMode, "cannot parse mode", "mode", s)
	}
}

// Environment carries the process-level inputs of a configuration pass.
type Environment struct {
	// Mode is the raw NODE_ENV value. Values other than development and
	// production enable neither set of branches.
	Mode Mode
	// DevProxy is the upstream URL proxied by the development server.
	DevProxy string
}

// IsProduction reports whether the production branches apply.
func (e Environment) IsProduction() bool {
	return e.Mode == ModeProduction
}

// IsDevelopment reports whether the development branches apply.
func (e Environment) IsDevelopment() bool {
	return e.Mode == ModeDevelopment
}

// Favicon configures the favicon generator plugin.
type Favicon struct {
	Logo       string
	Title      string
	Background string
}

// Options are the validated project options a configuration pass starts from.
type Options struct {
	// Root is the absolute project directory. Relative paths are resolved against it.
	Root   string
	Source string
	Output string
	Entry  string

	// SetPathDefaults replaces Source, Output and Entry with the defaults.
	// Nil means true.
	SetPathDefaults *bool
	// SPA keeps the html plugin registered by the web middleware.
	SPA bool

	Favicon   Favicon
	Modernizr string
	PostCSS   map[string]any
}

// PathDefaults reports whether default paths are applied.
func (o Options) PathDefaults() bool {
	return o.SetPathDefaults == nil || *o.SetPathDefaults
}

// Resolved returns a copy of o with defaults applied.
// With path defaults enabled the default paths overwrite whatever was supplied.
func (o Options) Resolved() Options {
	if o.PathDefaults() {
		o.Source = DefaultSource
		o.Output = DefaultOutput
		o.Entry = DefaultEntry
	}
	if o.Modernizr == "" {
		o.Modernizr = DefaultModernizr
	}
	o.PostCSS = cloneMap(o.PostCSS)
	return o
}
