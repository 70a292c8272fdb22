package domain

import (
	"fmt"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// Snapshot is the finalized, read-only view of a descriptor.
// It shares no memory with the descriptor it was taken from.
type Snapshot struct {
	Mode      Mode              `yaml:"mode" json:"mode"`
	Entries   []EntrySnapshot   `yaml:"entries" json:"entries"`
	Output    OutputSnapshot    `yaml:"output" json:"output"`
	Resolve   ResolveSnapshot   `yaml:"resolve" json:"resolve"`
	Rules     []RuleSnapshot    `yaml:"rules" json:"rules"`
	Plugins   []PluginSnapshot  `yaml:"plugins" json:"plugins"`
	DevServer DevServerSnapshot `yaml:"devServer" json:"devServer"`
}

// EntrySnapshot is a named entry with its paths.
type EntrySnapshot struct {
	Name  string   `yaml:"name" json:"name"`
	Paths []string `yaml:"paths" json:"paths"`
}

// OutputSnapshot holds the output settings.
type OutputSnapshot struct {
	Path       string `yaml:"path,omitempty" json:"path,omitempty"`
	Filename   string `yaml:"filename,omitempty" json:"filename,omitempty"`
	PublicPath string `yaml:"publicPath,omitempty" json:"publicPath,omitempty"`
}

// AliasSnapshot maps a module name to its replacement.
type AliasSnapshot struct {
	Name   string `yaml:"name" json:"name"`
	Target string `yaml:"target" json:"target"`
}

// ResolveSnapshot is the resolution table.
type ResolveSnapshot struct {
	Alias      []AliasSnapshot `yaml:"alias,omitempty" json:"alias,omitempty"`
	Modules    []string        `yaml:"modules,omitempty" json:"modules,omitempty"`
	Extensions []string        `yaml:"extensions,omitempty" json:"extensions,omitempty"`
}

// RuleSnapshot is a rule with its ordered steps.
type RuleSnapshot struct {
	Name    string         `yaml:"name" json:"name"`
	Test    string         `yaml:"test,omitempty" json:"test,omitempty"`
	Include []string       `yaml:"include,omitempty" json:"include,omitempty"`
	Steps   []StepSnapshot `yaml:"steps" json:"steps"`
}

// StepSnapshot is a loader reference and its options.
type StepSnapshot struct {
	Name    string `yaml:"name" json:"name"`
	Loader  string `yaml:"loader,omitempty" json:"loader,omitempty"`
	Options any    `yaml:"options,omitempty" json:"options,omitempty"`
}

// PluginSnapshot is a plugin implementation reference and its arguments.
type PluginSnapshot struct {
	Name string `yaml:"name" json:"name"`
	Use  string `yaml:"use,omitempty" json:"use,omitempty"`
	Args []any  `yaml:"args,omitempty" json:"args,omitempty"`
}

// ProxySnapshot is a dev server proxy rule.
type ProxySnapshot struct {
	Path         string `yaml:"path" json:"path"`
	Target       string `yaml:"target" json:"target"`
	ChangeOrigin bool   `yaml:"changeOrigin" json:"changeOrigin"`
}

// DevServerSnapshot holds the development server settings.
type DevServerSnapshot struct {
	Host  string          `yaml:"host,omitempty" json:"host,omitempty"`
	Port  int             `yaml:"port,omitempty" json:"port,omitempty"`
	Hot   bool            `yaml:"hot,omitempty" json:"hot,omitempty"`
	Proxy []ProxySnapshot `yaml:"proxy,omitempty" json:"proxy,omitempty"`
}

func (d *Descriptor) snapshot() *Snapshot {
	s := &Snapshot{
		Mode:    d.env.Mode,
		Entries: []EntrySnapshot{},
		Output: OutputSnapshot{
			Path:       d.output.path,
			Filename:   d.output.filename,
			PublicPath: d.output.publicPath,
		},
		Resolve: ResolveSnapshot{
			Modules:    d.resolve.modules.Values(),
			Extensions: d.resolve.extensions.Values(),
		},
		Rules:   []RuleSnapshot{},
		Plugins: []PluginSnapshot{},
		DevServer: DevServerSnapshot{
			Host: d.devServer.host,
			Port: d.devServer.port,
			Hot:  d.devServer.hot,
		},
	}

	for name, e := range d.entries.All() {
		s.Entries = append(s.Entries, EntrySnapshot{Name: name, Paths: e.Values()})
	}
	for name, target := range d.resolve.alias.table.All() {
		s.Resolve.Alias = append(s.Resolve.Alias, AliasSnapshot{Name: name, Target: target})
	}
	for name, r := range d.module.rules.All() {
		rs := RuleSnapshot{
			Name:    name,
			Test:    r.matcher.String(),
			Include: append([]string(nil), r.include...),
			Steps:   []StepSnapshot{},
		}
		for stepName, st := range r.steps.All() {
			rs.Steps = append(rs.Steps, StepSnapshot{
				Name:    stepName,
				Loader:  st.loader,
				Options: cloneValue(st.options),
			})
		}
		s.Rules = append(s.Rules, rs)
	}
	for name, pl := range d.plugins.table.All() {
		s.Plugins = append(s.Plugins, PluginSnapshot{
			Name: name,
			Use:  pl.use,
			Args: cloneSlice(pl.args),
		})
	}
	for path, rule := range d.devServer.proxy.All() {
		s.DevServer.Proxy = append(s.DevServer.Proxy, ProxySnapshot{
			Path:         path,
			Target:       rule.Target,
			ChangeOrigin: rule.ChangeOrigin,
		})
	}
	return s
}

// Entry returns the named entry.
func (s *Snapshot) Entry(name string) (EntrySnapshot, bool) {
	for _, e := range s.Entries {
		if e.Name == name {
			return e, true
		}
	}
	return EntrySnapshot{}, false
}

// Rule returns the named rule.
func (s *Snapshot) Rule(name string) (RuleSnapshot, bool) {
	for _, r := range s.Rules {
		if r.Name == name {
			return r, true
		}
	}
	return RuleSnapshot{}, false
}

// Plugin returns the named plugin.
func (s *Snapshot) Plugin(name string) (PluginSnapshot, bool) {
	for _, p := range s.Plugins {
		if p.Name == name {
			return p, true
		}
	}
	return PluginSnapshot{}, false
}

// PluginNames returns the plugin names in order.
func (s *Snapshot) PluginNames() []string {
	names := make([]string, 0, len(s.Plugins))
	for _, p := range s.Plugins {
		names = append(names, p.Name)
	}
	return names
}

// RuleNames returns the rule names in order.
func (s *Snapshot) RuleNames() []string {
	names := make([]string, 0, len(s.Rules))
	for _, r := range s.Rules {
		names = append(names, r.Name)
	}
	return names
}

// StepNames returns the step names of a rule in order.
func (r RuleSnapshot) StepNames() []string {
	names := make([]string, 0, len(r.Steps))
	for _, st := range r.Steps {
		names = append(names, st.Name)
	}
	return names
}

// Step returns the named step.
func (r RuleSnapshot) Step(name string) (StepSnapshot, bool) {
	for _, st := range r.Steps {
		if st.Name == name {
			return st, true
		}
	}
	return StepSnapshot{}, false
}

// Matches reports whether the rule test selects identity.
// An empty or invalid test selects nothing.
func (r RuleSnapshot) Matches(identity string) bool {
	if r.Test == "" {
		return false
	}
	m, err := CompileMatcher(r.Test)
	if err != nil {
		return false
	}
	return m.Match(identity)
}

// Fingerprint returns a stable hash of the snapshot contents.
// Identical passes produce identical fingerprints.
func (s *Snapshot) Fingerprint() (string, error) {
	data, err := yaml.Marshal(s)
	if err != nil {
		return "", zerr.Wrap(err, "failed to encode snapshot")
	}
	return fmt.Sprintf("%016x", xxhash.Sum64(data)), nil
}
