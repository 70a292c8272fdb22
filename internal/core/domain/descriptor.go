package domain

// Descriptor is the mutable configuration object a pass builds up.
// It is created per pass and is not safe for concurrent use.
//
// Fluent methods never return errors. The first failure is recorded on the
// descriptor and reported by Err and Finalize.
type Descriptor struct {
	s         *session
	opts      Options
	env       Environment
	entries   *Table[*Entry]
	output    *Output
	resolve   *Resolve
	module    *Module
	plugins   *Plugins
	devServer *DevServer
}

// NewDescriptor creates an empty descriptor. Options are resolved immediately
// so that every middleware observes the same paths.
func NewDescriptor(opts Options, env Environment) *Descriptor {
	d := &Descriptor{
		s:       &session{},
		opts:    opts.Resolved(),
		env:     env,
		entries: NewTable[*Entry]("entry"),
	}
	d.output = &Output{d: d}
	d.resolve = newResolve(d)
	d.module = &Module{d: d, rules: NewTable[*Rule]("rule")}
	d.plugins = &Plugins{d: d, table: NewTable[*Plugin]("plugin")}
	d.devServer = &DevServer{d: d, proxy: NewTable[ProxyRule]("proxy")}
	return d
}

// Options returns the resolved options.
func (d *Descriptor) Options() Options {
	return d.opts
}

// Env returns the environment of the pass.
func (d *Descriptor) Env() Environment {
	return d.env
}

// Phase returns the current lifecycle phase.
func (d *Descriptor) Phase() Phase {
	return d.s.phase
}

// Advance moves the descriptor to a later phase. Moving backwards or
// staying put returns ErrInvalidPhaseTransition.
func (d *Descriptor) Advance(next Phase) error {
	return d.s.advance(next)
}

// Err returns the first error recorded during the pass.
func (d *Descriptor) Err() error {
	return d.s.err
}

// Fail records err on the descriptor unless an earlier error is already recorded.
func (d *Descriptor) Fail(err error) *Descriptor {
	d.s.record(err)
	return d
}

// Entry returns the named entry, creating it if needed.
func (d *Descriptor) Entry(name string) *Entry {
	if e, ok := d.entries.Lookup(name); ok {
		return e
	}
	e := &Entry{d: d, name: name}
	if d.s.mutable("entry") {
		d.entries.Set(name, e)
	}
	return e
}

// AddEntry creates the named entry. An existing name is recorded as
// ErrDuplicateNode and the returned entry is detached from the descriptor.
func (d *Descriptor) AddEntry(name string) *Entry {
	e := &Entry{d: d, name: name}
	if d.s.mutable("add entry") {
		d.s.record(d.entries.Add(name, e))
	}
	return e
}

// DeleteEntry removes the named entry if present.
func (d *Descriptor) DeleteEntry(name string) *Descriptor {
	if d.s.mutable("delete entry") {
		d.entries.Delete(name)
	}
	return d
}

// HasEntry reports whether the named entry exists.
func (d *Descriptor) HasEntry(name string) bool {
	return d.entries.Has(name)
}

// Output returns the output settings.
func (d *Descriptor) Output() *Output {
	return d.output
}

// Resolve returns the resolution table.
func (d *Descriptor) Resolve() *Resolve {
	return d.resolve
}

// Module returns the rule tree.
func (d *Descriptor) Module() *Module {
	return d.module
}

// Plugins returns the plugin table.
func (d *Descriptor) Plugins() *Plugins {
	return d.plugins
}

// Plugin is shorthand for Plugins().Plugin(name).
func (d *Descriptor) Plugin(name string) *Plugin {
	return d.plugins.Plugin(name)
}

// DevServer returns the development server settings.
func (d *Descriptor) DevServer() *DevServer {
	return d.devServer
}

// When applies then if cond holds, otherwise applies otherwise.
func (d *Descriptor) When(cond bool, then, otherwise func(*Descriptor)) *Descriptor {
	return When(d, cond, then, otherwise)
}

// WhenFunc evaluates pred once and branches on the outcome.
// A predicate error is recorded and neither branch runs.
func (d *Descriptor) WhenFunc(pred Predicate, then, otherwise func(*Descriptor)) *Descriptor {
	ok, err := pred()
	if err != nil {
		d.s.record(Because(ErrPredicateFailed, err))
		return d
	}
	return When(d, ok, then, otherwise)
}

// Finalize locks the descriptor and returns a deep copy of its contents.
// A descriptor carrying a recorded error is locked but yields no snapshot.
// A descriptor that never left PhaseEmpty cannot be finalized.
func (d *Descriptor) Finalize() (*Snapshot, error) {
	if d.s.phase == PhaseEmpty {
		return nil, annotate(ErrInvalidPhaseTransition, "cannot finalize descriptor",
			"from", PhaseEmpty.String(), "to", PhaseFinalized.String())
	}
	if d.s.phase != PhaseFinalized {
		d.s.phase = PhaseFinalized
	} else if d.s.err == nil {
		return nil, annotate(ErrDescriptorFinalized, "cannot finalize descriptor", "operation", "finalize")
	}
	if d.s.err != nil {
		return nil, d.s.err
	}
	return d.snapshot(), nil
}
