package domain

// Plugins is the ordered plugin table of a descriptor.
type Plugins struct {
	d     *Descriptor
	table *Table[*Plugin]
}

// Plugin returns the named plugin, creating an empty one if needed.
func (p *Plugins) Plugin(name string) *Plugin {
	if pl, ok := p.table.Lookup(name); ok {
		return pl
	}
	pl := &Plugin{p: p, name: name}
	if p.d.s.mutable("plugin") {
		p.table.Set(name, pl)
	}
	return pl
}

// Add creates the named plugin. An existing name is recorded as
// ErrDuplicateNode and the returned plugin is detached from the table.
func (p *Plugins) Add(name string) *Plugin {
	pl := &Plugin{p: p, name: name}
	if p.d.s.mutable("plugin add") {
		p.d.s.record(p.table.Add(name, pl))
	}
	return pl
}

// Has reports whether the named plugin exists.
func (p *Plugins) Has(name string) bool {
	return p.table.Has(name)
}

// Names returns the plugin names in order.
func (p *Plugins) Names() []string {
	return p.table.Names()
}

// Delete removes the named plugin if present.
func (p *Plugins) Delete(name string) *Plugins {
	if p.d.s.mutable("plugin delete") {
		p.table.Delete(name)
	}
	return p
}

// Tap rewrites the arguments of an existing plugin.
// A missing plugin is recorded as ErrNodeNotFound.
func (p *Plugins) Tap(name string, fn func([]any) []any) *Plugins {
	if !p.d.s.mutable("plugin tap") {
		return p
	}
	pl, err := p.table.Get(name)
	if err != nil {
		p.d.s.record(err)
		return p
	}
	pl.args = fn(pl.args)
	return p
}

// Before moves plugin name directly ahead of anchor.
func (p *Plugins) Before(name, anchor string) *Plugins {
	if p.d.s.mutable("plugin before") {
		p.d.s.record(p.table.Before(name, anchor))
	}
	return p
}

// After moves plugin name directly behind anchor.
func (p *Plugins) After(name, anchor string) *Plugins {
	if p.d.s.mutable("plugin after") {
		p.d.s.record(p.table.After(name, anchor))
	}
	return p
}

// When applies then if cond holds, otherwise applies otherwise.
func (p *Plugins) When(cond bool, then, otherwise func(*Plugins)) *Plugins {
	return When(p, cond, then, otherwise)
}

// End returns the owning descriptor.
func (p *Plugins) End() *Descriptor {
	return p.d
}

// Plugin is an opaque implementation reference with constructor arguments.
type Plugin struct {
	p    *Plugins
	name string
	use  string
	args []any
}

// Name returns the plugin name.
func (pl *Plugin) Name() string {
	return pl.name
}

// Use sets the implementation reference and its arguments.
func (pl *Plugin) Use(ref string, args ...any) *Plugin {
	if pl.p.d.s.mutable("plugin use") {
		pl.use = ref
		pl.args = args
	}
	return pl
}

// Tap replaces the arguments with fn applied to the current arguments.
func (pl *Plugin) Tap(fn func([]any) []any) *Plugin {
	if pl.p.d.s.mutable("plugin tap") {
		pl.args = fn(pl.args)
	}
	return pl
}

// When applies then if cond holds, otherwise applies otherwise.
func (pl *Plugin) When(cond bool, then, otherwise func(*Plugin)) *Plugin {
	return When(pl, cond, then, otherwise)
}

// End returns the plugin table.
func (pl *Plugin) End() *Plugins {
	return pl.p
}
