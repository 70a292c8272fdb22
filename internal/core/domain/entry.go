package domain

import "slices"

// Entry is a named, ordered set of entry point paths.
type Entry struct {
	d     *Descriptor
	name  string
	paths []string
}

// Name returns the entry name.
func (e *Entry) Name() string {
	return e.name
}

// Add appends path unless it is already present.
func (e *Entry) Add(path string) *Entry {
	if e.d.s.mutable("entry add") && !slices.Contains(e.paths, path) {
		e.paths = append(e.paths, path)
	}
	return e
}

// Delete removes path if present.
func (e *Entry) Delete(path string) *Entry {
	if e.d.s.mutable("entry delete") {
		e.paths = slices.DeleteFunc(e.paths, func(p string) bool { return p == path })
	}
	return e
}

// Clear removes every path.
func (e *Entry) Clear() *Entry {
	if e.d.s.mutable("entry clear") {
		e.paths = nil
	}
	return e
}

// Has reports whether path is part of the entry.
func (e *Entry) Has(path string) bool {
	return slices.Contains(e.paths, path)
}

// Values returns the paths in insertion order.
func (e *Entry) Values() []string {
	return slices.Clone(e.paths)
}

// When applies then if cond holds, otherwise applies otherwise.
func (e *Entry) When(cond bool, then, otherwise func(*Entry)) *Entry {
	return When(e, cond, then, otherwise)
}

// End returns the owning descriptor.
func (e *Entry) End() *Descriptor {
	return e.d
}
