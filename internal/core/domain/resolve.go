package domain

import "slices"

// Resolve is the resolution table: aliases, module search paths and extensions.
type Resolve struct {
	d          *Descriptor
	alias      *Aliases
	modules    *SearchPaths
	extensions *Extensions
}

func newResolve(d *Descriptor) *Resolve {
	r := &Resolve{d: d}
	r.alias = &Aliases{r: r, table: NewTable[string]("alias")}
	r.modules = &SearchPaths{r: r}
	r.extensions = &Extensions{r: r}
	return r
}

// Alias returns the alias table.
func (r *Resolve) Alias() *Aliases {
	return r.alias
}

// Modules returns the module search paths.
func (r *Resolve) Modules() *SearchPaths {
	return r.modules
}

// Extensions returns the resolvable file extensions.
func (r *Resolve) Extensions() *Extensions {
	return r.extensions
}

// When applies then if cond holds, otherwise applies otherwise.
func (r *Resolve) When(cond bool, then, otherwise func(*Resolve)) *Resolve {
	return When(r, cond, then, otherwise)
}

// End returns the owning descriptor.
func (r *Resolve) End() *Descriptor {
	return r.d
}

// Aliases maps module names to replacement targets. The last write wins.
type Aliases struct {
	r     *Resolve
	table *Table[string]
}

// Set maps name to target, overwriting any earlier target.
func (a *Aliases) Set(name, target string) *Aliases {
	if a.r.d.s.mutable("alias set") {
		a.table.Set(name, target)
	}
	return a
}

// Delete removes the alias if present.
func (a *Aliases) Delete(name string) *Aliases {
	if a.r.d.s.mutable("alias delete") {
		a.table.Delete(name)
	}
	return a
}

// Get returns the target of name and whether it is aliased.
func (a *Aliases) Get(name string) (string, bool) {
	return a.table.Lookup(name)
}

// End returns the resolution table.
func (a *Aliases) End() *Resolve {
	return a.r
}

// SearchPaths is the ordered list of directories searched for modules.
// Duplicates are kept.
type SearchPaths struct {
	r     *Resolve
	paths []string
}

// Add appends path.
func (s *SearchPaths) Add(path string) *SearchPaths {
	if s.r.d.s.mutable("modules add") {
		s.paths = append(s.paths, path)
	}
	return s
}

// Prepend inserts path ahead of every existing path.
func (s *SearchPaths) Prepend(path string) *SearchPaths {
	if s.r.d.s.mutable("modules prepend") {
		s.paths = slices.Insert(s.paths, 0, path)
	}
	return s
}

// Delete removes every occurrence of path.
func (s *SearchPaths) Delete(path string) *SearchPaths {
	if s.r.d.s.mutable("modules delete") {
		s.paths = slices.DeleteFunc(s.paths, func(p string) bool { return p == path })
	}
	return s
}

// Values returns the search paths in order.
func (s *SearchPaths) Values() []string {
	return slices.Clone(s.paths)
}

// End returns the resolution table.
func (s *SearchPaths) End() *Resolve {
	return s.r
}

// Extensions is the ordered set of resolvable file extensions.
type Extensions struct {
	r    *Resolve
	exts []string
}

// Add appends each extension not already present.
func (e *Extensions) Add(exts ...string) *Extensions {
	if !e.r.d.s.mutable("extensions add") {
		return e
	}
	for _, ext := range exts {
		if !slices.Contains(e.exts, ext) {
			e.exts = append(e.exts, ext)
		}
	}
	return e
}

// Delete removes ext if present.
func (e *Extensions) Delete(ext string) *Extensions {
	if e.r.d.s.mutable("extensions delete") {
		e.exts = slices.DeleteFunc(e.exts, func(x string) bool { return x == ext })
	}
	return e
}

// Values returns the extensions in order.
func (e *Extensions) Values() []string {
	return slices.Clone(e.exts)
}

// End returns the resolution table.
func (e *Extensions) End() *Resolve {
	return e.r
}
