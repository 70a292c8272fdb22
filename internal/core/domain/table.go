package domain

import (
	"iter"
	"slices"
)

// Table is an insertion-ordered collection of uniquely named nodes.
// Entries, rules, steps, plugins and proxy rules are all stored in tables;
// iteration order is significant wherever downstream execution depends on it.
type Table[T any] struct {
	kind  string
	order []string
	nodes map[string]T
}

// NewTable creates an empty table. The kind names the table in error metadata.
func NewTable[T any](kind string) *Table[T] {
	return &Table[T]{
		kind:  kind,
		nodes: make(map[string]T),
	}
}

// Add appends a node. It returns ErrDuplicateNode if the name is already taken.
func (t *Table[T]) Add(name string, value T) error {
	if _, exists := t.nodes[name]; exists {
		return annotate(ErrDuplicateNode, "cannot add "+t.kind, "table", t.kind, "node", name)
	}
	t.order = append(t.order, name)
	t.nodes[name] = value
	return nil
}

// Set inserts the node if absent, otherwise overwrites its value in place.
func (t *Table[T]) Set(name string, value T) {
	if _, exists := t.nodes[name]; !exists {
		t.order = append(t.order, name)
	}
	t.nodes[name] = value
}

// Delete removes the node if present and reports whether it existed.
// Deleting an absent name is a no-op.
func (t *Table[T]) Delete(name string) bool {
	if _, exists := t.nodes[name]; !exists {
		return false
	}
	delete(t.nodes, name)
	t.order = slices.DeleteFunc(t.order, func(n string) bool { return n == name })
	return true
}

// Get returns the named node or ErrNodeNotFound.
func (t *Table[T]) Get(name string) (T, error) {
	v, ok := t.nodes[name]
	if !ok {
		var zero T
		return zero, annotate(ErrNodeNotFound, "cannot get "+t.kind, "table", t.kind, "node", name)
	}
	return v, nil
}

// Lookup returns the named node and whether it exists.
func (t *Table[T]) Lookup(name string) (T, bool) {
	v, ok := t.nodes[name]
	return v, ok
}

// Has reports whether a node with the given name exists.
func (t *Table[T]) Has(name string) bool {
	_, ok := t.nodes[name]
	return ok
}

// Replace swaps the node named old for a node named name at the same position.
func (t *Table[T]) Replace(old, name string, value T) error {
	idx := slices.Index(t.order, old)
	if idx < 0 {
		return annotate(ErrNodeNotFound, "cannot replace "+t.kind, "table", t.kind, "node", old)
	}
	if name != old && t.Has(name) {
		return annotate(ErrDuplicateNode, "cannot replace "+t.kind, "table", t.kind, "node", name)
	}
	delete(t.nodes, old)
	t.order[idx] = name
	t.nodes[name] = value
	return nil
}

// Before moves the node name so that it sits directly before anchor.
func (t *Table[T]) Before(name, anchor string) error {
	return t.move(name, anchor, 0)
}

// After moves the node name so that it sits directly after anchor.
func (t *Table[T]) After(name, anchor string) error {
	return t.move(name, anchor, 1)
}

func (t *Table[T]) move(name, anchor string, offset int) error {
	for _, n := range []string{name, anchor} {
		if !t.Has(n) {
			return annotate(ErrNodeNotFound, "cannot order "+t.kind, "table", t.kind, "node", n)
		}
	}
	if name == anchor {
		return nil
	}
	t.order = slices.DeleteFunc(t.order, func(n string) bool { return n == name })
	idx := slices.Index(t.order, anchor) + offset
	t.order = slices.Insert(t.order, idx, name)
	return nil
}

// Len returns the number of nodes.
func (t *Table[T]) Len() int {
	return len(t.order)
}

// Names returns the node names in insertion order.
func (t *Table[T]) Names() []string {
	return slices.Clone(t.order)
}

// All yields name/value pairs in insertion order.
func (t *Table[T]) All() iter.Seq2[string, T] {
	return func(yield func(string, T) bool) {
		for _, name := range t.order {
			if !yield(name, t.nodes[name]) {
				return
			}
		}
	}
}
