package domain

import (
	"regexp"
	"slices"
)

// Module is the rule tree of a descriptor.
type Module struct {
	d     *Descriptor
	rules *Table[*Rule]
}

// Rule returns the named rule, creating an empty one if needed.
func (m *Module) Rule(name string) *Rule {
	if r, ok := m.rules.Lookup(name); ok {
		return r
	}
	r := &Rule{m: m, name: name, steps: NewTable[*Step]("step")}
	if m.d.s.mutable("rule") {
		m.rules.Set(name, r)
	}
	return r
}

// AddRule creates the named rule. An existing name is recorded as
// ErrDuplicateNode and the returned rule is detached from the tree.
func (m *Module) AddRule(name string) *Rule {
	r := &Rule{m: m, name: name, steps: NewTable[*Step]("step")}
	if m.d.s.mutable("add rule") {
		m.d.s.record(m.rules.Add(name, r))
	}
	return r
}

// HasRule reports whether the named rule exists.
func (m *Module) HasRule(name string) bool {
	return m.rules.Has(name)
}

// DeleteRule removes the named rule if present.
func (m *Module) DeleteRule(name string) *Module {
	if m.d.s.mutable("delete rule") {
		m.rules.Delete(name)
	}
	return m
}

// Before moves rule name directly ahead of anchor.
func (m *Module) Before(name, anchor string) *Module {
	if m.d.s.mutable("rule before") {
		m.d.s.record(m.rules.Before(name, anchor))
	}
	return m
}

// After moves rule name directly behind anchor.
func (m *Module) After(name, anchor string) *Module {
	if m.d.s.mutable("rule after") {
		m.d.s.record(m.rules.After(name, anchor))
	}
	return m
}

// Rules returns the rule names in insertion order.
func (m *Module) Rules() []string {
	return m.rules.Names()
}

// When applies then if cond holds, otherwise applies otherwise.
func (m *Module) When(cond bool, then, otherwise func(*Module)) *Module {
	return When(m, cond, then, otherwise)
}

// End returns the owning descriptor.
func (m *Module) End() *Descriptor {
	return m.d
}

// Matcher selects the assets a rule applies to.
type Matcher struct {
	pattern string
	re      *regexp.Regexp
}

// CompileMatcher compiles a regular expression matcher.
func CompileMatcher(pattern string) (Matcher, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return Matcher{}, annotate(ErrInvalidMatcher, "cannot compile matcher",
			"pattern", pattern, "reason", err.Error())
	}
	return Matcher{pattern: pattern, re: re}, nil
}

// String returns the source pattern.
func (m Matcher) String() string {
	return m.pattern
}

// Match reports whether identity is selected. The zero Matcher selects nothing.
func (m Matcher) Match(identity string) bool {
	return m.re != nil && m.re.MatchString(identity)
}

// Rule selects assets and runs them through an ordered list of steps.
type Rule struct {
	m       *Module
	name    string
	matcher Matcher
	include []string
	steps   *Table[*Step]
}

// Name returns the rule name.
func (r *Rule) Name() string {
	return r.name
}

// Test sets the matcher. An invalid pattern is recorded as ErrInvalidMatcher.
func (r *Rule) Test(pattern string) *Rule {
	if !r.m.d.s.mutable("rule test") {
		return r
	}
	matcher, err := CompileMatcher(pattern)
	if err != nil {
		r.m.d.s.record(annotate(err, "rule test", "rule", r.name))
		return r
	}
	r.matcher = matcher
	return r
}

// Include restricts the rule to the given paths.
func (r *Rule) Include(paths ...string) *Rule {
	if !r.m.d.s.mutable("rule include") {
		return r
	}
	for _, p := range paths {
		if !slices.Contains(r.include, p) {
			r.include = append(r.include, p)
		}
	}
	return r
}

// Matcher returns the rule matcher.
func (r *Rule) Matcher() Matcher {
	return r.matcher
}

// Matches reports whether the rule selects identity.
func (r *Rule) Matches(identity string) bool {
	return r.matcher.Match(identity)
}

// Use returns the named step, creating it if needed.
func (r *Rule) Use(name string) *Step {
	if s, ok := r.steps.Lookup(name); ok {
		return s
	}
	s := &Step{r: r, name: name}
	if r.m.d.s.mutable("rule use") {
		r.steps.Set(name, s)
	}
	return s
}

// AddUse is shorthand for Uses().Add(name).
func (r *Rule) AddUse(name string) *Step {
	return r.Uses().Add(name)
}

// Uses returns the step table of the rule.
func (r *Rule) Uses() *StepSet {
	return &StepSet{r: r}
}

// When applies then if cond holds, otherwise applies otherwise.
func (r *Rule) When(cond bool, then, otherwise func(*Rule)) *Rule {
	return When(r, cond, then, otherwise)
}

// End returns the rule tree.
func (r *Rule) End() *Module {
	return r.m
}

// Step is one transformation in a rule: an opaque loader reference and its options.
type Step struct {
	r       *Rule
	name    string
	loader  string
	options any
}

// Name returns the step name.
func (s *Step) Name() string {
	return s.name
}

// Loader sets the loader reference.
func (s *Step) Loader(ref string) *Step {
	if s.r.m.d.s.mutable("step loader") {
		s.loader = ref
	}
	return s
}

// Options replaces the step options.
func (s *Step) Options(v any) *Step {
	if s.r.m.d.s.mutable("step options") {
		s.options = v
	}
	return s
}

// Tap replaces the step options with fn applied to the current options.
func (s *Step) Tap(fn func(any) any) *Step {
	if s.r.m.d.s.mutable("step tap") {
		s.options = fn(s.options)
	}
	return s
}

// When applies then if cond holds, otherwise applies otherwise.
func (s *Step) When(cond bool, then, otherwise func(*Step)) *Step {
	return When(s, cond, then, otherwise)
}

// End returns the owning rule.
func (s *Step) End() *Rule {
	return s.r
}

// StepSet is the fluent view over the steps of a rule.
type StepSet struct {
	r *Rule
}

// Has reports whether the named step exists.
func (u *StepSet) Has(name string) bool {
	return u.r.steps.Has(name)
}

// Get returns the named step or ErrNodeNotFound.
func (u *StepSet) Get(name string) (*Step, error) {
	return u.r.steps.Get(name)
}

// Names returns the step names in order.
func (u *StepSet) Names() []string {
	return u.r.steps.Names()
}

// Add creates the named step at the end of the rule. An existing name is
// recorded as ErrDuplicateNode and the returned step is detached.
func (u *StepSet) Add(name string) *Step {
	s := &Step{r: u.r, name: name}
	if u.r.m.d.s.mutable("step add") {
		u.r.m.d.s.record(u.r.steps.Add(name, s))
	}
	return s
}

// Delete removes the named step if present.
func (u *StepSet) Delete(name string) *StepSet {
	if u.r.m.d.s.mutable("step delete") {
		u.r.steps.Delete(name)
	}
	return u
}

// Replace swaps the step old for a new empty step called name at the same position.
// A missing old step is recorded as ErrNodeNotFound.
func (u *StepSet) Replace(old, name string) *Step {
	s := &Step{r: u.r, name: name}
	if !u.r.m.d.s.mutable("step replace") {
		return s
	}
	if err := u.r.steps.Replace(old, name, s); err != nil {
		u.r.m.d.s.record(annotate(err, "step replace", "rule", u.r.name))
	}
	return s
}

// Before moves step name directly ahead of anchor.
func (u *StepSet) Before(name, anchor string) *StepSet {
	if u.r.m.d.s.mutable("step before") {
		u.r.m.d.s.record(u.r.steps.Before(name, anchor))
	}
	return u
}

// After moves step name directly behind anchor.
func (u *StepSet) After(name, anchor string) *StepSet {
	if u.r.m.d.s.mutable("step after") {
		u.r.m.d.s.record(u.r.steps.After(name, anchor))
	}
	return u
}

// When applies then if cond holds, otherwise applies otherwise.
func (u *StepSet) When(cond bool, then, otherwise func(*StepSet)) *StepSet {
	return When(u, cond, then, otherwise)
}

// End returns the owning rule.
func (u *StepSet) End() *Rule {
	return u.r
}
