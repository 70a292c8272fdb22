// Package pipeline composes middlewares into a finalized descriptor.
package pipeline

import "go.trai.ch/fusionary/internal/core/domain"

// Middleware is a named unit of configuration applied to a shared descriptor.
type Middleware struct {
	Name  string
	Apply func(d *domain.Descriptor)
}

// Hook observes a middleware application. It is called before Apply runs and
// returns a function that receives the outcome once Apply has returned.
type Hook func(stage domain.Phase, middleware string) func(err error)

// Option configures a Builder.
type Option func(b *Builder)

// WithHook registers a hook invoked around every middleware application.
func WithHook(h Hook) Option {
	return func(b *Builder) {
		if h != nil {
			b.hooks = append(b.hooks, h)
		}
	}
}

// Builder runs middlewares, overrides and conditional installations, in that
// order, against a fresh descriptor per pass. A Builder may be reused across passes.
type Builder struct {
	middlewares []Middleware
	overrides   []Middleware
	branches    []Middleware
	hooks       []Hook
}

// New creates an empty Builder.
func New(opts ...Option) *Builder {
	b := &Builder{}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Use appends shared middlewares.
func (b *Builder) Use(mw ...Middleware) *Builder {
	b.middlewares = append(b.middlewares, mw...)
	return b
}

// Override appends local overrides. They run after every middleware.
func (b *Builder) Override(mw ...Middleware) *Builder {
	b.overrides = append(b.overrides, mw...)
	return b
}

// Branch appends conditional installations. They run after every override.
func (b *Builder) Branch(mw ...Middleware) *Builder {
	b.branches = append(b.branches, mw...)
	return b
}

// Stage is one phase of a pass and the middleware names it runs.
type Stage struct {
	Phase       domain.Phase
	Middlewares []string
}

// Plan returns the stages a pass will run, in order.
func (b *Builder) Plan() []Stage {
	plan := make([]Stage, 0, 3)
	for _, st := range b.stages() {
		names := make([]string, 0, len(st.mws))
		for _, mw := range st.mws {
			names = append(names, mw.Name)
		}
		plan = append(plan, Stage{Phase: st.phase, Middlewares: names})
	}
	return plan
}

type stage struct {
	phase domain.Phase
	mws   []Middleware
}

func (b *Builder) stages() []stage {
	return []stage{
		{phase: domain.PhaseMiddlewares, mws: b.middlewares},
		{phase: domain.PhaseOverrides, mws: b.overrides},
		{phase: domain.PhaseBranches, mws: b.branches},
	}
}

// Build runs one configuration pass and returns the finalized snapshot.
// The pass stops at the first middleware that leaves an error on the descriptor.
func (b *Builder) Build(opts domain.Options, env domain.Environment) (*domain.Snapshot, error) {
	d := domain.NewDescriptor(opts, env)

	for _, st := range b.stages() {
		if err := d.Advance(st.phase); err != nil {
			return nil, err
		}
		for _, mw := range st.mws {
			if err := b.apply(d, st.phase, mw); err != nil {
				return nil, err
			}
		}
	}

	return d.Finalize()
}

func (b *Builder) apply(d *domain.Descriptor, phase domain.Phase, mw Middleware) error {
	done := make([]func(error), 0, len(b.hooks))
	for _, h := range b.hooks {
		if fn := h(phase, mw.Name); fn != nil {
			done = append(done, fn)
		}
	}

	if mw.Apply != nil {
		mw.Apply(d)
	}

	err := domain.Because(domain.ErrMiddlewareFailed, d.Err(),
		"middleware", mw.Name, "stage", phase.String())

	for i := len(done) - 1; i >= 0; i-- {
		done[i](err)
	}
	return err
}
