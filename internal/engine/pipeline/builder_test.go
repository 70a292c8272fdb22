package pipeline_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/fusionary/internal/core/domain"
	"go.trai.ch/fusionary/internal/engine/pipeline"
	"go.trai.ch/zerr"
)

func plugin(name string) pipeline.Middleware {
	return pipeline.Middleware{
		Name:  name,
		Apply: func(d *domain.Descriptor) { d.Plugin(name).Use(name + "-plugin") },
	}
}

func TestBuilder_StageOrder(t *testing.T) {
	b := pipeline.New().
		Branch(plugin("branch")).
		Override(plugin("override")).
		Use(plugin("first"), plugin("second"))

	snap, err := b.Build(domain.Options{}, domain.Environment{Mode: domain.ModeProduction})
	require.NoError(t, err)

	assert.Equal(t, []string{"first", "second", "override", "branch"}, snap.PluginNames())
}

func TestBuilder_MiddlewaresShareDescriptor(t *testing.T) {
	b := pipeline.New().
		Use(pipeline.Middleware{Name: "web", Apply: func(d *domain.Descriptor) {
			d.Plugin("html").Use("html-template")
			d.Plugin("copy").Use("copy-plugin")
		}}).
		Override(pipeline.Middleware{Name: "local", Apply: func(d *domain.Descriptor) {
			d.Plugins().Delete("copy")
		}})

	snap, err := b.Build(domain.Options{}, domain.Environment{})
	require.NoError(t, err)
	assert.Equal(t, []string{"html"}, snap.PluginNames())
}

func TestBuilder_PhaseVisibleToMiddlewares(t *testing.T) {
	var seen []domain.Phase
	record := pipeline.Middleware{Name: "phase", Apply: func(d *domain.Descriptor) { seen = append(seen, d.Phase()) }}

	_, err := pipeline.New().Use(record).Override(record).Branch(record).
		Build(domain.Options{}, domain.Environment{})
	require.NoError(t, err)

	assert.Equal(t, []domain.Phase{domain.PhaseMiddlewares, domain.PhaseOverrides, domain.PhaseBranches}, seen)
}

func TestBuilder_AbortsOnMiddlewareError(t *testing.T) {
	ran := false
	b := pipeline.New().
		Use(pipeline.Middleware{Name: "web", Apply: func(d *domain.Descriptor) {
			d.Plugins().Tap("minify", func(a []any) []any { return a })
		}}).
		Override(pipeline.Middleware{Name: "later", Apply: func(*domain.Descriptor) { ran = true }})

	snap, err := b.Build(domain.Options{}, domain.Environment{})
	require.Error(t, err)
	assert.Nil(t, snap)
	assert.False(t, ran)

	assert.ErrorIs(t, err, domain.ErrMiddlewareFailed)
	assert.ErrorIs(t, err, domain.ErrNodeNotFound)
	assert.ErrorContains(t, err, "middleware failed")

	var zErr *zerr.Error
	require.True(t, errors.As(err, &zErr))
	assert.Equal(t, "web", zErr.Metadata()["middleware"])
	assert.Equal(t, "middlewares", zErr.Metadata()["stage"])
}

func TestBuilder_MiddlewareErrorKeepsCause(t *testing.T) {
	b := pipeline.New().Branch(pipeline.Middleware{Name: "svg", Apply: func(d *domain.Descriptor) {
		d.Module().Rule("svg").Test(`[`)
	}})

	_, err := b.Build(domain.Options{}, domain.Environment{})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrMiddlewareFailed)
	assert.ErrorIs(t, err, domain.ErrInvalidMatcher)
	assert.False(t, errors.Is(err, domain.ErrPredicateFailed))

	var zErr *zerr.Error
	require.True(t, errors.As(err, &zErr))
	assert.Equal(t, "branches", zErr.Metadata()["stage"])
}

func TestBuilder_AbortsOnDuplicateNode(t *testing.T) {
	ran := false
	b := pipeline.New().
		Use(pipeline.Middleware{Name: "manifest", Apply: func(d *domain.Descriptor) {
			d.Plugins().Add("manifest").Use("manifest-plugin")
		}}).
		Override(pipeline.Middleware{Name: "local", Apply: func(d *domain.Descriptor) {
			d.Plugins().Add("manifest").Use("other-plugin")
		}}).
		Branch(pipeline.Middleware{Name: "later", Apply: func(*domain.Descriptor) { ran = true }})

	snap, err := b.Build(domain.Options{}, domain.Environment{})
	require.Error(t, err)
	assert.Nil(t, snap)
	assert.False(t, ran)
	assert.ErrorIs(t, err, domain.ErrMiddlewareFailed)
	assert.ErrorIs(t, err, domain.ErrDuplicateNode)

	var zErr *zerr.Error
	require.True(t, errors.As(err, &zErr))
	assert.Equal(t, "local", zErr.Metadata()["middleware"])
	assert.Equal(t, "overrides", zErr.Metadata()["stage"])
}

func TestBuilder_Hooks(t *testing.T) {
	type call struct {
		stage domain.Phase
		name  string
		err   bool
	}
	var calls []call

	hook := func(stage domain.Phase, name string) func(error) {
		return func(err error) {
			calls = append(calls, call{stage: stage, name: name, err: err != nil})
		}
	}

	b := pipeline.New(pipeline.WithHook(hook), pipeline.WithHook(nil)).
		Use(plugin("web")).
		Branch(pipeline.Middleware{Name: "broken", Apply: func(d *domain.Descriptor) {
			d.Fail(errors.New("boom"))
		}})

	_, err := b.Build(domain.Options{}, domain.Environment{})
	require.Error(t, err)

	assert.Equal(t, []call{
		{stage: domain.PhaseMiddlewares, name: "web"},
		{stage: domain.PhaseBranches, name: "broken", err: true},
	}, calls)
}

func TestBuilder_Reusable(t *testing.T) {
	b := pipeline.New().Use(pipeline.Middleware{Name: "mode", Apply: func(d *domain.Descriptor) {
		d.When(d.Env().IsProduction(), func(d *domain.Descriptor) {
			d.Plugin("optimizeCss")
		}, func(d *domain.Descriptor) {
			d.Plugin("hot")
		})
	}})

	prod, err := b.Build(domain.Options{}, domain.Environment{Mode: domain.ModeProduction})
	require.NoError(t, err)
	dev, err := b.Build(domain.Options{}, domain.Environment{Mode: domain.ModeDevelopment})
	require.NoError(t, err)

	assert.Equal(t, []string{"optimizeCss"}, prod.PluginNames())
	assert.Equal(t, []string{"hot"}, dev.PluginNames())
}

func TestBuilder_Plan(t *testing.T) {
	b := pipeline.New().Use(plugin("web"), plugin("eslint")).Branch(plugin("favicons"))

	plan := b.Plan()
	require.Len(t, plan, 3)
	assert.Equal(t, domain.PhaseMiddlewares, plan[0].Phase)
	assert.Equal(t, []string{"web", "eslint"}, plan[0].Middlewares)
	assert.Empty(t, plan[1].Middlewares)
	assert.Equal(t, []string{"favicons"}, plan[2].Middlewares)
}

func TestBuilder_NilApply(t *testing.T) {
	snap, err := pipeline.New().Use(pipeline.Middleware{Name: "noop"}).Build(domain.Options{}, domain.Environment{})
	require.NoError(t, err)
	assert.Empty(t, snap.Plugins)
}
