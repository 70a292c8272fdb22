package domain_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/fusionary/internal/core/domain"
	"go.trai.ch/zerr"
)

// newDescriptor returns a descriptor already in the middlewares phase.
func newDescriptor(mode domain.Mode) *domain.Descriptor {
	d := domain.NewDescriptor(domain.Options{Root: "/project"}, domain.Environment{Mode: mode})
	_ = d.Advance(domain.PhaseMiddlewares)
	return d
}

func TestDescriptor_Entries(t *testing.T) {
	d := newDescriptor(domain.ModeDevelopment)

	d.Entry("index").Add("app/assets/js/index.js").Add("app/assets/js/index.js").Add("polyfills.js")
	d.Entry("head").Add("app/assets/js/head.js")

	snap, err := d.Finalize()
	require.NoError(t, err)

	require.Len(t, snap.Entries, 2)
	assert.Equal(t, "index", snap.Entries[0].Name)
	assert.Equal(t, []string{"app/assets/js/index.js", "polyfills.js"}, snap.Entries[0].Paths)
	assert.Equal(t, "head", snap.Entries[1].Name)
}

func TestDescriptor_Resolve(t *testing.T) {
	d := newDescriptor(domain.ModeDevelopment)

	d.Resolve().
		Alias().Set("modernizr$", "a").Set("vue$", "vue/dist").Set("modernizr$", "b").End().
		Modules().Add("node_modules").Add("src").Add("node_modules").Prepend("vendor").End().
		Extensions().Add(".js", ".jsx").Add(".js")

	snap, err := d.Finalize()
	require.NoError(t, err)

	assert.Equal(t, []domain.AliasSnapshot{
		{Name: "modernizr$", Target: "b"},
		{Name: "vue$", Target: "vue/dist"},
	}, snap.Resolve.Alias)
	assert.Equal(t, []string{"vendor", "node_modules", "src", "node_modules"}, snap.Resolve.Modules)
	assert.Equal(t, []string{".js", ".jsx"}, snap.Resolve.Extensions)
}

func TestDescriptor_RuleSteps(t *testing.T) {
	d := newDescriptor(domain.ModeProduction)

	d.Module().Rule("svg").
		Test(`\.svg$`).
		Use("url").Loader("url-loader").Options(map[string]any{"limit": 8192}).End().
		Uses().Delete("url").Delete("url").End().
		Use("img").Loader("img-loader").End().
		Use("sprite").Loader("external-svg-sprite-loader").End()

	d.Module().Rule("empty")

	snap, err := d.Finalize()
	require.NoError(t, err)

	svg, ok := snap.Rule("svg")
	require.True(t, ok)
	assert.Equal(t, []string{"img", "sprite"}, svg.StepNames())
	assert.True(t, svg.Matches("icons/logo.svg"))
	assert.False(t, svg.Matches("logo.png"))

	empty, ok := snap.Rule("empty")
	require.True(t, ok)
	assert.Empty(t, empty.Steps)
	assert.False(t, empty.Matches("anything"))
}

func TestDescriptor_StepOverwriteKeepsPosition(t *testing.T) {
	d := newDescriptor(domain.ModeDevelopment)
	rule := d.Module().Rule("style")
	rule.Use("style").Loader("style-loader")
	rule.Use("css").Loader("css-loader")
	rule.Use("style").Loader("other-loader").Tap(func(any) any { return "tapped" })

	snap, err := d.Finalize()
	require.NoError(t, err)

	style, _ := snap.Rule("style")
	assert.Equal(t, []string{"style", "css"}, style.StepNames())
	step, ok := style.Step("style")
	require.True(t, ok)
	assert.Equal(t, "other-loader", step.Loader)
	assert.Equal(t, "tapped", step.Options)
}

func TestDescriptor_StepReplace(t *testing.T) {
	d := newDescriptor(domain.ModeDevelopment)
	rule := d.Module().Rule("style")
	rule.Use("style").Loader("style-loader")
	rule.Use("css").Loader("css-loader")

	rule.Uses().Replace("style", "extract").Loader("extract-loader")
	rule.Use("postcss").Loader("postcss-loader")
	rule.Uses().Before("postcss", "css")

	require.NoError(t, d.Err())
	assert.Equal(t, []string{"extract", "postcss", "css"}, rule.Uses().Names())

	rule.Uses().Replace("missing", "x")
	require.Error(t, d.Err())
	assert.True(t, errors.Is(d.Err(), domain.ErrNodeNotFound))
}

func TestDescriptor_InvalidMatcher(t *testing.T) {
	d := newDescriptor(domain.ModeDevelopment)
	d.Module().Rule("broken").Test(`(`)

	_, err := d.Finalize()
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidMatcher))

	var zErr *zerr.Error
	require.True(t, errors.As(err, &zErr))
	assert.Equal(t, "broken", zErr.Metadata()["rule"])
}

func TestDescriptor_Plugins(t *testing.T) {
	d := newDescriptor(domain.ModeProduction)

	d.Plugins().
		Plugin("html").Use("html-template").End().
		Plugin("copy").Use("copy-plugin").End().
		Plugin("minify").Use("minify-plugin", map[string]any{}).End().
		Delete("copy").
		Delete("copy").
		Tap("minify", func([]any) []any {
			return []any{map[string]any{"removeConsole": true}}
		})

	snap, err := d.Finalize()
	require.NoError(t, err)

	assert.Equal(t, []string{"html", "minify"}, snap.PluginNames())
	minify, ok := snap.Plugin("minify")
	require.True(t, ok)
	assert.Equal(t, []any{map[string]any{"removeConsole": true}}, minify.Args)
}

func TestDescriptor_PluginTapMissing(t *testing.T) {
	d := newDescriptor(domain.ModeProduction)
	d.Plugins().Tap("minify", func(a []any) []any { return a })

	_, err := d.Finalize()
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrNodeNotFound))
}

func TestDescriptor_DevServerProxy(t *testing.T) {
	d := newDescriptor(domain.ModeDevelopment)
	d.DevServer().
		Host("localhost").
		Port(5000).
		Proxy("/", domain.ProxyRule{Target: "http://a"}).
		Proxy("/api", domain.ProxyRule{Target: "http://b"}).
		Proxy("/", domain.ProxyRule{Target: "http://c", ChangeOrigin: true})

	snap, err := d.Finalize()
	require.NoError(t, err)

	assert.Equal(t, []domain.ProxySnapshot{
		{Path: "/", Target: "http://c", ChangeOrigin: true},
		{Path: "/api", Target: "http://b"},
	}, snap.DevServer.Proxy)
	assert.Equal(t, 5000, snap.DevServer.Port)
}

func TestDescriptor_When_Exclusive(t *testing.T) {
	for _, cond := range []bool{true, false} {
		d := newDescriptor(domain.ModeDevelopment)
		var thenCalls, elseCalls int

		d.When(cond,
			func(d *domain.Descriptor) { thenCalls++; d.Plugin("then") },
			func(d *domain.Descriptor) { elseCalls++; d.Plugin("else") },
		)

		if cond {
			assert.Equal(t, 1, thenCalls)
			assert.Equal(t, 0, elseCalls)
			assert.True(t, d.Plugins().Has("then"))
			assert.False(t, d.Plugins().Has("else"))
		} else {
			assert.Equal(t, 0, thenCalls)
			assert.Equal(t, 1, elseCalls)
			assert.True(t, d.Plugins().Has("else"))
		}
	}
}

func TestDescriptor_When_NilOtherwise(t *testing.T) {
	d := newDescriptor(domain.ModeDevelopment)
	d.When(false, func(d *domain.Descriptor) { d.Plugin("x") }, nil)

	assert.Empty(t, d.Plugins().Names())
	require.NoError(t, d.Err())
}

func TestDescriptor_When_NestedDepthFirst(t *testing.T) {
	d := newDescriptor(domain.ModeProduction)

	d.When(true, func(d *domain.Descriptor) {
		d.Plugin("a")
		d.When(true, func(d *domain.Descriptor) {
			d.Plugin("b")
		}, nil)
		d.Plugin("c")
	}, nil).Plugin("d")

	assert.Equal(t, []string{"a", "b", "c", "d"}, d.Plugins().Names())
}

func TestDescriptor_WhenFunc_EvaluatesOnce(t *testing.T) {
	d := newDescriptor(domain.ModeDevelopment)
	calls := 0
	pred := func() (bool, error) {
		calls++
		return true, nil
	}

	d.WhenFunc(pred, func(d *domain.Descriptor) { d.Plugin("yes") }, func(d *domain.Descriptor) { d.Plugin("no") })

	assert.Equal(t, 1, calls)
	assert.Equal(t, []string{"yes"}, d.Plugins().Names())
}

func TestDescriptor_WhenFunc_Error(t *testing.T) {
	d := newDescriptor(domain.ModeDevelopment)
	cause := errors.New("env lookup failed")

	d.WhenFunc(func() (bool, error) { return false, cause },
		func(d *domain.Descriptor) { d.Plugin("yes") },
		func(d *domain.Descriptor) { d.Plugin("no") })

	assert.Empty(t, d.Plugins().Names())
	_, err := d.Finalize()
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrPredicateFailed)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "branch predicate failed: env lookup failed", err.Error())
}

func TestDescriptor_WhenFunc_Helpers(t *testing.T) {
	d := newDescriptor(domain.ModeDevelopment)
	d.WhenFunc(domain.Not(domain.Always(true)), func(d *domain.Descriptor) { d.Plugin("yes") }, nil)
	d.WhenFunc(domain.Always(true), func(d *domain.Descriptor) { d.Plugin("always") }, nil)

	assert.Equal(t, []string{"always"}, d.Plugins().Names())
}

func TestDescriptor_FinalizeLocks(t *testing.T) {
	d := newDescriptor(domain.ModeProduction)
	d.Plugin("manifest").Use("manifest-plugin")
	rule := d.Module().Rule("img")

	snap, err := d.Finalize()
	require.NoError(t, err)
	assert.Equal(t, domain.PhaseFinalized, d.Phase())

	d.Plugin("late").Use("x")
	rule.Use("late")
	d.Resolve().Alias().Set("late", "x")

	assert.False(t, d.Plugins().Has("late"))
	assert.Empty(t, rule.Uses().Names())
	assert.True(t, errors.Is(d.Err(), domain.ErrDescriptorFinalized))
	assert.Equal(t, []string{"manifest"}, snap.PluginNames())

	_, err = d.Finalize()
	assert.True(t, errors.Is(err, domain.ErrDescriptorFinalized))
}

func TestDescriptor_SnapshotIsolated(t *testing.T) {
	d := newDescriptor(domain.ModeProduction)
	opts := map[string]any{"name": "sprites.svg", "nested": []any{"a"}}
	d.Module().Rule("svg").Use("sprite").Options(opts)

	snap, err := d.Finalize()
	require.NoError(t, err)

	opts["name"] = "changed"
	opts["nested"].([]any)[0] = "changed"

	svg, _ := snap.Rule("svg")
	step, _ := svg.Step("sprite")
	assert.Equal(t, map[string]any{"name": "sprites.svg", "nested": []any{"a"}}, step.Options)
}

func TestDescriptor_FirstErrorWins(t *testing.T) {
	d := newDescriptor(domain.ModeDevelopment)
	first := errors.New("first")

	d.Fail(first).Fail(errors.New("second"))
	d.Plugins().Tap("missing", func(a []any) []any { return a })

	assert.Equal(t, first, d.Err())
}

func TestDescriptor_Advance(t *testing.T) {
	d := domain.NewDescriptor(domain.Options{}, domain.Environment{})
	assert.Equal(t, domain.PhaseEmpty, d.Phase())

	require.NoError(t, d.Advance(domain.PhaseMiddlewares))
	require.NoError(t, d.Advance(domain.PhaseBranches))

	err := d.Advance(domain.PhaseOverrides)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidPhaseTransition))

	err = d.Advance(domain.PhaseBranches)
	assert.True(t, errors.Is(err, domain.ErrInvalidPhaseTransition))
	assert.Equal(t, domain.PhaseBranches, d.Phase())
}

func TestPhase_String(t *testing.T) {
	assert.Equal(t, "middlewares", domain.PhaseMiddlewares.String())
	assert.Equal(t, "finalized", domain.PhaseFinalized.String())
	assert.Equal(t, "unknown", domain.Phase(42).String())
}

func TestDescriptor_FinalizeRequiresBuilding(t *testing.T) {
	d := domain.NewDescriptor(domain.Options{}, domain.Environment{})

	snap, err := d.Finalize()
	require.Error(t, err)
	assert.Nil(t, snap)
	assert.ErrorIs(t, err, domain.ErrInvalidPhaseTransition)
	assert.Equal(t, domain.PhaseEmpty, d.Phase())

	require.NoError(t, d.Advance(domain.PhaseMiddlewares))
	_, err = d.Finalize()
	require.NoError(t, err)
}

func TestDescriptor_StrictAdd(t *testing.T) {
	tests := []struct {
		name  string
		apply func(d *domain.Descriptor)
		table string
	}{
		{
			name:  "entry",
			apply: func(d *domain.Descriptor) {
				d.Entry("index")
				d.AddEntry("index").Add("late.js")
			},
			table: "entry",
		},
		{
			name:  "rule",
			apply: func(d *domain.Descriptor) {
				d.Module().AddRule("svg")
				d.Module().AddRule("svg")
			},
			table: "rule",
		},
		{
			name: "step",
			apply: func(d *domain.Descriptor) {
				d.Module().Rule("svg").AddUse("sprite").End().Uses().Add("sprite")
			},
			table: "step",
		},
		{
			name: "plugin",
			apply: func(d *domain.Descriptor) {
				d.Plugin("manifest").Use("a")
				d.Plugins().Add("manifest").Use("b")
			},
			table: "plugin",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := newDescriptor(domain.ModeDevelopment)
			tt.apply(d)

			_, err := d.Finalize()
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrDuplicateNode)

			var zErr *zerr.Error
			require.True(t, errors.As(err, &zErr))
			assert.Equal(t, tt.table, zErr.Metadata()["table"])
		})
	}
}

func TestDescriptor_StrictAddKeepsExisting(t *testing.T) {
	d := newDescriptor(domain.ModeDevelopment)
	d.Plugins().Add("manifest").Use("manifest-plugin")
	d.Plugins().Add("manifest").Use("other")
	d.Module().AddRule("img").AddUse("url").Loader("url-loader")

	assert.ErrorIs(t, d.Err(), domain.ErrDuplicateNode)
	assert.Equal(t, []string{"manifest"}, d.Plugins().Names())

	d2 := newDescriptor(domain.ModeDevelopment)
	d2.Plugins().Add("manifest").Use("manifest-plugin")
	d2.Module().AddRule("img").AddUse("url").Loader("url-loader")
	d2.AddEntry("index").Add("index.js")

	snap, err := d2.Finalize()
	require.NoError(t, err)
	assert.Equal(t, []string{"manifest"}, snap.PluginNames())
	img, ok := snap.Rule("img")
	require.True(t, ok)
	assert.Equal(t, []string{"url"}, img.StepNames())
	require.Len(t, snap.Entries, 1)
}
