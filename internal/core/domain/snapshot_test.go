package domain_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/fusionary/internal/core/domain"
)

func buildSample(mode domain.Mode) *domain.Descriptor {
	d := newDescriptor(mode)
	d.Entry("index").Add("app/assets/js/index.js")
	d.Module().Rule("img").Test(`\.png$`).Use("url").Loader("url-loader").Options(map[string]any{"limit": 8192})
	d.Plugin("manifest").Use("manifest-plugin")
	d.When(mode == domain.ModeProduction, func(d *domain.Descriptor) {
		d.Plugin("optimizeCss").Use("optimize-css")
	}, nil)
	return d
}

func TestSnapshot_Deterministic(t *testing.T) {
	a, err := buildSample(domain.ModeProduction).Finalize()
	require.NoError(t, err)
	b, err := buildSample(domain.ModeProduction).Finalize()
	require.NoError(t, err)

	if diff := cmp.Diff(a, b); diff != "" {
		t.Errorf("snapshots differ (-first +second):\n%s", diff)
	}

	fa, err := a.Fingerprint()
	require.NoError(t, err)
	fb, err := b.Fingerprint()
	require.NoError(t, err)
	assert.Equal(t, fa, fb)
	assert.Len(t, fa, 16)
}

func TestSnapshot_FingerprintChangesWithContent(t *testing.T) {
	prod, err := buildSample(domain.ModeProduction).Finalize()
	require.NoError(t, err)
	dev, err := buildSample(domain.ModeDevelopment).Finalize()
	require.NoError(t, err)

	fp, err := prod.Fingerprint()
	require.NoError(t, err)
	fd, err := dev.Fingerprint()
	require.NoError(t, err)
	assert.NotEqual(t, fp, fd)
}

func TestSnapshot_Lookups(t *testing.T) {
	snap, err := buildSample(domain.ModeProduction).Finalize()
	require.NoError(t, err)

	_, ok := snap.Entry("index")
	assert.True(t, ok)
	_, ok = snap.Entry("head")
	assert.False(t, ok)

	assert.Equal(t, []string{"img"}, snap.RuleNames())
	assert.Equal(t, []string{"manifest", "optimizeCss"}, snap.PluginNames())

	_, ok = snap.Plugin("html")
	assert.False(t, ok)
}
