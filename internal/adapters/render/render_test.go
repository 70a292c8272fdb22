package render_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/fusionary/internal/adapters/render"
	"go.trai.ch/fusionary/internal/core/domain"
)

func sampleSnapshot() *domain.Snapshot {
	return &domain.Snapshot{
		Mode: domain.ModeProduction,
		Entries: []domain.EntrySnapshot{
			{Name: "index", Paths: []string{"app/assets/js/index.js"}},
		},
		Output: domain.OutputSnapshot{Path: "public/assets", Filename: "[name].js"},
		Resolve: domain.ResolveSnapshot{
			Alias:      []domain.AliasSnapshot{{Name: "modernizr$", Target: ".modernizr-autorc"}},
			Extensions: []string{".js"},
		},
		Rules: []domain.RuleSnapshot{
			{
				Name: "compile",
				Test: `\.(mjs|jsx|js)$`,
				Steps: []domain.StepSnapshot{
					{Name: "babel", Loader: "babel-loader", Options: map[string]any{"cacheDirectory": true}},
				},
			},
		},
		Plugins: []domain.PluginSnapshot{
			{
				Name: "env",
				Use:  "define-plugin",
				Args: []any{map[string]any{"process.env.NODE_ENV": `"production"`}},
			},
		},
	}
}

func TestRenderer_Render(t *testing.T) {
	tests := []struct {
		format     string
		goldenName string
	}{
		{format: "yaml", goldenName: "snapshot_yaml"},
		{format: "json", goldenName: "snapshot_json"},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			var buf bytes.Buffer
			err := render.New().Render(&buf, sampleSnapshot(), tt.format)
			require.NoError(t, err)

			g := goldie.New(t)
			g.Assert(t, tt.goldenName, buf.Bytes())
		})
	}
}

func TestRenderer_DefaultsToYAML(t *testing.T) {
	var yamlOut, defaultOut bytes.Buffer
	require.NoError(t, render.New().Render(&yamlOut, sampleSnapshot(), "yaml"))
	require.NoError(t, render.New().Render(&defaultOut, sampleSnapshot(), ""))

	assert.Equal(t, yamlOut.String(), defaultOut.String())
}

func TestRenderer_UnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	err := render.New().Render(&buf, sampleSnapshot(), "toml")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUnknownFormat)
	assert.Empty(t, buf.String())
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("disk full")
}

func TestRenderer_WriteError(t *testing.T) {
	err := render.New().Render(failingWriter{}, sampleSnapshot(), "json")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrRenderFailed)
	assert.ErrorContains(t, err, "disk full")
}
