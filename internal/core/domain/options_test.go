package domain_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/fusionary/internal/core/domain"
)

func TestOptions_Resolved(t *testing.T) {
	disabled := false
	enabled := true

	tests := []struct {
		name   string
		in     domain.Options
		source string
		output string
		entry  string
	}{
		{
			name:   "nil flag applies defaults over supplied paths",
			in:     domain.Options{Source: "src", Output: "dist", Entry: "main.js"},
			source: domain.DefaultSource,
			output: domain.DefaultOutput,
			entry:  domain.DefaultEntry,
		},
		{
			name:   "true flag applies defaults",
			in:     domain.Options{SetPathDefaults: &enabled},
			source: domain.DefaultSource,
			output: domain.DefaultOutput,
			entry:  domain.DefaultEntry,
		},
		{
			name:   "false flag keeps supplied paths",
			in:     domain.Options{SetPathDefaults: &disabled, Source: "src", Output: "dist", Entry: "main.js"},
			source: "src",
			output: "dist",
			entry:  "main.js",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.in.Resolved()
			assert.Equal(t, tt.source, got.Source)
			assert.Equal(t, tt.output, got.Output)
			assert.Equal(t, tt.entry, got.Entry)
			assert.Equal(t, domain.DefaultModernizr, got.Modernizr)
		})
	}
}

func TestOptions_ResolvedCopiesPostCSS(t *testing.T) {
	in := domain.Options{PostCSS: map[string]any{"plugins": []any{"autoprefixer"}}}
	got := in.Resolved()

	in.PostCSS["plugins"].([]any)[0] = "changed"
	assert.Equal(t, []any{"autoprefixer"}, got.PostCSS["plugins"])
}

func TestParseMode(t *testing.T) {
	m, err := domain.ParseMode(" Production ")
	require.NoError(t, err)
	assert.Equal(t, domain.ModeProduction, m)

	m, err = domain.ParseMode("development")
	require.NoError(t, err)
	assert.Equal(t, domain.ModeDevelopment, m)

	_, err = domain.ParseMode("staging")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrUnknownMode))
}

func TestEnvironment_Modes(t *testing.T) {
	assert.True(t, domain.Environment{Mode: domain.ModeProduction}.IsProduction())
	assert.False(t, domain.Environment{Mode: domain.ModeProduction}.IsDevelopment())
	assert.True(t, domain.Environment{Mode: domain.ModeDevelopment}.IsDevelopment())

	other := domain.Environment{Mode: "test"}
	assert.False(t, other.IsProduction())
	assert.False(t, other.IsDevelopment())
}
