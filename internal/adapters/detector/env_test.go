package detector_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/fusionary/internal/adapters/detector"
)

func TestDetectEnvironment_CI(t *testing.T) {
	for _, value := range []string{"true", "1"} {
		t.Run("CI="+value, func(t *testing.T) {
			t.Setenv("CI", value)
			assert.True(t, detector.IsCI())
			assert.Equal(t, detector.ModeLinear, detector.DetectEnvironment())
		})
	}
}

func TestIsCI(t *testing.T) {
	t.Setenv("CI", "false")
	assert.False(t, detector.IsCI())

	t.Setenv("CI", "")
	assert.False(t, detector.IsCI())
}

func TestResolveMode(t *testing.T) {
	tests := []struct {
		name         string
		autoDetected detector.OutputMode
		userFlag     string
		expected     detector.OutputMode
	}{
		{"auto keeps interactive", detector.ModeInteractive, "auto", detector.ModeInteractive},
		{"auto keeps linear", detector.ModeLinear, "auto", detector.ModeLinear},
		{"empty keeps detection", detector.ModeInteractive, "", detector.ModeInteractive},
		{"interactive overrides", detector.ModeLinear, "interactive", detector.ModeInteractive},
		{"tty is an alias", detector.ModeLinear, "TTY", detector.ModeInteractive},
		{"linear overrides", detector.ModeInteractive, "linear", detector.ModeLinear},
		{"ci is an alias", detector.ModeInteractive, "ci", detector.ModeLinear},
		{"unknown keeps detection", detector.ModeLinear, "fancy", detector.ModeLinear},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, detector.ResolveMode(tt.autoDetected, tt.userFlag))
		})
	}
}

func TestOutputMode_String(t *testing.T) {
	assert.Equal(t, "auto", detector.ModeAuto.String())
	assert.Equal(t, "interactive", detector.ModeInteractive.String())
	assert.Equal(t, "linear", detector.ModeLinear.String())
}
