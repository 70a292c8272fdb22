// Package config provides the options loader for fusionary.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"go.trai.ch/fusionary/internal/core/domain"
	"go.trai.ch/fusionary/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// Loader implements ports.OptionsLoader using a YAML file.
type Loader struct {
	Logger ports.Logger
}

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger}
}

// Load reads fusionary.yaml and returns the project options.
// Without a config file the defaults apply and cwd becomes the root.
func (l *Loader) Load(cwd string) (domain.Options, error) {
	absCwd, err := filepath.Abs(cwd)
	if err != nil {
		return domain.Options{}, domain.Because(domain.ErrConfigReadFailed, err, "directory", cwd)
	}

	configPath, err := findConfiguration(absCwd)
	if err != nil {
		l.Logger.Debug(fmt.Sprintf("no %s found, using defaults", domain.ConfigFileName))
		return domain.Options{Root: absCwd}, nil
	}

	var configfile Configfile
	if err := readAndUnmarshalYAML(configPath, &configfile); err != nil {
		return domain.Options{}, zerr.With(err, "file", configPath)
	}

	l.warnIgnoredPaths(&configfile)
	l.Logger.Debug("loaded " + configPath)

	return buildOptions(filepath.Dir(configPath), &configfile), nil
}

// warnIgnoredPaths reports paths that the path defaults will overwrite.
func (l *Loader) warnIgnoredPaths(cf *Configfile) {
	if cf.SetPathDefaults != nil && !*cf.SetPathDefaults {
		return
	}
	for _, field := range []struct{ key, value string }{
		{"source", cf.Source},
		{"output", cf.Output},
		{"entry", cf.Entry},
	} {
		if field.value != "" {
			l.Logger.Warn(fmt.Sprintf(
				"'%s' in %s is ignored while setPathDefaults is enabled", field.key, domain.ConfigFileName))
		}
	}
}

func buildOptions(root string, cf *Configfile) domain.Options {
	return domain.Options{
		Root:            root,
		Source:          cf.Source,
		Output:          cf.Output,
		Entry:           cf.Entry,
		SetPathDefaults: cf.SetPathDefaults,
		SPA:             cf.SPA,
		Favicon: domain.Favicon{
			Logo:       cf.Favicon.Logo,
			Title:      cf.Favicon.Title,
			Background: cf.Favicon.Background,
		},
		Modernizr: cf.Modernizr,
		PostCSS:   cf.PostCSS,
	}
}

func findConfiguration(cwd string) (string, error) {
	currentDir := filepath.Clean(cwd)
	for {
		configPath := filepath.Join(currentDir, domain.ConfigFileName)
		if _, err := os.Stat(configPath); err == nil {
			return configPath, nil
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			break
		}
		currentDir = parentDir
	}

	return "", domain.Because(domain.ErrConfigNotFound, os.ErrNotExist, "cwd", cwd)
}

// readAndUnmarshalYAML reads a YAML file and unmarshals it into the target struct.
func readAndUnmarshalYAML[T any](configPath string, target *T) error {
	// #nosec G304 -- configPath comes from findConfiguration
	configFile, err := os.ReadFile(configPath)
	if err != nil {
		return domain.Because(domain.ErrConfigReadFailed, err)
	}

	if parseErr := yaml.Unmarshal(configFile, target); parseErr != nil {
		return domain.Because(domain.ErrConfigParseFailed, parseErr)
	}

	return nil
}
