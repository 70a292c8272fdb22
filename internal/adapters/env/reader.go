// Package env reads the build environment from the process and an optional .env file.
package env

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"go.trai.ch/fusionary/internal/core/domain"
)

const (
	// ModeVariable selects the build mode.
	ModeVariable = "NODE_ENV"
	// ProxyVariable is the upstream proxied by the development server.
	ProxyVariable = "DEV_PROXY"
)

// Reader implements ports.EnvironmentReader.
// Process variables take precedence over values from the .env file.
type Reader struct {
	Lookup func(key string) (string, bool)
}

// NewReader creates a Reader backed by the process environment.
func NewReader() *Reader {
	return &Reader{Lookup: os.LookupEnv}
}

// Read returns the environment for the project rooted at root.
// An unset NODE_ENV means development.
func (r *Reader) Read(root string) (domain.Environment, error) {
	envPath := filepath.Join(root, domain.EnvFileName)

	values, err := godotenv.Read(envPath)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return domain.Environment{}, domain.Because(domain.ErrEnvFileReadFailed, err, "file", envPath)
		}
		values = map[string]string{}
	}

	get := func(key string) string {
		if r.Lookup != nil {
			if v, ok := r.Lookup(key); ok {
				return v
			}
		}
		return values[key]
	}

	mode := strings.TrimSpace(get(ModeVariable))
	if mode == "" {
		mode = string(domain.ModeDevelopment)
	}

	return domain.Environment{
		Mode:     domain.Mode(mode),
		DevProxy: strings.TrimSpace(get(ProxyVariable)),
	}, nil
}
