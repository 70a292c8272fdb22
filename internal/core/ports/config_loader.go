package ports

import "go.trai.ch/fusionary/internal/core/domain"

// OptionsLoader defines the interface for loading the project options.
//
//go:generate go run go.uber.org/mock/mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type OptionsLoader interface {
	// Load reads fusionary.yaml found from cwd upwards and returns the project options.
	// A project without a config file yields default options rooted at cwd.
	Load(cwd string) (domain.Options, error)
}
