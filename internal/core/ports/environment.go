// Package ports defines the core interfaces for the application.
package ports

import "go.trai.ch/fusionary/internal/core/domain"

// EnvironmentReader produces the environment of a configuration pass.
//
// Implementations are responsible for:
//   - Reading the optional dotenv file in the project root
//   - Letting the real process environment take precedence over it
//
//go:generate go run go.uber.org/mock/mockgen -source=environment.go -destination=mocks/mock_environment.go -package=mocks
type EnvironmentReader interface {
	// Read returns the environment for the project rooted at root.
	Read(root string) (domain.Environment, error)
}
