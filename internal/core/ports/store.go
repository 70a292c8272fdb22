package ports

import "go.trai.ch/fusionary/internal/core/domain"

// BuildStateStore defines the interface for storing and retrieving the last build state.
//
//go:generate go run go.uber.org/mock/mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type BuildStateStore interface {
	// Get retrieves the build state of the project rooted at root.
	// Returns nil, nil if not found.
	Get(root string) (*domain.BuildState, error)

	// Put stores the build state.
	Put(root string, state domain.BuildState) error
}
