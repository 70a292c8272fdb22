package ports

import (
	"context"

	"go.trai.ch/fusionary/internal/core/domain"
)

// Bundler consumes a finalized snapshot and produces the asset bundle.
//
//go:generate go run go.uber.org/mock/mockgen -source=bundler.go -destination=mocks/mock_bundler.go -package=mocks
type Bundler interface {
	// Bundle builds the assets described by snap. Relative paths resolve against root.
	Bundle(ctx context.Context, root string, snap *domain.Snapshot) (*domain.BundleResult, error)
}
