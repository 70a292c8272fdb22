package ports

import (
	"io"

	"go.trai.ch/fusionary/internal/core/domain"
)

// Renderer writes a snapshot in a human or machine readable format.
//
//go:generate go run go.uber.org/mock/mockgen -source=renderer.go -destination=mocks/mock_renderer.go -package=mocks
type Renderer interface {
	// Render encodes snap to w. Format is "yaml" or "json".
	Render(w io.Writer, snap *domain.Snapshot, format string) error
}
