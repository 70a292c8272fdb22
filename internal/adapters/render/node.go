package render

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/fusionary/internal/core/ports"
)

// NodeID is the graft node that provides the ports.Renderer.
const NodeID graft.ID = "adapter.renderer"

func init() {
	graft.Register(graft.Node[ports.Renderer]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.Renderer, error) {
			return New(), nil
		},
	})
}
