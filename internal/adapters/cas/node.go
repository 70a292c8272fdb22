package cas

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/fusionary/internal/core/ports"
)

// NodeID is the graft node that provides the ports.BuildStateStore.
const NodeID graft.ID = "adapter.build_state_store"

func init() {
	graft.Register(graft.Node[ports.BuildStateStore]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.BuildStateStore, error) {
			return NewStore(), nil
		},
	})
}
