package env

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/fusionary/internal/core/ports"
)

// NodeID is the graft node that provides the ports.EnvironmentReader.
const NodeID graft.ID = "adapter.env_reader"

func init() {
	graft.Register(graft.Node[ports.EnvironmentReader]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.EnvironmentReader, error) {
			return NewReader(), nil
		},
	})
}
