package detector

import (
	"context"

	"github.com/grindlemire/graft"
)

// NodeID is the graft node that provides the detected OutputMode.
const NodeID graft.ID = "adapter.detector"

func init() {
	graft.Register(graft.Node[OutputMode]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (OutputMode, error) {
			return DetectEnvironment(), nil
		},
	})
}
