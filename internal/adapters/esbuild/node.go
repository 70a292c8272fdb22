package esbuild

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/fusionary/internal/adapters/logger"
	"go.trai.ch/fusionary/internal/core/ports"
)

// NodeID is the graft node that provides the ports.Bundler.
const NodeID graft.ID = "adapter.bundler"

func init() {
	graft.Register(graft.Node[ports.Bundler]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.Bundler, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewBundler(log), nil
		},
	})
}
