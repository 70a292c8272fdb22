package config

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/fusionary/internal/adapters/logger"
	"go.trai.ch/fusionary/internal/core/ports"
)

// NodeID is the graft node that provides the ports.OptionsLoader.
const NodeID graft.ID = "adapter.config_loader"

func init() {
	graft.Register(graft.Node[ports.OptionsLoader]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.OptionsLoader, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewLoader(log), nil
		},
	})
}
