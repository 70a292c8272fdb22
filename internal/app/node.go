package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/fusionary/internal/adapters/cas"       //nolint:depguard // Wired in app layer
	"go.trai.ch/fusionary/internal/adapters/config"    //nolint:depguard // Wired in app layer
	"go.trai.ch/fusionary/internal/adapters/detector"  //nolint:depguard // Wired in app layer
	"go.trai.ch/fusionary/internal/adapters/env"       //nolint:depguard // Wired in app layer
	"go.trai.ch/fusionary/internal/adapters/esbuild"   //nolint:depguard // Wired in app layer
	"go.trai.ch/fusionary/internal/adapters/fs"        //nolint:depguard // Wired in app layer
	"go.trai.ch/fusionary/internal/adapters/logger"    //nolint:depguard // Wired in app layer
	"go.trai.ch/fusionary/internal/adapters/render"    //nolint:depguard // Wired in app layer
	"go.trai.ch/fusionary/internal/adapters/telemetry" //nolint:depguard // Wired in app layer
	"go.trai.ch/fusionary/internal/adapters/watcher"   //nolint:depguard // Wired in app layer
	"go.trai.ch/fusionary/internal/core/ports"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

// Components is what the command line needs from the dependency graph.
type Components struct {
	App    *App
	Logger ports.Logger
}

func init() {
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			env.NodeID,
			esbuild.NodeID,
			cas.NodeID,
			render.NodeID,
			fs.HasherNodeID,
			watcher.NodeID,
			telemetry.NodeID,
			logger.NodeID,
			detector.NodeID,
		},
		Run: runAppNode,
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Components, error) {
			app, err := graft.Dep[*App](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return &Components{App: app, Logger: log}, nil
		},
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	loader, err := graft.Dep[ports.OptionsLoader](ctx)
	if err != nil {
		return nil, err
	}

	envReader, err := graft.Dep[ports.EnvironmentReader](ctx)
	if err != nil {
		return nil, err
	}

	bundler, err := graft.Dep[ports.Bundler](ctx)
	if err != nil {
		return nil, err
	}

	store, err := graft.Dep[ports.BuildStateStore](ctx)
	if err != nil {
		return nil, err
	}

	renderer, err := graft.Dep[ports.Renderer](ctx)
	if err != nil {
		return nil, err
	}

	hasher, err := graft.Dep[ports.SourceHasher](ctx)
	if err != nil {
		return nil, err
	}

	fsWatcher, err := graft.Dep[ports.Watcher](ctx)
	if err != nil {
		return nil, err
	}

	tracer, err := graft.Dep[ports.Tracer](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	mode, err := graft.Dep[detector.OutputMode](ctx)
	if err != nil {
		return nil, err
	}

	return New(loader, envReader, bundler, store, renderer, hasher, fsWatcher, tracer, log).
		WithOutputMode(mode), nil
}
