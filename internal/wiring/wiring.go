// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/fusionary/internal/adapters/cas"
	_ "go.trai.ch/fusionary/internal/adapters/config"
	_ "go.trai.ch/fusionary/internal/adapters/detector"
	_ "go.trai.ch/fusionary/internal/adapters/env"
	_ "go.trai.ch/fusionary/internal/adapters/esbuild"
	_ "go.trai.ch/fusionary/internal/adapters/fs"
	_ "go.trai.ch/fusionary/internal/adapters/logger"
	_ "go.trai.ch/fusionary/internal/adapters/render"
	_ "go.trai.ch/fusionary/internal/adapters/telemetry"
	_ "go.trai.ch/fusionary/internal/adapters/watcher"
	// Register app nodes.
	_ "go.trai.ch/fusionary/internal/app"
)
