// Package app implements the application layer for fusionary.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"time"

	"go.trai.ch/fusionary/internal/adapters/detector"
	"go.trai.ch/fusionary/internal/adapters/watcher"
	"go.trai.ch/fusionary/internal/core/domain"
	"go.trai.ch/fusionary/internal/core/ports"
	"go.trai.ch/fusionary/internal/engine/pipeline"
	"go.trai.ch/fusionary/internal/preset"
	"go.trai.ch/fusionary/internal/ui/output"
	"go.trai.ch/zerr"
)

// defaultDebounceWindow is how long watch waits for a burst of changes to settle.
const defaultDebounceWindow = watcher.DefaultWindow

// App represents the main application logic.
type App struct {
	loader    ports.OptionsLoader
	envReader ports.EnvironmentReader
	bundler   ports.Bundler
	store     ports.BuildStateStore
	renderer  ports.Renderer
	hasher    ports.SourceHasher
	watcher   ports.Watcher
	tracer    ports.Tracer
	logger    ports.Logger

	outputMode detector.OutputMode
	out        io.Writer
	now        func() time.Time
	window     time.Duration
}

// New creates a new App instance.
func New(
	loader ports.OptionsLoader,
	envReader ports.EnvironmentReader,
	bundler ports.Bundler,
	store ports.BuildStateStore,
	renderer ports.Renderer,
	hasher ports.SourceHasher,
	fsWatcher ports.Watcher,
	tracer ports.Tracer,
	log ports.Logger,
) *App {
	return &App{
		loader:     loader,
		envReader:  envReader,
		bundler:    bundler,
		store:      store,
		renderer:   renderer,
		hasher:     hasher,
		watcher:    fsWatcher,
		tracer:     tracer,
		logger:     log,
		outputMode: detector.ModeLinear,
		out:        os.Stdout,
		now:        time.Now,
		window:     defaultDebounceWindow,
	}
}

// WithOutput sets the writer for status lines and rendered descriptors.
func (a *App) WithOutput(w io.Writer) *App {
	a.out = w
	return a
}

// WithOutputMode sets the detected presentation mode for watch.
func (a *App) WithOutputMode(mode detector.OutputMode) *App {
	a.outputMode = mode
	return a
}

// WithClock replaces the time source used for build state timestamps.
func (a *App) WithClock(now func() time.Time) *App {
	a.now = now
	return a
}

// PassOptions select the project and mode of a configuration pass.
type PassOptions struct {
	// Dir is where discovery of fusionary.yaml starts. Empty means ".".
	Dir string
	// Mode overrides NODE_ENV when set.
	Mode string
}

// BuildOptions configuration for the Build method.
type BuildOptions struct {
	PassOptions
	// Force bundles even when the descriptor fingerprint is unchanged.
	Force bool
}

// InspectOptions configuration for the Inspect method.
type InspectOptions struct {
	PassOptions
	Format string
}

// WatchOptions configuration for the Watch method.
type WatchOptions struct {
	PassOptions
	// OutputMode is "auto", "interactive" or "linear".
	OutputMode string
}

// pass is the result of one configuration pass.
type pass struct {
	opts domain.Options
	env  domain.Environment
	snap *domain.Snapshot
}

// Configure runs one configuration pass and returns the finalized descriptor.
func (a *App) Configure(ctx context.Context, po PassOptions) (*domain.Snapshot, error) {
	p, err := a.configure(ctx, po)
	if err != nil {
		return nil, err
	}
	return p.snap, nil
}

func (a *App) configure(ctx context.Context, po PassOptions) (*pass, error) {
	ctx, span := a.tracer.Start(ctx, "configure")
	defer span.End()

	dir := po.Dir
	if dir == "" {
		dir = "."
	}

	opts, err := a.loader.Load(dir)
	if err != nil {
		span.RecordError(err)
		return nil, zerr.Wrap(err, "failed to load configuration")
	}

	env, err := a.envReader.Read(opts.Root)
	if err != nil {
		span.RecordError(err)
		return nil, zerr.Wrap(err, "failed to read environment")
	}
	if po.Mode != "" {
		mode, err := domain.ParseMode(po.Mode)
		if err != nil {
			span.RecordError(err)
			return nil, err
		}
		env.Mode = mode
	}
	span.SetAttribute("mode", string(env.Mode))
	a.logger.Debug(fmt.Sprintf("configuring %s in %s mode", opts.Root, env.Mode))

	snap, err := preset.New(pipeline.WithHook(a.traceHook(ctx))).Build(opts, env)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	return &pass{opts: opts, env: env, snap: snap}, nil
}

// traceHook wraps every middleware application in a span.
func (a *App) traceHook(ctx context.Context) pipeline.Hook {
	return func(stage domain.Phase, name string) func(error) {
		_, span := a.tracer.Start(ctx, "middleware."+name)
		span.SetAttribute("stage", stage.String())
		span.SetAttribute("middleware", name)
		return func(err error) {
			if err != nil {
				span.RecordError(err)
			}
			span.End()
		}
	}
}

// Inspect renders the finalized descriptor.
func (a *App) Inspect(ctx context.Context, opts InspectOptions) error {
	snap, err := a.Configure(ctx, opts.PassOptions)
	if err != nil {
		return err
	}
	return a.renderer.Render(a.out, snap, opts.Format)
}

// Build runs a configuration pass and bundles the result. Bundling is
// skipped when the fingerprint matches the last successful build and the
// output directory still exists.
func (a *App) Build(ctx context.Context, opts BuildOptions) error {
	p, err := a.configure(ctx, opts.PassOptions)
	if err != nil {
		return err
	}
	return a.bundle(ctx, p, opts.Force)
}

func (a *App) bundle(ctx context.Context, p *pass, force bool) error {
	root := p.opts.Root

	fingerprint, err := p.snap.Fingerprint()
	if err != nil {
		return err
	}
	sources, err := a.hasher.HashSources(root, sourceDirs(p)...)
	if err != nil {
		return err
	}

	outdir := resolvePath(root, p.snap.Output.Path)
	if !force && a.upToDate(root, outdir, fingerprint, sources) {
		output.Skipped(a.out, "assets up to date (%s)", fingerprint)
		return nil
	}

	ctx, span := a.tracer.Start(ctx, "bundle")
	defer span.End()
	span.SetAttribute("fingerprint", fingerprint)
	span.SetAttribute("sources", sources)

	res, err := a.bundler.Bundle(ctx, root, p.snap)
	if err != nil {
		span.RecordError(err)
		return err
	}
	for _, w := range res.Warnings {
		a.logger.Warn(w)
	}
	span.SetAttribute("outputs", len(res.Outputs))

	state := domain.BuildState{
		Fingerprint: fingerprint,
		Sources:     sources,
		Mode:        p.env.Mode,
		Outputs:     res.Outputs,
		Timestamp:   a.now(),
	}
	if err := a.store.Put(root, state); err != nil {
		return err
	}

	output.Success(a.out, "built %d files into %s", len(res.Outputs), p.snap.Output.Path)
	return nil
}

func (a *App) upToDate(root, outdir, fingerprint, sources string) bool {
	state, err := a.store.Get(root)
	if err != nil {
		a.logger.Warn("ignoring unreadable build state: " + err.Error())
		return false
	}
	if state == nil || state.Fingerprint != fingerprint || state.Sources != sources {
		return false
	}
	if _, err := os.Stat(outdir); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			a.logger.Warn("cannot stat output directory: " + err.Error())
		}
		return false
	}
	return true
}

// sourceDirs are the directories a bundle reads from: the source directory
// when one is configured, otherwise the directories holding the entries.
func sourceDirs(p *pass) []string {
	if source := p.opts.Resolved().Source; source != "" {
		return []string{source}
	}

	var dirs []string
	for _, entry := range p.snap.Entries {
		for _, path := range entry.Paths {
			dir := filepath.Dir(path)
			if !slices.Contains(dirs, dir) {
				dirs = append(dirs, dir)
			}
		}
	}
	return dirs
}

func resolvePath(root, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(root, path)
}
