package app

import (
	"context"
	"fmt"
	"os"

	"go.trai.ch/fusionary/internal/adapters/detector"
	"go.trai.ch/fusionary/internal/adapters/watcher"
	"go.trai.ch/fusionary/internal/ui/output"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// Watch builds once and then rebuilds whenever files below the source
// directory change. Every rebuild runs a fresh configuration pass.
// Failed rebuilds are reported and the watch continues. It returns nil when
// ctx is cancelled.
func (a *App) Watch(ctx context.Context, opts WatchOptions) error {
	mode := detector.ResolveMode(a.outputMode, opts.OutputMode)

	p, err := a.configure(ctx, opts.PassOptions)
	if err != nil {
		return err
	}
	if err := a.bundle(ctx, p, false); err != nil {
		a.logger.Error(err)
	}

	dir := watchRoot(p)
	if _, err := os.Stat(dir); err != nil {
		return zerr.With(zerr.Wrap(err, "cannot watch source directory"), "directory", dir)
	}

	g, ctx := errgroup.WithContext(ctx)

	if err := a.watcher.Start(ctx, dir); err != nil {
		return err
	}
	defer func() {
		_ = a.watcher.Stop()
	}()

	rebuild := make(chan []string, 1)
	debouncer := watcher.NewDebouncer(a.window, func(paths []string) {
		select {
		case rebuild <- paths:
		default:
			// A rebuild is already queued and will pick these changes up.
		}
	})
	defer debouncer.Stop()

	a.logger.Info("watching " + dir)

	g.Go(func() error {
		for event := range a.watcher.Events() {
			debouncer.Add(event.Path)
		}
		return nil
	})

	g.Go(func() error {
		for {
			select {
			case <-ctx.Done():
				return nil
			case paths := <-rebuild:
				a.rebuild(ctx, opts.PassOptions, mode, paths)
			}
		}
	})

	return g.Wait()
}

func (a *App) rebuild(ctx context.Context, po PassOptions, mode detector.OutputMode, paths []string) {
	if mode == detector.ModeInteractive {
		output.New(a.out).ClearScreen()
	}
	if len(paths) == 1 {
		a.logger.Info(fmt.Sprintf("%s changed, rebuilding", paths[0]))
	} else {
		a.logger.Info(fmt.Sprintf("%d files changed, rebuilding", len(paths)))
	}

	p, err := a.configure(ctx, po)
	if err != nil {
		a.logger.Error(err)
		output.Failure(a.out, "configuration failed")
		return
	}
	if err := a.bundle(ctx, p, false); err != nil {
		a.logger.Error(err)
		output.Failure(a.out, "bundle failed")
	}
}

// watchRoot is the single directory watched for changes. It falls back to the
// project root when the bundle reads from more than one directory.
func watchRoot(p *pass) string {
	dirs := sourceDirs(p)
	if len(dirs) != 1 {
		return p.opts.Root
	}
	return resolvePath(p.opts.Root, dirs[0])
}
