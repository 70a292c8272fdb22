package esbuild

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/evanw/esbuild/pkg/api"
	"go.trai.ch/fusionary/internal/core/domain"
	"go.trai.ch/fusionary/internal/core/ports"
	"go.trai.ch/fusionary/internal/middleware"
	"go.trai.ch/fusionary/internal/preset"
	"go.trai.ch/zerr"
)

var _ ports.Bundler = (*Bundler)(nil)

// Bundler implements ports.Bundler on top of the esbuild Go API.
type Bundler struct {
	logger ports.Logger
}

// NewBundler creates a new Bundler.
func NewBundler(logger ports.Logger) *Bundler {
	return &Bundler{logger: logger}
}

// metafile is the subset of the esbuild metafile read for the manifest.
type metafile struct {
	Outputs map[string]metafileOutput `json:"outputs"`
}

type metafileOutput struct {
	EntryPoint string `json:"entryPoint"`
	CSSBundle  string `json:"cssBundle"`
}

// Bundle builds snap into its output directory.
func (b *Bundler) Bundle(ctx context.Context, root string, snap *domain.Snapshot) (*domain.BundleResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	opts, err := BuildOptions(root, snap)
	if err != nil {
		return nil, err
	}

	if p, ok := snap.Plugin("clean"); ok && p.Use == middleware.PluginClean {
		if err := cleanOutdir(root, opts.Outdir); err != nil {
			return nil, err
		}
	}

	b.logger.Debug(fmt.Sprintf("bundling %d entry points into %s", len(opts.EntryPointsAdvanced), opts.Outdir))
	result := api.Build(opts)

	res := &domain.BundleResult{}
	for _, msg := range result.Warnings {
		res.Warnings = append(res.Warnings, formatMessage(msg))
	}

	if len(result.Errors) > 0 {
		errs := make([]error, 0, len(result.Errors))
		for _, msg := range result.Errors {
			errs = append(errs, errors.New(formatMessage(msg)))
		}
		return nil, domain.Because(domain.ErrBundleFailed, errors.Join(errs...), "errors", len(errs))
	}

	for _, file := range result.OutputFiles {
		res.Outputs = append(res.Outputs, relativeTo(root, file.Path))
	}
	slices.Sort(res.Outputs)

	if p, ok := snap.Plugin("manifest"); ok && p.Use == preset.PluginManifest {
		manifest, err := buildManifest(root, opts, result.Metafile)
		if err != nil {
			return nil, err
		}
		if err := writeManifest(opts.Outdir, manifest); err != nil {
			return nil, err
		}
		res.Manifest = manifest
		res.Outputs = append(res.Outputs, relativeTo(root, filepath.Join(opts.Outdir, domain.ManifestFileName)))
	}

	return res, nil
}

// cleanOutdir removes the output directory. Directories outside root are left alone.
func cleanOutdir(root, outdir string) error {
	rel, err := filepath.Rel(root, outdir)
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return zerr.With(zerr.Wrap(domain.ErrBundleFailed, "refusing to clean output outside the project"), "output", outdir)
	}
	if err := os.RemoveAll(outdir); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to clean output directory"), "output", outdir)
	}
	return nil
}

// buildManifest maps "<entry>.<ext>" to the emitted file, relative to the output directory.
func buildManifest(root string, opts api.BuildOptions, raw string) (map[string]string, error) {
	var meta metafile
	if err := json.Unmarshal([]byte(raw), &meta); err != nil {
		return nil, domain.Because(domain.ErrManifestWriteFailed, err)
	}

	names := make(map[string]string, len(opts.EntryPointsAdvanced))
	for _, ep := range opts.EntryPointsAdvanced {
		names[relativeTo(root, ep.InputPath)] = ep.OutputPath
	}

	manifest := map[string]string{}
	for out, info := range meta.Outputs {
		name, ok := names[info.EntryPoint]
		if !ok {
			continue
		}
		file := relativeTo(opts.Outdir, filepath.Join(root, out))
		manifest[name+filepath.Ext(out)] = file
		if info.CSSBundle != "" {
			manifest[name+".css"] = relativeTo(opts.Outdir, filepath.Join(root, info.CSSBundle))
		}
	}
	return manifest, nil
}

func writeManifest(outdir string, manifest map[string]string) error {
	data, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return domain.Because(domain.ErrManifestWriteFailed, err)
	}
	path := filepath.Join(outdir, domain.ManifestFileName)
	if err := os.WriteFile(path, append(data, '\n'), domain.FilePerm); err != nil {
		return domain.Because(domain.ErrManifestWriteFailed, err, "path", path)
	}
	return nil
}

func relativeTo(base, path string) string {
	rel, err := filepath.Rel(base, path)
	if err != nil {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}

func formatMessage(msg api.Message) string {
	if msg.Location == nil {
		return msg.Text
	}
	return fmt.Sprintf("%s:%d:%d: %s", msg.Location.File, msg.Location.Line, msg.Location.Column, msg.Text)
}
