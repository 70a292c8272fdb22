// Package esbuild bundles a finalized descriptor with esbuild.
package esbuild

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/evanw/esbuild/pkg/api"
	"go.trai.ch/fusionary/internal/core/domain"
	"go.trai.ch/fusionary/internal/middleware"
	"go.trai.ch/fusionary/internal/preset"
	"go.trai.ch/zerr"
)

// candidateExtensions are probed against every rule test to build the loader table.
var candidateExtensions = []string{
	".js", ".mjs", ".jsx", ".ts", ".tsx", ".json",
	".css", ".html", ".txt",
	".png", ".jpg", ".jpeg", ".gif", ".webp", ".svg",
	".eot", ".ttf", ".woff", ".woff2",
}

// stepLoaders maps loader references to esbuild loaders. References that
// only transform JavaScript are absent and leave esbuild's default in place.
var stepLoaders = map[string]api.Loader{
	middleware.LoaderStyle:   api.LoaderCSS,
	middleware.LoaderCSS:     api.LoaderCSS,
	middleware.LoaderExtract: api.LoaderCSS,
	preset.LoaderPostCSS:     api.LoaderCSS,
	middleware.LoaderHTML:    api.LoaderText,
	middleware.LoaderURL:     api.LoaderDataURL,
	middleware.LoaderFile:    api.LoaderFile,
	preset.LoaderImage:       api.LoaderFile,
	preset.LoaderSvgSprite:   api.LoaderFile,
	preset.LoaderNull:        api.LoaderEmpty,
	preset.LoaderModernizr:   api.LoaderEmpty,
}

// BuildOptions translates snap into esbuild options for the project at root.
func BuildOptions(root string, snap *domain.Snapshot) (api.BuildOptions, error) {
	entryPoints := entryPoints(root, snap.Entries)
	if len(entryPoints) == 0 {
		return api.BuildOptions{}, zerr.With(zerr.Wrap(domain.ErrNoEntryPoints, "cannot bundle"), "root", root)
	}

	outdir := snap.Output.Path
	if outdir == "" {
		outdir = domain.DefaultOutput
	}

	minifyPlugin, ok := snap.Plugin("minify")
	minify := ok && minifyPlugin.Use == middleware.PluginMinify

	opts := api.BuildOptions{
		EntryPointsAdvanced: entryPoints,
		Outdir:              resolvePath(root, outdir),
		EntryNames:          entryNames(snap.Output.Filename),
		PublicPath:          snap.Output.PublicPath,
		AbsWorkingDir:       root,
		Bundle:              true,
		Write:               true,
		Metafile:            true,
		Platform:            api.PlatformBrowser,
		Format:              api.FormatIIFE,
		LogLevel:            api.LogLevelSilent,
		Alias:               aliases(root, snap.Resolve.Alias),
		NodePaths:           nodePaths(root, snap.Resolve.Modules),
		ResolveExtensions:   snap.Resolve.Extensions,
		Loader:              loaders(snap.Rules, extensions(snap.Resolve.Alias)),
		Define:              defines(snap.Plugins),
		MinifyWhitespace:    minify,
		MinifyIdentifiers:   minify,
		MinifySyntax:        minify,
		Drop:                drops(minifyPlugin.Args),
		Sourcemap:           api.SourceMapLinked,
	}
	if snap.Mode == domain.ModeProduction {
		opts.Sourcemap = api.SourceMapNone
	}
	return opts, nil
}

func resolvePath(root, p string) string {
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(root, filepath.FromSlash(p))
}

// entryPoints emits one entry point per path. Additional paths of an entry
// get the entry name with a numeric suffix.
func entryPoints(root string, entries []domain.EntrySnapshot) []api.EntryPoint {
	var out []api.EntryPoint
	for _, entry := range entries {
		for i, p := range entry.Paths {
			name := entry.Name
			if i > 0 {
				name = fmt.Sprintf("%s-%d", entry.Name, i)
			}
			out = append(out, api.EntryPoint{InputPath: resolvePath(root, p), OutputPath: name})
		}
	}
	return out
}

// entryNames converts a webpack style filename template into an esbuild one.
func entryNames(filename string) string {
	if filename == "" {
		return "[name]"
	}
	name := strings.TrimSuffix(filename, filepath.Ext(filename))
	return strings.NewReplacer("[chunkhash]", "[hash]", "[contenthash]", "[hash]").Replace(name)
}

// aliases drops the webpack exact-match marker and resolves path targets.
func aliases(root string, in []domain.AliasSnapshot) map[string]string {
	if len(in) == 0 {
		return nil
	}
	out := make(map[string]string, len(in))
	for _, a := range in {
		target := a.Target
		if strings.HasPrefix(target, ".") || filepath.IsAbs(target) {
			target = resolvePath(root, target)
		}
		out[strings.TrimSuffix(a.Name, "$")] = target
	}
	return out
}

// nodePaths returns the extra search paths. node_modules lookup is built in.
func nodePaths(root string, modules []string) []string {
	var out []string
	for _, m := range modules {
		if m == "node_modules" {
			continue
		}
		out = append(out, resolvePath(root, m))
	}
	return out
}

// extensions returns the candidate extensions plus those of aliased files.
func extensions(alias []domain.AliasSnapshot) []string {
	out := slices.Clone(candidateExtensions)
	for _, a := range alias {
		if ext := filepath.Ext(a.Target); ext != "" && !slices.Contains(out, ext) {
			out = append(out, ext)
		}
	}
	return out
}

// loaders assigns each extension the loader of the first rule that matches
// it and has a step esbuild can express.
func loaders(rules []domain.RuleSnapshot, exts []string) map[string]api.Loader {
	out := map[string]api.Loader{}
	for _, rule := range rules {
		loader, ok := ruleLoader(rule)
		if !ok {
			continue
		}
		for _, ext := range exts {
			if _, taken := out[ext]; taken {
				continue
			}
			if rule.Matches("asset" + ext) {
				out[ext] = loader
			}
		}
	}
	return out
}

func ruleLoader(rule domain.RuleSnapshot) (api.Loader, bool) {
	for _, step := range rule.Steps {
		if loader, ok := stepLoaders[step.Loader]; ok {
			return loader, true
		}
	}
	return api.LoaderNone, false
}

// defines collects string replacements from define plugins.
func defines(plugins []domain.PluginSnapshot) map[string]string {
	out := map[string]string{}
	for _, p := range plugins {
		if p.Use != middleware.PluginDefine {
			continue
		}
		for _, arg := range p.Args {
			values, ok := arg.(map[string]any)
			if !ok {
				continue
			}
			for k, v := range values {
				out[k] = fmt.Sprint(v)
			}
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func drops(args []any) api.Drop {
	var drop api.Drop
	for _, arg := range args {
		values, ok := arg.(map[string]any)
		if !ok {
			continue
		}
		if v, _ := values["removeConsole"].(bool); v {
			drop |= api.DropConsole
		}
		if v, _ := values["removeDebugger"].(bool); v {
			drop |= api.DropDebugger
		}
	}
	return drop
}
