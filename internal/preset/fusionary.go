// Package preset holds the fusionary asset configuration expressed as a pipeline.
package preset

import (
	"path"

	"go.trai.ch/fusionary/internal/core/domain"
	"go.trai.ch/fusionary/internal/engine/pipeline"
	"go.trai.ch/fusionary/internal/middleware"
)

// Loader and plugin references added on top of the shared middlewares.
const (
	LoaderPostCSS        = "postcss-loader"
	LoaderModernizr      = "modernizr-auto-loader"
	LoaderNull           = "null-loader"
	LoaderImage          = "img-loader"
	LoaderSvgSprite      = "external-svg-sprite-loader"
	LoaderExpose         = "expose-loader"
	PluginSvgSprite      = "svg-sprite-plugin"
	PluginManifest       = "manifest-plugin"
	PluginFavicons       = "favicons-plugin"
	PluginOptimizeCSS    = "optimize-css-assets-plugin"
	DefaultFaviconLogo   = "img/favicon.png"
	DefaultFaviconBg     = "#ffffff"
	defaultPostCSSPlugin = "autoprefixer"
)

// New returns a builder loaded with the fusionary configuration.
func New(opts ...pipeline.Option) *pipeline.Builder {
	return pipeline.New(opts...).
		Use(
			middleware.Web(),
			middleware.Stylelint(),
			middleware.ESLint(),
			middleware.ExtractStyles(extractOptions),
		).
		Override(
			pipeline.Middleware{Name: "entries", Apply: entries},
			pipeline.Middleware{Name: "resolve", Apply: resolve},
			pipeline.Middleware{Name: "rules", Apply: rules},
			pipeline.Middleware{Name: "plugins", Apply: plugins},
		).
		Branch(
			pipeline.Middleware{Name: "devProxy", Apply: devProxy},
			pipeline.Middleware{Name: "production", Apply: production},
		)
}

func extractOptions(d *domain.Descriptor) middleware.ExtractOptions {
	prod := d.Env().IsProduction()
	filename := "[name].css"
	if prod {
		filename = "[name].[chunkhash].css"
	}
	return middleware.ExtractOptions{
		Use: []middleware.StyleStep{
			{
				Name:   "css",
				Loader: middleware.LoaderCSS,
				Options: map[string]any{
					"sourceMap":     true,
					"importLoaders": 1,
				},
			},
			{
				Name:    "postcss",
				Loader:  LoaderPostCSS,
				Options: postcssOptions(d.Options()),
			},
		},
		Filename:    filename,
		AllChunks:   true,
		IgnoreOrder: true,
	}
}

func postcssOptions(opts domain.Options) map[string]any {
	if len(opts.PostCSS) > 0 {
		return opts.PostCSS
	}
	return map[string]any{"plugins": []any{defaultPostCSSPlugin}}
}

func entries(d *domain.Descriptor) {
	d.AddEntry("head").Add(path.Join(d.Options().Source, "js/head.js"))
}

func resolve(d *domain.Descriptor) {
	opts := d.Options()
	d.Resolve().
		Alias().Set("modernizr$", opts.Modernizr).End().
		Modules().Add(opts.Source).Add(path.Join(opts.Source, "js"))
}

func rules(d *domain.Descriptor) {
	prod := d.Env().IsProduction()
	m := d.Module()

	m.AddRule("modernizr").
		Test(`\.modernizr-autorc$`).
		AddUse("modernizr").
		When(prod, func(s *domain.Step) {
			s.Loader(LoaderModernizr)
		}, func(s *domain.Step) {
			s.Loader(LoaderNull)
		})

	m.Rule("img").When(prod, func(r *domain.Rule) {
		r.Use("img").Loader(LoaderImage)
	}, nil)

	spriteName := "sprites.svg"
	if prod {
		spriteName = "sprites.[hash].svg"
	}
	m.Rule("svg").
		Uses().Delete("url").End().
		When(prod, func(r *domain.Rule) {
			r.Use("img").Loader(LoaderImage)
		}, nil).
		Use("externalSvgSprite").Loader(LoaderSvgSprite).Options(map[string]any{"name": spriteName})

	m.AddRule("jquery").
		Test(`^jquery$`).
		AddUse("jQuery").Loader(LoaderExpose).Options("jQuery").End().
		AddUse("$").Loader(LoaderExpose).Options("$")

	m.AddRule("webfontloader").
		Test(`^webfontloader$`).
		AddUse("webfontloader").Loader(LoaderExpose).Options("WebFont")
}

func plugins(d *domain.Descriptor) {
	d.Plugins().
		When(!d.Options().SPA, func(p *domain.Plugins) {
			p.Delete("html")
		}, nil).
		Delete("copy").
		Plugin("svgSprite").Use(PluginSvgSprite).End().
		Plugin("manifest").Use(PluginManifest)
}

func devProxy(d *domain.Descriptor) {
	env := d.Env()
	d.When(env.IsDevelopment() && env.DevProxy != "", func(d *domain.Descriptor) {
		d.DevServer().Proxy("/", domain.ProxyRule{Target: env.DevProxy, ChangeOrigin: true})
	}, nil)
}

func production(d *domain.Descriptor) {
	d.When(d.Env().IsProduction(), func(d *domain.Descriptor) {
		d.Plugins().
			Plugin("favicons").Use(PluginFavicons, faviconOptions(d.Options())).End().
			Tap("minify", func([]any) []any {
				return []any{map[string]any{
					"removeConsole":  true,
					"removeDebugger": true,
				}}
			}).
			Plugin("optimizeCss").Use(PluginOptimizeCSS)
	}, nil)
}

func faviconOptions(opts domain.Options) map[string]any {
	fav := opts.Favicon
	logo := fav.Logo
	if logo == "" {
		logo = path.Join(opts.Source, DefaultFaviconLogo)
	}
	bg := fav.Background
	if bg == "" {
		bg = DefaultFaviconBg
	}
	out := map[string]any{
		"logo":       logo,
		"background": bg,
	}
	if fav.Title != "" {
		out["title"] = fav.Title
	}
	return out
}
