// Package middleware provides the shared middlewares a preset composes.
// Each one only registers named nodes on the descriptor; loaders and plugins
// are opaque references resolved by the bundler adapter.
package middleware

import (
	"path"

	"go.trai.ch/fusionary/internal/core/domain"
	"go.trai.ch/fusionary/internal/engine/pipeline"
)

// Loader and plugin references registered by Web.
const (
	LoaderBabel = "babel-loader"
	LoaderHTML  = "html-loader"
	LoaderStyle = "style-loader"
	LoaderCSS   = "css-loader"
	LoaderURL   = "url-loader"
	LoaderFile  = "file-loader"

	PluginDefine   = "define-plugin"
	PluginHTML     = "html-template-plugin"
	PluginCopy     = "copy-plugin"
	PluginClean    = "clean-plugin"
	PluginMinify   = "minify-plugin"
	PluginHot      = "hot-module-replacement-plugin"
	DefaultDevHost = "localhost"
	DefaultDevPort = 5000
)

const (
	imgTest  = `\.(png|jpg|jpeg|gif|webp)(\?v=\d+\.\d+\.\d+)?$`
	svgTest  = `\.svg(\?v=\d+\.\d+\.\d+)?$`
	fontTest = `\.(eot|ttf|woff|woff2)(\?v=\d+\.\d+\.\d+)?$`
)

// Web registers the base browser application configuration.
func Web() pipeline.Middleware {
	return pipeline.Middleware{Name: "web", Apply: web}
}

func web(d *domain.Descriptor) {
	opts := d.Options()
	env := d.Env()
	prod := env.IsProduction()

	d.Entry("index").Add(path.Join(opts.Source, opts.Entry))

	d.Output().
		Path(opts.Output).
		Filename(hashed("[name]", ".js", prod)).
		PublicPath("./")

	d.Resolve().
		Modules().Add("node_modules").End().
		Extensions().Add(".js", ".jsx", ".mjs", ".json")

	urlOptions := map[string]any{"limit": 8192}
	d.Module().
		Rule("compile").
		Test(`\.(mjs|jsx|js)$`).
		Include(opts.Source).
		Use("babel").Loader(LoaderBabel).Options(map[string]any{"cacheDirectory": true}).End().
		End().
		Rule("html").
		Test(`\.html$`).
		Use("html").Loader(LoaderHTML).End().
		End().
		Rule("style").
		Test(`\.css$`).
		Use("style").Loader(LoaderStyle).End().
		Use("css").Loader(LoaderCSS).Options(map[string]any{"importLoaders": 0}).End().
		End().
		Rule("img").
		Test(imgTest).
		Use("url").Loader(LoaderURL).Options(urlOptions).End().
		End().
		Rule("svg").
		Test(svgTest).
		Use("url").Loader(LoaderURL).Options(urlOptions).End().
		End().
		Rule("font").
		Test(fontTest).
		Use("file").Loader(LoaderFile)

	define := map[string]any{"process.env.NODE_ENV": `"` + string(env.Mode) + `"`}
	d.Plugins().
		Plugin("env").Use(PluginDefine, define).End().
		Plugin("html").Use(PluginHTML, map[string]any{"inject": true}).End().
		Plugin("copy").Use(PluginCopy).End().
		When(prod, func(p *domain.Plugins) {
			p.Plugin("clean").Use(PluginClean, []any{opts.Output})
			p.Plugin("minify").Use(PluginMinify, map[string]any{})
		}, nil)

	d.When(env.IsDevelopment(), func(d *domain.Descriptor) {
		d.Plugin("hot").Use(PluginHot)
		d.DevServer().Host(DefaultDevHost).Port(DefaultDevPort).Hot(true)
	}, nil)
}

// hashed returns name+ext, with a chunk hash between them in production.
func hashed(name, ext string, prod bool) string {
	if prod {
		return name + ".[chunkhash]" + ext
	}
	return name + ext
}
