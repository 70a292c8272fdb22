package middleware

import (
	"go.trai.ch/fusionary/internal/core/domain"
	"go.trai.ch/fusionary/internal/engine/pipeline"
)

// Lint references.
const (
	LoaderESLint    = "eslint-loader"
	PluginStylelint = "stylelint-plugin"
)

// Stylelint registers the stylesheet linter plugin over the source directory.
func Stylelint() pipeline.Middleware {
	return pipeline.Middleware{Name: "stylelint", Apply: func(d *domain.Descriptor) {
		d.Plugins().Add("stylelint").Use(PluginStylelint, map[string]any{
			"context":     d.Options().Source,
			"files":       "**/*.css",
			"failOnError": d.Env().IsProduction(),
		})
	}}
}

// ESLint registers a lint rule that runs ahead of compilation.
func ESLint() pipeline.Middleware {
	return pipeline.Middleware{Name: "eslint", Apply: func(d *domain.Descriptor) {
		prod := d.Env().IsProduction()
		lintOptions := map[string]any{
			"cache":       true,
			"emitWarning": !prod,
			"failOnError": prod,
		}

		d.Module().AddRule("lint").
			Test(`\.(mjs|jsx|js)$`).
			Include(d.Options().Source).
			AddUse("eslint").Loader(LoaderESLint).Options(lintOptions)

		if d.Module().HasRule("compile") {
			d.Module().Before("lint", "compile")
		}
	}}
}
