package middleware

import (
	"go.trai.ch/fusionary/internal/core/domain"
	"go.trai.ch/fusionary/internal/engine/pipeline"
)

// Style extraction references.
const (
	LoaderExtract = "extract-css-loader"
	PluginExtract = "extract-css-plugin"
)

// StyleStep is a loader the extracted stylesheet is run through.
type StyleStep struct {
	Name    string
	Loader  string
	Options any
}

// ExtractOptions configures ExtractStyles.
type ExtractOptions struct {
	// Use replaces every step of the style rule after the extract step.
	Use []StyleStep
	// Filename is the output template for extracted stylesheets.
	Filename    string
	AllChunks   bool
	IgnoreOrder bool
}

// ExtractStyles moves stylesheets out of the script bundle into separate files.
// The options are computed per pass so that they can depend on the descriptor.
func ExtractStyles(fn func(d *domain.Descriptor) ExtractOptions) pipeline.Middleware {
	return pipeline.Middleware{Name: "extractStyles", Apply: func(d *domain.Descriptor) {
		opts := fn(d)
		rule := d.Module().Rule("style")
		if rule.Matcher().String() == "" {
			rule.Test(`\.css$`)
		}

		uses := rule.Uses()
		if uses.Has("style") {
			uses.Replace("style", "extract").Loader(LoaderExtract)
		} else {
			rule.Use("extract").Loader(LoaderExtract)
		}
		for _, name := range uses.Names() {
			if name != "extract" {
				uses.Delete(name)
			}
		}
		for _, st := range opts.Use {
			rule.Use(st.Name).Loader(st.Loader).Options(st.Options)
		}

		d.Plugin("extract").Use(PluginExtract, map[string]any{
			"filename":    opts.Filename,
			"allChunks":   opts.AllChunks,
			"ignoreOrder": opts.IgnoreOrder,
		})
	}}
}
