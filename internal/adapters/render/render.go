// Package render encodes finalized descriptors for inspection.
package render

import (
	"encoding/json"
	"io"
	"strings"

	"go.trai.ch/fusionary/internal/core/domain"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// Supported formats.
const (
	FormatYAML = "yaml"
	FormatJSON = "json"
)

// Renderer implements ports.Renderer.
type Renderer struct{}

// New creates a new Renderer.
func New() *Renderer {
	return &Renderer{}
}

// Render encodes snap to w in the given format.
func (r *Renderer) Render(w io.Writer, snap *domain.Snapshot, format string) error {
	var err error
	switch f := strings.ToLower(strings.TrimSpace(format)); f {
	case FormatYAML, "yml", "":
		err = renderYAML(w, snap)
	case FormatJSON:
		err = renderJSON(w, snap)
	default:
		return zerr.With(zerr.Wrap(domain.ErrUnknownFormat, "cannot render descriptor"), "format", format)
	}
	if err != nil {
		return domain.Because(domain.ErrRenderFailed, err)
	}
	return nil
}

func renderYAML(w io.Writer, snap *domain.Snapshot) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(snap); err != nil {
		return err
	}
	return enc.Close()
}

func renderJSON(w io.Writer, snap *domain.Snapshot) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(snap)
}
