package domain

// Output holds the scalar output settings.
type Output struct {
	d          *Descriptor
	path       string
	filename   string
	publicPath string
}

// Path sets the output directory.
func (o *Output) Path(p string) *Output {
	if o.d.s.mutable("output path") {
		o.path = p
	}
	return o
}

// Filename sets the output filename template.
func (o *Output) Filename(f string) *Output {
	if o.d.s.mutable("output filename") {
		o.filename = f
	}
	return o
}

// PublicPath sets the URL prefix assets are served from.
func (o *Output) PublicPath(p string) *Output {
	if o.d.s.mutable("output public path") {
		o.publicPath = p
	}
	return o
}

// End returns the owning descriptor.
func (o *Output) End() *Descriptor {
	return o.d
}
