package config

// Configfile represents the structure of fusionary.yaml.
type Configfile struct {
	Version         string         `yaml:"version"`
	Source          string         `yaml:"source"`
	Output          string         `yaml:"output"`
	Entry           string         `yaml:"entry"`
	SetPathDefaults *bool          `yaml:"setPathDefaults"`
	SPA             bool           `yaml:"spa"`
	Favicon         FaviconDTO     `yaml:"favicon"`
	Modernizr       string         `yaml:"modernizr"`
	PostCSS         map[string]any `yaml:"postcss"`
}

// FaviconDTO is the favicon section of fusionary.yaml.
type FaviconDTO struct {
	Logo       string `yaml:"logo"`
	Title      string `yaml:"title"`
	Background string `yaml:"background"`
}
