package domain

import (
	"path/filepath"
	"time"
)

// Config is the resolved project configuration.
type Config struct {
	// Root is the absolute project root. All registry paths are relative to it.
	Root string
	// Source is the conventional source directory, relative to Root.
	Source string
	// Output is the output root removed by the cleaner, relative to Root.
	Output string

	Registry *Registry

	Styles  StylesConfig
	Scripts ScriptsConfig
	Images  ImagesConfig
	Fonts   FontsConfig
	Server  ServerConfig
	Watch   WatchConfig
}

// StylesConfig configures the style pipeline.
type StylesConfig struct {
	// Bundle is the name of the merged compilation unit. The output file uses
	// the same stem with a .css extension.
	Bundle string
	// Browsers lists the engine targets used for vendor prefixing, e.g. "safari15".
	Browsers []string
}

// ScriptsConfig configures the script pipeline.
type ScriptsConfig struct {
	// Target is the language level scripts are transpiled to, e.g. "es2015".
	Target string
}

// ImagesConfig configures the image pipeline.
type ImagesConfig struct {
	WebPQuality int
	JPEGQuality int
}

// FontsConfig configures the font pipeline.
type FontsConfig struct {
	// Extensions builds the default font glob when no explicit glob is given.
	Extensions []string
	// Formats lists the output formats generated for each source font.
	Formats []string
}

// ServerConfig configures the development server.
type ServerConfig struct {
	Port      int
	StartPath string
	Open      bool
}

// WatchConfig configures the watcher.
type WatchConfig struct {
	Debounce time.Duration
}

// Default configuration values.
const (
	DefaultSourceDir     = "src"
	DefaultOutputDir     = "dist"
	DefaultStyleBundle   = "main.scss"
	DefaultScriptTarget  = "es2015"
	DefaultQuality       = 75
	DefaultServerPort    = 3000
	DefaultStartPath     = "html/index.html"
	DefaultWatchDebounce = 100 * time.Millisecond
)

// DefaultBrowsers returns the default vendor-prefix engine targets.
func DefaultBrowsers() []string {
	return []string{"chrome109", "edge109", "firefox115", "safari15.6", "ios15.6"}
}

// DefaultFontExtensions returns the source extensions matched by the default font glob.
func DefaultFontExtensions() []string {
	return []string{"ttf", "woff", "woff2", "eot"}
}

// DefaultFontFormats returns the formats generated for each source font.
func DefaultFontFormats() []string {
	return []string{"ttf", "woff"}
}

// DefaultConfig returns the configuration used when no config file exists.
func DefaultConfig(root string) *Config {
	return &Config{
		Root:     root,
		Source:   DefaultSourceDir,
		Output:   DefaultOutputDir,
		Registry: DefaultRegistry(),
		Styles: StylesConfig{
			Bundle:   DefaultStyleBundle,
			Browsers: DefaultBrowsers(),
		},
		Scripts: ScriptsConfig{Target: DefaultScriptTarget},
		Images: ImagesConfig{
			WebPQuality: DefaultQuality,
			JPEGQuality: DefaultQuality,
		},
		Fonts: FontsConfig{
			Extensions: DefaultFontExtensions(),
			Formats:    DefaultFontFormats(),
		},
		Server: ServerConfig{
			Port:      DefaultServerPort,
			StartPath: DefaultStartPath,
			Open:      true,
		},
		Watch: WatchConfig{Debounce: DefaultWatchDebounce},
	}
}

// Abs resolves a root-relative slash path to an absolute filesystem path.
func (c *Config) Abs(rel string) string {
	if filepath.IsAbs(rel) {
		return rel
	}
	return filepath.Join(c.Root, filepath.FromSlash(rel))
}

// OutputDir returns the absolute output root.
func (c *Config) OutputDir() string {
	return c.Abs(c.Output)
}
