package config

import "time"

// Kilnfile is the on-disk shape of kiln.yaml. Every field is optional.
type Kilnfile struct {
	Source  string             `yaml:"source"`
	Output  string             `yaml:"output"`
	Paths   map[string]PathDTO `yaml:"paths"`
	Styles  StylesDTO          `yaml:"styles"`
	Scripts ScriptsDTO         `yaml:"scripts"`
	Images  ImagesDTO          `yaml:"images"`
	Fonts   FontsDTO           `yaml:"fonts"`
	Server  ServerDTO          `yaml:"server"`
	Watch   WatchDTO           `yaml:"watch"`
}

// PathDTO overrides the source glob and destination of one category.
type PathDTO struct {
	Src  string `yaml:"src"`
	Dest string `yaml:"dest"`
}

// StylesDTO configures the style pipeline.
type StylesDTO struct {
	Bundle   string   `yaml:"bundle"`
	Browsers []string `yaml:"browsers"`
}

// ScriptsDTO configures the script pipeline.
type ScriptsDTO struct {
	Target string `yaml:"target"`
}

// ImagesDTO configures the image pipeline.
type ImagesDTO struct {
	WebPQuality int `yaml:"webp_quality"`
	JPEGQuality int `yaml:"jpeg_quality"`
}

// FontsDTO configures the font pipeline.
type FontsDTO struct {
	Extensions []string `yaml:"extensions"`
	Formats    []string `yaml:"formats"`
}

// ServerDTO configures the development server.
type ServerDTO struct {
	Port      int    `yaml:"port"`
	StartPath string `yaml:"start_path"`
	Open      *bool  `yaml:"open"`
}

// WatchDTO configures the watcher.
type WatchDTO struct {
	Debounce time.Duration `yaml:"debounce"`
}
