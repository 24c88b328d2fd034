// Package config provides the kiln.yaml configuration loader.
package config

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"

	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/kiln/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

var _ ports.ConfigLoader = (*Loader)(nil)

// Loader implements ports.ConfigLoader using a YAML file.
type Loader struct {
	Logger ports.Logger
}

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger}
}

// braceGroup finds brace alternations in a glob.
var braceGroup = regexp.MustCompile(`\{[^{}]*\}`)

const maxQuality = 100

// Load resolves the configuration for the project containing cwd.
func (l *Loader) Load(cwd string) (*domain.Config, error) {
	root, err := l.DiscoverRoot(cwd)
	if err != nil {
		return nil, err
	}

	configPath := filepath.Join(root, domain.ConfigFileName)
	if _, statErr := os.Stat(configPath); os.IsNotExist(statErr) {
		return domain.DefaultConfig(root), nil
	}

	var kf Kilnfile
	if err := readAndUnmarshalYAML(configPath, &kf); err != nil {
		return nil, zerr.With(err, "path", configPath)
	}

	cfg, err := l.build(root, &kf)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrConfigInvalid.Error()), "path", configPath)
	}
	return cfg, nil
}

// DiscoverRoot walks up from cwd to the nearest directory holding kiln.yaml.
func (l *Loader) DiscoverRoot(cwd string) (string, error) {
	start, err := filepath.Abs(cwd)
	if err != nil {
		return "", zerr.Wrap(err, domain.ErrFailedToGetRoot.Error())
	}

	currentDir := start
	for {
		if _, err := os.Stat(filepath.Join(currentDir, domain.ConfigFileName)); err == nil {
			return currentDir, nil
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			// Reached root
			return start, nil
		}
		currentDir = parentDir
	}
}

func (l *Loader) build(root string, kf *Kilnfile) (*domain.Config, error) {
	cfg := domain.DefaultConfig(root)

	if kf.Source != "" {
		cfg.Source = path.Clean(filepath.ToSlash(kf.Source))
	}
	if kf.Output != "" {
		cfg.Output = path.Clean(filepath.ToSlash(kf.Output))
	}
	if err := validateOutput(cfg.Output); err != nil {
		return nil, err
	}

	if len(kf.Fonts.Extensions) > 0 {
		cfg.Fonts.Extensions = kf.Fonts.Extensions
	}
	if len(kf.Fonts.Formats) > 0 {
		cfg.Fonts.Formats = kf.Fonts.Formats
	}

	cfg.Registry = rebaseRegistry(cfg.Source, cfg.Output, cfg.Fonts.Extensions)
	if err := l.applyPaths(cfg.Registry, kf.Paths); err != nil {
		return nil, err
	}
	if err := cfg.Registry.Validate(cfg.Output); err != nil {
		return nil, err
	}

	if kf.Styles.Bundle != "" {
		cfg.Styles.Bundle = kf.Styles.Bundle
	}
	if len(kf.Styles.Browsers) > 0 {
		cfg.Styles.Browsers = kf.Styles.Browsers
	}
	if kf.Scripts.Target != "" {
		cfg.Scripts.Target = strings.ToLower(kf.Scripts.Target)
	}

	if err := applyQuality(&cfg.Images.WebPQuality, kf.Images.WebPQuality, "webp_quality"); err != nil {
		return nil, err
	}
	if err := applyQuality(&cfg.Images.JPEGQuality, kf.Images.JPEGQuality, "jpeg_quality"); err != nil {
		return nil, err
	}

	if kf.Server.Port < 0 || kf.Server.Port > 65535 {
		return nil, zerr.With(domain.ErrConfigInvalid, "server.port", kf.Server.Port)
	}
	if kf.Server.Port != 0 {
		cfg.Server.Port = kf.Server.Port
	}
	if kf.Server.StartPath != "" {
		cfg.Server.StartPath = strings.TrimPrefix(filepath.ToSlash(kf.Server.StartPath), "/")
	}
	if kf.Server.Open != nil {
		cfg.Server.Open = *kf.Server.Open
	}

	if kf.Watch.Debounce < 0 {
		return nil, zerr.With(domain.ErrConfigInvalid, "watch.debounce", kf.Watch.Debounce.String())
	}
	if kf.Watch.Debounce > 0 {
		cfg.Watch.Debounce = kf.Watch.Debounce
	}

	return cfg, nil
}

func (l *Loader) applyPaths(r *domain.Registry, paths map[string]PathDTO) error {
	for key, dto := range paths {
		c, err := domain.ParseCategory(key)
		if err != nil {
			return err
		}

		entry, _ := r.Get(c)
		if dto.Src != "" {
			entry.Glob = filepath.ToSlash(dto.Src)
		}
		if dto.Dest != "" {
			entry.Dest = path.Clean(filepath.ToSlash(dto.Dest))
		}
		l.warnBraceWhitespace(c, entry.Glob)
		r.Set(entry)
	}
	return nil
}

// warnBraceWhitespace flags alternatives such as "{ttf, svg}" whose leading
// space means the second extension never matches.
func (l *Loader) warnBraceWhitespace(c domain.Category, glob string) {
	for _, group := range braceGroup.FindAllString(glob, -1) {
		for _, alt := range strings.Split(strings.Trim(group, "{}"), ",") {
			if alt != strings.TrimSpace(alt) {
				l.Logger.Warn(fmt.Sprintf("glob for %s contains whitespace in %s; %q will never match", c, group, alt))
				break
			}
		}
	}
}

// rebaseRegistry returns the default registry moved under the configured
// source and output directories.
func rebaseRegistry(source, output string, fontExtensions []string) *domain.Registry {
	defaults := domain.DefaultRegistry()
	entries := make([]domain.PathEntry, 0, len(domain.Categories()))
	for _, e := range defaults.Entries() {
		e.Glob = rebase(e.Glob, domain.DefaultSourceDir, source)
		e.Dest = rebase(e.Dest, domain.DefaultOutputDir, output)
		if e.Category == domain.CategoryFonts {
			e.Glob = domain.FontGlob(path.Join(source, "fonts"), fontExtensions)
		}
		entries = append(entries, e)
	}
	return domain.NewRegistry(entries...)
}

func rebase(p, from, to string) string {
	if from == to {
		return p
	}
	return path.Join(to, strings.TrimPrefix(p, from+"/"))
}

func validateOutput(output string) error {
	if output == "." || output == ".." || strings.HasPrefix(output, "../") || path.IsAbs(output) {
		return zerr.With(domain.ErrOutputPathOutsideRoot, "output", output)
	}
	return nil
}

func applyQuality(dst *int, value int, field string) error {
	if value == 0 {
		return nil
	}
	if value < 1 || value > maxQuality {
		return zerr.With(domain.ErrConfigInvalid, "images."+field, value)
	}
	*dst = value
	return nil
}

// readAndUnmarshalYAML reads a YAML file and unmarshals it into the target struct.
func readAndUnmarshalYAML[T any](configPath string, target *T) error {
	// #nosec G304 -- configPath is built from the discovered root
	configFile, err := os.ReadFile(configPath)
	if err != nil {
		return zerr.Wrap(err, domain.ErrConfigReadFailed.Error())
	}

	if parseErr := yaml.Unmarshal(configFile, target); parseErr != nil {
		return zerr.Wrap(parseErr, domain.ErrConfigParseFailed.Error())
	}

	return nil
}
