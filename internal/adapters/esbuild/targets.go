// Package esbuild adapts the esbuild transform API to the script and style ports.
package esbuild

import (
	"strings"

	"github.com/evanw/esbuild/pkg/api"
	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/zerr"
)

var languageTargets = map[string]api.Target{
	"es5":    api.ES5,
	"es2015": api.ES2015,
	"es6":    api.ES2015,
	"es2016": api.ES2016,
	"es2017": api.ES2017,
	"es2018": api.ES2018,
	"es2019": api.ES2019,
	"es2020": api.ES2020,
	"es2021": api.ES2021,
	"es2022": api.ES2022,
	"esnext": api.ESNext,
}

var engineNames = map[string]api.EngineName{
	"chrome":  api.EngineChrome,
	"deno":    api.EngineDeno,
	"edge":    api.EngineEdge,
	"firefox": api.EngineFirefox,
	"ios":     api.EngineIOS,
	"node":    api.EngineNode,
	"opera":   api.EngineOpera,
	"safari":  api.EngineSafari,
}

// ParseTarget maps a language level such as "es2015" to an esbuild target.
// An empty string selects es2015.
func ParseTarget(s string) (api.Target, error) {
	if s == "" {
		return api.ES2015, nil
	}
	t, ok := languageTargets[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return api.DefaultTarget, zerr.With(domain.ErrUnsupportedTarget, "target", s)
	}
	return t, nil
}

// ParseEngines maps browser targets such as "safari15.6" to esbuild engines.
func ParseEngines(browsers []string) ([]api.Engine, error) {
	engines := make([]api.Engine, 0, len(browsers))
	for _, b := range browsers {
		b = strings.ToLower(strings.TrimSpace(b))
		split := strings.IndexFunc(b, func(r rune) bool { return r >= '0' && r <= '9' })
		if split <= 0 {
			return nil, zerr.With(domain.ErrUnsupportedTarget, "browser", b)
		}
		name, ok := engineNames[b[:split]]
		if !ok {
			return nil, zerr.With(domain.ErrUnsupportedTarget, "browser", b)
		}
		engines = append(engines, api.Engine{Name: name, Version: b[split:]})
	}
	return engines, nil
}

// syntaxError converts the first esbuild error into a SyntaxError.
func syntaxError(rel string, msgs []api.Message) error {
	m := msgs[0]
	e := &domain.SyntaxError{File: rel, Message: m.Text}
	if m.Location != nil {
		if m.Location.File != "" {
			e.File = m.Location.File
		}
		e.Line = m.Location.Line
		e.Column = m.Location.Column + 1
	}
	return e
}
