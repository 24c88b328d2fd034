package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/kiln/internal/adapters/config"
	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/kiln/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func createFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, domain.DirPerm))
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), domain.FilePerm))
}

func TestLoader_Load_Defaults(t *testing.T) {
	ctrl := gomock.NewController(t)
	loader := config.NewLoader(mocks.NewMockLogger(ctrl))

	root := t.TempDir()
	cfg, err := loader.Load(root)
	require.NoError(t, err)

	assert.Equal(t, root, cfg.Root)
	assert.Equal(t, "dist", cfg.Output)
	assert.Equal(t, domain.DefaultRegistry().Entries(), cfg.Registry.Entries())
	assert.Equal(t, 3000, cfg.Server.Port)
	assert.True(t, cfg.Server.Open)
	assert.Equal(t, 100*time.Millisecond, cfg.Watch.Debounce)
}

func TestLoader_Load_Overrides(t *testing.T) {
	ctrl := gomock.NewController(t)
	loader := config.NewLoader(mocks.NewMockLogger(ctrl))

	root := t.TempDir()
	createFile(t, root, domain.ConfigFileName, `
source: assets
output: public
paths:
  scripts: { src: "assets/js/**/*.js", dest: "public/scripts" }
styles:
  bundle: app.scss
  browsers: [chrome120]
scripts:
  target: ES2017
images:
  webp_quality: 80
fonts:
  extensions: [otf]
  formats: [woff]
server:
  port: 8080
  start_path: /index.html
  open: false
watch:
  debounce: 250ms
`)

	cfg, err := loader.Load(root)
	require.NoError(t, err)

	styles, _ := cfg.Registry.Get(domain.CategoryStyles)
	assert.Equal(t, "assets/styles/**/*.scss", styles.Glob)
	assert.Equal(t, "public/css", styles.Dest)

	scripts, _ := cfg.Registry.Get(domain.CategoryScripts)
	assert.Equal(t, "assets/js/**/*.js", scripts.Glob)
	assert.Equal(t, "public/scripts", scripts.Dest)

	fonts, _ := cfg.Registry.Get(domain.CategoryFonts)
	assert.Equal(t, "assets/fonts/**/*.otf", fonts.Glob)

	assert.Equal(t, "public", cfg.Output)
	assert.Equal(t, "app.scss", cfg.Styles.Bundle)
	assert.Equal(t, []string{"chrome120"}, cfg.Styles.Browsers)
	assert.Equal(t, "es2017", cfg.Scripts.Target)
	assert.Equal(t, 80, cfg.Images.WebPQuality)
	assert.Equal(t, domain.DefaultQuality, cfg.Images.JPEGQuality)
	assert.Equal(t, []string{"woff"}, cfg.Fonts.Formats)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "index.html", cfg.Server.StartPath)
	assert.False(t, cfg.Server.Open)
	assert.Equal(t, 250*time.Millisecond, cfg.Watch.Debounce)
}

func TestLoader_Load_Discovery(t *testing.T) {
	ctrl := gomock.NewController(t)
	loader := config.NewLoader(mocks.NewMockLogger(ctrl))

	root := t.TempDir()
	createFile(t, root, domain.ConfigFileName, "server: { port: 4000 }\n")
	nested := filepath.Join(root, "src", "styles")
	require.NoError(t, os.MkdirAll(nested, domain.DirPerm))

	discovered, err := loader.DiscoverRoot(nested)
	require.NoError(t, err)
	assert.Equal(t, root, discovered)

	cfg, err := loader.Load(nested)
	require.NoError(t, err)
	assert.Equal(t, root, cfg.Root)
	assert.Equal(t, 4000, cfg.Server.Port)
}

func TestLoader_DiscoverRoot_NoConfig(t *testing.T) {
	ctrl := gomock.NewController(t)
	loader := config.NewLoader(mocks.NewMockLogger(ctrl))

	dir := t.TempDir()
	got, err := loader.DiscoverRoot(dir)
	require.NoError(t, err)
	assert.Equal(t, dir, got)
}

func TestLoader_Load_WarnsOnBraceWhitespace(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Warn(gomock.Any()).Do(func(msg string) {
		assert.Contains(t, msg, "fonts")
		assert.Contains(t, msg, `" svg"`)
	}).Times(1)

	root := t.TempDir()
	createFile(t, root, domain.ConfigFileName, `
paths:
  fonts: { src: "src/fonts/**/*.{ttf,woff,eot, svg}", dest: "dist/fonts" }
`)

	_, err := config.NewLoader(mockLogger).Load(root)
	require.NoError(t, err)
}

func TestLoader_Load_Errors(t *testing.T) {
	tests := []struct {
		name        string
		content     string
		errContains string
	}{
		{
			name:        "malformed yaml",
			content:     "paths: [unclosed",
			errContains: "failed to parse config file",
		},
		{
			name:        "unknown category",
			content:     "paths:\n  videos: { src: \"src/v/*.mp4\", dest: \"dist/v\" }\n",
			errContains: "unknown asset category",
		},
		{
			name:        "destination outside output",
			content:     "paths:\n  styles: { dest: \"public/css\" }\n",
			errContains: "destination must be inside the output directory",
		},
		{
			name:        "output outside root",
			content:     "output: ../dist\n",
			errContains: "output path is outside project root",
		},
		{
			name:        "output is root",
			content:     "output: .\n",
			errContains: "output path is outside project root",
		},
		{
			name:        "output is the source directory",
			content:     "output: src\n",
			errContains: "source glob overlaps the output directory",
		},
		{
			name:        "source glob under output",
			content:     "paths:\n  scripts: { src: \"dist/js/**/*.js\", dest: \"dist/scripts\" }\n",
			errContains: "source glob overlaps the output directory",
		},
		{
			name:        "quality out of range",
			content:     "images: { webp_quality: 120 }\n",
			errContains: "invalid configuration",
		},
		{
			name:        "negative port",
			content:     "server: { port: -1 }\n",
			errContains: "invalid configuration",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			mockLogger := mocks.NewMockLogger(ctrl)
			mockLogger.EXPECT().Warn(gomock.Any()).AnyTimes()

			root := t.TempDir()
			createFile(t, root, domain.ConfigFileName, tt.content)

			_, err := config.NewLoader(mockLogger).Load(root)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errContains)
		})
	}
}
