package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/kiln/internal/core/domain"
)

func TestNewPipelineGraph(t *testing.T) {
	g, err := domain.NewPipelineGraph(domain.DefaultRegistry())
	require.NoError(t, err)
	assert.Equal(t, 8, g.TaskCount())

	clean := domain.NewInternedString(domain.TaskClean)
	for _, c := range domain.Categories() {
		tk, ok := g.GetTask(domain.NewInternedString(c.String()))
		require.True(t, ok, c)
		assert.Equal(t, domain.KindContent, tk.Kind)
		assert.Equal(t, c, tk.Category)
		assert.Equal(t, c, tk.Paths.Category)
		assert.Equal(t, []domain.InternedString{clean}, tk.Dependencies)
	}

	for _, name := range []string{domain.TaskWatch, domain.TaskServe} {
		tk, ok := g.GetTask(domain.NewInternedString(name))
		require.True(t, ok)
		assert.True(t, tk.Resident)
		assert.Len(t, tk.Dependencies, len(domain.Categories()))
	}

	var order []string
	for tk := range g.Walk() {
		order = append(order, tk.Name.String())
	}
	assert.Equal(t, domain.TaskClean, order[0])
}

func TestTargetTasks(t *testing.T) {
	build, err := domain.TargetTasks(domain.TargetBuild)
	require.NoError(t, err)
	assert.Equal(t, []string{"styles", "scripts", "markup", "images", "fonts"}, build)

	dev, err := domain.TargetTasks(domain.TargetDev)
	require.NoError(t, err)
	assert.Equal(t, []string{"watch", "serve"}, dev)

	_, err = domain.TargetTasks("deploy")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown target")
}

func TestMode(t *testing.T) {
	assert.Equal(t, domain.ModeProduction, domain.ModeFromFlag(true))
	assert.Equal(t, domain.ModeDevelopment, domain.ModeFromFlag(false))
	assert.Equal(t, domain.TargetBuild, domain.ModeProduction.Target())
	assert.Equal(t, domain.TargetDev, domain.ModeDevelopment.Target())
	assert.Equal(t, "production", domain.ModeProduction.String())
}

func TestRegistry_Validate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(r *domain.Registry)
		errContains string
	}{
		{
			name:   "defaults are valid",
			mutate: func(*domain.Registry) {},
		},
		{
			name: "empty glob",
			mutate: func(r *domain.Registry) {
				r.Set(domain.PathEntry{Category: domain.CategoryFonts, Glob: " ", Dest: "dist/fonts"})
			},
			errContains: "path entry needs both src and dest",
		},
		{
			name: "destination outside output",
			mutate: func(r *domain.Registry) {
				r.Set(domain.PathEntry{Category: domain.CategoryStyles, Glob: "src/**/*.scss", Dest: "public/css"})
			},
			errContains: "inside the output directory",
		},
		{
			name: "destination equals output",
			mutate: func(r *domain.Registry) {
				r.Set(domain.PathEntry{Category: domain.CategoryStyles, Glob: "src/**/*.scss", Dest: "dist"})
			},
			errContains: "inside the output directory",
		},
		{
			name: "source glob under output",
			mutate: func(r *domain.Registry) {
				r.Set(domain.PathEntry{Category: domain.CategoryScripts, Glob: "dist/js/**/*.js", Dest: "dist/scripts"})
			},
			errContains: "overlaps the output directory",
		},
		{
			name: "source glob at project root",
			mutate: func(r *domain.Registry) {
				r.Set(domain.PathEntry{Category: domain.CategoryMarkup, Glob: "**/*.html", Dest: "dist/html"})
			},
			errContains: "overlaps the output directory",
		},
		{
			name: "shared destination",
			mutate: func(r *domain.Registry) {
				r.Set(domain.PathEntry{Category: domain.CategoryScripts, Glob: "src/**/*.js", Dest: "dist/css"})
			},
			errContains: "more than one category",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := domain.DefaultRegistry()
			tt.mutate(r)

			err := r.Validate("dist")
			if tt.errContains == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errContains)
		})
	}
}

func TestRegistry_ValidateMissingEntry(t *testing.T) {
	r := domain.NewRegistry(domain.PathEntry{Category: domain.CategoryStyles, Glob: "a", Dest: "dist/css"})
	err := r.Validate("dist")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing path entry")
}

func TestRegistry_ValidateOutputContainsSources(t *testing.T) {
	r := domain.NewRegistry(
		domain.PathEntry{Category: domain.CategoryStyles, Glob: "src/styles/**/*.scss", Dest: "src/css"},
		domain.PathEntry{Category: domain.CategoryScripts, Glob: "src/scripts/**/*.js", Dest: "src/js"},
		domain.PathEntry{Category: domain.CategoryMarkup, Glob: "src/html/**/*.html", Dest: "src/html"},
		domain.PathEntry{Category: domain.CategoryImages, Glob: "src/img/**/*.png", Dest: "src/img"},
		domain.PathEntry{Category: domain.CategoryFonts, Glob: "src/fonts/**/*.ttf", Dest: "src/fonts"},
	)

	err := r.Validate("src")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "overlaps the output directory")
}

func TestGlobBase(t *testing.T) {
	assert.Equal(t, "src/styles", domain.GlobBase("src/styles/**/*.scss"))
	assert.Equal(t, "src/img", domain.GlobBase("src/img/*.{png,jpg}"))
	assert.Equal(t, ".", domain.GlobBase("**/*.js"))
	assert.Equal(t, "src", domain.GlobBase("src/main.scss"))
}

func TestFontGlob(t *testing.T) {
	assert.Equal(t, "src/fonts/**/*.{ttf,woff,woff2,eot}", domain.FontGlob("src/fonts", []string{"ttf", " woff", ".woff2", "eot"}))
	assert.Equal(t, "fonts/**/*.otf", domain.FontGlob("fonts", []string{"otf"}))
}

func TestParseCategory(t *testing.T) {
	c, err := domain.ParseCategory("markup")
	require.NoError(t, err)
	assert.Equal(t, domain.CategoryMarkup, c)

	_, err = domain.ParseCategory("videos")
	require.Error(t, err)

	assert.True(t, domain.CategoryStyles.Broadcasts())
	assert.False(t, domain.CategoryImages.Broadcasts())
	assert.False(t, domain.CategoryFonts.Broadcasts())
}

func TestLocate(t *testing.T) {
	origins := []domain.Origin{
		{File: "a.scss", Line: 1},
		{File: "b.scss", Line: 5},
	}

	file, line := domain.Locate(origins, 3)
	assert.Equal(t, "a.scss", file)
	assert.Equal(t, 3, line)

	file, line = domain.Locate(origins, 7)
	assert.Equal(t, "b.scss", file)
	assert.Equal(t, 3, line)
}

func TestAsset_WithExt(t *testing.T) {
	a := domain.Asset{Rel: "photos/cat.PNG"}
	assert.Equal(t, ".png", a.Ext())
	assert.Equal(t, "photos/cat.webp", a.WithExt(".webp").Rel)
	assert.Equal(t, "photos/cat.PNG", a.Rel)
}

func TestSyntaxError(t *testing.T) {
	assert.Equal(t, "a.js:3:7: unexpected }", (&domain.SyntaxError{File: "a.js", Line: 3, Column: 7, Message: "unexpected }"}).Error())
	assert.Equal(t, "a.js:3: bad", (&domain.SyntaxError{File: "a.js", Line: 3, Message: "bad"}).Error())
	assert.Equal(t, "a.js: bad", (&domain.SyntaxError{File: "a.js", Message: "bad"}).Error())
}

func TestConfig_Abs(t *testing.T) {
	cfg := domain.DefaultConfig("/project")
	assert.Equal(t, "/project/dist", cfg.OutputDir())
	assert.Equal(t, "/project/dist/css", cfg.Abs("dist/css"))
	assert.Equal(t, "/elsewhere", cfg.Abs("/elsewhere"))
}
