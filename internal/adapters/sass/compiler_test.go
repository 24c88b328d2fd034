package sass_test

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/bep/godartsass/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/kiln/internal/adapters/sass"
	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/kiln/internal/core/ports"
	"go.trai.ch/kiln/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func sassError(offset, column int, url, msg string) godartsass.SassError {
	var e godartsass.SassError
	e.Message = msg
	e.Span.Start.Offset = offset
	e.Span.Start.Column = column
	e.Span.Url = url
	return e
}

func TestLocate_MergedUnit(t *testing.T) {
	unit := domain.Asset{
		Rel:      "main.scss",
		Contents: []byte("a { color: red; }\n\nb { color: $missing; }\n"),
		Origins: []domain.Origin{
			{File: "src/styles/a.scss", Line: 1},
			{File: "src/styles/b.scss", Line: 3},
		},
	}
	offset := len("a { color: red; }\n\nb { color: ")
	unitURL := sass.FileURLExported("/project/src/styles/main.scss")

	err := sass.LocateExported(unit, unitURL, sassError(offset, 11, unitURL, "Undefined variable."))

	var syntaxErr *domain.SyntaxError
	require.ErrorAs(t, err, &syntaxErr)
	assert.Equal(t, "src/styles/b.scss", syntaxErr.File)
	assert.Equal(t, 1, syntaxErr.Line)
	assert.Equal(t, 12, syntaxErr.Column)
	assert.Equal(t, "Undefined variable.", syntaxErr.Message)
}

func TestLocate_ImportedFile(t *testing.T) {
	dir := t.TempDir()
	partial := filepath.Join(dir, "_vars.scss")
	require.NoError(t, os.WriteFile(partial, []byte("$a: 1;\n$b: ;\n"), 0o600))

	err := sass.LocateExported(domain.Asset{Rel: "main.scss"}, "file:///x/main.scss",
		sassError(len("$a: 1;\n$b: "), 4, sass.FileURLExported(partial), "Expected expression."))

	var syntaxErr *domain.SyntaxError
	require.ErrorAs(t, err, &syntaxErr)
	assert.Equal(t, partial, syntaxErr.File)
	assert.Equal(t, 2, syntaxErr.Line)
}

func TestFileURL(t *testing.T) {
	assert.Equal(t, "file:///project/src/main.scss", sass.FileURLExported("/project/src/main.scss"))
	assert.Empty(t, sass.FileURLExported(""))
}

func TestCompiler_StartFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := sass.NewCompiler(mocks.NewMockLogger(ctrl), filepath.Join(t.TempDir(), "no-such-sass"))

	_, err := c.Compile(context.Background(), domain.Asset{Rel: "main.scss"}, ports.StyleOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to start sass compiler")
	require.NoError(t, c.Close())
}

func TestCompiler_CancelledContext(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := sass.NewCompiler(mocks.NewMockLogger(ctrl), "")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := c.Compile(ctx, domain.Asset{}, ports.StyleOptions{})
	require.True(t, errors.Is(err, context.Canceled))
}

// The remaining tests need a Dart Sass binary.
func requireSass(t *testing.T) string {
	t.Helper()
	if bin := os.Getenv(sass.BinaryEnv); bin != "" {
		return bin
	}
	bin, err := exec.LookPath("sass")
	if err != nil {
		t.Skip("dart sass not installed")
	}
	return bin
}

func TestCompiler_Compile(t *testing.T) {
	bin := requireSass(t)
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Warn(gomock.Any()).AnyTimes()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "_vars.scss"), []byte("$brand: #e8590c;\n"), 0o600))

	c := sass.NewCompiler(mockLogger, bin)
	defer func() { _ = c.Close() }()

	unit := domain.Asset{
		Source:   filepath.Join(dir, "main.scss"),
		Rel:      "main.scss",
		Contents: []byte("@use 'vars';\n.btn { color: vars.$brand; }\n"),
	}
	out, err := c.Compile(context.Background(), unit, ports.StyleOptions{IncludePaths: []string{dir}, SourceMap: true})
	require.NoError(t, err)

	assert.Equal(t, "main.css", out.Rel)
	assert.Contains(t, string(out.Contents), ".btn")
	assert.Contains(t, string(out.Contents), "#e8590c")
	assert.NotEmpty(t, out.SourceMap)
}

func TestCompiler_SyntaxError(t *testing.T) {
	bin := requireSass(t)
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Warn(gomock.Any()).AnyTimes()

	dir := t.TempDir()
	c := sass.NewCompiler(mockLogger, bin)
	defer func() { _ = c.Close() }()

	unit := domain.Asset{
		Source:   filepath.Join(dir, "main.scss"),
		Rel:      "main.scss",
		Contents: []byte(".a { color: red; }\n.b { color: ; }\n"),
		Origins: []domain.Origin{
			{File: "src/styles/a.scss", Line: 1},
			{File: "src/styles/b.scss", Line: 2},
		},
	}
	_, err := c.Compile(context.Background(), unit, ports.StyleOptions{})

	var syntaxErr *domain.SyntaxError
	require.ErrorAs(t, err, &syntaxErr)
	assert.Equal(t, "src/styles/b.scss", syntaxErr.File)
	assert.Equal(t, 1, syntaxErr.Line)
}
