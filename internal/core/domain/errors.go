package domain

import (
	"fmt"

	"go.trai.ch/zerr"
)

var (
	// ErrTaskAlreadyExists is returned when attempting to add a task with a name that already exists.
	ErrTaskAlreadyExists = zerr.New("task already exists")

	// ErrMissingDependency is returned when a task references a dependency that doesn't exist in the graph.
	ErrMissingDependency = zerr.New("missing dependency")

	// ErrCycleDetected is returned when a cycle is detected in the task dependency graph.
	ErrCycleDetected = zerr.New("cycle detected")

	// ErrTaskNotFound is returned when a requested task is not found in the graph.
	ErrTaskNotFound = zerr.New("task not found")

	// ErrUnknownTarget is returned when a target other than build or dev is requested.
	ErrUnknownTarget = zerr.New("unknown target")

	// ErrUnknownCategory is returned when a configuration key names no known category.
	ErrUnknownCategory = zerr.New("unknown asset category")

	// ErrUnknownTaskKind is returned when the runner is handed a task it cannot execute.
	ErrUnknownTaskKind = zerr.New("unknown task kind")

	// ErrMissingPathEntry is returned when a category has no source glob and destination.
	ErrMissingPathEntry = zerr.New("missing path entry")

	// ErrIncompletePathEntry is returned when a path entry has an empty glob or destination.
	ErrIncompletePathEntry = zerr.New("path entry needs both src and dest")

	// ErrDestOutsideOutput is returned when a destination is not strictly inside the output root.
	ErrDestOutsideOutput = zerr.New("destination must be inside the output directory")

	// ErrSourceOverlapsOutput is returned when a source glob and the output root contain one another.
	ErrSourceOverlapsOutput = zerr.New("source glob overlaps the output directory")

	// ErrDuplicateDest is returned when two categories share a destination.
	ErrDuplicateDest = zerr.New("destination used by more than one category")

	// ErrOutputPathOutsideRoot is returned when the output root is outside the project root.
	ErrOutputPathOutsideRoot = zerr.New("output path is outside project root")

	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrConfigInvalid is returned when the config file parses but describes an unusable pipeline.
	ErrConfigInvalid = zerr.New("invalid configuration")

	// ErrBuildExecutionFailed is returned when the build execution fails.
	ErrBuildExecutionFailed = zerr.New("build execution failed")

	// ErrTaskExecutionFailed is returned when a task execution fails.
	ErrTaskExecutionFailed = zerr.New("task execution failed")

	// ErrFailedToGetRoot is returned when the project root path cannot be determined.
	ErrFailedToGetRoot = zerr.New("failed to get absolute path of project root")

	// ErrFailedToCleanOutput is returned when removing the output root fails.
	ErrFailedToCleanOutput = zerr.New("failed to clean output directory")

	// ErrSourceResolutionFailed is returned when a source glob cannot be expanded.
	ErrSourceResolutionFailed = zerr.New("failed to resolve sources")

	// ErrInvalidGlob is returned when a source glob does not compile.
	ErrInvalidGlob = zerr.New("invalid source glob")

	// ErrFileOpenFailed is returned when a file cannot be opened.
	ErrFileOpenFailed = zerr.New("failed to open file")

	// ErrFileReadFailed is returned when a source file cannot be read.
	ErrFileReadFailed = zerr.New("failed to read file")

	// ErrFileWriteFailed is returned when an output file cannot be written.
	ErrFileWriteFailed = zerr.New("failed to write file")

	// ErrFileHashFailed is returned when hashing a file fails.
	ErrFileHashFailed = zerr.New("failed to hash file content")

	// ErrPathStatFailed is returned when stating a path fails.
	ErrPathStatFailed = zerr.New("failed to stat path")

	// ErrStyleCompileFailed is returned when the stylesheet compiler fails.
	ErrStyleCompileFailed = zerr.New("failed to compile stylesheet")

	// ErrStylePrefixFailed is returned when vendor prefixing fails.
	ErrStylePrefixFailed = zerr.New("failed to prefix stylesheet")

	// ErrCompilerStartFailed is returned when the Sass compiler process cannot be started.
	ErrCompilerStartFailed = zerr.New("failed to start sass compiler")

	// ErrScriptTranspileFailed is returned when a script cannot be transpiled.
	ErrScriptTranspileFailed = zerr.New("failed to transpile script")

	// ErrScriptMinifyFailed is returned when a script cannot be minified.
	ErrScriptMinifyFailed = zerr.New("failed to minify script")

	// ErrUnsupportedTarget is returned when a script or browser target is not recognised.
	ErrUnsupportedTarget = zerr.New("unsupported compatibility target")

	// ErrMarkupRewriteFailed is returned when an HTML document cannot be rewritten.
	ErrMarkupRewriteFailed = zerr.New("failed to rewrite markup")

	// ErrMarkupMinifyFailed is returned when an HTML document cannot be minified.
	ErrMarkupMinifyFailed = zerr.New("failed to minify markup")

	// ErrImageDecodeFailed is returned when an image cannot be decoded.
	ErrImageDecodeFailed = zerr.New("failed to decode image")

	// ErrImageEncodeFailed is returned when an image cannot be encoded.
	ErrImageEncodeFailed = zerr.New("failed to encode image")

	// ErrFontConvertFailed is returned when a font cannot be converted.
	ErrFontConvertFailed = zerr.New("failed to convert font")

	// ErrUnsupportedFontFormat is returned when a font format cannot be produced.
	ErrUnsupportedFontFormat = zerr.New("unsupported font format")

	// ErrServerFailed is returned when the live-reload server stops unexpectedly.
	ErrServerFailed = zerr.New("live-reload server failed")

	// ErrProjectLocked is returned when another kiln process holds the project lock.
	ErrProjectLocked = zerr.New("another kiln process is running in this project")

	// ErrWatcherFailed is returned when the file watcher cannot be started.
	ErrWatcherFailed = zerr.New("failed to start file watcher")
)

// SyntaxError reports malformed source input with file context.
type SyntaxError struct {
	File    string
	Line    int
	Column  int
	Message string
}

func (e *SyntaxError) Error() string {
	switch {
	case e.Line > 0 && e.Column > 0:
		return fmt.Sprintf("%s:%d:%d: %s", e.File, e.Line, e.Column, e.Message)
	case e.Line > 0:
		return fmt.Sprintf("%s:%d: %s", e.File, e.Line, e.Message)
	default:
		return fmt.Sprintf("%s: %s", e.File, e.Message)
	}
}
