package esbuild

import (
	"encoding/base64"

	"github.com/evanw/esbuild/pkg/api"
)

// withInlineMap appends a previous stage's source map as an inline data URL
// so esbuild chains the new map back to the original sources.
func withInlineMap(code, sourceMap []byte, css bool) string {
	if len(sourceMap) == 0 {
		return string(code)
	}
	url := "data:application/json;base64," + base64.StdEncoding.EncodeToString(sourceMap)
	if css {
		return string(code) + "\n/*# sourceMappingURL=" + url + " */\n"
	}
	return string(code) + "\n//# sourceMappingURL=" + url + "\n"
}

func sourceMapMode(enabled bool) api.SourceMap {
	if enabled {
		return api.SourceMapExternal
	}
	return api.SourceMapNone
}
