package livereload

import (
	"bytes"
	"io"
	"net/http"
	"path"
	"strings"
	"time"
)

const (
	wsPath     = "/__kiln/ws"
	scriptPath = "/__kiln/client.js"
)

var scriptTag = []byte(`<script src="` + scriptPath + `"></script>`)

// injectScript inserts the client script tag before the last </body>, or
// appends it when the page has none.
func injectScript(page []byte) []byte {
	i := bytes.LastIndex(bytes.ToLower(page), []byte("</body>"))
	if i < 0 {
		return append(page[:len(page):len(page)], scriptTag...)
	}

	out := make([]byte, 0, len(page)+len(scriptTag))
	out = append(out, page[:i]...)
	out = append(out, scriptTag...)
	return append(out, page[i:]...)
}

// htmlHandler serves HTML pages from root with the client script injected
// and hands every other request to next.
func htmlHandler(root http.FileSystem, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		name := path.Clean("/" + r.URL.Path)
		if strings.HasSuffix(r.URL.Path, "/") {
			name = path.Join(name, "index.html")
		}
		ext := strings.ToLower(path.Ext(name))
		if ext != ".html" && ext != ".htm" {
			next.ServeHTTP(w, r)
			return
		}

		f, err := root.Open(name)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}
		defer func() { _ = f.Close() }()

		info, err := f.Stat()
		if err != nil || info.IsDir() {
			next.ServeHTTP(w, r)
			return
		}

		page, err := io.ReadAll(f)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Header().Set("Cache-Control", "no-cache")
		http.ServeContent(w, r, name, time.Time{}, bytes.NewReader(injectScript(page)))
	})
}
