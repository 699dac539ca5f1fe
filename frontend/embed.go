package frontend

import (
	"embed"
	"io/fs"
	"net/http"
)

// FS embeds the page templates and static assets
//
//go:embed templates static
var FS embed.FS

// Templates returns the embedded template filesystem
func Templates() fs.FS {
	sub, err := fs.Sub(FS, "templates")
	if err != nil {
		// Sub only fails for invalid paths; "templates" is a constant.
		panic(err)
	}
	return sub
}

// GetHTTPFS returns the embedded static assets for HTTP serving
func GetHTTPFS() (http.FileSystem, error) {
	sub, err := fs.Sub(FS, "static")
	if err != nil {
		return nil, err
	}

	if _, err := fs.Stat(sub, "style.css"); err != nil {
		return nil, err
	}

	return http.FS(sub), nil
}
