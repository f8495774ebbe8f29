// Package web holds the status page of the monitor.
package web

import (
	"embed"
	"fmt"
	"io/fs"
	"net/http"
	"os"
)

// EnvAssetDir names a directory served instead of the built-in page, so that
// the page can be edited without rebuilding.
const EnvAssetDir = "AUTOSPLITTER_MONITOR_ASSETS"

//go:embed dist
var dist embed.FS

// Assets returns the files of the status page.
func Assets() http.FileSystem {
	if dir := os.Getenv(EnvAssetDir); dir != "" {
		fmt.Fprintf(os.Stderr, "Serving monitor page from %s\n", dir)
		return http.Dir(dir)
	}

	page, err := fs.Sub(dist, "dist")
	if err != nil {
		panic(err)
	}

	return http.FS(page)
}
