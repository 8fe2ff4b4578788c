package handler

import (
	"fmt"
	"net/http"
	"os"
)

// CheckStaticFile verifies the page exists and is a regular file.
func CheckStaticFile(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("static page: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("static page: %s is a directory", path)
	}
	return nil
}

func (h *HTTPHandler) serveIndex(w http.ResponseWriter, r *http.Request) {
	f, err := os.Open(h.StaticFile)
	if err != nil {
		requestLogger(r).Warnf("Static page unavailable: %v", err)
		http.NotFound(w, r)
		return
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil || info.IsDir() {
		http.NotFound(w, r)
		return
	}
	// Content type is derived from the file name's extension.
	http.ServeContent(w, r, info.Name(), info.ModTime(), f)
}
