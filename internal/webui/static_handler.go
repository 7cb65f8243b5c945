package webui

import (
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// staticSiteHandler serves files from the local ./public directory with a
// strict extension whitelist and path traversal protection.
func (webUI *WebUI) staticSiteHandler(w http.ResponseWriter, r *http.Request) {
	fileName := filepath.Base(r.URL.Path)

	// Whitelist allowed extensions
	ext := strings.ToLower(filepath.Ext(fileName))
	allowedExtensions := map[string]bool{
		".html": true, ".css": true, ".js": true,
		".png": true, ".jpg": true, ".jpeg": true, ".svg": true,
		".ico": true,
	}
	if !allowedExtensions[ext] {
		http.Error(w, "File not found", http.StatusNotFound)
		return
	}

	// Ensure no path traversal attempts
	if strings.Contains(fileName, "..") || strings.ContainsAny(fileName, `/\`) {
		http.Error(w, "Invalid file name", http.StatusBadRequest)
		return
	}

	filePath := filepath.Join(".", "public", fileName)

	// Verify the resolved path is still within the public directory
	absPath, err := filepath.Abs(filePath)
	if err != nil {
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}
	publicDir, err := filepath.Abs("./public")
	if err != nil {
		http.Error(w, "Internal configuration error", http.StatusInternalServerError)
		return
	}
	rel, err := filepath.Rel(publicDir, absPath)
	if err != nil || strings.HasPrefix(rel, "..") {
		slog.Warn("potential path traversal attempt blocked", "path", absPath)
		http.Error(w, "File not found", http.StatusNotFound)
		return
	}

	stat, err := os.Stat(absPath)
	if err != nil || stat.IsDir() {
		http.Error(w, "File not found", http.StatusNotFound)
		return
	}

	http.ServeFile(w, r, absPath)
}
