package main

import (
	"os"
	"path/filepath"
	"strings"
)

// Supported output formats per chart kind. The pie renderer is backed by
// go-chart, which only emits PNG and SVG.
var (
	plotFormats    = []string{"png", "jpg", "jpeg", "svg", "pdf"}
	pieFormats     = []string{"png", "svg"}
	mermaidFormats = []string{"png", "svg", "mmd"}
)

const maxPathLen = 4096

var invalidPathChars = `<>":|?*`

// fileExt returns the lower-cased extension without the dot.
func fileExt(path string) string {
	return strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
}

func formatAllowed(ext string, allowed []string) bool {
	for _, a := range allowed {
		if ext == a {
			return true
		}
	}
	return false
}

// checkSavePath validates path legality and, only once the path is known to
// be acceptable, creates the missing parent directories. A path escaping the
// output root is rejected before anything touches the filesystem.
func checkSavePath(v *ValidationErrors, path string, allowed []string, outputRoot string) {
	if path == "" {
		v.add("save_path", "required")
		return
	}
	before := len(*v)
	if strings.ContainsAny(path, invalidPathChars) {
		v.add("save_path", "contains one of the invalid characters %s", invalidPathChars)
	}
	if len(path) > maxPathLen {
		v.add("save_path", "exceeds %d bytes", maxPathLen)
	}
	if !filepath.IsAbs(path) {
		v.add("save_path", "must be an absolute path, got %q", path)
	}
	if ext := fileExt(path); !formatAllowed(ext, allowed) {
		v.add("save_path", "unsupported format %q, supported: %s", ext, strings.Join(allowed, ", "))
	}
	if outputRoot != "" && !underRoot(path, outputRoot) {
		v.add("save_path", "%q is outside the output root %q", path, outputRoot)
	}
	if len(*v) > before {
		return
	}

	dir := filepath.Dir(filepath.Clean(path))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		v.add("save_path", "cannot create parent directory: %v", err)
		return
	}
	if !dirWritable(dir) {
		v.add("save_path", "parent directory %q is not writable", dir)
	}
}

func underRoot(path, root string) bool {
	rel, err := filepath.Rel(filepath.Clean(root), filepath.Clean(path))
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// dirWritable probes with a throwaway file; permission bits alone lie on
// some filesystems.
func dirWritable(dir string) bool {
	f, err := os.CreateTemp(dir, ".plotmcp-probe-*")
	if err != nil {
		return false
	}
	name := f.Name()
	f.Close()
	os.Remove(name)
	return true
}
