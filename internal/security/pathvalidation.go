// Package security holds the path checks for files the map exporter
// writes on behalf of the user.
package security

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ValidateExportPath rejects output paths outside the temp directory
// and the current working directory, so a session id or flag value can
// never steer an export into an arbitrary location.
func ValidateExportPath(path string) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get working directory: %w", err)
	}
	for _, dir := range []string{os.TempDir(), cwd} {
		if withinDirectory(path, dir) == nil {
			return nil
		}
	}
	return fmt.Errorf("export path %s must be under %s or %s", path, os.TempDir(), cwd)
}

// withinDirectory reports whether path stays inside dir after cleaning
// and symlink resolution. The output file usually does not exist yet,
// so symlinks are resolved on the nearest existing ancestor instead.
func withinDirectory(path, dir string) error {
	absPath, err := filepath.Abs(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("failed to resolve path: %w", err)
	}
	canonical := resolveThroughAncestor(absPath)

	absDir, err := filepath.Abs(dir)
	if err != nil {
		return fmt.Errorf("failed to resolve directory: %w", err)
	}
	canonicalDir, err := filepath.EvalSymlinks(absDir)
	if err != nil {
		return fmt.Errorf("failed to resolve directory symlinks: %w", err)
	}

	rel, err := filepath.Rel(canonicalDir, canonical)
	if err != nil {
		return fmt.Errorf("path is outside %s: %w", dir, err)
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) || filepath.IsAbs(rel) {
		return fmt.Errorf("path %s escapes %s", path, dir)
	}
	return nil
}

// resolveThroughAncestor canonicalises abs even when it does not exist
// yet, by resolving symlinks on the closest existing parent and
// rejoining the remainder. Guards against a symlinked intermediate
// directory pointing elsewhere.
func resolveThroughAncestor(abs string) string {
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		return resolved
	}
	for parent := filepath.Dir(abs); ; parent = filepath.Dir(parent) {
		if resolved, err := filepath.EvalSymlinks(parent); err == nil {
			rel, _ := filepath.Rel(parent, abs)
			return filepath.Join(resolved, rel)
		}
		if parent == filepath.Dir(parent) {
			return abs
		}
	}
}

// SanitizeFilename reduces an arbitrary identifier to a safe file name
// fragment: ASCII letters, digits, dot, underscore and dash survive,
// runs of anything else collapse to one underscore, and the result is
// capped at 128 bytes.
func SanitizeFilename(s string) string {
	const maxLen = 128

	var b strings.Builder
	pendingSep := false
	for _, r := range s {
		if b.Len() >= maxLen {
			break
		}
		ok := (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') ||
			(r >= '0' && r <= '9') || r == '.' || r == '_' || r == '-'
		if ok {
			b.WriteRune(r)
			pendingSep = false
		} else if !pendingSep {
			b.WriteByte('_')
			pendingSep = true
		}
	}

	out := strings.Trim(b.String(), "._")
	if out == "" {
		return "unknown"
	}
	return out
}
