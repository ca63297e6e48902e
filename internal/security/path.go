// Package security guards filesystem writes driven by operator-supplied
// paths. Scan reports land wherever --save or --out points; these helpers
// keep a crafted relative path from climbing out of the directory the write
// was anchored to.
package security

import (
	"errors"
	"fmt"
	"path/filepath"
)

// ErrPathEscape reports that a path would resolve outside its base directory.
var ErrPathEscape = errors.New("path escapes base directory")

// ResolveWithin anchors the given path elements under base and returns the
// absolute result. Elements that are absolute, empty after cleaning, or that
// traverse above base are rejected with ErrPathEscape.
func ResolveWithin(base string, elems ...string) (string, error) {
	if base == "" {
		return "", errors.New("base directory is required")
	}

	absBase, err := filepath.Abs(base)
	if err != nil {
		return "", fmt.Errorf("resolve base directory: %w", err)
	}

	candidate := filepath.Join(elems...)
	if candidate == "" {
		return "", errors.New("path is required")
	}
	if !filepath.IsLocal(candidate) {
		return "", fmt.Errorf("%w: %s", ErrPathEscape, candidate)
	}

	return filepath.Join(absBase, candidate), nil
}
