// Package installerassets draws the bitmaps bundled into the macOS and
// Windows installers: a DMG background and the NSIS header and sidebar
// banners.
//
// All output is fully determined by fixed constants; regenerating the
// assets produces byte-identical files.
package installerassets

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"
)

// Colors - clean macOS-style palette.
var (
	dmgBackground = color.RGBA{245, 245, 247, 255} // light gray like standard macOS DMGs
	arrowColor    = color.RGBA{160, 160, 165, 255} // subtle gray arrow
	accentColor   = color.RGBA{249, 115, 22, 255}  // orange for Windows only
)

// DirName is the name of the output directory.
const DirName = "installer-assets"

// DefaultDir returns the default output directory: DirName one level above
// the directory containing the running executable.
func DefaultDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("locating executable: %w", err)
	}
	return filepath.Join(filepath.Dir(exe), "..", DirName), nil
}

// EnsureDir creates the output directory and any missing parents.
// It is a no-op if the directory already exists.
func EnsureDir(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	return nil
}
