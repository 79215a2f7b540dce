package export

import (
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// picturesSubdir is where DefaultPath puts captures, relative to home.
var picturesSubdir = filepath.Join("Pictures", "Fotos")

func homeDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "", ErrNoHome
	}
	return home, nil
}

// DefaultPath returns ~/Pictures/Fotos/fotos-YYYYMMDD-HHMMSS.png for the
// given time, in now's location.
func DefaultPath(now time.Time) (string, error) {
	home, err := homeDir()
	if err != nil {
		return "", err
	}
	name := "fotos-" + now.Format("20060102-150405") + PNG.Extension()
	return filepath.Join(home, picturesSubdir, name), nil
}

// ExpandTilde replaces a leading "~/" with the home directory. Other paths
// are returned unchanged.
func ExpandTilde(path string) (string, error) {
	rest, ok := strings.CutPrefix(path, "~/")
	if !ok {
		return path, nil
	}
	home, err := homeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, rest), nil
}

// Save encodes img in the format implied by path's extension and writes
// it, creating parent directories as needed. It returns the path written.
//
// Paths the user picked (userChosen) are written wherever they point.
// Generated paths must resolve inside the home directory, otherwise Save
// fails with ErrOutsideHome.
func Save(path string, img image.Image, userChosen bool) (string, error) {
	path, err := ExpandTilde(path)
	if err != nil {
		return "", err
	}
	if !userChosen {
		if err := checkInsideHome(path); err != nil {
			return "", err
		}
	}

	f, err := FormatFromPath(path)
	if err != nil {
		return "", err
	}
	data, err := EncodeBytes(img, f, nil)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("export: create directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil { //nolint:gosec // captures are user files
		return "", fmt.Errorf("export: write %s: %w", path, err)
	}
	return path, nil
}

// checkInsideHome resolves symlinks on the longest existing prefix of path
// and reports ErrOutsideHome if the result is not under home.
func checkInsideHome(path string) error {
	home, err := homeDir()
	if err != nil {
		return err
	}
	home = resolve(home)
	target := resolve(path)

	rel, err := filepath.Rel(home, target)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return fmt.Errorf("%w: %s", ErrOutsideHome, path)
	}
	return nil
}

// resolve returns the absolute, symlink-free form of path. Components that
// do not exist yet are appended to their resolved parent unchanged.
func resolve(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return filepath.Clean(path)
	}
	var missing []string
	for p := abs; ; p = filepath.Dir(p) {
		resolved, err := filepath.EvalSymlinks(p)
		if err == nil {
			return filepath.Join(append([]string{resolved}, missing...)...)
		}
		if !errors.Is(err, os.ErrNotExist) || filepath.Dir(p) == p {
			return abs
		}
		missing = append([]string{filepath.Base(p)}, missing...)
	}
}
