package fs

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Entry describes one immediate child of a directory.
type Entry struct {
	Name      string
	FullPath  string
	IsDir     bool
	IsSymlink bool
}

// IsHidden reports whether the entry should be treated as hidden.
func (e Entry) IsHidden() bool {
	return IsHidden(e.FullPath, e.Name)
}

// ProbeError is the typed failure returned when a directory cannot be
// enumerated. The original cause is preserved for errors.Is/As.
type ProbeError struct {
	Path string
	Err  error
}

func (e *ProbeError) Error() string {
	return fmt.Sprintf("cannot read directory %s: %v", e.Path, e.Err)
}

func (e *ProbeError) Unwrap() error {
	return e.Err
}

// Probe lists the immediate children of directories. It never panics on
// filesystem conditions; every failure comes back as a *ProbeError.
type Probe struct {
	// FollowSymlinks controls whether symlinked directories report IsDir
	// true. Symlink cycles are the caller's concern; with this false a
	// symlink is always reported as a non-directory leaf.
	FollowSymlinks bool
}

// ListChildren enumerates path and returns its entries ordered directories
// first, then case-insensitively by name. Names are normalized to NFC so
// decomposed filenames (macOS) compare equal to their composed forms.
func (p *Probe) ListChildren(path string) ([]Entry, error) {
	dirEntries, err := os.ReadDir(path)
	if err != nil {
		return nil, &ProbeError{Path: path, Err: err}
	}

	entries := make([]Entry, 0, len(dirEntries))
	for _, de := range dirEntries {
		rawName := de.Name()
		fullPath := filepath.Join(path, rawName)

		if ShouldHideFromListing(fullPath, rawName) {
			continue
		}

		isDir := de.IsDir()
		isSymlink := de.Type()&os.ModeSymlink != 0

		if isSymlink && p.FollowSymlinks {
			if info, err := os.Stat(fullPath); err == nil {
				isDir = info.IsDir()
			}
		}

		entries = append(entries, Entry{
			Name:      norm.NFC.String(rawName),
			FullPath:  fullPath,
			IsDir:     isDir,
			IsSymlink: isSymlink,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].IsDir != entries[j].IsDir {
			return entries[i].IsDir
		}
		return strings.ToLower(entries[i].Name) < strings.ToLower(entries[j].Name)
	})

	return entries, nil
}
