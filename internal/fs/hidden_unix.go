//go:build !windows

package fs

// IsHidden reports whether an entry is hidden. On Unix-like systems that is
// the dot-prefix convention; the path argument only matters on Windows.
func IsHidden(_ string, name string) bool {
	return len(name) > 0 && name[0] == '.'
}
