//go:build windows

package fs

import "syscall"

const (
	fileAttributeHidden       = 0x02
	fileAttributeSystem       = 0x04
	fileAttributeReparsePoint = 0x0400
)

func fileAttributes(fullPath, name string) (uint32, bool) {
	target := fullPath
	if target == "" {
		target = name
	}
	if target == "" {
		return 0, false
	}
	ptr, err := syscall.UTF16PtrFromString(target)
	if err != nil {
		return 0, false
	}
	attrs, err := syscall.GetFileAttributes(ptr)
	if err != nil {
		return 0, false
	}
	return attrs, true
}

// IsHidden checks if a file is hidden on this platform (Windows).
func IsHidden(fullPath string, name string) bool {
	if attrs, ok := fileAttributes(fullPath, name); ok {
		return attrs&fileAttributeHidden != 0
	}
	return len(name) > 0 && name[0] == '.'
}

// ShouldHideFromListing reports whether an entry should never appear in
// listings, even when hidden files are shown (system reparse junctions).
func ShouldHideFromListing(fullPath, name string) bool {
	attrs, ok := fileAttributes(fullPath, name)
	if !ok {
		return false
	}
	const protectedMask = fileAttributeSystem | fileAttributeReparsePoint
	return attrs&protectedMask == protectedMask
}
