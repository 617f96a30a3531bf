//go:build !windows

package fs

// ShouldHideFromListing reports whether an entry must be dropped from
// listings outright. Only Windows has such entries (protected system
// junctions); everywhere else nothing qualifies.
func ShouldHideFromListing(_, _ string) bool {
	return false
}
