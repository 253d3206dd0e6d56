// Package composite implements set-based comparison and append-only merging
// for files whose correctness is defined by discrete entries rather than
// exact byte content.
//
// Both .gitignore and Makefile are routinely hand-edited right after
// generation; naive byte-equality would perpetually report false drift.
// Comparison therefore only asks whether every generated entry is still
// present, and merging only ever appends what is missing.
package composite

import "sort"

// MarkerHeader is prepended to every block of merged entries so users can
// see which lines an update appended.
const MarkerHeader = "# Added by aida update"

// File defines comparison and merging for one composite file type.
//
// Compare reports whether the expected entry set is a subset of the actual
// entry set and, when it is not, which entries are missing. Merge appends
// the missing entries to the actual content without removing or reordering
// anything that is already there.
type File interface {
	Name() string
	Compare(expected, actual []byte) (upToDate bool, missing []string)
	Merge(expected, actual []byte) (merged []byte, added []string)
}

// ForPath returns the composite implementation registered for a file name,
// or nil when the file has no composite semantics.
func ForPath(name string) File {
	switch name {
	case ".gitignore":
		return Gitignore{}
	case "Makefile":
		return Makefile{}
	default:
		return nil
	}
}

// missingFrom returns the sorted entries of expected that are absent from actual.
func missingFrom(expected, actual map[string]struct{}) []string {
	var missing []string
	for entry := range expected {
		if _, ok := actual[entry]; !ok {
			missing = append(missing, entry)
		}
	}
	sort.Strings(missing)
	return missing
}
