package composite

import (
	"strings"
)

// Gitignore treats a .gitignore as the set of its non-blank, non-comment
// trimmed lines. Order, blank lines and comments never count as drift.
type Gitignore struct{}

func (Gitignore) Name() string { return ".gitignore" }

// Compare reports whether every expected entry is present in actual.
func (Gitignore) Compare(expected, actual []byte) (bool, []string) {
	expectedSet := gitignoreEntries(expected)
	actualSet := gitignoreEntries(actual)

	missing := missingFrom(expectedSet, actualSet)
	return len(missing) == 0, missing
}

// Merge appends the missing entries under a marker header. Existing content
// is preserved byte-for-byte.
func (Gitignore) Merge(expected, actual []byte) ([]byte, []string) {
	expectedSet := gitignoreEntries(expected)
	actualSet := gitignoreEntries(actual)

	missing := missingFrom(expectedSet, actualSet)
	if len(missing) == 0 {
		return actual, nil
	}

	var b strings.Builder
	b.Write(actual)
	if len(actual) > 0 && actual[len(actual)-1] != '\n' {
		b.WriteByte('\n')
	}
	b.WriteByte('\n')
	b.WriteString(MarkerHeader)
	b.WriteByte('\n')
	for _, entry := range missing {
		b.WriteString(entry)
		b.WriteByte('\n')
	}

	return []byte(b.String()), missing
}

// gitignoreEntries parses content into the set of meaningful entries.
func gitignoreEntries(content []byte) map[string]struct{} {
	entries := make(map[string]struct{})
	for _, line := range strings.Split(string(content), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		entries[line] = struct{}{}
	}
	return entries
}
