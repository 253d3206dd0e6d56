package composite

import (
	"regexp"
	"strings"
)

// Makefile treats a Makefile as the set of its target names. Recipe bodies
// are never compared, so user edits inside a target are not flagged as
// drift; only missing targets count.
type Makefile struct{}

// targetPattern matches an identifier immediately followed by a colon at
// line start. Variable assignments (":=") and special targets (".PHONY")
// deliberately do not match.
var targetPattern = regexp.MustCompile(`^([A-Za-z0-9_][A-Za-z0-9_.-]*):(?:[^=]|$)`)

func (Makefile) Name() string { return "Makefile" }

// Compare reports whether every expected target exists in actual.
func (Makefile) Compare(expected, actual []byte) (bool, []string) {
	expectedSet := makefileTargets(expected)
	actualSet := makefileTargets(actual)

	missing := missingFrom(expectedSet, actualSet)
	return len(missing) == 0, missing
}

// Merge appends the full block of each missing target, taken verbatim from
// the expected content, under a .PHONY declaration and the marker header.
// Existing recipes are preserved byte-for-byte.
func (Makefile) Merge(expected, actual []byte) ([]byte, []string) {
	expectedSet := makefileTargets(expected)
	actualSet := makefileTargets(actual)

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
	b.WriteString(".PHONY: " + strings.Join(missing, " "))
	b.WriteString("\n\n")
	for i, name := range missing {
		block := extractTargetBlock(expected, name)
		b.WriteString(block)
		if i < len(missing)-1 && !strings.HasSuffix(block, "\n\n") {
			b.WriteByte('\n')
		}
	}

	return []byte(b.String()), missing
}

// makefileTargets parses content into the set of target names.
func makefileTargets(content []byte) map[string]struct{} {
	targets := make(map[string]struct{})
	for _, line := range strings.Split(string(content), "\n") {
		if m := targetPattern.FindStringSubmatch(line); m != nil {
			targets[m[1]] = struct{}{}
		}
	}
	return targets
}

// extractTargetBlock returns the definition line of a target plus every
// following blank or tab-indented line, stopping at the next non-indented
// line. The block keeps its original tab indentation.
func extractTargetBlock(content []byte, target string) string {
	lines := strings.Split(string(content), "\n")

	for i, line := range lines {
		m := targetPattern.FindStringSubmatch(line)
		if m == nil || m[1] != target {
			continue
		}

		var block []string
		block = append(block, line)
		for j := i + 1; j < len(lines); j++ {
			next := lines[j]
			if next == "" || strings.HasPrefix(next, "\t") {
				block = append(block, next)
				continue
			}
			break
		}

		// Drop trailing blank lines so callers control spacing
		for len(block) > 1 && block[len(block)-1] == "" {
			block = block[:len(block)-1]
		}

		return strings.Join(block, "\n") + "\n"
	}

	return ""
}
