package diffview

import (
	"strings"
	"testing"
)

func TestGenerateIdenticalReturnsEmpty(t *testing.T) {
	content := []byte("line1\nline2\nline3\n")

	if diff := Generate("file.txt", content, content, nil); diff != "" {
		t.Errorf("identical content must yield empty diff, got %q", diff)
	}
}

func TestGenerateShowsChangedLines(t *testing.T) {
	old := []byte("a\nb\nc\n")
	newer := []byte("a\nB\nc\n")

	diff := Generate("file.txt", old, newer, nil)

	if diff == "" {
		t.Fatal("expected non-empty diff")
	}
	if !strings.Contains(diff, "file.txt") {
		t.Error("diff must name the file")
	}
	if !strings.Contains(diff, "b") || !strings.Contains(diff, "B") {
		t.Error("diff must contain both versions of the changed line")
	}
}

func TestGenerateBinary(t *testing.T) {
	old := []byte{0x00, 0x01, 0x02}
	newer := []byte("text\n")

	diff := Generate("blob", old, newer, nil)

	if !strings.Contains(diff, "Binary files differ") {
		t.Errorf("got %q", diff)
	}
}

func TestGenerateAdditionsAndRemovals(t *testing.T) {
	old := []byte("keep\nremove-me\n")
	newer := []byte("keep\nadded-line\n")

	diff := Generate("f", old, newer, nil)

	if !strings.Contains(diff, "remove-me") {
		t.Error("removed line missing from diff")
	}
	if !strings.Contains(diff, "added-line") {
		t.Error("added line missing from diff")
	}
}

func TestGeneratorReuse(t *testing.T) {
	gen := NewGenerator()

	first := gen.Generate("a", []byte("x\n"), []byte("y\n"), nil)
	second := gen.Generate("a", []byte("x\n"), []byte("y\n"), nil)

	if first != second {
		t.Error("repeated generation must be deterministic")
	}
}

func TestSplitLines(t *testing.T) {
	lines := splitLines("a\nb\nc")
	if len(lines) != 3 {
		t.Errorf("got %d lines", len(lines))
	}

	lines = splitLines("a\nb\n")
	if len(lines) != 2 {
		t.Errorf("trailing newline must not add a line, got %d", len(lines))
	}

	if got := splitLines(""); len(got) != 0 {
		t.Errorf("empty content yields no lines, got %d", len(got))
	}
}

func TestExpandTabs(t *testing.T) {
	if got := expandTabs("a\tb", 4); got != "a   b" {
		t.Errorf("got %q", got)
	}
}
