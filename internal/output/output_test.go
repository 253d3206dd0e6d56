package output

import (
	"bytes"
	"io"
	"os"
	"strings"
	"testing"
)

// captureOutput captures stdout during test execution
func captureOutput(f func()) string {
	old := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	f()

	w.Close()
	os.Stdout = old

	var buf bytes.Buffer
	io.Copy(&buf, r)
	return buf.String()
}

func TestSuccess(t *testing.T) {
	output := captureOutput(func() {
		Success("Test message")
	})

	if !strings.Contains(output, "✅") {
		t.Error("Success output should contain check emoji")
	}
	if !strings.Contains(output, "Test message") {
		t.Error("Success output should contain the message")
	}
}

func TestError(t *testing.T) {
	output := captureOutput(func() {
		Error("Error message")
	})

	if !strings.Contains(output, "❌") {
		t.Error("Error output should contain X emoji")
	}
	if !strings.Contains(output, "Error message") {
		t.Error("Error output should contain the message")
	}
}

func TestWarn(t *testing.T) {
	output := captureOutput(func() {
		Warn("Careful now")
	})

	if !strings.Contains(output, "⚠️") {
		t.Error("Warn output should contain warning emoji")
	}
	if !strings.Contains(output, "Careful now") {
		t.Error("Warn output should contain the message")
	}
}

func TestStep(t *testing.T) {
	output := captureOutput(func() {
		Step("cd my-plugin")
	})

	if !strings.Contains(output, "cd my-plugin") {
		t.Error("Step output should contain the message")
	}
}

func TestVerboseRespectsToggle(t *testing.T) {
	SetVerbose(false)
	output := captureOutput(func() {
		Verbose("hidden")
	})
	if strings.Contains(output, "hidden") {
		t.Error("Verbose output should be suppressed when disabled")
	}

	SetVerbose(true)
	defer SetVerbose(false)
	output = captureOutput(func() {
		Verbose("shown")
	})
	if !strings.Contains(output, "shown") {
		t.Error("Verbose output should appear when enabled")
	}
}
