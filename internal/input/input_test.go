package input

import (
	"testing"
)

// Note: These tests are for documentation purposes.
// Interactive input functions require manual testing in a real terminal.

func TestPrompt_Documentation(t *testing.T) {
	t.Skip("Manual testing required - interactive stdin")

	// Example usage for documentation:
	// name := Prompt("Plugin name", "my-plugin")
	// fmt.Printf("You entered: %s\n", name)
}

func TestConfirm_Documentation(t *testing.T) {
	t.Skip("Manual testing required - interactive stdin")

	// Example usage for documentation:
	// if Confirm("Apply these updates?", true) {
	//     fmt.Println("User confirmed")
	// }
}

func TestSelect_Documentation(t *testing.T) {
	t.Skip("Manual testing required - interactive terminal")

	// Example usage for documentation:
	// idx := Select("Plugin language", []string{"python", "node", "shell"}, 2)
	// fmt.Printf("Chose option %d\n", idx)
}
