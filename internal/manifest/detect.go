package manifest

import (
	"os"
	"path/filepath"

	"github.com/oakensoul/aida/internal/registry"
)

// languageMarkers are checked most specific first.
var languageMarkers = []struct {
	marker   string
	language registry.Language
}{
	{"pyproject.toml", registry.LangPython},
	{"package.json", registry.LangNode},
}

// DetectLanguage infers a scaffold's language from filesystem signatures,
// most specific marker first, falling back to the default language.
func DetectLanguage(pluginPath string) registry.Language {
	for _, m := range languageMarkers {
		if _, err := os.Stat(filepath.Join(pluginPath, m.marker)); err == nil {
			return m.language
		}
	}
	return registry.DefaultLanguage
}
