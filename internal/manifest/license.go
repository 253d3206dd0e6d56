package manifest

import (
	"embed"
	"fmt"
	"strings"
)

//go:embed licenses/*.txt
var licensesFS embed.FS

// DefaultLicense is substituted when a manifest records an unknown license id.
const DefaultLicense = "MIT"

// KnownLicenses lists the license ids with embedded texts.
func KnownLicenses() []string {
	return []string{"MIT", "Apache-2.0", "BSD-3-Clause"}
}

// ResolveLicense returns the full license text for an SPDX-style id, with
// [year] and [fullname] placeholders filled in. An unknown id falls back to
// the default license; known=false tells the caller to warn, never to fail.
func ResolveLicense(id string, year int, fullname string) (text string, known bool) {
	known = true
	normalized := normalizeLicenseID(id)
	data, err := licensesFS.ReadFile(fmt.Sprintf("licenses/%s.txt", normalized))
	if err != nil {
		known = false
		data, err = licensesFS.ReadFile(fmt.Sprintf("licenses/%s.txt", DefaultLicense))
		if err != nil {
			// The default text is embedded; this cannot happen outside a
			// broken build.
			return "", false
		}
	}

	text = string(data)
	text = strings.ReplaceAll(text, "[year]", fmt.Sprintf("%d", year))
	text = strings.ReplaceAll(text, "[fullname]", fullname)
	return text, known
}

// normalizeLicenseID maps common aliases onto embedded file names.
func normalizeLicenseID(id string) string {
	switch strings.ToLower(strings.TrimSpace(id)) {
	case "mit":
		return "MIT"
	case "apache-2.0", "apache2", "apache-2", "apache":
		return "Apache-2.0"
	case "bsd-3-clause", "bsd3", "bsd":
		return "BSD-3-Clause"
	default:
		return id
	}
}
