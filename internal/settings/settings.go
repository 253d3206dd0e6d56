// Package settings loads optional tool configuration from aida.yml.
package settings

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Settings holds operator preferences. Every field is optional; zero values
// mean "no preference" and callers fall back to their own defaults.
type Settings struct {
	AuthorName     string // default author for new scaffolds
	AuthorEmail    string
	DefaultLicense string // license id used when none is given
	TemplatesDir   string // external template tree overriding the embedded one
}

// Load reads aida.yml from dir. A missing or unreadable file is not an
// error; it simply yields empty settings.
func Load(dir string) *Settings {
	if _, err := os.Stat(filepath.Join(dir, "aida.yml")); os.IsNotExist(err) {
		return &Settings{}
	}

	v := viper.New()
	v.SetConfigName("aida")
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)

	if err := v.ReadInConfig(); err != nil {
		return &Settings{}
	}

	return &Settings{
		AuthorName:     v.GetString("author.name"),
		AuthorEmail:    v.GetString("author.email"),
		DefaultLicense: v.GetString("defaults.license"),
		TemplatesDir:   v.GetString("defaults.templates_dir"),
	}
}
