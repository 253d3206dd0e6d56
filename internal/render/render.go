// Package render handles template parsing and rendering with caching.
package render

import (
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"sync"
	"text/template"
	"unicode"
)

// Renderer handles template parsing and rendering with caching
type Renderer struct {
	funcMap template.FuncMap
	cache   map[string]*template.Template
	mu      sync.RWMutex // Protect cache for concurrent access
}

// New creates a renderer with built-in helper functions
func New() *Renderer {
	return &Renderer{
		funcMap: defaultFuncMap(),
		cache:   make(map[string]*template.Template),
	}
}

// RenderString renders a template from a string.
// The name is used for caching and error messages.
func (r *Renderer) RenderString(name, templateStr string, data any) ([]byte, error) {
	cacheKey := r.getCacheKey("string", name)

	// Check cache with read lock
	r.mu.RLock()
	if tmpl, ok := r.cache[cacheKey]; ok {
		r.mu.RUnlock()
		return r.executeTemplate(tmpl, data)
	}
	r.mu.RUnlock()

	// Parse template
	tmpl, err := template.New(name).Funcs(r.funcMap).Parse(templateStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse template '%s': %w", name, err)
	}

	// Cache with write lock
	r.mu.Lock()
	r.cache[cacheKey] = tmpl
	r.mu.Unlock()

	return r.executeTemplate(tmpl, data)
}

// RenderFS renders a template from a filesystem (typically an embed.FS)
func (r *Renderer) RenderFS(fsys fs.FS, path string, data any) ([]byte, error) {
	cacheKey := r.getCacheKey("fs", path)

	// Check cache with read lock
	r.mu.RLock()
	if tmpl, ok := r.cache[cacheKey]; ok {
		r.mu.RUnlock()
		return r.executeTemplate(tmpl, data)
	}
	r.mu.RUnlock()

	// Read template from the filesystem
	templateBytes, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read template from fs '%s': %w", path, err)
	}

	// Parse template
	tmpl, err := template.New(path).Funcs(r.funcMap).Parse(string(templateBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to parse template '%s': %w", path, err)
	}

	// Cache with write lock
	r.mu.Lock()
	r.cache[cacheKey] = tmpl
	r.mu.Unlock()

	return r.executeTemplate(tmpl, data)
}

// RenderFile renders a template from a file path (for --templates overrides)
func (r *Renderer) RenderFile(path string, data any) ([]byte, error) {
	cacheKey := r.getCacheKey("file", path)

	// Check cache with read lock
	r.mu.RLock()
	if tmpl, ok := r.cache[cacheKey]; ok {
		r.mu.RUnlock()
		return r.executeTemplate(tmpl, data)
	}
	r.mu.RUnlock()

	// Read template from file
	templateBytes, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read template file '%s': %w", path, err)
	}

	// Parse template
	tmpl, err := template.New(path).Funcs(r.funcMap).Parse(string(templateBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to parse template '%s': %w", path, err)
	}

	// Cache with write lock
	r.mu.Lock()
	r.cache[cacheKey] = tmpl
	r.mu.Unlock()

	return r.executeTemplate(tmpl, data)
}

// ClearCache clears the template cache (useful for testing)
func (r *Renderer) ClearCache() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cache = make(map[string]*template.Template)
}

// executeTemplate executes a parsed template with the given data
func (r *Renderer) executeTemplate(tmpl *template.Template, data any) ([]byte, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to render template '%s': %w", tmpl.Name(), err)
	}
	return buf.Bytes(), nil
}

// getCacheKey generates a cache key for a template
func (r *Renderer) getCacheKey(typ, identifier string) string {
	return fmt.Sprintf("%s:%s", typ, identifier)
}

// defaultFuncMap returns the default template function map
func defaultFuncMap() template.FuncMap {
	return template.FuncMap{
		// Case conversion
		"pascalCase": PascalCase, // my-plugin → MyPlugin
		"snakeCase":  SnakeCase,  // MyPlugin → my_plugin
		"kebabCase":  KebabCase,  // MyPlugin → my-plugin

		// String manipulation
		"quote":     Quote, // test → "test"
		"upper":     strings.ToUpper,
		"lower":     strings.ToLower,
		"title":     Title, // Custom title case function
		"trim":      strings.TrimSpace,
		"join":      strings.Join,
		"split":     strings.Split,
		"contains":  strings.Contains,
		"hasPrefix": strings.HasPrefix,
		"hasSuffix": strings.HasSuffix,
		"replace":   strings.ReplaceAll,

		// Utilities
		"default": Default, // Provide default value if nil/empty
	}
}

// PascalCase converts snake_case, kebab-case or camelCase to PascalCase
// Examples: my_plugin → MyPlugin, my-plugin → MyPlugin, myPlugin → MyPlugin
func PascalCase(s string) string {
	if s == "" {
		return ""
	}

	// Normalize kebab-case to snake_case first
	s = strings.ReplaceAll(s, "-", "_")

	if strings.Contains(s, "_") {
		parts := strings.Split(s, "_")
		for i, part := range parts {
			if part != "" {
				parts[i] = strings.ToUpper(string(part[0])) + part[1:]
			}
		}
		return strings.Join(parts, "")
	}

	if unicode.IsLower(rune(s[0])) {
		return strings.ToUpper(string(s[0])) + s[1:]
	}

	return s
}

// SnakeCase converts PascalCase, camelCase or kebab-case to snake_case
// Examples: MyPlugin → my_plugin, my-plugin → my_plugin
func SnakeCase(s string) string {
	if s == "" {
		return ""
	}

	s = strings.ReplaceAll(s, "-", "_")

	// Handle already snake_case
	if strings.Contains(s, "_") {
		return strings.ToLower(s)
	}

	var result strings.Builder
	for i, r := range s {
		if unicode.IsUpper(r) {
			// Underscore before an uppercase rune when the previous rune is
			// lowercase, or when it starts the last word of an acronym run
			if i > 0 {
				prev := rune(s[i-1])
				if unicode.IsLower(prev) {
					result.WriteRune('_')
				} else if i+1 < len(s) && unicode.IsLower(rune(s[i+1])) {
					result.WriteRune('_')
				}
			}
			result.WriteRune(unicode.ToLower(r))
		} else {
			result.WriteRune(r)
		}
	}
	return result.String()
}

// KebabCase converts PascalCase, camelCase or snake_case to kebab-case
// Examples: MyPlugin → my-plugin, my_plugin → my-plugin
func KebabCase(s string) string {
	return strings.ReplaceAll(SnakeCase(s), "_", "-")
}

// Quote wraps a string in double quotes
func Quote(s string) string {
	return fmt.Sprintf("%q", s)
}

// Title converts a string to title case (first letter of each word capitalized)
// This replaces the deprecated strings.Title
func Title(s string) string {
	if s == "" {
		return ""
	}

	words := strings.Fields(s)
	for i, word := range words {
		if len(word) > 0 {
			words[i] = strings.ToUpper(string(word[0])) + strings.ToLower(word[1:])
		}
	}
	return strings.Join(words, " ")
}

// Default returns the default value if the given value is nil or empty
func Default(defaultVal, val any) any {
	if val == nil {
		return defaultVal
	}

	// Check for empty string
	if s, ok := val.(string); ok && s == "" {
		return defaultVal
	}

	// Check for zero-length slices/maps
	switch v := val.(type) {
	case []any:
		if len(v) == 0 {
			return defaultVal
		}
	case []string:
		if len(v) == 0 {
			return defaultVal
		}
	case map[string]any:
		if len(v) == 0 {
			return defaultVal
		}
	}

	return val
}
