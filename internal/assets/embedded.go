package assets

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
)

//go:embed styles/*.css templates/*.html
var builtin embed.FS

// EmbeddedLoader loads the layouts compiled into the binary.
type EmbeddedLoader struct{}

// NewEmbeddedLoader creates an EmbeddedLoader.
func NewEmbeddedLoader() *EmbeddedLoader {
	return &EmbeddedLoader{}
}

// LoadStyle loads a built-in CSS style by name.
func (e *EmbeddedLoader) LoadStyle(name string) (string, error) {
	return readBuiltin("styles", name, ".css", ErrStyleNotFound)
}

// LoadTemplate loads a built-in HTML template by name.
func (e *EmbeddedLoader) LoadTemplate(name string) (string, error) {
	return readBuiltin("templates", name, ".html", ErrTemplateNotFound)
}

// Styles lists the built-in style names, sorted.
func (e *EmbeddedLoader) Styles() []string {
	return listBuiltin("styles", ".css")
}

// Templates lists the built-in template names, sorted.
func (e *EmbeddedLoader) Templates() []string {
	return listBuiltin("templates", ".html")
}

func readBuiltin(dir, name, ext string, notFound error) (string, error) {
	if err := ValidateAssetName(name); err != nil {
		return "", err
	}

	content, err := builtin.ReadFile(path.Join(dir, name+ext))
	if err != nil {
		return "", fmt.Errorf("%w: %q", notFound, name)
	}

	return string(content), nil
}

func listBuiltin(dir, ext string) []string {
	entries, err := fs.ReadDir(builtin, dir)
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if n, ok := strings.CutSuffix(e.Name(), ext); ok {
			names = append(names, n)
		}
	}
	sort.Strings(names)
	return names
}

// Compile-time interface check.
var _ AssetLoader = (*EmbeddedLoader)(nil)
