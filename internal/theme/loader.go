package theme

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Loader resolves theme names against the embedded, user and system themes.
type Loader struct {
	ConfigDir string
	SystemDir string
}

// NewLoader creates a Loader with the standard paths.
func NewLoader() *Loader {
	home, _ := os.UserHomeDir()
	return &Loader{
		ConfigDir: filepath.Join(home, ".config", "regionshot", "themes"),
		SystemDir: "/usr/share/regionshot/themes",
	}
}

// Load resolves name in order: an existing file path, the embedded
// defaults, ConfigDir, then SystemDir. An empty name yields Default.
func (l *Loader) Load(name string) (*Theme, error) {
	if name == "" {
		return Default(), nil
	}
	if _, err := os.Stat(name); err == nil {
		return parseFile(os.DirFS(filepath.Dir(name)), filepath.Base(name))
	}

	filename := name
	if !strings.HasSuffix(filename, ".theme") {
		filename += ".theme"
	}
	sources := []fs.FS{EmbeddedThemes}
	for _, dir := range []string{l.ConfigDir, l.SystemDir} {
		if dir != "" {
			sources = append(sources, os.DirFS(dir))
		}
	}
	for i, src := range sources {
		path := filename
		if i == 0 {
			path = "defaults/" + filename
		}
		if _, err := fs.Stat(src, path); err != nil {
			continue
		}
		return parseFile(src, path)
	}
	return nil, fmt.Errorf("theme %q not found", name)
}

// Names lists the embedded theme names.
func Names() []string {
	entries, err := fs.ReadDir(EmbeddedThemes, "defaults")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), ".theme"))
	}
	return names
}

func parseFile(fsys fs.FS, path string) (*Theme, error) {
	f, err := fsys.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	t, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("theme %s: %w", path, err)
	}
	return t, nil
}
