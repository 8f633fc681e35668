package theme

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ErrNotFound is returned when no source holds the requested theme.
var ErrNotFound = errors.New("theme not found")

// Loader handles loading themes from various sources.
type Loader struct {
	ConfigDir string
	SystemDir string
}

// NewLoader creates a new Loader with standard paths.
func NewLoader() *Loader {
	home, _ := os.UserHomeDir()
	return &Loader{
		ConfigDir: filepath.Join(home, ".config", "shineycrop", "themes"),
		SystemDir: "/usr/share/shineycrop/themes",
	}
}

type source struct {
	fsys fs.FS
	dir  string
}

// sources lists the theme locations in lookup order: embedded, user, system.
func (l *Loader) sources() []source {
	srcs := []source{{EmbeddedThemes, "defaults"}}
	for _, dir := range []string{l.ConfigDir, l.SystemDir} {
		if dir != "" {
			srcs = append(srcs, source{os.DirFS(dir), "."})
		}
	}
	return srcs
}

func fileName(name string) string {
	if strings.HasSuffix(name, ".theme") {
		return name
	}
	return name + ".theme"
}

func parseFS(fsys fs.FS, name string) (*Theme, error) {
	f, err := fsys.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Parse(f)
}

// Load resolves a theme by name or path. An existing file path wins,
// then the embedded themes, ConfigDir and SystemDir. An empty name is the
// default theme.
func (l *Loader) Load(name string) (*Theme, error) {
	if name == "" {
		return Default(), nil
	}
	if st, err := os.Stat(name); err == nil && !st.IsDir() {
		return parseFS(os.DirFS(filepath.Dir(name)), filepath.Base(name))
	}
	filename := fileName(name)
	for _, src := range l.sources() {
		t, err := parseFS(src.fsys, pathJoin(src.dir, filename))
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("theme %q: %w", name, err)
		}
		return t, nil
	}
	return nil, fmt.Errorf("theme %q: %w", name, ErrNotFound)
}

// Names lists every theme reachable by name, without duplicates.
func (l *Loader) Names() []string {
	seen := map[string]bool{}
	var names []string
	for _, src := range l.sources() {
		entries, err := fs.ReadDir(src.fsys, src.dir)
		if err != nil {
			continue
		}
		for _, e := range entries {
			name, ok := strings.CutSuffix(e.Name(), ".theme")
			if !ok || e.IsDir() || seen[name] {
				continue
			}
			seen[name] = true
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

func pathJoin(dir, name string) string {
	if dir == "." {
		return name
	}
	return dir + "/" + name
}
