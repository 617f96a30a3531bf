package bookmarks

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode"

	"gopkg.in/yaml.v3"
)

// Bookmark is one named jump target.
type Bookmark struct {
	Name string `yaml:"name"`
	Path string `yaml:"path"`
}

// windowsReserved are device names that cannot be used as bookmark names,
// kept cross-platform so a config synced between machines stays valid.
var windowsReserved = map[string]struct{}{
	"CON": {}, "PRN": {}, "AUX": {}, "NUL": {},
	"COM1": {}, "COM2": {}, "COM3": {}, "COM4": {}, "COM5": {},
	"COM6": {}, "COM7": {}, "COM8": {}, "COM9": {},
	"LPT1": {}, "LPT2": {}, "LPT3": {}, "LPT4": {}, "LPT5": {},
	"LPT6": {}, "LPT7": {}, "LPT8": {}, "LPT9": {},
}

// ValidateName enforces filesystem-safe bookmark names.
func ValidateName(name string) error {
	if name == "" {
		return fmt.Errorf("bookmark name cannot be empty")
	}
	if len(name) > 255 {
		return fmt.Errorf("bookmark name too long (max 255 characters)")
	}
	if strings.ContainsAny(name, "/\\\x00") {
		return fmt.Errorf("bookmark name cannot contain path separators or null bytes")
	}
	for _, r := range name {
		if unicode.IsControl(r) {
			return fmt.Errorf("bookmark name cannot contain control characters")
		}
	}
	if _, reserved := windowsReserved[strings.ToUpper(name)]; reserved {
		return fmt.Errorf("bookmark name %q is reserved", name)
	}
	return nil
}

// Store holds named bookmarks and persists them to a YAML file.
type Store struct {
	path  string
	marks map[string]Bookmark
}

// DefaultPath returns the per-user bookmarks file location.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("cannot resolve config directory: %w", err)
	}
	return filepath.Join(dir, "dtree", "bookmarks.yaml"), nil
}

// Open loads the store at path; a missing file yields an empty store.
func Open(path string) (*Store, error) {
	s := &Store{path: path, marks: make(map[string]Bookmark)}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, fmt.Errorf("cannot read bookmarks %s: %w", path, err)
	}

	var list []Bookmark
	if err := yaml.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("cannot parse bookmarks %s: %w", path, err)
	}
	for _, b := range list {
		if ValidateName(b.Name) == nil {
			s.marks[b.Name] = b
		}
	}
	return s, nil
}

// Add validates and stores a bookmark, then persists.
func (s *Store) Add(name, path string) error {
	if err := ValidateName(name); err != nil {
		return err
	}
	s.marks[name] = Bookmark{Name: name, Path: path}
	return s.save()
}

// Remove deletes a bookmark, then persists. Removing an unknown name is a
// no-op.
func (s *Store) Remove(name string) error {
	if _, ok := s.marks[name]; !ok {
		return nil
	}
	delete(s.marks, name)
	return s.save()
}

// Get returns the bookmark path for name.
func (s *Store) Get(name string) (string, bool) {
	b, ok := s.marks[name]
	return b.Path, ok
}

// List returns all bookmarks ordered by name.
func (s *Store) List() []Bookmark {
	out := make([]Bookmark, 0, len(s.marks))
	for _, b := range s.marks {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Filter returns bookmarks whose name contains the case-folded query.
func (s *Store) Filter(query string) []Bookmark {
	if query == "" {
		return s.List()
	}
	q := strings.ToLower(query)
	out := make([]Bookmark, 0, len(s.marks))
	for _, b := range s.List() {
		if strings.Contains(strings.ToLower(b.Name), q) {
			out = append(out, b)
		}
	}
	return out
}

func (s *Store) save() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("cannot create bookmarks directory: %w", err)
	}
	data, err := yaml.Marshal(s.List())
	if err != nil {
		return fmt.Errorf("cannot encode bookmarks: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("cannot write bookmarks %s: %w", s.path, err)
	}
	return nil
}
