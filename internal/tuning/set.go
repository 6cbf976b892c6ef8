package tuning

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"sort"

	"kinemotion/internal/locomotion"

	"gopkg.in/yaml.v3"
)

//go:embed profiles/*.yaml
var profilesFS embed.FS

// ErrNoDir is returned when saving a set that was loaded from the embedded
// profiles.
var ErrNoDir = errors.New("profile set has no directory")

// Set is a collection of named profiles.
type Set struct {
	Dir      string // empty when loaded from the embedded copies
	profiles map[string]Profile
}

// Load reads every profile in dir. A missing directory falls back to the
// embedded profiles so headless tools and tests still get the stock set.
func Load(dir string) (*Set, error) {
	if dir == "" {
		return LoadEmbedded()
	}
	if _, err := os.Stat(dir); errors.Is(err, fs.ErrNotExist) {
		log.Printf("Tuning: %s not found, using embedded profiles", dir)
		return LoadEmbedded()
	}
	s, err := loadFS(os.DirFS(dir), ".")
	if err != nil {
		return nil, err
	}
	s.Dir = dir
	return s, nil
}

// LoadEmbedded reads the profiles compiled into the binary.
func LoadEmbedded() (*Set, error) {
	return loadFS(profilesFS, "profiles")
}

func loadFS(fsys fs.FS, root string) (*Set, error) {
	entries, err := fs.ReadDir(fsys, root)
	if err != nil {
		return nil, fmt.Errorf("tuning: read %s: %w", root, err)
	}
	s := &Set{profiles: make(map[string]Profile)}
	for _, e := range entries {
		if e.IsDir() || !IsProfileFile(e.Name()) {
			continue
		}
		path := filepath.ToSlash(filepath.Join(root, e.Name()))
		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return nil, fmt.Errorf("tuning: load %s: %w", path, err)
		}
		p, err := Parse(data, profileName(path))
		if err != nil {
			return nil, err
		}
		s.profiles[p.Name] = p
	}
	log.Printf("Tuning: loaded %d profiles", len(s.profiles))
	return s, nil
}

// Reload re-reads one profile file and replaces it in the set. The old
// profile stays in place if the file does not parse.
func (s *Set) Reload(path string) (Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Profile{}, fmt.Errorf("tuning: load %s: %w", path, err)
	}
	p, err := Parse(data, profileName(path))
	if err != nil {
		return Profile{}, err
	}
	s.Put(p)
	return p, nil
}

// Put adds or replaces a profile.
func (s *Set) Put(p Profile) {
	if s.profiles == nil {
		s.profiles = make(map[string]Profile)
	}
	s.profiles[p.Name] = p
}

// Profile returns the named profile.
func (s *Set) Profile(name string) (Profile, error) {
	p, ok := s.profiles[name]
	if !ok {
		return Profile{}, fmt.Errorf("tuning: %q: %w", name, ErrUnknownProfile)
	}
	return p, nil
}

// Tuning returns the locomotion parameters of the named profile.
func (s *Set) Tuning(name string) (locomotion.Tuning, error) {
	p, err := s.Profile(name)
	if err != nil {
		return locomotion.Tuning{}, err
	}
	return p.Tuning(), nil
}

// Names lists the profiles in sorted order.
func (s *Set) Names() []string {
	names := make([]string, 0, len(s.profiles))
	for name := range s.profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Save writes the named profile back to Dir as YAML.
func (s *Set) Save(name string) error {
	if s.Dir == "" {
		return fmt.Errorf("tuning: save %s: %w", name, ErrNoDir)
	}
	p, err := s.Profile(name)
	if err != nil {
		return err
	}
	data, err := yaml.Marshal(p)
	if err != nil {
		return fmt.Errorf("tuning: marshal %s: %w", name, err)
	}
	path := filepath.Join(s.Dir, name+".yaml")
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("tuning: save %s: %w", name, err)
	}
	log.Printf("Tuning: saved %s", path)
	return nil
}
