package keymap

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/tidwall/sjson"
)

// Store owns a keymap and the file it came from.
//
// JSON files are patched in place with sjson so unknown fields and key
// order survive a rebinding. YAML and TOML files are re-encoded.
type Store struct {
	mu     sync.RWMutex
	path   string
	format Format
	raw    []byte
	km     *Keymap
}

// Open loads and validates the keymap at path.
func Open(path string) (*Store, error) {
	format, err := FormatFor(path)
	if err != nil {
		return nil, err
	}
	s := &Store{path: path, format: format}
	if err := s.Reload(); err != nil {
		return nil, err
	}
	return s, nil
}

// Create writes km to path in the format its extension selects and opens
// the result. An existing file is replaced.
func Create(path string, km *Keymap) (*Store, error) {
	format, err := FormatFor(path)
	if err != nil {
		return nil, err
	}
	if err := Validate(km); err != nil {
		return nil, err
	}
	data, err := Marshal(km, format)
	if err != nil {
		return nil, fmt.Errorf("encoding keymap: %w", err)
	}
	if err := writeFileAtomic(path, data); err != nil {
		return nil, err
	}
	return Open(path)
}

// NewMemoryStore wraps km in a store with no backing file. Writes only
// update the in-memory copy.
func NewMemoryStore(km *Keymap) *Store {
	if km == nil {
		km = &Keymap{}
	}
	return &Store{km: km.Clone()}
}

// Path returns the backing file, or "" for a memory store.
func (s *Store) Path() string {
	return s.path
}

// Keymap returns a copy of the current keymap.
func (s *Store) Keymap() *Keymap {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.km.Clone()
}

// Reload re-reads the backing file. On error the previous keymap is kept.
func (s *Store) Reload() error {
	if s.path == "" {
		return nil
	}
	data, err := os.ReadFile(s.path)
	if err != nil {
		return fmt.Errorf("reading keymap %s: %w", s.path, err)
	}
	km, err := Parse(data, s.format)
	if err != nil {
		return fmt.Errorf("parsing keymap %s: %w", s.path, err)
	}
	if err := Validate(km); err != nil {
		return fmt.Errorf("keymap %s: %w", s.path, err)
	}

	s.mu.Lock()
	s.raw = data
	s.km = km
	s.mu.Unlock()
	return nil
}

// SetKeyName rebinds one slot and writes the result back. Nothing changes
// in memory unless the write succeeds.
func (s *Store) SetKeyName(ref Ref, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.km.Clone()
	if err := next.SetKeyName(ref, name); err != nil {
		return err
	}
	if s.path == "" {
		s.km = next
		return nil
	}

	var data []byte
	var err error
	if s.format == FormatJSON && len(s.raw) > 0 {
		data, err = sjson.SetBytes(s.raw, ref.String(), name)
	} else {
		data, err = Marshal(next, s.format)
	}
	if err != nil {
		return fmt.Errorf("encoding keymap: %w", err)
	}
	if err := writeFileAtomic(s.path, data); err != nil {
		return err
	}

	s.raw = data
	s.km = next
	return nil
}

// writeFileAtomic replaces path via a temp file in the same directory.
func writeFileAtomic(path string, data []byte) error {
	perm := os.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		perm = info.Mode().Perm()
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("writing keymap %s: %w", path, err)
	}
	name := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(name)
		return fmt.Errorf("writing keymap %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(name)
		return fmt.Errorf("writing keymap %s: %w", path, err)
	}
	if err := os.Chmod(name, perm); err != nil {
		os.Remove(name)
		return fmt.Errorf("writing keymap %s: %w", path, err)
	}
	if err := os.Rename(name, path); err != nil {
		os.Remove(name)
		return fmt.Errorf("writing keymap %s: %w", path, err)
	}
	return nil
}
