package macro

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

const currentVersion = 1

type persistedData struct {
	Version int                 `json:"version"`
	SavedAt time.Time           `json:"saved_at"`
	Macros  map[string][]string `json:"macros"`
}

// Export encodes every register as JSON.
func Export(r *Recorder) ([]byte, error) {
	data := persistedData{
		Version: currentVersion,
		SavedAt: time.Now().UTC(),
		Macros:  make(map[string][]string),
	}
	for _, name := range r.Registers() {
		data.Macros[name] = r.Get(name)
	}
	return json.MarshalIndent(data, "", "  ")
}

// Import decodes registers produced by Export. Without merge the existing
// registers are cleared first.
func Import(r *Recorder, raw []byte, merge bool) error {
	var data persistedData
	if err := json.Unmarshal(raw, &data); err != nil {
		return fmt.Errorf("decoding macros: %w", err)
	}
	if data.Version > currentVersion {
		return fmt.Errorf("macro file version %d is newer than supported version %d", data.Version, currentVersion)
	}
	if !merge {
		for _, name := range r.Registers() {
			r.Clear(name)
		}
	}
	for name, chords := range data.Macros {
		if err := r.Set(name, chords); err != nil {
			return err
		}
	}
	return nil
}

// Save writes every register to path, replacing the file atomically.
func Save(r *Recorder, path string) error {
	raw, err := Export(r)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating macro directory: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), ".macros-*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		return fmt.Errorf("writing macros: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("writing macros: %w", err)
	}
	return os.Rename(tmp.Name(), path)
}

// Load replaces the registers with the contents of path.
func Load(r *Recorder, path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading macros: %w", err)
	}
	return Import(r, raw, false)
}

// LoadOrCreate loads path if it exists and otherwise leaves the registers
// untouched.
func LoadOrCreate(r *Recorder, path string) error {
	err := Load(r, path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}
