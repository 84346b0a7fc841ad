package loader

import (
	"errors"

	"github.com/pelletier/go-toml/v2"
)

// NewTOMLLoader creates a loader for a TOML file.
func NewTOMLLoader(path string) *FileLoader {
	return NewTOMLLoaderWithFS(DefaultFS(), path)
}

// NewTOMLLoaderWithFS creates a TOML loader with a custom file system.
func NewTOMLLoaderWithFS(fs FileSystem, path string) *FileLoader {
	return &FileLoader{fs: fs, path: path, decode: decodeTOML}
}

func decodeTOML(data []byte, v any) error {
	err := toml.Unmarshal(data, v)
	var derr *toml.DecodeError
	if errors.As(err, &derr) {
		row, _ := derr.Position()
		return &ParseError{Line: row, Message: derr.Error(), Err: err}
	}
	return err
}
