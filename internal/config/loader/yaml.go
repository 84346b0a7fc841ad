package loader

import (
	"gopkg.in/yaml.v3"
)

// NewYAMLLoader creates a loader for a YAML file.
func NewYAMLLoader(path string) *FileLoader {
	return NewYAMLLoaderWithFS(DefaultFS(), path)
}

// NewYAMLLoaderWithFS creates a YAML loader with a custom file system.
func NewYAMLLoaderWithFS(fs FileSystem, path string) *FileLoader {
	return &FileLoader{fs: fs, path: path, decode: yaml.Unmarshal}
}
