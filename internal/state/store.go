// Package state persists the selected project between CLI invocations.
package state

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

// Store is the key-value surface the CLI depends on; the file-backed
// implementation below is the only one in production.
type Store interface {
	Project() (string, error)
	SetProject(name string) error
}

// FileStore keeps the selection in a single-field JSON file.
type FileStore struct {
	fs   afero.Fs
	path string
}

type fileState struct {
	ProjectName string `json:"project_name"`
}

// NewFileStore builds a store at path on the real filesystem. An empty
// path is a configuration error: nothing can be persisted without one.
func NewFileStore(path string) (*FileStore, error) {
	return NewFileStoreFS(afero.NewOsFs(), path)
}

// NewFileStoreFS is NewFileStore with an injectable filesystem.
func NewFileStoreFS(fs afero.Fs, path string) (*FileStore, error) {
	if path == "" {
		return nil, fmt.Errorf("no state file path configured")
	}
	return &FileStore{fs: fs, path: path}, nil
}

// Project returns the persisted project name, or "" when nothing has been
// selected yet.
func (s *FileStore) Project() (string, error) {
	data, err := afero.ReadFile(s.fs, s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("failed to read state file: %w", err)
	}
	var st fileState
	if err := json.Unmarshal(data, &st); err != nil {
		return "", fmt.Errorf("failed to parse state file: %w", err)
	}
	return st.ProjectName, nil
}

// SetProject persists the selection, creating parent directories as
// needed.
func (s *FileStore) SetProject(name string) error {
	if err := s.fs.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}
	data, err := json.MarshalIndent(fileState{ProjectName: name}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal state: %w", err)
	}
	if err := afero.WriteFile(s.fs, s.path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write state file: %w", err)
	}
	return nil
}
