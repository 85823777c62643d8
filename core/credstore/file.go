package credstore

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"

	"github.com/spf13/afero"
)

// File persists the credential pair as a JSON document on a filesystem.
// The afero abstraction keeps it testable against an in-memory filesystem.
type File struct {
	fs   afero.Fs
	path string
	mu   sync.Mutex
}

// NewFile creates a file-backed store writing to path on the host filesystem.
func NewFile(path string) *File {
	return NewFileFs(afero.NewOsFs(), path)
}

// NewFileFs creates a file-backed store on the given filesystem.
func NewFileFs(fs afero.Fs, path string) *File {
	return &File{fs: fs, path: path}
}

func (f *File) Save(_ context.Context, pair Pair) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := json.Marshal(pair)
	if err != nil {
		return errors.Join(ErrSaveFailed, err)
	}

	if dir := filepath.Dir(f.path); dir != "." {
		if err := f.fs.MkdirAll(dir, 0o700); err != nil {
			return errors.Join(ErrSaveFailed, err)
		}
	}

	// 0600: bearer credentials must not be readable by other users.
	if err := afero.WriteFile(f.fs, f.path, data, 0o600); err != nil {
		return errors.Join(ErrSaveFailed, err)
	}
	return nil
}

func (f *File) Load(_ context.Context) (Pair, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := afero.ReadFile(f.fs, f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return Pair{}, ErrNotFound
		}
		return Pair{}, errors.Join(ErrLoadFailed, err)
	}

	var pair Pair
	if err := json.Unmarshal(data, &pair); err != nil {
		return Pair{}, errors.Join(ErrLoadFailed, err)
	}
	if pair.Empty() {
		return Pair{}, ErrNotFound
	}
	return pair, nil
}

func (f *File) Clear(_ context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.fs.Remove(f.path); err != nil && !os.IsNotExist(err) {
		return errors.Join(ErrClearFailed, err)
	}
	return nil
}
