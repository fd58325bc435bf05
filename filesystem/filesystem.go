// Package filesystem routes every file access of the presenter through a swappable afero backend,
// so marker files, logs and caches can be exercised against an in-memory filesystem in tests.
package filesystem

import (
	"sync"

	"github.com/spf13/afero"
)

var (
	mu      sync.RWMutex
	backend = afero.Afero{Fs: afero.NewOsFs()}
)

// API returns the active afero.Afero instance.
func API() afero.Afero {
	mu.RLock()
	defer mu.RUnlock()
	return backend
}

// SetOsFs restores the native operating system backend.
func SetOsFs() {
	Use(afero.NewOsFs())
}

// SetMemMapFs switches to a volatile in-memory backend.
func SetMemMapFs() {
	Use(afero.NewMemMapFs())
}

// Use installs fs as the active backend.
func Use(fs afero.Fs) {
	mu.Lock()
	defer mu.Unlock()
	backend = afero.Afero{Fs: fs}
}

// ReadText reads the whole file at path as a string.
func ReadText(path string) (string, error) {
	data, err := API().ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
