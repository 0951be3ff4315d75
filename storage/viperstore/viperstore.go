// Package viperstore persists preferences to a single config file through
// spf13/viper. One file is one namespace.
//
// Viper treats keys case-insensitively and interprets the breadcrumb
// delimiter as its own nesting separator, so entries land as a nested
// document mirroring the category tree. Both are stable across save/load as
// long as every access goes through this adapter.
package viperstore

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/spf13/viper"
)

// Adapter stores entries in a viper-managed config file. Every save writes
// the file through before returning.
type Adapter struct {
	mu   sync.Mutex
	v    *viper.Viper
	path string
}

// New opens or creates the config file at path. The file format follows the
// extension; extensionless paths default to YAML.
func New(path string) (*Adapter, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("viperstore: mkdir %s: %w", filepath.Dir(path), err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	if filepath.Ext(path) == "" {
		v.SetConfigType("yaml")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("viperstore: read %s: %w", path, err)
		}
	}

	return &Adapter{v: v, path: path}, nil
}

// Path returns the backing file location.
func (a *Adapter) Path() string { return a.path }

func (a *Adapter) SaveValue(key string, value any) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.v.Set(key, value)
	return a.write()
}

func (a *Adapter) LoadValue(key string, def any) (any, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.v.IsSet(key) {
		return def, nil
	}
	return a.v.Get(key), nil
}

func (a *Adapter) SaveList(key string, values []any) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.v.Set(key, values)
	return a.write()
}

func (a *Adapter) LoadList(key string, def []any) ([]any, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.v.IsSet(key) {
		return def, nil
	}
	stored := a.v.Get(key)
	switch list := stored.(type) {
	case []any:
		return list, nil
	case []string:
		out := make([]any, len(list))
		for i, s := range list {
			out[i] = s
		}
		return out, nil
	default:
		return nil, fmt.Errorf("viperstore: %q holds %T, not a list", key, stored)
	}
}

// Clear drops every entry and truncates the file. Viper has no per-key
// delete, so the instance is replaced wholesale.
func (a *Adapter) Clear() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	v := viper.New()
	v.SetConfigFile(a.path)
	if filepath.Ext(a.path) == "" {
		v.SetConfigType("yaml")
	}
	a.v = v
	return a.write()
}

func (a *Adapter) write() error {
	if err := a.v.WriteConfigAs(a.path); err != nil {
		return fmt.Errorf("viperstore: write %s: %w", a.path, err)
	}
	return nil
}
