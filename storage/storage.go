package storage

import (
	"github.com/goliatone/go-prefs/internal/coerce"
)

// Reserved keys shared by every backend. They live in the same namespace as
// setting breadcrumbs, so these exact names are off-limits as top-level
// category titles.
const (
	KeyWindowWidth      = "WINDOW_WIDTH"
	KeyWindowHeight     = "WINDOW_HEIGHT"
	KeyWindowPosX       = "WINDOW_POS_X"
	KeyWindowPosY       = "WINDOW_POS_Y"
	KeyDividerPosition  = "DIVIDER_POSITION"
	KeySelectedCategory = "SELECTED_CATEGORY"
)

// Adapter is the persistence backend for one preferences namespace.
// Namespacing happens at construction (a file path, a database, a map);
// keys passed here are already unique within the tree.
type Adapter interface {
	// SaveValue stores a scalar entry. Durable on return.
	SaveValue(key string, value any) error
	// LoadValue returns the stored entry, or def when key is absent.
	LoadValue(key string, def any) (any, error)
	// SaveList stores a list entry. List and scalar entries may share an
	// encoding but must round-trip through their own calls.
	SaveList(key string, values []any) error
	// LoadList returns the stored list, or def when key is absent.
	LoadList(key string, def []any) ([]any, error)
	// Clear removes every entry in the namespace.
	Clear() error
}

// WindowState is the persisted dialog geometry.
type WindowState struct {
	Width  float64
	Height float64
	X      float64
	Y      float64
}

// SaveWindowState stores the four geometry keys.
func SaveWindowState(a Adapter, state WindowState) error {
	if err := a.SaveValue(KeyWindowWidth, state.Width); err != nil {
		return err
	}
	if err := a.SaveValue(KeyWindowHeight, state.Height); err != nil {
		return err
	}
	if err := a.SaveValue(KeyWindowPosX, state.X); err != nil {
		return err
	}
	return a.SaveValue(KeyWindowPosY, state.Y)
}

// LoadWindowState returns the stored geometry, falling back to def per key.
func LoadWindowState(a Adapter, def WindowState) (WindowState, error) {
	width, err := loadFloat(a, KeyWindowWidth, def.Width)
	if err != nil {
		return def, err
	}
	height, err := loadFloat(a, KeyWindowHeight, def.Height)
	if err != nil {
		return def, err
	}
	x, err := loadFloat(a, KeyWindowPosX, def.X)
	if err != nil {
		return def, err
	}
	y, err := loadFloat(a, KeyWindowPosY, def.Y)
	if err != nil {
		return def, err
	}
	return WindowState{Width: width, Height: height, X: x, Y: y}, nil
}

// SaveDividerPosition stores the split position between the category tree
// and the settings pane.
func SaveDividerPosition(a Adapter, pos float64) error {
	return a.SaveValue(KeyDividerPosition, pos)
}

// LoadDividerPosition returns the stored split position or def.
func LoadDividerPosition(a Adapter, def float64) (float64, error) {
	return loadFloat(a, KeyDividerPosition, def)
}

// SaveSelectedCategory stores the breadcrumb of the last displayed category.
func SaveSelectedCategory(a Adapter, breadcrumb string) error {
	return a.SaveValue(KeySelectedCategory, breadcrumb)
}

// LoadSelectedCategory returns the stored category breadcrumb or def.
func LoadSelectedCategory(a Adapter, def string) (string, error) {
	v, err := a.LoadValue(KeySelectedCategory, def)
	if err != nil {
		return def, err
	}
	return coerce.To[string](v)
}

func loadFloat(a Adapter, key string, def float64) (float64, error) {
	v, err := a.LoadValue(key, def)
	if err != nil {
		return def, err
	}
	return coerce.To[float64](v)
}
