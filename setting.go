package prefs

import (
	"fmt"

	"github.com/goliatone/go-prefs/storage"
)

// SliderRange carries editor hints for numeric settings declared through the
// slider constructors. The model itself never interprets it.
type SliderRange struct {
	Min       float64
	Max       float64
	Precision int
}

// Setting binds a titled leaf of the preferences tree to an observable value.
// Identity is the breadcrumb assigned when the tree is handed to the model.
type Setting struct {
	titleKey    string
	description string
	value       Value
	validators  []Validator
	slider      *SliderRange
	breadcrumb  string
	marked      bool
	translate   func(string) string
}

func newSetting(title string, value Value) *Setting {
	return &Setting{titleKey: title, value: value}
}

// Bool declares a checkbox-style setting bound to cell.
func Bool(title string, cell *Cell[bool]) *Setting {
	return newSetting(title, &cellValue[bool]{cell: cell, kind: KindBool})
}

// Int declares an integer setting bound to cell.
func Int(title string, cell *Cell[int]) *Setting {
	return newSetting(title, &cellValue[int]{cell: cell, kind: KindInt})
}

// IntSlider declares an integer setting with a bounded range hint.
func IntSlider(title string, cell *Cell[int], min, max int) *Setting {
	s := Int(title, cell)
	s.slider = &SliderRange{Min: float64(min), Max: float64(max)}
	return s
}

// Float declares a floating point setting bound to cell.
func Float(title string, cell *Cell[float64]) *Setting {
	return newSetting(title, &cellValue[float64]{cell: cell, kind: KindFloat})
}

// FloatSlider declares a float setting with a bounded range hint and a
// display precision in decimal digits.
func FloatSlider(title string, cell *Cell[float64], min, max float64, precision int) *Setting {
	s := Float(title, cell)
	s.slider = &SliderRange{Min: min, Max: max, Precision: precision}
	return s
}

// String declares a text setting bound to cell.
func String(title string, cell *Cell[string]) *Setting {
	return newSetting(title, &cellValue[string]{cell: cell, kind: KindString})
}

// SingleSelect declares a setting choosing one of items. Values persist as
// the item's string rendering and resolve back against items on load.
func SingleSelect[T comparable](title string, items []T, cell *Cell[T]) *Setting {
	return newSetting(title, &selectValue[T]{cell: cell, items: items})
}

// MultiSelect declares a setting choosing any subset of items. The selection
// persists as a list; entries that no longer match an item are dropped.
func MultiSelect[T comparable](title string, items []T, cell *Cell[[]T]) *Setting {
	return newSetting(title, &multiSelectValue[T]{cell: cell, items: items})
}

// Custom declares a setting backed by a caller-supplied Value implementation.
func Custom(title string, value Value) *Setting {
	return newSetting(title, value)
}

// WithDescription attaches descriptive text shown alongside the control and
// optionally matched by search.
func (s *Setting) WithDescription(description string) *Setting {
	s.description = description
	return s
}

// Validate appends validators run by SetValue before the write happens.
func (s *Setting) Validate(validators ...Validator) *Setting {
	s.validators = append(s.validators, validators...)
	return s
}

// Title returns the display title, translated when a translator is set.
func (s *Setting) Title() string {
	if s.translate != nil {
		return s.translate(s.titleKey)
	}
	return s.titleKey
}

// RawTitle returns the untranslated title key breadcrumbs are built from.
func (s *Setting) RawTitle() string { return s.titleKey }

// Description returns the descriptive text, translated when a translator is
// set. Empty when the setting has none.
func (s *Setting) Description() string {
	if s.description == "" {
		return ""
	}
	if s.translate != nil {
		return s.translate(s.description)
	}
	return s.description
}

// Breadcrumb returns the persistence key. Empty until the tree is handed to
// a model.
func (s *Setting) Breadcrumb() string { return s.breadcrumb }

// Value returns the erased view of the bound cell.
func (s *Setting) Value() Value { return s.value }

// Kind returns the value shape.
func (s *Setting) Kind() Kind { return s.value.Kind() }

// Items returns the selection items for select settings, nil otherwise.
func (s *Setting) Items() []any {
	if iv, ok := s.value.(itemValue); ok {
		return iv.itemList()
	}
	return nil
}

// SliderRange reports the range hint for slider-declared settings.
func (s *Setting) SliderRange() (SliderRange, bool) {
	if s.slider == nil {
		return SliderRange{}, false
	}
	return *s.slider, true
}

// SetValue validates v and writes it to the bound cell. A validator failure
// returns ValidationError and leaves the cell untouched, so no change record
// is produced. Direct writes to the cell bypass validation.
func (s *Setting) SetValue(v any) error {
	for _, validator := range s.validators {
		if err := validator.Validate(s.valueContext(v)); err != nil {
			return asValidationError(s.breadcrumb, v, err)
		}
	}
	if err := s.value.Set(v); err != nil {
		return fmt.Errorf("prefs: set %q: %w", s.breadcrumb, err)
	}
	return nil
}

// Equal reports whether both settings resolve to the same breadcrumb.
func (s *Setting) Equal(other *Setting) bool {
	if s == nil || other == nil {
		return s == other
	}
	return s.breadcrumb == other.breadcrumb
}

// Mark flags the setting as a search match.
func (s *Setting) Mark() { s.marked = true }

// Unmark clears the search match flag.
func (s *Setting) Unmark() { s.marked = false }

// IsMarked reports whether the setting is currently a search match.
func (s *Setting) IsMarked() bool { return s.marked }

func (s *Setting) valueContext(candidate any) ValueContext {
	return ValueContext{
		Value:      candidate,
		Current:    s.value.Get(),
		Title:      s.Title(),
		Breadcrumb: s.breadcrumb,
	}
}

func (s *Setting) saveValue(adapter storage.Adapter) error {
	if lv, ok := s.value.(listValue); ok {
		return newStorageError("save", s.breadcrumb, adapter.SaveList(s.breadcrumb, lv.selectionStrings()))
	}
	v := s.value.Get()
	if s.value.Kind() == KindSingleSelect {
		v = fmt.Sprint(v)
	}
	return newStorageError("save", s.breadcrumb, adapter.SaveValue(s.breadcrumb, v))
}

func (s *Setting) loadValue(adapter storage.Adapter) error {
	if lv, ok := s.value.(listValue); ok {
		stored, err := adapter.LoadList(s.breadcrumb, lv.selectionStrings())
		if err != nil {
			return newStorageError("load", s.breadcrumb, err)
		}
		if err := s.value.Set(stored); err != nil {
			return newStorageError("load", s.breadcrumb, err)
		}
		return nil
	}

	def := s.value.Get()
	if s.value.Kind() == KindSingleSelect {
		def = fmt.Sprint(def)
	}
	stored, err := adapter.LoadValue(s.breadcrumb, def)
	if err != nil {
		return newStorageError("load", s.breadcrumb, err)
	}
	if err := s.value.Set(stored); err != nil {
		return newStorageError("load", s.breadcrumb, err)
	}
	return nil
}
