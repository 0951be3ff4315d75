package prefs

import (
	"fmt"
	"reflect"

	"github.com/goliatone/go-prefs/internal/coerce"
)

// Kind identifies the value shape a setting holds. Storage adapters and
// editors branch on it instead of reflecting over the bound cell.
type Kind int

const (
	KindBool Kind = iota
	KindInt
	KindFloat
	KindString
	KindSingleSelect
	KindMultiSelect
	KindCustom
)

func (k Kind) String() string {
	switch k {
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindSingleSelect:
		return "single-select"
	case KindMultiSelect:
		return "multi-select"
	case KindCustom:
		return "custom"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Cell is an observable value slot. The declaring application keeps the
// reference, so reads and writes on its side stay visible to the model and
// vice versa. Cells are not safe for concurrent use; the model assumes a
// single goroutine owns the whole tree.
type Cell[T any] struct {
	value    T
	watchers []cellWatcher[T]
	nextID   int
}

type cellWatcher[T any] struct {
	id int
	fn func(old, new T)
}

// NewCell constructs a cell holding initial.
func NewCell[T any](initial T) *Cell[T] {
	return &Cell[T]{value: initial}
}

// Get returns the current value.
func (c *Cell[T]) Get() T {
	return c.value
}

// Set stores v and notifies watchers in registration order. Writing a value
// equal to the current one is a no-op and fires nothing.
func (c *Cell[T]) Set(v T) {
	old := c.value
	if reflect.DeepEqual(old, v) {
		return
	}
	c.value = v
	for _, w := range c.watchers {
		w.fn(old, v)
	}
}

// Watch registers fn for value changes and returns a cancel func that
// removes it. The callback runs synchronously inside Set.
func (c *Cell[T]) Watch(fn func(old, new T)) (cancel func()) {
	id := c.nextID
	c.nextID++
	c.watchers = append(c.watchers, cellWatcher[T]{id: id, fn: fn})
	return func() {
		for i, w := range c.watchers {
			if w.id == id {
				c.watchers = append(c.watchers[:i], c.watchers[i+1:]...)
				return
			}
		}
	}
}

// Value is the erased view of a bound cell. Settings expose it so history,
// storage, and editors can work without knowing the concrete element type.
type Value interface {
	Kind() Kind
	Get() any
	Set(v any) error
	Watch(fn func(old, new any)) (cancel func())
}

// cellValue adapts a typed cell to the erased Value surface.
type cellValue[T any] struct {
	cell *Cell[T]
	kind Kind
}

func (v *cellValue[T]) Kind() Kind { return v.kind }

func (v *cellValue[T]) Get() any { return v.cell.Get() }

func (v *cellValue[T]) Set(raw any) error {
	typed, err := coerce.To[T](raw)
	if err != nil {
		return err
	}
	v.cell.Set(typed)
	return nil
}

func (v *cellValue[T]) Watch(fn func(old, new any)) (cancel func()) {
	return v.cell.Watch(func(old, new T) {
		fn(old, new)
	})
}

// selectValue adapts a single-selection cell. Stored form is the item's
// string rendering, matched back against items on load.
type selectValue[T comparable] struct {
	cell  *Cell[T]
	items []T
}

func (v *selectValue[T]) Kind() Kind { return KindSingleSelect }

func (v *selectValue[T]) Get() any { return v.cell.Get() }

func (v *selectValue[T]) Set(raw any) error {
	if typed, ok := raw.(T); ok {
		v.cell.Set(typed)
		return nil
	}
	if s, ok := raw.(string); ok {
		for _, item := range v.items {
			if fmt.Sprint(item) == s {
				v.cell.Set(item)
				return nil
			}
		}
		return fmt.Errorf("prefs: %q does not match any selection item", s)
	}
	typed, err := coerce.To[T](raw)
	if err != nil {
		return err
	}
	v.cell.Set(typed)
	return nil
}

func (v *selectValue[T]) Watch(fn func(old, new any)) (cancel func()) {
	return v.cell.Watch(func(old, new T) {
		fn(old, new)
	})
}

func (v *selectValue[T]) itemList() []any {
	out := make([]any, len(v.items))
	for i, item := range v.items {
		out[i] = item
	}
	return out
}

// multiSelectValue adapts a multi-selection cell. Stored form is the list of
// string renderings; unmatched entries are dropped on load, mirroring what a
// selection control bound to items would do.
type multiSelectValue[T comparable] struct {
	cell  *Cell[[]T]
	items []T
}

func (v *multiSelectValue[T]) Kind() Kind { return KindMultiSelect }

func (v *multiSelectValue[T]) Get() any { return v.cell.Get() }

func (v *multiSelectValue[T]) Set(raw any) error {
	if typed, ok := raw.([]T); ok {
		v.cell.Set(typed)
		return nil
	}
	list, ok := raw.([]any)
	if !ok {
		typed, err := coerce.To[[]T](raw)
		if err != nil {
			return err
		}
		v.cell.Set(typed)
		return nil
	}
	selected := make([]T, 0, len(list))
	for _, entry := range list {
		s := fmt.Sprint(entry)
		for _, item := range v.items {
			if fmt.Sprint(item) == s {
				selected = append(selected, item)
				break
			}
		}
	}
	v.cell.Set(selected)
	return nil
}

func (v *multiSelectValue[T]) Watch(fn func(old, new any)) (cancel func()) {
	return v.cell.Watch(func(old, new []T) {
		fn(old, new)
	})
}

func (v *multiSelectValue[T]) itemList() []any {
	out := make([]any, len(v.items))
	for i, item := range v.items {
		out[i] = item
	}
	return out
}

func (v *multiSelectValue[T]) selectionStrings() []any {
	selected := v.cell.Get()
	out := make([]any, len(selected))
	for i, item := range selected {
		out[i] = fmt.Sprint(item)
	}
	return out
}

// listValue is implemented by multi-selection values so storage can route
// them through the list calls instead of the scalar ones.
type listValue interface {
	selectionStrings() []any
}

func equalValues(a, b any) bool {
	return reflect.DeepEqual(a, b)
}

// itemValue is implemented by selection values that carry a fixed item set.
type itemValue interface {
	itemList() []any
}
