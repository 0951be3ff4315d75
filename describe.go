package prefs

import "fmt"

// Descriptor is one row of the model's flattened inventory: the addressable
// path, the rendered title, the value kind, and the current value's dynamic
// type.
type Descriptor struct {
	Breadcrumb string
	Title      string
	Kind       Kind
	Type       string
}

// Describe returns one descriptor per setting in tree order. Tooling and
// tests use it as a stable inventory of every persisted key.
func (m *Model) Describe() []Descriptor {
	descriptors := make([]Descriptor, 0, len(m.ordered))
	for _, s := range m.ordered {
		descriptors = append(descriptors, Descriptor{
			Breadcrumb: s.breadcrumb,
			Title:      s.Title(),
			Kind:       s.Kind(),
			Type:       typeName(s.value.Get()),
		})
	}
	return descriptors
}

func typeName(value any) string {
	if value == nil {
		return "nil"
	}
	return fmt.Sprintf("%T", value)
}
