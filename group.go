package prefs

// Group collects settings under an optional subtitle. Untitled groups render
// without a heading and contribute an empty segment to breadcrumbs.
type Group struct {
	titleKey   string
	settings   []*Setting
	breadcrumb string
	marked     bool
	translate  func(string) string
}

// NewGroup constructs a group. Pass an empty title for an untitled group.
func NewGroup(title string, settings ...*Setting) *Group {
	return &Group{titleKey: title, settings: settings}
}

// Settings constructs an untitled group. Shorthand for NewGroup("", ...).
func Settings(settings ...*Setting) *Group {
	return NewGroup("", settings...)
}

// Title returns the display title, translated when a translator is set.
func (g *Group) Title() string {
	if g.titleKey == "" {
		return ""
	}
	if g.translate != nil {
		return g.translate(g.titleKey)
	}
	return g.titleKey
}

// RawTitle returns the untranslated title key.
func (g *Group) RawTitle() string { return g.titleKey }

// Settings returns the settings in declaration order.
func (g *Group) Settings() []*Setting { return g.settings }

// Breadcrumb returns the group's position key. Empty until the tree is
// handed to a model.
func (g *Group) Breadcrumb() string { return g.breadcrumb }

// Mark flags the group as containing a search match.
func (g *Group) Mark() { g.marked = true }

// Unmark clears the search match flag.
func (g *Group) Unmark() { g.marked = false }

// IsMarked reports whether the group currently contains a search match.
func (g *Group) IsMarked() bool { return g.marked }
