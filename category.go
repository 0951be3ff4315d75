package prefs

// Category is a navigation node. It carries groups of settings and optional
// child categories shown as a subtree in the category list.
type Category struct {
	titleKey   string
	groups     []*Group
	children   []*Category
	icon       any
	breadcrumb string
	marked     bool
	translate  func(string) string
}

// NewCategory constructs a category from groups.
func NewCategory(title string, groups ...*Group) *Category {
	return &Category{titleKey: title, groups: groups}
}

// SettingsCategory constructs a category holding settings directly, wrapping
// them in a single untitled group.
func SettingsCategory(title string, settings ...*Setting) *Category {
	if len(settings) == 0 {
		return NewCategory(title)
	}
	return NewCategory(title, NewGroup("", settings...))
}

// WithSubCategories attaches child categories and returns the receiver.
func (c *Category) WithSubCategories(children ...*Category) *Category {
	c.children = append(c.children, children...)
	return c
}

// WithIcon attaches an opaque icon handle for the view layer and returns the
// receiver. The model never interprets it.
func (c *Category) WithIcon(icon any) *Category {
	c.icon = icon
	return c
}

// Title returns the display title, translated when a translator is set.
func (c *Category) Title() string {
	if c.translate != nil {
		return c.translate(c.titleKey)
	}
	return c.titleKey
}

// RawTitle returns the untranslated title key.
func (c *Category) RawTitle() string { return c.titleKey }

// Groups returns the category's groups in declaration order.
func (c *Category) Groups() []*Group { return c.groups }

// Children returns the child categories in declaration order.
func (c *Category) Children() []*Category { return c.children }

// Icon returns the opaque icon handle, nil when none was set.
func (c *Category) Icon() any { return c.icon }

// Breadcrumb returns the category's position key. Empty until the tree is
// handed to a model.
func (c *Category) Breadcrumb() string { return c.breadcrumb }

// Mark flags the category as containing a search match.
func (c *Category) Mark() { c.marked = true }

// Unmark clears the search match flag.
func (c *Category) Unmark() { c.marked = false }

// IsMarked reports whether the category currently contains a search match.
func (c *Category) IsMarked() bool { return c.marked }
