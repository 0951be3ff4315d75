package prefs

import (
	"fmt"
	"strings"
)

// Delimiter joins breadcrumb segments. It is fixed because breadcrumbs are
// the stored keys; changing it would orphan every persisted value.
const Delimiter = "."

// assignBreadcrumbs walks the tree depth-first and assigns every category,
// group, and setting its breadcrumb. Segments come from raw title keys, not
// translations, so stored keys do not move with the locale. The walk fails
// on a title containing the delimiter and on any two elements resolving to
// the same breadcrumb.
func assignBreadcrumbs(roots []*Category) error {
	seen := make(map[string]struct{})
	for _, root := range roots {
		if err := assignCategory(root, "", seen); err != nil {
			return err
		}
	}
	return nil
}

func assignCategory(c *Category, parent string, seen map[string]struct{}) error {
	crumb, err := extendBreadcrumb(parent, c.titleKey)
	if err != nil {
		return err
	}
	if err := claimBreadcrumb(seen, crumb); err != nil {
		return err
	}
	c.breadcrumb = crumb

	for _, g := range c.groups {
		if err := assignGroup(g, crumb, seen); err != nil {
			return err
		}
	}
	for _, child := range c.children {
		if err := assignCategory(child, crumb, seen); err != nil {
			return err
		}
	}
	return nil
}

func assignGroup(g *Group, parent string, seen map[string]struct{}) error {
	crumb, err := extendBreadcrumb(parent, g.titleKey)
	if err != nil {
		return err
	}
	if err := claimBreadcrumb(seen, crumb); err != nil {
		return err
	}
	g.breadcrumb = crumb

	for _, s := range g.settings {
		settingCrumb, err := extendBreadcrumb(crumb, s.titleKey)
		if err != nil {
			return err
		}
		if err := claimBreadcrumb(seen, settingCrumb); err != nil {
			return err
		}
		s.breadcrumb = settingCrumb
	}
	return nil
}

// extendBreadcrumb appends one segment. Untitled groups contribute an empty
// segment, so their settings still key under the enclosing category.
func extendBreadcrumb(parent, title string) (string, error) {
	if strings.Contains(title, Delimiter) {
		return "", &ConfigurationError{
			Breadcrumb: parent,
			Err:        fmt.Errorf("%w: %q", ErrDelimiterInTitle, title),
		}
	}
	if parent == "" {
		return title, nil
	}
	return parent + Delimiter + title, nil
}

func claimBreadcrumb(seen map[string]struct{}, crumb string) error {
	if _, ok := seen[crumb]; ok {
		return &ConfigurationError{
			Breadcrumb: crumb,
			Err:        fmt.Errorf("%w: %s", ErrDuplicateBreadcrumb, crumb),
		}
	}
	seen[crumb] = struct{}{}
	return nil
}
