package prefs

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/lithammer/fuzzysearch/fuzzy"
)

// MatchMode selects how a query matches setting titles.
type MatchMode int

const (
	// MatchSubstring matches case-insensitive substrings.
	MatchSubstring MatchMode = iota
	// MatchFuzzy matches non-contiguous characters in order, diacritic and
	// case folded.
	MatchFuzzy
)

// SearchOption configures a Search instance.
type SearchOption func(*Search)

// WithMatchMode selects the matching algorithm. Default is MatchSubstring.
func WithMatchMode(mode MatchMode) SearchOption {
	return func(s *Search) {
		s.mode = mode
	}
}

// WithDescriptionSearch also matches against setting descriptions.
func WithDescriptionSearch(enabled bool) SearchOption {
	return func(s *Search) {
		s.descriptions = enabled
	}
}

// Result lists the settings matching a query, closest first, plus every
// category containing at least one match in tree order. Views use the
// category set to collapse the navigation tree down to relevant pages.
type Result struct {
	Query      string
	Settings   []*Setting
	Categories []*Category
}

// Search marks tree entities matching a query. A matched setting marks
// itself, its group, and its category chain up to the root. The exact mark
// set is tracked so re-querying and clearing unmark precisely what was
// marked, never more.
type Search struct {
	roots        []*Category
	mode         MatchMode
	descriptions bool
	query        string

	markedSettings   []*Setting
	markedGroups     []*Group
	markedCategories []*Category
}

// NewSearch constructs a search over the given roots.
func NewSearch(roots []*Category, opts ...SearchOption) *Search {
	s := &Search{roots: roots}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Query returns the active query, empty when cleared.
func (s *Search) Query() string { return s.query }

// Apply unmarks the previous result set, then marks everything matching
// query. An empty (or blank) query behaves like Clear. Applying the same
// query twice produces the same mark set as applying it once.
func (s *Search) Apply(query string) Result {
	s.unmarkAll()

	trimmed := strings.TrimSpace(query)
	s.query = trimmed
	if trimmed == "" {
		return Result{}
	}

	for _, root := range s.roots {
		s.walkCategory(root, nil, trimmed)
	}

	ranked := make([]*Setting, len(s.markedSettings))
	copy(ranked, s.markedSettings)
	lowerQuery := strings.ToLower(trimmed)
	sort.SliceStable(ranked, func(i, j int) bool {
		di := levenshtein.ComputeDistance(strings.ToLower(ranked[i].Title()), lowerQuery)
		dj := levenshtein.ComputeDistance(strings.ToLower(ranked[j].Title()), lowerQuery)
		return di < dj
	})

	categories := make([]*Category, len(s.markedCategories))
	copy(categories, s.markedCategories)

	return Result{Query: trimmed, Settings: ranked, Categories: categories}
}

// Clear unmarks the previous result set and resets the query.
func (s *Search) Clear() {
	s.unmarkAll()
	s.query = ""
}

func (s *Search) walkCategory(c *Category, ancestors []*Category, query string) {
	chain := append(ancestors, c)
	for _, g := range c.groups {
		for _, setting := range g.settings {
			if !s.matches(setting, query) {
				continue
			}
			setting.Mark()
			s.markedSettings = append(s.markedSettings, setting)
			if !g.IsMarked() {
				g.Mark()
				s.markedGroups = append(s.markedGroups, g)
			}
			for _, cat := range chain {
				if !cat.IsMarked() {
					cat.Mark()
					s.markedCategories = append(s.markedCategories, cat)
				}
			}
		}
	}
	for _, child := range c.children {
		s.walkCategory(child, chain, query)
	}
}

func (s *Search) matches(setting *Setting, query string) bool {
	if s.matchText(setting.Title(), query) {
		return true
	}
	if s.descriptions && setting.Description() != "" {
		return s.matchText(setting.Description(), query)
	}
	return false
}

func (s *Search) matchText(text, query string) bool {
	switch s.mode {
	case MatchFuzzy:
		return fuzzy.MatchNormalizedFold(query, text)
	default:
		return strings.Contains(strings.ToLower(text), strings.ToLower(query))
	}
}

func (s *Search) unmarkAll() {
	for _, setting := range s.markedSettings {
		setting.Unmark()
	}
	for _, g := range s.markedGroups {
		g.Unmark()
	}
	for _, c := range s.markedCategories {
		c.Unmark()
	}
	s.markedSettings = s.markedSettings[:0]
	s.markedGroups = s.markedGroups[:0]
	s.markedCategories = s.markedCategories[:0]
}
