package domain

import (
	"fmt"
	"strings"
)

const (
	DefaultMaxCategories = 4
	DefaultMinCategories = 1
)

// CategorySelection is one chosen primary with its chosen subcategories
type CategorySelection struct {
	Primary       string   `json:"primary" yaml:"primary"`
	Subcategories []string `json:"subcategories" yaml:"subcategories"`
}

// Category is a taxonomy entry served by the reference endpoints
type Category struct {
	Name          string   `json:"name"`
	Description   string   `json:"description,omitempty"`
	Subcategories []string `json:"subcategories"`
}

// Taxonomy is the closed category tree
type Taxonomy []Category

// Find returns the taxonomy entry for a primary name
func (t Taxonomy) Find(primary string) (Category, bool) {
	for _, c := range t {
		if strings.EqualFold(c.Name, primary) {
			return c, true
		}
	}
	return Category{}, false
}

// Names returns all primary names in taxonomy order
func (t Taxonomy) Names() []string {
	names := make([]string, len(t))
	for i, c := range t {
		names[i] = c.Name
	}
	return names
}

// Selection holds an ordered category selection bounded by Min and Max.
// Max is enforced on every mutation; Min only produces a warning.
type Selection struct {
	Min     int
	Max     int
	Entries []CategorySelection
}

// NewSelection creates a selection with the given bounds, falling back to 1..4
func NewSelection(min, max int, initial []CategorySelection) *Selection {
	if max <= 0 {
		max = DefaultMaxCategories
	}
	if min <= 0 {
		min = DefaultMinCategories
	}
	if min > max {
		min = max
	}
	s := &Selection{Min: min, Max: max}
	for _, e := range initial {
		if len(s.Entries) >= max {
			break
		}
		s.Entries = append(s.Entries, CategorySelection{
			Primary:       e.Primary,
			Subcategories: append([]string(nil), e.Subcategories...),
		})
	}
	return s
}

// IsSelected reports whether a primary is in the selection
func (s *Selection) IsSelected(primary string) bool {
	return s.indexOf(primary) >= 0
}

func (s *Selection) indexOf(primary string) int {
	for i, e := range s.Entries {
		if strings.EqualFold(e.Primary, primary) {
			return i
		}
	}
	return -1
}

// TogglePrimary adds or removes a primary. Removing drops its subcategories
// with it. Adding beyond Max is refused.
func (s *Selection) TogglePrimary(primary string) error {
	if idx := s.indexOf(primary); idx >= 0 {
		s.Entries = append(s.Entries[:idx:idx], s.Entries[idx+1:]...)
		return nil
	}
	if len(s.Entries) >= s.Max {
		return fmt.Errorf("at most %d categories can be selected", s.Max)
	}
	s.Entries = append(s.Entries, CategorySelection{Primary: primary, Subcategories: []string{}})
	return nil
}

// ToggleSubcategory flips a subcategory under an already selected primary
func (s *Selection) ToggleSubcategory(primary, sub string) error {
	idx := s.indexOf(primary)
	if idx < 0 {
		return fmt.Errorf("select %q before choosing its subcategories", primary)
	}
	subs := s.Entries[idx].Subcategories
	for i, existing := range subs {
		if strings.EqualFold(existing, sub) {
			s.Entries[idx].Subcategories = append(subs[:i:i], subs[i+1:]...)
			return nil
		}
	}
	s.Entries[idx].Subcategories = append(subs, sub)
	return nil
}

// Count returns the number of selected primaries
func (s *Selection) Count() int {
	return len(s.Entries)
}

// Warning returns inline text when the selection is below Min, or empty
func (s *Selection) Warning() string {
	if len(s.Entries) < s.Min {
		if s.Min == 1 {
			return "select at least 1 category"
		}
		return fmt.Sprintf("select at least %d categories", s.Min)
	}
	return ""
}

// Validate checks every entry against the taxonomy
func (s *Selection) Validate(t Taxonomy) error {
	for _, e := range s.Entries {
		cat, ok := t.Find(e.Primary)
		if !ok {
			return fmt.Errorf("unknown category %q", e.Primary)
		}
		for _, sub := range e.Subcategories {
			if !containsFold(cat.Subcategories, sub) {
				return fmt.Errorf("%q is not a subcategory of %q", sub, cat.Name)
			}
		}
	}
	return nil
}

// Values returns a copy of the entries suitable for an API payload
func (s *Selection) Values() []CategorySelection {
	out := make([]CategorySelection, len(s.Entries))
	for i, e := range s.Entries {
		subs := e.Subcategories
		if subs == nil {
			subs = []string{}
		}
		out[i] = CategorySelection{Primary: e.Primary, Subcategories: append([]string{}, subs...)}
	}
	return out
}

// ParseCategoryFlag parses "Primary" or "Primary:sub1,sub2"
func ParseCategoryFlag(raw string) (CategorySelection, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return CategorySelection{}, fmt.Errorf("empty category")
	}
	primary, rest, found := strings.Cut(raw, ":")
	sel := CategorySelection{Primary: strings.TrimSpace(primary), Subcategories: []string{}}
	if sel.Primary == "" {
		return CategorySelection{}, fmt.Errorf("category %q has no primary", raw)
	}
	if found {
		for _, sub := range strings.Split(rest, ",") {
			if sub = strings.TrimSpace(sub); sub != "" {
				sel.Subcategories = append(sel.Subcategories, sub)
			}
		}
	}
	return sel, nil
}

func containsFold(list []string, v string) bool {
	for _, item := range list {
		if strings.EqualFold(item, v) {
			return true
		}
	}
	return false
}
