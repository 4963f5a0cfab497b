package domain

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"
)

// Category tags an event for filtering.
type Category string

const (
	CategoryMusic   Category = "Music"
	CategorySports  Category = "Sports"
	CategoryArt     Category = "Art"
	CategoryTheater Category = "Theater"
)

// defaultCategoryColor is used for categories without a dedicated colour.
const defaultCategoryColor = "#feca57"

var categoryOrder = []Category{CategoryMusic, CategorySports, CategoryArt, CategoryTheater}

var categoryColors = map[Category]string{
	CategoryMusic:   "#ff6b6b",
	CategorySports:  "#4ecdc4",
	CategoryArt:     "#45b7d1",
	CategoryTheater: "#96ceb4",
}

// AllCategories returns every known category in display order.
func AllCategories() []Category {
	out := make([]Category, len(categoryOrder))
	copy(out, categoryOrder)
	return out
}

// ParseCategory resolves a category name case-insensitively.
func ParseCategory(s string) (Category, error) {
	name := strings.TrimSpace(s)
	for _, c := range categoryOrder {
		if strings.EqualFold(string(c), name) {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidCategory, s)
}

// ParseCategories parses every name, failing on the first unknown one.
func ParseCategories(names []string) ([]Category, error) {
	out := make([]Category, 0, len(names))
	for _, n := range names {
		c, err := ParseCategory(n)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

// Color returns the display colour used for chips and map markers.
func (c Category) Color() string {
	if color, ok := categoryColors[c]; ok {
		return color
	}
	return defaultCategoryColor
}

// FilterSet is an immutable set of categories. The zero value is the empty set,
// which matches no events.
type FilterSet struct {
	members map[Category]struct{}
}

// NewFilterSet returns a set holding the given categories. Duplicates are ignored.
func NewFilterSet(categories ...Category) FilterSet {
	m := make(map[Category]struct{}, len(categories))
	for _, c := range categories {
		m[c] = struct{}{}
	}
	return FilterSet{members: m}
}

// AllFilters returns a set holding every known category.
func AllFilters() FilterSet {
	return NewFilterSet(categoryOrder...)
}

// Contains reports whether c is in the set.
func (f FilterSet) Contains(c Category) bool {
	_, ok := f.members[c]
	return ok
}

// Len returns the number of categories in the set.
func (f FilterSet) Len() int {
	return len(f.members)
}

// Toggle returns a new set with c removed if present, or added otherwise.
func (f FilterSet) Toggle(c Category) FilterSet {
	m := make(map[Category]struct{}, len(f.members)+1)
	for k := range f.members {
		m[k] = struct{}{}
	}
	if _, ok := m[c]; ok {
		delete(m, c)
	} else {
		m[c] = struct{}{}
	}
	return FilterSet{members: m}
}

// Categories returns the members in display order; unknown categories follow, sorted by name.
func (f FilterSet) Categories() []Category {
	out := make([]Category, 0, len(f.members))
	known := make(map[Category]struct{}, len(categoryOrder))
	for _, c := range categoryOrder {
		known[c] = struct{}{}
		if f.Contains(c) {
			out = append(out, c)
		}
	}
	var extra []string
	for c := range f.members {
		if _, ok := known[c]; !ok {
			extra = append(extra, string(c))
		}
	}
	slices.Sort(extra)
	for _, s := range extra {
		out = append(out, Category(s))
	}
	return out
}

// Equal reports whether both sets hold the same categories.
func (f FilterSet) Equal(other FilterSet) bool {
	if f.Len() != other.Len() {
		return false
	}
	for c := range f.members {
		if !other.Contains(c) {
			return false
		}
	}
	return true
}

// MarshalJSON encodes the set as an ordered list of category names.
func (f FilterSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(f.Categories())
}
