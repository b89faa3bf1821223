package core

import (
	"fmt"
	"strings"
)

// Category is a user-defined task label with a display style token.
type Category struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

// CategoryList is the ordered category registry. Categories are appended the
// first time a user types a new name and are never pruned automatically;
// tasks keep referencing removed categories and render with a default style.
type CategoryList []Category

// DefaultCategories returns the registry seeded for a fresh account.
func DefaultCategories() CategoryList {
	return CategoryList{
		{Name: "工作", Color: "blue"},
		{Name: "生活", Color: "emerald"},
		{Name: "健康", Color: "orange"},
		{Name: "学习", Color: "violet"},
	}
}

// Add appends a category, rejecting blank and duplicate names.
func (l *CategoryList) Add(name, color string) (Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Category{}, fmt.Errorf("add category: %w", ErrEmptyLabel)
	}
	if l.Has(name) {
		return Category{}, fmt.Errorf("add category %q: %w", name, ErrDuplicateCategory)
	}
	c := Category{Name: name, Color: color}
	*l = append(*l, c)
	return c, nil
}

// Remove deletes the named category. Tasks tagged with it are untouched.
func (l *CategoryList) Remove(name string) error {
	for i := range *l {
		if (*l)[i].Name == name {
			*l = append((*l)[:i], (*l)[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("remove category %q: %w", name, ErrNotFound)
}

// Has reports whether a category with the given name exists.
func (l CategoryList) Has(name string) bool {
	for _, c := range l {
		if c.Name == name {
			return true
		}
	}
	return false
}
