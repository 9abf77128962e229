package catalog

import (
	"fmt"
	"strings"
)

// Category groups building definitions for menus and placement rules
type Category string

const (
	CategoryHousing    Category = "HOUSING"
	CategoryFarming    Category = "FARMING"
	CategoryCrafting   Category = "CRAFTING"
	CategoryDecoration Category = "DECORATION"
	CategoryStorage    Category = "STORAGE"
	CategoryUtility    Category = "UTILITY"
	CategoryFurniture  Category = "FURNITURE"
)

// AllCategories returns all valid categories in menu order
func AllCategories() []Category {
	return []Category{
		CategoryHousing,
		CategoryFarming,
		CategoryCrafting,
		CategoryDecoration,
		CategoryStorage,
		CategoryUtility,
		CategoryFurniture,
	}
}

// String returns the string representation of the Category
func (c Category) String() string {
	return string(c)
}

// IsValid checks if the category is valid
func (c Category) IsValid() bool {
	for _, known := range AllCategories() {
		if c == known {
			return true
		}
	}
	return false
}

// ParseCategory parses a category name, case-insensitively
func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToUpper(strings.TrimSpace(s)))
	if !c.IsValid() {
		return "", fmt.Errorf("invalid category: %s", s)
	}
	return c, nil
}
