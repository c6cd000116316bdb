// Package model defines domain types for finmate budgets, categories and transactions.
package model

import (
	"strings"

	"github.com/shopspring/decimal"
)

// CategoryID is the stable lowercase token identifying a category.
type CategoryID string

// The fixed category namespace.
const (
	CategoryFood      CategoryID = "food"
	CategoryTransport CategoryID = "transport"
	CategorySocial    CategoryID = "social"
	CategoryOther     CategoryID = "other"
)

// CategoryName is the display name of a category. Only the four names below exist.
type CategoryName string

const (
	NameFood      CategoryName = "Food"
	NameTransport CategoryName = "Transport"
	NameSocial    CategoryName = "Social"
	NameOther     CategoryName = "Other"
)

// Category is a spending category with an advisory weekly limit.
type Category struct {
	ID          CategoryID
	Name        CategoryName
	Color       string // display only
	WeeklyLimit decimal.Decimal
}

// Slug returns the URL-style slug of the category name, e.g. "food".
func (c Category) Slug() string {
	return strings.ToLower(string(c.Name))
}

// DefaultCategories returns the four built-in categories with zero limits,
// in display order.
func DefaultCategories() []Category {
	return []Category{
		{ID: CategoryFood, Name: NameFood, Color: "#10B981", WeeklyLimit: decimal.Zero},
		{ID: CategoryTransport, Name: NameTransport, Color: "#3B82F6", WeeklyLimit: decimal.Zero},
		{ID: CategorySocial, Name: NameSocial, Color: "#F59E0B", WeeklyLimit: decimal.Zero},
		{ID: CategoryOther, Name: NameOther, Color: "#8B5CF6", WeeklyLimit: decimal.Zero},
	}
}

// FindCategory returns the category with the given id.
func FindCategory(categories []Category, id CategoryID) (Category, bool) {
	for _, c := range categories {
		if c.ID == id {
			return c, true
		}
	}
	return Category{}, false
}

// CategoryNames returns the display names in order.
func CategoryNames(categories []Category) []string {
	names := make([]string, 0, len(categories))
	for _, c := range categories {
		names = append(names, string(c.Name))
	}
	return names
}
