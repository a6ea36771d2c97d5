package model

import "strings"

// Category sets are fixed and ordered. The first entry of each set is the
// fallback used when the assistant proposes a category outside the set.
var (
	incomeCategories = []string{
		"Salary",
		"Freelance",
		"Investment",
		"Gift",
		"Other",
	}

	expenseCategories = []string{
		"Food",
		"Transport",
		"Housing",
		"Utilities",
		"Entertainment",
		"Health",
		"Shopping",
		"Education",
		"Other",
	}
)

// CategoriesFor returns the category set for the given transaction type.
// Callers must not mutate the returned slice.
func CategoriesFor(typ TransactionType) []string {
	if typ == TypeIncome {
		return incomeCategories
	}
	return expenseCategories
}

// DefaultCategory returns the fallback category for the given type.
func DefaultCategory(typ TransactionType) string {
	return CategoriesFor(typ)[0]
}

// ValidCategory reports whether category is a member of the set for typ.
func ValidCategory(typ TransactionType, category string) bool {
	for _, c := range CategoriesFor(typ) {
		if strings.EqualFold(c, category) {
			return true
		}
	}
	return false
}

// NormalizeCategory coerces an assistant-proposed category into the set for
// typ: a member (compared case-insensitively) maps to its canonical spelling,
// anything else falls back to the first category of the set. Invalid values
// are coerced rather than rejected.
func NormalizeCategory(typ TransactionType, category string) string {
	for _, c := range CategoriesFor(typ) {
		if strings.EqualFold(c, category) {
			return c
		}
	}
	return DefaultCategory(typ)
}
