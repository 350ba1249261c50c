package dictionary

import (
	"slices"
	"strings"
)

// Category classifies a term. The set is closed.
type Category string

// Known categories.
const (
	CategoryComponents      Category = "components"
	CategorySymptoms        Category = "symptoms"
	CategoryCauses          Category = "causes"
	CategoryCountermeasures Category = "countermeasures"
)

// String returns the string representation of a category.
func (c Category) String() string {
	return string(c)
}

// Categories returns every category in report order.
func Categories() []Category {
	return []Category{
		CategoryComponents,
		CategorySymptoms,
		CategoryCauses,
		CategoryCountermeasures,
	}
}

// IsValid returns true if the category is one of the defined constants.
func (c Category) IsValid() bool {
	return slices.Contains(Categories(), c)
}

// ParseCategory resolves a raw category value. Matching ignores case and
// surrounding whitespace, and the singular form is accepted
// ("Component" -> components).
func ParseCategory(s string) (Category, bool) {
	v := strings.ToLower(strings.TrimSpace(s))
	if v == "" {
		return "", false
	}
	for _, c := range Categories() {
		if v == string(c) || v+"s" == string(c) {
			return c, true
		}
	}
	return "", false
}
