package types

import "errors"

// CategoryAll selects every category in a FilterState.
const CategoryAll = "All"

// MaxCompare is the capacity of a compare selection.
const MaxCompare = 3

// Spec is one labelled technical value of a product, for example
// {"Weight", "4.2 kg"}.
type Spec struct {
	Label string `json:"label" yaml:"label"`
	Value string `json:"value" yaml:"value"`
}

// Product is immutable catalog reference data.
type Product struct {
	ID               string   `json:"id" yaml:"id"`
	Name             string   `json:"name" yaml:"name"`
	Category         string   `json:"category" yaml:"category"`
	ShortDescription string   `json:"shortDescription" yaml:"short_description"`
	Description      string   `json:"description,omitempty" yaml:"description"`
	Specs            []Spec   `json:"specs" yaml:"specs"`
	Features         []string `json:"features" yaml:"features"`
	Applications     []string `json:"applications,omitempty" yaml:"applications"`
}

// SpecValue returns the value for label and whether the product carries it.
func (p Product) SpecValue(label string) (string, bool) {
	for _, s := range p.Specs {
		if s.Label == label {
			return s.Value, true
		}
	}
	return "", false
}

// FilterState is the catalog page's current category and feature-tag
// selection. An empty Category behaves like CategoryAll.
type FilterState struct {
	Category string   `json:"category"`
	Features []string `json:"features"`
}

// Catalog errors.
var (
	ErrProductNotFound = errors.New("product not found")
	ErrInvalidCatalog  = errors.New("invalid catalog")
	ErrCompareFull     = errors.New("compare selection is full")
)
