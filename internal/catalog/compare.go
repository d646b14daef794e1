package catalog

import (
	"fmt"
	"slices"

	"github.com/emphz/rfqcart/pkg/types"
)

// NoValue is shown in a comparison cell when a product lacks the row's spec.
const NoValue = "-"

// CapacityNotice is the user-facing message for a rejected toggle.
var CapacityNotice = fmt.Sprintf("You can compare up to %d products at a time.", types.MaxCompare)

// Selection is an ordered set of at most types.MaxCompare product ids.
// The zero value is an empty selection.
type Selection struct {
	ids []string
}

// NewSelection builds a selection by toggling ids in order. Ids beyond the
// capacity are dropped.
func NewSelection(ids ...string) *Selection {
	s := &Selection{}
	for _, id := range ids {
		_ = s.Toggle(id)
	}
	return s
}

// Toggle removes id if selected, otherwise adds it. When the selection is
// full the add is refused with ErrCompareFull and nothing changes.
func (s *Selection) Toggle(id string) error {
	if i := slices.Index(s.ids, id); i >= 0 {
		s.ids = slices.Delete(s.ids, i, i+1)
		return nil
	}
	if len(s.ids) >= types.MaxCompare {
		return types.ErrCompareFull
	}
	s.ids = append(s.ids, id)
	return nil
}

// Contains reports whether id is selected.
func (s *Selection) Contains(id string) bool { return slices.Contains(s.ids, id) }

// IDs returns the selected ids in selection order.
func (s *Selection) IDs() []string { return slices.Clone(s.ids) }

// Len returns the number of selected ids.
func (s *Selection) Len() int { return len(s.ids) }

// Clear empties the selection.
func (s *Selection) Clear() { s.ids = nil }

// Row is one spec label across the compared products.
type Row struct {
	Label  string   `json:"label"`
	Values []string `json:"values"`
}

// Comparison is the side-by-side spec table for a selection.
type Comparison struct {
	Products []types.Product `json:"products"`
	Labels   []string        `json:"labels"`
	Rows     []Row           `json:"rows"`
}

// Compare derives the comparison table. Labels are the union of the products'
// spec labels in first-seen order; a product lacking a label gets NoValue.
func Compare(products []types.Product) Comparison {
	var labels []string
	for _, p := range products {
		for _, s := range p.Specs {
			if !slices.Contains(labels, s.Label) {
				labels = append(labels, s.Label)
			}
		}
	}

	rows := make([]Row, 0, len(labels))
	for _, label := range labels {
		row := Row{Label: label, Values: make([]string, len(products))}
		for i, p := range products {
			if v, ok := p.SpecValue(label); ok {
				row.Values[i] = v
			} else {
				row.Values[i] = NoValue
			}
		}
		rows = append(rows, row)
	}

	return Comparison{
		Products: slices.Clone(products),
		Labels:   labels,
		Rows:     rows,
	}
}

// Resolve maps selected ids to products in selection order.
// Returns ErrProductNotFound for an id missing from the catalog.
func (c *Catalog) Resolve(ids []string) ([]types.Product, error) {
	out := make([]types.Product, 0, len(ids))
	for _, id := range ids {
		p, err := c.ByID(id)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

// CompareSelection resolves s against the catalog and builds its table.
func (c *Catalog) CompareSelection(s *Selection) (Comparison, error) {
	products, err := c.Resolve(s.IDs())
	if err != nil {
		return Comparison{}, err
	}
	return Compare(products), nil
}
