package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emphz/rfqcart/pkg/types"
)

func TestSelectionToggle(t *testing.T) {
	s := &Selection{}

	require.NoError(t, s.Toggle("a"))
	require.NoError(t, s.Toggle("b"))
	require.NoError(t, s.Toggle("c"))
	assert.Equal(t, []string{"a", "b", "c"}, s.IDs())

	err := s.Toggle("d")
	assert.ErrorIs(t, err, types.ErrCompareFull)
	assert.Equal(t, []string{"a", "b", "c"}, s.IDs(), "full selection is unchanged")

	require.NoError(t, s.Toggle("b"))
	assert.Equal(t, []string{"a", "c"}, s.IDs())

	require.NoError(t, s.Toggle("d"))
	assert.Equal(t, []string{"a", "c", "d"}, s.IDs())
	assert.True(t, s.Contains("d"))
	assert.Equal(t, 3, s.Len())

	s.Clear()
	assert.Equal(t, 0, s.Len())
}

func TestSelectionRemoveWhenFull(t *testing.T) {
	s := NewSelection("a", "b", "c")
	require.NoError(t, s.Toggle("a"), "removing is allowed at capacity")
	assert.Equal(t, []string{"b", "c"}, s.IDs())
}

func TestNewSelectionDropsOverflow(t *testing.T) {
	s := NewSelection("a", "b", "c", "d", "e")
	assert.Equal(t, []string{"a", "b", "c"}, s.IDs())
}

func TestCapacityNotice(t *testing.T) {
	assert.Equal(t, "You can compare up to 3 products at a time.", CapacityNotice)
}

func TestCompareLabelsAndNoValue(t *testing.T) {
	a := types.Product{ID: "A", Specs: []types.Spec{{Label: "Weight", Value: "4 kg"}, {Label: "Color", Value: "Grey"}}}
	b := types.Product{ID: "B", Specs: []types.Spec{{Label: "Weight", Value: "2 kg"}}}

	cmp := Compare([]types.Product{a, b})

	assert.Equal(t, []string{"Weight", "Color"}, cmp.Labels)
	require.Len(t, cmp.Rows, 2)
	assert.Equal(t, Row{Label: "Weight", Values: []string{"4 kg", "2 kg"}}, cmp.Rows[0])
	assert.Equal(t, Row{Label: "Color", Values: []string{"Grey", NoValue}}, cmp.Rows[1])
}

func TestCompareLabelOrderFollowsSelection(t *testing.T) {
	a := types.Product{ID: "A", Specs: []types.Spec{{Label: "Weight", Value: "1"}}}
	b := types.Product{ID: "B", Specs: []types.Spec{{Label: "Material", Value: "GRP"}, {Label: "Weight", Value: "2"}}}

	assert.Equal(t, []string{"Material", "Weight"}, Compare([]types.Product{b, a}).Labels)
	assert.Equal(t, []string{"Weight", "Material"}, Compare([]types.Product{a, b}).Labels)
}

func TestCompareEmpty(t *testing.T) {
	cmp := Compare(nil)
	assert.Empty(t, cmp.Labels)
	assert.Empty(t, cmp.Rows)
}

func TestCatalogCompareSelection(t *testing.T) {
	c := Default()
	s := NewSelection("grp-enclosure-600", "junction-box-150")

	cmp, err := c.CompareSelection(s)
	require.NoError(t, err)
	require.Len(t, cmp.Products, 2)
	assert.Equal(t, "grp-enclosure-600", cmp.Products[0].ID)
	assert.Contains(t, cmp.Labels, "Impact Resistance")

	for _, row := range cmp.Rows {
		if row.Label == "Impact Resistance" {
			assert.Equal(t, NoValue, row.Values[1])
		}
	}

	_, err = c.CompareSelection(NewSelection("nope"))
	assert.ErrorIs(t, err, types.ErrProductNotFound)
}
