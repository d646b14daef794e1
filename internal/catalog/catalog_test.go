package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emphz/rfqcart/pkg/types"
)

func TestDefaultCatalog(t *testing.T) {
	c := Default()
	require.Greater(t, c.Len(), 0)

	for _, p := range c.Products() {
		assert.NotEmpty(t, p.Name, "product %s has no name", p.ID)
		assert.NotEmpty(t, p.Category, "product %s has no category", p.ID)
	}
}

func TestNewRejectsBadIDs(t *testing.T) {
	tests := []struct {
		name     string
		products []types.Product
	}{
		{name: "empty id", products: []types.Product{{ID: ""}}},
		{name: "duplicate id", products: []types.Product{{ID: "a"}, {ID: "a"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.products)
			assert.ErrorIs(t, err, types.ErrInvalidCatalog)
		})
	}
}

func TestByID(t *testing.T) {
	c, err := New([]types.Product{{ID: "a", Name: "A"}, {ID: "b", Name: "B"}})
	require.NoError(t, err)

	p, err := c.ByID("b")
	require.NoError(t, err)
	assert.Equal(t, "B", p.Name)

	_, err = c.ByID("missing")
	assert.ErrorIs(t, err, types.ErrProductNotFound)
}

func TestCategoriesAndByCategory(t *testing.T) {
	c, err := New([]types.Product{
		{ID: "1", Category: "Kiosks"},
		{ID: "2", Category: "Enclosures"},
		{ID: "3", Category: "Kiosks"},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{types.CategoryAll, "Kiosks", "Enclosures"}, c.Categories())

	var ids []string
	for _, p := range c.ByCategory("Kiosks") {
		ids = append(ids, p.ID)
	}
	assert.Equal(t, []string{"1", "3"}, ids)
	assert.Len(t, c.ByCategory(types.CategoryAll), 3)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	doc := `products:
  - id: x1
    name: Test Box
    category: Enclosures
    short_description: A box
    specs:
      - {label: Weight, value: 1 kg}
    features: [IP66 sealed]
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	c, err := Load(path)
	require.NoError(t, err)
	p, err := c.ByID("x1")
	require.NoError(t, err)
	assert.Equal(t, "A box", p.ShortDescription)
	assert.Equal(t, []types.Spec{{Label: "Weight", Value: "1 kg"}}, p.Specs)
	assert.Equal(t, []string{"IP66 sealed"}, p.Features)
}

func TestOpen(t *testing.T) {
	c, err := Open("")
	require.NoError(t, err)
	assert.Equal(t, Default().Len(), c.Len())

	_, err = Open(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestParseRejectsMalformedYAML(t *testing.T) {
	_, err := Parse([]byte("products: [unclosed"))
	assert.ErrorIs(t, err, types.ErrInvalidCatalog)
}

func TestRenderDescription(t *testing.T) {
	html, err := RenderDescription(types.Product{ID: "a", Description: "Made of **GRP**."})
	require.NoError(t, err)
	assert.Contains(t, html, "<strong>GRP</strong>")

	html, err = RenderDescription(types.Product{ID: "b", ShortDescription: "Plain text"})
	require.NoError(t, err)
	assert.Contains(t, html, "<p>Plain text</p>")
}
