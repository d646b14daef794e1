// Package catalog holds the read-only product catalog and the derivations
// the catalog page makes from it: category and feature-tag filtering, and a
// bounded comparison selection with its spec-by-spec comparison table.
package catalog

import (
	_ "embed"
	"fmt"
	"os"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/emphz/rfqcart/pkg/types"
)

//go:embed products.yaml
var defaultCatalogYAML []byte

// catalogFile is the on-disk layout of a catalog.
type catalogFile struct {
	Products []types.Product `yaml:"products"`
}

// Catalog is an ordered, immutable list of products.
type Catalog struct {
	products []types.Product
	byID     map[string]int
}

// New builds a catalog from products, preserving their order.
// Returns ErrInvalidCatalog for an empty or duplicate id.
func New(products []types.Product) (*Catalog, error) {
	c := &Catalog{
		products: slices.Clone(products),
		byID:     make(map[string]int, len(products)),
	}
	for i, p := range c.products {
		if p.ID == "" {
			return nil, fmt.Errorf("product %d has no id: %w", i, types.ErrInvalidCatalog)
		}
		if _, dup := c.byID[p.ID]; dup {
			return nil, fmt.Errorf("duplicate product id %q: %w", p.ID, types.ErrInvalidCatalog)
		}
		c.byID[p.ID] = i
	}
	return c, nil
}

// Parse decodes a YAML catalog document.
func Parse(data []byte) (*Catalog, error) {
	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse catalog: %v: %w", err, types.ErrInvalidCatalog)
	}
	return New(f.Products)
}

// Load reads a YAML catalog from path.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return Parse(data)
}

// Default returns the catalog compiled into the binary.
func Default() *Catalog {
	c, err := Parse(defaultCatalogYAML)
	if err != nil {
		panic(fmt.Sprintf("embedded catalog: %v", err))
	}
	return c
}

// Open returns the catalog at path, or the embedded catalog when path is
// empty.
func Open(path string) (*Catalog, error) {
	if path == "" {
		return Default(), nil
	}
	return Load(path)
}

// Products returns every product in catalog order.
func (c *Catalog) Products() []types.Product {
	return slices.Clone(c.products)
}

// Len returns the number of products.
func (c *Catalog) Len() int { return len(c.products) }

// ByID returns the product with the given id.
// Returns ErrProductNotFound if no product has that id.
func (c *Catalog) ByID(id string) (types.Product, error) {
	i, ok := c.byID[id]
	if !ok {
		return types.Product{}, fmt.Errorf("%q: %w", id, types.ErrProductNotFound)
	}
	return c.products[i], nil
}

// ByCategory returns the products in category, in catalog order.
// CategoryAll returns every product.
func (c *Catalog) ByCategory(category string) []types.Product {
	return Filter(c.products, types.FilterState{Category: category})
}

// Categories returns CategoryAll followed by each category in first-seen
// order.
func (c *Catalog) Categories() []string {
	out := []string{types.CategoryAll}
	for _, p := range c.products {
		if !slices.Contains(out, p.Category) {
			out = append(out, p.Category)
		}
	}
	return out
}
