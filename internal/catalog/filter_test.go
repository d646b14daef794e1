package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/emphz/rfqcart/pkg/types"
)

func ids(products []types.Product) []string {
	out := make([]string, 0, len(products))
	for _, p := range products {
		out = append(out, p.ID)
	}
	return out
}

func sampleProducts() []types.Product {
	return []types.Product{
		{
			ID: "sealed", Name: "Sealed Box", Category: "Enclosures",
			Specs: []types.Spec{{Label: "Ingress Protection", Value: "IP66"}},
		},
		{
			ID: "plain", Name: "Plain Box", Category: "Enclosures",
			ShortDescription: "Indoor only",
			Specs:            []types.Spec{{Label: "Ingress Protection", Value: "IP54"}},
		},
		{
			ID: "flame", Name: "Tray", Category: "Cable Management",
			Features: []string{"UL94 V-0"},
		},
		{
			ID: "hazard", Name: "Ex Box", Category: "Junction Boxes",
			ShortDescription: "For Zone 1 areas",
			Specs:            []types.Spec{{Label: "Ingress Protection", Value: "IP67"}},
		},
		{
			ID: "kiosk", Name: "Kiosk", Category: "Kiosks",
			Features: []string{"Fire retardant panels", "IP66 doors"},
		},
	}
}

func TestFilterAllWithoutTagsReturnsEverythingInOrder(t *testing.T) {
	products := sampleProducts()

	assert.Equal(t, products, Filter(products, types.FilterState{Category: types.CategoryAll}))
	assert.Equal(t, products, Filter(products, types.FilterState{}))
}

func TestFilterCategoryExactMatch(t *testing.T) {
	got := Filter(sampleProducts(), types.FilterState{Category: "Enclosures"})
	assert.Equal(t, []string{"sealed", "plain"}, ids(got))

	got = Filter(sampleProducts(), types.FilterState{Category: "enclosures"})
	assert.Empty(t, got, "category match is exact")
}

func TestFilterFeatureTags(t *testing.T) {
	tests := []struct {
		name     string
		state    types.FilterState
		expected []string
	}{
		{
			name:     "ingress matches spec values and features",
			state:    types.FilterState{Features: []string{TagIngress}},
			expected: []string{"sealed", "hazard", "kiosk"},
		},
		{
			name:     "fire rated matches ul94 and fire",
			state:    types.FilterState{Features: []string{TagFireRated}},
			expected: []string{"flame", "kiosk"},
		},
		{
			name:     "ex-proof matches zone in short description",
			state:    types.FilterState{Features: []string{TagExplosion}},
			expected: []string{"hazard"},
		},
		{
			name:     "tags are AND-ed",
			state:    types.FilterState{Features: []string{TagIngress, TagFireRated}},
			expected: []string{"kiosk"},
		},
		{
			name:     "category and tag combine",
			state:    types.FilterState{Category: "Enclosures", Features: []string{TagIngress}},
			expected: []string{"sealed"},
		},
		{
			name:     "unknown tag never matches",
			state:    types.FilterState{Features: []string{"Waterproof"}},
			expected: []string{},
		},
		{
			name:     "unknown tag fails the AND",
			state:    types.FilterState{Features: []string{TagIngress, "Waterproof"}},
			expected: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ids(Filter(sampleProducts(), tt.state)))
		})
	}
}

func TestIngressTagMatchesExactlyProductsContainingTerm(t *testing.T) {
	withTerm := types.Product{ID: "in", Name: "Box", Specs: []types.Spec{{Label: "IP", Value: "IP66"}}}
	without := types.Product{ID: "out", Name: "Box", Specs: []types.Spec{{Label: "IP", Value: "IP65"}}}

	got := Filter([]types.Product{without, withTerm}, types.FilterState{Features: []string{TagIngress}})
	assert.Equal(t, []string{"in"}, ids(got))
}

func TestSearchTextIsLowercasedConcatenation(t *testing.T) {
	p := types.Product{
		Name:             "Box ONE",
		ShortDescription: "Short DESC",
		Features:         []string{"Feature A"},
		Specs:            []types.Spec{{Label: "Hidden Label", Value: "Value B"}},
		Description:      "long text ignored",
	}
	text := SearchText(p)

	assert.Contains(t, text, "feature a")
	assert.Contains(t, text, "value b")
	assert.Contains(t, text, "box one")
	assert.Contains(t, text, "short desc")
	assert.NotContains(t, text, "hidden label", "spec labels are not searched")
	assert.NotContains(t, text, "long text", "long description is not searched")
}

func TestFeatureRulesTable(t *testing.T) {
	assert.Equal(t, []string{TagIngress, TagFireRated, TagExplosion}, FeatureTags())

	r, ok := Rule(TagExplosion)
	assert.True(t, ok)
	assert.Equal(t, []string{"atex", "proof", "explosion", "zone"}, r.Keywords)
	assert.True(t, r.Matches("corrosion proof"), "loose keyword matching is intended")

	_, ok = Rule("Other")
	assert.False(t, ok)
	assert.False(t, MatchesTag(types.Product{Name: "anything"}, "Other"))
}

func TestDefaultCatalogFeatureFilter(t *testing.T) {
	got := Filter(Default().Products(), types.FilterState{Features: []string{TagExplosion}})
	assert.Contains(t, ids(got), "ex-junction-box-200")
}
