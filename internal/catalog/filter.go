package catalog

import (
	"strings"

	"github.com/emphz/rfqcart/pkg/types"
)

// Feature tags offered by the catalog page.
const (
	TagIngress   = "IP66/IP67"
	TagFireRated = "Fire Rated"
	TagExplosion = "ATEX/Ex-Proof"
)

// FeatureRule maps a feature tag to keywords. A product matches the tag when
// its search text contains any keyword.
type FeatureRule struct {
	Tag      string
	Keywords []string
}

// Matches reports whether text (already lowercased) contains any keyword.
func (r FeatureRule) Matches(text string) bool {
	for _, kw := range r.Keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

// FeatureRules is the tag matching table. Matching is free-text;
// a tag missing from this table matches nothing.
var FeatureRules = []FeatureRule{
	{Tag: TagIngress, Keywords: []string{"ip66", "ip67"}},
	{Tag: TagFireRated, Keywords: []string{"ul94", "fire", "v-0"}},
	{Tag: TagExplosion, Keywords: []string{"atex", "proof", "explosion", "zone"}},
}

// FeatureTags returns the tags in FeatureRules order.
func FeatureTags() []string {
	tags := make([]string, len(FeatureRules))
	for i, r := range FeatureRules {
		tags[i] = r.Tag
	}
	return tags
}

// Rule returns the rule for tag.
func Rule(tag string) (FeatureRule, bool) {
	for _, r := range FeatureRules {
		if r.Tag == tag {
			return r, true
		}
	}
	return FeatureRule{}, false
}

// SearchText is the lowercased text a product's feature tags are matched
// against: its features, spec values, name and short description.
func SearchText(p types.Product) string {
	parts := make([]string, 0, len(p.Features)+len(p.Specs)+2)
	parts = append(parts, p.Features...)
	for _, s := range p.Specs {
		parts = append(parts, s.Value)
	}
	parts = append(parts, p.Name, p.ShortDescription)
	return strings.ToLower(strings.Join(parts, " "))
}

// MatchesTag reports whether p matches a single feature tag.
func MatchesTag(p types.Product, tag string) bool {
	r, ok := Rule(tag)
	if !ok {
		return false
	}
	return r.Matches(SearchText(p))
}

// Matches reports whether p passes the category filter and every selected
// feature tag.
func Matches(p types.Product, fs types.FilterState) bool {
	if fs.Category != "" && fs.Category != types.CategoryAll && p.Category != fs.Category {
		return false
	}
	if len(fs.Features) == 0 {
		return true
	}
	text := SearchText(p)
	for _, tag := range fs.Features {
		r, ok := Rule(tag)
		if !ok || !r.Matches(text) {
			return false
		}
	}
	return true
}

// Filter returns the products matching fs in their original order.
func Filter(products []types.Product, fs types.FilterState) []types.Product {
	out := make([]types.Product, 0, len(products))
	for _, p := range products {
		if Matches(p, fs) {
			out = append(out, p)
		}
	}
	return out
}
