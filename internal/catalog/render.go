package catalog

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"

	"github.com/emphz/rfqcart/pkg/types"
)

// RenderDescription converts the product's Markdown description to HTML.
// Products without a long description fall back to the short one.
func RenderDescription(p types.Product) (string, error) {
	src := p.Description
	if src == "" {
		src = p.ShortDescription
	}
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(src), &buf); err != nil {
		return "", fmt.Errorf("render description for %s: %w", p.ID, err)
	}
	return buf.String(), nil
}
