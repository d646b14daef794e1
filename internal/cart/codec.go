package cart

import (
	"encoding/json"
	"fmt"

	"github.com/emphz/rfqcart/pkg/types"
)

// Encode serializes items to the persisted layout: a JSON array of
// {productId, quantity, productName}. A nil list encodes as "[]".
func Encode(items []types.LineItem) (string, error) {
	if items == nil {
		items = []types.LineItem{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return "", fmt.Errorf("encode cart: %w", err)
	}
	return string(data), nil
}

// Decode parses a persisted cart. Every entry must be a valid line item and
// product ids must be unique; a single bad entry rejects the whole value so a corrupt channel is skipped
// rather than half-loaded.
func Decode(value string) ([]types.LineItem, error) {
	var items []types.LineItem
	if err := json.Unmarshal([]byte(value), &items); err != nil {
		return nil, fmt.Errorf("decode cart: %w", err)
	}
	if items == nil {
		return nil, fmt.Errorf("decode cart: not an array")
	}
	seen := make(map[string]bool, len(items))
	for i, item := range items {
		if err := item.Validate(); err != nil {
			return nil, fmt.Errorf("decode cart: entry %d: %w", i, err)
		}
		if seen[item.ProductID] {
			return nil, fmt.Errorf("decode cart: entry %d: duplicate product %q: %w", i, item.ProductID, types.ErrInvalidItem)
		}
		seen[item.ProductID] = true
	}
	return items, nil
}
