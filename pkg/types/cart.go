package types

import "errors"

// LineItem is one product reference in the pending quote request. The JSON
// field names are the persisted layout read by every channel.
type LineItem struct {
	ProductID   string `json:"productId" yaml:"product_id"`
	Quantity    int    `json:"quantity" yaml:"quantity"`
	ProductName string `json:"productName" yaml:"product_name"`
}

// Validate reports whether the item can be stored in a cart.
func (li LineItem) Validate() error {
	if li.ProductID == "" {
		return ErrInvalidItem
	}
	if li.Quantity <= 0 {
		return ErrInvalidQuantity
	}
	return nil
}

// Cart errors.
var (
	ErrInvalidItem     = errors.New("line item requires a product id")
	ErrInvalidQuantity = errors.New("quantity must be positive")
	ErrEmptyCart       = errors.New("cart is empty")
)
