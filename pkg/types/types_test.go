package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLineItemValidate(t *testing.T) {
	tests := []struct {
		name    string
		item    LineItem
		wantErr error
	}{
		{name: "valid item", item: LineItem{ProductID: "p1", Quantity: 1}},
		{name: "missing product id", item: LineItem{Quantity: 1}, wantErr: ErrInvalidItem},
		{name: "zero quantity", item: LineItem{ProductID: "p1"}, wantErr: ErrInvalidQuantity},
		{name: "negative quantity", item: LineItem{ProductID: "p1", Quantity: -2}, wantErr: ErrInvalidQuantity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.item.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestProductSpecValue(t *testing.T) {
	p := Product{Specs: []Spec{{Label: "Weight", Value: "4 kg"}}}

	v, ok := p.SpecValue("Weight")
	assert.True(t, ok)
	assert.Equal(t, "4 kg", v)

	_, ok = p.SpecValue("Color")
	assert.False(t, ok)
}

func TestContactValidate(t *testing.T) {
	tests := []struct {
		name    string
		contact Contact
		valid   bool
	}{
		{name: "name and email", contact: Contact{Name: "Ana", Email: "ana@example.com"}, valid: true},
		{name: "blank name", contact: Contact{Name: "  ", Email: "ana@example.com"}},
		{name: "missing email", contact: Contact{Name: "Ana"}},
		{name: "email without at sign", contact: Contact{Name: "Ana", Email: "ana.example.com"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.contact.Validate()
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrInvalidContact)
			}
		})
	}
}
