package types

import (
	"errors"
	"strings"
	"time"
)

// Contact identifies the person requesting a quote.
type Contact struct {
	Name    string `json:"name"`
	Company string `json:"company,omitempty"`
	Email   string `json:"email"`
	Phone   string `json:"phone,omitempty"`
}

// Validate checks the fields a quote cannot be answered without.
func (c Contact) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return ErrInvalidContact
	}
	email := strings.TrimSpace(c.Email)
	if email == "" || !strings.Contains(email, "@") {
		return ErrInvalidContact
	}
	return nil
}

// QuoteRequest is the payload handed to a quote submitter.
type QuoteRequest struct {
	Contact Contact    `json:"contact"`
	Items   []LineItem `json:"items"`
	Notes   string     `json:"notes,omitempty"`
}

// QuoteReceipt acknowledges an accepted quote request.
type QuoteReceipt struct {
	QuoteID     string    `json:"quoteId"`
	SubmittedAt time.Time `json:"submittedAt"`
	ItemCount   int       `json:"itemCount"`
}

// Quote errors.
var (
	ErrInvalidContact = errors.New("contact requires a name and a valid email")
	ErrQuoteNotFound  = errors.New("quote not found")
)
