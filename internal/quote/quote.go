// Package quote submits the cart as a quote request. A successful submission
// clears the cart; a failed one leaves it untouched.
package quote

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/emphz/rfqcart/internal/cart"
	"github.com/emphz/rfqcart/internal/storage"
	"github.com/emphz/rfqcart/pkg/types"
)

// Submitter delivers a quote request to whoever answers it.
type Submitter interface {
	Submit(ctx context.Context, req types.QuoteRequest) (types.QuoteReceipt, error)
}

// ArchiveSubmitter accepts quote requests by recording them in the local
// quote archive.
type ArchiveSubmitter struct {
	archive *storage.QuoteArchive
	now     func() time.Time
}

// NewArchiveSubmitter returns a submitter writing to archive.
func NewArchiveSubmitter(archive *storage.QuoteArchive) *ArchiveSubmitter {
	return &ArchiveSubmitter{archive: archive, now: time.Now}
}

// Submit implements Submitter.
func (s *ArchiveSubmitter) Submit(ctx context.Context, req types.QuoteRequest) (types.QuoteReceipt, error) {
	if err := ctx.Err(); err != nil {
		return types.QuoteReceipt{}, err
	}

	id, err := uuid.NewV7()
	if err != nil {
		return types.QuoteReceipt{}, fmt.Errorf("generate quote id: %w", err)
	}
	at := s.now()
	if err := s.archive.Save(ctx, id.String(), req, at); err != nil {
		return types.QuoteReceipt{}, fmt.Errorf("archive quote: %w", err)
	}
	return types.QuoteReceipt{
		QuoteID:     id.String(),
		SubmittedAt: at,
		ItemCount:   len(req.Items),
	}, nil
}

// Service ties the cart to a submitter.
type Service struct {
	store     *cart.Store
	submitter Submitter
	logger    *zap.Logger
}

// NewService returns a Service. A nil logger disables logging.
func NewService(store *cart.Store, submitter Submitter, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: store, submitter: submitter, logger: logger}
}

// Submit sends the current cart for contact. Returns ErrInvalidContact or
// ErrEmptyCart before contacting the submitter; on submitter failure the cart
// is kept.
func (s *Service) Submit(ctx context.Context, contact types.Contact, notes string) (types.QuoteReceipt, error) {
	contact = normalizeContact(contact)
	if err := contact.Validate(); err != nil {
		return types.QuoteReceipt{}, err
	}

	items := s.store.Items()
	if len(items) == 0 {
		return types.QuoteReceipt{}, types.ErrEmptyCart
	}

	req := types.QuoteRequest{
		Contact: contact,
		Items:   items,
		Notes:   strings.TrimSpace(notes),
	}
	receipt, err := s.submitter.Submit(ctx, req)
	if err != nil {
		s.logger.Error("quote submission failed", zap.Error(err), zap.Int("items", len(items)))
		return types.QuoteReceipt{}, fmt.Errorf("submit quote: %w", err)
	}

	s.store.ClearCart()
	s.logger.Info("quote submitted",
		zap.String("quote_id", receipt.QuoteID),
		zap.Int("items", receipt.ItemCount))
	return receipt, nil
}

func normalizeContact(c types.Contact) types.Contact {
	return types.Contact{
		Name:    strings.TrimSpace(c.Name),
		Company: strings.TrimSpace(c.Company),
		Email:   strings.TrimSpace(c.Email),
		Phone:   strings.TrimSpace(c.Phone),
	}
}
