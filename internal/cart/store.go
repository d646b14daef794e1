// Package cart holds the quote cart: an ordered list of line items with at
// most one entry per product, persisted to every configured channel after
// each mutation and restored from the first readable channel on creation.
package cart

import (
	"errors"
	"slices"
	"sync"

	"go.uber.org/zap"

	"github.com/emphz/rfqcart/pkg/types"
)

// Store is the single source of truth for the pending quote request.
// It is safe for concurrent use. The in-memory list is authoritative;
// persistence failures are logged and never undo a mutation.
type Store struct {
	mu       sync.Mutex
	items    []types.LineItem
	channels []types.Channel
	logger   *zap.Logger

	subMu  sync.Mutex
	subs   map[int]func([]types.LineItem)
	nextID int
}

// NewStore creates a store over channels, listed in read priority order, and
// loads the initial state from the first channel holding a decodable value.
// A nil logger disables logging.
func NewStore(logger *zap.Logger, channels ...types.Channel) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Store{
		channels: channels,
		logger:   logger,
		subs:     make(map[int]func([]types.LineItem)),
	}
	s.items = s.load()
	return s
}

// load reads the channels in order. Missing or undecodable values fall
// through to the next channel; if none yields a cart the result is empty.
func (s *Store) load() []types.LineItem {
	for _, ch := range s.channels {
		value, err := ch.Read()
		if errors.Is(err, types.ErrNoValue) {
			continue
		}
		if err != nil {
			s.logger.Warn("cart channel read failed",
				zap.String("channel", ch.Name()), zap.Error(err))
			continue
		}
		items, err := Decode(value)
		if err != nil {
			s.logger.Warn("cart channel holds unreadable value",
				zap.String("channel", ch.Name()), zap.Error(err))
			continue
		}
		s.logger.Debug("cart restored",
			zap.String("channel", ch.Name()), zap.Int("items", len(items)))
		return items
	}
	return []types.LineItem{}
}

// AddItem merges item into the cart: an existing entry for the same product
// has its quantity increased by item.Quantity, otherwise item is appended.
// Returns ErrInvalidItem or ErrInvalidQuantity without changing the cart.
func (s *Store) AddItem(item types.LineItem) error {
	if err := item.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	if i := s.indexLocked(item.ProductID); i >= 0 {
		s.items[i].Quantity += item.Quantity
	} else {
		s.items = append(s.items, item)
	}
	snapshot := s.commitLocked()
	s.mu.Unlock()

	s.notify(snapshot)
	return nil
}

// RemoveItem deletes the entry for productID. Removing an absent product is a
// no-op.
func (s *Store) RemoveItem(productID string) {
	s.mu.Lock()
	i := s.indexLocked(productID)
	if i < 0 {
		s.mu.Unlock()
		return
	}
	s.items = slices.Delete(s.items, i, i+1)
	snapshot := s.commitLocked()
	s.mu.Unlock()

	s.notify(snapshot)
}

// ClearCart empties the cart.
func (s *Store) ClearCart() {
	s.mu.Lock()
	s.items = []types.LineItem{}
	snapshot := s.commitLocked()
	s.mu.Unlock()

	s.notify(snapshot)
}

// Items returns a copy of the cart in insertion order.
func (s *Store) Items() []types.LineItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.items)
}

// Item returns the entry for productID.
func (s *Store) Item(productID string) (types.LineItem, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.indexLocked(productID); i >= 0 {
		return s.items[i], true
	}
	return types.LineItem{}, false
}

// Count returns the total quantity across all entries.
func (s *Store) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, item := range s.items {
		n += item.Quantity
	}
	return n
}

// Len returns the number of distinct products in the cart.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// Subscribe registers fn to receive a snapshot after every mutation and
// returns a function that removes the subscription.
func (s *Store) Subscribe(fn func([]types.LineItem)) (unsubscribe func()) {
	s.subMu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	s.subMu.Unlock()

	return func() {
		s.subMu.Lock()
		delete(s.subs, id)
		s.subMu.Unlock()
	}
}

func (s *Store) indexLocked(productID string) int {
	return slices.IndexFunc(s.items, func(li types.LineItem) bool {
		return li.ProductID == productID
	})
}

// commitLocked writes the current list to every channel and returns a
// snapshot for subscribers. The caller must hold s.mu.
func (s *Store) commitLocked() []types.LineItem {
	snapshot := slices.Clone(s.items)

	value, err := Encode(snapshot)
	if err != nil {
		s.logger.Error("cart encode failed", zap.Error(err))
		return snapshot
	}
	for _, ch := range s.channels {
		if err := ch.Write(value); err != nil {
			s.logger.Warn("cart channel write failed",
				zap.String("channel", ch.Name()), zap.Error(err))
		}
	}
	return snapshot
}

func (s *Store) notify(snapshot []types.LineItem) {
	s.subMu.Lock()
	fns := make([]func([]types.LineItem), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.subMu.Unlock()

	for _, fn := range fns {
		fn(slices.Clone(snapshot))
	}
}
