package cli

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/emphz/rfqcart/internal/cart"
	"github.com/emphz/rfqcart/internal/catalog"
	"github.com/emphz/rfqcart/internal/quote"
	"github.com/emphz/rfqcart/internal/storage"
)

// app is the composition root for one command invocation: the attached
// storage backend, the cart store built over its channels, the catalog and
// the quote service. Commands receive it by handle; there is no global store.
type app struct {
	backend *storage.Backend
	store   *cart.Store
	catalog *catalog.Catalog
	archive *storage.QuoteArchive
	quotes  *quote.Service
	logger  *zap.Logger
}

// openApp attaches storage and builds the store. The caller must call close.
func (s *session) openApp() (*app, error) {
	cat, err := catalog.Open(s.settings.CatalogFile)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}

	dataDir, err := s.dataDir()
	if err != nil {
		return nil, fmt.Errorf("resolve data dir: %w", err)
	}

	backend := storage.NewBackend(s.logger.Named("storage"))
	if err := backend.Attach(s.settings.StorageConfig(dataDir)); err != nil {
		return nil, fmt.Errorf("attach storage: %w", err)
	}

	channels, err := backend.Channels()
	if err != nil {
		_ = backend.Detach()
		return nil, err
	}
	archive, err := backend.Quotes()
	if err != nil {
		_ = backend.Detach()
		return nil, err
	}

	store := cart.NewStore(s.logger.Named("cart"), channels...)
	return &app{
		backend: backend,
		store:   store,
		catalog: cat,
		archive: archive,
		quotes:  quote.NewService(store, quote.NewArchiveSubmitter(archive), s.logger.Named("quote")),
		logger:  s.logger,
	}, nil
}

func (a *app) close() {
	if err := a.backend.Detach(); err != nil {
		a.logger.Warn("detach storage failed", zap.Error(err))
	}
}
