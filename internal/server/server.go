// Package server exposes the quote cart, the catalog engine and quote
// submission as a local JSON HTTP API. Every response that reports the cart
// also sets the cart cookie, so cookie-aware clients see the same value the
// cookie channel holds.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/emphz/rfqcart/internal/cart"
	"github.com/emphz/rfqcart/internal/catalog"
	"github.com/emphz/rfqcart/internal/quote"
)

const shutdownTimeout = 5 * time.Second

// Server routes API requests to the store, catalog and quote service it was
// built with.
type Server struct {
	store   *cart.Store
	catalog *catalog.Catalog
	quotes  *quote.Service
	logger  *zap.Logger
	now     func() time.Time
	mux     *http.ServeMux
}

// New returns a Server. A nil logger disables logging.
func New(store *cart.Store, cat *catalog.Catalog, quotes *quote.Service, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		store:   store,
		catalog: cat,
		quotes:  quotes,
		logger:  logger,
		now:     time.Now,
		mux:     http.NewServeMux(),
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.mux.HandleFunc("GET /api/cart", s.handleGetCart)
	s.mux.HandleFunc("POST /api/cart/items", s.handleAddItem)
	s.mux.HandleFunc("DELETE /api/cart/items/{id}", s.handleRemoveItem)
	s.mux.HandleFunc("DELETE /api/cart", s.handleClearCart)

	s.mux.HandleFunc("GET /api/products", s.handleListProducts)
	s.mux.HandleFunc("GET /api/products/{id}", s.handleGetProduct)
	s.mux.HandleFunc("GET /api/categories", s.handleCategories)
	s.mux.HandleFunc("GET /api/features", s.handleFeatures)
	s.mux.HandleFunc("GET /api/compare", s.handleCompare)

	s.mux.HandleFunc("POST /api/quotes", s.handleSubmitQuote)
}

// Handler returns the API handler wrapped with request logging.
func (s *Server) Handler() http.Handler {
	return s.logRequests(s.mux)
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is cancelled.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("http api listening", zap.String("addr", ln.Addr().String()))
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	s.logger.Info("http api stopped")
	return nil
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.logger.Debug("http request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.Duration("duration", time.Since(start)))
	})
}
