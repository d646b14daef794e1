package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"slices"
	"strings"

	"go.uber.org/zap"

	"github.com/emphz/rfqcart/internal/cart"
	"github.com/emphz/rfqcart/internal/catalog"
	"github.com/emphz/rfqcart/internal/storage"
	"github.com/emphz/rfqcart/pkg/types"
)

// catalogURL is where not-found responses send the client back to.
const catalogURL = "/api/products"

// CartResponse is the JSON response for every cart endpoint.
type CartResponse struct {
	Items []types.LineItem `json:"items"`
	Count int              `json:"count"`
}

// AddItemRequest is the JSON request body for POST /api/cart/items.
// An omitted quantity adds one unit.
type AddItemRequest struct {
	ProductID string `json:"productId"`
	Quantity  *int   `json:"quantity,omitempty"`
}

// ProductResponse is the JSON response for GET /api/products/{id}.
type ProductResponse struct {
	types.Product
	DescriptionHTML string `json:"descriptionHtml"`
}

// SubmitQuoteRequest is the JSON request body for POST /api/quotes.
type SubmitQuoteRequest struct {
	types.Contact
	Notes string `json:"notes,omitempty"`
}

// ErrorResponse is the JSON body of every non-2xx response.
type ErrorResponse struct {
	Error      string `json:"error"`
	Notice     string `json:"notice,omitempty"`
	CatalogURL string `json:"catalogUrl,omitempty"`
}

func (s *Server) handleGetCart(w http.ResponseWriter, r *http.Request) {
	s.writeCart(w, http.StatusOK)
}

func (s *Server) handleAddItem(w http.ResponseWriter, r *http.Request) {
	var req AddItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, ErrorResponse{Error: "invalid JSON body"})
		return
	}

	qty := 1
	if req.Quantity != nil {
		qty = *req.Quantity
	}

	p, err := s.catalog.ByID(req.ProductID)
	if err != nil {
		writeError(w, http.StatusNotFound, ErrorResponse{Error: err.Error(), CatalogURL: catalogURL})
		return
	}

	if err := s.store.AddItem(types.LineItem{ProductID: p.ID, ProductName: p.Name, Quantity: qty}); err != nil {
		writeError(w, http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}
	s.writeCart(w, http.StatusOK)
}

func (s *Server) handleRemoveItem(w http.ResponseWriter, r *http.Request) {
	s.store.RemoveItem(r.PathValue("id"))
	s.writeCart(w, http.StatusOK)
}

func (s *Server) handleClearCart(w http.ResponseWriter, r *http.Request) {
	s.store.ClearCart()
	s.writeCart(w, http.StatusOK)
}

func (s *Server) handleListProducts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	fs := types.FilterState{
		Category: q.Get("category"),
		Features: q["feature"],
	}
	writeJSON(w, http.StatusOK, catalog.Filter(s.catalog.Products(), fs))
}

func (s *Server) handleGetProduct(w http.ResponseWriter, r *http.Request) {
	p, err := s.catalog.ByID(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusNotFound, ErrorResponse{Error: "product not found", CatalogURL: catalogURL})
		return
	}

	html, err := catalog.RenderDescription(p)
	if err != nil {
		s.logger.Warn("render description failed", zap.String("product", p.ID), zap.Error(err))
	}
	writeJSON(w, http.StatusOK, ProductResponse{Product: p, DescriptionHTML: html})
}

func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.catalog.Categories())
}

func (s *Server) handleFeatures(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, catalog.FeatureTags())
}

func (s *Server) handleCompare(w http.ResponseWriter, r *http.Request) {
	var ids []string
	for _, id := range strings.Split(r.URL.Query().Get("ids"), ",") {
		id = strings.TrimSpace(id)
		if id != "" && !slices.Contains(ids, id) {
			ids = append(ids, id)
		}
	}

	sel := &catalog.Selection{}
	for _, id := range ids {
		if err := sel.Toggle(id); errors.Is(err, types.ErrCompareFull) {
			writeError(w, http.StatusUnprocessableEntity, ErrorResponse{
				Error:  err.Error(),
				Notice: catalog.CapacityNotice,
			})
			return
		}
	}

	cmp, err := s.catalog.CompareSelection(sel)
	if err != nil {
		writeError(w, http.StatusNotFound, ErrorResponse{Error: err.Error(), CatalogURL: catalogURL})
		return
	}
	writeJSON(w, http.StatusOK, cmp)
}

func (s *Server) handleSubmitQuote(w http.ResponseWriter, r *http.Request) {
	var req SubmitQuoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, ErrorResponse{Error: "invalid JSON body"})
		return
	}

	receipt, err := s.quotes.Submit(r.Context(), req.Contact, req.Notes)
	switch {
	case errors.Is(err, types.ErrInvalidContact), errors.Is(err, types.ErrEmptyCart):
		writeError(w, http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	case err != nil:
		writeError(w, http.StatusBadGateway, ErrorResponse{Error: "quote submission failed"})
		return
	}

	s.setCartCookie(w)
	writeJSON(w, http.StatusCreated, receipt)
}

// writeCart sets the cart cookie and writes the cart.
func (s *Server) writeCart(w http.ResponseWriter, status int) {
	items := s.setCartCookie(w)
	if items == nil {
		items = []types.LineItem{}
	}
	n := 0
	for _, li := range items {
		n += li.Quantity
	}
	writeJSON(w, status, CartResponse{Items: items, Count: n})
}

func (s *Server) setCartCookie(w http.ResponseWriter) []types.LineItem {
	items := s.store.Items()
	value, err := cart.Encode(items)
	if err != nil {
		s.logger.Warn("encode cart cookie failed", zap.Error(err))
		return items
	}
	http.SetCookie(w, storage.CartCookie(value, s.now()))
	return items
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, body ErrorResponse) {
	writeJSON(w, status, body)
}
