package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/emphz/rfqcart/pkg/types"
)

// StoredQuote is an archived quote request.
type StoredQuote struct {
	QuoteID     string           `json:"quoteId"`
	Contact     types.Contact    `json:"contact"`
	Notes       string           `json:"notes,omitempty"`
	Items       []types.LineItem `json:"items"`
	SubmittedAt time.Time        `json:"submittedAt"`
}

type quoteRow struct {
	QuoteID     string `db:"quote_id"`
	Name        string `db:"name"`
	Company     string `db:"company"`
	Email       string `db:"email"`
	Phone       string `db:"phone"`
	Notes       string `db:"notes"`
	SubmittedAt string `db:"submitted_at"`
}

type quoteItemRow struct {
	QuoteID     string `db:"quote_id"`
	Position    int    `db:"position"`
	ProductID   string `db:"product_id"`
	ProductName string `db:"product_name"`
	Quantity    int    `db:"quantity"`
}

// QuoteArchive records submitted quote requests.
type QuoteArchive struct {
	db *sqlx.DB
}

// NewQuoteArchive returns an archive over db. The schema must already exist.
func NewQuoteArchive(db *sqlx.DB) *QuoteArchive {
	return &QuoteArchive{db: db}
}

// Save stores req under id in a single transaction.
func (a *QuoteArchive) Save(ctx context.Context, id string, req types.QuoteRequest, at time.Time) error {
	tx, err := a.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin quote transaction: %w", err)
	}
	defer tx.Rollback()

	row := quoteRow{
		QuoteID:     id,
		Name:        req.Contact.Name,
		Company:     req.Contact.Company,
		Email:       req.Contact.Email,
		Phone:       req.Contact.Phone,
		Notes:       req.Notes,
		SubmittedAt: at.UTC().Format(time.RFC3339Nano),
	}
	if _, err := tx.NamedExecContext(ctx,
		`INSERT INTO quotes (quote_id, name, company, email, phone, notes, submitted_at)
         VALUES (:quote_id, :name, :company, :email, :phone, :notes, :submitted_at)`, row); err != nil {
		return fmt.Errorf("insert quote: %w", err)
	}

	for i, item := range req.Items {
		itemRow := quoteItemRow{
			QuoteID:     id,
			Position:    i,
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
		}
		if _, err := tx.NamedExecContext(ctx,
			`INSERT INTO quote_items (quote_id, position, product_id, product_name, quantity)
             VALUES (:quote_id, :position, :product_id, :product_name, :quantity)`, itemRow); err != nil {
			return fmt.Errorf("insert quote item: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit quote: %w", err)
	}
	return nil
}

// Get returns the quote with the given id.
// Returns ErrQuoteNotFound if no quote exists with that id.
func (a *QuoteArchive) Get(ctx context.Context, id string) (StoredQuote, error) {
	var row quoteRow
	err := a.db.GetContext(ctx, &row, "SELECT * FROM quotes WHERE quote_id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return StoredQuote{}, types.ErrQuoteNotFound
	}
	if err != nil {
		return StoredQuote{}, fmt.Errorf("get quote: %w", err)
	}
	return a.hydrate(ctx, row)
}

// List returns all quotes, most recent first.
func (a *QuoteArchive) List(ctx context.Context) ([]StoredQuote, error) {
	var rows []quoteRow
	if err := a.db.SelectContext(ctx, &rows,
		"SELECT * FROM quotes ORDER BY submitted_at DESC, quote_id DESC"); err != nil {
		return nil, fmt.Errorf("list quotes: %w", err)
	}

	quotes := make([]StoredQuote, 0, len(rows))
	for _, row := range rows {
		q, err := a.hydrate(ctx, row)
		if err != nil {
			return nil, err
		}
		quotes = append(quotes, q)
	}
	return quotes, nil
}

func (a *QuoteArchive) hydrate(ctx context.Context, row quoteRow) (StoredQuote, error) {
	submittedAt, err := time.Parse(time.RFC3339Nano, row.SubmittedAt)
	if err != nil {
		return StoredQuote{}, fmt.Errorf("parsing quote submitted_at: %w", err)
	}

	var itemRows []quoteItemRow
	if err := a.db.SelectContext(ctx, &itemRows,
		"SELECT * FROM quote_items WHERE quote_id = ? ORDER BY position", row.QuoteID); err != nil {
		return StoredQuote{}, fmt.Errorf("load quote items: %w", err)
	}

	items := make([]types.LineItem, 0, len(itemRows))
	for _, ir := range itemRows {
		items = append(items, types.LineItem{
			ProductID:   ir.ProductID,
			ProductName: ir.ProductName,
			Quantity:    ir.Quantity,
		})
	}

	return StoredQuote{
		QuoteID: row.QuoteID,
		Contact: types.Contact{
			Name:    row.Name,
			Company: row.Company,
			Email:   row.Email,
			Phone:   row.Phone,
		},
		Notes:       row.Notes,
		Items:       items,
		SubmittedAt: submittedAt,
	}, nil
}
