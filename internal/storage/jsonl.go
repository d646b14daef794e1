package storage

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/emphz/rfqcart/pkg/types"
)

// ExportJSONL writes every archived quote to path, one JSON object per line,
// oldest first. The file is replaced atomically. Returns the number written.
func (a *QuoteArchive) ExportJSONL(ctx context.Context, path string) (int, error) {
	quotes, err := a.List(ctx)
	if err != nil {
		return 0, err
	}

	var buf bytes.Buffer
	for i := len(quotes) - 1; i >= 0; i-- {
		line, err := json.Marshal(quotes[i])
		if err != nil {
			return 0, fmt.Errorf("marshal quote %s: %w", quotes[i].QuoteID, err)
		}
		buf.Write(line)
		buf.WriteByte('\n')
	}
	if err := writeFileAtomic(path, buf.Bytes()); err != nil {
		return 0, fmt.Errorf("export quotes: %w", err)
	}
	return len(quotes), nil
}

// ReadQuotesJSONL reads quotes exported by ExportJSONL. Blank and malformed
// lines are skipped, as are records without a quote id.
func ReadQuotesJSONL(path string) ([]StoredQuote, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	var quotes []StoredQuote
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var q StoredQuote
		if err := json.Unmarshal(line, &q); err != nil || q.QuoteID == "" {
			continue
		}
		quotes = append(quotes, q)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scanning %s: %w", path, err)
	}
	return quotes, nil
}

// Import saves quotes whose ids are not yet archived. Returns the number
// imported.
func (a *QuoteArchive) Import(ctx context.Context, quotes []StoredQuote) (int, error) {
	imported := 0
	for _, q := range quotes {
		_, err := a.Get(ctx, q.QuoteID)
		if err == nil {
			continue
		}
		if !errors.Is(err, types.ErrQuoteNotFound) {
			return imported, err
		}
		req := types.QuoteRequest{Contact: q.Contact, Items: q.Items, Notes: q.Notes}
		if err := a.Save(ctx, q.QuoteID, req, q.SubmittedAt); err != nil {
			return imported, fmt.Errorf("import quote %s: %w", q.QuoteID, err)
		}
		imported++
	}
	return imported, nil
}
