// Package pdftext extracts per-page plain text from PDF documents using
// ledongthuc/pdf.
package pdftext

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"

	"github.com/ledongthuc/pdf"
)

// Parser implements domain.PaginatedTextParser.
type Parser struct{}

// New constructs a PDF Parser.
func New() *Parser { return &Parser{} }

// PageTexts returns one string per page in document order. Pages without
// content yield "". The first page whose text cannot be read aborts the
// whole document.
func (p *Parser) PageTexts(ctx context.Context, data []byte) (pages []string, err error) {
	// The PDF library panics on some malformed inputs.
	defer func() {
		if r := recover(); r != nil {
			slog.Error("pdf parser panic", slog.Any("panic", r), slog.String("stack", string(debug.Stack())))
			pages = nil
			err = fmt.Errorf("malformed pdf: %v", r)
		}
	}()

	rdr, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, err
	}

	n := rdr.NumPage()
	pages = make([]string, 0, n)
	for i := 1; i <= n; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		pg := rdr.Page(i)
		if pg.V.IsNull() {
			pages = append(pages, "")
			continue
		}
		txt, err := pg.GetPlainText(nil)
		if err != nil {
			return nil, fmt.Errorf("page %d: %w", i, err)
		}
		pages = append(pages, txt)
	}
	return pages, nil
}
