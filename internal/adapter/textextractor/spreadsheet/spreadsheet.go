// Package spreadsheet reads the first worksheet of an xlsx workbook into a
// domain.Table using excelize.
package spreadsheet

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/fairyhunter13/file-parser/internal/domain"
	"github.com/fairyhunter13/file-parser/pkg/textx"
)

// ErrNoWorksheets is returned for a workbook without any sheet.
var ErrNoWorksheets = errors.New("workbook contains no worksheets")

// Parser implements domain.TabularParser for xlsx workbooks.
type Parser struct{}

// New constructs a spreadsheet Parser.
func New() *Parser { return &Parser{} }

// ParseTable opens data as a workbook and returns its first sheet. Leading
// blank rows are skipped; the first remaining row is the header.
func (p *Parser) ParseTable(ctx context.Context, data []byte) (domain.Table, error) {
	if err := ctx.Err(); err != nil {
		return domain.Table{}, err
	}
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return domain.Table{}, err
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return domain.Table{}, ErrNoWorksheets
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return domain.Table{}, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}

	for len(rows) > 0 && blank(rows[0]) {
		rows = rows[1:]
	}
	if len(rows) == 0 {
		return domain.Table{}, nil
	}

	width := 0
	for _, r := range rows {
		width = max(width, len(r))
	}
	return domain.Table{
		Columns: textx.NormalizeColumns(rows[0], width),
		Rows:    rows[1:],
	}, nil
}

func blank(row []string) bool {
	for _, c := range row {
		if c != "" {
			return false
		}
	}
	return true
}
