// Package delimited reads comma-separated text into a domain.Table.
package delimited

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/fairyhunter13/file-parser/internal/domain"
	"github.com/fairyhunter13/file-parser/pkg/textx"
)

// ErrNoColumns is returned when the input holds no header record.
var ErrNoColumns = errors.New("No columns to parse from file")

var utf8BOM = []byte("\xef\xbb\xbf")

// Parser implements domain.TabularParser for CSV. The first record is the
// header; every later record may be shorter than it but not longer.
type Parser struct {
	Comma rune
}

// New constructs a comma-separated Parser.
func New() *Parser { return &Parser{Comma: ','} }

// ParseTable decodes data as UTF-8 CSV.
func (p *Parser) ParseTable(ctx context.Context, data []byte) (domain.Table, error) {
	if err := ctx.Err(); err != nil {
		return domain.Table{}, err
	}
	data = bytes.TrimPrefix(data, utf8BOM)
	if err := checkUTF8(data); err != nil {
		return domain.Table{}, err
	}

	r := csv.NewReader(bytes.NewReader(data))
	if p.Comma != 0 {
		r.Comma = p.Comma
	}
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	header, err := r.Read()
	if errors.Is(err, io.EOF) {
		return domain.Table{}, ErrNoColumns
	}
	if err != nil {
		return domain.Table{}, err
	}

	var rows [][]string
	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return domain.Table{}, err
		}
		if len(rec) > len(header) {
			line, _ := r.FieldPos(0)
			return domain.Table{}, fmt.Errorf("Error tokenizing data. Expected %d fields in line %d, saw %d", len(header), line, len(rec))
		}
		rows = append(rows, rec)
	}
	return domain.Table{Columns: textx.NormalizeColumns(header, len(header)), Rows: rows}, nil
}

func checkUTF8(data []byte) error {
	for off := 0; off < len(data); {
		r, size := utf8.DecodeRune(data[off:])
		if r == utf8.RuneError && size <= 1 {
			return fmt.Errorf("'utf-8' codec can't decode byte 0x%02x in position %d: invalid start byte", data[off], off)
		}
		off += size
	}
	return nil
}
