package domain

import (
	"bytes"
	"context"
	"errors"
	"io"
)

// Error taxonomy (sentinels)
var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrExtraction      = errors.New("extraction failed")
	ErrRelayTransport  = errors.New("relay transport failure")
)

// Format is the file format inferred from the leading bytes of an upload.
type Format int

const (
	// FormatDelimitedText is the fallback for anything not recognised below.
	FormatDelimitedText Format = iota
	FormatSpreadsheet
	FormatPDF
)

func (f Format) String() string {
	switch f {
	case FormatSpreadsheet:
		return "spreadsheet"
	case FormatPDF:
		return "pdf"
	default:
		return "csv"
	}
}

// Suffix is the file extension used when the upload is staged on disk.
func (f Format) Suffix() string {
	switch f {
	case FormatSpreadsheet:
		return ".xlsx"
	case FormatPDF:
		return ".pdf"
	default:
		return ".csv"
	}
}

var zipMagic = []byte("PK")

// DetectFormat classifies b by its first bytes. A ZIP container is taken to
// be a spreadsheet, a '%' anywhere in the first four bytes marks a PDF, and
// everything else (including an empty body) is delimited text.
func DetectFormat(b []byte) Format {
	if bytes.HasPrefix(b, zipMagic) {
		return FormatSpreadsheet
	}
	head := b[:min(len(b), 4)]
	if bytes.IndexByte(head, '%') >= 0 {
		return FormatPDF
	}
	return FormatDelimitedText
}

// Table is a parsed tabular document: a header row plus data rows. Rows may
// be shorter than Columns; missing trailing cells are treated as empty.
type Table struct {
	Columns []string
	Rows    [][]string
}

// ExtractionError carries the parser's own message so it can be surfaced to
// clients verbatim while still matching ErrExtraction.
type ExtractionError struct {
	Format Format
	Err    error
}

func (e *ExtractionError) Error() string { return e.Err.Error() }

func (e *ExtractionError) Unwrap() error { return e.Err }

func (e *ExtractionError) Is(target error) bool { return target == ErrExtraction }

// UploadResult is the outcome of a call to the remote Files API. A non-200
// StatusCode is data, not an error: Body holds the remote response verbatim.
type UploadResult struct {
	StatusCode int
	FileID     string
	Body       string
}

// Parsers (ports)

// TabularParser turns a spreadsheet or delimited-text document into a Table.
type TabularParser interface {
	ParseTable(ctx Context, data []byte) (Table, error)
}

// PaginatedTextParser returns the plain text of each page in document order.
type PaginatedTextParser interface {
	PageTexts(ctx Context, data []byte) ([]string, error)
}

// FileUploader (port)
// UploadFile sends r to the remote file store under name.
type FileUploader interface {
	UploadFile(ctx Context, name string, r io.Reader) (UploadResult, error)
}

// Context is an alias so ports read the same as the adapters implementing them.
type Context = context.Context
