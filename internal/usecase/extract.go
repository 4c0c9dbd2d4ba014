package usecase

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	obs "github.com/fairyhunter13/file-parser/internal/adapter/observability"
	"github.com/fairyhunter13/file-parser/internal/domain"
	"github.com/fairyhunter13/file-parser/pkg/textx"
)

// TokenCounter sizes extracted text in model tokens.
type TokenCounter interface {
	Count(text, model string) int
}

// ExtractService turns an uploaded document into plain text, choosing the
// parser from the sniffed format.
type ExtractService struct {
	Spreadsheet domain.TabularParser
	Delimited   domain.TabularParser
	PDF         domain.PaginatedTextParser

	// Tokens and TokenModel are optional; when TokenModel is empty no token
	// histogram is recorded.
	Tokens     TokenCounter
	TokenModel string
}

// NewExtractService constructs an ExtractService with the given parsers.
func NewExtractService(spreadsheet, delimited domain.TabularParser, pdf domain.PaginatedTextParser) ExtractService {
	return ExtractService{Spreadsheet: spreadsheet, Delimited: delimited, PDF: pdf}
}

// Parse sniffs the format of data and extracts its text.
func (s ExtractService) Parse(ctx domain.Context, data []byte) (domain.Format, string, error) {
	tracer := otel.Tracer("usecase.extract")
	ctx, span := tracer.Start(ctx, "ExtractService.Parse")
	defer span.End()

	format := domain.DetectFormat(data)
	span.SetAttributes(
		attribute.String("file.format", format.String()),
		attribute.Int("file.size", len(data)),
	)
	lg := obs.LoggerFromContext(ctx)
	lg.Debug("detected file format", slog.String("format", format.String()), slog.Int("bytes", len(data)))

	start := time.Now()
	text, err := s.Extract(ctx, format, data)
	obs.ObserveExtraction(format.String(), time.Since(start), err)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return format, "", err
	}
	if s.TokenModel != "" && s.Tokens != nil {
		obs.ObserveExtractedTokens(format.String(), s.Tokens.Count(text, s.TokenModel))
	}
	return format, text, nil
}

// Extract runs the parser for format. Tables are rendered as a text grid and
// PDF page texts are concatenated in page order with no separator. Parser
// failures are returned as *domain.ExtractionError.
func (s ExtractService) Extract(ctx domain.Context, format domain.Format, data []byte) (string, error) {
	switch format {
	case domain.FormatPDF:
		if s.PDF == nil {
			return "", fmt.Errorf("%w: no parser for %s", domain.ErrInvalidArgument, format)
		}
		pages, err := s.PDF.PageTexts(ctx, data)
		if err != nil {
			return "", &domain.ExtractionError{Format: format, Err: err}
		}
		return strings.Join(pages, ""), nil
	default:
		p := s.Delimited
		if format == domain.FormatSpreadsheet {
			p = s.Spreadsheet
		}
		if p == nil {
			return "", fmt.Errorf("%w: no parser for %s", domain.ErrInvalidArgument, format)
		}
		tbl, err := p.ParseTable(ctx, data)
		if err != nil {
			return "", &domain.ExtractionError{Format: format, Err: err}
		}
		return textx.RenderTable(tbl.Columns, tbl.Rows), nil
	}
}
