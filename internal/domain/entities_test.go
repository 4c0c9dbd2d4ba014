package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		name string
		in   []byte
		want Format
	}{
		{"empty", nil, FormatDelimitedText},
		{"single P", []byte("P"), FormatDelimitedText},
		{"zip", []byte("PK\x03\x04rest"), FormatSpreadsheet},
		{"bare PK", []byte("PK"), FormatSpreadsheet},
		{"pdf header", []byte("%PDF-1.7"), FormatPDF},
		{"percent at index 3", []byte("abc%def"), FormatPDF},
		{"percent at index 4", []byte("abcd%"), FormatDelimitedText},
		{"short with percent", []byte("a%"), FormatPDF},
		{"csv", []byte("a,b\n1,2"), FormatDelimitedText},
		{"zip wins over percent", []byte("PK%%"), FormatSpreadsheet},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectFormat(tt.in))
		})
	}
}

func TestDetectFormat_OnlyLeadingBytesMatter(t *testing.T) {
	base := []byte("%PDF")
	for _, tail := range [][]byte{nil, []byte("PK"), []byte("\x00\xff"), []byte(",,,\n")} {
		assert.Equal(t, FormatPDF, DetectFormat(append(append([]byte{}, base...), tail...)))
	}
}

func TestFormat_StringAndSuffix(t *testing.T) {
	assert.Equal(t, "spreadsheet", FormatSpreadsheet.String())
	assert.Equal(t, "pdf", FormatPDF.String())
	assert.Equal(t, "csv", FormatDelimitedText.String())

	assert.Equal(t, ".xlsx", FormatSpreadsheet.Suffix())
	assert.Equal(t, ".pdf", FormatPDF.Suffix())
	assert.Equal(t, ".csv", FormatDelimitedText.Suffix())
}
