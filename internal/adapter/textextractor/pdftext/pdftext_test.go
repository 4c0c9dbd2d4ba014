package pdftext

import (
	"bytes"
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

// buildPDF writes a minimal single-font document with one text run per page.
func buildPDF(t *testing.T, pageTexts ...string) []byte {
	t.Helper()
	var objs []string
	objs = append(objs, "<< /Type /Catalog /Pages 2 0 R >>")
	kids := ""
	for i := range pageTexts {
		kids += fmt.Sprintf("%d 0 R ", 4+2*i)
	}
	objs = append(objs, fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", kids, len(pageTexts)))
	objs = append(objs, "<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica /Encoding /WinAnsiEncoding >>")
	for i, txt := range pageTexts {
		content := fmt.Sprintf("BT /F1 12 Tf 72 712 Td (%s) Tj ET", txt)
		objs = append(objs,
			fmt.Sprintf("<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Resources << /Font << /F1 3 0 R >> >> /Contents %d 0 R >>", 5+2*i),
			fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(content), content),
		)
	}

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(objs))
	for i, o := range objs {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, o)
	}
	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n0000000000 65535 f \n", len(objs)+1)
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objs)+1, xref)
	return buf.Bytes()
}

func TestPageTexts(t *testing.T) {
	pages, err := New().PageTexts(context.Background(), buildPDF(t, "Hello", "World"))
	require.NoError(t, err)
	require.Len(t, pages, 2)
	require.Contains(t, pages[0], "Hello")
	require.Contains(t, pages[1], "World")
}

func TestPageTexts_Corrupt(t *testing.T) {
	for _, in := range [][]byte{
		[]byte("%PDF-"),
		[]byte("%PDF-1.4\ngarbage\n%%EOF"),
		[]byte("%"),
		nil,
	} {
		pages, err := New().PageTexts(context.Background(), in)
		require.Error(t, err, "input %q", in)
		require.Nil(t, pages)
	}
}

func TestPageTexts_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := New().PageTexts(ctx, buildPDF(t, "Hello"))
	require.ErrorIs(t, err, context.Canceled)
}
