// Package textx provides small text utilities used across the project.
package textx

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"
)

// MissingCell is how an empty or absent cell is rendered.
const MissingCell = "NaN"

var cellEscaper = strings.NewReplacer(
	"\t", `\t`,
	"\n", `\n`,
	"\r", `\r`,
	"\v", `\v`,
	"\f", `\f`,
)

// NormalizeColumns pads header to width and names its columns the way a
// dataframe reader does: blank names become "Unnamed: <i>" and repeated names
// get ".1", ".2", ... suffixes in order of appearance.
func NormalizeColumns(header []string, width int) []string {
	width = max(width, len(header))
	out := make([]string, width)
	counts := make(map[string]int, width)
	for i := 0; i < width; i++ {
		name := ""
		if i < len(header) {
			name = header[i]
		}
		if name == "" {
			name = "Unnamed: " + strconv.Itoa(i)
		}
		for n := counts[name]; n > 0; n = counts[name] {
			counts[name] = n + 1
			name = name + "." + strconv.Itoa(n)
		}
		counts[name]++
		out[i] = name
	}
	return out
}

// RenderTable lays out columns and rows as a plain-text grid: a header line,
// then one line per row prefixed by its zero-based index. Columns are right
// aligned and separated by two spaces; every row is printed. A table with no
// rows prints a short "Empty DataFrame" summary instead.
func RenderTable(columns []string, rows [][]string) string {
	if len(rows) == 0 {
		escaped := make([]string, len(columns))
		for i, c := range columns {
			escaped[i] = cellEscaper.Replace(c)
		}
		return fmt.Sprintf("Empty DataFrame\nColumns: [%s]\nIndex: []", strings.Join(escaped, ", "))
	}

	idxWidth := len(strconv.Itoa(len(rows) - 1))
	var buf bytes.Buffer
	tw := tabwriter.NewWriter(&buf, 0, 0, 0, ' ', tabwriter.AlignRight)

	writeLine := func(index string, cells func(i int) string) {
		fmt.Fprintf(tw, "%-*s\t", idxWidth, index)
		for i := range columns {
			fmt.Fprintf(tw, "  %s\t", cells(i))
		}
		fmt.Fprint(tw, "\n")
	}

	writeLine("", func(i int) string { return cellEscaper.Replace(columns[i]) })
	for r, row := range rows {
		writeLine(strconv.Itoa(r), func(i int) string {
			if i >= len(row) || row[i] == "" {
				return MissingCell
			}
			return cellEscaper.Replace(row[i])
		})
	}
	_ = tw.Flush()
	return strings.TrimSuffix(buf.String(), "\n")
}
