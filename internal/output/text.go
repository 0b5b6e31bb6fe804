package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
)

// Text outputs plain text to the formatter's writer
func (f *Formatter) Text(format string, args ...interface{}) {
	fmt.Fprintf(f.writer, format, args...)
}

// Textln outputs plain text with a newline to the formatter's writer
func (f *Formatter) Textln(format string, args ...interface{}) {
	fmt.Fprintf(f.writer, format+"\n", args...)
}

// Table outputs tabular data in text format. Column widths are computed in
// display cells so wide runes (icons, CJK) stay aligned.
type Table struct {
	writer  io.Writer
	headers []string
	rows    [][]string
	widths  []int
}

// NewTable creates a new table with headers
func NewTable(w io.Writer, headers ...string) *Table {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = runewidth.StringWidth(h)
	}
	return &Table{
		writer:  w,
		headers: headers,
		widths:  widths,
	}
}

// AddRow adds a row to the table
func (t *Table) AddRow(cols ...string) {
	for i, c := range cols {
		if w := runewidth.StringWidth(c); i < len(t.widths) && w > t.widths[i] {
			t.widths[i] = w
		}
	}
	t.rows = append(t.rows, cols)
}

// Render outputs the table
func (t *Table) Render() {
	printRow := func(cols []string) {
		cells := make([]string, len(t.headers))
		for i := range t.headers {
			c := ""
			if i < len(cols) {
				c = cols[i]
			}
			cells[i] = runewidth.FillRight(c, t.widths[i])
		}
		fmt.Fprintf(t.writer, "  %s\n", strings.TrimRight(strings.Join(cells, "  "), " "))
	}

	printRow(t.headers)

	seps := make([]string, len(t.widths))
	for i, w := range t.widths {
		seps[i] = strings.Repeat("-", w)
	}
	printRow(seps)

	for _, row := range t.rows {
		printRow(row)
	}
}

// Truncate shortens a string to at most maxWidth display cells, appending an
// ellipsis when anything was cut.
func Truncate(s string, maxWidth int) string {
	if runewidth.StringWidth(s) <= maxWidth {
		return s
	}
	return runewidth.Truncate(s, maxWidth, "…")
}
