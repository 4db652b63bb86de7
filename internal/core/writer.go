package core

import (
	"strings"

	"github.com/rivo/uniseg"
)

// defaultFooter is appended when WriteOptions.DefaultFooter is set and no
// explicit footer comments are given.
var defaultFooter = []string{
	"",
	"Empty cells are read back as empty strings.",
	"Rows whose cells are all empty or all dashes are decoration and are skipped.",
}

// Write serializes a table to delimited text. The output always parses
// back to the same table (modulo carriage returns, which the reader
// strips, surrounding whitespace, which it trims, rows whose cells are
// all empty or all dashes, which read back as decoration, and rows whose
// first cell starts with the comment prefix, which read back as
// comments — quoting is delimiter-relative and does not protect them).
//
// Layout: header comments, header row, dash separator, data rows, footer
// comments — each section only when configured. Fields are quoted only
// when their content requires it, so typical output stays clean.
func Write(t Table, opts WriteOptions) string {
	o := opts
	o.Options = opts.Options.withDefaults()

	header := make([]string, len(t.Columns))
	for i, name := range t.Columns {
		header[i] = encodeField(name, o.Delimiter, o.Quote)
	}
	data := make([][]string, len(t.Rows))
	for r, row := range t.Rows {
		cells := make([]string, len(t.Columns))
		for c, name := range t.Columns {
			cells[c] = encodeField(row[name], o.Delimiter, o.Quote)
		}
		data[r] = cells
	}

	// Widths start at the header's rendered widths; with alignment on
	// they grow to the column maximum, which keeps the separator row and
	// the cell padding in agreement.
	widths := make([]int, len(t.Columns))
	for c, cell := range header {
		widths[c] = uniseg.StringWidth(cell)
	}
	if o.AlignColumns {
		for _, cells := range data {
			for c, cell := range cells {
				if w := uniseg.StringWidth(cell); w > widths[c] {
					widths[c] = w
				}
			}
		}
	}

	var lines []string
	for _, c := range o.HeaderComments {
		lines = append(lines, commentLine(o.CommentPrefix, c))
	}
	if !o.OmitHeader {
		lines = append(lines, joinCells(header, widths, o))
	}
	if o.HeaderSeparator {
		sep := make([]string, len(t.Columns))
		for c := range sep {
			sep[c] = strings.Repeat("-", widths[c])
		}
		lines = append(lines, strings.Join(sep, o.Delimiter))
	}
	for _, cells := range data {
		lines = append(lines, joinCells(cells, widths, o))
	}
	footer := o.FooterComments
	if len(footer) == 0 && o.DefaultFooter {
		footer = defaultFooter
	}
	for _, c := range footer {
		lines = append(lines, commentLine(o.CommentPrefix, c))
	}
	return strings.Join(lines, "\n") + "\n"
}

// encodeField wraps value in quote characters only when its content
// collides with the wire format: the delimiter, a newline, a carriage
// return, or the quote character itself. Interior quotes are doubled.
// Quoting is delimiter-relative — a comma in a tab-delimited field needs
// no quotes.
func encodeField(value, delimiter string, quote byte) string {
	q := string(quote)
	if !strings.Contains(value, delimiter) &&
		!strings.ContainsAny(value, "\n\r") &&
		!strings.Contains(value, q) {
		return value
	}
	return q + strings.ReplaceAll(value, q, q+q) + q
}

// joinCells joins one row of rendered cells, right-padding each to its
// column width when alignment is on. Widths are display columns, so
// wide runes pad correctly.
func joinCells(cells []string, widths []int, o WriteOptions) string {
	if !o.AlignColumns {
		return strings.Join(cells, o.Delimiter)
	}
	padded := make([]string, len(cells))
	for c, cell := range cells {
		if pad := widths[c] - uniseg.StringWidth(cell); pad > 0 {
			cell += strings.Repeat(" ", pad)
		}
		padded[c] = cell
	}
	return strings.Join(padded, o.Delimiter)
}

// commentLine renders one comment: prefix plus a space, or the bare
// prefix for an empty line.
func commentLine(prefix, text string) string {
	if text == "" {
		return prefix
	}
	return prefix + " " + text
}
