package core

import (
	"fmt"
	"strings"
)

// Parse decodes a whole document into a table plus the problems found on
// the way. It never aborts on malformed data: ill-shaped lines are
// reported and skipped while valid rows keep accumulating, so the table
// is usable even when errors come back non-empty.
//
// Classification runs over the logical lines in document order. Comment
// lines (leading whitespace stripped, then the comment prefix) and blank
// lines are skipped everywhere. The first remaining line is the header
// and fixes the column count for the rest of the document; without one
// the parse fails with a single document-level error. Lines whose
// trimmed fields are all empty or all dashes are separator decoration
// and are dropped silently. Everything else is data: each field is
// trimmed and paired with its column by position.
//
// Duplicate column names are structurally permitted; since rows map
// names to values, the rightmost duplicate wins on lookup.
func Parse(text string, opts Options) (Table, []ParseError) {
	o := opts.withDefaults()

	var (
		t     Table
		errs  []ParseError
		ncols = -1
	)
	for idx, line := range SplitLogicalLines(text, o.Quote) {
		stripped := strings.TrimSpace(line)
		if stripped == "" || strings.HasPrefix(stripped, o.CommentPrefix) {
			continue
		}

		fields := SplitFields(line, o.Delimiter, o.Quote)
		if ncols < 0 {
			for i, f := range fields {
				fields[i] = strings.TrimSpace(f)
			}
			t.Columns = fields
			ncols = len(fields)
			continue
		}

		if len(fields) != ncols {
			errs = append(errs, ParseError{
				Kind:    KindRowShape,
				Line:    idx + 1,
				Col:     1,
				Message: fmt.Sprintf("Expected %d columns, got %d", ncols, len(fields)),
			})
			continue
		}

		decoration := true
		for i, f := range fields {
			f = strings.TrimSpace(f)
			fields[i] = f
			if f != "" && strings.Trim(f, "-") != "" {
				decoration = false
			}
		}
		if decoration {
			continue
		}

		row := make(Row, ncols)
		for i, name := range t.Columns {
			row[name] = fields[i]
		}
		t.Rows = append(t.Rows, row)
	}

	if ncols < 0 {
		return Table{}, []ParseError{{
			Kind:    KindDocument,
			Line:    1,
			Col:     1,
			Message: "No header line found",
		}}
	}
	return t, errs
}
