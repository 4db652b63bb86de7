package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/tabed/tabed/internal/core"
	"github.com/tabed/tabed/internal/session"
)

// runSession performs the interactive round trip and turns data errors
// into a single command error after printing the details.
func runSession(table core.Table, opts session.Options) (*session.Result, error) {
	s := session.New(table, opts)
	res, errs, err := s.Run()
	if err != nil {
		return nil, err
	}
	if len(errs) > 0 {
		printErrors(errs)
		return nil, fmt.Errorf("edited file rejected: %d error(s); no changes applied", len(errs))
	}
	return res, nil
}

func printErrors(errs []core.ParseError) {
	for _, e := range errs {
		fmt.Fprintln(os.Stderr, e.Error())
	}
}

// renderResult formats a session result for stdout. Full mode prints the
// canonical serialization; diff and changes modes print one marked line
// per affected row.
func renderResult(res *session.Result, columns []string, opts session.Options) string {
	switch res.Mode {
	case session.ModeDiff:
		return renderDiff(res.Diff, columns, opts.Validate.KeyColumns, opts.Write.Delimiter)

	case session.ModeChanges:
		if len(res.Added) == 0 && len(res.Updated) == 0 {
			return "no changes\n"
		}
		var b strings.Builder
		for _, row := range res.Added {
			fmt.Fprintf(&b, "+ %s\n", joinRow(row, columns, opts.Write.Delimiter))
		}
		for _, row := range res.Updated {
			fmt.Fprintf(&b, "~ %s\n", joinRow(row, columns, opts.Write.Delimiter))
		}
		return b.String()

	default:
		return core.Write(res.Table, opts.Write)
	}
}

func renderDiff(d core.TableDiff, columns, keys []string, delimiter string) string {
	if d.Empty() {
		return "no changes\n"
	}

	var b strings.Builder
	for _, row := range d.Added {
		fmt.Fprintf(&b, "+ %s\n", joinRow(row, columns, delimiter))
	}
	for _, row := range d.Removed {
		fmt.Fprintf(&b, "- %s\n", joinRow(row, columns, delimiter))
	}
	for _, ch := range d.Modified {
		parts := []string{}
		for _, col := range ch.ChangedColumns(columns) {
			parts = append(parts, fmt.Sprintf("%s %q -> %q", col, ch.Old[col], ch.New[col]))
		}
		fmt.Fprintf(&b, "~ %s: %s\n", keyOf(ch.New, keys), strings.Join(parts, ", "))
	}
	return b.String()
}

// joinRow renders a row's cells in column order.
func joinRow(row core.Row, columns []string, delimiter string) string {
	cells := make([]string, len(columns))
	for i, col := range columns {
		cells[i] = row[col]
	}
	return strings.Join(cells, delimiter)
}

// keyOf renders a row's key tuple for diff lines.
func keyOf(row core.Row, keys []string) string {
	vals := make([]string, len(keys))
	for i, k := range keys {
		vals[i] = row[k]
	}
	return strings.Join(vals, "/")
}
