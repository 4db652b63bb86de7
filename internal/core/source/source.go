// Package source adapts external table shapes to the canonical core.Table.
//
// Every adapter implements the single-method Source interface so sessions
// can accept data from in-memory slices, record maps, Arrow containers,
// Postgres queries, or JSON Lines streams without caring which.
package source

import (
	"context"
	"sort"

	"github.com/tabed/tabed/internal/core"
)

// Source supplies the table an edit session starts from.
type Source interface {
	Table(ctx context.Context) (core.Table, error)
}

// Pairs builds a source from a column list and positional row slices.
// Cells map to columns by position: rows shorter than the column list
// read as empty strings for the missing positions, and cells beyond the
// column list are ignored.
func Pairs(columns []string, rows [][]string) Source {
	return pairsSource{columns: columns, rows: rows}
}

type pairsSource struct {
	columns []string
	rows    [][]string
}

func (s pairsSource) Table(_ context.Context) (core.Table, error) {
	t := core.Table{Columns: append([]string(nil), s.columns...)}
	for _, cells := range s.rows {
		row := make(core.Row, len(s.columns))
		for i, col := range s.columns {
			if i < len(cells) {
				row[col] = cells[i]
			} else {
				row[col] = ""
			}
		}
		t.Rows = append(t.Rows, row)
	}
	return t, nil
}

// Records builds a source from a sequence of column->value records.
// When columns is nil the column list is the sorted union of all record
// keys, since map iteration order would otherwise change run to run.
// Missing keys read as empty strings; keys outside columns are dropped.
func Records(columns []string, records []map[string]string) Source {
	return recordsSource{columns: columns, records: records}
}

type recordsSource struct {
	columns []string
	records []map[string]string
}

func (s recordsSource) Table(_ context.Context) (core.Table, error) {
	columns := s.columns
	if columns == nil {
		seen := make(map[string]bool)
		for _, rec := range s.records {
			for k := range rec {
				if !seen[k] {
					seen[k] = true
					columns = append(columns, k)
				}
			}
		}
		sort.Strings(columns)
	}

	t := core.Table{Columns: append([]string(nil), columns...)}
	for _, rec := range s.records {
		row := make(core.Row, len(columns))
		for _, col := range columns {
			row[col] = rec[col]
		}
		t.Rows = append(t.Rows, row)
	}
	return t, nil
}

// Func adapts a plain function to the Source interface, for callers that
// already know how to produce a table.
type Func func(ctx context.Context) (core.Table, error)

func (f Func) Table(ctx context.Context) (core.Table, error) {
	return f(ctx)
}
