package source

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/tabed/tabed/internal/core"
)

// JSONLines builds a source from JSON Lines input: one JSON object per
// line, blank lines skipped. Columns follow first-seen key order across
// all records. Scalar values render as their JSON literal with strings
// unquoted; nested values keep their raw JSON text; null reads as the
// empty string.
func JSONLines(r io.Reader) Source {
	return Func(func(_ context.Context) (core.Table, error) {
		data, err := io.ReadAll(r)
		if err != nil {
			return core.Table{}, fmt.Errorf("read jsonl: %w", err)
		}

		var t core.Table
		seen := make(map[string]bool)
		for n, line := range strings.Split(string(data), "\n") {
			line = strings.TrimSpace(line)
			if line == "" {
				continue
			}
			if !gjson.Valid(line) {
				return core.Table{}, fmt.Errorf("jsonl line %d: invalid JSON", n+1)
			}
			parsed := gjson.Parse(line)
			if !parsed.IsObject() {
				return core.Table{}, fmt.Errorf("jsonl line %d: not a JSON object", n+1)
			}

			row := make(core.Row)
			parsed.ForEach(func(key, value gjson.Result) bool {
				name := key.String()
				if !seen[name] {
					seen[name] = true
					t.Columns = append(t.Columns, name)
				}
				if value.Type == gjson.Null {
					row[name] = ""
				} else {
					row[name] = value.String()
				}
				return true
			})
			t.Rows = append(t.Rows, row)
		}

		// Rows read before a column first appeared miss that key; fill
		// them in so every row carries every column.
		for _, row := range t.Rows {
			for _, col := range t.Columns {
				if _, ok := row[col]; !ok {
					row[col] = ""
				}
			}
		}
		return t, nil
	})
}
