package source

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/tabed/tabed/internal/core"
)

// Querier is the subset of pgx clients needed to run a query. Pools,
// single connections, and transactions all satisfy it.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// Query builds a source that runs sql against db and converts the result
// set. Column names come from the row field descriptions; NULL cells read
// as empty strings.
func Query(db Querier, sql string, args ...any) Source {
	return Func(func(ctx context.Context) (core.Table, error) {
		rows, err := db.Query(ctx, sql, args...)
		if err != nil {
			return core.Table{}, fmt.Errorf("query rows: %w", err)
		}
		defer rows.Close()

		var t core.Table
		for _, fd := range rows.FieldDescriptions() {
			t.Columns = append(t.Columns, fd.Name)
		}

		for rows.Next() {
			values, err := rows.Values()
			if err != nil {
				return core.Table{}, fmt.Errorf("read row values: %w", err)
			}
			row := make(core.Row, len(t.Columns))
			for i, col := range t.Columns {
				if i < len(values) {
					row[col] = formatPGValue(values[i])
				} else {
					row[col] = ""
				}
			}
			t.Rows = append(t.Rows, row)
		}
		if err := rows.Err(); err != nil {
			return core.Table{}, fmt.Errorf("rows error: %w", err)
		}
		return t, nil
	})
}

// formatPGValue renders a database value as editable text. NULL reads as
// the empty string; numbers use the shortest text that parses back to the
// same value so untouched cells compare equal after the round trip.
func formatPGValue(v any) string {
	if v == nil {
		return ""
	}

	switch val := v.(type) {
	case string:
		return val
	case []byte:
		return string(val)
	case bool:
		return strconv.FormatBool(val)
	case int16:
		return strconv.FormatInt(int64(val), 10)
	case int32:
		return strconv.FormatInt(int64(val), 10)
	case int64:
		return strconv.FormatInt(val, 10)
	case float32:
		return strconv.FormatFloat(float64(val), 'g', -1, 32)
	case float64:
		return strconv.FormatFloat(val, 'g', -1, 64)
	case time.Time:
		// Dates decode as midnight times; keep those to the date part.
		if val.Hour() == 0 && val.Minute() == 0 && val.Second() == 0 && val.Nanosecond() == 0 {
			return val.Format("2006-01-02")
		}
		return val.Format(time.RFC3339Nano)
	case [16]byte:
		return uuid.UUID(val).String()
	case pgtype.Numeric:
		if !val.Valid {
			return ""
		}
		f, err := val.Float64Value()
		if err != nil || !f.Valid {
			return ""
		}
		return strconv.FormatFloat(f.Float64, 'g', -1, 64)
	case pgtype.Date:
		if !val.Valid {
			return ""
		}
		return val.Time.Format("2006-01-02")
	case pgtype.Text:
		if !val.Valid {
			return ""
		}
		return val.String
	default:
		return fmt.Sprintf("%v", val)
	}
}
