package source

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"

	"github.com/tabed/tabed/internal/core"
)

// ArrowRecord builds a source from a single Arrow record batch. Column
// names come from the schema; null cells read as empty strings. The
// caller keeps the record alive until Table returns.
func ArrowRecord(rec arrow.Record) Source {
	return Func(func(_ context.Context) (core.Table, error) {
		t := core.Table{Columns: schemaColumns(rec.Schema())}
		appendRecordRows(&t, rec)
		return t, nil
	})
}

// ArrowTable builds a source from a (possibly chunked) Arrow table by
// reading it back as record batches. The caller keeps the table alive
// until Table returns.
func ArrowTable(tbl arrow.Table) Source {
	return Func(func(_ context.Context) (core.Table, error) {
		t := core.Table{Columns: schemaColumns(tbl.Schema())}
		tr := array.NewTableReader(tbl, tbl.NumRows())
		defer tr.Release()
		for tr.Next() {
			appendRecordRows(&t, tr.Record())
		}
		if err := tr.Err(); err != nil {
			return core.Table{}, fmt.Errorf("read arrow table: %w", err)
		}
		return t, nil
	})
}

func schemaColumns(schema *arrow.Schema) []string {
	columns := make([]string, 0, schema.NumFields())
	for _, field := range schema.Fields() {
		columns = append(columns, field.Name)
	}
	return columns
}

func appendRecordRows(t *core.Table, rec arrow.Record) {
	cols := rec.Columns()
	for i := 0; i < int(rec.NumRows()); i++ {
		row := make(core.Row, len(t.Columns))
		for j, name := range t.Columns {
			row[name] = formatArrowCell(cols[j], i)
		}
		t.Rows = append(t.Rows, row)
	}
}

// formatArrowCell renders one cell of an Arrow column as text. Nulls
// become empty strings so they survive the round trip as absent values.
// Floats use the shortest representation that parses back exactly, not
// a fixed precision, so untouched cells compare equal after editing.
func formatArrowCell(col arrow.Array, pos int) string {
	if col.IsNull(pos) {
		return ""
	}

	switch col.DataType().ID() {
	case arrow.STRING:
		return col.(*array.String).Value(pos)

	case arrow.BINARY:
		return string(col.(*array.Binary).Value(pos))

	case arrow.BOOL:
		return strconv.FormatBool(col.(*array.Boolean).Value(pos))

	case arrow.INT8:
		return fmt.Sprintf("%d", col.(*array.Int8).Value(pos))
	case arrow.INT16:
		return fmt.Sprintf("%d", col.(*array.Int16).Value(pos))
	case arrow.INT32:
		return fmt.Sprintf("%d", col.(*array.Int32).Value(pos))
	case arrow.INT64:
		return fmt.Sprintf("%d", col.(*array.Int64).Value(pos))
	case arrow.UINT8:
		return fmt.Sprintf("%d", col.(*array.Uint8).Value(pos))
	case arrow.UINT16:
		return fmt.Sprintf("%d", col.(*array.Uint16).Value(pos))
	case arrow.UINT32:
		return fmt.Sprintf("%d", col.(*array.Uint32).Value(pos))
	case arrow.UINT64:
		return fmt.Sprintf("%d", col.(*array.Uint64).Value(pos))

	case arrow.FLOAT32:
		return strconv.FormatFloat(float64(col.(*array.Float32).Value(pos)), 'g', -1, 32)
	case arrow.FLOAT64:
		return strconv.FormatFloat(col.(*array.Float64).Value(pos), 'g', -1, 64)
	case arrow.FLOAT16:
		return col.(*array.Float16).Value(pos).String()

	case arrow.DATE32:
		return col.(*array.Date32).Value(pos).ToTime().Format("2006-01-02")
	case arrow.DATE64:
		return col.(*array.Date64).Value(pos).ToTime().Format("2006-01-02")

	case arrow.TIMESTAMP:
		ts := col.(*array.Timestamp)
		unit := ts.DataType().(*arrow.TimestampType).Unit
		return ts.Value(pos).ToTime(unit).Format("2006-01-02 15:04:05.999999999")

	case arrow.DECIMAL128:
		d := col.(*array.Decimal128)
		scale := d.DataType().(*arrow.Decimal128Type).Scale
		return d.Value(pos).ToString(scale)

	case arrow.STRUCT, arrow.LIST:
		return marshalArrowCell(col, pos)

	default:
		one := array.NewSlice(col, int64(pos), int64(pos+1))
		defer one.Release()
		return strings.Trim(fmt.Sprintf("%v", one), "[]")
	}
}

// marshalArrowCell renders a nested cell as its JSON text. Slicing to a
// single element first keeps the output to that one cell; the enclosing
// brackets belong to the slice, not the value.
func marshalArrowCell(col arrow.Array, pos int) string {
	one := array.NewSlice(col, int64(pos), int64(pos+1))
	defer one.Release()
	m, ok := one.(json.Marshaler)
	if !ok {
		return fmt.Sprintf("%v", one)
	}
	b, err := m.MarshalJSON()
	if err != nil {
		return fmt.Sprintf("%v", one)
	}
	s := strings.TrimSpace(string(b))
	s = strings.TrimPrefix(s, "[")
	s = strings.TrimSuffix(s, "]")
	return strings.TrimSpace(s)
}
