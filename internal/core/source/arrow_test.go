package source

import (
	"context"
	"reflect"
	"testing"
	"time"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"

	"github.com/tabed/tabed/internal/core"
)

// ----------------------------------------------------------------------------
// ArrowRecord Tests
// ----------------------------------------------------------------------------

func peopleSchema() *arrow.Schema {
	return arrow.NewSchema([]arrow.Field{
		{Name: "id", Type: arrow.PrimitiveTypes.Int64},
		{Name: "name", Type: arrow.BinaryTypes.String, Nullable: true},
	}, nil)
}

// peopleRecord builds a two-column record; valid marks which names are
// non-null (nil means all valid).
func peopleRecord(schema *arrow.Schema, ids []int64, names []string, valid []bool) arrow.Record {
	b := array.NewRecordBuilder(memory.NewGoAllocator(), schema)
	defer b.Release()
	b.Field(0).(*array.Int64Builder).AppendValues(ids, nil)
	b.Field(1).(*array.StringBuilder).AppendValues(names, valid)
	return b.NewRecord()
}

func TestArrowRecord(t *testing.T) {
	schema := peopleSchema()
	rec := peopleRecord(schema, []int64{1, 2}, []string{"Alice", ""}, []bool{true, false})
	defer rec.Release()

	got, err := ArrowRecord(rec).Table(context.Background())
	if err != nil {
		t.Fatalf("Table() error = %v", err)
	}

	want := core.Table{
		Columns: []string{"id", "name"},
		Rows: []core.Row{
			{"id": "1", "name": "Alice"},
			{"id": "2", "name": ""},
		},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Table() = %+v, want %+v", got, want)
	}
}

func TestArrowRecordFormatsTypes(t *testing.T) {
	schema := arrow.NewSchema([]arrow.Field{
		{Name: "score", Type: arrow.PrimitiveTypes.Float64},
		{Name: "active", Type: arrow.FixedWidthTypes.Boolean},
		{Name: "seen", Type: arrow.FixedWidthTypes.Timestamp_s},
		{Name: "day", Type: arrow.FixedWidthTypes.Date32},
	}, nil)

	b := array.NewRecordBuilder(memory.NewGoAllocator(), schema)
	defer b.Release()

	when := time.Date(2024, 5, 1, 13, 4, 5, 0, time.UTC)
	b.Field(0).(*array.Float64Builder).AppendValues([]float64{1.5, 2}, nil)
	b.Field(1).(*array.BooleanBuilder).AppendValues([]bool{true, false}, nil)
	b.Field(2).(*array.TimestampBuilder).AppendValues([]arrow.Timestamp{
		arrow.Timestamp(when.Unix()),
		arrow.Timestamp(when.Unix()),
	}, nil)
	b.Field(3).(*array.Date32Builder).AppendValues([]arrow.Date32{
		arrow.Date32FromTime(when),
		arrow.Date32FromTime(when),
	}, nil)

	rec := b.NewRecord()
	defer rec.Release()

	got, err := ArrowRecord(rec).Table(context.Background())
	if err != nil {
		t.Fatalf("Table() error = %v", err)
	}

	first := got.Rows[0]
	if first["score"] != "1.5" {
		t.Errorf("score = %q, want %q", first["score"], "1.5")
	}
	if got.Rows[1]["score"] != "2" {
		t.Errorf("score = %q, want %q (no padded zeros)", got.Rows[1]["score"], "2")
	}
	if first["active"] != "true" || got.Rows[1]["active"] != "false" {
		t.Errorf("active = %q/%q, want true/false", first["active"], got.Rows[1]["active"])
	}
	if first["seen"] != "2024-05-01 13:04:05" {
		t.Errorf("seen = %q, want %q", first["seen"], "2024-05-01 13:04:05")
	}
	if first["day"] != "2024-05-01" {
		t.Errorf("day = %q, want %q", first["day"], "2024-05-01")
	}
}

// ----------------------------------------------------------------------------
// ArrowTable Tests
// ----------------------------------------------------------------------------

func TestArrowTable(t *testing.T) {
	schema := peopleSchema()
	rec1 := peopleRecord(schema, []int64{1}, []string{"Alice"}, nil)
	defer rec1.Release()
	rec2 := peopleRecord(schema, []int64{2, 3}, []string{"Bob", "Carol"}, nil)
	defer rec2.Release()

	tbl := array.NewTableFromRecords(schema, []arrow.Record{rec1, rec2})
	defer tbl.Release()

	got, err := ArrowTable(tbl).Table(context.Background())
	if err != nil {
		t.Fatalf("Table() error = %v", err)
	}

	want := core.Table{
		Columns: []string{"id", "name"},
		Rows: []core.Row{
			{"id": "1", "name": "Alice"},
			{"id": "2", "name": "Bob"},
			{"id": "3", "name": "Carol"},
		},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Table() = %+v, want %+v", got, want)
	}
}
