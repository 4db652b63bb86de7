package core

import (
	"reflect"
	"testing"
)

// ----------------------------------------------------------------------------
// Diff Tests
// ----------------------------------------------------------------------------

func TestDiff(t *testing.T) {
	tests := []struct {
		name     string
		original []Row
		edited   []Row
		keys     []string
		want     TableDiff
	}{
		{
			name: "added removed and modified",
			original: []Row{
				{"id": "1", "name": "Alice"},
				{"id": "2", "name": "Bob"},
			},
			edited: []Row{
				{"id": "1", "name": "Alice X"},
				{"id": "3", "name": "Carol"},
			},
			keys: []string{"id"},
			want: TableDiff{
				Added:   []Row{{"id": "3", "name": "Carol"}},
				Removed: []Row{{"id": "2", "name": "Bob"}},
				Modified: []RowChange{{
					Old: Row{"id": "1", "name": "Alice"},
					New: Row{"id": "1", "name": "Alice X"},
				}},
			},
		},
		{
			name: "identical sides yield empty diff",
			original: []Row{
				{"id": "1", "name": "Alice"},
			},
			edited: []Row{
				{"id": "1", "name": "Alice"},
			},
			keys: []string{"id"},
			want: TableDiff{},
		},
		{
			name:     "everything added against empty original",
			original: nil,
			edited:   []Row{{"id": "1"}, {"id": "2"}},
			keys:     []string{"id"},
			want: TableDiff{
				Added: []Row{{"id": "1"}, {"id": "2"}},
			},
		},
		{
			name:     "everything removed against empty edited",
			original: []Row{{"id": "1"}, {"id": "2"}},
			edited:   nil,
			keys:     []string{"id"},
			want: TableDiff{
				Removed: []Row{{"id": "1"}, {"id": "2"}},
			},
		},
		{
			name: "last row wins on duplicate keys within a side",
			original: []Row{
				{"id": "1", "v": "first"},
				{"id": "1", "v": "second"},
			},
			edited: []Row{
				{"id": "1", "v": "second"},
			},
			keys: []string{"id"},
			want: TableDiff{},
		},
		{
			name: "composite keys distinguish rows",
			original: []Row{
				{"ns": "a", "id": "1", "v": "x"},
			},
			edited: []Row{
				{"ns": "b", "id": "1", "v": "x"},
			},
			keys: []string{"ns", "id"},
			want: TableDiff{
				Added:   []Row{{"ns": "b", "id": "1", "v": "x"}},
				Removed: []Row{{"ns": "a", "id": "1", "v": "x"}},
			},
		},
		{
			name: "output follows first-seen key order",
			original: []Row{
				{"id": "1"},
				{"id": "2"},
				{"id": "3"},
			},
			edited: []Row{
				{"id": "9"},
				{"id": "8"},
			},
			keys: []string{"id"},
			want: TableDiff{
				Added:   []Row{{"id": "9"}, {"id": "8"}},
				Removed: []Row{{"id": "1"}, {"id": "2"}, {"id": "3"}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Diff(tt.original, tt.edited, tt.keys)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Diff() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestDiffEmpty(t *testing.T) {
	if !(TableDiff{}).Empty() {
		t.Error("zero TableDiff should be empty")
	}
	d := TableDiff{Added: []Row{{"id": "1"}}}
	if d.Empty() {
		t.Error("diff with additions should not be empty")
	}
}

// ----------------------------------------------------------------------------
// RowChange Tests
// ----------------------------------------------------------------------------

func TestRowChangeChangedColumns(t *testing.T) {
	change := RowChange{
		Old: Row{"id": "1", "name": "Alice", "dept": "eng", "site": "HH"},
		New: Row{"id": "1", "name": "Alice X", "dept": "eng", "site": "B"},
	}
	columns := []string{"id", "name", "dept", "site"}

	got := change.ChangedColumns(columns)
	want := []string{"name", "site"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ChangedColumns() = %q, want %q", got, want)
	}
}
