package session

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/tabed/tabed/internal/core"
	"github.com/tabed/tabed/internal/editor"
)

func peopleTable() core.Table {
	return core.Table{
		Columns: []string{"id", "name"},
		Rows: []core.Row{
			{"id": "1", "name": "Alice"},
			{"id": "2", "name": "Bob"},
		},
	}
}

// edit overwrites the prepared file, standing in for the user's editor.
func edit(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("rewrite %s: %v", path, err)
	}
}

// ----------------------------------------------------------------------------
// Round Trip Tests
// ----------------------------------------------------------------------------

func TestSessionFullRoundTrip(t *testing.T) {
	s := New(peopleTable(), Options{TempDir: t.TempDir()})

	path, finish, err := s.Start()
	if err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	written, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read prepared file: %v", err)
	}
	if want := "id\tname\n1\tAlice\n2\tBob\n"; string(written) != want {
		t.Errorf("prepared file = %q, want %q", written, want)
	}

	edit(t, path, "id\tname\n1\tAlice\n2\tBobby\n")

	res, errs, err := finish()
	if err != nil {
		t.Fatalf("finish error = %v", err)
	}
	if len(errs) != 0 {
		t.Fatalf("finish errors = %v, want none", errs)
	}
	if res.Mode != ModeFull {
		t.Errorf("Mode = %q, want %q", res.Mode, ModeFull)
	}

	want := core.Table{
		Columns: []string{"id", "name"},
		Rows: []core.Row{
			{"id": "1", "name": "Alice"},
			{"id": "2", "name": "Bobby"},
		},
	}
	if !reflect.DeepEqual(res.Table, want) {
		t.Errorf("Table = %+v, want %+v", res.Table, want)
	}
}

func TestSessionUnchangedFileRoundTripsExactly(t *testing.T) {
	table := peopleTable()
	s := New(table, Options{TempDir: t.TempDir(), Editor: editor.Editor{Command: "true"}})

	// true(1) exits without touching the file, so Run sees the exact
	// serialization it wrote.
	res, errs, err := s.Run()
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(errs) != 0 {
		t.Fatalf("Run() errors = %v, want none", errs)
	}
	if !reflect.DeepEqual(res.Table, table) {
		t.Errorf("Table = %+v, want unchanged %+v", res.Table, table)
	}
}

// ----------------------------------------------------------------------------
// Return Mode Tests
// ----------------------------------------------------------------------------

func TestSessionDiffMode(t *testing.T) {
	s := New(peopleTable(), Options{
		TempDir:  t.TempDir(),
		Mode:     ModeDiff,
		Validate: core.ValidateOptions{KeyColumns: []string{"id"}},
	})

	path, finish, err := s.Start()
	if err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	edit(t, path, "id\tname\n1\tAlice X\n3\tCarol\n")

	res, errs, err := finish()
	if err != nil {
		t.Fatalf("finish error = %v", err)
	}
	if len(errs) != 0 {
		t.Fatalf("finish errors = %v, want none", errs)
	}

	want := core.TableDiff{
		Added:   []core.Row{{"id": "3", "name": "Carol"}},
		Removed: []core.Row{{"id": "2", "name": "Bob"}},
		Modified: []core.RowChange{{
			Old: core.Row{"id": "1", "name": "Alice"},
			New: core.Row{"id": "1", "name": "Alice X"},
		}},
	}
	if !reflect.DeepEqual(res.Diff, want) {
		t.Errorf("Diff = %+v, want %+v", res.Diff, want)
	}
}

func TestSessionChangesMode(t *testing.T) {
	s := New(peopleTable(), Options{
		TempDir:  t.TempDir(),
		Mode:     ModeChanges,
		Validate: core.ValidateOptions{KeyColumns: []string{"id"}},
	})

	path, finish, err := s.Start()
	if err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	edit(t, path, "id\tname\n1\tAlice X\n3\tCarol\n")

	res, errs, err := finish()
	if err != nil {
		t.Fatalf("finish error = %v", err)
	}
	if len(errs) != 0 {
		t.Fatalf("finish errors = %v, want none", errs)
	}

	wantAdded := []core.Row{{"id": "3", "name": "Carol"}}
	wantUpdated := []core.Row{{"id": "1", "name": "Alice X"}}
	if !reflect.DeepEqual(res.Added, wantAdded) {
		t.Errorf("Added = %+v, want %+v", res.Added, wantAdded)
	}
	if !reflect.DeepEqual(res.Updated, wantUpdated) {
		t.Errorf("Updated = %+v, want %+v", res.Updated, wantUpdated)
	}
}

func TestSessionDiffModeRequiresKeyColumns(t *testing.T) {
	s := New(peopleTable(), Options{TempDir: t.TempDir(), Mode: ModeDiff})

	path, finish, err := s.Start()
	if err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	edit(t, path, "id\tname\n1\tAlice\n")

	res, errs, err := finish()
	if err == nil {
		t.Fatal("finish error = nil, want configuration error")
	}
	if !strings.Contains(err.Error(), "key columns") {
		t.Errorf("finish error = %q, want key-column complaint", err)
	}
	if res != nil || len(errs) != 0 {
		t.Errorf("finish = (%+v, %v), want no partial result", res, errs)
	}
}

func TestSessionOriginalOverride(t *testing.T) {
	override := []core.Row{{"id": "9", "name": "Zed"}}
	s := New(peopleTable(), Options{
		TempDir:  t.TempDir(),
		Mode:     ModeDiff,
		Original: override,
		Validate: core.ValidateOptions{KeyColumns: []string{"id"}},
	})

	path, finish, err := s.Start()
	if err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	edit(t, path, "id\tname\n9\tZed\n")

	res, errs, err := finish()
	if err != nil || len(errs) != 0 {
		t.Fatalf("finish = (%v, %v), want clean", errs, err)
	}
	if !res.Diff.Empty() {
		t.Errorf("Diff = %+v, want empty against overridden baseline", res.Diff)
	}
}

// ----------------------------------------------------------------------------
// Error Handling Tests
// ----------------------------------------------------------------------------

func TestSessionParseErrorsReturnNoResult(t *testing.T) {
	s := New(peopleTable(), Options{TempDir: t.TempDir()})

	path, finish, err := s.Start()
	if err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	edit(t, path, "id\tname\nlonely\n")

	res, errs, err := finish()
	if err != nil {
		t.Fatalf("finish error = %v", err)
	}
	if res != nil {
		t.Errorf("result = %+v, want nil on parse errors", res)
	}
	if len(errs) != 1 || errs[0].Kind != core.KindRowShape {
		t.Fatalf("errors = %v, want one row-shape error", errs)
	}

	// The file survives so the user can fix it and finish again.
	if _, err := os.Stat(path); err != nil {
		t.Errorf("edited file removed after failed finish: %v", err)
	}

	edit(t, path, "id\tname\n1\tAlice\n2\tBob\n")
	res, errs, err = finish()
	if err != nil || len(errs) != 0 || res == nil {
		t.Fatalf("second finish = (%+v, %v, %v), want success", res, errs, err)
	}
}

func TestSessionValidationErrorsReturnNoResult(t *testing.T) {
	s := New(peopleTable(), Options{
		TempDir: t.TempDir(),
		Validate: core.ValidateOptions{
			Types: []core.TypeRule{{Column: "id", Type: core.FieldInt}},
		},
	})

	path, finish, err := s.Start()
	if err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	edit(t, path, "id\tname\nabc\tAlice\n")

	res, errs, err := finish()
	if err != nil {
		t.Fatalf("finish error = %v", err)
	}
	if res != nil {
		t.Errorf("result = %+v, want nil on validation errors", res)
	}
	if len(errs) != 1 || !strings.Contains(errs[0].Message, `Could not parse "abc" as int`) {
		t.Errorf("errors = %v, want int parse failure", errs)
	}
}

func TestSessionFileSizeLimit(t *testing.T) {
	old := MaxEditFileSize
	MaxEditFileSize = 4
	t.Cleanup(func() { MaxEditFileSize = old })

	s := New(peopleTable(), Options{TempDir: t.TempDir()})
	_, finish, err := s.Start()
	if err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	_, _, err = finish()
	if err == nil || !strings.Contains(err.Error(), "byte limit") {
		t.Errorf("finish error = %v, want size limit error", err)
	}
}

// ----------------------------------------------------------------------------
// Sanitation Tests
// ----------------------------------------------------------------------------

func TestSessionStripsBOMAndScrubsInvalidUTF8(t *testing.T) {
	s := New(core.Table{Columns: []string{"id"}}, Options{TempDir: t.TempDir()})

	path, finish, err := s.Start()
	if err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	edit(t, path, "\xEF\xBB\xBFid\n\xffx\n")

	res, errs, err := finish()
	if err != nil || len(errs) != 0 {
		t.Fatalf("finish = (%v, %v), want clean parse", errs, err)
	}
	if got := res.Table.Columns[0]; got != "id" {
		t.Errorf("first column = %q, want BOM stripped %q", got, "id")
	}
	if got := res.Table.Rows[0]["id"]; got != "�x" {
		t.Errorf("cell = %q, want invalid byte replaced %q", got, "�x")
	}
}

// ----------------------------------------------------------------------------
// File Lifecycle Tests
// ----------------------------------------------------------------------------

func TestSessionRemovesTempFileOnSuccess(t *testing.T) {
	s := New(peopleTable(), Options{TempDir: t.TempDir()})

	path, finish, err := s.Start()
	if err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if _, _, err := finish(); err != nil {
		t.Fatalf("finish error = %v", err)
	}

	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("temp file still present after success: %v", err)
	}
}

func TestSessionKeepFile(t *testing.T) {
	s := New(peopleTable(), Options{TempDir: t.TempDir(), KeepFile: true})

	path, finish, err := s.Start()
	if err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if _, _, err := finish(); err != nil {
		t.Fatalf("finish error = %v", err)
	}

	if _, err := os.Stat(path); err != nil {
		t.Errorf("temp file removed despite KeepFile: %v", err)
	}
}

func TestSessionDestinationPathIsKept(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "people.txt")
	s := New(peopleTable(), Options{Path: dest})

	path, finish, err := s.Start()
	if err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if path != dest {
		t.Fatalf("Prepare path = %q, want destination %q", path, dest)
	}
	if _, _, err := finish(); err != nil {
		t.Fatalf("finish error = %v", err)
	}

	// Caller-owned destinations are never cleaned up.
	if _, err := os.Stat(dest); err != nil {
		t.Errorf("destination file removed: %v", err)
	}
}
