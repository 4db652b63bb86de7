// Package session orchestrates one edit round trip: serialize a table to
// a file, hand the file to an external editor, then parse, validate, and
// optionally diff what came back.
//
// The all-or-nothing rule applies throughout: any parse or validation
// error means no result payload. Hard failures (unwritable destination,
// editor spawn failure) travel as ordinary Go errors instead of error
// records.
package session

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/google/uuid"

	"github.com/tabed/tabed/internal/core"
	"github.com/tabed/tabed/internal/editor"
)

// MaxEditFileSize caps how many bytes Finish will read back from the
// edited file. Editors do not grow files by accident at this scale; a
// larger file is almost certainly the wrong path.
var MaxEditFileSize int64 = 64 << 20 // 64 MB

// ReturnMode selects what a finished session hands back.
type ReturnMode string

const (
	// ModeFull returns the whole edited table.
	ModeFull ReturnMode = "full"
	// ModeDiff returns a keyed diff against the original rows.
	ModeDiff ReturnMode = "diff"
	// ModeChanges returns added rows plus the new versions of modified
	// rows, without removals.
	ModeChanges ReturnMode = "changes_only"
)

// Options configures a session. The zero value edits with defaults:
// tab-delimited output to a fresh temp file, no validation, ModeFull.
type Options struct {
	// Write controls serialization of the outgoing file and, through its
	// embedded Options, parsing of the edited file.
	Write core.WriteOptions

	// Validate runs on the parsed table before any result is produced.
	// Its KeyColumns double as the diff keys.
	Validate core.ValidateOptions

	// Mode selects the result shape; empty means ModeFull.
	Mode ReturnMode

	// Original overrides the diff baseline. Nil means the session's own
	// input rows.
	Original []core.Row

	// Path is the destination file; empty means a fresh temp file.
	Path string

	// TempDir overrides where temp files go; empty means the OS default.
	TempDir string

	// KeepFile leaves the temp file in place after a successful finish.
	// Files with parse or validation errors are always kept so the user
	// can edit again.
	KeepFile bool

	// Editor runs during Run; the zero value resolves $VISUAL, $EDITOR,
	// then vi.
	Editor editor.Editor
}

// Result is the payload of a successful finish. Mode tells which fields
// are populated.
type Result struct {
	Mode ReturnMode

	// Table holds the whole edited table (ModeFull).
	Table core.Table

	// Diff holds the keyed diff (ModeDiff).
	Diff core.TableDiff

	// Added and Updated hold new rows and new versions of modified rows
	// (ModeChanges).
	Added   []core.Row
	Updated []core.Row
}

// Session is one edit round trip over a single table. Sessions are not
// safe for concurrent use; each edit gets its own.
type Session struct {
	ID uuid.UUID

	table core.Table
	opts  Options

	path string // last prepared path
	temp bool   // path was created by Prepare, not the caller
}

// New builds a session for table. The table is held as the diff baseline
// until Finish, so callers should not mutate its rows mid-session.
func New(table core.Table, opts Options) *Session {
	if opts.Mode == "" {
		opts.Mode = ModeFull
	}
	return &Session{ID: uuid.New(), table: table, opts: opts}
}

// Prepare serializes the table and writes it to the destination path, or
// to a fresh temp file when no destination was configured. It returns
// the path written.
func (s *Session) Prepare() (string, error) {
	text := core.Write(s.table, s.opts.Write)

	path := s.opts.Path
	if path == "" {
		f, err := os.CreateTemp(s.opts.TempDir, "tabed-"+shortID(s.ID)+"-*.txt")
		if err != nil {
			return "", fmt.Errorf("create temp file: %w", err)
		}
		path = f.Name()
		if _, err := f.WriteString(text); err != nil {
			f.Close()
			os.Remove(path)
			return "", fmt.Errorf("write temp file: %w", err)
		}
		if err := f.Close(); err != nil {
			os.Remove(path)
			return "", fmt.Errorf("close temp file: %w", err)
		}
		s.temp = true
	} else {
		if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
			return "", fmt.Errorf("write %s: %w", path, err)
		}
		s.temp = false
	}
	s.path = path

	slog.Debug("edit session prepared",
		"session_id", s.ID,
		"path", path,
		"rows", len(s.table.Rows),
	)
	return path, nil
}

// Finish reads the file at path back, parses and validates it, and
// builds the result for the configured mode. Data problems come back as
// the error-record slice with a nil result; only I/O and configuration
// failures use the error return.
func (s *Session) Finish(path string) (*Result, []core.ParseError, error) {
	if fi, err := os.Stat(path); err == nil && fi.Size() > MaxEditFileSize {
		return nil, nil, fmt.Errorf("edited file %s is %d bytes, over the %d byte limit", path, fi.Size(), MaxEditFileSize)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("read edited file: %w", err)
	}

	table, errs := core.Parse(sanitize(data), s.opts.Write.Options)
	if len(errs) > 0 {
		slog.Warn("edit session parse failed",
			"session_id", s.ID,
			"path", path,
			"errors", len(errs),
		)
		return nil, errs, nil
	}

	if errs := core.Validate(table, s.opts.Validate); len(errs) > 0 {
		slog.Warn("edit session validation failed",
			"session_id", s.ID,
			"path", path,
			"errors", len(errs),
		)
		return nil, errs, nil
	}

	res := &Result{Mode: s.opts.Mode}
	switch s.opts.Mode {
	case ModeFull:
		res.Table = table

	case ModeDiff, ModeChanges:
		if len(s.opts.Validate.KeyColumns) == 0 {
			return nil, nil, fmt.Errorf("return mode %q requires key columns", s.opts.Mode)
		}
		original := s.opts.Original
		if original == nil {
			original = s.table.Rows
		}
		d := core.Diff(original, table.Rows, s.opts.Validate.KeyColumns)
		if s.opts.Mode == ModeDiff {
			res.Diff = d
		} else {
			res.Added = d.Added
			for _, ch := range d.Modified {
				res.Updated = append(res.Updated, ch.New)
			}
		}

	default:
		return nil, nil, fmt.Errorf("unknown return mode %q", s.opts.Mode)
	}

	if s.temp && path == s.path && !s.opts.KeepFile {
		os.Remove(path)
	}

	slog.Info("edit session finished",
		"session_id", s.ID,
		"mode", s.opts.Mode,
		"rows", len(table.Rows),
	)
	return res, nil, nil
}

// Run performs the whole round trip: Prepare, block inside the editor,
// Finish.
func (s *Session) Run() (*Result, []core.ParseError, error) {
	path, err := s.Prepare()
	if err != nil {
		return nil, nil, err
	}

	ed := s.opts.Editor
	if ed.Command == "" {
		ed = editor.Default()
	}
	if err := ed.Edit(path); err != nil {
		return nil, nil, err
	}

	return s.Finish(path)
}

// Start prepares the file and returns its path plus a finish callback,
// so tests and non-interactive callers can edit the file themselves
// instead of spawning an editor.
func (s *Session) Start() (string, func() (*Result, []core.ParseError, error), error) {
	path, err := s.Prepare()
	if err != nil {
		return "", nil, err
	}
	return path, func() (*Result, []core.ParseError, error) {
		return s.Finish(path)
	}, nil
}

func shortID(id uuid.UUID) string {
	return id.String()[:8]
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// sanitize strips a leading UTF-8 BOM and replaces invalid UTF-8 bytes
// before parsing. Spreadsheets and some editors reintroduce BOMs on
// save, and a stray invalid byte should surface as a readable
// replacement character in an error message, not corrupt the parse.
func sanitize(data []byte) string {
	data = bytes.TrimPrefix(data, utf8BOM)
	return strings.ToValidUTF8(string(data), "�")
}
