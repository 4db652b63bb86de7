package core

// Row maps column names to string values. Every value is a string at the
// codec layer; typed values exist only transiently inside the Validator.
type Row map[string]string

// Table is an ordered column set plus an ordered sequence of rows.
// Rows need not be unique; uniqueness is a validation concern.
type Table struct {
	Columns []string
	Rows    []Row
}

// Options configures the codec for both the read and write paths.
// The zero value selects tab-delimited, "#"-commented, double-quoted text.
type Options struct {
	// Delimiter separates fields. It may be longer than one character and
	// is matched literally (default: a single tab).
	Delimiter string

	// CommentPrefix marks a line as non-data when it appears after any
	// leading whitespace (default: "#").
	CommentPrefix string

	// Quote is the quote character. It must be a single-byte character;
	// the default is '"'. Escaped quotes are doubled ("" reads as ").
	Quote byte
}

// DefaultOptions are the settings used when an Options field is unset.
var DefaultOptions = Options{
	Delimiter:     "\t",
	CommentPrefix: "#",
	Quote:         '"',
}

// withDefaults fills unset fields from DefaultOptions.
func (o Options) withDefaults() Options {
	if o.Delimiter == "" {
		o.Delimiter = DefaultOptions.Delimiter
	}
	if o.CommentPrefix == "" {
		o.CommentPrefix = DefaultOptions.CommentPrefix
	}
	if o.Quote == 0 {
		o.Quote = DefaultOptions.Quote
	}
	return o
}

// WriteOptions configures the serializer.
type WriteOptions struct {
	Options

	// HeaderComments are emitted before the header row, each prefixed
	// with the comment prefix and a space (an empty string produces a
	// bare prefix line).
	HeaderComments []string

	// FooterComments are emitted after the last data row, formatted like
	// HeaderComments. When set they take precedence over DefaultFooter.
	FooterComments []string

	// DefaultFooter emits a built-in footer describing how empty fields
	// and decoration lines are treated on read-back.
	DefaultFooter bool

	// HeaderSeparator emits a row of dash runs under the header, one run
	// per column, sized to the column's rendered width.
	HeaderSeparator bool

	// AlignColumns right-pads every cell to its column's maximum rendered
	// width, measured in display columns rather than bytes.
	AlignColumns bool

	// OmitHeader suppresses the header row. The zero value emits it.
	OmitHeader bool
}

// FieldType identifies a built-in coercion for the type check.
type FieldType int

const (
	FieldString FieldType = iota
	FieldInt
	FieldFloat
	FieldBool
)

// String returns the name used in type-check error messages.
func (t FieldType) String() string {
	switch t {
	case FieldInt:
		return "int"
	case FieldFloat:
		return "float"
	case FieldBool:
		return "bool"
	default:
		return "string"
	}
}

// TypeRule declares the expected type of one column.
type TypeRule struct {
	// Column is the header name the rule applies to. Rules for columns
	// absent from the table are ignored; missing columns are the
	// required-columns check's concern.
	Column string

	// Type selects a built-in coercion. Ignored when Parse is set.
	Type FieldType

	// Name overrides the type name shown in error messages. Set it when
	// supplying a custom Parse function.
	Name string

	// Parse is an optional custom coercion. It receives the trimmed cell
	// value and returns the typed value or an error. Empty cells are
	// treated as absent and never passed to Parse.
	Parse func(string) (any, error)
}

// typeName returns the display name for error messages.
func (r TypeRule) typeName() string {
	if r.Name != "" {
		return r.Name
	}
	return r.Type.String()
}

// ValidateOptions configures the structural checks applied by Validate.
// Checks whose option is empty are skipped; the rest all run to
// completion regardless of earlier findings.
type ValidateOptions struct {
	// RequiredColumns must all be present in the parsed column set.
	RequiredColumns []string

	// KeyColumns combine into a tuple that must be unique per row. The
	// same columns drive the diff between original and edited tables.
	KeyColumns []string

	// Types are per-column coercion rules, checked in the order given.
	Types []TypeRule

	// DecimalSeparator is replaced with a period before float parsing
	// (default: ","). It has no effect on other types.
	DecimalSeparator string
}

// RowChange pairs the original and edited versions of a row that share a
// key but differ in at least one field.
type RowChange struct {
	Old Row
	New Row
}

// ChangedColumns returns the names of the columns whose values differ
// between Old and New, in the order given. Pass the table's column set
// for a stable, presentable order.
func (c RowChange) ChangedColumns(columns []string) []string {
	var changed []string
	for _, name := range columns {
		if c.Old[name] != c.New[name] {
			changed = append(changed, name)
		}
	}
	return changed
}

// TableDiff classifies rows by key membership across two row sets.
// It is computed fresh per Diff call and never persisted.
type TableDiff struct {
	Added    []Row       // keys present only in the edited rows
	Removed  []Row       // keys present only in the original rows
	Modified []RowChange // keys present in both with differing fields
}

// Empty reports whether the diff contains no changes.
func (d TableDiff) Empty() bool {
	return len(d.Added) == 0 && len(d.Removed) == 0 && len(d.Modified) == 0
}
