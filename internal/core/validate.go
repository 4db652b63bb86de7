package core

import (
	"fmt"
	"strconv"
	"strings"
)

// Validate applies the configured structural checks to a table and
// returns the findings as ParseError records. The checks are independent
// and all run to completion: required columns first, then key
// uniqueness, then type coercion, with errors concatenated in that
// order. Row findings report the document line the row would occupy with
// the header at line 1, so they line up with what the user sees in the
// editor for documents without comments or separators.
//
// Validate never mutates the table; typed values produced by the type
// check are discarded.
func Validate(t Table, opts ValidateOptions) []ParseError {
	var errs []ParseError
	errs = append(errs, checkRequired(t, opts.RequiredColumns)...)
	errs = append(errs, checkKeys(t, opts.KeyColumns)...)
	errs = append(errs, checkTypes(t, opts)...)
	return errs
}

// checkRequired reports every required name absent from the column set.
func checkRequired(t Table, required []string) []ParseError {
	if len(required) == 0 {
		return nil
	}
	present := columnSet(t.Columns)
	var errs []ParseError
	for _, name := range required {
		if !present[name] {
			errs = append(errs, ParseError{
				Kind:    KindValidation,
				Line:    1,
				Column:  name,
				Message: "Required column missing: " + name,
			})
		}
	}
	return errs
}

// checkKeys reports every row whose key tuple repeats an earlier row's.
func checkKeys(t Table, keyColumns []string) []ParseError {
	if len(keyColumns) == 0 {
		return nil
	}
	first := make(map[string]int, len(t.Rows))
	var errs []ParseError
	for i, row := range t.Rows {
		line := i + 2
		key := keyString(row, keyColumns)
		if at, ok := first[key]; ok {
			errs = append(errs, ParseError{
				Kind:    KindValidation,
				Line:    line,
				Col:     1,
				Message: fmt.Sprintf("Duplicate key %s (first at row %d)", keyDisplay(row, keyColumns), at),
			})
			continue
		}
		first[key] = line
	}
	return errs
}

// checkTypes coerces every cell covered by a rule and reports failures.
// Rules naming columns absent from the table are skipped.
func checkTypes(t Table, opts ValidateOptions) []ParseError {
	if len(opts.Types) == 0 {
		return nil
	}
	present := columnSet(t.Columns)
	var errs []ParseError
	for _, rule := range opts.Types {
		if !present[rule.Column] {
			continue
		}
		for i, row := range t.Rows {
			value := row[rule.Column]
			if _, err := Coerce(value, rule, opts.DecimalSeparator); err != nil {
				errs = append(errs, ParseError{
					Kind:    KindValidation,
					Line:    i + 2,
					Column:  rule.Column,
					Message: fmt.Sprintf("Could not parse %q as %s", value, rule.typeName()),
				})
			}
		}
	}
	return errs
}

func columnSet(columns []string) map[string]bool {
	set := make(map[string]bool, len(columns))
	for _, name := range columns {
		set[name] = true
	}
	return set
}

// keyTuple renders each key column's value quoted, keeping tuples
// unambiguous even when the values contain separators themselves.
func keyTuple(row Row, keyColumns []string) []string {
	parts := make([]string, len(keyColumns))
	for i, name := range keyColumns {
		parts[i] = strconv.Quote(row[name])
	}
	return parts
}

// keyString is the matching form of a row's key, shared with Diff.
func keyString(row Row, keyColumns []string) string {
	return strings.Join(keyTuple(row, keyColumns), ",")
}

// keyDisplay is the human-readable form used in messages: ("a", "b").
func keyDisplay(row Row, keyColumns []string) string {
	return "(" + strings.Join(keyTuple(row, keyColumns), ", ") + ")"
}
