package core

// convert.go provides the type coercions behind the per-column type
// check.
//
// Coercions handle the reality of hand-edited text:
//   - surrounding whitespace left behind by aligned columns
//   - comma decimal separators ("3,14") in floats
//   - several spellings of booleans (true/false, yes/no, ja/nein, 1/0)
//
// Every coercion treats an empty cell as acceptably absent rather than
// invalid; whether a value must be present is the required-columns
// check's concern, not the type check's.

import (
	"fmt"
	"strconv"
	"strings"
)

// Coerce checks value against rule and returns the typed result. The
// value is trimmed first. Plain string rules accept anything. For every
// other rule an empty value returns (nil, nil) — acceptably absent. A
// custom Parse function on the rule takes precedence over the built-in
// coercions.
//
// The typed result exists for the caller's inspection only; validation
// never writes it back into the row.
func Coerce(value string, rule TypeRule, decimalSeparator string) (any, error) {
	v := strings.TrimSpace(value)
	if rule.Parse == nil && rule.Type == FieldString {
		return v, nil
	}
	if v == "" {
		return nil, nil
	}
	if rule.Parse != nil {
		return rule.Parse(v)
	}
	switch rule.Type {
	case FieldInt:
		return parseInt(v)
	case FieldFloat:
		return parseFloat(v, decimalSeparator)
	case FieldBool:
		return parseBool(v)
	default:
		return v, nil
	}
}

func parseInt(s string) (any, error) {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("not an integer: %q", s)
	}
	return n, nil
}

// parseFloat substitutes the decimal separator (default ",") with a
// period before parsing, so "3,14" passes under the default settings.
// The substitution is the only locale handling performed.
func parseFloat(s, decimalSeparator string) (any, error) {
	if decimalSeparator == "" {
		decimalSeparator = ","
	}
	f, err := strconv.ParseFloat(strings.ReplaceAll(s, decimalSeparator, "."), 64)
	if err != nil {
		return nil, fmt.Errorf("not a number: %q", s)
	}
	return f, nil
}

// parseBool accepts true/1/yes/ja and false/0/no/nein, case-insensitive.
func parseBool(s string) (any, error) {
	switch strings.ToLower(s) {
	case "true", "1", "yes", "ja":
		return true, nil
	case "false", "0", "no", "nein":
		return false, nil
	}
	return nil, fmt.Errorf("not a boolean: %q", s)
}
