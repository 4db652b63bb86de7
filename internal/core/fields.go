package core

import "strings"

// SplitFields splits one logical line into field values on delimiter,
// resolving quotes as it goes. Inside a quoted region the delimiter has
// no meaning, a doubled quote character yields one literal quote, and a
// lone quote character closes the region. Quote characters themselves
// are not copied to the output.
//
// The delimiter may be longer than one character and is matched by
// literal comparison at the cursor, not as a pattern. The final field is
// always emitted: a line with no delimiter yields one field, a line
// ending in a delimiter yields a trailing empty field.
func SplitFields(line, delimiter string, quote byte) []string {
	if delimiter == "" {
		delimiter = DefaultOptions.Delimiter
	}

	var (
		fields  []string
		buf     strings.Builder
		inQuote bool
	)
	for i := 0; i < len(line); {
		ch := line[i]
		switch {
		case inQuote:
			if ch == quote {
				if i+1 < len(line) && line[i+1] == quote {
					buf.WriteByte(quote)
					i += 2
					continue
				}
				inQuote = false
				i++
				continue
			}
			buf.WriteByte(ch)
			i++
		case ch == quote:
			inQuote = true
			i++
		case strings.HasPrefix(line[i:], delimiter):
			fields = append(fields, buf.String())
			buf.Reset()
			i += len(delimiter)
		default:
			buf.WriteByte(ch)
			i++
		}
	}
	return append(fields, buf.String())
}
