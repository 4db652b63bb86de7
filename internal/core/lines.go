package core

import "strings"

// SplitLogicalLines splits content into logical lines: units delimited by
// newlines that occur outside quoted regions. Newlines inside a quoted
// field are content and stay in the line. Every carriage return is
// removed first, so CRLF input is accepted transparently.
//
// Quote characters are retained in the output so SplitFields can resolve
// them. A doubled quote inside a quoted region is an escaped literal and
// does not end the region. An unterminated quote at end of input folds
// the whole remainder into the final line; no error is reported here, a
// column-count mismatch downstream is what surfaces it.
//
// The final accumulated buffer is always emitted, even when the input
// does not end in a newline, so every input yields at least one line.
func SplitLogicalLines(content string, quote byte) []string {
	content = strings.ReplaceAll(content, "\r", "")

	var (
		lines   []string
		buf     strings.Builder
		inQuote bool
	)
	for i := 0; i < len(content); i++ {
		ch := content[i]
		switch {
		case inQuote:
			if ch == quote {
				// Doubled quote: escaped literal, consume both.
				if i+1 < len(content) && content[i+1] == quote {
					buf.WriteByte(quote)
					buf.WriteByte(quote)
					i++
					continue
				}
				inQuote = false
			}
			buf.WriteByte(ch)
		case ch == quote:
			inQuote = true
			buf.WriteByte(ch)
		case ch == '\n':
			lines = append(lines, buf.String())
			buf.Reset()
		default:
			buf.WriteByte(ch)
		}
	}
	return append(lines, buf.String())
}
