// Package core provides the delimited-text codec and table logic for
// editor round-trips.
//
// This package is the heart of tabed, containing all parsing, writing,
// validation, and diffing logic independent of any editor, database, or
// CLI layer. It can be used by command-line tools, services, or tests
// without modification.
//
// # Architecture
//
// The package is organized around a small set of building blocks:
//
//   - Codec: [SplitLogicalLines] and [SplitFields] decode quote-aware
//     delimited text; [Write] is the matching encoder with minimal
//     quoting, comments, and optional column alignment.
//   - Parser: [Parse] drives the codec over a whole document, classifies
//     lines (comment, blank, header, separator, data), and accumulates
//     row-level errors instead of aborting.
//   - Validator: [Validate] applies required-column, unique-key, and
//     per-column type rules to a parsed table, producing the same
//     [ParseError] records as the parser.
//   - Diff: [Diff] key-matches two row sets and classifies rows as
//     added, removed, or modified.
//
// # Document Format
//
// Documents are plain text: an optional comment block, a header line, an
// optional dash separator, data lines, and an optional comment footer.
// Fields are separated by a configurable delimiter (tab by default) and
// quoted with a configurable quote character only when their content
// requires it. Embedded newlines, delimiters, and doubled quote
// characters inside quoted fields are preserved exactly:
//
//	# inventory snapshot
//	id	name	note
//	--	----	----
//	1	Bolt M4	"8 mm, zinc"
//	2	Washer	"says ""large""
//	on two lines"
//
// # Error Handling
//
// Malformed data never causes a panic or an early return. Both [Parse]
// and [Validate] collect [ParseError] values in document order and keep
// going; the caller decides whether a non-empty error list is fatal.
// Only the absence of a header line invalidates a whole document.
package core
