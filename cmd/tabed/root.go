package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tabed/tabed/internal/config"
	"github.com/tabed/tabed/internal/core"
	"github.com/tabed/tabed/internal/editor"
	"github.com/tabed/tabed/internal/session"
)

var cfg *config.Config

// flags holds the persistent flag values shared by every data command.
var flags struct {
	delimiter      string
	commentPrefix  string
	quote          string
	align          bool
	separator      bool
	footer         bool
	headerComments []string
	required       []string
	keys           []string
	types          []string
	decimalSep     string
	mode           string
	editorCmd      string
	keepFile       bool
	tempDir        string
}

var rootCmd = &cobra.Command{
	Use:   "tabed",
	Short: "Tabed edits tabular data by round-tripping it through your text editor.",
	Long: `Tabed serializes tabular data to a delimited text file, opens it in your
editor, and parses, validates, and diffs whatever you saved. Data can come
from delimited files, PostgreSQL queries, or JSON Lines streams.`,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

func Execute(c *config.Config) {
	cfg = c
	if cfg.Session.MaxFileSize > 0 {
		session.MaxEditFileSize = cfg.Session.MaxFileSize
	}
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		if IsUserFacing(err) {
			fmt.Fprintln(os.Stderr, FormatUserError(err))
		}
		os.Exit(1)
	}
}

func init() {
	rootCmd.SilenceUsage = true
	rootCmd.SilenceErrors = true

	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&flags.delimiter, "delimiter", "d", "\t", "field delimiter (\\t for tab)")
	pf.StringVar(&flags.commentPrefix, "comment-prefix", "#", "line prefix that marks comments")
	pf.StringVar(&flags.quote, "quote", `"`, "quote character (single byte)")
	pf.BoolVar(&flags.align, "align", false, "pad cells so columns line up")
	pf.BoolVar(&flags.separator, "separator", false, "emit a dashed separator line under the header")
	pf.BoolVar(&flags.footer, "footer", false, "append the standard footer comments")
	pf.StringArrayVar(&flags.headerComments, "header-comment", nil, "comment line above the header (repeatable)")
	pf.StringSliceVar(&flags.required, "required", nil, "columns that must be present")
	pf.StringSliceVar(&flags.keys, "key", nil, "key columns for uniqueness checks and diffing")
	pf.StringArrayVar(&flags.types, "type", nil, "column type as col:kind (string, int, float, bool; repeatable)")
	pf.StringVar(&flags.decimalSep, "decimal-separator", ",", "decimal separator accepted in float cells")
	pf.StringVarP(&flags.mode, "mode", "m", "full", "result mode: full, diff, or changes_only")
	pf.StringVarP(&flags.editorCmd, "editor", "e", "", "editor command (defaults to $VISUAL, $EDITOR, then vi)")
	pf.BoolVar(&flags.keepFile, "keep-file", false, "keep the temp file after a successful session")
	pf.StringVar(&flags.tempDir, "temp-dir", "", "directory for session temp files")
}

// sessionOptions assembles session options from the persistent flags and
// the environment configuration.
func sessionOptions() (session.Options, error) {
	quote, err := parseQuote(flags.quote)
	if err != nil {
		return session.Options{}, err
	}
	rules, err := parseTypeRules(flags.types)
	if err != nil {
		return session.Options{}, err
	}
	mode, err := parseMode(flags.mode)
	if err != nil {
		return session.Options{}, err
	}

	tempDir := flags.tempDir
	if tempDir == "" {
		tempDir = cfg.Session.TempDir
	}
	editorCmd := flags.editorCmd
	if editorCmd == "" {
		editorCmd = cfg.Editor.Command
	}

	return session.Options{
		Write: core.WriteOptions{
			Options: core.Options{
				Delimiter:     unescapeDelimiter(flags.delimiter),
				CommentPrefix: flags.commentPrefix,
				Quote:         quote,
			},
			HeaderComments:  flags.headerComments,
			DefaultFooter:   flags.footer,
			HeaderSeparator: flags.separator,
			AlignColumns:    flags.align,
		},
		Validate: core.ValidateOptions{
			RequiredColumns:  flags.required,
			KeyColumns:       flags.keys,
			Types:            rules,
			DecimalSeparator: flags.decimalSep,
		},
		Mode:     mode,
		TempDir:  tempDir,
		KeepFile: flags.keepFile || cfg.Session.KeepFiles,
		Editor:   editor.Resolve(editorCmd),
	}, nil
}

// unescapeDelimiter turns the shell-typed sequence \t into a tab, since
// a literal tab is awkward to pass as a flag value.
func unescapeDelimiter(s string) string {
	return strings.ReplaceAll(s, `\t`, "\t")
}

func parseQuote(s string) (byte, error) {
	if len(s) != 1 {
		return 0, fmt.Errorf("--quote must be a single byte, got %q", s)
	}
	return s[0], nil
}

func parseMode(s string) (session.ReturnMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "full":
		return session.ModeFull, nil
	case "diff":
		return session.ModeDiff, nil
	case "changes_only", "changes":
		return session.ModeChanges, nil
	default:
		return "", fmt.Errorf("unknown mode %q (use full, diff, or changes_only)", s)
	}
}

// parseTypeRules converts col:kind flag values into type rules.
func parseTypeRules(specs []string) ([]core.TypeRule, error) {
	if len(specs) == 0 {
		return nil, nil
	}
	rules := make([]core.TypeRule, 0, len(specs))
	for _, spec := range specs {
		col, kind, ok := strings.Cut(spec, ":")
		if !ok || col == "" {
			return nil, fmt.Errorf("invalid --type %q, want col:kind", spec)
		}
		rule := core.TypeRule{Column: col}
		switch strings.ToLower(strings.TrimSpace(kind)) {
		case "string", "str":
			rule.Type = core.FieldString
		case "int", "integer":
			rule.Type = core.FieldInt
		case "float", "number":
			rule.Type = core.FieldFloat
		case "bool", "boolean":
			rule.Type = core.FieldBool
		default:
			return nil, fmt.Errorf("unknown type %q in --type %q (use string, int, float, bool)", kind, spec)
		}
		rules = append(rules, rule)
	}
	return rules, nil
}
