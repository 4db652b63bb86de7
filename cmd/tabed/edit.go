package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/tabed/tabed/internal/core"
	"github.com/tabed/tabed/internal/session"
)

var editWrite bool

var editCmd = &cobra.Command{
	Use:   "edit FILE",
	Short: "Edit a delimited file in your editor with validation",
	Long: `Edit parses FILE, opens it in your editor, and re-parses and validates
the result. With --write the canonical serialization replaces FILE on
success; otherwise the result prints to stdout in the selected mode.`,
	Args: cobra.ExactArgs(1),
	RunE: editRun,
}

func init() {
	editCmd.Flags().BoolVarP(&editWrite, "write", "w", false, "write the canonical serialization back to FILE on success")
	rootCmd.AddCommand(editCmd)
}

func editRun(cmd *cobra.Command, args []string) error {
	path := args[0]
	opts, err := sessionOptions()
	if err != nil {
		return err
	}
	if editWrite && opts.Mode != session.ModeFull {
		return fmt.Errorf("--write requires --mode full")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	table, errs := core.Parse(string(data), opts.Write.Options)
	if len(errs) > 0 {
		printErrors(errs)
		return fmt.Errorf("%s: %d parse error(s)", path, len(errs))
	}

	res, err := runSession(table, opts)
	if err != nil {
		return err
	}

	if editWrite {
		out := core.Write(res.Table, opts.Write)
		if err := os.WriteFile(path, []byte(out), 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		slog.Info("file updated", "path", path, "rows", len(res.Table.Rows))
		return nil
	}

	fmt.Print(renderResult(res, table.Columns, opts))
	return nil
}
