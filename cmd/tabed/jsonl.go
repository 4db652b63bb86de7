package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/tabed/tabed/internal/core/source"
)

var jsonlCmd = &cobra.Command{
	Use:   "jsonl FILE",
	Short: "Edit a JSON Lines file as a table",
	Long: `Jsonl reads one JSON object per line from FILE (or stdin when FILE is
-), flattens the records into a table, and opens it in your editor.
Editing from stdin needs a GUI editor, since a terminal editor wants the
terminal for itself.`,
	Args: cobra.ExactArgs(1),
	RunE: jsonlRun,
}

func init() {
	rootCmd.AddCommand(jsonlCmd)
}

func jsonlRun(cmd *cobra.Command, args []string) error {
	opts, err := sessionOptions()
	if err != nil {
		return err
	}

	var r io.Reader
	if args[0] == "-" {
		r = os.Stdin
	} else {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("open %s: %w", args[0], err)
		}
		defer f.Close()
		r = f
	}

	table, err := source.JSONLines(r).Table(cmd.Context())
	if err != nil {
		return err
	}

	res, err := runSession(table, opts)
	if err != nil {
		return err
	}

	fmt.Print(renderResult(res, table.Columns, opts))
	return nil
}
