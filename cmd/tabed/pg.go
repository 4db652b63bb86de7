package main

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github.com/tabed/tabed/internal/core/source"
)

var pgURL string

var pgCmd = &cobra.Command{
	Use:   "pg QUERY",
	Short: "Edit the result set of a PostgreSQL query",
	Long: `Pg runs QUERY against the configured database, serializes the result
set, and opens it in your editor. Pair it with --mode diff and --key to
see what changed; applying changes back to the database is up to you.`,
	Args: cobra.ExactArgs(1),
	RunE: pgRun,
}

func init() {
	pgCmd.Flags().StringVar(&pgURL, "url", "", "connection URL (defaults to DATABASE_URL)")
	rootCmd.AddCommand(pgCmd)
}

func pgRun(cmd *cobra.Command, args []string) error {
	opts, err := sessionOptions()
	if err != nil {
		return err
	}

	url := pgURL
	if url == "" {
		url = cfg.Database.URL
	}
	if url == "" {
		return fmt.Errorf("no database URL: set DATABASE_URL or pass --url")
	}

	pool, err := pgxpool.New(cmd.Context(), url)
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	defer pool.Close()

	// The timeout covers only the query; the editor blocks as long as
	// the user needs.
	queryCtx, cancel := context.WithTimeout(cmd.Context(), cfg.Database.QueryTimeout)
	defer cancel()
	table, err := source.Query(pool, args[0]).Table(queryCtx)
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
