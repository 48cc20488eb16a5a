package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/sitewalk/sitewalk/internal/config"
	"github.com/sitewalk/sitewalk/internal/history"
)

// NewHistoryCmd creates the history command.
func NewHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history [id]",
		Short: "List saved crawl runs, or show one by ID",
		Long: `History lists crawl runs saved with "crawl --save". With an ID it
shows that run's full URL and error lists.

Examples:
  sitewalk history
  sitewalk history 3`,
		Args: cobra.MaximumNArgs(1),
		RunE: runHistoryCmd,
	}

	cmd.Flags().IntP("limit", "l", 20,
		"Maximum number of runs to list")
	cmd.Flags().String("db-dir", "",
		"History database directory (default: XDG data directory)")

	return cmd
}

// runHistoryCmd executes the history command.
func runHistoryCmd(cmd *cobra.Command, args []string) error {
	limit, err := cmd.Flags().GetInt("limit")
	if err != nil {
		return err
	}
	if limit <= 0 {
		return fmt.Errorf("configuration error: %w", config.ErrInvalidLimit)
	}

	dbDir, err := cmd.Flags().GetString("db-dir")
	if err != nil {
		return err
	}
	if dbDir == "" {
		dbDir = config.XDGDataDir()
	}

	setupLogging(cmd)

	// Listing should not create an empty database on a fresh machine.
	db, err := history.Open(dbDir, history.Options{CreateIfNotExists: false, EnableWAL: true})
	if err != nil {
		return fmt.Errorf("no crawl history found (run \"sitewalk crawl --save\" first): %w", err)
	}
	defer func() { _ = db.Close() }()

	if len(args) == 1 {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid history ID %q: %w", args[0], err)
		}
		return showHistoryEntry(cmd, db, id)
	}

	records, err := db.List(cmd.Context(), limit)
	if err != nil {
		return err
	}

	if len(records) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "no saved crawls")
		return nil
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%-5s %-40s %-6s %-6s %-6s %s\n",
		"ID", "SEED", "DEPTH", "URLS", "ERRORS", "STARTED")
	for _, rec := range records {
		fmt.Fprintf(cmd.OutOrStdout(), "%-5d %-40s %-6d %-6d %-6d %s\n",
			rec.ID, rec.Seed, rec.MaxDepth, rec.URLCount, rec.ErrorCount,
			rec.StartedAt.Local().Format("2006-01-02 15:04:05"))
	}
	return nil
}

// showHistoryEntry prints one stored crawl with its URL and error lists.
func showHistoryEntry(cmd *cobra.Command, db *history.DB, id int64) error {
	rec, err := db.Get(cmd.Context(), id)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Crawl %d of %s\n", rec.ID, rec.Seed)
	fmt.Fprintf(cmd.OutOrStdout(), "  depth:    %d\n", rec.MaxDepth)
	fmt.Fprintf(cmd.OutOrStdout(), "  started:  %s\n", rec.StartedAt.Local().Format("2006-01-02 15:04:05"))
	fmt.Fprintf(cmd.OutOrStdout(), "  duration: %s\n", rec.Duration)
	fmt.Fprintf(cmd.OutOrStdout(), "  urls:     %d\n\n", rec.URLCount)

	for _, u := range rec.URLs {
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", u)
	}

	if len(rec.Errors) > 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "\nErrors (%d):\n", len(rec.Errors))
		for _, e := range rec.Errors {
			fmt.Fprintf(cmd.OutOrStdout(), "  %s: %s\n", e.URL, e.Reason)
		}
	}

	return nil
}
