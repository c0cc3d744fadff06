package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/topicscan/topicscan/internal/config"
	"github.com/topicscan/topicscan/internal/database"
	"github.com/topicscan/topicscan/internal/report"
)

// NewHistoryCmd creates the history command.
func NewHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history [topic]",
		Short: "List and show past research runs",
		Long: `History lists research runs recorded in the local database.

Without arguments it lists every stored run, newest first. With a topic it
lists only that topic's runs. Use --show to re-display a stored run without
re-spending search quota or model tokens.

Examples:
  # List all stored runs
  topicscan history

  # List runs for one topic
  topicscan history "battery recycling"

  # Re-display a stored run by its ID
  topicscan history --show 3

  # Limit the listing
  topicscan history --limit 10`,
		Args: cobra.MaximumNArgs(1),
		RunE: runHistoryCmd,
	}

	cmd.Flags().Int64P("show", "s", 0,
		"Re-display the stored run with this ID")
	cmd.Flags().IntP("limit", "l", 0,
		"Maximum number of runs to list (0 = all)")
	cmd.Flags().Bool("show-think", false,
		"Show the model's thought process when re-displaying a run")

	return cmd
}

// runHistoryCmd executes the history command.
func runHistoryCmd(cmd *cobra.Command, args []string) error {
	setupLogger(getVerboseFlag(cmd))

	showID, err := cmd.Flags().GetInt64("show")
	if err != nil {
		return err
	}
	limit, err := cmd.Flags().GetInt("limit")
	if err != nil {
		return err
	}
	showThink, err := cmd.Flags().GetBool("show-think")
	if err != nil {
		return err
	}

	// The database must already exist: listing history should never create
	// an empty database as a side effect.
	db, err := database.Open(config.XDGDataDir(), database.Options{CreateIfNotExists: false, EnableWAL: true})
	if err != nil {
		return fmt.Errorf("no research history found (run a research first): %w", err)
	}
	defer db.Close()

	if showID > 0 {
		return showRun(cmd, db, showID, showThink)
	}

	topic := ""
	if len(args) > 0 {
		topic = args[0]
	}
	return listRuns(cmd, db, topic, limit)
}

// showRun re-displays one stored run on the console.
func showRun(cmd *cobra.Command, db *database.HistoryDB, id int64, showThink bool) error {
	result, err := db.GetRun(cmd.Context(), id)
	if err != nil {
		return err
	}
	if result == nil {
		return fmt.Errorf("no stored run with ID %d", id)
	}

	console := report.NewConsoleWriter(cmd.OutOrStdout(), report.WithShowThink(showThink))
	_, err = console.Write(result)
	return err
}

// listRuns prints a table of stored run metadata.
func listRuns(cmd *cobra.Command, db *database.HistoryDB, topic string, limit int) error {
	runs, err := db.ListRuns(cmd.Context(), topic, limit)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(runs) == 0 {
		fmt.Fprintln(out, "No stored research runs.")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tDATE\tTOPIC\tSOURCES\tFAILED\tELAPSED")
	for _, run := range runs {
		fmt.Fprintf(w, "%d\t%s\t%s\t%d/%d\t%d\t%.1fs\n",
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04"),
			run.Topic,
			run.Processed, run.Requested,
			run.Failed,
			run.Elapsed.Seconds(),
		)
	}
	return w.Flush()
}
