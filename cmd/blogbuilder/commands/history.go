package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/alex-schaaf/alex-schaaf.github.io/internal/history"
)

// HistoryCmd implements the 'history' command.
type HistoryCmd struct {
	Limit int    `short:"n" help:"Number of builds to list" default:"10"`
	Show  string `help:"Print the full report of one build as JSON"`
}

func (h *HistoryCmd) Run(_ *Global, root *CLI) error {
	store, err := history.NewStore(root.HistoryDB)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	ctx := context.Background()

	if h.Show != "" {
		report, err := store.Get(ctx, h.Show)
		if err != nil {
			return err
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}

	entries, err := store.Recent(ctx, h.Limit)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Println("No builds recorded yet")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "BUILD\tSTARTED\tOUTCOME\tPOSTS\tPAGES\tREMOVED\tDURATION")
	for _, e := range entries {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%d\t%s\n",
			e.BuildID,
			e.Started.Format("2006-01-02 15:04:05"),
			e.Outcome,
			e.Posts,
			e.Pages,
			e.Removed,
			e.Duration.Round(timeRounding))
	}
	return w.Flush()
}
