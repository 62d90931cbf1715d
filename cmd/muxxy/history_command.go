package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"muxxy/internal/history"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "Inspect past mux runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistoryList(ctx, cmd, 20)
		},
	}

	var limit int
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List recent mux runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistoryList(ctx, cmd, limit)
		},
	}
	listCmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of runs to show (0 = all)")

	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete all recorded runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openHistoryOrFail(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			removed, err := store.Clear(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %d recorded runs\n", removed)
			return nil
		},
	}

	historyCmd.AddCommand(listCmd)
	historyCmd.AddCommand(clearCmd)
	return historyCmd
}

func runHistoryList(ctx *commandContext, cmd *cobra.Command, limit int) error {
	store, err := openHistoryOrFail(ctx)
	if err != nil {
		return err
	}
	defer store.Close()

	records, err := store.Recent(cmd.Context(), limit)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if len(records) == 0 {
		fmt.Fprintln(out, "No recorded runs")
		return nil
	}

	rows := make([][]string, 0, len(records))
	for _, rec := range records {
		rows = append(rows, []string{
			rec.CreatedAt.Local().Format("2006-01-02 15:04"),
			string(rec.Status),
			filepath.Base(rec.VideoPath),
			filepath.Base(rec.SubtitlePath),
			fmt.Sprintf("%.0f%%", rec.Confidence*100),
			rec.MatchKind,
		})
	}
	fmt.Fprintln(out, renderTable(
		[]string{"When", "Status", "Video", "Subtitle", "Confidence", "Kind"},
		rows, 5))

	counts, err := store.StatusCounts(cmd.Context())
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "All time: %d completed, %d failed, %d skipped\n",
		counts[history.StatusCompleted], counts[history.StatusFailed], counts[history.StatusSkipped])
	return nil
}

func openHistoryOrFail(ctx *commandContext) (*history.Store, error) {
	store, err := ctx.openHistory()
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, fmt.Errorf("history is disabled; enable it in the [history] config section")
	}
	return store, nil
}
