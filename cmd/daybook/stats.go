package main

import (
	"context"
	"fmt"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/daybook/daybook/internal/database"
	"github.com/daybook/daybook/internal/journal"
	"github.com/daybook/daybook/internal/usecase"
)

func newStatsCmd() *cobra.Command {
	var (
		from   string
		to     string
		days   int
		format string
	)

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Summarize moods over a range of days",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := checkFormat(format); err != nil {
				return err
			}

			now := time.Now()
			end := journal.StartOfDay(now)
			if to != "" {
				d, err := journal.ParseDay(to, now)
				if err != nil {
					return err
				}
				end = d
			}
			start := end.AddDate(0, 0, -(days - 1))
			if from != "" {
				d, err := journal.ParseDay(from, now)
				if err != nil {
					return err
				}
				start = d
			}
			if start.After(end) {
				return fmt.Errorf("--from %s is after --to %s", journal.DayKey(start), journal.DayKey(end))
			}

			return withJournal(cmd, func(ctx context.Context, dbCtx *database.Context) error {
				stats := usecase.NewJournal(dbCtx).Stats(ctx, start, end)
				if format == formatJSON {
					return outputJSON(cmd, stats)
				}

				fmt.Fprintf(cmd.OutOrStdout(), "%s to %s: %d entries\n", journal.DayKey(stats.From), journal.DayKey(stats.To), stats.Entries)

				t := newTable(cmd)
				t.AppendHeader(table.Row{"Polarity", "Entries"})
				t.AppendRow(table.Row{journal.MoodPositive, stats.Positive})
				t.AppendRow(table.Row{journal.MoodNeutral, stats.Neutral})
				t.AppendRow(table.Row{journal.MoodNegative, stats.Negative})
				if stats.Other > 0 {
					t.AppendRow(table.Row{"Other", stats.Other})
				}
				t.AppendRow(table.Row{"No mood", stats.Unset})
				t.Render()

				if len(stats.Moods) == 0 {
					return nil
				}
				moods := newTable(cmd)
				moods.AppendHeader(table.Row{"Mood", "Entries"})
				for _, m := range stats.Moods {
					moods.AppendRow(table.Row{m.Mood, m.Count})
				}
				moods.Render()
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "First day (defaults to --days before --to)")
	cmd.Flags().StringVar(&to, "to", "", "Last day (defaults to today)")
	cmd.Flags().IntVar(&days, "days", 30, "Number of days when --from is omitted")
	cmd.Flags().StringVar(&format, "format", formatTable, "Output format: table or json")

	return cmd
}
