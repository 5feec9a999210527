package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/daybook/daybook/internal/database"
	"github.com/daybook/daybook/internal/journal"
	"github.com/daybook/daybook/internal/services"
)

func newMoodCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mood",
		Short: "Manage the mood catalog",
	}

	cmd.AddCommand(newMoodListCmd())
	cmd.AddCommand(newMoodAddCmd())
	cmd.AddCommand(newMoodDeleteCmd())
	cmd.AddCommand(newMoodCategoriesCmd())
	cmd.AddCommand(newMoodSeedCmd())

	return cmd
}

type moodItem struct {
	ID       int64  `json:"id,omitempty"`
	Name     string `json:"name"`
	Category string `json:"category"`
	MoodType string `json:"mood_type"`
}

func newMoodListCmd() *cobra.Command {
	var (
		category string
		format   string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List moods",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := checkFormat(format); err != nil {
				return err
			}
			return withJournal(cmd, func(ctx context.Context, dbCtx *database.Context) error {
				svc := services.NewMoodService(dbCtx)

				var (
					moods    []journal.Mood
					fallback bool
				)
				if category != "" {
					moods = svc.ListByCategory(ctx, category)
				} else {
					moods, fallback = svc.ListAll(ctx)
				}

				if format == formatJSON {
					items := make([]moodItem, 0, len(moods))
					for _, m := range moods {
						items = append(items, moodItem{ID: m.ID, Name: m.Name, Category: m.Category, MoodType: m.MoodType})
					}
					return outputJSON(cmd, items)
				}

				if fallback {
					fmt.Fprintln(cmd.ErrOrStderr(), "Storage unavailable; showing the built-in catalog")
				}
				t := newTable(cmd)
				t.AppendHeader(table.Row{"ID", "Name", "Category", "Type"})
				for _, m := range moods {
					t.AppendRow(table.Row{m.ID, m.Name, m.Category, m.MoodType})
				}
				t.Render()
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "Only list moods of this category (Primary or Secondary)")
	cmd.Flags().StringVar(&format, "format", formatTable, "Output format: table or json")

	return cmd
}

func newMoodAddCmd() *cobra.Command {
	var (
		category string
		moodType string
	)

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a mood, or update the one with the same name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withJournal(cmd, func(ctx context.Context, dbCtx *database.Context) error {
				mood := &journal.Mood{Name: args[0], Category: category, MoodType: moodType}
				id, err := services.NewMoodService(dbCtx).Save(ctx, mood)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Saved mood %d: %s (%s, %s)\n", id, mood.Name, mood.Category, mood.MoodType)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&category, "category", journal.CategorySecondary, "Category: Primary or Secondary")
	cmd.Flags().StringVar(&moodType, "type", journal.MoodNeutral, "Type: Positive, Neutral or Negative")

	return cmd
}

func newMoodDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a mood",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid mood id: %s", args[0])
			}
			return withJournal(cmd, func(ctx context.Context, dbCtx *database.Context) error {
				affected, err := services.NewMoodService(dbCtx).Delete(ctx, id)
				if err != nil {
					return err
				}
				if affected == 0 {
					return fmt.Errorf("mood %d not found", id)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted mood %d\n", id)
				return nil
			})
		},
	}
}

func newMoodCategoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List mood categories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withJournal(cmd, func(ctx context.Context, dbCtx *database.Context) error {
				for _, c := range services.NewMoodService(dbCtx).Categories(ctx) {
					fmt.Fprintln(cmd.OutOrStdout(), c)
				}
				return nil
			})
		},
	}
}

func newMoodSeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Add any missing built-in moods",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withJournal(cmd, func(ctx context.Context, dbCtx *database.Context) error {
				inserted, err := services.NewMoodService(dbCtx).Prepopulate(ctx)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Added %d mood(s)\n", inserted)
				return nil
			})
		},
	}
}
