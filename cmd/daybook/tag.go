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

func newTagCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tag",
		Short: "Manage tags",
	}

	cmd.AddCommand(newTagListCmd())
	cmd.AddCommand(newTagAddCmd())
	cmd.AddCommand(newTagDeleteCmd())
	cmd.AddCommand(newTagSeedCmd())

	return cmd
}

type tagItem struct {
	ID   int64  `json:"id,omitempty"`
	Name string `json:"name"`
}

func newTagListCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tags",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := checkFormat(format); err != nil {
				return err
			}
			return withJournal(cmd, func(ctx context.Context, dbCtx *database.Context) error {
				tags, fallback := services.NewTagService(dbCtx).ListAll(ctx)

				if format == formatJSON {
					items := make([]tagItem, 0, len(tags))
					for _, tag := range tags {
						items = append(items, tagItem{ID: tag.ID, Name: tag.Name})
					}
					return outputJSON(cmd, items)
				}

				if fallback {
					fmt.Fprintln(cmd.ErrOrStderr(), "Storage unavailable; showing the built-in catalog")
				}
				t := newTable(cmd)
				t.AppendHeader(table.Row{"ID", "Name"})
				for _, tag := range tags {
					t.AppendRow(table.Row{tag.ID, tag.Name})
				}
				t.Render()
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&format, "format", formatTable, "Output format: table or json")

	return cmd
}

func newTagAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <name>",
		Short: "Add a tag",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withJournal(cmd, func(ctx context.Context, dbCtx *database.Context) error {
				tag := &journal.Tag{Name: args[0]}
				id, err := services.NewTagService(dbCtx).Save(ctx, tag)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Saved tag %d: %s\n", id, tag.Name)
				return nil
			})
		},
	}
}

func newTagDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a tag and unlink it from every entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid tag id: %s", args[0])
			}
			return withJournal(cmd, func(ctx context.Context, dbCtx *database.Context) error {
				affected, err := services.NewTagService(dbCtx).Delete(ctx, id)
				if err != nil {
					return err
				}
				if affected == 0 {
					return fmt.Errorf("tag %d not found", id)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted tag %d\n", id)
				return nil
			})
		},
	}
}

func newTagSeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Add the built-in tags when no tags exist",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withJournal(cmd, func(ctx context.Context, dbCtx *database.Context) error {
				inserted, err := services.NewTagService(dbCtx).Prepopulate(ctx)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Added %d tag(s)\n", inserted)
				return nil
			})
		},
	}
}
