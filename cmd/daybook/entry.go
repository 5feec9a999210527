package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/daybook/daybook/internal/database"
	"github.com/daybook/daybook/internal/journal"
	"github.com/daybook/daybook/internal/usecase"
)

func newEntryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "entry",
		Short: "Write, read and remove journal entries",
	}

	cmd.AddCommand(newEntryWriteCmd())
	cmd.AddCommand(newEntryShowCmd())
	cmd.AddCommand(newEntryListCmd())
	cmd.AddCommand(newEntrySearchCmd())
	cmd.AddCommand(newEntryDeleteCmd())

	return cmd
}

func newEntryWriteCmd() *cobra.Command {
	var (
		title     string
		content   string
		filePath  string
		markdown  bool
		mood      string
		secondary []string
		tags      []string
	)

	cmd := &cobra.Command{
		Use:   "write [date]",
		Short: "Write the entry for a day (today by default), replacing any existing one",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			date := time.Now()
			if len(args) == 1 {
				d, err := journal.ParseDay(args[0], date)
				if err != nil {
					return err
				}
				date = d
			}

			// Content is read after unlocking so a PIN prompt gets the first
			// line of piped stdin.
			return withJournal(cmd, func(ctx context.Context, dbCtx *database.Context) error {
				body := content
				if !cmd.Flags().Changed("content") {
					read, err := readContent(cmd, filePath)
					if err != nil {
						return err
					}
					body = read
				}

				view, err := usecase.NewJournal(dbCtx).Write(ctx, usecase.WriteInput{
					Date:           date,
					Title:          title,
					Content:        body,
					Markdown:       markdown,
					PrimaryMood:    mood,
					SecondaryMoods: secondary,
					Tags:           tags,
				})
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Saved entry %d for %s\n", view.Entry.ID, view.Entry.Day())
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&title, "title", "t", "", "Entry title")
	cmd.Flags().StringVarP(&content, "content", "c", "", "Entry content (read from --file or stdin when omitted)")
	cmd.Flags().StringVarP(&filePath, "file", "f", "", "Read content from file instead of stdin")
	cmd.Flags().BoolVar(&markdown, "markdown", false, "Treat content as Markdown and store it as HTML")
	cmd.Flags().StringVarP(&mood, "mood", "m", "", "Primary mood")
	cmd.Flags().StringSliceVar(&secondary, "secondary", nil, "Secondary moods (comma separated)")
	cmd.Flags().StringSliceVar(&tags, "tags", nil, "Tags (comma separated); missing tags are created")

	return cmd
}

type entryDetail struct {
	ID             int64    `json:"id"`
	Date           string   `json:"date"`
	Title          string   `json:"title"`
	Content        string   `json:"content"`
	PrimaryMood    string   `json:"primary_mood,omitempty"`
	SecondaryMoods []string `json:"secondary_moods,omitempty"`
	Tags           []string `json:"tags,omitempty"`
	CreatedAt      string   `json:"created_at"`
	UpdatedAt      string   `json:"updated_at"`
}

func newEntryShowCmd() *cobra.Command {
	var (
		id     int64
		format string
	)

	cmd := &cobra.Command{
		Use:   "show [date]",
		Short: "Show the entry for a day (today by default)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkFormat(format); err != nil {
				return err
			}

			var date time.Time
			if id == 0 {
				raw := ""
				if len(args) == 1 {
					raw = args[0]
				}
				d, err := journal.ParseDay(raw, time.Now())
				if err != nil {
					return err
				}
				date = d
			}

			return withJournal(cmd, func(ctx context.Context, dbCtx *database.Context) error {
				uc := usecase.NewJournal(dbCtx)

				var (
					view *usecase.EntryView
					err  error
				)
				if id != 0 {
					view, err = uc.Get(ctx, id)
				} else {
					view, err = uc.Show(ctx, date)
				}
				if err != nil {
					return err
				}

				e := view.Entry
				detail := entryDetail{
					ID:             e.ID,
					Date:           e.Day(),
					Title:          e.Title,
					Content:        e.Content,
					PrimaryMood:    e.PrimaryMood,
					SecondaryMoods: e.SecondaryMoodList(),
					Tags:           view.TagNames(),
					CreatedAt:      e.CreatedAt.Format(time.RFC3339),
					UpdatedAt:      e.UpdatedAt.Format(time.RFC3339),
				}
				if format == formatJSON {
					return outputJSON(cmd, detail)
				}

				t := newTable(cmd)
				t.AppendRow(table.Row{"Date", detail.Date})
				t.AppendRow(table.Row{"Title", detail.Title})
				t.AppendRow(table.Row{"Mood", detail.PrimaryMood})
				t.AppendRow(table.Row{"Secondary", strings.Join(detail.SecondaryMoods, ", ")})
				t.AppendRow(table.Row{"Tags", strings.Join(detail.Tags, ", ")})
				t.AppendRow(table.Row{"Created", e.CreatedAt.Format("2006-01-02 15:04:05")})
				t.AppendRow(table.Row{"Updated", e.UpdatedAt.Format("2006-01-02 15:04:05")})
				t.Render()

				fmt.Fprintln(cmd.OutOrStdout())
				fmt.Fprintln(cmd.OutOrStdout(), e.Content)
				return nil
			})
		},
	}

	cmd.Flags().Int64Var(&id, "id", 0, "Show the entry with this id instead of by date")
	cmd.Flags().StringVar(&format, "format", formatTable, "Output format: table or json")

	return cmd
}

func newEntryListCmd() *cobra.Command {
	var (
		from   string
		to     string
		limit  int
		format string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List entries newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := checkFormat(format); err != nil {
				return err
			}

			input := usecase.ListInput{Limit: limit}
			now := time.Now()
			if from != "" {
				d, err := journal.ParseDay(from, now)
				if err != nil {
					return err
				}
				input.From = d
			}
			if to != "" {
				d, err := journal.ParseDay(to, now)
				if err != nil {
					return err
				}
				input.To = d
			}

			return withJournal(cmd, func(ctx context.Context, dbCtx *database.Context) error {
				return renderEntries(cmd, usecase.NewJournal(dbCtx).List(ctx, input), format)
			})
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "First day to include (YYYY-MM-DD)")
	cmd.Flags().StringVar(&to, "to", "", "Last day to include (YYYY-MM-DD)")
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Maximum number of entries")
	cmd.Flags().StringVar(&format, "format", formatTable, "Output format: table or json")

	return cmd
}

func newEntrySearchCmd() *cobra.Command {
	var (
		limit  int
		format string
	)

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Find entries whose title, content, moods or tags contain the query",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkFormat(format); err != nil {
				return err
			}
			return withJournal(cmd, func(ctx context.Context, dbCtx *database.Context) error {
				return renderEntries(cmd, usecase.NewJournal(dbCtx).Search(ctx, args[0], limit), format)
			})
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Maximum number of entries")
	cmd.Flags().StringVar(&format, "format", formatTable, "Output format: table or json")

	return cmd
}

func newEntryDeleteCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "delete <date>",
		Short: "Delete the entry for a day",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := journal.ParseDay(args[0], time.Now())
			if err != nil {
				return err
			}

			if !force {
				ok, err := confirm(cmd, fmt.Sprintf("Delete the entry for %s? (y/N) ", journal.DayKey(date)))
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(cmd.OutOrStdout(), "Deletion cancelled")
					return nil
				}
			}

			return withJournal(cmd, func(ctx context.Context, dbCtx *database.Context) error {
				entry, err := usecase.NewJournal(dbCtx).Delete(ctx, date)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted entry for %s\n", entry.Day())
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Skip confirmation prompt")

	return cmd
}

func readContent(cmd *cobra.Command, filePath string) (string, error) {
	if filePath != "" {
		bytes, err := os.ReadFile(filePath)
		if err != nil {
			return "", err
		}
		return string(bytes), nil
	}

	stat, err := os.Stdin.Stat()
	if err == nil && (stat.Mode()&os.ModeCharDevice) != 0 {
		fmt.Fprintln(cmd.ErrOrStderr(), "Enter content (Ctrl-D when done):")
	}

	bytes, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}
