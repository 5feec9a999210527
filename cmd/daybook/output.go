package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/daybook/daybook/internal/journal"
	"github.com/daybook/daybook/internal/richtext"
)

const (
	formatTable = "table"
	formatJSON  = "json"
)

func checkFormat(format string) error {
	switch format {
	case formatTable, formatJSON:
		return nil
	default:
		return fmt.Errorf("invalid format: %s (valid values: table, json)", format)
	}
}

func getTerminalWidth() int {
	if width, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && width > 0 {
		return width
	}
	return 80
}

func outputJSON(cmd *cobra.Command, v any) error {
	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

func newTable(cmd *cobra.Command) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(cmd.OutOrStdout())
	t.SetStyle(table.StyleLight)
	return t
}

type entryListItem struct {
	ID          int64  `json:"id"`
	Date        string `json:"date"`
	Title       string `json:"title"`
	PrimaryMood string `json:"primary_mood,omitempty"`
	Tags        string `json:"tags,omitempty"`
	Excerpt     string `json:"excerpt,omitempty"`
}

// entryColumns holds the widths of the free-text columns of the entry table.
type entryColumns struct {
	title   int
	tags    int
	excerpt int
}

// calculateEntryColumns splits what is left of the terminal after the fixed
// Date and Mood columns between title, tags and excerpt.
func calculateEntryColumns(termWidth int) entryColumns {
	const (
		dateWidth = 10
		moodWidth = 10
		padding   = 5 * 3
	)
	available := termWidth - dateWidth - moodWidth - padding
	if available < 45 {
		available = 45
	}
	cols := entryColumns{
		title: available * 3 / 10,
		tags:  available * 2 / 10,
	}
	cols.excerpt = available - cols.title - cols.tags
	return cols
}

func renderEntries(cmd *cobra.Command, entries []journal.Entry, format string) error {
	if format == formatJSON {
		items := make([]entryListItem, 0, len(entries))
		for _, e := range entries {
			items = append(items, entryListItem{
				ID:          e.ID,
				Date:        e.Day(),
				Title:       e.Title,
				PrimaryMood: e.PrimaryMood,
				Tags:        e.Tags,
				Excerpt:     richtext.Excerpt(e.Content, 120),
			})
		}
		return outputJSON(cmd, items)
	}

	if len(entries) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No entries")
		return nil
	}

	cols := calculateEntryColumns(getTerminalWidth())
	t := newTable(cmd)
	t.AppendHeader(table.Row{"Date", "Title", "Mood", "Tags", "Excerpt"})
	for _, e := range entries {
		t.AppendRow(table.Row{
			e.Day(),
			runewidth.Truncate(e.Title, cols.title, "..."),
			e.PrimaryMood,
			runewidth.Truncate(e.Tags, cols.tags, "..."),
			richtext.Excerpt(e.Content, cols.excerpt),
		})
	}
	t.Render()
	return nil
}
