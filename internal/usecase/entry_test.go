package usecase

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/daybook/daybook/internal/database"
	"github.com/daybook/daybook/internal/services"
)

func setupJournal(t *testing.T) *Journal {
	t.Helper()
	dbCtx, err := database.CreateDatabase(filepath.Join(t.TempDir(), "daybook.db"))
	if err != nil {
		t.Fatalf("CreateDatabase error: %v", err)
	}
	t.Cleanup(func() {
		if err := database.CloseDatabase(dbCtx); err != nil {
			t.Fatalf("CloseDatabase error: %v", err)
		}
	})
	return NewJournal(dbCtx)
}

func day(d int) time.Time {
	return time.Date(2024, time.April, d, 9, 0, 0, 0, time.Local)
}

func TestWriteLinksTagsAndDerivesLegacyFields(t *testing.T) {
	u := setupJournal(t)
	ctx := context.Background()

	view, err := u.Write(ctx, WriteInput{
		Date:           day(1),
		Title:          " Hike ",
		Content:        "Up the **hill**",
		Markdown:       true,
		PrimaryMood:    "Happy",
		SecondaryMoods: []string{"Excited", "excited", "Tired"},
		Tags:           []string{"Nature", "Fitness", "nature"},
	})
	if err != nil {
		t.Fatalf("Write: %v", err)
	}

	e := view.Entry
	if e.ID == 0 || e.Title != "Hike" {
		t.Fatalf("unexpected entry %+v", e)
	}
	if !strings.Contains(e.Content, "<strong>hill</strong>") {
		t.Fatalf("expected rendered markdown, got %q", e.Content)
	}
	if e.SecondaryMoods != "Excited, Tired" {
		t.Fatalf("unexpected secondary moods %q", e.SecondaryMoods)
	}
	if e.Tags != "Nature, Fitness" {
		t.Fatalf("unexpected legacy tags %q", e.Tags)
	}
	if e.TagID == nil || *e.TagID != view.Tags[0].ID {
		t.Fatalf("expected TagID to reference first tag, got %v", e.TagID)
	}

	shown, err := u.Show(ctx, day(1))
	if err != nil {
		t.Fatalf("Show: %v", err)
	}
	if got := strings.Join(shown.TagNames(), ","); got != "Nature,Fitness" {
		t.Fatalf("expected linked tags Nature,Fitness, got %s", got)
	}
}

func TestWriteSameDayReplacesTags(t *testing.T) {
	u := setupJournal(t)
	ctx := context.Background()

	first, err := u.Write(ctx, WriteInput{Date: day(2), Title: "one", Tags: []string{"Work"}})
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	second, err := u.Write(ctx, WriteInput{Date: day(2).Add(5 * time.Hour), Title: "two", Tags: []string{"Family"}})
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	if second.Entry.ID != first.Entry.ID {
		t.Fatalf("expected same entry id, got %d and %d", first.Entry.ID, second.Entry.ID)
	}

	shown, err := u.Get(ctx, first.Entry.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if shown.Entry.Title != "two" || len(shown.Tags) != 1 || shown.Tags[0].Name != "Family" {
		t.Fatalf("unexpected view %+v", shown)
	}
	if shown.Entry.Tags != "Family" {
		t.Fatalf("legacy tags out of sync: %q", shown.Entry.Tags)
	}

	cleared, err := u.Write(ctx, WriteInput{Date: day(2), Title: "three"})
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	if cleared.Entry.TagID != nil || cleared.Entry.Tags != "" {
		t.Fatalf("expected tags cleared, got %+v", cleared.Entry)
	}
	if again, _ := u.Get(ctx, first.Entry.ID); len(again.Tags) != 0 {
		t.Fatalf("expected no linked tags, got %+v", again.Tags)
	}
}

func TestListSearchDelete(t *testing.T) {
	u := setupJournal(t)
	ctx := context.Background()

	for d := 1; d <= 5; d++ {
		title := "ordinary"
		if d == 3 {
			title = "Stressful meeting"
		}
		if _, err := u.Write(ctx, WriteInput{Date: day(d), Title: title}); err != nil {
			t.Fatalf("Write day %d: %v", d, err)
		}
	}

	all := u.List(ctx, ListInput{})
	if len(all) != 5 || all[0].Day() != "2024-04-05" {
		t.Fatalf("unexpected list %+v", all)
	}
	if limited := u.List(ctx, ListInput{Limit: 2}); len(limited) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(limited))
	}
	if from := u.List(ctx, ListInput{From: day(4)}); len(from) != 2 {
		t.Fatalf("expected 2 entries from day 4, got %d", len(from))
	}
	if to := u.List(ctx, ListInput{To: day(2)}); len(to) != 2 {
		t.Fatalf("expected 2 entries up to day 2, got %d", len(to))
	}

	found := u.Search(ctx, "stress", 0)
	if len(found) != 1 || found[0].Day() != "2024-04-03" {
		t.Fatalf("unexpected search result %+v", found)
	}

	deleted, err := u.Delete(ctx, day(3))
	if err != nil || deleted.Day() != "2024-04-03" {
		t.Fatalf("Delete: %+v %v", deleted, err)
	}
	if _, err := u.Delete(ctx, day(3)); !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := u.Show(ctx, day(3)); !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestStatsCountsPolarity(t *testing.T) {
	u := setupJournal(t)
	ctx := context.Background()

	moods := []string{"Happy", "happy", "Sad", "Calm", "", "Grateful"}
	for i, mood := range moods {
		if _, err := u.Write(ctx, WriteInput{Date: day(i + 1), PrimaryMood: mood}); err != nil {
			t.Fatalf("Write: %v", err)
		}
	}

	stats := u.Stats(ctx, day(1), day(6))
	if stats.Entries != 6 {
		t.Fatalf("expected 6 entries, got %d", stats.Entries)
	}
	if stats.Positive != 3 || stats.Negative != 1 || stats.Neutral != 1 || stats.Unset != 1 {
		t.Fatalf("unexpected polarity counts %+v", stats)
	}

	narrow := u.Stats(ctx, day(3), day(4))
	if narrow.Entries != 2 || narrow.Negative != 1 || narrow.Neutral != 1 {
		t.Fatalf("unexpected narrow stats %+v", narrow)
	}
}

func TestStatsFallsBackToCatalogPolarity(t *testing.T) {
	u := setupJournal(t)
	ctx := context.Background()

	for i, mood := range []string{"Happy", "Calm", "Elated"} {
		if _, err := u.Write(ctx, WriteInput{Date: day(i + 1), PrimaryMood: mood}); err != nil {
			t.Fatalf("Write: %v", err)
		}
	}

	moods, _ := u.moodService.ListAll(ctx)
	for _, m := range moods {
		if m.Name == "Calm" {
			if _, err := u.moodService.Delete(ctx, m.ID); err != nil {
				t.Fatalf("Delete mood: %v", err)
			}
		}
	}

	stats := u.Stats(ctx, day(1), day(3))
	if stats.Positive != 1 || stats.Neutral != 1 || stats.Other != 1 {
		t.Fatalf("unexpected polarity counts %+v", stats)
	}
}

func TestWriteRollsBackWhenTagLinkingFails(t *testing.T) {
	u := setupJournal(t)
	ctx := context.Background()

	if _, err := u.Write(ctx, WriteInput{Date: day(1), Title: "first", Tags: []string{"Work"}}); err != nil {
		t.Fatalf("Write: %v", err)
	}

	if _, err := u.dbCtx.DB.ExecContext(ctx, `CREATE TRIGGER keep_links BEFORE DELETE ON JournalEntryTags
		BEGIN SELECT RAISE(ABORT, 'links are read-only'); END`); err != nil {
		t.Fatalf("create trigger: %v", err)
	}

	if _, err := u.Write(ctx, WriteInput{Date: day(1), Title: "second", Tags: []string{"Family"}}); err == nil {
		t.Fatalf("expected Write to fail while links cannot change")
	}

	shown, err := u.Show(ctx, day(1))
	if err != nil {
		t.Fatalf("Show: %v", err)
	}
	if shown.Entry.Title != "first" || shown.Entry.Tags != "Work" {
		t.Fatalf("entry changed by failed write: %+v", shown.Entry)
	}
	if got := strings.Join(shown.TagNames(), ","); got != "Work" {
		t.Fatalf("expected links to stay Work, got %s", got)
	}
	if kept := u.tagService.ByNames(ctx, []string{"Family"}); len(kept) != 0 {
		t.Fatalf("tag created by failed write was kept: %+v", kept)
	}
}
