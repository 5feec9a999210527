package services

import (
	"context"
	"sort"
	"testing"

	"github.com/daybook/daybook/internal/journal"
)

func saveEntryForTags(t *testing.T, svc *EntryService) int64 {
	t.Helper()
	entry := &journal.Entry{Date: at(1, 9, 0), Title: "tagged"}
	if _, err := svc.Save(context.Background(), entry); err != nil {
		t.Fatalf("Save entry: %v", err)
	}
	return entry.ID
}

func TestTagSetForEntryReplacesSet(t *testing.T) {
	dbCtx := setupServiceDB(t)
	ctx := context.Background()
	svc := NewTagService(dbCtx)
	entryID := saveEntryForTags(t, NewEntryService(dbCtx))

	t1, err := svc.Save(ctx, &journal.Tag{Name: "Work"})
	if err != nil {
		t.Fatalf("Save Work: %v", err)
	}
	t2, err := svc.Save(ctx, &journal.Tag{Name: "Health"})
	if err != nil {
		t.Fatalf("Save Health: %v", err)
	}
	t3, err := svc.Save(ctx, &journal.Tag{Name: "Travel"})
	if err != nil {
		t.Fatalf("Save Travel: %v", err)
	}

	if err := svc.SetForEntry(ctx, entryID, []int64{t3}); err != nil {
		t.Fatalf("SetForEntry: %v", err)
	}
	if err := svc.SetForEntry(ctx, entryID, []int64{t1, t2, t1}); err != nil {
		t.Fatalf("SetForEntry: %v", err)
	}

	ids := svc.IDsForEntry(ctx, entryID)
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	want := []int64{t1, t2}
	sort.Slice(want, func(i, j int) bool { return want[i] < want[j] })
	if len(ids) != 2 || ids[0] != want[0] || ids[1] != want[1] {
		t.Fatalf("expected ids %v, got %v", want, ids)
	}

	if err := svc.SetForEntry(ctx, entryID, nil); err != nil {
		t.Fatalf("SetForEntry empty: %v", err)
	}
	if ids := svc.IDsForEntry(ctx, entryID); len(ids) != 0 {
		t.Fatalf("expected no tags, got %v", ids)
	}
}

func TestTagSetForEntryRollsBackOnBadID(t *testing.T) {
	dbCtx := setupServiceDB(t)
	ctx := context.Background()
	svc := NewTagService(dbCtx)
	entryID := saveEntryForTags(t, NewEntryService(dbCtx))

	work, err := svc.Save(ctx, &journal.Tag{Name: "Work"})
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := svc.SetForEntry(ctx, entryID, []int64{work}); err != nil {
		t.Fatalf("SetForEntry: %v", err)
	}

	if err := svc.SetForEntry(ctx, entryID, []int64{work, 424242}); err == nil {
		t.Fatalf("expected foreign key failure for unknown tag")
	}

	ids := svc.IDsForEntry(ctx, entryID)
	if len(ids) != 1 || ids[0] != work {
		t.Fatalf("expected previous set to survive, got %v", ids)
	}
}

func TestTagPrepopulateTwiceKeepsCatalogCount(t *testing.T) {
	dbCtx := setupServiceDB(t)
	ctx := context.Background()
	svc := NewTagService(dbCtx)

	first, err := svc.Prepopulate(ctx)
	if err != nil || first != 31 {
		t.Fatalf("first Prepopulate: inserted=%d err=%v", first, err)
	}
	second, err := svc.Prepopulate(ctx)
	if err != nil || second != 0 {
		t.Fatalf("second Prepopulate: inserted=%d err=%v", second, err)
	}

	tags, fallback := svc.ListAll(ctx)
	if fallback || len(tags) != 31 {
		t.Fatalf("expected 31 stored tags, got %d fallback=%v", len(tags), fallback)
	}
}

func TestTagPrepopulateSkipsNonEmptyTable(t *testing.T) {
	dbCtx := setupServiceDB(t)
	ctx := context.Background()
	svc := NewTagService(dbCtx)

	if _, err := svc.Save(ctx, &journal.Tag{Name: "Custom"}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	inserted, err := svc.Prepopulate(ctx)
	if err != nil || inserted != 0 {
		t.Fatalf("Prepopulate: inserted=%d err=%v", inserted, err)
	}
}

func TestTagListAllSeedsEmptyTable(t *testing.T) {
	dbCtx := setupServiceDB(t)
	svc := NewTagService(dbCtx)

	tags, fallback := svc.ListAll(context.Background())
	if fallback || len(tags) != 31 {
		t.Fatalf("expected seeded tags, got %d fallback=%v", len(tags), fallback)
	}
	for _, tag := range tags {
		if tag.ID == 0 {
			t.Fatalf("expected stored tag ids, got %+v", tag)
		}
	}
}

func TestTagSaveDedupsAndLookups(t *testing.T) {
	dbCtx := setupServiceDB(t)
	ctx := context.Background()
	svc := NewTagService(dbCtx)

	id, err := svc.Save(ctx, &journal.Tag{Name: "Reading"})
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	again, err := svc.Save(ctx, &journal.Tag{Name: " reading "})
	if err != nil || again != id {
		t.Fatalf("expected dedup to id %d, got %d err=%v", id, again, err)
	}
	if tag := svc.Get(ctx, id); tag == nil || tag.Name != "reading" {
		t.Fatalf("expected renamed tag, got %+v", tag)
	}

	music, err := svc.Save(ctx, &journal.Tag{Name: "Music"})
	if err != nil {
		t.Fatalf("Save Music: %v", err)
	}

	byIDs := svc.ByIDs(ctx, []int64{id, music, 9999, id})
	if len(byIDs) != 2 || byIDs[0].Name != "Music" {
		t.Fatalf("unexpected ByIDs %+v", byIDs)
	}

	byNames := svc.ByNames(ctx, []string{"READING", "nope", "music"})
	if len(byNames) != 2 || byNames[0].ID != id || byNames[1].ID != music {
		t.Fatalf("unexpected ByNames %+v", byNames)
	}

	if _, err := svc.Save(ctx, &journal.Tag{Name: ""}); err == nil {
		t.Fatalf("expected blank tag name to fail")
	}
}

func TestTagResolveNamesCreatesMissing(t *testing.T) {
	dbCtx := setupServiceDB(t)
	ctx := context.Background()
	svc := NewTagService(dbCtx)

	work, err := svc.Save(ctx, &journal.Tag{Name: "Work"})
	if err != nil {
		t.Fatalf("Save: %v", err)
	}

	tags, err := svc.ResolveNames(ctx, []string{"work", "Garden", "", "garden"})
	if err != nil {
		t.Fatalf("ResolveNames: %v", err)
	}
	if len(tags) != 2 {
		t.Fatalf("expected 2 tags, got %+v", tags)
	}
	if tags[0].ID != work || tags[0].Name != "Work" {
		t.Fatalf("expected existing Work tag, got %+v", tags[0])
	}
	if tags[1].ID == 0 || tags[1].Name != "Garden" {
		t.Fatalf("expected created Garden tag, got %+v", tags[1])
	}
}

func TestTagDeleteCascadesLinks(t *testing.T) {
	dbCtx := setupServiceDB(t)
	ctx := context.Background()
	svc := NewTagService(dbCtx)
	entryID := saveEntryForTags(t, NewEntryService(dbCtx))

	id, err := svc.Save(ctx, &journal.Tag{Name: "Holiday"})
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := svc.SetForEntry(ctx, entryID, []int64{id}); err != nil {
		t.Fatalf("SetForEntry: %v", err)
	}

	if affected, err := svc.Delete(ctx, id); err != nil || affected != 1 {
		t.Fatalf("Delete: affected=%d err=%v", affected, err)
	}
	if ids := svc.IDsForEntry(ctx, entryID); len(ids) != 0 {
		t.Fatalf("expected links removed, got %v", ids)
	}
	if affected, err := svc.Delete(ctx, id); err != nil || affected != 0 {
		t.Fatalf("Delete missing: affected=%d err=%v", affected, err)
	}
}

func TestTagReadsDegradeOnStorageFailure(t *testing.T) {
	svc := NewTagService(closedDB(t))
	ctx := context.Background()

	tags, fallback := svc.ListAll(ctx)
	if !fallback || len(tags) != 31 {
		t.Fatalf("expected catalog fallback, got fallback=%v len=%d", fallback, len(tags))
	}
	if ids := svc.IDsForEntry(ctx, 1); ids == nil || len(ids) != 0 {
		t.Fatalf("expected empty ids, got %#v", ids)
	}
	if got := svc.ByIDs(ctx, []int64{1}); len(got) != 0 {
		t.Fatalf("expected empty ByIDs, got %v", got)
	}
	if err := svc.SetForEntry(ctx, 1, []int64{1}); err == nil {
		t.Fatalf("expected SetForEntry to fail")
	}
}
