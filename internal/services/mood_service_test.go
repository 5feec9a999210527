package services

import (
	"context"
	"testing"

	"github.com/daybook/daybook/internal/journal"
)

func TestMoodSaveDedupsByName(t *testing.T) {
	dbCtx := setupServiceDB(t)
	ctx := context.Background()
	svc := NewMoodService(dbCtx)

	first := &journal.Mood{Name: "Happy", Category: "primary", MoodType: "positive"}
	id, err := svc.Save(ctx, first)
	if err != nil || id == 0 {
		t.Fatalf("first Save: id=%d err=%v", id, err)
	}

	second := &journal.Mood{Name: "Happy", Category: "Secondary", MoodType: "NEGATIVE"}
	secondID, err := svc.Save(ctx, second)
	if err != nil {
		t.Fatalf("second Save: %v", err)
	}
	if secondID != id {
		t.Fatalf("expected second save to update id %d, got %d", id, secondID)
	}

	var count int
	if err := dbCtx.DB.QueryRow(`SELECT COUNT(*) FROM Moods WHERE name = 'Happy'`).Scan(&count); err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected exactly one Happy row, got %d", count)
	}

	stored := svc.Get(ctx, id)
	if stored == nil || stored.Category != journal.CategorySecondary || stored.MoodType != journal.MoodNegative {
		t.Fatalf("expected second write to win, got %+v", stored)
	}
}

func TestMoodSaveRedirectsIDOnNameCollision(t *testing.T) {
	dbCtx := setupServiceDB(t)
	ctx := context.Background()
	svc := NewMoodService(dbCtx)

	calmID, err := svc.Save(ctx, &journal.Mood{Name: "Calm"})
	if err != nil {
		t.Fatalf("Save Calm: %v", err)
	}
	boredID, err := svc.Save(ctx, &journal.Mood{Name: "Bored"})
	if err != nil {
		t.Fatalf("Save Bored: %v", err)
	}

	renamed := &journal.Mood{ID: boredID, Name: "calm", Category: "Primary"}
	id, err := svc.Save(ctx, renamed)
	if err != nil {
		t.Fatalf("Save rename: %v", err)
	}
	if id != calmID {
		t.Fatalf("expected write redirected to %d, got %d", calmID, id)
	}
	if bored := svc.Get(ctx, boredID); bored == nil || bored.Name != "Bored" {
		t.Fatalf("expected Bored untouched, got %+v", bored)
	}
}

func TestMoodSaveNormalization(t *testing.T) {
	dbCtx := setupServiceDB(t)
	ctx := context.Background()
	svc := NewMoodService(dbCtx)

	tests := []struct {
		in           journal.Mood
		wantCategory string
		wantType     string
	}{
		{journal.Mood{Name: "A", Category: "PRIMARY", MoodType: "neutral"}, "Primary", "Neutral"},
		{journal.Mood{Name: "B", Category: "weird", MoodType: ""}, "Secondary", "Neutral"},
		{journal.Mood{Name: "C", Category: "", MoodType: "Ecstatic"}, "Secondary", "Ecstatic"},
	}
	for _, tt := range tests {
		mood := tt.in
		id, err := svc.Save(ctx, &mood)
		if err != nil {
			t.Fatalf("Save %s: %v", tt.in.Name, err)
		}
		stored := svc.Get(ctx, id)
		if stored == nil || stored.Category != tt.wantCategory || stored.MoodType != tt.wantType {
			t.Fatalf("Save %s stored %+v, want %s/%s", tt.in.Name, stored, tt.wantCategory, tt.wantType)
		}
	}

	if id, err := svc.Save(ctx, &journal.Mood{Name: "   "}); err == nil || id != 0 {
		t.Fatalf("expected blank name to fail with id 0, got id=%d err=%v", id, err)
	}
}

func TestMoodListAllSeedsEmptyTable(t *testing.T) {
	dbCtx := setupServiceDB(t)
	ctx := context.Background()
	svc := NewMoodService(dbCtx)

	moods, fallback := svc.ListAll(ctx)
	if fallback {
		t.Fatalf("expected stored moods, got fallback")
	}
	if len(moods) != 16 {
		t.Fatalf("expected 16 seeded moods, got %d", len(moods))
	}
	if moods[0].Category != journal.CategoryPrimary || moods[0].ID == 0 {
		t.Fatalf("expected primary moods first with ids, got %+v", moods[0])
	}

	primary := svc.ListByCategory(ctx, "primary")
	if len(primary) != 3 {
		t.Fatalf("expected 3 primary moods, got %d", len(primary))
	}

	categories := svc.Categories(ctx)
	if len(categories) != 2 || categories[0] != "Primary" || categories[1] != "Secondary" {
		t.Fatalf("unexpected categories %v", categories)
	}
}

func TestMoodPrepopulateOnlyAddsMissing(t *testing.T) {
	dbCtx := setupServiceDB(t)
	ctx := context.Background()
	svc := NewMoodService(dbCtx)

	if _, err := svc.Save(ctx, &journal.Mood{Name: "happy", Category: "Primary", MoodType: "Positive"}); err != nil {
		t.Fatalf("Save: %v", err)
	}

	inserted, err := svc.Prepopulate(ctx)
	if err != nil {
		t.Fatalf("Prepopulate: %v", err)
	}
	if inserted != 15 {
		t.Fatalf("expected 15 missing moods inserted, got %d", inserted)
	}

	again, err := svc.Prepopulate(ctx)
	if err != nil || again != 0 {
		t.Fatalf("second Prepopulate: inserted=%d err=%v", again, err)
	}
}

func TestMoodDelete(t *testing.T) {
	dbCtx := setupServiceDB(t)
	ctx := context.Background()
	svc := NewMoodService(dbCtx)

	id, err := svc.Save(ctx, &journal.Mood{Name: "Curious"})
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if affected, err := svc.Delete(ctx, id); err != nil || affected != 1 {
		t.Fatalf("Delete: affected=%d err=%v", affected, err)
	}
	if affected, err := svc.Delete(ctx, id); err != nil || affected != 0 {
		t.Fatalf("Delete missing: affected=%d err=%v", affected, err)
	}
}

func TestMoodReadsFallBackToCatalog(t *testing.T) {
	svc := NewMoodService(closedDB(t))
	ctx := context.Background()

	moods, fallback := svc.ListAll(ctx)
	if !fallback || len(moods) != 16 {
		t.Fatalf("expected catalog fallback, got fallback=%v len=%d", fallback, len(moods))
	}
	if got := svc.ListByCategory(ctx, "Primary"); len(got) != 3 {
		t.Fatalf("expected 3 catalog primary moods, got %d", len(got))
	}
	if got := svc.Categories(ctx); len(got) != 2 {
		t.Fatalf("expected catalog categories, got %v", got)
	}
	if id, err := svc.Save(ctx, &journal.Mood{Name: "Happy"}); err == nil || id != 0 {
		t.Fatalf("expected save failure with id 0, got id=%d err=%v", id, err)
	}
}
