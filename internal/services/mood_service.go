package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/daybook/daybook/internal/catalog"
	"github.com/daybook/daybook/internal/database"
	"github.com/daybook/daybook/internal/journal"
)

// MoodService manages the mood catalog. Names are unique case-insensitively
// and act as the dedup key on save.
type MoodService struct {
	ctx   *database.Context
	moods *database.MoodRepository
}

func NewMoodService(ctx *database.Context) *MoodService {
	return &MoodService{
		ctx:   ctx,
		moods: database.NewMoodRepository(ctx),
	}
}

// ListAll returns moods by category then name. An empty table is seeded from
// the built-in catalog first. The bool reports that the result came from the
// built-in catalog because storage could not serve it.
func (s *MoodService) ListAll(ctx context.Context) ([]journal.Mood, bool) {
	moods, err := s.moods.FindAll(ctx)
	if err != nil {
		slog.WarnContext(ctx, "list moods failed, using built-in catalog", "err", err)
		return sortedCatalogMoods(), true
	}
	if len(moods) > 0 {
		return moods, false
	}

	if _, err := s.Prepopulate(ctx); err != nil {
		return sortedCatalogMoods(), true
	}
	moods, err = s.moods.FindAll(ctx)
	if err != nil || len(moods) == 0 {
		return sortedCatalogMoods(), true
	}
	return moods, false
}

// ListByCategory returns the moods of one category by name, falling back to
// the built-in catalog when storage fails or has none.
func (s *MoodService) ListByCategory(ctx context.Context, category string) []journal.Mood {
	category = journal.CanonicalCategory(category)
	moods, err := s.moods.FindByCategory(ctx, category)
	if err != nil {
		slog.WarnContext(ctx, "list moods by category failed", "category", category, "err", err)
	}
	if err != nil || len(moods) == 0 {
		fallback := catalog.MoodsByCategory(category)
		sortMoodsByName(fallback)
		return fallback
	}
	return moods
}

func (s *MoodService) Get(ctx context.Context, id int64) *journal.Mood {
	mood, err := s.moods.FindByID(ctx, id)
	if err != nil {
		slog.WarnContext(ctx, "get mood failed", "mood_id", id, "err", err)
		return nil
	}
	return mood
}

// Save normalizes and stores mood, returning its ID. A mood whose name is
// already taken updates that row instead. Failures return 0 and the error.
func (s *MoodService) Save(ctx context.Context, mood *journal.Mood) (int64, error) {
	if mood == nil {
		return 0, fmt.Errorf("mood service: nil mood")
	}

	next := journal.NormalizeMood(*mood)
	if next.Name == "" {
		return 0, journal.ErrBlankName
	}

	err := s.withTx(ctx, func(tx *database.Context) error {
		repo := database.NewMoodRepository(tx)

		existing, err := repo.FindByName(ctx, next.Name)
		if err != nil {
			return err
		}
		if existing != nil && existing.ID != next.ID {
			next.ID = existing.ID
		}

		if next.ID == 0 {
			next.ID, err = repo.Create(ctx, next)
			return err
		}

		affected, err := repo.Update(ctx, next)
		if err != nil {
			return err
		}
		if affected == 0 {
			return database.ErrNotFound
		}
		return nil
	})
	if err != nil {
		slog.ErrorContext(ctx, "save mood failed", "mood", next.Name, "err", err)
		return 0, fmt.Errorf("save mood %q: %w", next.Name, err)
	}

	*mood = next
	return next.ID, nil
}

// Delete removes the mood with id. It returns 0 when no such mood exists.
func (s *MoodService) Delete(ctx context.Context, id int64) (int64, error) {
	affected, err := s.moods.Delete(ctx, id)
	if err != nil {
		slog.ErrorContext(ctx, "delete mood failed", "mood_id", id, "err", err)
		return 0, fmt.Errorf("delete mood %d: %w", id, err)
	}
	return affected, nil
}

// Categories returns the distinct mood categories in alphabetical order.
func (s *MoodService) Categories(ctx context.Context) []string {
	categories, err := s.moods.Categories(ctx)
	if err != nil {
		slog.WarnContext(ctx, "list mood categories failed", "err", err)
	}
	if err != nil || len(categories) == 0 {
		return catalogCategories()
	}
	return categories
}

// Prepopulate inserts every catalog mood whose name is missing and returns how
// many were added.
func (s *MoodService) Prepopulate(ctx context.Context) (int, error) {
	inserted := 0
	err := s.withTx(ctx, func(tx *database.Context) error {
		repo := database.NewMoodRepository(tx)

		existing, err := repo.FindAll(ctx)
		if err != nil {
			return err
		}
		names := make(map[string]bool, len(existing))
		for _, m := range existing {
			names[strings.ToLower(m.Name)] = true
		}

		for _, m := range catalog.Moods() {
			if names[strings.ToLower(m.Name)] {
				continue
			}
			if _, err := repo.Create(ctx, m); err != nil {
				return err
			}
			inserted++
		}
		return nil
	})
	if err != nil {
		slog.ErrorContext(ctx, "prepopulate moods failed", "err", err)
		return 0, fmt.Errorf("prepopulate moods: %w", err)
	}

	slog.DebugContext(ctx, "prepopulated moods", "inserted", inserted)
	return inserted, nil
}

func (s *MoodService) withTx(ctx context.Context, fn func(*database.Context) error) error {
	if s.ctx == nil || s.ctx.DB == nil {
		return fmt.Errorf("mood service: missing database context")
	}
	return database.RunInTx(ctx, s.ctx, fn)
}

func sortedCatalogMoods() []journal.Mood {
	moods := catalog.Moods()
	sort.SliceStable(moods, func(i, j int) bool {
		if moods[i].Category != moods[j].Category {
			return moods[i].Category < moods[j].Category
		}
		return moods[i].Name < moods[j].Name
	})
	return moods
}

func sortMoodsByName(moods []journal.Mood) {
	sort.SliceStable(moods, func(i, j int) bool { return moods[i].Name < moods[j].Name })
}

func catalogCategories() []string {
	seen := map[string]bool{}
	var out []string
	for _, m := range catalog.Moods() {
		if !seen[m.Category] {
			seen[m.Category] = true
			out = append(out, m.Category)
		}
	}
	sort.Strings(out)
	return out
}
