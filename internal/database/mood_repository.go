package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sqldb "github.com/daybook/daybook/internal/database/sqlc"
	"github.com/daybook/daybook/internal/journal"
)

type MoodRepository struct {
	ctx *Context
}

func NewMoodRepository(dbCtx *Context) *MoodRepository {
	return &MoodRepository{ctx: dbCtx}
}

func (r *MoodRepository) queries() (*sqldb.Queries, error) {
	queries := queriesFromContext(r.ctx)
	if queries == nil {
		return nil, fmt.Errorf("mood repository: missing database context")
	}
	return queries, nil
}

// FindAll returns moods ordered by category then name.
func (r *MoodRepository) FindAll(ctx context.Context) ([]journal.Mood, error) {
	queries, err := r.queries()
	if err != nil {
		return nil, err
	}

	rows, err := queries.ListMoods(ctx)
	if err != nil {
		return nil, err
	}
	return MoodsFromRows(rows), nil
}

func (r *MoodRepository) FindByCategory(ctx context.Context, category string) ([]journal.Mood, error) {
	queries, err := r.queries()
	if err != nil {
		return nil, err
	}

	rows, err := queries.ListMoodsByCategory(ctx, category)
	if err != nil {
		return nil, err
	}
	return MoodsFromRows(rows), nil
}

func (r *MoodRepository) FindByID(ctx context.Context, id int64) (*journal.Mood, error) {
	queries, err := r.queries()
	if err != nil {
		return nil, err
	}

	row, err := queries.GetMood(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	mood := MoodFromRow(row)
	return &mood, nil
}

// FindByName matches name case-insensitively.
func (r *MoodRepository) FindByName(ctx context.Context, name string) (*journal.Mood, error) {
	queries, err := r.queries()
	if err != nil {
		return nil, err
	}

	row, err := queries.FindMoodByName(ctx, name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	mood := MoodFromRow(row)
	return &mood, nil
}

func (r *MoodRepository) Create(ctx context.Context, mood journal.Mood) (int64, error) {
	queries, err := r.queries()
	if err != nil {
		return 0, err
	}

	res, err := queries.InsertMood(ctx, sqldb.InsertMoodParams{
		Name:     mood.Name,
		Category: mood.Category,
		MoodType: mood.MoodType,
	})
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r *MoodRepository) Update(ctx context.Context, mood journal.Mood) (int64, error) {
	queries, err := r.queries()
	if err != nil {
		return 0, err
	}

	return queries.UpdateMood(ctx, sqldb.UpdateMoodParams{
		Name:     mood.Name,
		Category: mood.Category,
		MoodType: mood.MoodType,
		ID:       mood.ID,
	})
}

func (r *MoodRepository) Delete(ctx context.Context, id int64) (int64, error) {
	queries, err := r.queries()
	if err != nil {
		return 0, err
	}

	return queries.DeleteMood(ctx, id)
}

// Categories returns the distinct stored categories, sorted.
func (r *MoodRepository) Categories(ctx context.Context) ([]string, error) {
	queries, err := r.queries()
	if err != nil {
		return nil, err
	}

	return queries.ListMoodCategories(ctx)
}
