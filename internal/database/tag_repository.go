package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sqldb "github.com/daybook/daybook/internal/database/sqlc"
	"github.com/daybook/daybook/internal/journal"
)

type TagRepository struct {
	ctx *Context
}

func NewTagRepository(dbCtx *Context) *TagRepository {
	return &TagRepository{ctx: dbCtx}
}

func (r *TagRepository) queries() (*sqldb.Queries, error) {
	queries := queriesFromContext(r.ctx)
	if queries == nil {
		return nil, fmt.Errorf("tag repository: missing database context")
	}
	return queries, nil
}

func (r *TagRepository) FindAll(ctx context.Context) ([]journal.Tag, error) {
	queries, err := r.queries()
	if err != nil {
		return nil, err
	}

	rows, err := queries.ListTags(ctx)
	if err != nil {
		return nil, err
	}
	return TagsFromRows(rows), nil
}

func (r *TagRepository) FindByID(ctx context.Context, id int64) (*journal.Tag, error) {
	queries, err := r.queries()
	if err != nil {
		return nil, err
	}

	row, err := queries.GetTag(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	tag := TagFromRow(row)
	return &tag, nil
}

// FindByName matches name case-insensitively.
func (r *TagRepository) FindByName(ctx context.Context, name string) (*journal.Tag, error) {
	queries, err := r.queries()
	if err != nil {
		return nil, err
	}

	row, err := queries.FindTagByName(ctx, name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	tag := TagFromRow(row)
	return &tag, nil
}

func (r *TagRepository) Create(ctx context.Context, name string) (int64, error) {
	queries, err := r.queries()
	if err != nil {
		return 0, err
	}

	res, err := queries.InsertTag(ctx, name)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r *TagRepository) Update(ctx context.Context, tag journal.Tag) (int64, error) {
	queries, err := r.queries()
	if err != nil {
		return 0, err
	}

	return queries.UpdateTag(ctx, sqldb.UpdateTagParams{Name: tag.Name, ID: tag.ID})
}

// Delete removes the tag; association rows go with it via ON DELETE CASCADE.
func (r *TagRepository) Delete(ctx context.Context, id int64) (int64, error) {
	queries, err := r.queries()
	if err != nil {
		return 0, err
	}

	return queries.DeleteTag(ctx, id)
}

func (r *TagRepository) Count(ctx context.Context) (int64, error) {
	queries, err := r.queries()
	if err != nil {
		return 0, err
	}

	return queries.CountTags(ctx)
}
