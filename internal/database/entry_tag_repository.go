package database

import (
	"context"
	"fmt"

	sqldb "github.com/daybook/daybook/internal/database/sqlc"
	"github.com/daybook/daybook/internal/journal"
)

// EntryTagRepository manages the JournalEntryTags association.
type EntryTagRepository struct {
	ctx *Context
}

func NewEntryTagRepository(dbCtx *Context) *EntryTagRepository {
	return &EntryTagRepository{ctx: dbCtx}
}

func (r *EntryTagRepository) queries() (*sqldb.Queries, error) {
	queries := queriesFromContext(r.ctx)
	if queries == nil {
		return nil, fmt.Errorf("entry tag repository: missing database context")
	}
	return queries, nil
}

// TagIDs returns the tag IDs linked to entryID in insertion order.
func (r *EntryTagRepository) TagIDs(ctx context.Context, entryID int64) ([]int64, error) {
	queries, err := r.queries()
	if err != nil {
		return nil, err
	}

	ids, err := queries.ListTagIDsForEntry(ctx, entryID)
	if err != nil {
		return nil, err
	}
	if ids == nil {
		ids = []int64{}
	}
	return ids, nil
}

func (r *EntryTagRepository) Tags(ctx context.Context, entryID int64) ([]journal.Tag, error) {
	queries, err := r.queries()
	if err != nil {
		return nil, err
	}

	rows, err := queries.ListTagsForEntry(ctx, entryID)
	if err != nil {
		return nil, err
	}
	return TagsFromRows(rows), nil
}

func (r *EntryTagRepository) DeleteForEntry(ctx context.Context, entryID int64) (int64, error) {
	queries, err := r.queries()
	if err != nil {
		return 0, err
	}

	return queries.DeleteEntryTags(ctx, entryID)
}

// Add links tagID to entryID. An existing link is left alone and reported as
// false.
func (r *EntryTagRepository) Add(ctx context.Context, entryID, tagID int64) (bool, error) {
	queries, err := r.queries()
	if err != nil {
		return false, err
	}

	affected, err := queries.InsertEntryTag(ctx, sqldb.InsertEntryTagParams{
		JournalEntryID: entryID,
		TagID:          tagID,
	})
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}
