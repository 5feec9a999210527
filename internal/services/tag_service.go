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

// TagService manages tags and the entry/tag association.
type TagService struct {
	ctx   *database.Context
	tags  *database.TagRepository
	links *database.EntryTagRepository
}

func NewTagService(ctx *database.Context) *TagService {
	return &TagService{
		ctx:   ctx,
		tags:  database.NewTagRepository(ctx),
		links: database.NewEntryTagRepository(ctx),
	}
}

// ListAll returns tags by name, seeding an empty table first. The bool
// reports that the built-in catalog was returned because storage could not
// serve the list.
func (s *TagService) ListAll(ctx context.Context) ([]journal.Tag, bool) {
	tags, err := s.tags.FindAll(ctx)
	if err != nil {
		slog.WarnContext(ctx, "list tags failed, using built-in catalog", "err", err)
		return sortedCatalogTags(), true
	}
	if len(tags) > 0 {
		return tags, false
	}

	if _, err := s.Prepopulate(ctx); err != nil {
		return sortedCatalogTags(), true
	}
	tags, err = s.tags.FindAll(ctx)
	if err != nil || len(tags) == 0 {
		return sortedCatalogTags(), true
	}
	return tags, false
}

func (s *TagService) Get(ctx context.Context, id int64) *journal.Tag {
	tag, err := s.tags.FindByID(ctx, id)
	if err != nil {
		slog.WarnContext(ctx, "get tag failed", "tag_id", id, "err", err)
		return nil
	}
	return tag
}

// ByIDs returns the existing tags among ids, ordered by name.
func (s *TagService) ByIDs(ctx context.Context, ids []int64) []journal.Tag {
	result := make([]journal.Tag, 0, len(ids))
	seen := make(map[int64]bool, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true

		tag, err := s.tags.FindByID(ctx, id)
		if err != nil {
			slog.WarnContext(ctx, "get tags by id failed", "tag_id", id, "err", err)
			return []journal.Tag{}
		}
		if tag != nil {
			result = append(result, *tag)
		}
	}
	sortTagsByName(result)
	return result
}

// ByNames returns the existing tags matching names case-insensitively, in
// request order. Unknown names are skipped.
func (s *TagService) ByNames(ctx context.Context, names []string) []journal.Tag {
	result := make([]journal.Tag, 0, len(names))
	for _, name := range journal.SplitList(journal.JoinList(names)) {
		tag, err := s.tags.FindByName(ctx, name)
		if err != nil {
			slog.WarnContext(ctx, "get tags by name failed", "tag", name, "err", err)
			return []journal.Tag{}
		}
		if tag != nil {
			result = append(result, *tag)
		}
	}
	return result
}

// ResolveNames finds or creates a tag for each distinct non-blank name and
// returns them in request order.
func (s *TagService) ResolveNames(ctx context.Context, names []string) ([]journal.Tag, error) {
	wanted := journal.SplitList(journal.JoinList(names))
	result := make([]journal.Tag, 0, len(wanted))
	if len(wanted) == 0 {
		return result, nil
	}

	err := s.withTx(ctx, func(tx *database.Context) error {
		repo := database.NewTagRepository(tx)
		for _, name := range wanted {
			tag, err := repo.FindByName(ctx, name)
			if err != nil {
				return err
			}
			if tag == nil {
				id, err := repo.Create(ctx, name)
				if err != nil {
					return err
				}
				tag = &journal.Tag{ID: id, Name: name}
			}
			result = append(result, *tag)
		}
		return nil
	})
	if err != nil {
		slog.ErrorContext(ctx, "resolve tags failed", "tags", strings.Join(wanted, ","), "err", err)
		return nil, fmt.Errorf("resolve tags: %w", err)
	}
	return result, nil
}

// IDsForEntry returns the tag IDs linked to entryID.
func (s *TagService) IDsForEntry(ctx context.Context, entryID int64) []int64 {
	ids, err := s.links.TagIDs(ctx, entryID)
	if err != nil {
		slog.WarnContext(ctx, "get tag ids for entry failed", "entry_id", entryID, "err", err)
		return []int64{}
	}
	return ids
}

// TagsForEntry returns the tags linked to entryID in link order.
func (s *TagService) TagsForEntry(ctx context.Context, entryID int64) []journal.Tag {
	tags, err := s.links.Tags(ctx, entryID)
	if err != nil {
		slog.WarnContext(ctx, "get tags for entry failed", "entry_id", entryID, "err", err)
		return []journal.Tag{}
	}
	return tags
}

// Save stores tag and returns its ID. A tag whose name is already taken
// updates that row. Failures return 0 and the error.
func (s *TagService) Save(ctx context.Context, tag *journal.Tag) (int64, error) {
	if tag == nil {
		return 0, fmt.Errorf("tag service: nil tag")
	}

	next := *tag
	next.Name = strings.TrimSpace(next.Name)
	if next.Name == "" {
		return 0, journal.ErrBlankName
	}

	err := s.withTx(ctx, func(tx *database.Context) error {
		repo := database.NewTagRepository(tx)

		existing, err := repo.FindByName(ctx, next.Name)
		if err != nil {
			return err
		}
		if existing != nil && existing.ID != next.ID {
			next.ID = existing.ID
		}

		if next.ID == 0 {
			next.ID, err = repo.Create(ctx, next.Name)
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
		slog.ErrorContext(ctx, "save tag failed", "tag", next.Name, "err", err)
		return 0, fmt.Errorf("save tag %q: %w", next.Name, err)
	}

	*tag = next
	return next.ID, nil
}

// Delete removes the tag with id and its entry links. It returns 0 when no
// such tag exists.
func (s *TagService) Delete(ctx context.Context, id int64) (int64, error) {
	affected, err := s.tags.Delete(ctx, id)
	if err != nil {
		slog.ErrorContext(ctx, "delete tag failed", "tag_id", id, "err", err)
		return 0, fmt.Errorf("delete tag %d: %w", id, err)
	}
	return affected, nil
}

// Prepopulate seeds the catalog tags when the table is empty and returns how
// many were inserted.
func (s *TagService) Prepopulate(ctx context.Context) (int, error) {
	inserted := 0
	err := s.withTx(ctx, func(tx *database.Context) error {
		repo := database.NewTagRepository(tx)

		count, err := repo.Count(ctx)
		if err != nil {
			return err
		}
		if count > 0 {
			return nil
		}

		for _, tag := range catalog.Tags() {
			if _, err := repo.Create(ctx, tag.Name); err != nil {
				return err
			}
			inserted++
		}
		return nil
	})
	if err != nil {
		slog.ErrorContext(ctx, "prepopulate tags failed", "err", err)
		return 0, fmt.Errorf("prepopulate tags: %w", err)
	}

	slog.DebugContext(ctx, "prepopulated tags", "inserted", inserted)
	return inserted, nil
}

// SetForEntry replaces the tag set of entryID with tagIDs in one
// transaction. Duplicate IDs collapse to a single link.
func (s *TagService) SetForEntry(ctx context.Context, entryID int64, tagIDs []int64) error {
	err := s.withTx(ctx, func(tx *database.Context) error {
		repo := database.NewEntryTagRepository(tx)

		if _, err := repo.DeleteForEntry(ctx, entryID); err != nil {
			return err
		}
		for _, tagID := range tagIDs {
			if _, err := repo.Add(ctx, entryID, tagID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		slog.ErrorContext(ctx, "set tags for entry failed", "entry_id", entryID, "err", err)
		return fmt.Errorf("set tags for entry %d: %w", entryID, err)
	}

	slog.DebugContext(ctx, "set tags for entry", "entry_id", entryID, "count", len(tagIDs))
	return nil
}

func (s *TagService) withTx(ctx context.Context, fn func(*database.Context) error) error {
	if s.ctx == nil || s.ctx.DB == nil {
		return fmt.Errorf("tag service: missing database context")
	}
	return database.RunInTx(ctx, s.ctx, fn)
}

func sortedCatalogTags() []journal.Tag {
	tags := catalog.Tags()
	sortTagsByName(tags)
	return tags
}

func sortTagsByName(tags []journal.Tag) {
	sort.SliceStable(tags, func(i, j int) bool { return tags[i].Name < tags[j].Name })
}
