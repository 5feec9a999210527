package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/daybook/daybook/internal/database"
	"github.com/daybook/daybook/internal/journal"
	"github.com/daybook/daybook/internal/richtext"
	"github.com/daybook/daybook/internal/services"
)

// Journal combines the entry, tag and mood services into the flows the CLI
// and MCP server expose.
type Journal struct {
	dbCtx        *database.Context
	now          func() time.Time
	entryService *services.EntryService
	tagService   *services.TagService
	moodService  *services.MoodService
}

func NewJournal(dbCtx *database.Context) *Journal {
	return &Journal{
		dbCtx:        dbCtx,
		entryService: services.NewEntryService(dbCtx),
		tagService:   services.NewTagService(dbCtx),
		moodService:  services.NewMoodService(dbCtx),
	}
}

// WithClock sets the write-time source of the underlying entry service.
func (u *Journal) WithClock(now func() time.Time) *Journal {
	u.now = now
	u.entryService.WithClock(now)
	return u
}

type WriteInput struct {
	Date           time.Time
	Title          string
	Content        string
	Markdown       bool
	PrimaryMood    string
	SecondaryMoods []string
	Tags           []string
}

// EntryView is an entry together with its linked tags.
type EntryView struct {
	Entry journal.Entry
	Tags  []journal.Tag
}

// TagNames returns the names of the linked tags.
func (v EntryView) TagNames() []string {
	names := make([]string, 0, len(v.Tags))
	for _, t := range v.Tags {
		names = append(names, t.Name)
	}
	return names
}

// Write stores the entry for input.Date's day, creating missing tags and
// replacing the entry's tag links in one transaction. The comma-joined tag
// and secondary mood columns are derived from the same lists so they match
// the links.
func (u *Journal) Write(ctx context.Context, input WriteInput) (*EntryView, error) {
	content := input.Content
	if input.Markdown {
		html, err := richtext.MarkdownToHTML(content)
		if err != nil {
			return nil, fmt.Errorf("render markdown: %w", err)
		}
		content = html
	}

	var (
		entry *journal.Entry
		tags  []journal.Tag
	)
	err := database.RunInTx(ctx, u.dbCtx, func(tx *database.Context) error {
		entries := services.NewEntryService(tx)
		if u.now != nil {
			entries.WithClock(u.now)
		}
		tagSvc := services.NewTagService(tx)

		resolved, err := tagSvc.ResolveNames(ctx, input.Tags)
		if err != nil {
			return err
		}

		next := &journal.Entry{
			Date:           input.Date,
			Title:          strings.TrimSpace(input.Title),
			Content:        content,
			PrimaryMood:    strings.TrimSpace(input.PrimaryMood),
			SecondaryMoods: journal.JoinList(input.SecondaryMoods),
			Tags:           joinTagNames(resolved),
		}
		if len(resolved) > 0 {
			first := resolved[0].ID
			next.TagID = &first
		}

		if _, err := entries.Save(ctx, next); err != nil {
			return err
		}

		ids := make([]int64, 0, len(resolved))
		for _, t := range resolved {
			ids = append(ids, t.ID)
		}
		if err := tagSvc.SetForEntry(ctx, next.ID, ids); err != nil {
			return err
		}

		entry, tags = next, resolved
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &EntryView{Entry: *entry, Tags: tags}, nil
}

// Show returns the entry for date's day. services.ErrNotFound is returned when
// the day has none.
func (u *Journal) Show(ctx context.Context, date time.Time) (*EntryView, error) {
	entry := u.entryService.OneForDate(ctx, date)
	if entry == nil {
		return nil, fmt.Errorf("%s: %w", journal.DayKey(date), services.ErrNotFound)
	}
	return u.view(ctx, *entry), nil
}

// Get returns the entry with id or services.ErrNotFound.
func (u *Journal) Get(ctx context.Context, id int64) (*EntryView, error) {
	entry := u.entryService.Get(ctx, id)
	if entry == nil {
		return nil, fmt.Errorf("entry %d: %w", id, services.ErrNotFound)
	}
	return u.view(ctx, *entry), nil
}

type ListInput struct {
	From  time.Time
	To    time.Time
	Limit int
}

// List returns entries newest first. A zero From/To leaves that side open.
func (u *Journal) List(ctx context.Context, input ListInput) []journal.Entry {
	var entries []journal.Entry
	if input.From.IsZero() && input.To.IsZero() {
		entries = u.entryService.List(ctx)
	} else {
		from, to := input.From, input.To
		if from.IsZero() {
			from = time.Date(1, 1, 1, 0, 0, 0, 0, time.Local)
		}
		if to.IsZero() {
			to = time.Date(9999, 12, 31, 0, 0, 0, 0, time.Local)
		}
		entries = u.entryService.InRange(ctx, from, to)
	}
	return limitEntries(entries, input.Limit)
}

// Search returns entries matching query, newest first.
func (u *Journal) Search(ctx context.Context, query string, limit int) []journal.Entry {
	return limitEntries(u.entryService.Search(ctx, query), limit)
}

// Delete removes the entry for date's day and its tag links.
func (u *Journal) Delete(ctx context.Context, date time.Time) (*journal.Entry, error) {
	entry := u.entryService.OneForDate(ctx, date)
	if entry == nil {
		return nil, fmt.Errorf("%s: %w", journal.DayKey(date), services.ErrNotFound)
	}
	if _, err := u.entryService.Delete(ctx, *entry); err != nil {
		return nil, err
	}
	return entry, nil
}

func (u *Journal) view(ctx context.Context, entry journal.Entry) *EntryView {
	return &EntryView{
		Entry: entry,
		Tags:  u.tagService.TagsForEntry(ctx, entry.ID),
	}
}

func joinTagNames(tags []journal.Tag) string {
	names := make([]string, 0, len(tags))
	for _, t := range tags {
		names = append(names, t.Name)
	}
	return journal.JoinList(names)
}

func limitEntries(entries []journal.Entry, limit int) []journal.Entry {
	if limit > 0 && len(entries) > limit {
		return entries[:limit]
	}
	return entries
}
