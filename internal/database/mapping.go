package database

import (
	sqldb "github.com/daybook/daybook/internal/database/sqlc"
	"github.com/daybook/daybook/internal/journal"
)

// EntryFromRow converts a JournalEntries row to a journal.Entry in local time.
func EntryFromRow(row sqldb.JournalEntry) journal.Entry {
	return journal.Entry{
		ID:             row.ID,
		Date:           localTime(row.Date),
		Title:          row.Title,
		Content:        row.Content,
		CreatedAt:      localTime(row.CreatedAt),
		UpdatedAt:      localTime(row.UpdatedAt),
		PrimaryMood:    row.PrimaryMood,
		SecondaryMoods: row.SecondaryMoods,
		Tags:           row.Tags,
		TagID:          optionalInt64Ptr(row.TagID),
	}
}

// EntryInsertParams builds insert parameters. The day key is derived from
// entry.Date in its own location.
func EntryInsertParams(entry journal.Entry) sqldb.InsertJournalEntryParams {
	return sqldb.InsertJournalEntryParams{
		Date:           storedTime(entry.Date),
		Day:            entry.Day(),
		Title:          entry.Title,
		Content:        entry.Content,
		CreatedAt:      storedTime(entry.CreatedAt),
		UpdatedAt:      storedTime(entry.UpdatedAt),
		PrimaryMood:    entry.PrimaryMood,
		SecondaryMoods: entry.SecondaryMoods,
		Tags:           entry.Tags,
		TagID:          nullInt64Ptr(entry.TagID),
	}
}

// EntryUpdateParams builds update parameters for entry.ID.
func EntryUpdateParams(entry journal.Entry) sqldb.UpdateJournalEntryParams {
	return sqldb.UpdateJournalEntryParams{
		Date:           storedTime(entry.Date),
		Day:            entry.Day(),
		Title:          entry.Title,
		Content:        entry.Content,
		UpdatedAt:      storedTime(entry.UpdatedAt),
		PrimaryMood:    entry.PrimaryMood,
		SecondaryMoods: entry.SecondaryMoods,
		Tags:           entry.Tags,
		TagID:          nullInt64Ptr(entry.TagID),
		ID:             entry.ID,
	}
}

func EntriesFromRows(rows []sqldb.JournalEntry) []journal.Entry {
	result := make([]journal.Entry, 0, len(rows))
	for _, row := range rows {
		result = append(result, EntryFromRow(row))
	}
	return result
}

func MoodFromRow(row sqldb.Mood) journal.Mood {
	return journal.Mood{
		ID:       row.ID,
		Name:     row.Name,
		Category: row.Category,
		MoodType: row.MoodType,
	}
}

func MoodsFromRows(rows []sqldb.Mood) []journal.Mood {
	result := make([]journal.Mood, 0, len(rows))
	for _, row := range rows {
		result = append(result, MoodFromRow(row))
	}
	return result
}

func TagFromRow(row sqldb.Tag) journal.Tag {
	return journal.Tag{ID: row.ID, Name: row.Name}
}

func TagsFromRows(rows []sqldb.Tag) []journal.Tag {
	result := make([]journal.Tag, 0, len(rows))
	for _, row := range rows {
		result = append(result, TagFromRow(row))
	}
	return result
}

func UserFromRow(row sqldb.User) journal.User {
	return journal.User{ID: row.ID, Name: row.Name, OTPHash: row.Otp}
}
