package sqldb

import (
	"database/sql"
	"time"
)

type JournalEntry struct {
	ID             int64
	Date           time.Time
	Day            string
	Title          string
	Content        string
	CreatedAt      time.Time
	UpdatedAt      time.Time
	PrimaryMood    string
	SecondaryMoods string
	Tags           string
	TagID          sql.NullInt64
}

type JournalEntryTag struct {
	ID             int64
	JournalEntryID int64
	TagID          int64
}

type Mood struct {
	ID       int64
	Name     string
	Category string
	MoodType string
}

type Tag struct {
	ID   int64
	Name string
}

type User struct {
	ID   int64
	Name string
	Otp  string
}
