// Package journal defines the value types shared by the daybook storage,
// service and presentation layers.
package journal

import (
	"strings"
	"time"
)

// Entry is a journal record tied to exactly one calendar day.
type Entry struct {
	ID             int64
	Date           time.Time
	Title          string
	Content        string
	CreatedAt      time.Time
	UpdatedAt      time.Time
	PrimaryMood    string
	SecondaryMoods string
	Tags           string
	TagID          *int64
}

// Day returns the calendar day key of the entry date.
func (e Entry) Day() string {
	return DayKey(e.Date)
}

// SecondaryMoodList splits the comma-joined secondary moods.
func (e Entry) SecondaryMoodList() []string {
	return SplitList(e.SecondaryMoods)
}

// TagList splits the comma-joined legacy tag names.
func (e Entry) TagList() []string {
	return SplitList(e.Tags)
}

// Mood is a named emotional descriptor.
type Mood struct {
	ID       int64
	Name     string
	Category string
	MoodType string
}

// Tag is a free-form topical label.
type Tag struct {
	ID   int64
	Name string
}

// User is the single local journal owner. OTPHash holds the stored secret,
// never the plain PIN.
type User struct {
	ID      int64
	Name    string
	OTPHash string
}

// SplitList splits a comma-joined list, trimming blanks.
func SplitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// JoinList joins names into the comma-joined legacy representation, dropping
// blanks and case-insensitive duplicates while keeping first-seen order.
func JoinList(names []string) string {
	seen := make(map[string]bool, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		n = strings.TrimSpace(n)
		key := strings.ToLower(n)
		if n == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, n)
	}
	return strings.Join(out, ", ")
}
