// Package catalog holds the built-in mood and tag catalogs used to seed an
// empty journal and to answer reads when storage is unavailable.
package catalog

import (
	"strings"

	"github.com/daybook/daybook/internal/journal"
)

var defaultMoods = []journal.Mood{
	{Name: "Happy", Category: journal.CategoryPrimary, MoodType: journal.MoodPositive},
	{Name: "Excited", Category: journal.CategorySecondary, MoodType: journal.MoodPositive},
	{Name: "Relaxed", Category: journal.CategorySecondary, MoodType: journal.MoodPositive},
	{Name: "Grateful", Category: journal.CategorySecondary, MoodType: journal.MoodPositive},
	{Name: "Confident", Category: journal.CategorySecondary, MoodType: journal.MoodPositive},

	{Name: "Calm", Category: journal.CategoryPrimary, MoodType: journal.MoodNeutral},
	{Name: "Thoughtful", Category: journal.CategorySecondary, MoodType: journal.MoodNeutral},
	{Name: "Curious", Category: journal.CategorySecondary, MoodType: journal.MoodNeutral},
	{Name: "Nostalgic", Category: journal.CategorySecondary, MoodType: journal.MoodNeutral},
	{Name: "Bored", Category: journal.CategorySecondary, MoodType: journal.MoodNeutral},

	{Name: "Sad", Category: journal.CategoryPrimary, MoodType: journal.MoodNegative},
	{Name: "Angry", Category: journal.CategorySecondary, MoodType: journal.MoodNegative},
	{Name: "Stressed", Category: journal.CategorySecondary, MoodType: journal.MoodNegative},
	{Name: "Lonely", Category: journal.CategorySecondary, MoodType: journal.MoodNegative},
	{Name: "Anxious", Category: journal.CategorySecondary, MoodType: journal.MoodNegative},
	{Name: "Tired", Category: journal.CategorySecondary, MoodType: journal.MoodNegative},
}

var defaultTags = []string{
	"Work", "Career", "Studies", "Family", "Friends", "Relationships",
	"Parenting", "Health", "Fitness", "Personal Growth", "Self-care",
	"Exercise", "Meditation", "Yoga", "Hobbies", "Travel", "Nature",
	"Reading", "Writing", "Cooking", "Music", "Shopping", "Finance",
	"Projects", "Planning", "Spirituality", "Reflection", "Birthday",
	"Holiday", "Vacation", "Celebration",
}

// Moods returns a fresh copy of the default mood catalog.
func Moods() []journal.Mood {
	out := make([]journal.Mood, len(defaultMoods))
	copy(out, defaultMoods)
	return out
}

// MoodsByCategory returns the catalog moods in the given category.
func MoodsByCategory(category string) []journal.Mood {
	var out []journal.Mood
	for _, m := range defaultMoods {
		if m.Category == category {
			out = append(out, m)
		}
	}
	return out
}

// Tags returns a fresh copy of the default tag catalog.
func Tags() []journal.Tag {
	out := make([]journal.Tag, 0, len(defaultTags))
	for _, name := range defaultTags {
		out = append(out, journal.Tag{Name: name})
	}
	return out
}

// MoodType reports the catalog polarity of a mood name, or "" when the name
// is not in the catalog. Matching is case-insensitive.
func MoodType(name string) string {
	name = strings.TrimSpace(name)
	for _, m := range defaultMoods {
		if strings.EqualFold(m.Name, name) {
			return m.MoodType
		}
	}
	return ""
}

func IsPositiveMood(name string) bool { return MoodType(name) == journal.MoodPositive }
func IsNeutralMood(name string) bool  { return MoodType(name) == journal.MoodNeutral }
func IsNegativeMood(name string) bool { return MoodType(name) == journal.MoodNegative }
