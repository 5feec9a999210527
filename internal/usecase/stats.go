package usecase

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/daybook/daybook/internal/catalog"
	"github.com/daybook/daybook/internal/journal"
)

// MoodCount is the number of entries with one primary mood.
type MoodCount struct {
	Mood  string
	Count int
}

// StatsResult summarizes mood polarity over a range of days.
type StatsResult struct {
	From     time.Time
	To       time.Time
	Entries  int
	Positive int
	Neutral  int
	Negative int
	Other    int
	Unset    int
	Moods    []MoodCount
}

// Stats counts entries in [from, to] by the polarity of their primary mood.
// Stored mood types win over the built-in catalog. Moods with a custom type,
// or known to neither, count as Other.
func (u *Journal) Stats(ctx context.Context, from, to time.Time) StatsResult {
	entries := u.entryService.InRange(ctx, from, to)

	moods, _ := u.moodService.ListAll(ctx)
	polarity := make(map[string]string, len(moods))
	for _, m := range moods {
		polarity[strings.ToLower(m.Name)] = m.MoodType
	}

	result := StatsResult{From: from, To: to, Entries: len(entries)}
	counts := map[string]int{}
	for _, e := range entries {
		name := strings.TrimSpace(e.PrimaryMood)
		if name == "" {
			result.Unset++
			continue
		}
		counts[name]++

		switch polarityOf(polarity, name) {
		case journal.MoodPositive:
			result.Positive++
		case journal.MoodNeutral:
			result.Neutral++
		case journal.MoodNegative:
			result.Negative++
		default:
			result.Other++
		}
	}

	for name, n := range counts {
		result.Moods = append(result.Moods, MoodCount{Mood: name, Count: n})
	}
	sort.Slice(result.Moods, func(i, j int) bool {
		if result.Moods[i].Count != result.Moods[j].Count {
			return result.Moods[i].Count > result.Moods[j].Count
		}
		return result.Moods[i].Mood < result.Moods[j].Mood
	})
	return result
}

func polarityOf(stored map[string]string, name string) string {
	if moodType, ok := stored[strings.ToLower(name)]; ok {
		return moodType
	}
	switch {
	case catalog.IsPositiveMood(name):
		return journal.MoodPositive
	case catalog.IsNeutralMood(name):
		return journal.MoodNeutral
	case catalog.IsNegativeMood(name):
		return journal.MoodNegative
	}
	return ""
}
