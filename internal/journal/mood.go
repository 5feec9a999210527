package journal

import "strings"

// Mood categories.
const (
	CategoryPrimary   = "Primary"
	CategorySecondary = "Secondary"
)

// Mood polarities.
const (
	MoodPositive = "Positive"
	MoodNeutral  = "Neutral"
	MoodNegative = "Negative"
)

// NormalizeCategory maps a category onto Primary or Secondary. Anything that
// is not a case-insensitive match for Primary becomes Secondary.
func NormalizeCategory(category string) string {
	if strings.EqualFold(strings.TrimSpace(category), CategoryPrimary) {
		return CategoryPrimary
	}
	return CategorySecondary
}

// CanonicalCategory returns the canonical spelling of a known category, or the
// trimmed input unchanged when it is not one. Used for lookups, where an
// unknown category must not silently widen to Secondary.
func CanonicalCategory(category string) string {
	c := strings.TrimSpace(category)
	switch {
	case strings.EqualFold(c, CategoryPrimary):
		return CategoryPrimary
	case strings.EqualFold(c, CategorySecondary):
		return CategorySecondary
	default:
		return c
	}
}

// NormalizeMoodType canonicalizes Positive/Neutral/Negative in any case and
// defaults an empty value to Neutral. Other values are kept as submitted.
func NormalizeMoodType(moodType string) string {
	mt := strings.TrimSpace(moodType)
	for _, known := range []string{MoodPositive, MoodNeutral, MoodNegative} {
		if strings.EqualFold(mt, known) {
			return known
		}
	}
	if mt == "" {
		return MoodNeutral
	}
	return moodType
}

// NormalizeMood applies category and type normalization and trims the name.
func NormalizeMood(m Mood) Mood {
	m.Name = strings.TrimSpace(m.Name)
	m.Category = NormalizeCategory(m.Category)
	m.MoodType = NormalizeMoodType(m.MoodType)
	return m
}
