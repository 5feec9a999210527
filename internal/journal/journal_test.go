package journal

import (
	"errors"
	"testing"
	"time"
)

func TestNormalizeCategory(t *testing.T) {
	cases := map[string]string{
		"Primary":   CategoryPrimary,
		" primary ": CategoryPrimary,
		"PRIMARY":   CategoryPrimary,
		"secondary": CategorySecondary,
		"":          CategorySecondary,
		"tertiary":  CategorySecondary,
	}
	for in, want := range cases {
		if got := NormalizeCategory(in); got != want {
			t.Errorf("NormalizeCategory(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestCanonicalCategory(t *testing.T) {
	if got := CanonicalCategory("PRIMARY"); got != CategoryPrimary {
		t.Fatalf("expected Primary, got %q", got)
	}
	if got := CanonicalCategory(" bogus "); got != "bogus" {
		t.Fatalf("expected unknown category kept, got %q", got)
	}
}

func TestNormalizeMoodType(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"positive", MoodPositive},
		{"NEGATIVE", MoodNegative},
		{" Neutral ", MoodNeutral},
		{"", MoodNeutral},
		{"   ", MoodNeutral},
		{"Mixed", "Mixed"},
	}
	for _, tc := range cases {
		if got := NormalizeMoodType(tc.in); got != tc.want {
			t.Errorf("NormalizeMoodType(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestValidateOTP(t *testing.T) {
	valid := []string{"1234", " 0000 ", "9876"}
	for _, otp := range valid {
		if err := ValidateOTP(otp); err != nil {
			t.Errorf("ValidateOTP(%q) returned %v", otp, err)
		}
	}

	invalid := []string{"", "123", "12345", "12a4", "١٢٣٤", "    "}
	for _, otp := range invalid {
		if err := ValidateOTP(otp); !errors.Is(err, ErrInvalidOTP) {
			t.Errorf("ValidateOTP(%q) = %v, want ErrInvalidOTP", otp, err)
		}
	}
}

func TestDayHelpers(t *testing.T) {
	loc := time.FixedZone("test", 5*3600)
	saved := time.Local
	time.Local = loc
	t.Cleanup(func() { time.Local = saved })
	ts := time.Date(2024, 3, 9, 23, 59, 59, 0, loc)

	if got := DayKey(ts); got != "2024-03-09" {
		t.Fatalf("DayKey = %q", got)
	}
	if got := DayKey(ts.UTC()); got != "2024-03-09" {
		t.Fatalf("DayKey in UTC = %q, want the local day", got)
	}
	if got := StartOfDay(ts); !got.Equal(time.Date(2024, 3, 9, 0, 0, 0, 0, loc)) {
		t.Fatalf("StartOfDay = %v", got)
	}
	if got := StartOfNextDay(ts); !got.Equal(time.Date(2024, 3, 10, 0, 0, 0, 0, loc)) {
		t.Fatalf("StartOfNextDay = %v", got)
	}
}

func TestParseDay(t *testing.T) {
	now := time.Date(2024, 5, 2, 15, 0, 0, 0, time.Local)

	today, err := ParseDay("today", now)
	if err != nil || DayKey(today) != "2024-05-02" {
		t.Fatalf("ParseDay(today) = %v, %v", today, err)
	}
	yesterday, err := ParseDay("Yesterday", now)
	if err != nil || DayKey(yesterday) != "2024-05-01" {
		t.Fatalf("ParseDay(yesterday) = %v, %v", yesterday, err)
	}
	explicit, err := ParseDay("2023-12-31", now)
	if err != nil || DayKey(explicit) != "2023-12-31" {
		t.Fatalf("ParseDay(2023-12-31) = %v, %v", explicit, err)
	}
	if _, err := ParseDay("31/12/2023", now); err == nil {
		t.Fatalf("expected error for malformed day")
	}
}

func TestListHelpers(t *testing.T) {
	got := SplitList(" Work, ,Family ,")
	if len(got) != 2 || got[0] != "Work" || got[1] != "Family" {
		t.Fatalf("SplitList = %#v", got)
	}
	if joined := JoinList([]string{"Work", "work", " Family ", ""}); joined != "Work, Family" {
		t.Fatalf("JoinList = %q", joined)
	}
	e := Entry{SecondaryMoods: "Stressed, Tired", Tags: "Work"}
	if len(e.SecondaryMoodList()) != 2 || len(e.TagList()) != 1 {
		t.Fatalf("unexpected entry list split: %#v %#v", e.SecondaryMoodList(), e.TagList())
	}
}
