package github

import (
	"testing"
	"time"
)

func TestValidateRange_GitHubLaunchValidation(t *testing.T) {
	t.Parallel()

	launch := time.Date(2008, 4, 10, 0, 0, 0, 0, time.UTC)
	okFrom := launch
	okTo := launch.Add(24 * time.Hour)
	if err := validateRange(okFrom, okTo); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}

	badFrom := launch.Add(-24 * time.Hour)
	if err := validateRange(badFrom, okTo); err == nil {
		t.Fatalf("expected error for from before launch")
	}

	badTo := launch.Add(-1 * time.Second)
	if err := validateRange(okFrom, badTo); err == nil {
		t.Fatalf("expected error for to before launch")
	}
}

func TestValidateRange_Ordering(t *testing.T) {
	t.Parallel()

	from := time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC)
	if err := validateRange(from, from.Add(-time.Hour)); err == nil {
		t.Fatalf("expected error for from after to")
	}
	if err := validateRange(from, from.AddDate(1, 0, 2)); err == nil {
		t.Fatalf("expected error for range over 1 year")
	}
	if err := validateRange(time.Time{}, from); err == nil {
		t.Fatalf("expected error for zero from")
	}
}

func TestCalendarRecords_Flatten(t *testing.T) {
	t.Parallel()

	cal := Calendar{
		Weeks: []Week{
			{ContributionDays: []Day{
				{Date: "2024-03-17", ContributionCount: 0},
				{Date: "2024-03-18", ContributionCount: 3},
			}},
			{ContributionDays: []Day{
				{Date: "2024-03-24", ContributionCount: 11},
			}},
		},
	}

	recs, err := cal.Records()
	if err != nil {
		t.Fatalf("Records: %v", err)
	}
	if len(recs) != 3 {
		t.Fatalf("expected 3 records, got %d", len(recs))
	}
	want := time.Date(2024, 3, 18, 0, 0, 0, 0, time.UTC)
	if !recs[1].Date.Equal(want) || recs[1].Count != 3 {
		t.Fatalf("record 1 = %+v, want date %v count 3", recs[1], want)
	}
	if recs[2].Count != 11 {
		t.Fatalf("record 2 count = %d, want 11", recs[2].Count)
	}
}

func TestCalendarRecords_BadDate(t *testing.T) {
	t.Parallel()

	cal := Calendar{
		Weeks: []Week{
			{ContributionDays: []Day{{Date: "not-a-date", ContributionCount: 1}}},
		},
	}
	if _, err := cal.Records(); err == nil {
		t.Fatalf("expected error for malformed date")
	}
}
