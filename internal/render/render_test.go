package render

import (
	"strings"
	"testing"
	"time"

	"github.com/gitstat-cli/gitstat/internal/calendar"
	"github.com/gitstat-cli/gitstat/internal/github"
)

var testUser = github.User{
	Login:       "octocat",
	Name:        "The Octocat",
	PublicRepos: 8,
	Followers:   100,
	Following:   9,
}

// windowEnd is a Wednesday so the first and last columns carry placeholders.
var windowEnd = time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC)

func yearCalendar(t *testing.T, records []calendar.Record) ([][]calendar.Cell, calendar.Stats) {
	t.Helper()
	days, err := calendar.Build(records, windowEnd, 365)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return calendar.Layout(days), calendar.Aggregate(days)
}

func monoOpts(width int) Options {
	return Options{Width: width, Color: false, Palette: DefaultPalette()}
}

func TestRender_DegradedBelowMinWidth(t *testing.T) {
	t.Parallel()

	columns, stats := yearCalendar(t, []calendar.Record{{Date: windowEnd, Count: 3}})
	out := Render(testUser, columns, stats, 3, monoOpts(MinGridWidth-1))

	if strings.Contains(out, "Less") {
		t.Fatalf("expected no grid legend below MinGridWidth, got:\n%s", out)
	}
	if !strings.Contains(out, "Statistics") {
		t.Fatalf("degraded output missing statistics heading:\n%s", out)
	}
	if !strings.Contains(out, "Avg/day: 0.0") {
		t.Fatalf("degraded output missing average:\n%s", out)
	}
	if !strings.Contains(out, "Total Contributions: 3") {
		t.Fatalf("degraded output missing total line:\n%s", out)
	}
}

func TestRender_GridWithLegendAndStats(t *testing.T) {
	t.Parallel()

	columns, stats := yearCalendar(t, []calendar.Record{{Date: windowEnd, Count: 7}})
	out := Render(testUser, columns, stats, 7, monoOpts(80))

	for _, want := range []string{"octocat", "The Octocat", "Less", "More", "Mon", "Wed", "Fri", "Statistics", "Active days: 1", "Max/day: 7"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRender_TruncatesOldestWeeks(t *testing.T) {
	t.Parallel()

	// Only the very first day of the window is busy enough for the top
	// tier; its glyph survives only when every week column fits.
	first := windowEnd.AddDate(0, 0, -364)
	columns, stats := yearCalendar(t, []calendar.Record{{Date: first, Count: 20}})

	wide := Render(testUser, columns, stats, 20, monoOpts(200))
	// One glyph in the grid plus one in the legend ramp.
	if got := strings.Count(wide, monoRamp[calendar.TierVeryHigh]); got != 2 {
		t.Fatalf("wide render: expected 2 top-tier glyphs, got %d", got)
	}

	narrow := Render(testUser, columns, stats, 20, monoOpts(44))
	// Truncation drops the oldest weeks, leaving only the legend glyph.
	if got := strings.Count(narrow, monoRamp[calendar.TierVeryHigh]); got != 1 {
		t.Fatalf("narrow render: expected only the legend glyph, got %d", got)
	}
}

func TestRender_MonochromePreservesStructure(t *testing.T) {
	t.Parallel()

	columns, stats := yearCalendar(t, nil)
	out := Render(testUser, columns, stats, 0, monoOpts(200))

	// 365 zero-count cells plus one legend swatch.
	if got := strings.Count(out, monoRamp[calendar.TierNone]); got != 366 {
		t.Fatalf("expected 366 empty-tier glyphs, got %d", got)
	}
}

func TestRender_ZeroWidthDefaultsTo80(t *testing.T) {
	t.Parallel()

	columns, stats := yearCalendar(t, nil)
	out := Render(testUser, columns, stats, 0, monoOpts(0))

	if !strings.Contains(out, "Less") {
		t.Fatalf("expected grid at default width, got:\n%s", out)
	}
}
