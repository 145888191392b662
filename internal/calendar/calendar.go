// Package calendar normalizes sparse contribution data into a gapless daily
// window and lays it out as week columns for rendering.
package calendar

import (
	"errors"
	"time"
)

// Record is a single day's contribution count. Date is midnight UTC.
type Record struct {
	Date  time.Time
	Count int
}

// ErrInvalidWindow is returned when a window shorter than one day is requested.
var ErrInvalidWindow = errors.New("window must cover at least one day")

// Build normalizes records into exactly windowDays consecutive entries ending
// at windowEnd, ascending by date. Missing dates get a zero count; input
// records outside the window are ignored; duplicate dates last-wins.
func Build(records []Record, windowEnd time.Time, windowDays int) ([]Record, error) {
	if windowDays <= 0 {
		return nil, ErrInvalidWindow
	}

	end := midnightUTC(windowEnd)
	start := end.AddDate(0, 0, -(windowDays - 1))

	counts := make(map[time.Time]int, len(records))
	for _, r := range records {
		counts[midnightUTC(r.Date)] = r.Count
	}

	days := make([]Record, 0, windowDays)
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		days = append(days, Record{Date: d, Count: counts[d]})
	}
	return days, nil
}

func midnightUTC(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Tier is one of five intensity buckets used to pick a rendering color.
type Tier int

const (
	TierNone Tier = iota
	TierLow
	TierMedium
	TierHigh
	TierVeryHigh
)

// Classify buckets a day's contribution count into a Tier.
// Thresholds: 0, 1-2, 3-5, 6-10, 11+.
func Classify(count int) Tier {
	switch {
	case count <= 0:
		return TierNone
	case count <= 2:
		return TierLow
	case count <= 5:
		return TierMedium
	case count <= 10:
		return TierHigh
	default:
		return TierVeryHigh
	}
}

// Cell is one slot of the rendered grid. Placeholder slots pad the first and
// last week columns and carry no date or count.
type Cell struct {
	Date        time.Time
	Count       int
	Tier        Tier
	Week        int
	Weekday     time.Weekday
	Placeholder bool
}

// Layout arranges a normalized window into Sunday-first week columns of 7
// cells. Tiers are classified here, at layout time, not during Build.
func Layout(days []Record) [][]Cell {
	if len(days) == 0 {
		return nil
	}

	lead := int(days[0].Date.Weekday())
	total := lead + len(days)
	ncols := (total + 6) / 7

	columns := make([][]Cell, ncols)
	for c := range columns {
		columns[c] = make([]Cell, 7)
		for r := range columns[c] {
			columns[c][r] = Cell{Week: c, Weekday: time.Weekday(r), Placeholder: true}
		}
	}

	for i, d := range days {
		pos := lead + i
		c, r := pos/7, pos%7
		columns[c][r] = Cell{
			Date:    d.Date,
			Count:   d.Count,
			Tier:    Classify(d.Count),
			Week:    c,
			Weekday: time.Weekday(r),
		}
	}
	return columns
}

// Stats summarizes a normalized window.
type Stats struct {
	ActiveDays int
	MaxCount   int
	Total      int
	Average    float64
}

// Aggregate computes summary statistics. Average divides by the full window
// length, counting zero-contribution days, not only active ones.
func Aggregate(days []Record) Stats {
	var s Stats
	for _, d := range days {
		s.Total += d.Count
		if d.Count > 0 {
			s.ActiveDays++
		}
		if d.Count > s.MaxCount {
			s.MaxCount = d.Count
		}
	}
	if len(days) > 0 {
		s.Average = float64(s.Total) / float64(len(days))
	}
	return s
}
