package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/gitstat-cli/gitstat/internal/calendar"
	"github.com/gitstat-cli/gitstat/internal/render"
)

func run(ctx context.Context, deps Deps, username, token string, days int) error {
	if deps.FetchUser == nil {
		return fmt.Errorf("deps.FetchUser is nil")
	}
	if deps.FetchCalendar == nil {
		return fmt.Errorf("deps.FetchCalendar is nil")
	}
	if deps.Probe == nil {
		return fmt.Errorf("deps.Probe is nil")
	}
	if deps.Now == nil {
		return fmt.Errorf("deps.Now is nil")
	}
	if days <= 0 {
		// Reject before any network call.
		return calendar.ErrInvalidWindow
	}

	end := midnightUTC(deps.Now())
	start := end.AddDate(0, 0, -(days - 1))

	user, err := deps.FetchUser(ctx, username, token)
	if err != nil {
		return fmt.Errorf("failed to fetch GitHub profile: %w", err)
	}

	// Extend "to" to the end of the final day so today's contributions count.
	cal, err := deps.FetchCalendar(ctx, username, token, start, end.Add(24*time.Hour-time.Second))
	if err != nil {
		return fmt.Errorf("failed to fetch GitHub contributions: %w", err)
	}

	records, err := cal.Records()
	if err != nil {
		return err
	}
	window, err := calendar.Build(records, end, days)
	if err != nil {
		return err
	}

	columns := calendar.Layout(window)
	stats := calendar.Aggregate(window)

	width, color := deps.Probe()
	out := render.Render(user, columns, stats, cal.TotalContributions, render.Options{
		Width:   width,
		Color:   color,
		Palette: render.DefaultPalette(),
	})
	fmt.Fprintln(deps.Stdout, out)
	return nil
}

func midnightUTC(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
