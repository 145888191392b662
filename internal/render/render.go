// Package render draws the contribution calendar for a terminal of a given
// width and color capability.
package render

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/gitstat-cli/gitstat/internal/calendar"
	"github.com/gitstat-cli/gitstat/internal/github"
)

const (
	cellWidth     = 2 // block + one space per week column
	dayLabelWidth = 4

	// MinGridWidth is the narrowest terminal the week grid is drawn at:
	// the day-label gutter plus four week columns. Anything narrower falls
	// back to the text-only summary.
	MinGridWidth = dayLabelWidth + 4*cellWidth
)

const blockChar = "■"

// monoRamp stands in for the color ramp on terminals without color support,
// darkest tier first.
var monoRamp = [5]string{"·", "░", "▒", "▓", "█"}

var dayLabels = [7]string{"", "Mon", "", "Wed", "", "Fri", ""}

// Palette holds every color the renderer uses. It is passed in explicitly so
// callers can restyle the output without touching package state.
type Palette struct {
	Tiers [5]lipgloss.Color
	Title lipgloss.Color
	Info  lipgloss.Color
	Label lipgloss.Color
	Rule  lipgloss.Color
}

// DefaultPalette is the blue ramp, no-contribution tier first.
func DefaultPalette() Palette {
	return Palette{
		Tiers: [5]lipgloss.Color{
			lipgloss.Color("#2d333b"),
			lipgloss.Color("#0e4479"),
			lipgloss.Color("#216eb1"),
			lipgloss.Color("#3498db"),
			lipgloss.Color("#74b9ff"),
		},
		Title: lipgloss.Color("#ffffff"),
		Info:  lipgloss.Color("#56b6c2"),
		Label: lipgloss.Color("#58a6ff"),
		Rule:  lipgloss.Color("#58a6ff"),
	}
}

// Options fixes the terminal inputs for one render pass. Width and Color are
// probed once at startup; there is no live-resize handling.
type Options struct {
	Width   int
	Color   bool
	Palette Palette
}

// Render composes the header, contribution grid, legend and statistics block.
// Below MinGridWidth the grid is skipped and only the textual summary is
// emitted.
func Render(user github.User, columns [][]calendar.Cell, stats calendar.Stats, total int, opts Options) string {
	if opts.Width <= 0 {
		opts.Width = 80
	}

	var b strings.Builder
	writeHeader(&b, user, opts)
	b.WriteString(center(paint(opts, opts.Palette.Label, fmt.Sprintf("Total Contributions: %d", total)), opts.Width) + "\n")

	if opts.Width < MinGridWidth {
		writeStats(&b, stats, opts)
		return b.String()
	}

	shown := fitColumns(columns, opts.Width)
	b.WriteString("\n")
	writeMonthLabels(&b, shown, opts)
	writeGrid(&b, shown, opts)
	writeLegend(&b, opts)
	writeStats(&b, stats, opts)
	return b.String()
}

// fitColumns keeps the most recent weeks that fit the terminal, dropping the
// oldest columns first so chronological order is preserved.
func fitColumns(columns [][]calendar.Cell, width int) [][]calendar.Cell {
	max := (width - dayLabelWidth) / cellWidth
	if max < 1 {
		max = 1
	}
	if len(columns) > max {
		return columns[len(columns)-max:]
	}
	return columns
}

func writeHeader(b *strings.Builder, user github.User, opts Options) {
	rule := paint(opts, opts.Palette.Rule, strings.Repeat("─", opts.Width))
	b.WriteString(rule + "\n")
	b.WriteString(center(paintBold(opts, opts.Palette.Title, " "+user.Login+" "), opts.Width) + "\n")
	info := fmt.Sprintf("Name: %s  |  Repos: %d  |  Followers: %d  |  Following: %d",
		user.DisplayName(), user.PublicRepos, user.Followers, user.Following)
	b.WriteString(center(paint(opts, opts.Palette.Info, info), opts.Width) + "\n")
	b.WriteString(rule + "\n")
}

func writeMonthLabels(b *strings.Builder, columns [][]calendar.Cell, opts Options) {
	row := make([]rune, len(columns)*cellWidth)
	for i := range row {
		row[i] = ' '
	}
	last := time.Month(0)
	for ci, col := range columns {
		m, ok := columnMonth(col)
		if !ok || m == last {
			continue
		}
		last = m
		pos := ci * cellWidth
		for i, r := range m.String()[:3] {
			if pos+i < len(row) {
				row[pos+i] = r
			}
		}
	}
	label := strings.TrimRight(string(row), " ")
	b.WriteString(strings.Repeat(" ", dayLabelWidth) + paint(opts, opts.Palette.Label, label) + "\n")
}

// columnMonth is the month of a column's first real day.
func columnMonth(col []calendar.Cell) (time.Month, bool) {
	for _, c := range col {
		if !c.Placeholder {
			return c.Date.Month(), true
		}
	}
	return 0, false
}

func writeGrid(b *strings.Builder, columns [][]calendar.Cell, opts Options) {
	for day := 0; day < 7; day++ {
		label := fmt.Sprintf("%-*s", dayLabelWidth, dayLabels[day])
		b.WriteString(paint(opts, opts.Palette.Label, label))
		for _, col := range columns {
			b.WriteString(renderCell(col[day], opts))
		}
		b.WriteString("\n")
	}
}

// renderCell emits one week-column slot: blank space for placeholders, a
// colored block otherwise. Without color, tiers map to a shade ramp so the
// grid structure survives monochrome terminals.
func renderCell(c calendar.Cell, opts Options) string {
	if c.Placeholder {
		return "  "
	}
	if !opts.Color {
		return monoRamp[c.Tier] + " "
	}
	return paint(opts, opts.Palette.Tiers[c.Tier], blockChar) + " "
}

func writeLegend(b *strings.Builder, opts Options) {
	var sb strings.Builder
	sb.WriteString(paint(opts, opts.Palette.Label, "Less "))
	for tier := calendar.TierNone; tier <= calendar.TierVeryHigh; tier++ {
		sb.WriteString(renderCell(calendar.Cell{Tier: tier}, opts))
	}
	sb.WriteString(paint(opts, opts.Palette.Label, "More"))
	b.WriteString("\n" + strings.Repeat(" ", dayLabelWidth) + sb.String() + "\n")
}

func writeStats(b *strings.Builder, stats calendar.Stats, opts Options) {
	b.WriteString("\n")
	b.WriteString(center(paintBold(opts, opts.Palette.Title, " Statistics "), opts.Width) + "\n")
	line := fmt.Sprintf("Active days: %d  |  Max/day: %d  |  Total: %d  |  Avg/day: %.1f",
		stats.ActiveDays, stats.MaxCount, stats.Total, stats.Average)
	b.WriteString(center(paint(opts, opts.Palette.Info, line), opts.Width) + "\n")
	b.WriteString(paint(opts, opts.Palette.Rule, strings.Repeat("─", opts.Width)) + "\n")
}

func paint(opts Options, c lipgloss.Color, s string) string {
	if !opts.Color {
		return s
	}
	return lipgloss.NewStyle().Foreground(c).Render(s)
}

func paintBold(opts Options, c lipgloss.Color, s string) string {
	if !opts.Color {
		return s
	}
	return lipgloss.NewStyle().Bold(true).Foreground(c).Render(s)
}

// center pads s to the middle of the line. lipgloss.Width ignores ANSI
// escapes, so styled strings center correctly.
func center(s string, width int) string {
	pad := (width - lipgloss.Width(s)) / 2
	if pad <= 0 {
		return s
	}
	return strings.Repeat(" ", pad) + s
}
