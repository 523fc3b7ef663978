package random_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/christopherklint97/timelog/internal/calendar"
	"github.com/christopherklint97/timelog/internal/random"
)

func dateRange(t *testing.T, firstMonth, firstDay, lastMonth, lastDay int) calendar.DateRange {
	t.Helper()
	first, err := calendar.NewDate(2025, firstMonth, firstDay)
	require.NoError(t, err)
	last, err := calendar.NewDate(2025, lastMonth, lastDay)
	require.NoError(t, err)
	r, err := calendar.NewDateRange(first, last)
	require.NoError(t, err)
	return r
}

func TestDayEntriesCoverRange(t *testing.T) {
	g := random.NewSeeded(42)
	entries, err := g.DayEntries(dateRange(t, 3, 31, 4, 6))
	require.NoError(t, err)
	require.Len(t, entries, 7)
	for i, e := range entries {
		if i > 0 {
			assert.True(t, entries[i-1].Date.Before(e.Date))
		}
		assert.NotEmpty(t, e.Projects)
	}
}

func TestDayEntriesWorkdayShape(t *testing.T) {
	g := random.NewSeeded(42)
	entries, err := g.DayEntries(dateRange(t, 4, 1, 4, 1))
	require.NoError(t, err)
	require.Len(t, entries, 1)

	total := 0
	for _, pt := range entries[0].Projects {
		for _, r := range pt.Ranges {
			// everything falls inside the 0800-1700 work day
			assert.GreaterOrEqual(t, r.From().MinuteOfDay(), 8*60)
			assert.LessOrEqual(t, r.To().MinuteOfDay(), 17*60)
			// never spans the lunch hour
			assert.False(t, r.From().MinuteOfDay() < 12*60 && r.To().MinuteOfDay() > 12*60)
			total += r.Duration()
		}
	}
	// anchors guarantee the full day is covered except lunch
	assert.Equal(t, 8*60, total)
}

func TestDayEntriesDeterministicWithSeed(t *testing.T) {
	dates := dateRange(t, 3, 31, 4, 6)

	first, err := random.NewSeeded(42).DayEntries(dates)
	require.NoError(t, err)
	second, err := random.NewSeeded(42).DayEntries(dates)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestRenderLedgerSyntax(t *testing.T) {
	g := random.NewSeeded(42)
	entries, err := g.DayEntries(dateRange(t, 3, 31, 4, 1))
	require.NoError(t, err)

	lines := random.Render(entries)
	require.NotEmpty(t, lines)
	assert.True(t, strings.HasPrefix(lines[0], "Date: Monday 03/31/2025"))
	assert.Contains(t, lines, "")

	for _, line := range lines {
		if strings.HasPrefix(line, "Date: ") || line == "" {
			continue
		}
		label, times, found := strings.Cut(line, ": ")
		require.True(t, found, "allocation line %q", line)
		assert.Contains(t, label, ",")
		for _, token := range strings.Split(times, ",") {
			assert.Regexp(t, `^\d{4}-\d{4}$`, token)
		}
	}
}
