package calendar_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/christopherklint97/timelog/internal/calendar"
)

func date(t *testing.T, y, m, d int) calendar.Date {
	t.Helper()
	answer, err := calendar.NewDate(y, m, d)
	require.NoError(t, err)
	return answer
}

func TestNewDateValidation(t *testing.T) {
	valid := [][3]int{
		{calendar.MinYear, 1, 1},
		{calendar.MaxYear, 12, 31},
		{2000, 2, 29},
		{2024, 2, 29},
	}
	for _, c := range valid {
		_, err := calendar.NewDate(c[0], c[1], c[2])
		assert.NoError(t, err, "expected %v to be valid", c)
	}

	invalid := [][3]int{
		{calendar.MinYear - 1, 12, 31},
		{calendar.MaxYear + 1, 1, 1},
		{2000, 13, 1},
		{2000, 0, 1},
		{2000, 1, 32},
		{2000, 1, 0},
		{2001, 2, 29},
		{2100, 2, 29},
		{2000, 4, 31},
	}
	for _, c := range invalid {
		_, err := calendar.NewDate(c[0], c[1], c[2])
		assert.Error(t, err, "expected %v to be invalid", c)
	}
}

func TestParseDateRoundTrip(t *testing.T) {
	d, err := calendar.ParseDate("04/03/2025")
	require.NoError(t, err)
	assert.Equal(t, date(t, 2025, 4, 3), d)
	assert.Equal(t, "04/03/2025", d.String())

	again, err := calendar.ParseDate(d.String())
	require.NoError(t, err)
	assert.Equal(t, d, again)

	for _, bad := range []string{"", "4/3/2025", "04-03-2025", "04/31/2025", "13/01/2025"} {
		_, err := calendar.ParseDate(bad)
		assert.Error(t, err, "expected %q to fail", bad)
	}
}

func TestDayNumber(t *testing.T) {
	assert.Equal(t, 0, calendar.MinDate().DayNumber())
	assert.Equal(t, 365, date(t, calendar.MinYear+1, 1, 1).DayNumber())

	base := date(t, 2000, 12, 31).DayNumber()
	assert.Equal(t, 10226, base)

	// 2001 is not a leap year, so Feb ends at day 59.
	cases := []struct {
		month, day, offset int
	}{
		{1, 1, 1}, {1, 31, 31},
		{2, 1, 32}, {2, 28, 59},
		{3, 1, 60}, {3, 31, 90},
		{4, 1, 91}, {4, 30, 120},
		{12, 1, 335}, {12, 31, 365},
	}
	for _, c := range cases {
		assert.Equal(t, base+c.offset, date(t, 2001, c.month, c.day).DayNumber())
	}
}

func TestDayNumberConsecutive(t *testing.T) {
	// Walk across a leap-year February and a year boundary.
	for _, start := range []calendar.Date{date(t, 2000, 2, 25), date(t, 2000, 12, 28)} {
		d := start
		for i := 0; i < 10; i++ {
			next, err := d.Next()
			require.NoError(t, err)
			assert.Equal(t, d.DayNumber()+1, next.DayNumber())
			d = next
		}
	}
}

func TestDayNames(t *testing.T) {
	assert.Equal(t, "MON", calendar.MinDate().DayAbbrev())
	assert.Equal(t, "Monday", calendar.MinDate().DayName())
	assert.Equal(t, "SUN", date(t, 2025, 4, 6).DayAbbrev())
	assert.Equal(t, "MON", date(t, 2025, 4, 7).DayAbbrev())
	assert.Equal(t, "TUE", date(t, 2025, 4, 8).DayAbbrev())
	assert.Equal(t, "WED", date(t, 2025, 4, 9).DayAbbrev())
	assert.Equal(t, "THU", date(t, 2025, 4, 10).DayAbbrev())
	assert.Equal(t, "FRI", date(t, 2025, 4, 11).DayAbbrev())
	assert.Equal(t, "SAT", date(t, 2025, 4, 12).DayAbbrev())
}

func TestIsWeekday(t *testing.T) {
	assert.True(t, date(t, 2025, 4, 7).IsWeekday())  // Monday
	assert.True(t, date(t, 2025, 4, 11).IsWeekday()) // Friday
	assert.False(t, date(t, 2025, 4, 12).IsWeekday())
	assert.False(t, date(t, 2025, 4, 13).IsWeekday())
}

func TestNextPrev(t *testing.T) {
	assert.Equal(t, date(t, 1996, 12, 31), mustPrev(t, date(t, 1997, 1, 1)))
	assert.Equal(t, date(t, 1996, 1, 31), mustPrev(t, date(t, 1996, 2, 1)))
	assert.Equal(t, date(t, 1996, 2, 29), mustPrev(t, date(t, 1996, 3, 1)))

	assert.Equal(t, date(t, 1997, 1, 1), mustNext(t, date(t, 1996, 12, 31)))
	assert.Equal(t, date(t, 1996, 2, 29), mustNext(t, date(t, 1996, 2, 28)))
	assert.Equal(t, date(t, 1996, 3, 1), mustNext(t, date(t, 1996, 2, 29)))

	_, err := calendar.MinDate().Prev()
	assert.Error(t, err)
	_, err = calendar.MaxDate().Next()
	assert.Error(t, err)
}

func TestNextPrevRoundTrip(t *testing.T) {
	for _, d := range []calendar.Date{
		date(t, 2000, 2, 28),
		date(t, 2000, 2, 29),
		date(t, 2000, 12, 31),
		date(t, 2024, 1, 1),
	} {
		next := mustNext(t, d)
		assert.Equal(t, d, mustPrev(t, next))
		prev := mustPrev(t, d)
		assert.Equal(t, d, mustNext(t, prev))
	}
}

func TestMondays(t *testing.T) {
	assert.False(t, date(t, 1996, 2, 25).IsMonday())
	assert.True(t, date(t, 1996, 2, 26).IsMonday())
	assert.False(t, date(t, 1996, 2, 27).IsMonday())
	assert.True(t, date(t, 1996, 3, 4).IsMonday())

	monday := date(t, 1996, 2, 26)
	for d := monday; !d.IsSunday(); d = mustNext(t, d) {
		got, err := d.ThisMonday()
		require.NoError(t, err)
		assert.Equal(t, monday, got)
	}
	sundayMonday, err := date(t, 1996, 2, 25).ThisMonday()
	require.NoError(t, err)
	assert.Equal(t, date(t, 1996, 2, 19), sundayMonday)

	prev, err := date(t, 1996, 2, 26).PrevMonday()
	require.NoError(t, err)
	assert.Equal(t, date(t, 1996, 2, 19), prev)
	prev, err = date(t, 1996, 3, 3).PrevMonday()
	require.NoError(t, err)
	assert.Equal(t, date(t, 1996, 2, 26), prev)

	next, err := date(t, 1996, 2, 26).NextMonday()
	require.NoError(t, err)
	assert.Equal(t, date(t, 1996, 3, 4), next)
	next, err = date(t, 1996, 3, 3).NextMonday()
	require.NoError(t, err)
	assert.Equal(t, date(t, 1996, 3, 4), next)
	next, err = date(t, 1996, 12, 30).NextMonday()
	require.NoError(t, err)
	assert.Equal(t, date(t, 1997, 1, 6), next)
}

func TestSundays(t *testing.T) {
	assert.True(t, date(t, 1996, 2, 25).IsSunday())
	assert.False(t, date(t, 1996, 2, 26).IsSunday())
	assert.True(t, date(t, 1996, 3, 3).IsSunday())

	got, err := date(t, 1996, 2, 25).ThisSunday()
	require.NoError(t, err)
	assert.Equal(t, date(t, 1996, 2, 25), got)

	sunday := date(t, 1996, 3, 3)
	for _, day := range []int{26, 27, 28, 29} {
		got, err := date(t, 1996, 2, day).ThisSunday()
		require.NoError(t, err)
		assert.Equal(t, sunday, got)
	}
	got, err = date(t, 1996, 12, 31).ThisSunday()
	require.NoError(t, err)
	assert.Equal(t, date(t, 1997, 1, 5), got)
}

func TestWeekNumConstantWithinWeek(t *testing.T) {
	monday := date(t, 2025, 4, 7)
	week := monday.WeekNum()
	d := monday
	for i := 0; i < 7; i++ {
		assert.Equal(t, week, d.WeekNum(), "day %s", d)
		if i < 6 {
			d = mustNext(t, d)
		}
	}
	assert.Equal(t, week+1, mustNext(t, d).WeekNum())
}

func TestSemimonthForDate(t *testing.T) {
	r := date(t, 2025, 4, 3).SemimonthForDate()
	assert.Equal(t, date(t, 2025, 4, 1), r.First())
	assert.Equal(t, date(t, 2025, 4, 15), r.Last())

	r = date(t, 2025, 4, 16).SemimonthForDate()
	assert.Equal(t, date(t, 2025, 4, 16), r.First())
	assert.Equal(t, date(t, 2025, 4, 30), r.Last())

	r = date(t, 2024, 2, 20).SemimonthForDate()
	assert.Equal(t, date(t, 2024, 2, 29), r.Last())
}

func TestDateRange(t *testing.T) {
	_, err := calendar.NewDateRange(date(t, 2025, 4, 7), date(t, 2025, 4, 6))
	assert.Error(t, err)

	r, err := calendar.NewDateRange(date(t, 2025, 4, 6), date(t, 2025, 4, 6))
	require.NoError(t, err)
	assert.Equal(t, []calendar.Date{date(t, 2025, 4, 6)}, r.Dates())

	r, err = calendar.NewDateRange(date(t, 1996, 2, 27), date(t, 1996, 3, 2))
	require.NoError(t, err)
	assert.True(t, r.Contains(date(t, 1996, 2, 27)))
	assert.True(t, r.Contains(date(t, 1996, 3, 2)))
	assert.False(t, r.Contains(date(t, 1996, 2, 26)))
	assert.False(t, r.Contains(date(t, 1996, 3, 3)))

	dates := r.Dates()
	require.Len(t, dates, 5)
	assert.Equal(t, date(t, 1996, 2, 29), dates[2])

	// Restartable: a second walk sees the same days.
	assert.Equal(t, dates, r.Dates())
}

func TestAsFullWeeks(t *testing.T) {
	// A single Thursday expands to its Monday-Sunday week.
	r, err := calendar.NewDateRange(date(t, 2025, 4, 3), date(t, 2025, 4, 3))
	require.NoError(t, err)
	full, err := r.AsFullWeeks()
	require.NoError(t, err)
	assert.Equal(t, date(t, 2025, 3, 31), full.First())
	assert.Equal(t, date(t, 2025, 4, 6), full.Last())
	assert.True(t, full.Contains(date(t, 2025, 4, 3)))
	assert.Len(t, full.Dates(), 7)

	// Expansion past MaxYear fails.
	r, err = calendar.NewDateRange(calendar.MaxDate(), calendar.MaxDate())
	require.NoError(t, err)
	_, err = r.AsFullWeeks()
	assert.Error(t, err)
}

func mustNext(t *testing.T, d calendar.Date) calendar.Date {
	t.Helper()
	next, err := d.Next()
	require.NoError(t, err)
	return next
}

func mustPrev(t *testing.T, d calendar.Date) calendar.Date {
	t.Helper()
	prev, err := d.Prev()
	require.NoError(t, err)
	return prev
}
