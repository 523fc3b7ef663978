package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/christopherklint97/timelog/internal/calendar"
	"github.com/christopherklint97/timelog/internal/model"
)

func span(t *testing.T, h1, m1, h2, m2 int) calendar.TimeRange {
	t.Helper()
	from, err := calendar.NewTime(h1, m1)
	require.NoError(t, err)
	to, err := calendar.NewTime(h2, m2)
	require.NoError(t, err)
	r, err := calendar.NewTimeRange(from, to)
	require.NoError(t, err)
	return r
}

func TestProjectLabel(t *testing.T) {
	assert.Equal(t, "nasa,meeting", model.NewProject("nasa", "meeting").Label())
	assert.Equal(t, "nasa,apollo,lander", model.NewSubcodeProject("nasa", "apollo", "lander").Label())
	assert.Equal(t, "nasa,apollo", model.NewSubcodeProject("nasa", "apollo", "lander").WithoutSubcode().Label())
}

func TestProjectOrdering(t *testing.T) {
	a := model.NewProject("abc", "xyz")
	b := model.NewProject("abc", "zzz")
	c := model.NewProject("def", "aaa")
	d := model.NewSubcodeProject("abc", "xyz", "sub")

	assert.True(t, a.Less(b))
	assert.True(t, b.Less(c))
	assert.True(t, a.Less(d))
	assert.False(t, d.Less(a))
	assert.False(t, a.Less(a))
}

func TestNewProjectTimesSorts(t *testing.T) {
	pt, err := model.NewProjectTimes(model.NewProject("abc", "xyz"), []calendar.TimeRange{
		span(t, 13, 0, 13, 10),
		span(t, 8, 0, 12, 0),
		span(t, 13, 18, 17, 8),
	})
	require.NoError(t, err)
	assert.Equal(t, []calendar.TimeRange{
		span(t, 8, 0, 12, 0),
		span(t, 13, 0, 13, 10),
		span(t, 13, 18, 17, 8),
	}, pt.Ranges)
	assert.Equal(t, 240+10+230, pt.TotalMinutes())
}

func TestNewProjectTimesRejectsOverlap(t *testing.T) {
	_, err := model.NewProjectTimes(model.NewProject("abc", "xyz"), []calendar.TimeRange{
		span(t, 1, 0, 3, 0),
		span(t, 2, 0, 4, 0),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "abc,xyz")
	assert.Contains(t, err.Error(), "0100-0300")
	assert.Contains(t, err.Error(), "0200-0400")
}

func TestFindOverlappingTimeRanges(t *testing.T) {
	t13 := span(t, 1, 0, 3, 0)
	t24 := span(t, 2, 0, 4, 0)
	t34 := span(t, 3, 0, 4, 0)
	t35 := span(t, 3, 0, 5, 0)
	t56 := span(t, 5, 0, 6, 0)

	assert.Empty(t, model.FindOverlappingTimeRanges(nil))
	assert.Empty(t, model.FindOverlappingTimeRanges([]calendar.TimeRange{t13, t35}))
	assert.Empty(t, model.FindOverlappingTimeRanges([]calendar.TimeRange{t13, t35, t56}))

	assert.Equal(t,
		[]calendar.TimeRange{t13, t24, t35},
		model.FindOverlappingTimeRanges([]calendar.TimeRange{t13, t35, t24}))

	assert.Equal(t,
		[]calendar.TimeRange{t34, t35},
		model.FindOverlappingTimeRanges([]calendar.TimeRange{t13, t34, t35, t56}))
}

func TestWithoutSubcodes(t *testing.T) {
	d, err := calendar.NewDate(2025, 4, 3)
	require.NoError(t, err)

	lander, err := model.NewProjectTimes(
		model.NewSubcodeProject("nasa", "apollo", "lander"),
		[]calendar.TimeRange{span(t, 8, 0, 12, 0)})
	require.NoError(t, err)
	rover, err := model.NewProjectTimes(
		model.NewSubcodeProject("nasa", "apollo", "rover"),
		[]calendar.TimeRange{span(t, 13, 0, 17, 0)})
	require.NoError(t, err)
	other, err := model.NewProjectTimes(
		model.NewProject("spacex", "nav"),
		[]calendar.TimeRange{span(t, 17, 0, 18, 0)})
	require.NoError(t, err)

	entry := model.DayEntry{Date: d, Projects: []model.ProjectTimes{lander, rover, other}, LineNo: 12}
	collapsed := entry.WithoutSubcodes()

	require.Len(t, collapsed.Projects, 2)
	assert.Equal(t, model.NewProject("nasa", "apollo"), collapsed.Projects[0].Project)
	assert.Equal(t, []calendar.TimeRange{
		span(t, 8, 0, 12, 0),
		span(t, 13, 0, 17, 0),
	}, collapsed.Projects[0].Ranges)
	assert.Equal(t, model.NewProject("spacex", "nav"), collapsed.Projects[1].Project)
	assert.Equal(t, 12, collapsed.LineNo)
}

func TestUniqueProjects(t *testing.T) {
	d, err := calendar.NewDate(2025, 4, 3)
	require.NoError(t, err)
	d2, err := calendar.NewDate(2025, 4, 4)
	require.NoError(t, err)

	xyz, err := model.NewProjectTimes(model.NewProject("abc", "xyz"), []calendar.TimeRange{span(t, 8, 0, 9, 0)})
	require.NoError(t, err)
	uvw, err := model.NewProjectTimes(model.NewProject("def", "uvw"), []calendar.TimeRange{span(t, 9, 0, 10, 0)})
	require.NoError(t, err)

	entries := []model.DayEntry{
		{Date: d, Projects: []model.ProjectTimes{uvw, xyz}},
		{Date: d2, Projects: []model.ProjectTimes{xyz}},
	}
	assert.Equal(t, []model.Project{
		model.NewProject("abc", "xyz"),
		model.NewProject("def", "uvw"),
	}, model.UniqueProjects(entries))
}
