// Package report turns parsed day entries into the weekly billing table.
package report

import (
	"fmt"
	"sort"

	"github.com/christopherklint97/timelog/internal/calendar"
	"github.com/christopherklint97/timelog/internal/model"
)

// Mode selects whether subcodes get their own rows or collapse into
// their parent client,code project.
type Mode int

const (
	Summary Mode = iota
	Detail
)

const (
	columnPad      = 3
	minutesPerHour = 60
	standardDay    = 480 // 8 hour work day, in minutes
)

// key addresses one cell of a week's accumulator.
type key struct {
	day     string
	project model.Project
}

// weekData accumulates minutes per (day, project) for one calendar week.
type weekData struct {
	minutes map[key]int
}

func newWeekData() weekData {
	return weekData{minutes: make(map[key]int)}
}

func (w weekData) addDayEntry(entry model.DayEntry) {
	day := entry.Date.DayAbbrev()
	for _, pt := range entry.Projects {
		w.minutes[key{day: day, project: pt.Project}] += pt.TotalMinutes()
	}
}

func (w weekData) projectDayTotal(project model.Project, day string) int {
	return w.minutes[key{day: day, project: project}]
}

func (w weekData) projectTotal(project model.Project) int {
	return w.sum(func(k key) bool { return k.project == project }, identity)
}

func (w weekData) projectBillable(project model.Project) int {
	return w.sum(func(k key) bool { return k.project == project }, billableMinutes)
}

func (w weekData) dayTotal(day string) int {
	return w.sum(func(k key) bool { return k.day == day }, identity)
}

func (w weekData) dayBillable(day string) int {
	return w.sum(func(k key) bool { return k.day == day }, billableMinutes)
}

func (w weekData) weekTotal() int {
	return w.sum(func(key) bool { return true }, identity)
}

func (w weekData) weekBillable() int {
	return w.sum(func(key) bool { return true }, billableMinutes)
}

func (w weekData) sum(filter func(key) bool, mapper func(int) int) int {
	total := 0
	for k, m := range w.minutes {
		if filter(k) {
			total += mapper(m)
		}
	}
	return total
}

func identity(m int) int { return m }

// billableMinutes rounds down to the nearest 15-minute increment.
// Partial increments are not billed.
func billableMinutes(m int) int {
	return m - m%15
}

type reportData struct {
	weeks    map[int]weekData
	totals   weekData
	projects []model.Project
	dates    calendar.DateRange
	weekdays int
}

// Create renders the billing report for entries falling within dates.
// Project rows cover every project in entries, in or out of range, so
// the same rows appear across consecutive reports.
func Create(dates calendar.DateRange, entries []model.DayEntry, mode Mode) ([]string, error) {
	return renderReportData(computeReportData(dates, entries, mode))
}

// entriesInRange filters to the date range and sorts by date. Input is
// normally already sorted but that is not assumed.
func entriesInRange(dates calendar.DateRange, entries []model.DayEntry) []model.DayEntry {
	var result []model.DayEntry
	for _, e := range entries {
		if dates.Contains(e.Date) {
			result = append(result, e)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Date.Before(result[j].Date)
	})
	return result
}

func adjustForMode(entry model.DayEntry, mode Mode) model.DayEntry {
	if mode == Summary {
		return entry.WithoutSubcodes()
	}
	return entry
}

func computeReportData(dates calendar.DateRange, entries []model.DayEntry, mode Mode) reportData {
	weeks := make(map[int]weekData)
	for _, d := range dates.Dates() {
		if _, ok := weeks[d.WeekNum()]; !ok {
			weeks[d.WeekNum()] = newWeekData()
		}
	}

	filtered := entriesInRange(dates, entries)

	totals := newWeekData()
	current := newWeekData()
	currentWeek := dates.First().WeekNum()
	for _, e := range filtered {
		e = adjustForMode(e, mode)
		if w := e.Date.WeekNum(); w != currentWeek {
			weeks[currentWeek] = current
			current = newWeekData()
			currentWeek = w
		}
		totals.addDayEntry(e)
		current.addDayEntry(e)
	}
	weeks[currentWeek] = current

	adjusted := make([]model.DayEntry, len(entries))
	for i, e := range entries {
		adjusted[i] = adjustForMode(e, mode)
	}
	projects := model.UniqueProjects(adjusted)

	weekdays := 0
	for _, e := range filtered {
		if e.Date.IsWeekday() {
			weekdays++
		}
	}

	return reportData{
		weeks:    weeks,
		totals:   totals,
		projects: projects,
		dates:    dates,
		weekdays: weekdays,
	}
}

// renderTime formats minutes as H:MM with the hour right-justified in
// hourLen columns, or a right-justified "-" when zero.
func renderTime(minutes, hourLen int) string {
	if minutes == 0 {
		return fmt.Sprintf("%*s", hourLen+3, "-")
	}
	return fmt.Sprintf("%*d:%02d", hourLen, minutes/minutesPerHour, minutes%minutesPerHour)
}

// renderDelta is renderTime with an explicit sign, for the DELTA row.
func renderDelta(delta, hourLen int) string {
	minutes := delta
	sign := "+"
	if delta < 0 {
		minutes = -delta
		sign = "-"
	}
	if minutes == 0 {
		return fmt.Sprintf("%*s", hourLen+3, "-")
	}
	return fmt.Sprintf("%s%*d:%02d", sign, hourLen-1, minutes/minutesPerHour, minutes%minutesPerHour)
}

const dayHeader = "     MON     TUE     WED     THU     FRI     SAT     SUN"

// rowLabels builds the left-hand column: header rows, one row per
// project, then the TOTALS and REPORT rows, all padded to a shared width.
func rowLabels(projects []model.Project) []string {
	labels := make([]string, 0, len(projects)+4)
	labels = append(labels, "", "PROJECT")
	for _, p := range projects {
		labels = append(labels, p.Label())
	}
	labels = append(labels, "TOTALS", "REPORT")

	width := 0
	for _, l := range labels {
		if len(l) > width {
			width = len(l)
		}
	}
	width += 4

	for i, l := range labels {
		labels[i] = fmt.Sprintf("%-*s", width, l)
	}
	return labels
}

func renderDatesLine(monday calendar.Date) (string, error) {
	line := ""
	d := monday
	for {
		line += fmt.Sprintf("%*s%02d/%02d", columnPad, "", d.Month(), d.Day())
		if d.IsSunday() {
			break
		}
		var err error
		if d, err = d.Next(); err != nil {
			return "", err
		}
	}
	return line + "   TOTALS  REPORT", nil
}

// renderWeekLine renders the seven day cells of one row plus its week
// total, with dayMinutes supplying the per-day figure.
func renderWeekLine(monday calendar.Date, dayMinutes func(day string) int, weekTotal int) (string, error) {
	line := ""
	d := monday
	for {
		line += fmt.Sprintf("%*s%s", columnPad, "", renderTime(dayMinutes(d.DayAbbrev()), 2))
		if d.IsSunday() {
			break
		}
		var err error
		if d, err = d.Next(); err != nil {
			return "", err
		}
	}
	return line + fmt.Sprintf("%*s%s", columnPad, "", renderTime(weekTotal, 3)), nil
}

func renderTimesLine(monday calendar.Date, project model.Project, week weekData) (string, error) {
	line, err := renderWeekLine(monday, func(day string) int {
		return week.projectDayTotal(project, day)
	}, week.projectTotal(project))
	if err != nil {
		return "", err
	}
	return line + "  " + renderTime(week.projectBillable(project), 3), nil
}

func renderGrandTotals(projects []model.Project, totals weekData, expected int) []string {
	width := len("PROJECT")
	for _, p := range projects {
		if l := len(p.Label()); l > width {
			width = l
		}
	}
	width += columnPad

	pad := fmt.Sprintf("%*s", columnPad, "")
	lines := []string{
		"",
		"",
		fmt.Sprintf("%-*s%sTOTALS%sREPORT", width, "PROJECT", pad, pad),
	}
	for _, p := range projects {
		lines = append(lines, fmt.Sprintf("%-*s%s%s%s%s",
			width, p.Label(),
			pad, renderTime(totals.projectTotal(p), 3),
			pad, renderTime(totals.projectBillable(p), 3)))
	}
	lines = append(lines,
		fmt.Sprintf("%-*s%s%s", width, "TOTALS", pad, renderTime(totals.weekTotal(), 3)),
		fmt.Sprintf("%-*s%s%s", width, "REPORT", pad, renderTime(totals.weekBillable(), 3)),
		fmt.Sprintf("%-*s%s%s", width, "DELTA", pad, renderDelta(totals.weekBillable()-expected, 3)))
	return lines
}

func renderReportData(data reportData) ([]string, error) {
	labels := rowLabels(data.projects)
	fullRange, err := data.dates.AsFullWeeks()
	if err != nil {
		return nil, fmt.Errorf("expanding report range: %w", err)
	}

	var lines []string
	for _, d := range fullRange.Dates() {
		if !d.IsMonday() {
			continue
		}
		if len(lines) > 0 {
			lines = append(lines, "")
		}
		week, ok := data.weeks[d.WeekNum()]
		if !ok {
			return nil, fmt.Errorf("no week data for week %d", d.WeekNum())
		}

		i := 0
		lines = append(lines, labels[i]+dayHeader)
		i++
		datesLine, err := renderDatesLine(d)
		if err != nil {
			return nil, err
		}
		lines = append(lines, labels[i]+datesLine)
		for _, p := range data.projects {
			i++
			timesLine, err := renderTimesLine(d, p, week)
			if err != nil {
				return nil, err
			}
			lines = append(lines, labels[i]+timesLine)
		}
		i++
		totalsLine, err := renderWeekLine(d, week.dayTotal, week.weekTotal())
		if err != nil {
			return nil, err
		}
		lines = append(lines, labels[i]+totalsLine)
		i++
		billablesLine, err := renderWeekLine(d, week.dayBillable, week.weekBillable())
		if err != nil {
			return nil, err
		}
		lines = append(lines, labels[i]+billablesLine)
	}

	lines = append(lines, renderGrandTotals(data.projects, data.totals, standardDay*data.weekdays)...)
	return lines, nil
}
