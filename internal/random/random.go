// Package random generates plausible ledger content for demos and tests.
package random

import (
	"fmt"
	"math/rand"
	"sort"
	"time"

	"github.com/christopherklint97/timelog/internal/calendar"
	"github.com/christopherklint97/timelog/internal/model"
)

var catalog = []model.Project{
	model.NewProject("nasa", "navigation system"),
	model.NewProject("nasa", "saturn v launch"),
	model.NewProject("nasa", "astronaut recovery"),
	model.NewProject("nasa", "monkey training"),
	model.NewProject("nasa", "meeting"),
	model.NewProject("spacex", "elon meeting"),
	model.NewProject("spacex", "landing software"),
	model.NewProject("spacex", "navigation"),
	model.NewProject("spacex", "pr meeting"),
	model.NewProject("blue", "jeff meeting"),
	model.NewProject("blue", "aws interop"),
	model.NewProject("blue", "navigation fixes"),
	model.NewProject("carnival", "gps upgrade"),
	model.NewProject("carnival", "hull scrub"),
	model.NewProject("carnival", "lifeboat repairs"),
	model.NewProject("carnival", "band auditions"),
}

var (
	eightAM = mustTime(8, 0)
	noon    = mustTime(12, 0)
	onePM   = mustTime(13, 0)
	fivePM  = mustTime(17, 0)
)

func mustTime(hour, minute int) calendar.Time {
	t, err := calendar.NewTime(hour, minute)
	if err != nil {
		panic(err)
	}
	return t
}

// Generator produces random day entries. Seed it for reproducible output.
type Generator struct {
	rng *rand.Rand
}

func New() *Generator {
	return NewSeeded(time.Now().UnixNano())
}

func NewSeeded(seed int64) *Generator {
	return &Generator{rng: rand.New(rand.NewSource(seed))}
}

// DayEntries generates one entry per date in the range.
func (g *Generator) DayEntries(dates calendar.DateRange) ([]model.DayEntry, error) {
	var entries []model.DayEntry
	for _, d := range dates.Dates() {
		e, err := g.dayEntry(d)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, nil
}

func (g *Generator) dayEntry(date calendar.Date) (model.DayEntry, error) {
	ranges, err := g.timeRanges()
	if err != nil {
		return model.DayEntry{}, err
	}
	projects, err := g.projectTimes(ranges)
	if err != nil {
		return model.DayEntry{}, err
	}
	return model.DayEntry{Date: date, Projects: projects}, nil
}

// projectTimes deals the day's time ranges out to projects. Most ranges
// go to a project already in play; roughly one in four starts (or
// revisits) a project from the catalog.
func (g *Generator) projectTimes(ranges []calendar.TimeRange) ([]model.ProjectTimes, error) {
	assigned := make(map[model.Project][]calendar.TimeRange)
	var used []model.Project
	for _, r := range ranges {
		var p model.Project
		if len(used) == 0 || g.rng.Intn(4) == 0 {
			p = catalog[g.rng.Intn(len(catalog))]
		} else {
			p = used[g.rng.Intn(len(used))]
		}
		if _, ok := assigned[p]; !ok {
			used = append(used, p)
		}
		assigned[p] = append(assigned[p], r)
	}

	var result []model.ProjectTimes
	for _, p := range used {
		pt, err := model.NewProjectTimes(p, assigned[p])
		if err != nil {
			return nil, err
		}
		result = append(result, pt)
	}
	return result, nil
}

// timeRanges builds the day's schedule: the 0800/1200/1300/1700 anchors
// plus a few random times, with adjacent times joined into ranges and
// the lunch hour left out.
func (g *Generator) timeRanges() ([]calendar.TimeRange, error) {
	times := g.times()
	var ranges []calendar.TimeRange
	for i := 1; i < len(times); i++ {
		r, err := calendar.NewTimeRange(times[i-1], times[i])
		if err != nil {
			return nil, err
		}
		if times[i-1] == noon && times[i] == onePM {
			continue
		}
		ranges = append(ranges, r)
	}
	return ranges, nil
}

func (g *Generator) times() []calendar.Time {
	set := map[calendar.Time]struct{}{
		eightAM: {},
		noon:    {},
		onePM:   {},
		fivePM:  {},
	}
	n := 2 + g.rng.Intn(5)
	for i := 0; i < n; i++ {
		set[g.time()] = struct{}{}
	}

	times := make([]calendar.Time, 0, len(set))
	for t := range set {
		times = append(times, t)
	}
	sort.Slice(times, func(i, j int) bool { return times[i].Before(times[j]) })
	return times
}

// time picks a random minute in the morning or afternoon work block.
func (g *Generator) time() calendar.Time {
	var hour int
	if g.rng.Intn(2) == 0 {
		hour = 8 + g.rng.Intn(4)
	} else {
		hour = 13 + g.rng.Intn(4)
	}
	return mustTime(hour, g.rng.Intn(60))
}

// Render formats entries in ledger syntax, one blank line between days.
func Render(entries []model.DayEntry) []string {
	var lines []string
	for i, e := range entries {
		if i > 0 {
			lines = append(lines, "")
		}
		lines = append(lines, fmt.Sprintf("Date: %s %s", e.Date.DayName(), e.Date))
		for _, pt := range e.Projects {
			line := pt.Project.Label() + ": "
			for j, r := range pt.Ranges {
				if j > 0 {
					line += ","
				}
				line += r.String()
			}
			lines = append(lines, line)
		}
	}
	return lines
}
