package model

import (
	"fmt"
	"sort"
	"strings"

	"github.com/christopherklint97/timelog/internal/calendar"
)

// Project identifies a billable (client, code, optional subcode) triple.
// Identity is structural, so Project values work as map keys.
type Project struct {
	Client  string
	Code    string
	Subcode string
}

func NewProject(client, code string) Project {
	return Project{Client: client, Code: code}
}

func NewSubcodeProject(client, code, subcode string) Project {
	return Project{Client: client, Code: code, Subcode: subcode}
}

// Label renders the project the way the ledger spells it.
func (p Project) Label() string {
	if p.Subcode == "" {
		return fmt.Sprintf("%s,%s", p.Client, p.Code)
	}
	return fmt.Sprintf("%s,%s,%s", p.Client, p.Code, p.Subcode)
}

func (p Project) WithoutSubcode() Project {
	return Project{Client: p.Client, Code: p.Code}
}

func (p Project) Less(o Project) bool {
	if p.Client != o.Client {
		return p.Client < o.Client
	}
	if p.Code != o.Code {
		return p.Code < o.Code
	}
	return p.Subcode < o.Subcode
}

// ProjectTimes holds one project's sorted time ranges for a single day.
type ProjectTimes struct {
	Project Project
	Ranges  []calendar.TimeRange
}

// NewProjectTimes sorts the ranges and rejects the set when any two ranges
// overlap, enumerating every conflicting range in the error.
func NewProjectTimes(project Project, ranges []calendar.TimeRange) (ProjectTimes, error) {
	sorted := make([]calendar.TimeRange, len(ranges))
	copy(sorted, ranges)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Compare(sorted[j]) < 0 })

	if conflicts := FindOverlappingTimeRanges(sorted); len(conflicts) > 0 {
		texts := make([]string, len(conflicts))
		for i, r := range conflicts {
			texts[i] = r.String()
		}
		return ProjectTimes{}, fmt.Errorf("overlapping time ranges for %s: [%s]",
			project.Label(), strings.Join(texts, ","))
	}

	return ProjectTimes{Project: project, Ranges: sorted}, nil
}

// TotalMinutes sums the durations of all ranges.
func (pt ProjectTimes) TotalMinutes() int {
	total := 0
	for _, r := range pt.Ranges {
		total += r.Duration()
	}
	return total
}

// FindOverlappingTimeRanges returns every range involved in at least one
// overlap, sorted and without duplicates. Pairwise comparison is fine here:
// a project rarely has more than a handful of ranges per day.
func FindOverlappingTimeRanges(ranges []calendar.TimeRange) []calendar.TimeRange {
	conflicting := make(map[calendar.TimeRange]bool)
	for i := 0; i < len(ranges); i++ {
		for j := i + 1; j < len(ranges); j++ {
			if !calendar.Distinct(ranges[i], ranges[j]) {
				conflicting[ranges[i]] = true
				conflicting[ranges[j]] = true
			}
		}
	}
	if len(conflicting) == 0 {
		return nil
	}
	answer := make([]calendar.TimeRange, 0, len(conflicting))
	for r := range conflicting {
		answer = append(answer, r)
	}
	sort.Slice(answer, func(i, j int) bool { return answer[i].Compare(answer[j]) < 0 })
	return answer
}

// DayEntry is one calendar day's worth of project allocations. LineNo is the
// ledger line holding the Date: header, kept so the watch UI can drop an
// editor on the right spot.
type DayEntry struct {
	Date     calendar.Date
	Projects []ProjectTimes
	LineNo   int
}

// WithoutSubcodes collapses all subcodes of the same client and code into a
// single project, merging their time ranges.
func (e DayEntry) WithoutSubcodes() DayEntry {
	merged := make(map[Project][]calendar.TimeRange)
	order := []Project{}
	for _, pt := range e.Projects {
		p := pt.Project.WithoutSubcode()
		if _, seen := merged[p]; !seen {
			order = append(order, p)
		}
		merged[p] = append(merged[p], pt.Ranges...)
	}

	projects := make([]ProjectTimes, 0, len(order))
	for _, p := range order {
		ranges := merged[p]
		sorted := make([]calendar.TimeRange, len(ranges))
		copy(sorted, ranges)
		sort.Slice(sorted, func(i, j int) bool { return sorted[i].Compare(sorted[j]) < 0 })
		projects = append(projects, ProjectTimes{Project: p, Ranges: sorted})
	}
	return DayEntry{Date: e.Date, Projects: projects, LineNo: e.LineNo}
}

// UniqueProjects collects the distinct projects appearing anywhere in the
// entries, sorted by (client, code, subcode).
func UniqueProjects(entries []DayEntry) []Project {
	seen := make(map[Project]bool)
	for _, e := range entries {
		for _, pt := range e.Projects {
			seen[pt.Project] = true
		}
	}
	answer := make([]Project, 0, len(seen))
	for p := range seen {
		answer = append(answer, p)
	}
	sort.Slice(answer, func(i, j int) bool { return answer[i].Less(answer[j]) })
	return answer
}
