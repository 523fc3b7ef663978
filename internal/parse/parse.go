// Package parse reads the plain-text time ledger into day entries.
//
// The format is line oriented. A day starts with a header such as
// "Date: Thursday 04/03/2025" and is followed by allocation lines like
// "client,code: 0800-1200,1300-1430". Anything after "--" is a comment,
// a bare END line ends the file early, and most malformed input degrades
// to a warning instead of killing the whole parse.
package parse

import (
	"bufio"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/christopherklint97/timelog/internal/calendar"
	"github.com/christopherklint97/timelog/internal/model"
)

var (
	dateLineRE = regexp.MustCompile(`^Date: [A-Za-z]+ (\d{2}/\d{2}/\d{4})$`)
	timeLineRE = regexp.MustCompile(`^([a-z]+),([-/0-9A-Za-z ]+)(?:,([-/0-9A-Za-z ]+))?:(.*)$`)
	rangeRE    = regexp.MustCompile(`^\d{4}-\d{4}$`)
	danglingRE = regexp.MustCompile(`^\d{4}-$`)
)

// openDay accumulates one day's allocations until the next date line (or
// EOF) finalizes it.
type openDay struct {
	date     calendar.Date
	lineNo   int
	projects []model.ProjectTimes
}

func (d *openDay) entry() model.DayEntry {
	return model.DayEntry{Date: d.date, Projects: d.projects, LineNo: d.lineNo}
}

// ParseFile reads the ledger at path into ordered day entries plus the
// non-fatal warnings collected along the way. Grammar-level problems
// (unrecognized lines, incomplete times, out-of-order dates) become
// warnings; semantic problems inside valid grammar (impossible times,
// inverted or overlapping ranges, a time line before any date) are fatal.
func ParseFile(path string) ([]model.DayEntry, []string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	var (
		entries  []model.DayEntry
		warnings []string
		day      *openDay
		prevDate *calendar.Date
	)

	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := removeComments(scanner.Text())

		switch {
		case line == "":
			// skip

		case line == "END":
			// Everything after END is scratch space, including any day
			// still open. Deliberately not flushed.
			return entries, warnings, nil

		case dateLineRE.MatchString(line):
			if day != nil {
				entries = append(entries, day.entry())
			}
			date, err := calendar.ParseDate(dateLineRE.FindStringSubmatch(line)[1])
			if err != nil {
				return nil, nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			if prevDate != nil && !prevDate.Before(date) {
				warnings = append(warnings, fmt.Sprintf("out of order dates: %s on line %d", date, lineNo))
			}
			prevDate = &date
			day = &openDay{date: date, lineNo: lineNo}

		case timeLineRE.MatchString(line):
			if day == nil {
				return nil, nil, fmt.Errorf("line %d: time line before any dates: %s", lineNo, line)
			}
			pt, lineWarnings, err := parseTimeLine(line, lineNo, day.date)
			if err != nil {
				return nil, nil, err
			}
			warnings = append(warnings, lineWarnings...)
			day.projects = append(day.projects, pt)

		default:
			warnings = append(warnings, fmt.Sprintf("invalid line %d: %s", lineNo, line))
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, fmt.Errorf("reading %s: %w", path, err)
	}

	if day != nil {
		entries = append(entries, day.entry())
	}
	return entries, warnings, nil
}

// removeComments strips "--" suffixes repeatedly, then trims whitespace.
// Comments may themselves contain "--", hence the loop.
func removeComments(line string) string {
	current := line
	for {
		i := strings.LastIndex(current, "--")
		if i < 0 {
			break
		}
		current = current[:i]
	}
	return strings.TrimSpace(current)
}

// parseTimeLine converts an allocation line into ProjectTimes. The label
// grammar has already matched; times are a comma list of HHMM-HHMM tokens
// with one optional trailing "HHMM-" for work still in progress, which is
// excluded from the result.
func parseTimeLine(line string, lineNo int, date calendar.Date) (model.ProjectTimes, []string, error) {
	m := timeLineRE.FindStringSubmatch(line)
	project := model.Project{
		Client:  m[1],
		Code:    strings.TrimSpace(m[2]),
		Subcode: strings.TrimSpace(m[3]),
	}

	var warnings []string
	var ranges []calendar.TimeRange

	timesField := strings.TrimSpace(m[4])
	if timesField == "" {
		warnings = append(warnings, fmt.Sprintf("incomplete time line %d: %s", lineNo, line))
	} else {
		tokens := strings.Split(timesField, ",")
		for i, token := range tokens {
			token = strings.TrimSpace(token)
			switch {
			case rangeRE.MatchString(token):
				r, err := calendar.ParseTimeRange(token)
				if err != nil {
					return model.ProjectTimes{}, nil, fmt.Errorf("line %d: %w", lineNo, err)
				}
				ranges = append(ranges, r)
			case i == len(tokens)-1 && danglingRE.MatchString(token):
				warnings = append(warnings, fmt.Sprintf("incomplete time range for %s: %s", date, line))
			default:
				warnings = append(warnings, fmt.Sprintf("invalid time range %q on line %d", token, lineNo))
			}
		}
	}

	pt, err := model.NewProjectTimes(project, ranges)
	if err != nil {
		return model.ProjectTimes{}, nil, fmt.Errorf("line %d: %w", lineNo, err)
	}
	return pt, warnings, nil
}
