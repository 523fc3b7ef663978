// Package ledger appends new day blocks to the time log file.
//
// The report side only ever reads the ledger; this package is the one
// place that writes it, and it does so atomically through a temp file
// in the same directory followed by a rename.
package ledger

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/christopherklint97/timelog/internal/calendar"
	"github.com/christopherklint97/timelog/internal/model"
)

// RecentProjects returns the distinct projects worked on or after
// minDate, most recent first, at most max of them. Subcodes are
// dropped so the result is suitable for client,code stub lines.
func RecentProjects(entries []model.DayEntry, minDate calendar.Date, max int) []model.Project {
	type lastSeen struct {
		project model.Project
		date    calendar.Date
	}
	seen := make(map[model.Project]lastSeen)
	for _, e := range entries {
		if e.Date.Before(minDate) {
			continue
		}
		for _, pt := range e.Projects {
			p := pt.Project.WithoutSubcode()
			seen[p] = lastSeen{project: p, date: e.Date}
		}
	}

	recent := make([]lastSeen, 0, len(seen))
	for _, ls := range seen {
		recent = append(recent, ls)
	}
	sort.Slice(recent, func(i, j int) bool {
		if !recent[i].date.Equal(recent[j].date) {
			return recent[j].date.Before(recent[i].date)
		}
		return recent[i].project.Less(recent[j].project)
	})

	if len(recent) > max {
		recent = recent[:max]
	}
	projects := make([]model.Project, len(recent))
	for i, ls := range recent {
		projects[i] = ls.project
	}
	return projects
}

// ValidateDate rejects appending a date that would land out of order.
func ValidateDate(entries []model.DayEntry, date calendar.Date) error {
	for _, e := range entries {
		if !e.Date.Before(date) {
			return fmt.Errorf("ledger already has an entry for %s, cannot append %s", e.Date, date)
		}
	}
	return nil
}

// dayBlock renders the block of lines appended for a new day: the date
// header plus one empty allocation stub per recent project. A leading
// blank line keeps the block separated from the previous one unless the
// preceding line was already blank.
func dayBlock(prevBlank bool, date calendar.Date, projects []model.Project) string {
	var b strings.Builder
	if !prevBlank {
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "Date: %s %s\n", date.DayName(), date)
	for _, p := range projects {
		fmt.Fprintf(&b, "%s: \n", p.Label())
	}
	return b.String()
}

// AppendDay inserts a new day block into the ledger at path, before the
// END sentinel if one is present, otherwise at end of file. The ledger
// is rewritten through a temp file and renamed into place so a failure
// part way through never corrupts it.
func AppendDay(path string, date calendar.Date, projects []model.Project) error {
	in, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return fmt.Errorf("stat %s: %w", path, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	defer os.Remove(tmp.Name())
	defer tmp.Close()

	if err := tmp.Chmod(info.Mode()); err != nil {
		return fmt.Errorf("setting temp file mode: %w", err)
	}

	w := bufio.NewWriter(tmp)
	appended := false
	prevBlank := true
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		line := scanner.Text()
		trimmed := strings.TrimSpace(line)
		if trimmed == "END" && !appended {
			if _, err := w.WriteString(dayBlock(prevBlank, date, projects) + "\n"); err != nil {
				return fmt.Errorf("writing temp file: %w", err)
			}
			appended = true
		}
		if _, err := w.WriteString(line + "\n"); err != nil {
			return fmt.Errorf("writing temp file: %w", err)
		}
		prevBlank = trimmed == ""
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	if !appended {
		if _, err := w.WriteString(dayBlock(prevBlank, date, projects)); err != nil {
			return fmt.Errorf("writing temp file: %w", err)
		}
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("flushing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replacing %s: %w", path, err)
	}
	return nil
}
