package calendar

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// The supported year range. MinYear is chosen so that day number zero
// (January 1st 1973) falls on a Monday, which keeps both weekday lookup
// (dayNumber % 7) and week numbering (dayNumber / 7) trivial.
const (
	MinYear = 1973
	MaxYear = 2300
)

var dateRE = regexp.MustCompile(`^(\d{2})/(\d{2})/(\d{4})$`)

var dayNames = [7]string{
	"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday",
}

var dayAbbrevs = [7]string{"MON", "TUE", "WED", "THU", "FRI", "SAT", "SUN"}

// Date is a calendar-valid day within [MinYear, MaxYear]. Construct only via
// NewDate, ParseDate or Today; the zero value is not a valid date.
type Date struct {
	year  int
	month int
	day   int
}

func NewDate(year, month, day int) (Date, error) {
	if !isValidDate(year, month, day) {
		return Date{}, fmt.Errorf("not a valid date: %04d-%02d-%02d", year, month, day)
	}
	return Date{year: year, month: month, day: day}, nil
}

// ParseDate parses a zero-padded MM/DD/YYYY string.
func ParseDate(text string) (Date, error) {
	m := dateRE.FindStringSubmatch(text)
	if m == nil {
		return Date{}, fmt.Errorf("not a date: %q", text)
	}
	month, _ := strconv.Atoi(m[1])
	day, _ := strconv.Atoi(m[2])
	year, _ := strconv.Atoi(m[3])
	return NewDate(year, month, day)
}

func MinDate() Date {
	return Date{year: MinYear, month: 1, day: 1}
}

func MaxDate() Date {
	return Date{year: MaxYear, month: 12, day: 31}
}

// Today returns the current local date.
func Today() (Date, error) {
	now := time.Now()
	return NewDate(now.Year(), int(now.Month()), now.Day())
}

func (d Date) Year() int  { return d.year }
func (d Date) Month() int { return d.month }
func (d Date) Day() int   { return d.day }

// DayNumber counts days since MinYear-01-01, which is day zero. Consecutive
// dates have consecutive day numbers across month and year boundaries.
func (d Date) DayNumber() int {
	days := 0
	for y := MinYear; y < d.year; y++ {
		days += daysInYear(y)
	}
	for m := 1; m < d.month; m++ {
		days += daysInMonth(d.year, m)
	}
	return days + d.day - 1
}

// WeekNum numbers Monday-to-Sunday weeks consecutively from MinYear.
func (d Date) WeekNum() int { return d.DayNumber() / 7 }

func (d Date) DayName() string   { return dayNames[d.DayNumber()%7] }
func (d Date) DayAbbrev() string { return dayAbbrevs[d.DayNumber()%7] }

func (d Date) IsMonday() bool  { return d.DayNumber()%7 == 0 }
func (d Date) IsSunday() bool  { return d.DayNumber()%7 == 6 }
func (d Date) IsWeekday() bool { return d.DayNumber()%7 < 5 }

func (d Date) Equal(o Date) bool { return d == o }

func (d Date) Before(o Date) bool { return d.Compare(o) < 0 }
func (d Date) After(o Date) bool  { return d.Compare(o) > 0 }

func (d Date) Compare(o Date) int {
	switch {
	case d.year != o.year:
		return d.year - o.year
	case d.month != o.month:
		return d.month - o.month
	}
	return d.day - o.day
}

// Next returns the following day, or an error past MaxYear-12-31.
func (d Date) Next() (Date, error) {
	switch {
	case d.day < daysInMonth(d.year, d.month):
		return Date{year: d.year, month: d.month, day: d.day + 1}, nil
	case d.month < 12:
		return Date{year: d.year, month: d.month + 1, day: 1}, nil
	case d.year < MaxYear:
		return Date{year: d.year + 1, month: 1, day: 1}, nil
	}
	return Date{}, fmt.Errorf("no date after %s", d)
}

// Prev returns the preceding day, or an error before MinYear-01-01.
func (d Date) Prev() (Date, error) {
	switch {
	case d.day > 1:
		return Date{year: d.year, month: d.month, day: d.day - 1}, nil
	case d.month > 1:
		return Date{year: d.year, month: d.month - 1, day: daysInMonth(d.year, d.month-1)}, nil
	case d.year > MinYear:
		return Date{year: d.year - 1, month: 12, day: 31}, nil
	}
	return Date{}, fmt.Errorf("no date before %s", d)
}

func (d Date) MinusDays(n int) (Date, error) {
	answer := d
	for i := 0; i < n; i++ {
		var err error
		if answer, err = answer.Prev(); err != nil {
			return Date{}, err
		}
	}
	return answer, nil
}

func (d Date) PlusDays(n int) (Date, error) {
	answer := d
	for i := 0; i < n; i++ {
		var err error
		if answer, err = answer.Next(); err != nil {
			return Date{}, err
		}
	}
	return answer, nil
}

// ThisMonday returns the Monday of the week containing d.
func (d Date) ThisMonday() (Date, error) {
	return d.MinusDays(d.DayNumber() % 7)
}

// ThisSunday returns the Sunday of the week containing d.
func (d Date) ThisSunday() (Date, error) {
	return d.PlusDays(6 - d.DayNumber()%7)
}

// PrevMonday returns the most recent Monday strictly before d.
func (d Date) PrevMonday() (Date, error) {
	prev, err := d.Prev()
	if err != nil {
		return Date{}, err
	}
	return prev.ThisMonday()
}

// NextMonday returns the first Monday strictly after d.
func (d Date) NextMonday() (Date, error) {
	monday, err := d.ThisMonday()
	if err != nil {
		return Date{}, err
	}
	return monday.PlusDays(7)
}

// SemimonthForDate returns the 1st-15th of d's month when d falls in the
// first half, or the 16th-to-month-end otherwise.
func (d Date) SemimonthForDate() DateRange {
	if d.day <= 15 {
		return DateRange{
			first: Date{year: d.year, month: d.month, day: 1},
			last:  Date{year: d.year, month: d.month, day: 15},
		}
	}
	return DateRange{
		first: Date{year: d.year, month: d.month, day: 16},
		last:  Date{year: d.year, month: d.month, day: daysInMonth(d.year, d.month)},
	}
}

func (d Date) String() string {
	return fmt.Sprintf("%02d/%02d/%04d", d.month, d.day, d.year)
}

func isLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

func daysInMonth(year, month int) int {
	switch month {
	case 1, 3, 5, 7, 8, 10, 12:
		return 31
	case 4, 6, 9, 11:
		return 30
	}
	if isLeapYear(year) {
		return 29
	}
	return 28
}

func daysInYear(year int) int {
	if isLeapYear(year) {
		return 366
	}
	return 365
}

func isValidDate(year, month, day int) bool {
	return year >= MinYear && year <= MaxYear &&
		month >= 1 && month <= 12 &&
		day >= 1 && day <= daysInMonth(year, month)
}
