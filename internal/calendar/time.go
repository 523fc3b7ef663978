package calendar

import (
	"fmt"
	"regexp"
	"strconv"
)

var (
	timeRE      = regexp.MustCompile(`^(\d{2})(\d{2})$`)
	timeRangeRE = regexp.MustCompile(`^(\d{4})-(\d{4})$`)
)

// Time is a minute-of-day value. The zero value is midnight.
type Time struct {
	minute int
}

func NewTime(hour, minute int) (Time, error) {
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return Time{}, fmt.Errorf("not a valid time: hour %d minute %d", hour, minute)
	}
	return Time{minute: hour*60 + minute}, nil
}

// ParseTime parses a zero-padded HHMM token.
func ParseTime(text string) (Time, error) {
	m := timeRE.FindStringSubmatch(text)
	if m == nil {
		return Time{}, fmt.Errorf("not a time: %q", text)
	}
	hour, _ := strconv.Atoi(m[1])
	minute, _ := strconv.Atoi(m[2])
	return NewTime(hour, minute)
}

func (t Time) Hour() int   { return t.minute / 60 }
func (t Time) Minute() int { return t.minute % 60 }

// MinuteOfDay returns minutes since midnight.
func (t Time) MinuteOfDay() int { return t.minute }

func (t Time) Before(o Time) bool { return t.minute < o.minute }

func (t Time) Compare(o Time) int {
	switch {
	case t.minute < o.minute:
		return -1
	case t.minute > o.minute:
		return 1
	}
	return 0
}

func (t Time) String() string {
	return fmt.Sprintf("%02d%02d", t.Hour(), t.Minute())
}

// TimeRange is a half-open slice of a day: from is worked, to is not.
type TimeRange struct {
	from Time
	to   Time
}

func NewTimeRange(from, to Time) (TimeRange, error) {
	if !from.Before(to) {
		return TimeRange{}, fmt.Errorf("out of order time range: %s-%s", from, to)
	}
	return TimeRange{from: from, to: to}, nil
}

// ParseTimeRange parses an HHMM-HHMM token.
func ParseTimeRange(text string) (TimeRange, error) {
	m := timeRangeRE.FindStringSubmatch(text)
	if m == nil {
		return TimeRange{}, fmt.Errorf("not a time range: %q", text)
	}
	from, err := ParseTime(m[1])
	if err != nil {
		return TimeRange{}, err
	}
	to, err := ParseTime(m[2])
	if err != nil {
		return TimeRange{}, err
	}
	return NewTimeRange(from, to)
}

func (r TimeRange) From() Time { return r.from }
func (r TimeRange) To() Time   { return r.to }

// Duration returns the length of the range in minutes.
func (r TimeRange) Duration() int { return r.to.minute - r.from.minute }

func (r TimeRange) Compare(o TimeRange) int {
	if c := r.from.Compare(o.from); c != 0 {
		return c
	}
	return r.to.Compare(o.to)
}

func (r TimeRange) String() string {
	return fmt.Sprintf("%s-%s", r.from, r.to)
}

// Distinct reports whether two ranges occupy no common minute. Ranges that
// only touch at an endpoint are distinct; equal ranges are not.
func Distinct(a, b TimeRange) bool {
	return a.to.minute <= b.from.minute || b.to.minute <= a.from.minute
}
