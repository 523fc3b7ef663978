package calendar

import "fmt"

// DateRange is an inclusive span of days, first <= last.
type DateRange struct {
	first Date
	last  Date
}

func NewDateRange(first, last Date) (DateRange, error) {
	if last.Before(first) {
		return DateRange{}, fmt.Errorf("out of order date range: %s to %s", first, last)
	}
	return DateRange{first: first, last: last}, nil
}

func (r DateRange) First() Date { return r.first }
func (r DateRange) Last() Date  { return r.last }

func (r DateRange) Contains(d Date) bool {
	return !d.Before(r.first) && !d.After(r.last)
}

// Dates returns every day of the range in order, first to last inclusive.
func (r DateRange) Dates() []Date {
	answer := []Date{r.first}
	for d := r.first; !d.Equal(r.last); {
		// Next cannot fail here: last is a valid date beyond d.
		d, _ = d.Next()
		answer = append(answer, d)
	}
	return answer
}

// AsFullWeeks expands the range outward to the enclosing Monday-Sunday
// boundary. Fails when the boundary lies outside the supported years.
func (r DateRange) AsFullWeeks() (DateRange, error) {
	monday, err := r.first.ThisMonday()
	if err != nil {
		return DateRange{}, fmt.Errorf("expanding %s to full weeks: %w", r, err)
	}
	sunday, err := r.last.ThisSunday()
	if err != nil {
		return DateRange{}, fmt.Errorf("expanding %s to full weeks: %w", r, err)
	}
	return DateRange{first: monday, last: sunday}, nil
}

func (r DateRange) String() string {
	return fmt.Sprintf("%s to %s", r.first, r.last)
}
