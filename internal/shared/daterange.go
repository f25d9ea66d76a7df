package shared

import (
	"net/url"
	"strings"
	"time"
)

// DateLayout is the format of date inputs and API date parameters.
const DateLayout = "2006-01-02"

// DateRange is an inclusive day range.
type DateRange struct {
	From time.Time
	To   time.Time
}

// ParseDateRange reads "from" and "to" query values. Missing values default
// to today. An unparseable or inverted range yields FieldErrors.
func ParseDateRange(q url.Values, now time.Time) (DateRange, error) {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	r := DateRange{From: today, To: today}
	errs := FieldErrors{}
	if raw := strings.TrimSpace(q.Get("from")); raw != "" {
		if t, err := time.ParseInLocation(DateLayout, raw, now.Location()); err == nil {
			r.From = t
		} else {
			errs["from"] = "Use a date like 2024-01-31"
		}
	}
	if raw := strings.TrimSpace(q.Get("to")); raw != "" {
		if t, err := time.ParseInLocation(DateLayout, raw, now.Location()); err == nil {
			r.To = t
		} else {
			errs["to"] = "Use a date like 2024-01-31"
		}
	}
	if len(errs) == 0 && r.To.Before(r.From) {
		errs["to"] = "The end date must not be before the start date"
	}
	if len(errs) > 0 {
		return DateRange{From: today, To: today}, errs
	}
	return r, nil
}

// Apply writes the range as from/to parameters.
func (r DateRange) Apply(q url.Values) {
	q.Set("from", r.From.Format(DateLayout))
	q.Set("to", r.To.Format(DateLayout))
}

// Days returns the number of days covered, at least 1.
func (r DateRange) Days() int {
	days := int(r.To.Sub(r.From).Hours()/24) + 1
	if days < 1 {
		return 1
	}
	return days
}

// String renders the range for headings.
func (r DateRange) String() string {
	if r.From.Equal(r.To) {
		return r.From.Format("2 Jan 2006")
	}
	return r.From.Format("2 Jan 2006") + " to " + r.To.Format("2 Jan 2006")
}
