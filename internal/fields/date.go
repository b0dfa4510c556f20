package fields

import (
	"time"

	"github.com/DeafMist/job-radar/internal/processing"
)

const isoDate = "2006-01-02"

// dateLayouts are tried in order. Single-digit days and months are accepted.
var dateLayouts = []string{
	"2/1/2006",
	"2/1/06",
	"2006-1-2",
	"2-1-2006",
}

// ParseDate returns the calendar date in raw, or the zero time marked Defaulted.
func ParseDate(raw string) Result[time.Time] {
	s := processing.NormalizeText(raw)
	if s == "" {
		return Default(time.Time{})
	}
	for _, layout := range dateLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return Parsed(ts)
		}
	}
	return Default(time.Time{})
}

// ISODate formats a parsed date as YYYY-MM-DD, or returns "" for a defaulted one.
func ISODate(r Result[time.Time]) string {
	if r.Defaulted || r.Value.IsZero() {
		return ""
	}
	return r.Value.Format(isoDate)
}
