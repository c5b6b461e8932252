package summary

import (
	"errors"
	"time"
)

// ErrInvalidMonth is returned for scope strings that do not parse as
// "YYYY-MM".
var ErrInvalidMonth = errors.New("invalid month")

type Month struct {
	Year  int
	Month time.Month
}

func ParseMonth(monthYear string) (Month, error) {
	parsed, err := time.Parse("2006-01", monthYear)
	if err != nil {
		return Month{}, ErrInvalidMonth
	}
	return Month{Year: parsed.Year(), Month: parsed.Month()}, nil
}

func (m Month) String() string {
	return time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, time.UTC).Format("2006-01")
}

func (m Month) Days() int {
	first := time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, time.UTC)
	return first.AddDate(0, 1, -1).Day()
}

// Range returns the inclusive millisecond bounds of the month in loc:
// the first millisecond of day 1 through 23:59:59.999 of the last day.
// Expense timestamps are recorded in the device's local calendar, so the
// location is part of the contract.
func (m Month) Range(loc *time.Location) (startMillis, endMillis int64) {
	start := time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, loc)
	end := start.AddDate(0, 1, 0).Add(-time.Millisecond)
	return start.UnixMilli(), end.UnixMilli()
}
