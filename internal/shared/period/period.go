// Package period holds the calendar-month arithmetic shared by payroll
// generation and assignment bookkeeping.
package period

import (
	"fmt"
	"time"
)

const (
	MinYear = 2020
	MaxYear = 2030

	DateLayout = "2006-01-02"
)

// Key identifies one payroll month for one employee-independent period.
type Key struct {
	Year  int
	Month time.Month
}

func KeyOf(t time.Time) Key {
	return Key{Year: t.Year(), Month: t.Month()}
}

func (k Key) String() string {
	return fmt.Sprintf("%04d-%02d", k.Year, int(k.Month))
}

// DaysInMonth returns the number of calendar days in the given month.
func DaysInMonth(year int, month time.Month) int {
	// Day 0 of the next month is the last day of this month.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func MonthStart(year int, month time.Month) time.Time {
	return time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
}

func MonthEnd(year int, month time.Month) time.Time {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC)
}

func ParseDate(v string) (time.Time, error) {
	t, err := time.Parse(DateLayout, v)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date format, expected YYYY-MM-DD")
	}
	return t, nil
}

// DayBefore returns the calendar day preceding t, time-of-day stripped.
func DayBefore(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, -1)
}

// Truncate strips the time-of-day component.
func Truncate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
