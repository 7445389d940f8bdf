package period_test

import (
	"testing"
	"time"

	"go-erp/internal/shared/period"

	"github.com/stretchr/testify/assert"
)

func TestDaysInMonth(t *testing.T) {
	assert.Equal(t, 31, period.DaysInMonth(2025, time.January))
	assert.Equal(t, 28, period.DaysInMonth(2025, time.February))
	assert.Equal(t, 29, period.DaysInMonth(2024, time.February)) // leap year
	assert.Equal(t, 30, period.DaysInMonth(2025, time.April))
	assert.Equal(t, 31, period.DaysInMonth(2025, time.December))
}

func TestKeyOfAndString(t *testing.T) {
	k := period.KeyOf(time.Date(2025, time.March, 15, 10, 30, 0, 0, time.UTC))
	assert.Equal(t, period.Key{Year: 2025, Month: time.March}, k)
	assert.Equal(t, "2025-03", k.String())
}

func TestMonthBounds(t *testing.T) {
	start := period.MonthStart(2025, time.February)
	end := period.MonthEnd(2025, time.February)
	assert.Equal(t, "2025-02-01", start.Format(period.DateLayout))
	assert.Equal(t, "2025-02-28", end.Format(period.DateLayout))
}

func TestDayBefore(t *testing.T) {
	got := period.DayBefore(time.Date(2025, time.March, 1, 13, 45, 0, 0, time.UTC))
	assert.Equal(t, "2025-02-28", got.Format(period.DateLayout))
}

func TestParseDate(t *testing.T) {
	d, err := period.ParseDate("2025-07-14")
	assert.NoError(t, err)
	assert.Equal(t, time.Date(2025, time.July, 14, 0, 0, 0, 0, time.UTC), d)

	_, err = period.ParseDate("14/07/2025")
	assert.Error(t, err)
}
