package payroll_test

import (
	"testing"
	"time"

	"go-erp/internal/payroll"
	payrollerrors "go-erp/internal/payroll/errors"
	"go-erp/internal/shared/period"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

var eightHours = decimal.NewFromInt(8)

// fullMonth returns one eight-hour record per working day, leaving Fridays
// and the listed days without a record.
func fullMonth(year int, month time.Month, skipDays ...int) []payroll.DayRecord {
	skip := make(map[int]bool, len(skipDays))
	for _, d := range skipDays {
		skip[d] = true
	}

	var records []payroll.DayRecord
	for day := 1; day <= period.DaysInMonth(year, month); day++ {
		date := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
		if date.Weekday() == payroll.RestDay || skip[day] {
			continue
		}
		records = append(records, payroll.DayRecord{Date: date, HoursWorked: eightHours})
	}
	return records
}

func TestClassifyAttendance_FullMonthHasNoAbsences(t *testing.T) {
	// July 2025: Fridays fall on 4, 11, 18, 25.
	att := payroll.ClassifyAttendance(2025, time.July, fullMonth(2025, time.July))

	assert.Equal(t, 0, att.AbsentDays)
	assert.Equal(t, 27, att.DaysWorked)
	assert.True(t, att.TotalWorkedHours.Equal(decimal.NewFromInt(27*8)))
}

func TestClassifyAttendance_RestDayBridgedByAbsences(t *testing.T) {
	// Thursday 3rd, Friday 4th and Saturday 5th all empty: the rest day is
	// inside an absence stretch and counts absent too.
	att := payroll.ClassifyAttendance(2025, time.July, fullMonth(2025, time.July, 3, 5))

	assert.Equal(t, 3, att.AbsentDays)
}

func TestClassifyAttendance_RestDayNextToWorkedDayIsNotAbsent(t *testing.T) {
	// Thursday 3rd was worked, Saturday 5th was not: only the Saturday
	// counts, the Friday in between stays unpenalized.
	att := payroll.ClassifyAttendance(2025, time.July, fullMonth(2025, time.July, 5))

	assert.Equal(t, 1, att.AbsentDays)
}

func TestClassifyAttendance_WorkedRestDayNeverCountsAbsent(t *testing.T) {
	records := fullMonth(2025, time.July, 3, 5)
	records = append(records, payroll.DayRecord{
		Date:        time.Date(2025, time.July, 4, 0, 0, 0, 0, time.UTC),
		HoursWorked: eightHours,
	})

	att := payroll.ClassifyAttendance(2025, time.July, records)

	// Both neighbours are absent but the Friday itself was worked.
	assert.Equal(t, 2, att.AbsentDays)
}

func TestClassifyAttendance_MonthBoundaryNeighbourCountsAbsent(t *testing.T) {
	// August 2025 starts on a Friday. The previous day has no in-month
	// record, so only the 2nd decides whether the 1st is bridged.
	att := payroll.ClassifyAttendance(2025, time.August, fullMonth(2025, time.August, 2))
	assert.Equal(t, 2, att.AbsentDays)

	att = payroll.ClassifyAttendance(2025, time.August, fullMonth(2025, time.August))
	assert.Equal(t, 0, att.AbsentDays)
}

func TestClassifyAttendance_IgnoresRecordsOutsideMonth(t *testing.T) {
	records := fullMonth(2025, time.July)
	records = append(records, payroll.DayRecord{
		Date:        time.Date(2025, time.June, 30, 0, 0, 0, 0, time.UTC),
		HoursWorked: eightHours,
	})

	att := payroll.ClassifyAttendance(2025, time.July, records)

	assert.Equal(t, 27, att.DaysWorked)
	assert.True(t, att.TotalWorkedHours.Equal(decimal.NewFromInt(27*8)))
}

func TestCalculate_AbsenceDeduction(t *testing.T) {
	contract := payroll.Contract{
		BasicSalary:         decimal.NewFromInt(3000),
		ContractHoursPerDay: 8,
		FoodAllowance:       decimal.NewFromInt(300),
		HousingAllowance:    decimal.NewFromInt(500),
		TransportAllowance:  decimal.NewFromInt(200),
	}
	att := payroll.AttendanceSummary{
		AbsentDays:         2,
		DaysWorked:         20,
		TotalWorkedHours:   decimal.NewFromInt(160),
		TotalOvertimeHours: decimal.Zero,
	}

	b, err := payroll.Calculate(contract, att, 30)

	assert.NoError(t, err)
	assert.True(t, b.AbsenceDeduction.Equal(decimal.NewFromInt(200)), b.AbsenceDeduction.String())
	assert.True(t, b.ShortHoursDeduction.IsZero())
	assert.True(t, b.OvertimeAmount.IsZero())
	// 3000 + 1000 allowances - 200 absence deduction
	assert.True(t, b.FinalAmount.Equal(decimal.NewFromInt(3800)), b.FinalAmount.String())
}

func TestCalculate_ShortHoursDeduction(t *testing.T) {
	contract := payroll.Contract{
		BasicSalary:         decimal.NewFromInt(2400),
		ContractHoursPerDay: 8,
	}
	att := payroll.AttendanceSummary{
		DaysWorked:       20,
		TotalWorkedHours: decimal.NewFromInt(150),
	}

	b, err := payroll.Calculate(contract, att, 30)

	assert.NoError(t, err)
	// hourly rate 2400/(30*8)=10; shortfall 160-150=10 hours
	assert.True(t, b.HourlyRate.Equal(decimal.NewFromInt(10)))
	assert.True(t, b.ShortHoursDeduction.Equal(decimal.NewFromInt(100)), b.ShortHoursDeduction.String())
	assert.True(t, b.FinalAmount.Equal(decimal.NewFromInt(2300)), b.FinalAmount.String())
}

func TestCalculate_OvertimeRateSelection(t *testing.T) {
	// hourly rate is 10 with this contract, overtime is 4 hours
	base := payroll.Contract{
		BasicSalary:         decimal.NewFromInt(2400),
		ContractHoursPerDay: 8,
	}
	att := payroll.AttendanceSummary{
		DaysWorked:         20,
		TotalWorkedHours:   decimal.NewFromInt(160),
		TotalOvertimeHours: decimal.NewFromInt(4),
	}

	cases := []struct {
		name          string
		multiplier    string
		fixedRate     string
		wantAmount    string
		wantFixedRate bool
	}{
		{"zero multiplier and no fixed rate defaults to 1.5x", "0", "0", "60", false},
		{"zero multiplier with fixed rate uses the fixed rate", "0", "25", "100", true},
		{"multiplier 1 without fixed rate", "1", "0", "40", false},
		{"multiplier 1 beats a configured fixed rate", "1", "25", "40", false},
		{"multiplier 1.5 without fixed rate", "1.5", "0", "60", false},
		{"multiplier 1.5 beats a configured fixed rate", "1.5", "25", "60", false},
		{"multiplier 2 without fixed rate", "2", "0", "80", false},
		{"multiplier 2 beats a configured fixed rate", "2", "25", "80", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			contract := base
			contract.OvertimeRateMultiplier = decimal.RequireFromString(tc.multiplier)
			contract.OvertimeFixedRate = decimal.RequireFromString(tc.fixedRate)

			b, err := payroll.Calculate(contract, att, 30)

			assert.NoError(t, err)
			assert.Equal(t, tc.wantFixedRate, b.UsedFixedRate)
			assert.True(t, b.OvertimeAmount.Equal(decimal.RequireFromString(tc.wantAmount)),
				"got %s", b.OvertimeAmount.String())
		})
	}
}

func TestCalculate_FinalAmountRecomposesFromComponents(t *testing.T) {
	contract := payroll.Contract{
		BasicSalary:            decimal.NewFromInt(5250),
		ContractHoursPerDay:    8,
		OvertimeRateMultiplier: decimal.NewFromInt(2),
		FoodAllowance:          decimal.RequireFromString("312.50"),
		HousingAllowance:       decimal.NewFromInt(900),
	}
	att := payroll.AttendanceSummary{
		AbsentDays:         3,
		DaysWorked:         18,
		TotalWorkedHours:   decimal.RequireFromString("141.25"),
		TotalOvertimeHours: decimal.RequireFromString("6.5"),
	}

	b, err := payroll.Calculate(contract, att, 31)

	assert.NoError(t, err)
	recomposed := contract.BasicSalary.
		Add(b.TotalAllowances).
		Add(b.OvertimeAmount).
		Add(b.BonusAmount).
		Sub(b.AbsenceDeduction).
		Sub(b.ShortHoursDeduction)
	assert.True(t, b.FinalAmount.Equal(recomposed), b.FinalAmount.String())
}

func TestCalculate_ZeroHoursPerDayDefaultsToEight(t *testing.T) {
	contract := payroll.Contract{BasicSalary: decimal.NewFromInt(2400)}
	att := payroll.AttendanceSummary{DaysWorked: 20, TotalWorkedHours: decimal.NewFromInt(160)}

	b, err := payroll.Calculate(contract, att, 30)

	assert.NoError(t, err)
	assert.True(t, b.HourlyRate.Equal(decimal.NewFromInt(10)))
}

func TestCalculate_InvalidDivisor(t *testing.T) {
	contract := payroll.Contract{BasicSalary: decimal.NewFromInt(2400), ContractHoursPerDay: 8}

	_, err := payroll.Calculate(contract, payroll.AttendanceSummary{}, 0)

	assert.ErrorIs(t, err, payrollerrors.ErrZeroDivisor)
}
