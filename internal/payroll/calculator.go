package payroll

import (
	"time"

	payrollerrors "go-erp/internal/payroll/errors"
	"go-erp/internal/shared/period"

	"github.com/shopspring/decimal"
)

// RestDay is the designated weekly rest day. A rest day is only counted
// absent when it is bridged by absence on both adjacent calendar days.
const RestDay = time.Friday

const defaultContractHoursPerDay = 8

var defaultOvertimeMultiplier = decimal.NewFromFloat(1.5)

// Contract is the employee contract snapshot payroll generation reads.
// A zero OvertimeRateMultiplier combined with a positive OvertimeFixedRate
// selects fixed-rate overtime; otherwise the multiplier applies (1.5 when
// unset).
type Contract struct {
	BasicSalary            decimal.Decimal
	ContractDaysPerMonth   int
	ContractHoursPerDay    int
	OvertimeRateMultiplier decimal.Decimal
	OvertimeFixedRate      decimal.Decimal
	FoodAllowance          decimal.Decimal
	HousingAllowance       decimal.Decimal
	TransportAllowance     decimal.Decimal
}

// DayRecord is one daily time record inside the target month.
type DayRecord struct {
	Date          time.Time
	HoursWorked   decimal.Decimal
	OvertimeHours decimal.Decimal
}

type AttendanceSummary struct {
	AbsentDays         int
	DaysWorked         int
	TotalWorkedHours   decimal.Decimal
	TotalOvertimeHours decimal.Decimal
}

// ClassifyAttendance walks every calendar day of the month and classifies it
// as present or absent. A day is present when its record carries worked or
// overtime hours. The rest day is never penalized while it sits inside an
// active workweek: it only counts absent when both neighbouring days are
// absent too. Neighbours outside the month have no record and therefore
// count as absent.
func ClassifyAttendance(year int, month time.Month, records []DayRecord) AttendanceSummary {
	sum := AttendanceSummary{
		TotalWorkedHours:   decimal.Zero,
		TotalOvertimeHours: decimal.Zero,
	}

	byDay := make(map[int]DayRecord, len(records))
	for _, rec := range records {
		if rec.Date.Year() != year || rec.Date.Month() != month {
			continue
		}
		byDay[rec.Date.Day()] = rec
		sum.TotalWorkedHours = sum.TotalWorkedHours.Add(rec.HoursWorked)
		sum.TotalOvertimeHours = sum.TotalOvertimeHours.Add(rec.OvertimeHours)
		if rec.HoursWorked.IsPositive() {
			sum.DaysWorked++
		}
	}

	hasHours := func(day int) bool {
		rec, ok := byDay[day]
		return ok && (rec.HoursWorked.IsPositive() || rec.OvertimeHours.IsPositive())
	}

	daysInMonth := period.DaysInMonth(year, month)
	for day := 1; day <= daysInMonth; day++ {
		date := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)

		if date.Weekday() != RestDay {
			if !hasHours(day) {
				sum.AbsentDays++
			}
			continue
		}

		if hasHours(day) {
			continue
		}
		if !hasHours(day-1) && !hasHours(day+1) {
			sum.AbsentDays++
		}
	}

	return sum
}

// Breakdown is the normalized result of one employee-month calculation.
// Amounts stay unrounded; rounding happens at serialization.
type Breakdown struct {
	HourlyRate          decimal.Decimal
	OvertimeAmount      decimal.Decimal
	UsedFixedRate       bool
	OvertimeMultiplier  decimal.Decimal
	AbsenceDeduction    decimal.Decimal
	ShortHoursDeduction decimal.Decimal
	DeductionAmount     decimal.Decimal
	TotalAllowances     decimal.Decimal
	BonusAmount         decimal.Decimal
	FinalAmount         decimal.Decimal
}

// Calculate resolves overtime pay, absence and short-hours deductions, and
// the final payable amount for one employee-month.
func Calculate(contract Contract, att AttendanceSummary, daysInMonth int) (Breakdown, error) {
	hoursPerDay := contract.ContractHoursPerDay
	if hoursPerDay == 0 {
		hoursPerDay = defaultContractHoursPerDay
	}
	if daysInMonth <= 0 || hoursPerDay < 0 {
		return Breakdown{}, payrollerrors.ErrZeroDivisor
	}

	b := Breakdown{
		OvertimeAmount:      decimal.Zero,
		AbsenceDeduction:    decimal.Zero,
		ShortHoursDeduction: decimal.Zero,
		BonusAmount:         decimal.Zero,
	}

	days := decimal.NewFromInt(int64(daysInMonth))
	b.HourlyRate = contract.BasicSalary.Div(days.Mul(decimal.NewFromInt(int64(hoursPerDay))))

	if att.TotalOvertimeHours.IsPositive() {
		multiplier := contract.OvertimeRateMultiplier
		if multiplier.IsZero() && contract.OvertimeFixedRate.IsPositive() {
			b.UsedFixedRate = true
			b.OvertimeAmount = att.TotalOvertimeHours.Mul(contract.OvertimeFixedRate)
		} else {
			if multiplier.IsZero() {
				multiplier = defaultOvertimeMultiplier
			}
			b.OvertimeMultiplier = multiplier
			b.OvertimeAmount = att.TotalOvertimeHours.Mul(b.HourlyRate).Mul(multiplier)
		}
	}

	if att.AbsentDays > 0 {
		b.AbsenceDeduction = contract.BasicSalary.Div(days).Mul(decimal.NewFromInt(int64(att.AbsentDays)))
	}

	expectedHours := decimal.NewFromInt(int64(att.DaysWorked * hoursPerDay))
	if att.TotalWorkedHours.LessThan(expectedHours) {
		b.ShortHoursDeduction = expectedHours.Sub(att.TotalWorkedHours).Mul(b.HourlyRate)
	}

	b.DeductionAmount = b.AbsenceDeduction.Add(b.ShortHoursDeduction)
	b.TotalAllowances = contract.FoodAllowance.Add(contract.HousingAllowance).Add(contract.TransportAllowance)
	b.FinalAmount = contract.BasicSalary.
		Add(b.TotalAllowances).
		Add(b.OvertimeAmount).
		Add(b.BonusAmount).
		Sub(b.DeductionAmount)

	return b, nil
}
