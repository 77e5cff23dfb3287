package metrics

import (
	"github.com/shopspring/decimal"
)

// IdealHourlyRate returns budget divided by the total planned hours, rounded
// to two decimal places. A zero-hours plan yields a zero rate rather than a
// division error.
func IdealHourlyRate(budget decimal.Decimal, totalHoursPlanned float64) decimal.Decimal {
	if totalHoursPlanned == 0 {
		return decimal.Zero
	}

	return budget.Div(decimal.NewFromFloat(totalHoursPlanned)).Round(2)
}

// IndividualSalary returns hoursWorked times the hourly rate, rounded to two
// decimal places. The calculation is linear in hours, so splitting a
// contributor's hours across calls and summing gives the same total.
func IndividualSalary(hoursWorked float64, hourlyRate decimal.Decimal) decimal.Decimal {
	if hoursWorked == 0 {
		return decimal.Zero
	}

	return hourlyRate.Mul(decimal.NewFromFloat(hoursWorked)).Round(2)
}
