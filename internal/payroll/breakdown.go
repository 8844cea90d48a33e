package payroll

import "math"

// HoursPerLeaveDay converts whole leave days into deductible hours.
const HoursPerLeaveDay = 8

type Breakdown struct {
	HourlyRate     float64 `json:"hourly_rate"`
	LeaveHours     float64 `json:"leave_hours"`
	LeaveDeduction float64 `json:"leave_deduction"`
	NetPay         float64 `json:"net_pay"`
}

// ComputeBreakdown derives the pay figures from a payroll row. Zero or
// negative hours worked yield a zero hourly rate rather than dividing by
// zero, which also zeroes the deduction.
func ComputeBreakdown(finalSalary, hoursWorked float64, leaveDeductionDays int) Breakdown {
	var hourlyRate float64
	if hoursWorked > 0 {
		hourlyRate = finalSalary / hoursWorked
	}

	leaveHours := float64(leaveDeductionDays) * HoursPerLeaveDay
	deduction := hourlyRate * leaveHours

	return Breakdown{
		HourlyRate:     round2(hourlyRate),
		LeaveHours:     leaveHours,
		LeaveDeduction: round2(deduction),
		NetPay:         round2(finalSalary - deduction),
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
