package payroll

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeBreakdown(t *testing.T) {
	t.Run("standard month", func(t *testing.T) {
		bd := ComputeBreakdown(4800, 160, 2)

		assert.Equal(t, 30.0, bd.HourlyRate)
		assert.Equal(t, 16.0, bd.LeaveHours)
		assert.Equal(t, 480.0, bd.LeaveDeduction)
		assert.Equal(t, 4320.0, bd.NetPay)
	})

	t.Run("senior salary, two leave days", func(t *testing.T) {
		bd := ComputeBreakdown(16000, 160, 2)

		assert.Equal(t, 100.0, bd.HourlyRate)
		assert.Equal(t, 16.0, bd.LeaveHours)
		assert.Equal(t, 1600.0, bd.LeaveDeduction)
		assert.Equal(t, 14400.0, bd.NetPay)
	})

	t.Run("no leave means full pay", func(t *testing.T) {
		bd := ComputeBreakdown(5200, 160, 0)

		assert.Equal(t, 0.0, bd.LeaveHours)
		assert.Equal(t, 0.0, bd.LeaveDeduction)
		assert.Equal(t, 5200.0, bd.NetPay)
	})

	t.Run("zero hours worked yields zero rate, not a division error", func(t *testing.T) {
		bd := ComputeBreakdown(4800, 0, 3)

		assert.Equal(t, 0.0, bd.HourlyRate)
		assert.Equal(t, 24.0, bd.LeaveHours)
		assert.Equal(t, 0.0, bd.LeaveDeduction)
		assert.Equal(t, 4800.0, bd.NetPay)
	})

	t.Run("negative hours treated like zero", func(t *testing.T) {
		bd := ComputeBreakdown(4800, -10, 1)

		assert.Equal(t, 0.0, bd.HourlyRate)
		assert.Equal(t, 0.0, bd.LeaveDeduction)
		assert.Equal(t, 4800.0, bd.NetPay)
	})

	t.Run("heavy leave can push net pay negative", func(t *testing.T) {
		bd := ComputeBreakdown(1600, 40, 10)

		// 40/h rate, 80 leave hours: deduction exceeds the salary.
		assert.Equal(t, 40.0, bd.HourlyRate)
		assert.Equal(t, 3200.0, bd.LeaveDeduction)
		assert.Equal(t, -1600.0, bd.NetPay)
	})

	t.Run("monetary outputs rounded to cents", func(t *testing.T) {
		bd := ComputeBreakdown(5000, 157, 1)

		assert.Equal(t, 31.85, bd.HourlyRate)
		assert.Equal(t, 254.78, bd.LeaveDeduction)
		assert.Equal(t, 4745.22, bd.NetPay)
	})

	t.Run("deduction and net derive from the unrounded rate", func(t *testing.T) {
		// 1000/3 = 333.333...; three leave days = 24h.
		bd := ComputeBreakdown(1000, 3, 3)

		assert.Equal(t, 333.33, bd.HourlyRate)
		assert.Equal(t, 8000.0, bd.LeaveDeduction)
		assert.Equal(t, -7000.0, bd.NetPay)
	})
}
