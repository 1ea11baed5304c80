package payroll_test

import (
	"testing"

	"go-payroll/internal/payroll"
	payrollerrors "go-payroll/internal/payroll/errors"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func assertDecimal(t *testing.T, want string, got decimal.Decimal, msgAndArgs ...any) {
	t.Helper()
	assert.True(t, d(want).Equal(got), append([]any{"want %s, got %s", want, got.String()}, msgAndArgs...)...)
}

func TestCalculateGrossPay(t *testing.T) {
	tests := []struct {
		name     string
		hours    string
		rate     string
		expenses string
		taskPay  string
		gross    string
	}{
		{"whole numbers", "10", "25", "0", "250", "250"},
		{"expenses added", "7.5", "20", "42.10", "150", "192.1"},
		{"rounds task pay", "1.33", "10.555", "0", "14.04", "14.04"},
		{"zero rate", "12", "0", "15", "0", "15"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := payroll.CalculateGrossPay(d(tt.hours), d(tt.rate), d(tt.expenses))
			assertDecimal(t, tt.taskPay, got.TaskPay)
			assertDecimal(t, tt.gross, got.GrossPay)
			assertDecimal(t, tt.expenses, got.ApprovedExpenses)
		})
	}
}

func TestComputeBreakdown(t *testing.T) {
	t.Run("overtime bonus allowance and tax", func(t *testing.T) {
		got, err := payroll.ComputeBreakdown(payroll.BreakdownInput{
			HoursWorked:        d("45"),
			HourlyRate:         d("10"),
			OvertimeThreshold:  d("40"),
			OvertimeMultiplier: d("1.5"),
			TaxRate:            d("0.1"),
			Bonuses:            []payroll.Bonus{{Type: "performance", Amount: d("50")}},
			Allowances:         []payroll.Allowance{{Name: "transport", Amount: d("25")}},
		})
		require.NoError(t, err)

		assertDecimal(t, "400", got.TaskPay)
		assertDecimal(t, "75", got.OvertimePay)
		assertDecimal(t, "525", got.GrossPay)
		assertDecimal(t, "52.5", got.TaxDeduction)
		assertDecimal(t, "472.5", got.NetPay)
		assertDecimal(t, "40", got.RegularHours)
		assertDecimal(t, "5", got.OvertimeHours)

		require.Len(t, got.Deductions, 1)
		assert.Equal(t, payroll.DeductionTypeTax, got.Deductions[0].Type)
	})

	t.Run("tax appended after existing deductions", func(t *testing.T) {
		got, err := payroll.ComputeBreakdown(payroll.BreakdownInput{
			HoursWorked: d("10"),
			HourlyRate:  d("20"),
			TaxRate:     d("0.2"),
			Deductions:  []payroll.Deduction{{Type: "loan", Amount: d("15")}},
		})
		require.NoError(t, err)

		require.Len(t, got.Deductions, 2)
		assert.Equal(t, "loan", got.Deductions[0].Type)
		assert.Equal(t, payroll.DeductionTypeTax, got.Deductions[1].Type)
		assertDecimal(t, "40", got.TaxDeduction)
		assertDecimal(t, "55", got.DeductionTotal)
		assertDecimal(t, "145", got.NetPay)
	})

	t.Run("threshold zero disables split", func(t *testing.T) {
		got, err := payroll.ComputeBreakdown(payroll.BreakdownInput{
			HoursWorked: d("50"),
			HourlyRate:  d("10"),
		})
		require.NoError(t, err)
		assertDecimal(t, "500", got.TaskPay)
		assertDecimal(t, "0", got.OvertimePay)
		assert.Empty(t, got.Deductions)
	})

	t.Run("explicit overtime uses default multiplier", func(t *testing.T) {
		got, err := payroll.ComputeBreakdown(payroll.BreakdownInput{
			HoursWorked:   d("8"),
			HourlyRate:    d("10"),
			OvertimeHours: d("2"),
		})
		require.NoError(t, err)
		assertDecimal(t, "80", got.TaskPay)
		assertDecimal(t, "30", got.OvertimePay)
		assertDecimal(t, "10", got.HoursWorked)
	})

	t.Run("expenses reimbursed untaxed", func(t *testing.T) {
		got, err := payroll.ComputeBreakdown(payroll.BreakdownInput{
			HoursWorked:      d("10"),
			HourlyRate:       d("10"),
			TaxRate:          d("0.1"),
			ApprovedExpenses: d("20"),
		})
		require.NoError(t, err)
		assertDecimal(t, "100", got.GrossPay)
		assertDecimal(t, "10", got.TaxDeduction)
		assertDecimal(t, "110", got.NetPay)
	})

	t.Run("negative amount rejected", func(t *testing.T) {
		_, err := payroll.ComputeBreakdown(payroll.BreakdownInput{
			HoursWorked: d("10"),
			HourlyRate:  d("10"),
			Bonuses:     []payroll.Bonus{{Type: "x", Amount: d("-1")}},
		})
		assert.ErrorIs(t, err, payrollerrors.ErrInvalidMoneyValue)
	})

	t.Run("tax rate above one rejected", func(t *testing.T) {
		_, err := payroll.ComputeBreakdown(payroll.BreakdownInput{TaxRate: d("1.5")})
		assert.ErrorIs(t, err, payrollerrors.ErrInvalidTaxRate)
	})
}
