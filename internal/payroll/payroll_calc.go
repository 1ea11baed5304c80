package payroll

import (
	"go-payroll/internal/shared/money"

	"github.com/shopspring/decimal"

	payrollerrors "go-payroll/internal/payroll/errors"
)

// DefaultOvertimeMultiplier applies when a policy leaves the multiplier unset.
var DefaultOvertimeMultiplier = decimal.RequireFromString("1.5")

func round2(d decimal.Decimal) decimal.Decimal {
	return money.Round2(d)
}

func sumRounded(amounts []decimal.Decimal) decimal.Decimal {
	return money.Sum(amounts...)
}

type GrossPay struct {
	HoursWorked      decimal.Decimal
	TaskPay          decimal.Decimal
	ApprovedExpenses decimal.Decimal
	GrossPay         decimal.Decimal
}

// CalculateGrossPay is the base formula used by the batch run: task pay plus
// reimbursed expenses, no overtime split and no deductions.
func CalculateGrossPay(hours, rate, expenses decimal.Decimal) GrossPay {
	taskPay := round2(hours.Mul(rate))
	expenses = round2(expenses)
	return GrossPay{
		HoursWorked:      round2(hours),
		TaskPay:          taskPay,
		ApprovedExpenses: expenses,
		GrossPay:         round2(taskPay.Add(expenses)),
	}
}

type BreakdownInput struct {
	HoursWorked decimal.Decimal
	HourlyRate  decimal.Decimal
	// OvertimeHours is overtime recorded outside HoursWorked. It is paid at
	// the overtime multiplier in addition to any split above the threshold.
	OvertimeHours decimal.Decimal
	// OvertimeThreshold <= 0 disables the split.
	OvertimeThreshold  decimal.Decimal
	OvertimeMultiplier decimal.Decimal
	TaxRate            decimal.Decimal
	ApprovedExpenses   decimal.Decimal
	Deductions         []Deduction
	Bonuses            []Bonus
	Allowances         []Allowance
}

type Breakdown struct {
	HoursWorked      decimal.Decimal
	RegularHours     decimal.Decimal
	OvertimeHours    decimal.Decimal
	HourlyRate       decimal.Decimal
	TaskPay          decimal.Decimal
	OvertimePay      decimal.Decimal
	BonusTotal       decimal.Decimal
	AllowanceTotal   decimal.Decimal
	GrossPay         decimal.Decimal
	TaxDeduction     decimal.Decimal
	DeductionTotal   decimal.Decimal
	ApprovedExpenses decimal.Decimal
	NetPay           decimal.Decimal
	Bonuses          []Bonus
	Allowances       []Allowance
	// Deductions holds the input deductions followed by the tax deduction.
	Deductions []Deduction
}

// ComputeBreakdown applies overtime, bonuses, allowances and a flat tax.
// Every sub-total is rounded to cents before it is summed.
func ComputeBreakdown(in BreakdownInput) (Breakdown, error) {
	if err := validateBreakdownInput(in); err != nil {
		return Breakdown{}, err
	}

	multiplier := in.OvertimeMultiplier
	if multiplier.IsZero() {
		multiplier = DefaultOvertimeMultiplier
	}

	regular := in.HoursWorked
	overtime := in.OvertimeHours
	if in.OvertimeThreshold.IsPositive() && in.HoursWorked.GreaterThan(in.OvertimeThreshold) {
		regular = in.OvertimeThreshold
		overtime = overtime.Add(in.HoursWorked.Sub(in.OvertimeThreshold))
	}

	taskPay := round2(regular.Mul(in.HourlyRate))
	overtimePay := round2(overtime.Mul(in.HourlyRate).Mul(multiplier))
	bonusTotal := sumBonuses(in.Bonuses)
	allowanceTotal := sumAllowances(in.Allowances)
	gross := sumRounded([]decimal.Decimal{taskPay, overtimePay, bonusTotal, allowanceTotal})

	tax := round2(gross.Mul(in.TaxRate))
	deductions := make([]Deduction, 0, len(in.Deductions)+1)
	deductions = append(deductions, in.Deductions...)
	if tax.IsPositive() {
		deductions = append(deductions, Deduction{Type: DeductionTypeTax, Amount: tax})
	}
	deductionTotal := sumDeductions(deductions)
	expenses := round2(in.ApprovedExpenses)

	return Breakdown{
		HoursWorked:      round2(in.HoursWorked.Add(in.OvertimeHours)),
		RegularHours:     round2(regular),
		OvertimeHours:    round2(overtime),
		HourlyRate:       round2(in.HourlyRate),
		TaskPay:          taskPay,
		OvertimePay:      overtimePay,
		BonusTotal:       bonusTotal,
		AllowanceTotal:   allowanceTotal,
		GrossPay:         gross,
		TaxDeduction:     tax,
		DeductionTotal:   deductionTotal,
		ApprovedExpenses: expenses,
		NetPay:           round2(gross.Sub(deductionTotal).Add(expenses)),
		Bonuses:          in.Bonuses,
		Allowances:       in.Allowances,
		Deductions:       deductions,
	}, nil
}

func validateBreakdownInput(in BreakdownInput) error {
	for _, v := range []decimal.Decimal{
		in.HoursWorked, in.HourlyRate, in.OvertimeHours, in.OvertimeThreshold,
		in.OvertimeMultiplier, in.TaxRate, in.ApprovedExpenses,
	} {
		if v.IsNegative() {
			return payrollerrors.ErrInvalidMoneyValue
		}
	}
	if in.TaxRate.GreaterThan(decimal.NewFromInt(1)) {
		return payrollerrors.ErrInvalidTaxRate
	}
	for _, b := range in.Bonuses {
		if b.Amount.IsNegative() {
			return payrollerrors.ErrInvalidMoneyValue
		}
	}
	for _, a := range in.Allowances {
		if a.Amount.IsNegative() {
			return payrollerrors.ErrInvalidMoneyValue
		}
	}
	for _, d := range in.Deductions {
		if d.Amount.IsNegative() {
			return payrollerrors.ErrInvalidMoneyValue
		}
	}
	return nil
}
