package payroll

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type LineItemKind string

const (
	KindBonus     LineItemKind = "bonus"
	KindAllowance LineItemKind = "allowance"
	KindDeduction LineItemKind = "deduction"

	DeductionTypeTax = "tax"
)

// Bonus, Allowance and Deduction each carry only the fields their kind needs.
// They are flattened into PayrollLineItem rows at the persistence boundary.
type Bonus struct {
	Type   string
	Reason string
	Amount decimal.Decimal
}

type Allowance struct {
	Name   string
	Amount decimal.Decimal
}

type Deduction struct {
	Type   string
	Amount decimal.Decimal
}

func sumBonuses(items []Bonus) decimal.Decimal {
	amounts := make([]decimal.Decimal, len(items))
	for i, b := range items {
		amounts[i] = b.Amount
	}
	return sumRounded(amounts)
}

func sumAllowances(items []Allowance) decimal.Decimal {
	amounts := make([]decimal.Decimal, len(items))
	for i, a := range items {
		amounts[i] = a.Amount
	}
	return sumRounded(amounts)
}

func sumDeductions(items []Deduction) decimal.Decimal {
	amounts := make([]decimal.Decimal, len(items))
	for i, d := range items {
		amounts[i] = d.Amount
	}
	return sumRounded(amounts)
}

func toLineItems(organizationID, payrollID uuid.UUID, bonuses []Bonus, allowances []Allowance, deductions []Deduction) []PayrollLineItem {
	items := make([]PayrollLineItem, 0, len(bonuses)+len(allowances)+len(deductions))
	pos := 0
	add := func(kind LineItemKind, label string, reason *string, amount decimal.Decimal) {
		items = append(items, PayrollLineItem{
			ID:             uuid.New(),
			PayrollID:      payrollID,
			OrganizationID: organizationID,
			Kind:           kind,
			Label:          label,
			Reason:         reason,
			Amount:         round2(amount),
			Position:       pos,
		})
		pos++
	}

	for _, b := range bonuses {
		var reason *string
		if b.Reason != "" {
			r := b.Reason
			reason = &r
		}
		add(KindBonus, b.Type, reason, b.Amount)
	}
	for _, a := range allowances {
		add(KindAllowance, a.Name, nil, a.Amount)
	}
	for _, d := range deductions {
		add(KindDeduction, d.Type, nil, d.Amount)
	}
	return items
}

func splitLineItems(items []PayrollLineItem) ([]Bonus, []Allowance, []Deduction) {
	var (
		bonuses    []Bonus
		allowances []Allowance
		deductions []Deduction
	)
	for _, item := range items {
		switch item.Kind {
		case KindBonus:
			b := Bonus{Type: item.Label, Amount: item.Amount}
			if item.Reason != nil {
				b.Reason = *item.Reason
			}
			bonuses = append(bonuses, b)
		case KindAllowance:
			allowances = append(allowances, Allowance{Name: item.Label, Amount: item.Amount})
		case KindDeduction:
			deductions = append(deductions, Deduction{Type: item.Label, Amount: item.Amount})
		}
	}
	return bonuses, allowances, deductions
}
