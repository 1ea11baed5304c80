package analytics

import (
	"go-payroll/internal/payroll"
	"go-payroll/internal/shared/money"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Summary struct {
	TotalAmount   decimal.Decimal
	EmployeeCount int
	AverageSalary decimal.Decimal
}

// ComputeSummary aggregates approved records only. An employee paid on
// several records counts once.
func ComputeSummary(records []payroll.PayrollRecord) Summary {
	employees := make(map[uuid.UUID]struct{})
	nets := make([]decimal.Decimal, 0, len(records))
	for _, r := range records {
		if r.Status != payroll.StatusApproved {
			continue
		}
		nets = append(nets, r.NetPay)
		employees[r.EmployeeID] = struct{}{}
	}

	total := money.Sum(nets...)
	summary := Summary{
		TotalAmount:   total,
		EmployeeCount: len(employees),
		AverageSalary: decimal.Zero,
	}
	if summary.EmployeeCount > 0 {
		summary.AverageSalary = money.Round2(total.Div(decimal.NewFromInt(int64(summary.EmployeeCount))))
	}
	return summary
}
