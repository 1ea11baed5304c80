package payslip

import (
	"bytes"
	"fmt"
	"time"

	"go-payroll/internal/shared/money"

	"github.com/jung-kurt/gofpdf"
	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

type Settings struct {
	CompanyName string
	Currency    string
}

type Line struct {
	Kind   string
	Label  string
	Amount decimal.Decimal
}

// Document is the printable view of one payroll record.
type Document struct {
	Reference        string
	ProjectID        string
	PeriodStart      time.Time
	PeriodEnd        time.Time
	HoursWorked      decimal.Decimal
	HourlyRate       decimal.Decimal
	TaskPay          decimal.Decimal
	OvertimeHours    decimal.Decimal
	OvertimePay      decimal.Decimal
	ApprovedExpenses decimal.Decimal
	GrossPay         decimal.Decimal
	NetPay           decimal.Decimal
	Status           string
	Lines            []Line
}

type Renderer interface {
	Render(doc Document, settings Settings, employeeName string) ([]byte, error)
}

type pdfRenderer struct{}

func NewPDFRenderer() Renderer {
	return pdfRenderer{}
}

func (pdfRenderer) Render(doc Document, settings Settings, employeeName string) ([]byte, error) {
	currency := settings.Currency
	if currency == "" {
		currency = "USD"
	}
	amount := func(d decimal.Decimal) string {
		return money.String(d) + " " + currency
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Payslip "+doc.Reference, false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	if settings.CompanyName != "" {
		pdf.Cell(0, 10, settings.CompanyName)
		pdf.Ln(10)
	}
	pdf.Cell(0, 10, "Payslip "+doc.Reference)
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 11)
	header := [][2]string{
		{"Employee", employeeName},
		{"Project", doc.ProjectID},
		{"Period", fmt.Sprintf("%s to %s", doc.PeriodStart.Format(dateLayout), doc.PeriodEnd.Format(dateLayout))},
		{"Status", doc.Status},
	}
	for _, row := range header {
		pdf.CellFormat(45, 7, row[0], "", 0, "L", false, 0, "")
		pdf.CellFormat(0, 7, row[1], "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(120, 8, "Earnings", "B", 0, "L", false, 0, "")
	pdf.CellFormat(0, 8, "Amount", "B", 1, "R", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)

	row := func(label string, value decimal.Decimal) {
		pdf.CellFormat(120, 7, label, "", 0, "L", false, 0, "")
		pdf.CellFormat(0, 7, amount(value), "", 1, "R", false, 0, "")
	}

	row(fmt.Sprintf("Task pay (%s h x %s)", money.String(doc.HoursWorked), money.String(doc.HourlyRate)), doc.TaskPay)
	if doc.OvertimePay.IsPositive() {
		row(fmt.Sprintf("Overtime (%s h)", money.String(doc.OvertimeHours)), doc.OvertimePay)
	}
	for _, l := range doc.Lines {
		if l.Kind != "deduction" {
			row(l.Label, l.Amount)
		}
	}
	pdf.SetFont("Helvetica", "B", 11)
	row("Gross pay", doc.GrossPay)
	pdf.SetFont("Helvetica", "", 11)

	for _, l := range doc.Lines {
		if l.Kind == "deduction" {
			row("Deduction: "+l.Label, l.Amount.Neg())
		}
	}
	if doc.ApprovedExpenses.IsPositive() {
		row("Reimbursed expenses", doc.ApprovedExpenses)
	}

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(120, 9, "Net pay", "T", 0, "L", false, 0, "")
	pdf.CellFormat(0, 9, amount(doc.NetPay), "T", 1, "R", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render payslip: %w", err)
	}
	return buf.Bytes(), nil
}
