package payslip_test

import (
	"bytes"
	"context"
	"io"
	"testing"
	"time"

	"go-payroll/internal/payslip"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPDFRenderer_Render(t *testing.T) {
	doc := payslip.Document{
		Reference:        "PAY-000001",
		ProjectID:        "c1f0a4c2-2b1c-4a53-9d8f-0b9f3f8d1e11",
		PeriodStart:      time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC),
		PeriodEnd:        time.Date(2025, 7, 31, 0, 0, 0, 0, time.UTC),
		HoursWorked:      decimal.RequireFromString("45"),
		HourlyRate:       decimal.RequireFromString("10"),
		TaskPay:          decimal.RequireFromString("400"),
		OvertimeHours:    decimal.RequireFromString("5"),
		OvertimePay:      decimal.RequireFromString("75"),
		ApprovedExpenses: decimal.Zero,
		GrossPay:         decimal.RequireFromString("525"),
		NetPay:           decimal.RequireFromString("472.5"),
		Status:           "approved",
		Lines: []payslip.Line{
			{Kind: "bonus", Label: "performance", Amount: decimal.RequireFromString("50")},
			{Kind: "allowance", Label: "transport", Amount: decimal.RequireFromString("25")},
			{Kind: "deduction", Label: "tax", Amount: decimal.RequireFromString("52.5")},
		},
	}

	out, err := payslip.NewPDFRenderer().Render(doc, payslip.Settings{CompanyName: "Acme"}, "Jane Doe")
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestLocalStorage(t *testing.T) {
	ctx := context.Background()
	store, err := payslip.NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	t.Run("save and open", func(t *testing.T) {
		key, err := store.Save(ctx, "org/2025/PAY-000001.pdf", []byte("%PDF-1.3"))
		require.NoError(t, err)
		assert.Equal(t, "org/2025/PAY-000001.pdf", key)

		rc, err := store.Open(ctx, key)
		require.NoError(t, err)
		defer rc.Close()
		got, err := io.ReadAll(rc)
		require.NoError(t, err)
		assert.Equal(t, "%PDF-1.3", string(got))
	})

	t.Run("rejects traversal", func(t *testing.T) {
		_, err := store.Save(ctx, "../../etc/passwd", []byte("x"))
		assert.Error(t, err)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := store.Open(ctx, "nope.pdf")
		assert.Error(t, err)
	})
}
