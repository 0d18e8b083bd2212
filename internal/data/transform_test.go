package data

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mining-finance-dashboard/internal/types"
)

func decodeWireIncome(t *testing.T, raw string) wireIncome {
	t.Helper()
	var w wireIncome
	require.NoError(t, json.Unmarshal([]byte(raw), &w))
	return w
}

const fullIncomeJSON = `{
	"id": 5,
	"date": "2025-03-14",
	"mineral_type": "gold",
	"quantity": 12.5,
	"unit": "kg",
	"price_per_unit": 80,
	"total_amount": 1000,
	"customer_name": "Kasai Traders",
	"customer_contact": "+243 555 0101",
	"payment_status": "partial",
	"amount_paid": 400,
	"amount_due": 600,
	"notes": "second delivery",
	"user_id": 9,
	"created_at": "2025-03-14T08:30:00Z"
}`

func TestTransformIncome(t *testing.T) {
	in, err := transformIncome(decodeWireIncome(t, fullIncomeJSON))
	require.NoError(t, err)

	assert.Equal(t, "5", in.ID)
	assert.Equal(t, time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC), in.Date)
	assert.Equal(t, types.MineralGold, in.MineralType)
	assert.Equal(t, 12.5, in.Quantity)
	assert.Equal(t, 1000.0, in.TotalAmount)
	assert.Equal(t, "9", in.UserID)
	assert.Equal(t, 2025, in.CreatedAt.Year())
}

func TestIdentifierResolution(t *testing.T) {
	// The backend emits ids as numbers or strings, under "id" or "ID". All
	// four variants must land as the string "5".
	variants := []string{
		`{"id": 5}`,
		`{"ID": 5}`,
		`{"id": "5"}`,
		`{"ID": "5"}`,
	}
	for _, raw := range variants {
		var w wireIncome
		require.NoError(t, json.Unmarshal([]byte(raw), &w), raw)
		assert.Equal(t, "5", w.ID.String(), raw)
	}
}

func TestMissingUserIDDefaultsToEmpty(t *testing.T) {
	raw := `{"date":"2025-01-01","quantity":1,"price_per_unit":1,"total_amount":1,"amount_paid":0,"amount_due":1}`
	in, err := transformIncome(decodeWireIncome(t, raw))
	require.NoError(t, err)
	assert.Equal(t, "", in.UserID)
}

func TestAmountDueInvariant(t *testing.T) {
	// amountDue == total - amountPaid for any backend-supplied pair.
	pairs := []struct{ total, paid float64 }{
		{1000, 400},
		{250.75, 0},
		{99.99, 99.99},
	}
	for _, p := range pairs {
		w := wireIncome{
			Date:         ptr("2025-06-01"),
			Quantity:     ptr(1.0),
			PricePerUnit: ptr(p.total),
			TotalAmount:  ptr(p.total),
			AmountPaid:   ptr(p.paid),
			AmountDue:    ptr(p.total - p.paid),
		}
		in, err := transformIncome(w)
		require.NoError(t, err)
		assert.InDelta(t, in.TotalAmount-in.AmountPaid, in.AmountDue, 1e-9)
	}
}

func TestIncomeRoundTrip(t *testing.T) {
	original := types.Income{
		Date:            time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC),
		MineralType:     types.MineralCopper,
		Quantity:        40,
		Unit:            "t",
		PricePerUnit:    25,
		CustomerName:    "Kolwezi Metals",
		CustomerContact: "km@example.com",
		PaymentStatus:   types.PaymentUnpaid,
		AmountPaid:      0,
		Notes:           "spot sale",
	}

	// Domain -> wire request, then simulate the server echo: derived fields
	// filled in, snake_case JSON back through the read path.
	req := incomeToWire(original)
	assert.Equal(t, "2025-03-14", req.Date)
	assert.Equal(t, "copper", req.MineralType)
	assert.Equal(t, 0.0, req.AmountPaid)

	echo := map[string]any{
		"id":               11,
		"date":             req.Date,
		"mineral_type":     req.MineralType,
		"quantity":         req.Quantity,
		"unit":             req.Unit,
		"price_per_unit":   req.PricePerUnit,
		"total_amount":     req.Quantity * req.PricePerUnit,
		"customer_name":    req.CustomerName,
		"customer_contact": req.CustomerContact,
		"payment_status":   req.PaymentStatus,
		"amount_paid":      req.AmountPaid,
		"amount_due":       req.Quantity*req.PricePerUnit - req.AmountPaid,
		"notes":            req.Notes,
		"user_id":          9,
		"created_at":       "2025-03-14T09:00:00Z",
	}
	raw, err := json.Marshal(echo)
	require.NoError(t, err)

	got, err := transformIncome(decodeWireIncome(t, string(raw)))
	require.NoError(t, err)

	// Equivalent except server-assigned fields.
	assert.Equal(t, original.Date, got.Date)
	assert.Equal(t, original.MineralType, got.MineralType)
	assert.Equal(t, original.Quantity, got.Quantity)
	assert.Equal(t, original.Unit, got.Unit)
	assert.Equal(t, original.PricePerUnit, got.PricePerUnit)
	assert.Equal(t, original.CustomerName, got.CustomerName)
	assert.Equal(t, original.PaymentStatus, got.PaymentStatus)
	assert.Equal(t, original.Notes, got.Notes)
	assert.Equal(t, 1000.0, got.TotalAmount)
	assert.Equal(t, "11", got.ID)
}

func TestTransformIncomeMissingFieldFailsTyped(t *testing.T) {
	raw := `{"id":1,"date":"2025-01-01","quantity":2,"price_per_unit":3,"total_amount":6,"amount_paid":1}`
	_, err := transformIncome(decodeWireIncome(t, raw))
	require.Error(t, err)

	var decodeErr *DecodeError
	require.ErrorAs(t, err, &decodeErr)
	assert.Equal(t, "income", decodeErr.Entity)
	assert.Equal(t, "amount_due", decodeErr.Field)
}

func TestTransformIncomeBadDateFailsTyped(t *testing.T) {
	raw := `{"date":"not-a-date","quantity":1,"price_per_unit":1,"total_amount":1,"amount_paid":0,"amount_due":1}`
	_, err := transformIncome(decodeWireIncome(t, raw))

	var decodeErr *DecodeError
	require.ErrorAs(t, err, &decodeErr)
	assert.Equal(t, "date", decodeErr.Field)
}

func TestTransformExpense(t *testing.T) {
	raw := `{
		"ID": 3,
		"date": "2025-02-01",
		"category": "fuel",
		"description": "diesel for generators",
		"amount": 1000,
		"supplier_name": "PetroCongo",
		"payment_status": "partial",
		"amount_paid": 400,
		"amount_due": 600,
		"user_id": "9",
		"created_at": "2025-02-01T12:00:00Z"
	}`
	var w wireExpense
	require.NoError(t, json.Unmarshal([]byte(raw), &w))

	ex, err := transformExpense(w)
	require.NoError(t, err)
	assert.Equal(t, "3", ex.ID)
	assert.Equal(t, types.ExpenseFuel, ex.Category)
	assert.InDelta(t, ex.Amount-ex.AmountPaid, ex.AmountDue, 1e-9)
	assert.Equal(t, "9", ex.UserID)
}

func TestTransformInventoryItem(t *testing.T) {
	raw := `{
		"id": 8,
		"name": "Cobalt concentrate",
		"type": "mineral",
		"quantity": 120,
		"unit": "kg",
		"min_stock_level": 200,
		"current_value": 5400,
		"last_updated": "2025-04-02T10:00:00Z",
		"user_id": 9
	}`
	var w wireInventoryItem
	require.NoError(t, json.Unmarshal([]byte(raw), &w))

	item, err := transformInventoryItem(w)
	require.NoError(t, err)
	assert.Equal(t, "8", item.ID)
	assert.True(t, item.LowStock())
}

func TestTransformSummaryMissingFieldFailsTyped(t *testing.T) {
	var w wireSummary
	require.NoError(t, json.Unmarshal([]byte(`{"total_income":10,"total_expenses":5}`), &w))

	_, err := transformSummary(w)
	var decodeErr *DecodeError
	require.ErrorAs(t, err, &decodeErr)
	assert.Equal(t, "financial summary", decodeErr.Entity)
}

func TestParseWireDateLayouts(t *testing.T) {
	for _, raw := range []string{
		"2025-03-14",
		"2025-03-14T08:30:00Z",
		"2025-03-14T08:30:00",
		"2025-03-14 08:30:00",
	} {
		parsed, ok := parseWireDate(raw)
		require.True(t, ok, raw)
		assert.Equal(t, 14, parsed.Day(), raw)
	}
	_, ok := parseWireDate("14/03/2025")
	assert.False(t, ok)
}

func ptr[T any](v T) *T { return &v }
