package server

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validIncomeRequest() incomeRequest {
	return incomeRequest{
		Date:          "2025-03-14",
		MineralType:   "gold",
		Quantity:      12.5,
		Unit:          "kg",
		PricePerUnit:  80,
		CustomerName:  "Kasai Traders",
		PaymentStatus: "partial",
		AmountPaid:    400,
	}
}

func TestValidateIncomeDerivesAmounts(t *testing.T) {
	total, due, errMsg := validateIncome(validIncomeRequest())

	assert.Empty(t, errMsg)
	assert.Equal(t, 1000.0, total)
	assert.Equal(t, 600.0, due)
}

func TestValidateIncomeRejections(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*incomeRequest)
		errMsg string
	}{
		{"bad date", func(r *incomeRequest) { r.Date = "14/03/2025" }, "date must be formatted YYYY-MM-DD"},
		{"bad mineral", func(r *incomeRequest) { r.MineralType = "uranium" }, "invalid mineral type"},
		{"bad status", func(r *incomeRequest) { r.PaymentStatus = "pending" }, "invalid payment status"},
		{"zero quantity", func(r *incomeRequest) { r.Quantity = 0 }, "quantity must be positive and price per unit non-negative"},
		{"negative price", func(r *incomeRequest) { r.PricePerUnit = -1 }, "quantity must be positive and price per unit non-negative"},
		{"no customer", func(r *incomeRequest) { r.CustomerName = "" }, "customer name is required"},
		{"overpaid", func(r *incomeRequest) { r.AmountPaid = 2000 }, "amount paid must be between 0 and the total amount"},
		{"negative paid", func(r *incomeRequest) { r.AmountPaid = -5 }, "amount paid must be between 0 and the total amount"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := validIncomeRequest()
			tc.mutate(&req)
			_, _, errMsg := validateIncome(req)
			assert.Equal(t, tc.errMsg, errMsg)
		})
	}
}

func validExpenseRequest() expenseRequest {
	return expenseRequest{
		Date:          "2025-02-01",
		Category:      "fuel",
		Description:   "diesel for generators",
		Amount:        1000,
		SupplierName:  "PetroCongo",
		PaymentStatus: "partial",
		AmountPaid:    400,
	}
}

func TestValidateExpenseDerivesDue(t *testing.T) {
	due, errMsg := validateExpense(validExpenseRequest())

	assert.Empty(t, errMsg)
	assert.Equal(t, 600.0, due)
}

func TestValidateExpenseRejections(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*expenseRequest)
	}{
		{"bad date", func(r *expenseRequest) { r.Date = "yesterday" }},
		{"bad category", func(r *expenseRequest) { r.Category = "bribes" }},
		{"bad status", func(r *expenseRequest) { r.PaymentStatus = "pending" }},
		{"negative amount", func(r *expenseRequest) { r.Amount = -1 }},
		{"no description", func(r *expenseRequest) { r.Description = "" }},
		{"no supplier", func(r *expenseRequest) { r.SupplierName = "" }},
		{"overpaid", func(r *expenseRequest) { r.AmountPaid = 2000 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := validExpenseRequest()
			tc.mutate(&req)
			_, errMsg := validateExpense(req)
			assert.NotEmpty(t, errMsg)
		})
	}
}

func TestValidateInventory(t *testing.T) {
	ok := inventoryRequest{Name: "Cobalt concentrate", Type: "mineral", Quantity: 120, Unit: "kg", MinStockLevel: 200, CurrentValue: 5400}
	assert.Empty(t, validateInventory(ok))

	cases := []struct {
		name   string
		mutate func(*inventoryRequest)
	}{
		{"no name", func(r *inventoryRequest) { r.Name = "" }},
		{"bad type", func(r *inventoryRequest) { r.Type = "scrap" }},
		{"negative quantity", func(r *inventoryRequest) { r.Quantity = -1 }},
		{"negative min stock", func(r *inventoryRequest) { r.MinStockLevel = -1 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := ok
			tc.mutate(&req)
			assert.NotEmpty(t, validateInventory(req))
		})
	}
}

func TestNullable(t *testing.T) {
	assert.Nil(t, nullable(""))
	if got := nullable("note"); assert.NotNil(t, got) {
		assert.Equal(t, "note", *got)
	}
}
