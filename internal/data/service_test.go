package data

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mining-finance-dashboard/internal/api"
	"mining-finance-dashboard/internal/types"
)

func newService(t *testing.T, handler http.Handler) *Service {
	t.Helper()
	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)
	return NewService(api.NewClient(ts.URL, nil))
}

func TestIncomesDecodesList(t *testing.T) {
	svc := newService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/income", r.URL.Path)
		w.Write([]byte(`{"success":true,"data":[` + fullIncomeJSON + `]}`))
	}))

	incomes, err := svc.Incomes(context.Background())
	require.NoError(t, err)
	require.Len(t, incomes, 1)
	assert.Equal(t, "5", incomes[0].ID)
	assert.Equal(t, types.MineralGold, incomes[0].MineralType)
}

func TestIncomesNullDataIsEmptyList(t *testing.T) {
	svc := newService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":true,"data":null}`))
	}))

	incomes, err := svc.Incomes(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, incomes)
	assert.Empty(t, incomes)
}

func TestIncomesSurfacesBackendError(t *testing.T) {
	svc := newService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"success":false,"error":"failed to fetch income records"}`))
	}))

	_, err := svc.Incomes(context.Background())
	require.EqualError(t, err, "failed to fetch income records")
}

func TestUpdateRequiresID(t *testing.T) {
	svc := newService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("unexpected request")
	}))
	ctx := context.Background()

	_, err := svc.UpdateIncome(ctx, "", types.Income{})
	assert.Error(t, err)
	_, err = svc.UpdateExpense(ctx, "", types.Expense{})
	assert.Error(t, err)
	assert.Error(t, svc.DeleteIncome(ctx, ""))
	assert.Error(t, svc.DeleteInventoryItem(ctx, ""))
	_, err = svc.SetInventoryQuantity(ctx, "", 5)
	assert.Error(t, err)
}

func TestTransactionsMergesNewestFirst(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/income", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":true,"data":[
			{"id":1,"date":"2025-03-10","mineral_type":"gold","quantity":1,"unit":"kg",
			 "price_per_unit":100,"total_amount":100,"customer_name":"Kasai Traders",
			 "payment_status":"paid","amount_paid":100,"amount_due":0}
		]}`))
	})
	mux.HandleFunc("/expense", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":true,"data":[
			{"id":2,"date":"2025-03-12","category":"fuel","description":"diesel",
			 "amount":40,"payment_status":"unpaid","amount_paid":0,"amount_due":40},
			{"id":3,"date":"2025-03-08","category":"labor","description":"day crew",
			 "amount":60,"payment_status":"paid","amount_paid":60,"amount_due":0}
		]}`))
	})
	svc := newService(t, mux)

	txs, err := svc.Transactions(context.Background())
	require.NoError(t, err)
	require.Len(t, txs, 3)

	assert.Equal(t, types.TransactionExpense, txs[0].Type)
	assert.Equal(t, "diesel", txs[0].Description)
	assert.Equal(t, types.TransactionIncome, txs[1].Type)
	assert.Equal(t, "gold sale to Kasai Traders", txs[1].Description)
	assert.Equal(t, "day crew", txs[2].Description)
	for i := 1; i < len(txs); i++ {
		assert.False(t, txs[i-1].Date.Before(txs[i].Date), "transactions must be newest first")
	}
}

func TestTransactionsPropagatesFailure(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/income", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":true,"data":[]}`))
	})
	mux.HandleFunc("/expense", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"success":false,"error":"failed to fetch expenses"}`))
	})
	svc := newService(t, mux)

	_, err := svc.Transactions(context.Background())
	require.EqualError(t, err, "failed to fetch expenses")
}

func TestMonthlyDataPassesYearAndDecodes(t *testing.T) {
	var gotYear string
	svc := newService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/analytics/monthly", r.URL.Path)
		gotYear = r.URL.Query().Get("year")
		w.Write([]byte(`{"success":true,"data":[{"month":"Jan","income":100,"expenses":40,"profit":60}]}`))
	}))

	months, err := svc.MonthlyData(context.Background(), 2025)
	require.NoError(t, err)
	assert.Equal(t, "2025", gotYear)
	require.Len(t, months, 1)
	assert.Equal(t, "Jan", months[0].Month)
	assert.Equal(t, 60.0, months[0].Profit)
}

func TestExpenseBreakdownDecodes(t *testing.T) {
	svc := newService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/analytics/expense-breakdown", r.URL.Path)
		w.Write([]byte(`{"success":true,"data":[{"category":"fuel","amount":40,"percentage":40},{"category":"labor","amount":60,"percentage":60}]}`))
	}))

	breakdown, err := svc.ExpenseBreakdown(context.Background())
	require.NoError(t, err)
	require.Len(t, breakdown, 2)
	assert.Equal(t, "fuel", breakdown[0].Category)
	assert.Equal(t, 60.0, breakdown[1].Percentage)
}

func TestFinancialSummaryDecodes(t *testing.T) {
	svc := newService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/analytics/summary", r.URL.Path)
		w.Write([]byte(`{"success":true,"data":{"total_income":1000,"total_expenses":400,
			"net_profit":600,"total_receivables":250,"total_payables":100,"profit_margin":60}}`))
	}))

	summary, err := svc.FinancialSummary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 600.0, summary.NetProfit)
	assert.Equal(t, 60.0, summary.ProfitMargin)
}
