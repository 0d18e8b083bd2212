package api

import (
	"context"
	"fmt"
	"net/url"
)

// IncomeRequest is the wire payload for creating or updating an income
// record. Derived fields (total_amount, amount_due) are never sent; the
// server owns them.
type IncomeRequest struct {
	Date            string  `json:"date"`
	MineralType     string  `json:"mineral_type"`
	Quantity        float64 `json:"quantity"`
	Unit            string  `json:"unit"`
	PricePerUnit    float64 `json:"price_per_unit"`
	CustomerName    string  `json:"customer_name"`
	CustomerContact string  `json:"customer_contact"`
	PaymentStatus   string  `json:"payment_status"`
	AmountPaid      float64 `json:"amount_paid"`
	Notes           string  `json:"notes,omitempty"`
}

// ExpenseRequest is the wire payload for creating or updating an expense.
type ExpenseRequest struct {
	Date            string  `json:"date"`
	Category        string  `json:"category"`
	Description     string  `json:"description"`
	Amount          float64 `json:"amount"`
	SupplierName    string  `json:"supplier_name"`
	SupplierContact string  `json:"supplier_contact,omitempty"`
	PaymentStatus   string  `json:"payment_status"`
	AmountPaid      float64 `json:"amount_paid"`
	Notes           string  `json:"notes,omitempty"`
}

// InventoryRequest is the wire payload for creating or updating an item.
type InventoryRequest struct {
	Name          string  `json:"name"`
	Type          string  `json:"type"`
	Quantity      float64 `json:"quantity"`
	Unit          string  `json:"unit"`
	MinStockLevel float64 `json:"min_stock_level"`
	CurrentValue  float64 `json:"current_value"`
}

// Income endpoints.

func (c *Client) GetIncomes(ctx context.Context) Response {
	return c.get(ctx, "/income")
}

func (c *Client) GetIncome(ctx context.Context, id string) Response {
	return c.get(ctx, "/income/"+url.PathEscape(id))
}

func (c *Client) CreateIncome(ctx context.Context, req IncomeRequest) Response {
	return c.post(ctx, "/income", req)
}

func (c *Client) UpdateIncome(ctx context.Context, id string, req IncomeRequest) Response {
	return c.put(ctx, "/income/"+url.PathEscape(id), req)
}

func (c *Client) DeleteIncome(ctx context.Context, id string) Response {
	return c.delete(ctx, "/income/"+url.PathEscape(id))
}

func (c *Client) GetIncomeByDateRange(ctx context.Context, startDate, endDate string) Response {
	return c.get(ctx, fmt.Sprintf("/income/range?start_date=%s&end_date=%s",
		url.QueryEscape(startDate), url.QueryEscape(endDate)))
}

// Expense endpoints.

func (c *Client) GetExpenses(ctx context.Context) Response {
	return c.get(ctx, "/expense")
}

func (c *Client) GetExpense(ctx context.Context, id string) Response {
	return c.get(ctx, "/expense/"+url.PathEscape(id))
}

func (c *Client) CreateExpense(ctx context.Context, req ExpenseRequest) Response {
	return c.post(ctx, "/expense", req)
}

func (c *Client) UpdateExpense(ctx context.Context, id string, req ExpenseRequest) Response {
	return c.put(ctx, "/expense/"+url.PathEscape(id), req)
}

func (c *Client) DeleteExpense(ctx context.Context, id string) Response {
	return c.delete(ctx, "/expense/"+url.PathEscape(id))
}

func (c *Client) GetExpenseByDateRange(ctx context.Context, startDate, endDate string) Response {
	return c.get(ctx, fmt.Sprintf("/expense/range?start_date=%s&end_date=%s",
		url.QueryEscape(startDate), url.QueryEscape(endDate)))
}

func (c *Client) GetExpenseBreakdown(ctx context.Context) Response {
	return c.get(ctx, "/expense/breakdown")
}

// Inventory endpoints.

func (c *Client) GetInventory(ctx context.Context) Response {
	return c.get(ctx, "/inventory")
}

func (c *Client) GetInventoryItem(ctx context.Context, id string) Response {
	return c.get(ctx, "/inventory/"+url.PathEscape(id))
}

func (c *Client) CreateInventoryItem(ctx context.Context, req InventoryRequest) Response {
	return c.post(ctx, "/inventory", req)
}

func (c *Client) UpdateInventoryItem(ctx context.Context, id string, req InventoryRequest) Response {
	return c.put(ctx, "/inventory/"+url.PathEscape(id), req)
}

func (c *Client) DeleteInventoryItem(ctx context.Context, id string) Response {
	return c.delete(ctx, "/inventory/"+url.PathEscape(id))
}

func (c *Client) GetLowStockItems(ctx context.Context) Response {
	return c.get(ctx, "/inventory/low-stock")
}

func (c *Client) UpdateInventoryQuantity(ctx context.Context, id string, quantity float64) Response {
	return c.patch(ctx, "/inventory/"+url.PathEscape(id)+"/quantity",
		map[string]float64{"quantity": quantity})
}

// Analytics endpoints.

func (c *Client) GetFinancialSummary(ctx context.Context) Response {
	return c.get(ctx, "/analytics/summary")
}

func (c *Client) GetMonthlyData(ctx context.Context, year int) Response {
	if year > 0 {
		return c.get(ctx, fmt.Sprintf("/analytics/monthly?year=%d", year))
	}
	return c.get(ctx, "/analytics/monthly")
}

func (c *Client) GetExpenseCategoryBreakdown(ctx context.Context) Response {
	return c.get(ctx, "/analytics/expense-breakdown")
}
