package server

import (
	"time"

	"mining-finance-dashboard/internal/types"
)

// Wire models the API emits. Dates are calendar strings (YYYY-MM-DD),
// timestamps RFC3339 via time.Time marshaling.

// User is the account record minus the password hash.
type User struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Phone     *string   `json:"phone,omitempty"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// Income is a mineral sale. total_amount and amount_due are derived here and
// authoritative over whatever the client computed.
type Income struct {
	ID              int64     `json:"id"`
	UserID          int64     `json:"user_id"`
	Date            string    `json:"date"`
	MineralType     string    `json:"mineral_type"`
	Quantity        float64   `json:"quantity"`
	Unit            string    `json:"unit"`
	PricePerUnit    float64   `json:"price_per_unit"`
	TotalAmount     float64   `json:"total_amount"`
	CustomerName    string    `json:"customer_name"`
	CustomerContact *string   `json:"customer_contact"`
	PaymentStatus   string    `json:"payment_status"`
	AmountPaid      float64   `json:"amount_paid"`
	AmountDue       float64   `json:"amount_due"`
	Notes           *string   `json:"notes"`
	CreatedAt       time.Time `json:"created_at"`
}

// Expense is money owed or paid to a supplier.
type Expense struct {
	ID              int64     `json:"id"`
	UserID          int64     `json:"user_id"`
	Date            string    `json:"date"`
	Category        string    `json:"category"`
	Description     string    `json:"description"`
	Amount          float64   `json:"amount"`
	SupplierName    string    `json:"supplier_name"`
	SupplierContact *string   `json:"supplier_contact"`
	PaymentStatus   string    `json:"payment_status"`
	AmountPaid      float64   `json:"amount_paid"`
	AmountDue       float64   `json:"amount_due"`
	Notes           *string   `json:"notes"`
	CreatedAt       time.Time `json:"created_at"`
}

// InventoryItem is stock on hand.
type InventoryItem struct {
	ID            int64     `json:"id"`
	UserID        int64     `json:"user_id"`
	Name          string    `json:"name"`
	Type          string    `json:"type"`
	Quantity      float64   `json:"quantity"`
	Unit          string    `json:"unit"`
	MinStockLevel float64   `json:"min_stock_level"`
	CurrentValue  float64   `json:"current_value"`
	LastUpdated   time.Time `json:"last_updated"`
}

// FinancialSummary aggregates a user's books.
type FinancialSummary struct {
	TotalIncome      float64 `json:"total_income"`
	TotalExpenses    float64 `json:"total_expenses"`
	NetProfit        float64 `json:"net_profit"`
	TotalReceivables float64 `json:"total_receivables"`
	TotalPayables    float64 `json:"total_payables"`
	ProfitMargin     float64 `json:"profit_margin"`
}

// Request bodies.

type signupRequest struct {
	Email     string `json:"email"`
	Name      string `json:"name"`
	Phone     string `json:"phone"`
	Password  string `json:"password"`
	AdminCode string `json:"admin_code"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type forgotPasswordRequest struct {
	Email string `json:"email"`
}

type resetPasswordRequest struct {
	Email       string `json:"email"`
	OTP         string `json:"otp"`
	NewPassword string `json:"new_password"`
}

type profileUpdateRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

type incomeRequest struct {
	Date            string  `json:"date"`
	MineralType     string  `json:"mineral_type"`
	Quantity        float64 `json:"quantity"`
	Unit            string  `json:"unit"`
	PricePerUnit    float64 `json:"price_per_unit"`
	CustomerName    string  `json:"customer_name"`
	CustomerContact string  `json:"customer_contact"`
	PaymentStatus   string  `json:"payment_status"`
	AmountPaid      float64 `json:"amount_paid"`
	Notes           string  `json:"notes"`
}

type expenseRequest struct {
	Date            string  `json:"date"`
	Category        string  `json:"category"`
	Description     string  `json:"description"`
	Amount          float64 `json:"amount"`
	SupplierName    string  `json:"supplier_name"`
	SupplierContact string  `json:"supplier_contact"`
	PaymentStatus   string  `json:"payment_status"`
	AmountPaid      float64 `json:"amount_paid"`
	Notes           string  `json:"notes"`
}

type inventoryRequest struct {
	Name          string  `json:"name"`
	Type          string  `json:"type"`
	Quantity      float64 `json:"quantity"`
	Unit          string  `json:"unit"`
	MinStockLevel float64 `json:"min_stock_level"`
	CurrentValue  float64 `json:"current_value"`
}

type quantityRequest struct {
	Quantity float64 `json:"quantity"`
}

// Enum checks shared with the client-side domain types.

func validMineral(v string) bool {
	switch types.MineralType(v) {
	case types.MineralGold, types.MineralCopper, types.MineralCobalt, types.MineralDiamond, types.MineralOther:
		return true
	}
	return false
}

func validExpenseCategory(v string) bool {
	switch types.ExpenseCategory(v) {
	case types.ExpenseEquipment, types.ExpenseLabor, types.ExpenseChemicals, types.ExpenseFuel,
		types.ExpenseMaintenance, types.ExpenseTransport, types.ExpenseOther:
		return true
	}
	return false
}

func validPaymentStatus(v string) bool {
	switch types.PaymentStatus(v) {
	case types.PaymentPaid, types.PaymentUnpaid, types.PaymentPartial:
		return true
	}
	return false
}

func validInventoryType(v string) bool {
	switch types.InventoryType(v) {
	case types.InventoryMineral, types.InventorySupply:
		return true
	}
	return false
}

// nullable turns "" into NULL for optional text columns.
func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
