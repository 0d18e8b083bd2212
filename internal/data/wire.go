// Package data is the translation layer between the backend's wire shape
// (snake_case, loosely typed) and the domain types the rest of the program
// works with. Decoding is strict where it matters: a missing required field
// is a DecodeError, not a zero value.
package data

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"mining-finance-dashboard/internal/types"
)

// DecodeError reports a backend payload that is missing or mangling a field
// the domain type requires.
type DecodeError struct {
	Entity string
	Field  string
	Reason string
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s: field %q %s", e.Entity, e.Field, e.Reason)
}

func missingField(entity, field string) error {
	return &DecodeError{Entity: entity, Field: field, Reason: "is missing"}
}

// flexID tolerates the backend's inconsistent id encoding: numeric or
// string, under "id" or "ID" (encoding/json matches keys case-insensitively,
// which covers the capitalized variant). This is a compatibility shim for a
// backend inconsistency, not a contract worth keeping forever.
type flexID string

func (f *flexID) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*f = ""
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*f = flexID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("id is neither string nor number: %s", b)
	}
	*f = flexID(n.String())
	return nil
}

func (f flexID) String() string { return string(f) }

// Date layouts the backend has been observed to emit. Calendar dates come
// back as plain YYYY-MM-DD; timestamps as RFC3339 or a space-separated
// variant depending on the column type.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

func parseWireDate(s string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// formatDate renders the calendar-date wire format. Timezone is not tracked.
func formatDate(t time.Time) string {
	return t.Format("2006-01-02")
}

type wireUser struct {
	ID        flexID  `json:"id"`
	Email     string  `json:"email"`
	Name      string  `json:"name"`
	Phone     string  `json:"phone"`
	Role      string  `json:"role"`
	CreatedAt *string `json:"created_at"`
}

type wireIncome struct {
	ID              flexID   `json:"id"`
	Date            *string  `json:"date"`
	MineralType     string   `json:"mineral_type"`
	Quantity        *float64 `json:"quantity"`
	Unit            string   `json:"unit"`
	PricePerUnit    *float64 `json:"price_per_unit"`
	TotalAmount     *float64 `json:"total_amount"`
	CustomerName    string   `json:"customer_name"`
	CustomerContact string   `json:"customer_contact"`
	PaymentStatus   string   `json:"payment_status"`
	AmountPaid      *float64 `json:"amount_paid"`
	AmountDue       *float64 `json:"amount_due"`
	Notes           string   `json:"notes"`
	UserID          flexID   `json:"user_id"`
	CreatedAt       *string  `json:"created_at"`
}

type wireExpense struct {
	ID              flexID   `json:"id"`
	Date            *string  `json:"date"`
	Category        string   `json:"category"`
	Description     string   `json:"description"`
	Amount          *float64 `json:"amount"`
	SupplierName    string   `json:"supplier_name"`
	SupplierContact string   `json:"supplier_contact"`
	PaymentStatus   string   `json:"payment_status"`
	AmountPaid      *float64 `json:"amount_paid"`
	AmountDue       *float64 `json:"amount_due"`
	Notes           string   `json:"notes"`
	UserID          flexID   `json:"user_id"`
	CreatedAt       *string  `json:"created_at"`
}

type wireInventoryItem struct {
	ID            flexID   `json:"id"`
	Name          string   `json:"name"`
	Type          string   `json:"type"`
	Quantity      *float64 `json:"quantity"`
	Unit          string   `json:"unit"`
	MinStockLevel *float64 `json:"min_stock_level"`
	CurrentValue  *float64 `json:"current_value"`
	LastUpdated   *string  `json:"last_updated"`
	UserID        flexID   `json:"user_id"`
}

type wireSummary struct {
	TotalIncome      *float64 `json:"total_income"`
	TotalExpenses    *float64 `json:"total_expenses"`
	NetProfit        *float64 `json:"net_profit"`
	TotalReceivables *float64 `json:"total_receivables"`
	TotalPayables    *float64 `json:"total_payables"`
	ProfitMargin     *float64 `json:"profit_margin"`
}

func transformUser(w wireUser) (types.User, error) {
	if w.Email == "" {
		return types.User{}, missingField("user", "email")
	}
	u := types.User{
		ID:    w.ID.String(),
		Email: w.Email,
		Name:  w.Name,
		Phone: w.Phone,
		Role:  types.UserRole(w.Role),
	}
	if u.Role == "" {
		u.Role = types.RoleStandard
	}
	u.CreatedAt = lenientTime(w.CreatedAt)
	return u, nil
}

func transformIncome(w wireIncome) (types.Income, error) {
	const entity = "income"
	if w.Date == nil {
		return types.Income{}, missingField(entity, "date")
	}
	date, ok := parseWireDate(*w.Date)
	if !ok {
		return types.Income{}, &DecodeError{Entity: entity, Field: "date", Reason: "is not a date: " + strconv.Quote(*w.Date)}
	}
	for field, v := range map[string]*float64{
		"quantity":       w.Quantity,
		"price_per_unit": w.PricePerUnit,
		"total_amount":   w.TotalAmount,
		"amount_paid":    w.AmountPaid,
		"amount_due":     w.AmountDue,
	} {
		if v == nil {
			return types.Income{}, missingField(entity, field)
		}
	}
	return types.Income{
		ID:              w.ID.String(),
		Date:            date,
		MineralType:     types.MineralType(w.MineralType),
		Quantity:        *w.Quantity,
		Unit:            w.Unit,
		PricePerUnit:    *w.PricePerUnit,
		TotalAmount:     *w.TotalAmount,
		CustomerName:    w.CustomerName,
		CustomerContact: w.CustomerContact,
		PaymentStatus:   types.PaymentStatus(w.PaymentStatus),
		AmountPaid:      *w.AmountPaid,
		AmountDue:       *w.AmountDue,
		Notes:           w.Notes,
		UserID:          w.UserID.String(),
		CreatedAt:       lenientTime(w.CreatedAt),
	}, nil
}

func transformExpense(w wireExpense) (types.Expense, error) {
	const entity = "expense"
	if w.Date == nil {
		return types.Expense{}, missingField(entity, "date")
	}
	date, ok := parseWireDate(*w.Date)
	if !ok {
		return types.Expense{}, &DecodeError{Entity: entity, Field: "date", Reason: "is not a date: " + strconv.Quote(*w.Date)}
	}
	for field, v := range map[string]*float64{
		"amount":      w.Amount,
		"amount_paid": w.AmountPaid,
		"amount_due":  w.AmountDue,
	} {
		if v == nil {
			return types.Expense{}, missingField(entity, field)
		}
	}
	return types.Expense{
		ID:              w.ID.String(),
		Date:            date,
		Category:        types.ExpenseCategory(w.Category),
		Description:     w.Description,
		Amount:          *w.Amount,
		SupplierName:    w.SupplierName,
		SupplierContact: w.SupplierContact,
		PaymentStatus:   types.PaymentStatus(w.PaymentStatus),
		AmountPaid:      *w.AmountPaid,
		AmountDue:       *w.AmountDue,
		Notes:           w.Notes,
		UserID:          w.UserID.String(),
		CreatedAt:       lenientTime(w.CreatedAt),
	}, nil
}

func transformInventoryItem(w wireInventoryItem) (types.InventoryItem, error) {
	const entity = "inventory item"
	if w.Name == "" {
		return types.InventoryItem{}, missingField(entity, "name")
	}
	for field, v := range map[string]*float64{
		"quantity":        w.Quantity,
		"min_stock_level": w.MinStockLevel,
		"current_value":   w.CurrentValue,
	} {
		if v == nil {
			return types.InventoryItem{}, missingField(entity, field)
		}
	}
	return types.InventoryItem{
		ID:            w.ID.String(),
		Name:          w.Name,
		Type:          types.InventoryType(w.Type),
		Quantity:      *w.Quantity,
		Unit:          w.Unit,
		MinStockLevel: *w.MinStockLevel,
		CurrentValue:  *w.CurrentValue,
		LastUpdated:   lenientTime(w.LastUpdated),
		UserID:        w.UserID.String(),
	}, nil
}

func transformSummary(w wireSummary) (types.FinancialSummary, error) {
	for field, v := range map[string]*float64{
		"total_income":      w.TotalIncome,
		"total_expenses":    w.TotalExpenses,
		"net_profit":        w.NetProfit,
		"total_receivables": w.TotalReceivables,
		"total_payables":    w.TotalPayables,
		"profit_margin":     w.ProfitMargin,
	} {
		if v == nil {
			return types.FinancialSummary{}, missingField("financial summary", field)
		}
	}
	return types.FinancialSummary{
		TotalIncome:      *w.TotalIncome,
		TotalExpenses:    *w.TotalExpenses,
		NetProfit:        *w.NetProfit,
		TotalReceivables: *w.TotalReceivables,
		TotalPayables:    *w.TotalPayables,
		ProfitMargin:     *w.ProfitMargin,
	}, nil
}

// lenientTime parses server-assigned timestamps (created_at, last_updated).
// These are informational, so a missing or unparseable value degrades to the
// zero time instead of failing the whole record.
func lenientTime(s *string) time.Time {
	if s == nil {
		return time.Time{}
	}
	t, _ := parseWireDate(*s)
	return t
}
