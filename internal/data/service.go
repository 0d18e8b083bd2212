package data

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"time"

	"mining-finance-dashboard/internal/api"
	"mining-finance-dashboard/internal/types"
)

// Service shapes requests for the transport client and decodes its responses
// into domain records. Application-level failures (success:false) come back
// as errors carrying the backend's message.
type Service struct {
	client *api.Client
}

// NewService wraps an API client.
func NewService(client *api.Client) *Service {
	return &Service{client: client}
}

func envelopeErr(resp api.Response) error {
	if resp.Error != "" {
		return errors.New(resp.Error)
	}
	if resp.Message != "" {
		return errors.New(resp.Message)
	}
	return errors.New("request failed")
}

// decodeList unmarshals an envelope's data into a wire slice and maps each
// element through the transform. A null data field is an empty list.
func decodeList[W any, D any](resp api.Response, transform func(W) (D, error)) ([]D, error) {
	if !resp.Success {
		return nil, envelopeErr(resp)
	}
	if len(resp.Data) == 0 || string(resp.Data) == "null" {
		return []D{}, nil
	}
	var wires []W
	if err := json.Unmarshal(resp.Data, &wires); err != nil {
		return nil, err
	}
	out := make([]D, 0, len(wires))
	for _, w := range wires {
		d, err := transform(w)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}

func decodeOne[W any, D any](resp api.Response, transform func(W) (D, error)) (D, error) {
	var zero D
	if !resp.Success {
		return zero, envelopeErr(resp)
	}
	if len(resp.Data) == 0 || string(resp.Data) == "null" {
		return zero, errors.New("empty response from server")
	}
	var w W
	if err := json.Unmarshal(resp.Data, &w); err != nil {
		return zero, err
	}
	return transform(w)
}

func checkOK(resp api.Response) error {
	if !resp.Success {
		return envelopeErr(resp)
	}
	return nil
}

// Income operations.

func (s *Service) Incomes(ctx context.Context) ([]types.Income, error) {
	return decodeList(s.client.GetIncomes(ctx), transformIncome)
}

func (s *Service) Income(ctx context.Context, id string) (types.Income, error) {
	return decodeOne(s.client.GetIncome(ctx, id), transformIncome)
}

func (s *Service) IncomesByDateRange(ctx context.Context, start, end time.Time) ([]types.Income, error) {
	return decodeList(s.client.GetIncomeByDateRange(ctx, formatDate(start), formatDate(end)), transformIncome)
}

func (s *Service) CreateIncome(ctx context.Context, in types.Income) (types.Income, error) {
	return decodeOne(s.client.CreateIncome(ctx, incomeToWire(in)), transformIncome)
}

func (s *Service) UpdateIncome(ctx context.Context, id string, in types.Income) (types.Income, error) {
	if id == "" {
		return types.Income{}, errors.New("income id is required for update")
	}
	return decodeOne(s.client.UpdateIncome(ctx, id, incomeToWire(in)), transformIncome)
}

func (s *Service) DeleteIncome(ctx context.Context, id string) error {
	if id == "" {
		return errors.New("income id is required for deletion")
	}
	return checkOK(s.client.DeleteIncome(ctx, id))
}

// Expense operations.

func (s *Service) Expenses(ctx context.Context) ([]types.Expense, error) {
	return decodeList(s.client.GetExpenses(ctx), transformExpense)
}

func (s *Service) Expense(ctx context.Context, id string) (types.Expense, error) {
	return decodeOne(s.client.GetExpense(ctx, id), transformExpense)
}

func (s *Service) ExpensesByDateRange(ctx context.Context, start, end time.Time) ([]types.Expense, error) {
	return decodeList(s.client.GetExpenseByDateRange(ctx, formatDate(start), formatDate(end)), transformExpense)
}

func (s *Service) CreateExpense(ctx context.Context, in types.Expense) (types.Expense, error) {
	return decodeOne(s.client.CreateExpense(ctx, expenseToWire(in)), transformExpense)
}

func (s *Service) UpdateExpense(ctx context.Context, id string, in types.Expense) (types.Expense, error) {
	if id == "" {
		return types.Expense{}, errors.New("expense id is required for update")
	}
	return decodeOne(s.client.UpdateExpense(ctx, id, expenseToWire(in)), transformExpense)
}

func (s *Service) DeleteExpense(ctx context.Context, id string) error {
	if id == "" {
		return errors.New("expense id is required for deletion")
	}
	return checkOK(s.client.DeleteExpense(ctx, id))
}

// Inventory operations.

func (s *Service) Inventory(ctx context.Context) ([]types.InventoryItem, error) {
	return decodeList(s.client.GetInventory(ctx), transformInventoryItem)
}

func (s *Service) InventoryItem(ctx context.Context, id string) (types.InventoryItem, error) {
	return decodeOne(s.client.GetInventoryItem(ctx, id), transformInventoryItem)
}

func (s *Service) CreateInventoryItem(ctx context.Context, in types.InventoryItem) (types.InventoryItem, error) {
	return decodeOne(s.client.CreateInventoryItem(ctx, inventoryToWire(in)), transformInventoryItem)
}

func (s *Service) UpdateInventoryItem(ctx context.Context, id string, in types.InventoryItem) (types.InventoryItem, error) {
	if id == "" {
		return types.InventoryItem{}, errors.New("inventory item id is required for update")
	}
	return decodeOne(s.client.UpdateInventoryItem(ctx, id, inventoryToWire(in)), transformInventoryItem)
}

func (s *Service) DeleteInventoryItem(ctx context.Context, id string) error {
	if id == "" {
		return errors.New("inventory item id is required for deletion")
	}
	return checkOK(s.client.DeleteInventoryItem(ctx, id))
}

func (s *Service) LowStockItems(ctx context.Context) ([]types.InventoryItem, error) {
	return decodeList(s.client.GetLowStockItems(ctx), transformInventoryItem)
}

func (s *Service) SetInventoryQuantity(ctx context.Context, id string, quantity float64) (types.InventoryItem, error) {
	if id == "" {
		return types.InventoryItem{}, errors.New("inventory item id is required")
	}
	return decodeOne(s.client.UpdateInventoryQuantity(ctx, id, quantity), transformInventoryItem)
}

// Analytics operations. Monthly series and category breakdown already arrive
// in the domain shape, so they decode directly.

func (s *Service) FinancialSummary(ctx context.Context) (types.FinancialSummary, error) {
	return decodeOne(s.client.GetFinancialSummary(ctx), transformSummary)
}

func (s *Service) MonthlyData(ctx context.Context, year int) ([]types.MonthlyData, error) {
	resp := s.client.GetMonthlyData(ctx, year)
	if !resp.Success {
		return nil, envelopeErr(resp)
	}
	var months []types.MonthlyData
	if len(resp.Data) > 0 {
		if err := json.Unmarshal(resp.Data, &months); err != nil {
			return nil, err
		}
	}
	return months, nil
}

func (s *Service) ExpenseBreakdown(ctx context.Context) ([]types.CategoryBreakdown, error) {
	resp := s.client.GetExpenseCategoryBreakdown(ctx)
	if !resp.Success {
		return nil, envelopeErr(resp)
	}
	var breakdown []types.CategoryBreakdown
	if len(resp.Data) > 0 {
		if err := json.Unmarshal(resp.Data, &breakdown); err != nil {
			return nil, err
		}
	}
	return breakdown, nil
}

// Transactions merges incomes and expenses into one reverse-chronological
// listing. Both lists are fetched concurrently.
func (s *Service) Transactions(ctx context.Context) ([]types.Transaction, error) {
	var (
		incomes  []types.Income
		expenses []types.Expense
		incErr   error
		expErr   error
	)
	done := make(chan struct{})
	go func() {
		defer close(done)
		expenses, expErr = s.Expenses(ctx)
	}()
	incomes, incErr = s.Incomes(ctx)
	<-done
	if incErr != nil {
		return nil, incErr
	}
	if expErr != nil {
		return nil, expErr
	}

	txs := make([]types.Transaction, 0, len(incomes)+len(expenses))
	for _, in := range incomes {
		txs = append(txs, types.Transaction{
			Type:          types.TransactionIncome,
			ID:            in.ID,
			Date:          in.Date,
			Description:   string(in.MineralType) + " sale to " + in.CustomerName,
			Amount:        in.TotalAmount,
			PaymentStatus: in.PaymentStatus,
			AmountDue:     in.AmountDue,
			CreatedAt:     in.CreatedAt,
		})
	}
	for _, ex := range expenses {
		txs = append(txs, types.Transaction{
			Type:          types.TransactionExpense,
			ID:            ex.ID,
			Date:          ex.Date,
			Description:   ex.Description,
			Amount:        ex.Amount,
			PaymentStatus: ex.PaymentStatus,
			AmountDue:     ex.AmountDue,
			CreatedAt:     ex.CreatedAt,
		})
	}
	sort.Slice(txs, func(i, j int) bool { return txs[i].Date.After(txs[j].Date) })
	return txs, nil
}

func incomeToWire(in types.Income) api.IncomeRequest {
	return api.IncomeRequest{
		Date:            formatDate(in.Date),
		MineralType:     string(in.MineralType),
		Quantity:        in.Quantity,
		Unit:            in.Unit,
		PricePerUnit:    in.PricePerUnit,
		CustomerName:    in.CustomerName,
		CustomerContact: in.CustomerContact,
		PaymentStatus:   string(in.PaymentStatus),
		AmountPaid:      in.AmountPaid,
		Notes:           in.Notes,
	}
}

func expenseToWire(in types.Expense) api.ExpenseRequest {
	return api.ExpenseRequest{
		Date:            formatDate(in.Date),
		Category:        string(in.Category),
		Description:     in.Description,
		Amount:          in.Amount,
		SupplierName:    in.SupplierName,
		SupplierContact: in.SupplierContact,
		PaymentStatus:   string(in.PaymentStatus),
		AmountPaid:      in.AmountPaid,
		Notes:           in.Notes,
	}
}

func inventoryToWire(in types.InventoryItem) api.InventoryRequest {
	return api.InventoryRequest{
		Name:          in.Name,
		Type:          string(in.Type),
		Quantity:      in.Quantity,
		Unit:          in.Unit,
		MinStockLevel: in.MinStockLevel,
		CurrentValue:  in.CurrentValue,
	}
}
