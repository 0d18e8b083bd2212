package server

import (
	"database/sql"
	"log"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

const expenseColumns = `
	id, user_id, to_char(date, 'YYYY-MM-DD'), category, description, amount,
	supplier_name, supplier_contact, payment_status, amount_paid, amount_due,
	notes, created_at
`

func scanExpense(row interface{ Scan(...any) error }) (Expense, error) {
	var ex Expense
	err := row.Scan(
		&ex.ID, &ex.UserID, &ex.Date, &ex.Category, &ex.Description, &ex.Amount,
		&ex.SupplierName, &ex.SupplierContact, &ex.PaymentStatus, &ex.AmountPaid,
		&ex.AmountDue, &ex.Notes, &ex.CreatedAt,
	)
	return ex, err
}

// validateExpense checks the request and derives amount_due = amount - paid.
func validateExpense(req expenseRequest) (due float64, errMsg string) {
	if _, err := time.Parse("2006-01-02", req.Date); err != nil {
		return 0, "date must be formatted YYYY-MM-DD"
	}
	if !validExpenseCategory(req.Category) {
		return 0, "invalid expense category"
	}
	if !validPaymentStatus(req.PaymentStatus) {
		return 0, "invalid payment status"
	}
	if req.Description == "" {
		return 0, "description is required"
	}
	if req.SupplierName == "" {
		return 0, "supplier name is required"
	}
	if req.Amount < 0 {
		return 0, "amount must be non-negative"
	}
	if req.AmountPaid < 0 || req.AmountPaid > req.Amount {
		return 0, "amount paid must be between 0 and the amount"
	}
	return req.Amount - req.AmountPaid, ""
}

func (s *Server) listExpenses(c *gin.Context) {
	rows, err := s.db.Query(`
		SELECT `+expenseColumns+` FROM expenses
		WHERE user_id = $1 ORDER BY date DESC, id DESC
	`, currentUserID(c))
	if err != nil {
		log.Printf("expense: list: %v", err)
		respondError(c, 500, "failed to fetch expenses")
		return
	}
	defer rows.Close()

	expenses := make([]Expense, 0)
	for rows.Next() {
		ex, err := scanExpense(rows)
		if err != nil {
			log.Printf("expense: scan: %v", err)
			respondError(c, 500, "failed to read expenses")
			return
		}
		expenses = append(expenses, ex)
	}
	respondData(c, 200, expenses)
}

func (s *Server) listExpensesByRange(c *gin.Context) {
	start, end := c.Query("start_date"), c.Query("end_date")
	if _, err := time.Parse("2006-01-02", start); err != nil {
		respondError(c, 400, "start_date must be formatted YYYY-MM-DD")
		return
	}
	if _, err := time.Parse("2006-01-02", end); err != nil {
		respondError(c, 400, "end_date must be formatted YYYY-MM-DD")
		return
	}

	rows, err := s.db.Query(`
		SELECT `+expenseColumns+` FROM expenses
		WHERE user_id = $1 AND date BETWEEN $2 AND $3
		ORDER BY date DESC, id DESC
	`, currentUserID(c), start, end)
	if err != nil {
		log.Printf("expense: range: %v", err)
		respondError(c, 500, "failed to fetch expenses")
		return
	}
	defer rows.Close()

	expenses := make([]Expense, 0)
	for rows.Next() {
		ex, err := scanExpense(rows)
		if err != nil {
			log.Printf("expense: scan: %v", err)
			respondError(c, 500, "failed to read expenses")
			return
		}
		expenses = append(expenses, ex)
	}
	respondData(c, 200, expenses)
}

func (s *Server) getExpense(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, 400, "invalid expense id")
		return
	}
	ex, err := scanExpense(s.db.QueryRow(`
		SELECT `+expenseColumns+` FROM expenses WHERE id = $1 AND user_id = $2
	`, id, currentUserID(c)))
	if err == sql.ErrNoRows {
		respondError(c, 404, "expense not found")
		return
	}
	if err != nil {
		log.Printf("expense: get: %v", err)
		respondError(c, 500, "failed to fetch expense")
		return
	}
	respondData(c, 200, ex)
}

func (s *Server) createExpense(c *gin.Context) {
	var req expenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, 400, "invalid request body")
		return
	}
	due, errMsg := validateExpense(req)
	if errMsg != "" {
		respondError(c, 400, errMsg)
		return
	}

	userID := currentUserID(c)
	ex, err := scanExpense(s.db.QueryRow(`
		INSERT INTO expenses (user_id, date, category, description, amount,
			supplier_name, supplier_contact, payment_status, amount_paid, amount_due, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING `+expenseColumns,
		userID, req.Date, req.Category, req.Description, req.Amount,
		req.SupplierName, nullable(req.SupplierContact), req.PaymentStatus,
		req.AmountPaid, due, nullable(req.Notes)))
	if err != nil {
		log.Printf("expense: create: %v", err)
		respondError(c, 500, "failed to create expense")
		return
	}

	s.invalidateAnalytics(c.Request.Context(), userID)
	respondData(c, 201, ex)
}

func (s *Server) updateExpense(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, 400, "invalid expense id")
		return
	}
	var req expenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, 400, "invalid request body")
		return
	}
	due, errMsg := validateExpense(req)
	if errMsg != "" {
		respondError(c, 400, errMsg)
		return
	}

	userID := currentUserID(c)
	ex, err := scanExpense(s.db.QueryRow(`
		UPDATE expenses SET date = $1, category = $2, description = $3, amount = $4,
			supplier_name = $5, supplier_contact = $6, payment_status = $7,
			amount_paid = $8, amount_due = $9, notes = $10
		WHERE id = $11 AND user_id = $12
		RETURNING `+expenseColumns,
		req.Date, req.Category, req.Description, req.Amount,
		req.SupplierName, nullable(req.SupplierContact), req.PaymentStatus,
		req.AmountPaid, due, nullable(req.Notes), id, userID))
	if err == sql.ErrNoRows {
		respondError(c, 404, "expense not found")
		return
	}
	if err != nil {
		log.Printf("expense: update: %v", err)
		respondError(c, 500, "failed to update expense")
		return
	}

	s.invalidateAnalytics(c.Request.Context(), userID)
	respondData(c, 200, ex)
}

func (s *Server) deleteExpense(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, 400, "invalid expense id")
		return
	}
	userID := currentUserID(c)
	result, err := s.db.Exec(`DELETE FROM expenses WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		log.Printf("expense: delete: %v", err)
		respondError(c, 500, "failed to delete expense")
		return
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		respondError(c, 404, "expense not found")
		return
	}

	s.invalidateAnalytics(c.Request.Context(), userID)
	respondMessage(c, 200, "expense deleted")
}
