package server

import (
	"database/sql"
	"log"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

const incomeColumns = `
	id, user_id, to_char(date, 'YYYY-MM-DD'), mineral_type, quantity, unit,
	price_per_unit, total_amount, customer_name, customer_contact,
	payment_status, amount_paid, amount_due, notes, created_at
`

func scanIncome(row interface{ Scan(...any) error }) (Income, error) {
	var in Income
	err := row.Scan(
		&in.ID, &in.UserID, &in.Date, &in.MineralType, &in.Quantity, &in.Unit,
		&in.PricePerUnit, &in.TotalAmount, &in.CustomerName, &in.CustomerContact,
		&in.PaymentStatus, &in.AmountPaid, &in.AmountDue, &in.Notes, &in.CreatedAt,
	)
	return in, err
}

// validateIncome checks the request and derives the server-owned amounts:
// total = quantity * price per unit, due = total - paid.
func validateIncome(req incomeRequest) (total, due float64, errMsg string) {
	if _, err := time.Parse("2006-01-02", req.Date); err != nil {
		return 0, 0, "date must be formatted YYYY-MM-DD"
	}
	if !validMineral(req.MineralType) {
		return 0, 0, "invalid mineral type"
	}
	if !validPaymentStatus(req.PaymentStatus) {
		return 0, 0, "invalid payment status"
	}
	if req.Quantity <= 0 || req.PricePerUnit < 0 {
		return 0, 0, "quantity must be positive and price per unit non-negative"
	}
	if req.CustomerName == "" {
		return 0, 0, "customer name is required"
	}
	total = req.Quantity * req.PricePerUnit
	if req.AmountPaid < 0 || req.AmountPaid > total {
		return 0, 0, "amount paid must be between 0 and the total amount"
	}
	return total, total - req.AmountPaid, ""
}

// listIncomes returns the user's income records, newest first.
func (s *Server) listIncomes(c *gin.Context) {
	rows, err := s.db.Query(`
		SELECT `+incomeColumns+` FROM incomes
		WHERE user_id = $1 ORDER BY date DESC, id DESC
	`, currentUserID(c))
	if err != nil {
		log.Printf("income: list: %v", err)
		respondError(c, 500, "failed to fetch income records")
		return
	}
	defer rows.Close()

	// ensure empty array ([]) instead of null when no rows
	incomes := make([]Income, 0)
	for rows.Next() {
		in, err := scanIncome(rows)
		if err != nil {
			log.Printf("income: scan: %v", err)
			respondError(c, 500, "failed to read income records")
			return
		}
		incomes = append(incomes, in)
	}
	respondData(c, 200, incomes)
}

// listIncomesByRange filters by calendar date, inclusive on both ends.
func (s *Server) listIncomesByRange(c *gin.Context) {
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
		SELECT `+incomeColumns+` FROM incomes
		WHERE user_id = $1 AND date BETWEEN $2 AND $3
		ORDER BY date DESC, id DESC
	`, currentUserID(c), start, end)
	if err != nil {
		log.Printf("income: range: %v", err)
		respondError(c, 500, "failed to fetch income records")
		return
	}
	defer rows.Close()

	incomes := make([]Income, 0)
	for rows.Next() {
		in, err := scanIncome(rows)
		if err != nil {
			log.Printf("income: scan: %v", err)
			respondError(c, 500, "failed to read income records")
			return
		}
		incomes = append(incomes, in)
	}
	respondData(c, 200, incomes)
}

func (s *Server) getIncome(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, 400, "invalid income id")
		return
	}
	in, err := scanIncome(s.db.QueryRow(`
		SELECT `+incomeColumns+` FROM incomes WHERE id = $1 AND user_id = $2
	`, id, currentUserID(c)))
	if err == sql.ErrNoRows {
		respondError(c, 404, "income record not found")
		return
	}
	if err != nil {
		log.Printf("income: get: %v", err)
		respondError(c, 500, "failed to fetch income record")
		return
	}
	respondData(c, 200, in)
}

func (s *Server) createIncome(c *gin.Context) {
	var req incomeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, 400, "invalid request body")
		return
	}
	total, due, errMsg := validateIncome(req)
	if errMsg != "" {
		respondError(c, 400, errMsg)
		return
	}

	userID := currentUserID(c)
	in, err := scanIncome(s.db.QueryRow(`
		INSERT INTO incomes (user_id, date, mineral_type, quantity, unit, price_per_unit,
			total_amount, customer_name, customer_contact, payment_status, amount_paid, amount_due, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING `+incomeColumns,
		userID, req.Date, req.MineralType, req.Quantity, req.Unit, req.PricePerUnit,
		total, req.CustomerName, nullable(req.CustomerContact), req.PaymentStatus,
		req.AmountPaid, due, nullable(req.Notes)))
	if err != nil {
		log.Printf("income: create: %v", err)
		respondError(c, 500, "failed to create income record")
		return
	}

	s.invalidateAnalytics(c.Request.Context(), userID)
	respondData(c, 201, in)
}

func (s *Server) updateIncome(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, 400, "invalid income id")
		return
	}
	var req incomeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, 400, "invalid request body")
		return
	}
	total, due, errMsg := validateIncome(req)
	if errMsg != "" {
		respondError(c, 400, errMsg)
		return
	}

	userID := currentUserID(c)
	in, err := scanIncome(s.db.QueryRow(`
		UPDATE incomes SET date = $1, mineral_type = $2, quantity = $3, unit = $4,
			price_per_unit = $5, total_amount = $6, customer_name = $7, customer_contact = $8,
			payment_status = $9, amount_paid = $10, amount_due = $11, notes = $12
		WHERE id = $13 AND user_id = $14
		RETURNING `+incomeColumns,
		req.Date, req.MineralType, req.Quantity, req.Unit, req.PricePerUnit,
		total, req.CustomerName, nullable(req.CustomerContact), req.PaymentStatus,
		req.AmountPaid, due, nullable(req.Notes), id, userID))
	if err == sql.ErrNoRows {
		respondError(c, 404, "income record not found")
		return
	}
	if err != nil {
		log.Printf("income: update: %v", err)
		respondError(c, 500, "failed to update income record")
		return
	}

	s.invalidateAnalytics(c.Request.Context(), userID)
	respondData(c, 200, in)
}

func (s *Server) deleteIncome(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, 400, "invalid income id")
		return
	}
	userID := currentUserID(c)
	result, err := s.db.Exec(`DELETE FROM incomes WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		log.Printf("income: delete: %v", err)
		respondError(c, 500, "failed to delete income record")
		return
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		respondError(c, 404, "income record not found")
		return
	}

	s.invalidateAnalytics(c.Request.Context(), userID)
	respondMessage(c, 200, "income record deleted")
}
