package server

import (
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"mining-finance-dashboard/internal/types"
)

// financialSummary aggregates the user's books, with a short-lived cache in
// front of the queries.
func (s *Server) financialSummary(c *gin.Context) {
	ctx := c.Request.Context()
	userID := currentUserID(c)
	cacheKey := fmt.Sprintf("summary:%d", userID)

	var summary FinancialSummary
	if s.cached(ctx, cacheKey, &summary) {
		respondData(c, 200, summary)
		return
	}

	err := s.db.QueryRow(`
		SELECT
			COALESCE((SELECT SUM(total_amount) FROM incomes WHERE user_id = $1), 0) AS total_income,
			COALESCE((SELECT SUM(amount) FROM expenses WHERE user_id = $1), 0) AS total_expenses,
			COALESCE((SELECT SUM(amount_due) FROM incomes WHERE user_id = $1), 0) AS total_receivables,
			COALESCE((SELECT SUM(amount_due) FROM expenses WHERE user_id = $1), 0) AS total_payables
	`, userID).Scan(&summary.TotalIncome, &summary.TotalExpenses, &summary.TotalReceivables, &summary.TotalPayables)
	if err != nil {
		log.Printf("analytics: summary: %v", err)
		respondError(c, 500, "failed to compute summary")
		return
	}

	summary.NetProfit = summary.TotalIncome - summary.TotalExpenses
	if summary.TotalIncome > 0 {
		summary.ProfitMargin = summary.NetProfit / summary.TotalIncome * 100
	}

	s.storeCache(ctx, cacheKey, summary)
	respondData(c, 200, summary)
}

// monthlyData returns the 12-month income/expense series for a year,
// defaulting to the current year.
func (s *Server) monthlyData(c *gin.Context) {
	year := time.Now().Year()
	if raw := c.Query("year"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1970 || parsed > 9999 {
			respondError(c, 400, "invalid year")
			return
		}
		year = parsed
	}
	userID := currentUserID(c)

	months := make([]types.MonthlyData, 12)
	for i := range months {
		months[i].Month = time.Month(i + 1).String()[:3]
	}

	incomeRows, err := s.db.Query(`
		SELECT EXTRACT(MONTH FROM date)::int, COALESCE(SUM(total_amount), 0)
		FROM incomes
		WHERE user_id = $1 AND EXTRACT(YEAR FROM date) = $2
		GROUP BY 1
	`, userID, year)
	if err != nil {
		log.Printf("analytics: monthly income: %v", err)
		respondError(c, 500, "failed to compute monthly data")
		return
	}
	defer incomeRows.Close()
	for incomeRows.Next() {
		var month int
		var total float64
		if err := incomeRows.Scan(&month, &total); err != nil {
			log.Printf("analytics: monthly scan: %v", err)
			respondError(c, 500, "failed to compute monthly data")
			return
		}
		if month >= 1 && month <= 12 {
			months[month-1].Income = total
		}
	}

	expenseRows, err := s.db.Query(`
		SELECT EXTRACT(MONTH FROM date)::int, COALESCE(SUM(amount), 0)
		FROM expenses
		WHERE user_id = $1 AND EXTRACT(YEAR FROM date) = $2
		GROUP BY 1
	`, userID, year)
	if err != nil {
		log.Printf("analytics: monthly expenses: %v", err)
		respondError(c, 500, "failed to compute monthly data")
		return
	}
	defer expenseRows.Close()
	for expenseRows.Next() {
		var month int
		var total float64
		if err := expenseRows.Scan(&month, &total); err != nil {
			log.Printf("analytics: monthly scan: %v", err)
			respondError(c, 500, "failed to compute monthly data")
			return
		}
		if month >= 1 && month <= 12 {
			months[month-1].Expenses = total
		}
	}

	for i := range months {
		months[i].Profit = months[i].Income - months[i].Expenses
	}
	respondData(c, 200, months)
}

// expenseBreakdown aggregates expenses by category with each category's
// share of the total. Served under both /expense/breakdown and
// /analytics/expense-breakdown.
func (s *Server) expenseBreakdown(c *gin.Context) {
	ctx := c.Request.Context()
	userID := currentUserID(c)
	cacheKey := fmt.Sprintf("breakdown:%d", userID)

	var breakdown []types.CategoryBreakdown
	if s.cached(ctx, cacheKey, &breakdown) {
		respondData(c, 200, breakdown)
		return
	}

	rows, err := s.db.Query(`
		SELECT category, COALESCE(SUM(amount), 0) AS total
		FROM expenses
		WHERE user_id = $1
		GROUP BY category
		ORDER BY total DESC
	`, userID)
	if err != nil {
		log.Printf("analytics: breakdown: %v", err)
		respondError(c, 500, "failed to compute expense breakdown")
		return
	}
	defer rows.Close()

	breakdown = make([]types.CategoryBreakdown, 0)
	var grandTotal float64
	for rows.Next() {
		var entry types.CategoryBreakdown
		if err := rows.Scan(&entry.Category, &entry.Amount); err != nil {
			log.Printf("analytics: breakdown scan: %v", err)
			respondError(c, 500, "failed to compute expense breakdown")
			return
		}
		grandTotal += entry.Amount
		breakdown = append(breakdown, entry)
	}
	if grandTotal > 0 {
		for i := range breakdown {
			breakdown[i].Percentage = breakdown[i].Amount / grandTotal * 100
		}
	}

	s.storeCache(ctx, cacheKey, breakdown)
	respondData(c, 200, breakdown)
}
