package main

import (
	"fmt"
	"sync"

	"github.com/spf13/cobra"

	"mining-finance-dashboard/internal/types"
)

var dashboardRecent int

// dashboardCmd mirrors the dashboard page: the financial summary plus the
// most recent transactions, fetched concurrently.
var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Show the financial summary and recent transactions",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		if _, err := a.requireAuth(cmd.Context()); err != nil {
			return err
		}

		var (
			summary    types.FinancialSummary
			txs        []types.Transaction
			summaryErr error
			txErr      error
			wg         sync.WaitGroup
		)
		wg.Add(2)
		go func() {
			defer wg.Done()
			summary, summaryErr = a.data.FinancialSummary(cmd.Context())
		}()
		go func() {
			defer wg.Done()
			txs, txErr = a.data.Transactions(cmd.Context())
		}()
		wg.Wait()
		if summaryErr != nil {
			return fmt.Errorf("fetch summary: %w", summaryErr)
		}
		if txErr != nil {
			return fmt.Errorf("fetch transactions: %w", txErr)
		}

		printSummary(summary)
		fmt.Println()
		printTransactions(txs, dashboardRecent)
		return nil
	},
}

func printSummary(s types.FinancialSummary) {
	heading.Println("Financial summary")
	w := newTable()
	fmt.Fprintf(w, "Total income\t%s\n", money(s.TotalIncome))
	fmt.Fprintf(w, "Total expenses\t%s\n", money(s.TotalExpenses))
	fmt.Fprintf(w, "Net profit\t%s\n", money(s.NetProfit))
	fmt.Fprintf(w, "Receivables\t%s\n", money(s.TotalReceivables))
	fmt.Fprintf(w, "Payables\t%s\n", money(s.TotalPayables))
	fmt.Fprintf(w, "Profit margin\t%.1f%%\n", s.ProfitMargin)
	w.Flush()
}

func printTransactions(txs []types.Transaction, limit int) {
	if len(txs) == 0 {
		emptyNote("transactions")
		return
	}
	if limit > 0 && len(txs) > limit {
		txs = txs[:limit]
	}
	heading.Println("Recent transactions")
	w := newTable()
	fmt.Fprintln(w, "DATE\tTYPE\tDESCRIPTION\tAMOUNT\tDUE\tSTATUS")
	for _, tx := range txs {
		amount := money(tx.Amount)
		if tx.Type == types.TransactionExpense {
			amount = "-" + amount
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			day(tx.Date), tx.Type, tx.Description, amount, money(tx.AmountDue), tx.PaymentStatus)
	}
	w.Flush()
}

func init() {
	dashboardCmd.Flags().IntVar(&dashboardRecent, "recent", 10, "number of recent transactions to show")
}
