package main

import (
	"fmt"
	"time"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"

	"mining-finance-dashboard/internal/types"
)

var expenseCmd = &cobra.Command{
	Use:   "expense",
	Short: "Record and review operating expenses",
}

var expenseListCmd = &cobra.Command{
	Use:   "list",
	Short: "List expenses, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		if _, err := a.requireAuth(cmd.Context()); err != nil {
			return err
		}
		expenses, err := a.data.Expenses(cmd.Context())
		if err != nil {
			return fmt.Errorf("fetch expenses: %w", err)
		}
		printExpenses(expenses)
		return nil
	},
}

var (
	expenseRangeStart string
	expenseRangeEnd   string
)

var expenseRangeCmd = &cobra.Command{
	Use:   "range",
	Short: "List expenses within a date range",
	RunE: func(cmd *cobra.Command, args []string) error {
		start, err := time.Parse("2006-01-02", expenseRangeStart)
		if err != nil {
			return fmt.Errorf("--start must be YYYY-MM-DD")
		}
		end, err := time.Parse("2006-01-02", expenseRangeEnd)
		if err != nil {
			return fmt.Errorf("--end must be YYYY-MM-DD")
		}
		a, err := newApp()
		if err != nil {
			return err
		}
		if _, err := a.requireAuth(cmd.Context()); err != nil {
			return err
		}
		expenses, err := a.data.ExpensesByDateRange(cmd.Context(), start, end)
		if err != nil {
			return fmt.Errorf("fetch expenses: %w", err)
		}
		printExpenses(expenses)
		return nil
	},
}

type expenseFlags struct {
	date        string
	category    string
	description string
	amount      float64
	supplier    string
	contact     string
	status      string
	paid        float64
	notes       string
}

var expenseInput expenseFlags

func (f expenseFlags) toDomain() (types.Expense, error) {
	date, err := time.Parse("2006-01-02", f.date)
	if err != nil {
		return types.Expense{}, fmt.Errorf("--date must be YYYY-MM-DD")
	}
	return types.Expense{
		Date:            date,
		Category:        types.ExpenseCategory(f.category),
		Description:     f.description,
		Amount:          f.amount,
		SupplierName:    f.supplier,
		SupplierContact: f.contact,
		PaymentStatus:   types.PaymentStatus(f.status),
		AmountPaid:      f.paid,
		Notes:           f.notes,
	}, nil
}

var expenseAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Record an expense",
	RunE: func(cmd *cobra.Command, args []string) error {
		ex, err := expenseInput.toDomain()
		if err != nil {
			return err
		}
		a, err := newApp()
		if err != nil {
			return err
		}
		if _, err := a.requireAuth(cmd.Context()); err != nil {
			return err
		}
		created, err := a.data.CreateExpense(cmd.Context(), ex)
		if err != nil {
			return fmt.Errorf("create expense: %w", err)
		}
		successOut.Printf("Recorded expense #%s: %s %s (due: %s)\n",
			created.ID, money(created.Amount), created.Category, money(created.AmountDue))
		return nil
	},
}

var expenseEditCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Update an expense",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ex, err := expenseInput.toDomain()
		if err != nil {
			return err
		}
		a, err := newApp()
		if err != nil {
			return err
		}
		if _, err := a.requireAuth(cmd.Context()); err != nil {
			return err
		}
		updated, err := a.data.UpdateExpense(cmd.Context(), args[0], ex)
		if err != nil {
			return fmt.Errorf("update expense: %w", err)
		}
		successOut.Printf("Updated expense #%s (amount: %s, due: %s)\n",
			updated.ID, money(updated.Amount), money(updated.AmountDue))
		return nil
	},
}

var expenseRmYes bool

var expenseRmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Delete an expense",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if !expenseRmYes {
			confirmed := false
			prompt := &survey.Confirm{Message: fmt.Sprintf("Delete expense %s?", args[0])}
			if err := survey.AskOne(prompt, &confirmed); err != nil {
				return err
			}
			if !confirmed {
				return nil
			}
		}
		a, err := newApp()
		if err != nil {
			return err
		}
		if _, err := a.requireAuth(cmd.Context()); err != nil {
			return err
		}
		if err := a.data.DeleteExpense(cmd.Context(), args[0]); err != nil {
			return fmt.Errorf("delete expense: %w", err)
		}
		fmt.Println("Expense deleted.")
		return nil
	},
}

var expenseBreakdownCmd = &cobra.Command{
	Use:   "breakdown",
	Short: "Show expenses aggregated by category",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		if _, err := a.requireAuth(cmd.Context()); err != nil {
			return err
		}
		breakdown, err := a.data.ExpenseBreakdown(cmd.Context())
		if err != nil {
			return fmt.Errorf("fetch expense breakdown: %w", err)
		}
		printBreakdown(breakdown)
		return nil
	},
}

func printExpenses(expenses []types.Expense) {
	if len(expenses) == 0 {
		emptyNote("expenses")
		return
	}
	heading.Println("Expenses")
	w := newTable()
	fmt.Fprintln(w, "ID\tDATE\tCATEGORY\tDESCRIPTION\tAMOUNT\tPAID\tDUE\tSTATUS\tSUPPLIER")
	for _, ex := range expenses {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			ex.ID, day(ex.Date), ex.Category, ex.Description, money(ex.Amount),
			money(ex.AmountPaid), money(ex.AmountDue), ex.PaymentStatus, ex.SupplierName)
	}
	w.Flush()
}

func printBreakdown(breakdown []types.CategoryBreakdown) {
	if len(breakdown) == 0 {
		emptyNote("expenses")
		return
	}
	heading.Println("Expenses by category")
	w := newTable()
	fmt.Fprintln(w, "CATEGORY\tAMOUNT\tSHARE")
	for _, entry := range breakdown {
		fmt.Fprintf(w, "%s\t%s\t%.1f%%\n", entry.Category, money(entry.Amount), entry.Percentage)
	}
	w.Flush()
}

func addExpenseFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&expenseInput.date, "date", time.Now().Format("2006-01-02"), "expense date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&expenseInput.category, "category", "", "category: equipment|labor|chemicals|fuel|maintenance|transport|other")
	cmd.Flags().StringVar(&expenseInput.description, "description", "", "what the money went to")
	cmd.Flags().Float64Var(&expenseInput.amount, "amount", 0, "total amount")
	cmd.Flags().StringVar(&expenseInput.supplier, "supplier", "", "supplier name")
	cmd.Flags().StringVar(&expenseInput.contact, "contact", "", "supplier contact")
	cmd.Flags().StringVar(&expenseInput.status, "status", "unpaid", "payment status: paid|unpaid|partial")
	cmd.Flags().Float64Var(&expenseInput.paid, "paid", 0, "amount already paid")
	cmd.Flags().StringVar(&expenseInput.notes, "notes", "", "free-form notes")
	cmd.MarkFlagRequired("category")
	cmd.MarkFlagRequired("description")
	cmd.MarkFlagRequired("amount")
	cmd.MarkFlagRequired("supplier")
}

func init() {
	addExpenseFlags(expenseAddCmd)
	addExpenseFlags(expenseEditCmd)
	expenseRangeCmd.Flags().StringVar(&expenseRangeStart, "start", "", "start date (YYYY-MM-DD)")
	expenseRangeCmd.Flags().StringVar(&expenseRangeEnd, "end", "", "end date (YYYY-MM-DD)")
	expenseRangeCmd.MarkFlagRequired("start")
	expenseRangeCmd.MarkFlagRequired("end")
	expenseRmCmd.Flags().BoolVarP(&expenseRmYes, "yes", "y", false, "skip the confirmation prompt")

	expenseCmd.AddCommand(expenseListCmd)
	expenseCmd.AddCommand(expenseRangeCmd)
	expenseCmd.AddCommand(expenseAddCmd)
	expenseCmd.AddCommand(expenseEditCmd)
	expenseCmd.AddCommand(expenseRmCmd)
	expenseCmd.AddCommand(expenseBreakdownCmd)
}
