package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var analyticsYear int

// analyticsCmd renders the monthly series and the category breakdown the
// analytics page charts.
var analyticsCmd = &cobra.Command{
	Use:   "analytics",
	Short: "Show monthly income/expense trends and the category breakdown",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		if _, err := a.requireAuth(cmd.Context()); err != nil {
			return err
		}

		months, err := a.data.MonthlyData(cmd.Context(), analyticsYear)
		if err != nil {
			return fmt.Errorf("fetch monthly data: %w", err)
		}
		breakdown, err := a.data.ExpenseBreakdown(cmd.Context())
		if err != nil {
			return fmt.Errorf("fetch expense breakdown: %w", err)
		}

		heading.Println("Monthly trend")
		w := newTable()
		fmt.Fprintln(w, "MONTH\tINCOME\tEXPENSES\tPROFIT")
		for _, m := range months {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", m.Month, money(m.Income), money(m.Expenses), money(m.Profit))
		}
		w.Flush()

		fmt.Println()
		printBreakdown(breakdown)
		return nil
	},
}

func init() {
	analyticsCmd.Flags().IntVar(&analyticsYear, "year", 0, "year to chart (default: current year)")
}
