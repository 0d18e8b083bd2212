package main

import (
	"fmt"
	"time"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"

	"mining-finance-dashboard/internal/types"
)

var incomeCmd = &cobra.Command{
	Use:   "income",
	Short: "Record and review mineral sales",
}

var incomeListCmd = &cobra.Command{
	Use:   "list",
	Short: "List income records, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		if _, err := a.requireAuth(cmd.Context()); err != nil {
			return err
		}
		incomes, err := a.data.Incomes(cmd.Context())
		if err != nil {
			return fmt.Errorf("fetch income records: %w", err)
		}
		printIncomes(incomes)
		return nil
	},
}

var (
	incomeRangeStart string
	incomeRangeEnd   string
)

var incomeRangeCmd = &cobra.Command{
	Use:   "range",
	Short: "List income records within a date range",
	RunE: func(cmd *cobra.Command, args []string) error {
		start, err := time.Parse("2006-01-02", incomeRangeStart)
		if err != nil {
			return fmt.Errorf("--start must be YYYY-MM-DD")
		}
		end, err := time.Parse("2006-01-02", incomeRangeEnd)
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
		incomes, err := a.data.IncomesByDateRange(cmd.Context(), start, end)
		if err != nil {
			return fmt.Errorf("fetch income records: %w", err)
		}
		printIncomes(incomes)
		return nil
	},
}

type incomeFlags struct {
	date     string
	mineral  string
	quantity float64
	unit     string
	price    float64
	customer string
	contact  string
	status   string
	paid     float64
	notes    string
}

var incomeInput incomeFlags

func (f incomeFlags) toDomain() (types.Income, error) {
	date, err := time.Parse("2006-01-02", f.date)
	if err != nil {
		return types.Income{}, fmt.Errorf("--date must be YYYY-MM-DD")
	}
	return types.Income{
		Date:            date,
		MineralType:     types.MineralType(f.mineral),
		Quantity:        f.quantity,
		Unit:            f.unit,
		PricePerUnit:    f.price,
		CustomerName:    f.customer,
		CustomerContact: f.contact,
		PaymentStatus:   types.PaymentStatus(f.status),
		AmountPaid:      f.paid,
		Notes:           f.notes,
	}, nil
}

var incomeAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Record a mineral sale",
	RunE: func(cmd *cobra.Command, args []string) error {
		in, err := incomeInput.toDomain()
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
		created, err := a.data.CreateIncome(cmd.Context(), in)
		if err != nil {
			return fmt.Errorf("create income record: %w", err)
		}
		successOut.Printf("Recorded sale #%s: %s %s for %s (due: %s)\n",
			created.ID, money(created.Quantity), created.Unit, money(created.TotalAmount), money(created.AmountDue))
		return nil
	},
}

var incomeEditCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Update an income record",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		in, err := incomeInput.toDomain()
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
		updated, err := a.data.UpdateIncome(cmd.Context(), args[0], in)
		if err != nil {
			return fmt.Errorf("update income record: %w", err)
		}
		successOut.Printf("Updated sale #%s (total: %s, due: %s)\n",
			updated.ID, money(updated.TotalAmount), money(updated.AmountDue))
		return nil
	},
}

var incomeRmYes bool

var incomeRmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Delete an income record",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if !incomeRmYes {
			confirmed := false
			prompt := &survey.Confirm{Message: fmt.Sprintf("Delete income record %s?", args[0])}
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
		if err := a.data.DeleteIncome(cmd.Context(), args[0]); err != nil {
			return fmt.Errorf("delete income record: %w", err)
		}
		fmt.Println("Income record deleted.")
		return nil
	},
}

func printIncomes(incomes []types.Income) {
	if len(incomes) == 0 {
		emptyNote("income")
		return
	}
	heading.Println("Income")
	w := newTable()
	fmt.Fprintln(w, "ID\tDATE\tMINERAL\tQTY\tUNIT\tPRICE\tTOTAL\tPAID\tDUE\tSTATUS\tCUSTOMER")
	for _, in := range incomes {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			in.ID, day(in.Date), in.MineralType, money(in.Quantity), in.Unit,
			money(in.PricePerUnit), money(in.TotalAmount), money(in.AmountPaid),
			money(in.AmountDue), in.PaymentStatus, in.CustomerName)
	}
	w.Flush()
}

func addIncomeFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&incomeInput.date, "date", time.Now().Format("2006-01-02"), "sale date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&incomeInput.mineral, "mineral", "", "mineral type: gold|copper|cobalt|diamond|other")
	cmd.Flags().Float64Var(&incomeInput.quantity, "quantity", 0, "quantity sold")
	cmd.Flags().StringVar(&incomeInput.unit, "unit", "kg", "unit of measure")
	cmd.Flags().Float64Var(&incomeInput.price, "price", 0, "price per unit")
	cmd.Flags().StringVar(&incomeInput.customer, "customer", "", "customer name")
	cmd.Flags().StringVar(&incomeInput.contact, "contact", "", "customer contact")
	cmd.Flags().StringVar(&incomeInput.status, "status", "unpaid", "payment status: paid|unpaid|partial")
	cmd.Flags().Float64Var(&incomeInput.paid, "paid", 0, "amount already paid")
	cmd.Flags().StringVar(&incomeInput.notes, "notes", "", "free-form notes")
	cmd.MarkFlagRequired("mineral")
	cmd.MarkFlagRequired("quantity")
	cmd.MarkFlagRequired("price")
	cmd.MarkFlagRequired("customer")
}

func init() {
	addIncomeFlags(incomeAddCmd)
	addIncomeFlags(incomeEditCmd)
	incomeRangeCmd.Flags().StringVar(&incomeRangeStart, "start", "", "start date (YYYY-MM-DD)")
	incomeRangeCmd.Flags().StringVar(&incomeRangeEnd, "end", "", "end date (YYYY-MM-DD)")
	incomeRangeCmd.MarkFlagRequired("start")
	incomeRangeCmd.MarkFlagRequired("end")
	incomeRmCmd.Flags().BoolVarP(&incomeRmYes, "yes", "y", false, "skip the confirmation prompt")

	incomeCmd.AddCommand(incomeListCmd)
	incomeCmd.AddCommand(incomeRangeCmd)
	incomeCmd.AddCommand(incomeAddCmd)
	incomeCmd.AddCommand(incomeEditCmd)
	incomeCmd.AddCommand(incomeRmCmd)
}
