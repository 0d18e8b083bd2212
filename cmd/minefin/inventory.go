package main

import (
	"fmt"
	"strconv"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"

	"mining-finance-dashboard/internal/types"
)

var inventoryCmd = &cobra.Command{
	Use:   "inventory",
	Short: "Track mineral stock and supplies",
}

var inventoryListCmd = &cobra.Command{
	Use:   "list",
	Short: "List inventory items",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		if _, err := a.requireAuth(cmd.Context()); err != nil {
			return err
		}
		items, err := a.data.Inventory(cmd.Context())
		if err != nil {
			return fmt.Errorf("fetch inventory: %w", err)
		}
		printInventory(items)
		return nil
	},
}

var inventoryLowStockCmd = &cobra.Command{
	Use:   "low-stock",
	Short: "List items at or below their minimum stock level",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		if _, err := a.requireAuth(cmd.Context()); err != nil {
			return err
		}
		items, err := a.data.LowStockItems(cmd.Context())
		if err != nil {
			return fmt.Errorf("fetch low-stock items: %w", err)
		}
		if len(items) == 0 {
			successOut.Println("No items below minimum stock.")
			return nil
		}
		printInventory(items)
		return nil
	},
}

type inventoryFlags struct {
	name     string
	itemType string
	quantity float64
	unit     string
	minStock float64
	value    float64
}

var inventoryInput inventoryFlags

func (f inventoryFlags) toDomain() types.InventoryItem {
	return types.InventoryItem{
		Name:          f.name,
		Type:          types.InventoryType(f.itemType),
		Quantity:      f.quantity,
		Unit:          f.unit,
		MinStockLevel: f.minStock,
		CurrentValue:  f.value,
	}
}

var inventoryAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add an inventory item",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		if _, err := a.requireAuth(cmd.Context()); err != nil {
			return err
		}
		created, err := a.data.CreateInventoryItem(cmd.Context(), inventoryInput.toDomain())
		if err != nil {
			return fmt.Errorf("create inventory item: %w", err)
		}
		successOut.Printf("Added %s #%s: %s %s\n", created.Type, created.ID, money(created.Quantity), created.Unit)
		return nil
	},
}

var inventoryEditCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Update an inventory item",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		if _, err := a.requireAuth(cmd.Context()); err != nil {
			return err
		}
		updated, err := a.data.UpdateInventoryItem(cmd.Context(), args[0], inventoryInput.toDomain())
		if err != nil {
			return fmt.Errorf("update inventory item: %w", err)
		}
		successOut.Printf("Updated %s (#%s)\n", updated.Name, updated.ID)
		return nil
	},
}

var inventorySetQuantityCmd = &cobra.Command{
	Use:   "set-quantity <id> <quantity>",
	Short: "Set only the quantity of an item",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		quantity, err := strconv.ParseFloat(args[1], 64)
		if err != nil || quantity < 0 {
			return fmt.Errorf("quantity must be a non-negative number")
		}
		a, err := newApp()
		if err != nil {
			return err
		}
		if _, err := a.requireAuth(cmd.Context()); err != nil {
			return err
		}
		updated, err := a.data.SetInventoryQuantity(cmd.Context(), args[0], quantity)
		if err != nil {
			return fmt.Errorf("set quantity: %w", err)
		}
		successOut.Printf("%s now at %s %s\n", updated.Name, money(updated.Quantity), updated.Unit)
		if updated.LowStock() {
			warnOut.Printf("Warning: %s is at or below its minimum stock level (%s)\n",
				updated.Name, money(updated.MinStockLevel))
		}
		return nil
	},
}

var inventoryRmYes bool

var inventoryRmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Delete an inventory item",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if !inventoryRmYes {
			confirmed := false
			prompt := &survey.Confirm{Message: fmt.Sprintf("Delete inventory item %s?", args[0])}
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
		if err := a.data.DeleteInventoryItem(cmd.Context(), args[0]); err != nil {
			return fmt.Errorf("delete inventory item: %w", err)
		}
		fmt.Println("Inventory item deleted.")
		return nil
	},
}

func printInventory(items []types.InventoryItem) {
	if len(items) == 0 {
		emptyNote("inventory")
		return
	}
	heading.Println("Inventory")
	w := newTable()
	fmt.Fprintln(w, "ID\tNAME\tTYPE\tQTY\tUNIT\tMIN\tVALUE\tUPDATED\tLOW")
	for _, item := range items {
		low := ""
		if item.LowStock() {
			low = "!"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			item.ID, item.Name, item.Type, money(item.Quantity), item.Unit,
			money(item.MinStockLevel), money(item.CurrentValue), day(item.LastUpdated), low)
	}
	w.Flush()
}

func addInventoryFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&inventoryInput.name, "name", "", "item name")
	cmd.Flags().StringVar(&inventoryInput.itemType, "type", "", "item type: mineral|supply")
	cmd.Flags().Float64Var(&inventoryInput.quantity, "quantity", 0, "quantity on hand")
	cmd.Flags().StringVar(&inventoryInput.unit, "unit", "kg", "unit of measure")
	cmd.Flags().Float64Var(&inventoryInput.minStock, "min-stock", 0, "minimum stock level")
	cmd.Flags().Float64Var(&inventoryInput.value, "value", 0, "current value")
	cmd.MarkFlagRequired("name")
	cmd.MarkFlagRequired("type")
}

func init() {
	addInventoryFlags(inventoryAddCmd)
	addInventoryFlags(inventoryEditCmd)
	inventoryRmCmd.Flags().BoolVarP(&inventoryRmYes, "yes", "y", false, "skip the confirmation prompt")

	inventoryCmd.AddCommand(inventoryListCmd)
	inventoryCmd.AddCommand(inventoryLowStockCmd)
	inventoryCmd.AddCommand(inventoryAddCmd)
	inventoryCmd.AddCommand(inventoryEditCmd)
	inventoryCmd.AddCommand(inventorySetQuantityCmd)
	inventoryCmd.AddCommand(inventoryRmCmd)
}
