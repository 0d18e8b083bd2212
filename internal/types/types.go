package types

import "time"

// UserRole distinguishes admin accounts (created with a valid admin code at
// signup) from standard ones.
type UserRole string

const (
	RoleAdmin    UserRole = "admin"
	RoleStandard UserRole = "standard"
)

// PaymentStatus tracks how much of a transaction has been settled.
type PaymentStatus string

const (
	PaymentPaid    PaymentStatus = "paid"
	PaymentUnpaid  PaymentStatus = "unpaid"
	PaymentPartial PaymentStatus = "partial"
)

// MineralType is the product sold on an income record.
type MineralType string

const (
	MineralGold    MineralType = "gold"
	MineralCopper  MineralType = "copper"
	MineralCobalt  MineralType = "cobalt"
	MineralDiamond MineralType = "diamond"
	MineralOther   MineralType = "other"
)

// ExpenseCategory classifies operating expenses.
type ExpenseCategory string

const (
	ExpenseEquipment   ExpenseCategory = "equipment"
	ExpenseLabor       ExpenseCategory = "labor"
	ExpenseChemicals   ExpenseCategory = "chemicals"
	ExpenseFuel        ExpenseCategory = "fuel"
	ExpenseMaintenance ExpenseCategory = "maintenance"
	ExpenseTransport   ExpenseCategory = "transport"
	ExpenseOther       ExpenseCategory = "other"
)

// InventoryType separates mined stock from operating supplies.
type InventoryType string

const (
	InventoryMineral InventoryType = "mineral"
	InventorySupply  InventoryType = "supply"
)

// TransactionType tags records in the merged chronological view.
type TransactionType string

const (
	TransactionIncome  TransactionType = "income"
	TransactionExpense TransactionType = "expense"
)

// User is an authenticated account. The ID is server-assigned and always a
// string on the client regardless of what the backend emits.
type User struct {
	ID        string
	Email     string
	Name      string
	Phone     string
	Role      UserRole
	CreatedAt time.Time
}

// Income is a sale of minerals. TotalAmount and AmountDue are derived
// server-side; the server's echo is authoritative.
type Income struct {
	ID              string
	Date            time.Time
	MineralType     MineralType
	Quantity        float64
	Unit            string
	PricePerUnit    float64
	TotalAmount     float64
	CustomerName    string
	CustomerContact string
	PaymentStatus   PaymentStatus
	AmountPaid      float64
	AmountDue       float64
	Notes           string
	UserID          string
	CreatedAt       time.Time
}

// Expense is money owed or paid to a supplier.
type Expense struct {
	ID              string
	Date            time.Time
	Category        ExpenseCategory
	Description     string
	Amount          float64
	SupplierName    string
	SupplierContact string
	PaymentStatus   PaymentStatus
	AmountPaid      float64
	AmountDue       float64
	Notes           string
	UserID          string
	CreatedAt       time.Time
}

// InventoryItem is stock on hand, either mined product or supplies.
type InventoryItem struct {
	ID            string
	Name          string
	Type          InventoryType
	Quantity      float64
	Unit          string
	MinStockLevel float64
	CurrentValue  float64
	LastUpdated   time.Time
	UserID        string
}

// Transaction is a view-only union of Income and Expense used for the merged
// chronological listing. It is never persisted.
type Transaction struct {
	Type          TransactionType
	ID            string
	Date          time.Time
	Description   string
	Amount        float64
	PaymentStatus PaymentStatus
	AmountDue     float64
	CreatedAt     time.Time
}

// FinancialSummary is the server-computed aggregate view. Read-only.
type FinancialSummary struct {
	TotalIncome      float64
	TotalExpenses    float64
	NetProfit        float64
	TotalReceivables float64
	TotalPayables    float64
	ProfitMargin     float64
}

// MonthlyData is one point of the monthly income/expense time series.
type MonthlyData struct {
	Month    string  `json:"month"`
	Income   float64 `json:"income"`
	Expenses float64 `json:"expenses"`
	Profit   float64 `json:"profit"`
}

// CategoryBreakdown is one slice of the expense-by-category aggregation.
type CategoryBreakdown struct {
	Category   string  `json:"category"`
	Amount     float64 `json:"amount"`
	Percentage float64 `json:"percentage"`
}

// LowStock reports whether the item is at or below its minimum stock level.
func (i InventoryItem) LowStock() bool {
	return i.Quantity <= i.MinStockLevel
}
