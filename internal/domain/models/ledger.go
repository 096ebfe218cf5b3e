package models

// IncomeEntry is a single harvest job billed to a client.
type IncomeEntry struct {
	ID             int64      `json:"id"`
	UserID         int64      `json:"user_id"`
	AcresHarvested float64    `json:"acres_harvested"`
	RatePerUnit    float64    `json:"rate_per_unit"`
	TotalEarned    float64    `json:"total_earned"`
	ClientName     *string    `json:"client_name,omitempty"`
	Notes          *string    `json:"notes,omitempty"`
	HarvestDate    Timestamp  `json:"harvest_date"`
	CreatedAt      Timestamp  `json:"created_at"`
	UpdatedAt      *Timestamp `json:"updated_at,omitempty"`
}

// IncomeInput is the create/update payload for income entries.
type IncomeInput struct {
	AcresHarvested float64   `json:"acres_harvested"`
	RatePerUnit    float64   `json:"rate_per_unit"`
	TotalEarned    float64   `json:"total_earned"`
	ClientName     *string   `json:"client_name,omitempty"`
	Notes          *string   `json:"notes,omitempty"`
	HarvestDate    Timestamp `json:"harvest_date"`
}

// ExpenseCategory classifies operating expenses.
type ExpenseCategory string

const (
	ExpenseFuel                  ExpenseCategory = "fuel"
	ExpenseLabor                 ExpenseCategory = "labor"
	ExpenseEquipmentLease        ExpenseCategory = "equipment_lease"
	ExpenseEquipmentRepair       ExpenseCategory = "equipment_repair"
	ExpenseEquipmentDepreciation ExpenseCategory = "equipment_depreciation"
	ExpenseRentInterest          ExpenseCategory = "rent_interest"
	ExpenseTaxes                 ExpenseCategory = "taxes"
	ExpenseOther                 ExpenseCategory = "other"
)

// ExpenseCategories lists the expense categories in display order.
var ExpenseCategories = []Option{
	{Value: string(ExpenseFuel), Label: "Fuel"},
	{Value: string(ExpenseLabor), Label: "Labor"},
	{Value: string(ExpenseEquipmentLease), Label: "Equipment Lease"},
	{Value: string(ExpenseEquipmentRepair), Label: "Equipment Repair"},
	{Value: string(ExpenseEquipmentDepreciation), Label: "Equipment Depreciation"},
	{Value: string(ExpenseRentInterest), Label: "Rent/Interest"},
	{Value: string(ExpenseTaxes), Label: "Taxes"},
	{Value: string(ExpenseOther), Label: "Other"},
}

// ExpenseEntry is a single operating expense.
type ExpenseEntry struct {
	ID          int64           `json:"id"`
	UserID      int64           `json:"user_id"`
	Category    ExpenseCategory `json:"category"`
	Amount      float64         `json:"amount"`
	Description *string         `json:"description,omitempty"`
	Notes       *string         `json:"notes,omitempty"`
	ExpenseDate Timestamp       `json:"expense_date"`
	CreatedAt   Timestamp       `json:"created_at"`
	UpdatedAt   *Timestamp      `json:"updated_at,omitempty"`
}

// ExpenseInput is the create/update payload for expense entries.
type ExpenseInput struct {
	Category    ExpenseCategory `json:"category"`
	Amount      float64         `json:"amount"`
	Description *string         `json:"description,omitempty"`
	Notes       *string         `json:"notes,omitempty"`
	ExpenseDate Timestamp       `json:"expense_date"`
}
