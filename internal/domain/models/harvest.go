package models

// PayCycle is how often the crew is paid during a season.
type PayCycle string

const (
	PayWeekly      PayCycle = "weekly"
	PayBiWeekly    PayCycle = "bi_weekly"
	PaySemiMonthly PayCycle = "semi_monthly"
	PayMonthly     PayCycle = "monthly"
)

// PayCycles lists pay cycles in display order.
var PayCycles = []Option{
	{Value: string(PayWeekly), Label: "Weekly"},
	{Value: string(PayBiWeekly), Label: "Bi-Weekly"},
	{Value: string(PaySemiMonthly), Label: "Semi-Monthly"},
	{Value: string(PayMonthly), Label: "Monthly"},
}

// DefaultInterestRate is the backend default for new seasons, in percent.
const DefaultInterestRate = 6.0

// HarvestSeason groups the equipment and revenue of one custom-harvest run.
type HarvestSeason struct {
	ID                 int64      `json:"id"`
	UserID             int64      `json:"user_id"`
	BusinessName       string     `json:"business_name"`
	BusinessAddress    *string    `json:"business_address,omitempty"`
	ContactPhone       *string    `json:"contact_phone,omitempty"`
	ContactEmail       *string    `json:"contact_email,omitempty"`
	EstimatedStartDate *Timestamp `json:"estimated_start_date,omitempty"`
	EstimatedEndDate   *Timestamp `json:"estimated_end_date,omitempty"`
	ActualStartDate    *Timestamp `json:"actual_start_date,omitempty"`
	ActualEndDate      *Timestamp `json:"actual_end_date,omitempty"`
	PayCycle           PayCycle   `json:"pay_cycle"`
	InterestRate       float64    `json:"interest_rate"`
	IsActive           bool       `json:"is_active"`
	CreatedAt          Timestamp  `json:"created_at"`
	UpdatedAt          *Timestamp `json:"updated_at,omitempty"`
}

// HarvestSeasonInput is the create/update payload for seasons.
type HarvestSeasonInput struct {
	BusinessName       string     `json:"business_name"`
	BusinessAddress    *string    `json:"business_address,omitempty"`
	ContactPhone       *string    `json:"contact_phone,omitempty"`
	ContactEmail       *string    `json:"contact_email,omitempty"`
	EstimatedStartDate *Timestamp `json:"estimated_start_date,omitempty"`
	EstimatedEndDate   *Timestamp `json:"estimated_end_date,omitempty"`
	ActualStartDate    *Timestamp `json:"actual_start_date,omitempty"`
	ActualEndDate      *Timestamp `json:"actual_end_date,omitempty"`
	PayCycle           PayCycle   `json:"pay_cycle"`
	InterestRate       *float64   `json:"interest_rate,omitempty"`
	IsActive           *bool      `json:"is_active,omitempty"`
}

// EquipmentType enumerates harvest machinery.
type EquipmentType string

const (
	EquipmentCombine EquipmentType = "combine"
	EquipmentHeader  EquipmentType = "header"
	EquipmentTractor EquipmentType = "tractor"
	EquipmentTrailer EquipmentType = "trailer"
	EquipmentTruck   EquipmentType = "truck"
	EquipmentCamper  EquipmentType = "camper"
	EquipmentOther   EquipmentType = "other"
)

// EquipmentTypes lists equipment types in display order.
var EquipmentTypes = []Option{
	{Value: string(EquipmentCombine), Label: "Combine"},
	{Value: string(EquipmentHeader), Label: "Header"},
	{Value: string(EquipmentTractor), Label: "Tractor"},
	{Value: string(EquipmentTrailer), Label: "Trailer"},
	{Value: string(EquipmentTruck), Label: "Truck"},
	{Value: string(EquipmentCamper), Label: "Camper"},
	{Value: string(EquipmentOther), Label: "Other"},
}

// OwnershipType is how a piece of equipment is held.
type OwnershipType string

const (
	OwnershipOwned    OwnershipType = "owned"
	OwnershipLeased   OwnershipType = "leased"
	OwnershipFinanced OwnershipType = "financed"
)

// OwnershipTypes lists ownership types in display order.
var OwnershipTypes = []Option{
	{Value: string(OwnershipOwned), Label: "Owned"},
	{Value: string(OwnershipLeased), Label: "Leased"},
	{Value: string(OwnershipFinanced), Label: "Financed"},
}

// Equipment is a machine attached to a harvest season. Which financial fields
// are meaningful depends on OwnershipType: LeaseRate for leased, FinanceRate,
// DownPayment and MonthlyPayment for financed.
type Equipment struct {
	ID              int64         `json:"id"`
	HarvestSeasonID int64         `json:"harvest_season_id"`
	Name            string        `json:"name"`
	EquipmentType   EquipmentType `json:"equipment_type"`
	OwnershipType   OwnershipType `json:"ownership_type"`
	PurchaseDate    *Day          `json:"purchase_date,omitempty"`
	PurchasePrice   *float64      `json:"purchase_price,omitempty"`
	CurrentValue    *float64      `json:"current_value,omitempty"`
	YearsOwnership  *float64      `json:"years_ownership,omitempty"`
	LeaseRate       *float64      `json:"lease_rate,omitempty"`
	FinanceRate     *float64      `json:"finance_rate,omitempty"`
	DownPayment     *float64      `json:"down_payment,omitempty"`
	MonthlyPayment  *float64      `json:"monthly_payment,omitempty"`
	WorkingDays     *float64      `json:"working_days,omitempty"`
	IsActive        bool          `json:"is_active"`
	CreatedAt       Timestamp     `json:"created_at"`
	UpdatedAt       *Timestamp    `json:"updated_at,omitempty"`
}

// EquipmentInput is the create/update payload for equipment.
type EquipmentInput struct {
	HarvestSeasonID int64         `json:"harvest_season_id,omitempty"`
	Name            string        `json:"name"`
	EquipmentType   EquipmentType `json:"equipment_type"`
	OwnershipType   OwnershipType `json:"ownership_type"`
	PurchaseDate    *Day          `json:"purchase_date,omitempty"`
	PurchasePrice   *float64      `json:"purchase_price,omitempty"`
	CurrentValue    *float64      `json:"current_value,omitempty"`
	YearsOwnership  *float64      `json:"years_ownership,omitempty"`
	LeaseRate       *float64      `json:"lease_rate,omitempty"`
	FinanceRate     *float64      `json:"finance_rate,omitempty"`
	DownPayment     *float64      `json:"down_payment,omitempty"`
	MonthlyPayment  *float64      `json:"monthly_payment,omitempty"`
	WorkingDays     *float64      `json:"working_days,omitempty"`
}

// CropType enumerates harvested crops.
type CropType string

const (
	CropSmallGrain CropType = "small_grain"
	CropCorn       CropType = "corn"
	CropCotton     CropType = "cotton"
	CropSilage     CropType = "silage"
)

// CropTypes lists crop types in display order.
var CropTypes = []Option{
	{Value: string(CropSmallGrain), Label: "Small Grain"},
	{Value: string(CropCorn), Label: "Corn"},
	{Value: string(CropCotton), Label: "Cotton"},
	{Value: string(CropSilage), Label: "Silage"},
}

// PricingModel is the unit a revenue line is billed in.
type PricingModel string

const (
	PricingPerAcre   PricingModel = "per_acre"
	PricingPerBushel PricingModel = "per_bushel"
	PricingPerMinute PricingModel = "per_minute"
	PricingPerMile   PricingModel = "per_mile"
	PricingPerHour   PricingModel = "per_hour"
)

// PricingModels lists pricing models in display order.
var PricingModels = []Option{
	{Value: string(PricingPerAcre), Label: "Per Acre"},
	{Value: string(PricingPerBushel), Label: "Per Bushel"},
	{Value: string(PricingPerMinute), Label: "Per Minute"},
	{Value: string(PricingPerMile), Label: "Per Mile"},
	{Value: string(PricingPerHour), Label: "Per Hour"},
}

// RevenueEntry is one billed revenue line within a harvest season.
type RevenueEntry struct {
	ID              int64        `json:"id"`
	HarvestSeasonID int64        `json:"harvest_season_id"`
	CropType        CropType     `json:"crop_type"`
	PricingModel    PricingModel `json:"pricing_model"`
	ClientName      *string      `json:"client_name,omitempty"`
	ClientState     *string      `json:"client_state,omitempty"`
	Quantity        float64      `json:"quantity"`
	Rate            float64      `json:"rate"`
	TotalRevenue    float64      `json:"total_revenue"`
	HarvestDate     Timestamp    `json:"harvest_date"`
	Notes           *string      `json:"notes,omitempty"`
	CreatedAt       Timestamp    `json:"created_at"`
	UpdatedAt       *Timestamp   `json:"updated_at,omitempty"`
}

// RevenueInput is the create/update payload for revenue entries.
type RevenueInput struct {
	HarvestSeasonID int64        `json:"harvest_season_id,omitempty"`
	CropType        CropType     `json:"crop_type"`
	PricingModel    PricingModel `json:"pricing_model"`
	ClientName      *string      `json:"client_name,omitempty"`
	ClientState     *string      `json:"client_state,omitempty"`
	Quantity        float64      `json:"quantity"`
	Rate            float64      `json:"rate"`
	TotalRevenue    float64      `json:"total_revenue"`
	HarvestDate     Timestamp    `json:"harvest_date"`
	Notes           *string      `json:"notes,omitempty"`
}
