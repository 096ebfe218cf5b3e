package models

import "time"

// SeasonProfitLoss is the backend's profit/loss projection for a harvest season.
type SeasonProfitLoss struct {
	HarvestDurationDays float64 `json:"harvest_duration_days" bson:"harvest_duration_days"`
	AcresBilled         float64 `json:"acres_billed" bson:"acres_billed"`
	TotalRevenue        float64 `json:"total_revenue" bson:"total_revenue"`
	TotalExpenses       float64 `json:"total_expenses" bson:"total_expenses"`
	GrossProfit         float64 `json:"gross_profit" bson:"gross_profit"`
	NetProfit           float64 `json:"net_profit" bson:"net_profit"`
	ProfitMargin        float64 `json:"profit_margin" bson:"profit_margin"`
	CostPerAcre         float64 `json:"cost_per_acre" bson:"cost_per_acre"`
	RevenuePerAcre      float64 `json:"revenue_per_acre" bson:"revenue_per_acre"`
	ProfitPerAcre       float64 `json:"profit_per_acre" bson:"profit_per_acre"`
}

// CostBreakdown splits season expenses into cost centres.
type CostBreakdown struct {
	EquipmentCost   float64 `json:"equipment_cost" bson:"equipment_cost"`
	HousingCost     float64 `json:"housing_cost" bson:"housing_cost"`
	EmployeeCost    float64 `json:"employee_cost" bson:"employee_cost"`
	FuelCost        float64 `json:"fuel_cost" bson:"fuel_cost"`
	MaintenanceCost float64 `json:"maintenance_cost" bson:"maintenance_cost"`
	InsuranceCost   float64 `json:"insurance_cost" bson:"insurance_cost"`
	TaxCost         float64 `json:"tax_cost" bson:"tax_cost"`
	OtherCost       float64 `json:"other_cost" bson:"other_cost"`
	TotalCost       float64 `json:"total_cost" bson:"total_cost"`
}

// Lines returns the cost centres in display order, excluding the total.
func (c CostBreakdown) Lines() []Amount {
	return []Amount{
		{Label: "Equipment", Value: c.EquipmentCost},
		{Label: "Housing", Value: c.HousingCost},
		{Label: "Employees", Value: c.EmployeeCost},
		{Label: "Fuel", Value: c.FuelCost},
		{Label: "Maintenance", Value: c.MaintenanceCost},
		{Label: "Insurance", Value: c.InsuranceCost},
		{Label: "Taxes", Value: c.TaxCost},
		{Label: "Other", Value: c.OtherCost},
	}
}

// Amount is a labelled figure.
type Amount struct {
	Label string  `bson:"label"`
	Value float64 `bson:"value"`
}

// RevenueBreakdown splits season revenue by crop.
type RevenueBreakdown struct {
	TotalRevenue   float64            `json:"total_revenue" bson:"total_revenue"`
	RevenueByCrop  map[string]float64 `json:"revenue_by_crop" bson:"revenue_by_crop"`
	RevenuePerAcre float64            `json:"revenue_per_acre" bson:"revenue_per_acre"`
}

// EquipmentAnalysis holds per-machine cost figures keyed by equipment name.
type EquipmentAnalysis struct {
	EquipmentCostBreakdown map[string]float64 `json:"equipment_cost_breakdown" bson:"equipment_cost_breakdown"`
	CostPerAcreByEquipment map[string]float64 `json:"cost_per_acre_by_equipment" bson:"cost_per_acre_by_equipment"`
}

// SeasonReport joins the four summary projections of one season.
type SeasonReport struct {
	SeasonID          int64             `json:"season_id" bson:"season_id"`
	OwnerID           int64             `json:"owner_id" bson:"owner_id"`
	SeasonName        string            `json:"season_name" bson:"season_name"`
	ProfitLoss        SeasonProfitLoss  `json:"profit_loss" bson:"profit_loss"`
	CostBreakdown     CostBreakdown     `json:"cost_breakdown" bson:"cost_breakdown"`
	RevenueBreakdown  RevenueBreakdown  `json:"revenue_breakdown" bson:"revenue_breakdown"`
	EquipmentAnalysis EquipmentAnalysis `json:"equipment_analysis" bson:"equipment_analysis"`
	GeneratedAt       time.Time         `json:"generated_at" bson:"generated_at"`
}
