package handlers

import (
	"context"
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/mamadbah2/harvest-tracker/internal/aggregate"
	"github.com/mamadbah2/harvest-tracker/internal/domain/models"
	"github.com/mamadbah2/harvest-tracker/internal/page"
	"github.com/mamadbah2/harvest-tracker/internal/service/dashboard"
	"github.com/mamadbah2/harvest-tracker/pkg/clients/harvestapi"
)

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func optFloat(v *float64) string {
	if v == nil {
		return ""
	}
	return formatFloat(*v)
}

func optString(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}

func optDay(v *models.Timestamp) string {
	if v == nil {
		return ""
	}
	return v.DayString()
}

func optMoney(v *float64) string {
	if v == nil {
		return "-"
	}
	return page.Money(*v)
}

func checkbox(b bool) string {
	if b {
		return "on"
	}
	return ""
}

func count(n int) string {
	return strconv.Itoa(n)
}

func topOr(s aggregate.Summary, fallback string) string {
	if !s.HasTop {
		return fallback
	}
	return s.Top
}

// IncomeConfig is the income entries page.
func IncomeConfig() *page.Config[models.IncomeEntry, models.IncomeInput] {
	return &page.Config[models.IncomeEntry, models.IncomeInput]{
		Name:     "income",
		Title:    "Income",
		Singular: "income entry",
		Plural:   "income entries",
		Columns: []page.Column[models.IncomeEntry]{
			{Header: "Date", Value: func(e models.IncomeEntry) string { return e.HarvestDate.DayString() }},
			{Header: "Acres", Value: func(e models.IncomeEntry) string { return page.Number(e.AcresHarvested) }, Numeric: true},
			{Header: "Rate/Unit", Value: func(e models.IncomeEntry) string { return page.Money(e.RatePerUnit) }, Numeric: true},
			{Header: "Total", Value: func(e models.IncomeEntry) string { return page.Money(e.TotalEarned) }, Numeric: true},
			{Header: "Client", Value: func(e models.IncomeEntry) string { return page.OrDash(e.ClientName) }},
			{Header: "Notes", Value: func(e models.IncomeEntry) string { return page.OrDash(e.Notes) }},
		},
		Fields: []page.Field{
			{Name: "harvest_date", Label: "Harvest date", Kind: page.KindDate, Required: true},
			{Name: "acres_harvested", Label: "Acres harvested", Kind: page.KindNumber, Required: true, Step: "0.01"},
			{Name: "rate_per_unit", Label: "Rate per unit", Kind: page.KindNumber, Required: true, Step: "0.01"},
			{Name: "total_earned", Label: "Total earned", Kind: page.KindNumber, Required: true, Step: "0.01"},
			{Name: "client_name", Label: "Client name", Kind: page.KindText},
			{Name: "notes", Label: "Notes", Kind: page.KindTextArea},
		},
		ID: func(e models.IncomeEntry) int64 { return e.ID },
		Encode: func(e models.IncomeEntry) map[string]string {
			return map[string]string{
				"harvest_date":    e.HarvestDate.DayString(),
				"acres_harvested": formatFloat(e.AcresHarvested),
				"rate_per_unit":   formatFloat(e.RatePerUnit),
				"total_earned":    formatFloat(e.TotalEarned),
				"client_name":     optString(e.ClientName),
				"notes":           optString(e.Notes),
			}
		},
		Decode: func(f *page.Form, _ page.Scope) (models.IncomeInput, error) {
			in := models.IncomeInput{
				HarvestDate:    f.Date("harvest_date", "Harvest date"),
				AcresHarvested: f.Float("acres_harvested", "Acres harvested"),
				RatePerUnit:    f.Float("rate_per_unit", "Rate per unit"),
				TotalEarned:    f.Float("total_earned", "Total earned"),
				ClientName:     f.OptionalString("client_name"),
				Notes:          f.OptionalString("notes"),
			}
			return in, f.Err()
		},
		Stats: func(entries []models.IncomeEntry) []page.Stat {
			s := aggregate.Summarize(dashboard.IncomeItems(entries))
			acres := aggregate.Total(aggregate.Items(entries,
				func(models.IncomeEntry) string { return "" },
				func(e models.IncomeEntry) float64 { return e.AcresHarvested }))
			return []page.Stat{
				{Label: "Entries", Value: count(s.Count)},
				{Label: "Total earned", Value: page.MoneyDecimal(s.Total)},
				{Label: "Average per entry", Value: page.MoneyDecimal(s.Average)},
				{Label: "Acres harvested", Value: page.Number(acres.InexactFloat64())},
				{Label: "Top client", Value: topOr(s, "-")},
			}
		},
		List: func(ctx context.Context, c *harvestapi.Client, _ page.Scope) ([]models.IncomeEntry, error) {
			return c.Income().List(ctx, harvestapi.ListFilter{})
		},
		Create: func(ctx context.Context, c *harvestapi.Client, in models.IncomeInput) error {
			_, err := c.Income().Create(ctx, in)
			return err
		},
		Update: func(ctx context.Context, c *harvestapi.Client, id int64, in models.IncomeInput) error {
			_, err := c.Income().Update(ctx, id, in)
			return err
		},
		Delete: func(ctx context.Context, c *harvestapi.Client, id int64) error {
			return c.Income().Delete(ctx, id)
		},
	}
}

// ExpenseConfig is the expense entries page.
func ExpenseConfig() *page.Config[models.ExpenseEntry, models.ExpenseInput] {
	return &page.Config[models.ExpenseEntry, models.ExpenseInput]{
		Name:     "expenses",
		Title:    "Expenses",
		Singular: "expense entry",
		Plural:   "expense entries",
		Columns: []page.Column[models.ExpenseEntry]{
			{Header: "Date", Value: func(e models.ExpenseEntry) string { return e.ExpenseDate.DayString() }},
			{Header: "Category", Value: func(e models.ExpenseEntry) string {
				return models.LabelFor(models.ExpenseCategories, string(e.Category))
			}},
			{Header: "Amount", Value: func(e models.ExpenseEntry) string { return page.Money(e.Amount) }, Numeric: true},
			{Header: "Description", Value: func(e models.ExpenseEntry) string { return page.OrDash(e.Description) }},
			{Header: "Notes", Value: func(e models.ExpenseEntry) string { return page.OrDash(e.Notes) }},
		},
		Fields: []page.Field{
			{Name: "expense_date", Label: "Date", Kind: page.KindDate, Required: true},
			{Name: "category", Label: "Category", Kind: page.KindSelect, Required: true, Options: models.ExpenseCategories},
			{Name: "amount", Label: "Amount", Kind: page.KindNumber, Required: true, Step: "0.01"},
			{Name: "description", Label: "Description", Kind: page.KindText},
			{Name: "notes", Label: "Notes", Kind: page.KindTextArea},
		},
		ID: func(e models.ExpenseEntry) int64 { return e.ID },
		Encode: func(e models.ExpenseEntry) map[string]string {
			return map[string]string{
				"expense_date": e.ExpenseDate.DayString(),
				"category":     string(e.Category),
				"amount":       formatFloat(e.Amount),
				"description":  optString(e.Description),
				"notes":        optString(e.Notes),
			}
		},
		Defaults: func() map[string]string {
			return map[string]string{"category": string(models.ExpenseFuel)}
		},
		Decode: func(f *page.Form, _ page.Scope) (models.ExpenseInput, error) {
			in := models.ExpenseInput{
				ExpenseDate: f.Date("expense_date", "Date"),
				Category:    models.ExpenseCategory(f.Enum("category", "Category", models.ExpenseCategories)),
				Amount:      f.Float("amount", "Amount"),
				Description: f.OptionalString("description"),
				Notes:       f.OptionalString("notes"),
			}
			return in, f.Err()
		},
		Stats: func(entries []models.ExpenseEntry) []page.Stat {
			s := aggregate.Summarize(dashboard.ExpenseItems(entries))
			detail := make([]models.Amount, 0, s.Groups.Len())
			for _, k := range s.Groups.Keys {
				detail = append(detail, models.Amount{Label: k, Value: s.Groups.Get(k).InexactFloat64()})
			}
			return []page.Stat{
				{Label: "Entries", Value: count(s.Count)},
				{Label: "Total expenses", Value: page.MoneyDecimal(s.Total)},
				{Label: "Average per entry", Value: page.MoneyDecimal(s.Average)},
				{Label: "Top category", Value: topOr(s, "-"), Detail: detail},
			}
		},
		List: func(ctx context.Context, c *harvestapi.Client, _ page.Scope) ([]models.ExpenseEntry, error) {
			return c.Expenses().List(ctx, harvestapi.ListFilter{})
		},
		Create: func(ctx context.Context, c *harvestapi.Client, in models.ExpenseInput) error {
			_, err := c.Expenses().Create(ctx, in)
			return err
		},
		Update: func(ctx context.Context, c *harvestapi.Client, id int64, in models.ExpenseInput) error {
			_, err := c.Expenses().Update(ctx, id, in)
			return err
		},
		Delete: func(ctx context.Context, c *harvestapi.Client, id int64) error {
			return c.Expenses().Delete(ctx, id)
		},
	}
}

// SeasonConfig is the harvest seasons page.
func SeasonConfig() *page.Config[models.HarvestSeason, models.HarvestSeasonInput] {
	return &page.Config[models.HarvestSeason, models.HarvestSeasonInput]{
		Name:     "seasons",
		Title:    "Harvest Seasons",
		Singular: "harvest season",
		Plural:   "harvest seasons",
		Columns: []page.Column[models.HarvestSeason]{
			{Header: "Business Name", Value: func(s models.HarvestSeason) string { return s.BusinessName }},
			{Header: "Pay Cycle", Value: func(s models.HarvestSeason) string {
				return models.LabelFor(models.PayCycles, string(s.PayCycle))
			}},
			{Header: "Interest Rate", Value: func(s models.HarvestSeason) string { return page.Percent(s.InterestRate) }, Numeric: true},
			{Header: "Est. Start", Value: func(s models.HarvestSeason) string { return orDash(optDay(s.EstimatedStartDate)) }},
			{Header: "Est. End", Value: func(s models.HarvestSeason) string { return orDash(optDay(s.EstimatedEndDate)) }},
			{Header: "Actual Start", Value: func(s models.HarvestSeason) string { return orDash(optDay(s.ActualStartDate)) }},
			{Header: "Actual End", Value: func(s models.HarvestSeason) string { return orDash(optDay(s.ActualEndDate)) }},
			{Header: "Status", Value: func(s models.HarvestSeason) string {
				if s.IsActive {
					return "Active"
				}
				return "Closed"
			}},
		},
		Fields: []page.Field{
			{Name: "business_name", Label: "Business name", Kind: page.KindText, Required: true},
			{Name: "business_address", Label: "Business address", Kind: page.KindText},
			{Name: "contact_phone", Label: "Contact phone", Kind: page.KindText},
			{Name: "contact_email", Label: "Contact email", Kind: page.KindEmail},
			{Name: "estimated_start_date", Label: "Estimated start", Kind: page.KindDate},
			{Name: "estimated_end_date", Label: "Estimated end", Kind: page.KindDate},
			{Name: "actual_start_date", Label: "Actual start", Kind: page.KindDate},
			{Name: "actual_end_date", Label: "Actual end", Kind: page.KindDate},
			{Name: "pay_cycle", Label: "Pay cycle", Kind: page.KindSelect, Required: true, Options: models.PayCycles},
			{Name: "interest_rate", Label: "Interest rate (%)", Kind: page.KindNumber, Step: "0.1"},
			{Name: "is_active", Label: "Active", Kind: page.KindCheckbox},
		},
		Actions: []page.Action{{
			Name:     "calculate",
			Label:    "Calculate",
			Fallback: "Failed to calculate profit/loss",
			Run: func(ctx context.Context, c *harvestapi.Client, id int64) error {
				return c.HarvestSeasons().CalculateProfitLoss(ctx, id)
			},
		}},
		ID: func(s models.HarvestSeason) int64 { return s.ID },
		Encode: func(s models.HarvestSeason) map[string]string {
			return map[string]string{
				"business_name":        s.BusinessName,
				"business_address":     optString(s.BusinessAddress),
				"contact_phone":        optString(s.ContactPhone),
				"contact_email":        optString(s.ContactEmail),
				"estimated_start_date": optDay(s.EstimatedStartDate),
				"estimated_end_date":   optDay(s.EstimatedEndDate),
				"actual_start_date":    optDay(s.ActualStartDate),
				"actual_end_date":      optDay(s.ActualEndDate),
				"pay_cycle":            string(s.PayCycle),
				"interest_rate":        formatFloat(s.InterestRate),
				"is_active":            checkbox(s.IsActive),
			}
		},
		Defaults: func() map[string]string {
			return map[string]string{
				"pay_cycle":     string(models.PayWeekly),
				"interest_rate": formatFloat(models.DefaultInterestRate),
				"is_active":     "on",
			}
		},
		Decode: func(f *page.Form, _ page.Scope) (models.HarvestSeasonInput, error) {
			active := f.Bool("is_active")
			in := models.HarvestSeasonInput{
				BusinessName:       f.String("business_name", "Business name"),
				BusinessAddress:    f.OptionalString("business_address"),
				ContactPhone:       f.OptionalString("contact_phone"),
				ContactEmail:       f.OptionalString("contact_email"),
				EstimatedStartDate: f.OptionalDate("estimated_start_date", "Estimated start"),
				EstimatedEndDate:   f.OptionalDate("estimated_end_date", "Estimated end"),
				ActualStartDate:    f.OptionalDate("actual_start_date", "Actual start"),
				ActualEndDate:      f.OptionalDate("actual_end_date", "Actual end"),
				PayCycle:           models.PayCycle(f.Enum("pay_cycle", "Pay cycle", models.PayCycles)),
				InterestRate:       f.OptionalFloat("interest_rate", "Interest rate"),
				IsActive:           &active,
			}
			if in.InterestRate != nil {
				f.Check(*in.InterestRate >= 0 && *in.InterestRate <= 100, "Interest rate must be between 0 and 100")
			}
			return in, f.Err()
		},
		Stats: func(seasons []models.HarvestSeason) []page.Stat {
			active := 0
			for _, s := range seasons {
				if s.IsActive {
					active++
				}
			}
			return []page.Stat{
				{Label: "Seasons", Value: count(len(seasons))},
				{Label: "Active", Value: count(active)},
			}
		},
		Links: func(s models.HarvestSeason, _ page.Scope) []page.Link {
			base := fmt.Sprintf("/seasons/%d", s.ID)
			return []page.Link{
				{Label: "Equipment", Href: base + "/equipment"},
				{Label: "Revenue", Href: base + "/revenue"},
				{Label: "Summary", Href: base + "/summary"},
			}
		},
		List: func(ctx context.Context, c *harvestapi.Client, _ page.Scope) ([]models.HarvestSeason, error) {
			return c.HarvestSeasons().List(ctx)
		},
		Create: func(ctx context.Context, c *harvestapi.Client, in models.HarvestSeasonInput) error {
			_, err := c.HarvestSeasons().Create(ctx, in)
			return err
		},
		Update: func(ctx context.Context, c *harvestapi.Client, id int64, in models.HarvestSeasonInput) error {
			_, err := c.HarvestSeasons().Update(ctx, id, in)
			return err
		},
		Delete: func(ctx context.Context, c *harvestapi.Client, id int64) error {
			return c.HarvestSeasons().Delete(ctx, id)
		},
	}
}

// EquipmentConfig is the per-season equipment page.
func EquipmentConfig() *page.Config[models.Equipment, models.EquipmentInput] {
	leased := map[string][]string{"ownership_type": {string(models.OwnershipLeased)}}
	financed := map[string][]string{"ownership_type": {string(models.OwnershipFinanced)}}

	return &page.Config[models.Equipment, models.EquipmentInput]{
		Name:     "equipment",
		Title:    "Equipment",
		Singular: "equipment",
		Plural:   "equipment",
		Scoped:   true,
		Columns: []page.Column[models.Equipment]{
			{Header: "Name", Value: func(e models.Equipment) string { return e.Name }},
			{Header: "Type", Value: func(e models.Equipment) string {
				return models.LabelFor(models.EquipmentTypes, string(e.EquipmentType))
			}},
			{Header: "Ownership", Value: func(e models.Equipment) string {
				return models.LabelFor(models.OwnershipTypes, string(e.OwnershipType))
			}},
			{Header: "Purchase Price", Value: func(e models.Equipment) string { return optMoney(e.PurchasePrice) }, Numeric: true},
			{Header: "Current Value", Value: func(e models.Equipment) string { return optMoney(e.CurrentValue) }, Numeric: true},
			{Header: "Working Days", Value: func(e models.Equipment) string { return orDash(optFloat(e.WorkingDays)) }, Numeric: true},
		},
		Fields: []page.Field{
			{Name: "name", Label: "Name", Kind: page.KindText, Required: true},
			{Name: "equipment_type", Label: "Type", Kind: page.KindSelect, Required: true, Options: models.EquipmentTypes},
			{Name: "ownership_type", Label: "Ownership", Kind: page.KindSelect, Required: true, Options: models.OwnershipTypes},
			{Name: "purchase_date", Label: "Purchase date", Kind: page.KindDate},
			{Name: "purchase_price", Label: "Purchase price", Kind: page.KindNumber, Step: "0.01"},
			{Name: "current_value", Label: "Current value", Kind: page.KindNumber, Step: "0.01"},
			{Name: "years_ownership", Label: "Years of ownership", Kind: page.KindNumber, Step: "0.1"},
			{Name: "lease_rate", Label: "Lease rate", Kind: page.KindNumber, Step: "0.01", ShowWhen: leased},
			{Name: "finance_rate", Label: "Finance rate (%)", Kind: page.KindNumber, Step: "0.01", ShowWhen: financed},
			{Name: "down_payment", Label: "Down payment", Kind: page.KindNumber, Step: "0.01", ShowWhen: financed},
			{Name: "monthly_payment", Label: "Monthly payment", Kind: page.KindNumber, Step: "0.01", ShowWhen: financed},
			{Name: "working_days", Label: "Working days", Kind: page.KindNumber, Step: "1"},
		},
		Actions: []page.Action{{
			Name:     "calculate-costs",
			Label:    "Calculate costs",
			Fallback: "Failed to calculate equipment costs",
			Run: func(ctx context.Context, c *harvestapi.Client, id int64) error {
				return c.Equipment().CalculateCosts(ctx, id)
			},
		}},
		ID: func(e models.Equipment) int64 { return e.ID },
		Encode: func(e models.Equipment) map[string]string {
			purchase := ""
			if e.PurchaseDate != nil {
				purchase = e.PurchaseDate.String()
			}
			return map[string]string{
				"name":            e.Name,
				"equipment_type":  string(e.EquipmentType),
				"ownership_type":  string(e.OwnershipType),
				"purchase_date":   purchase,
				"purchase_price":  optFloat(e.PurchasePrice),
				"current_value":   optFloat(e.CurrentValue),
				"years_ownership": optFloat(e.YearsOwnership),
				"lease_rate":      optFloat(e.LeaseRate),
				"finance_rate":    optFloat(e.FinanceRate),
				"down_payment":    optFloat(e.DownPayment),
				"monthly_payment": optFloat(e.MonthlyPayment),
				"working_days":    optFloat(e.WorkingDays),
			}
		},
		Defaults: func() map[string]string {
			return map[string]string{
				"equipment_type": string(models.EquipmentCombine),
				"ownership_type": string(models.OwnershipOwned),
			}
		},
		Decode: func(f *page.Form, s page.Scope) (models.EquipmentInput, error) {
			in := models.EquipmentInput{
				HarvestSeasonID: s.SeasonID,
				Name:            f.String("name", "Name"),
				EquipmentType:   models.EquipmentType(f.Enum("equipment_type", "Type", models.EquipmentTypes)),
				OwnershipType:   models.OwnershipType(f.Enum("ownership_type", "Ownership", models.OwnershipTypes)),
				PurchaseDate:    f.Day("purchase_date", "Purchase date"),
				PurchasePrice:   f.OptionalFloat("purchase_price", "Purchase price"),
				CurrentValue:    f.OptionalFloat("current_value", "Current value"),
				YearsOwnership:  f.OptionalFloat("years_ownership", "Years of ownership"),
				LeaseRate:       f.OptionalFloat("lease_rate", "Lease rate"),
				FinanceRate:     f.OptionalFloat("finance_rate", "Finance rate"),
				DownPayment:     f.OptionalFloat("down_payment", "Down payment"),
				MonthlyPayment:  f.OptionalFloat("monthly_payment", "Monthly payment"),
				WorkingDays:     f.OptionalFloat("working_days", "Working days"),
			}
			// Terms of the other ownership kinds are hidden in the dialog; drop them.
			if in.OwnershipType != models.OwnershipLeased {
				in.LeaseRate = nil
			}
			if in.OwnershipType != models.OwnershipFinanced {
				in.FinanceRate, in.DownPayment, in.MonthlyPayment = nil, nil, nil
			}
			return in, f.Err()
		},
		Stats: func(items []models.Equipment) []page.Stat {
			byOwnership := aggregate.GroupTotals(aggregate.Items(items,
				func(e models.Equipment) string { return string(e.OwnershipType) },
				func(models.Equipment) float64 { return 1 }))
			stats := []page.Stat{{Label: "Machines", Value: count(len(items))}}
			for _, o := range models.OwnershipTypes {
				stats = append(stats, page.Stat{Label: o.Label, Value: byOwnership.Get(o.Value).String()})
			}
			return stats
		},
		List: func(ctx context.Context, c *harvestapi.Client, s page.Scope) ([]models.Equipment, error) {
			return c.Equipment().ListBySeason(ctx, s.SeasonID)
		},
		Create: func(ctx context.Context, c *harvestapi.Client, in models.EquipmentInput) error {
			_, err := c.Equipment().Create(ctx, in)
			return err
		},
		Update: func(ctx context.Context, c *harvestapi.Client, id int64, in models.EquipmentInput) error {
			_, err := c.Equipment().Update(ctx, id, in)
			return err
		},
		Delete: func(ctx context.Context, c *harvestapi.Client, id int64) error {
			return c.Equipment().Delete(ctx, id)
		},
	}
}

// RevenueConfig is the per-season revenue page.
func RevenueConfig() *page.Config[models.RevenueEntry, models.RevenueInput] {
	return &page.Config[models.RevenueEntry, models.RevenueInput]{
		Name:     "revenue",
		Title:    "Revenue",
		Singular: "revenue entry",
		Plural:   "revenue entries",
		Scoped:   true,
		Columns: []page.Column[models.RevenueEntry]{
			{Header: "Date", Value: func(e models.RevenueEntry) string { return e.HarvestDate.DayString() }},
			{Header: "Crop", Value: func(e models.RevenueEntry) string {
				return models.LabelFor(models.CropTypes, string(e.CropType))
			}},
			{Header: "Pricing", Value: func(e models.RevenueEntry) string {
				return models.LabelFor(models.PricingModels, string(e.PricingModel))
			}},
			{Header: "Quantity", Value: func(e models.RevenueEntry) string { return page.Number(e.Quantity) }, Numeric: true},
			{Header: "Rate", Value: func(e models.RevenueEntry) string { return page.Money(e.Rate) }, Numeric: true},
			{Header: "Total", Value: func(e models.RevenueEntry) string { return page.Money(e.TotalRevenue) }, Numeric: true},
			{Header: "Client", Value: func(e models.RevenueEntry) string { return page.OrDash(e.ClientName) }},
			{Header: "State", Value: func(e models.RevenueEntry) string { return page.OrDash(e.ClientState) }},
		},
		Fields: []page.Field{
			{Name: "harvest_date", Label: "Harvest date", Kind: page.KindDate, Required: true},
			{Name: "crop_type", Label: "Crop", Kind: page.KindSelect, Required: true, Options: models.CropTypes},
			{Name: "pricing_model", Label: "Pricing model", Kind: page.KindSelect, Required: true, Options: models.PricingModels},
			{Name: "quantity", Label: "Quantity", Kind: page.KindNumber, Required: true, Step: "0.01"},
			{Name: "rate", Label: "Rate", Kind: page.KindNumber, Required: true, Step: "0.01"},
			{Name: "total_revenue", Label: "Total (blank = quantity x rate)", Kind: page.KindNumber, Step: "0.01"},
			{Name: "client_name", Label: "Client name", Kind: page.KindText},
			{Name: "client_state", Label: "Client state", Kind: page.KindText},
			{Name: "notes", Label: "Notes", Kind: page.KindTextArea},
		},
		ID: func(e models.RevenueEntry) int64 { return e.ID },
		Encode: func(e models.RevenueEntry) map[string]string {
			return map[string]string{
				"harvest_date":  e.HarvestDate.DayString(),
				"crop_type":     string(e.CropType),
				"pricing_model": string(e.PricingModel),
				"quantity":      formatFloat(e.Quantity),
				"rate":          formatFloat(e.Rate),
				"total_revenue": formatFloat(e.TotalRevenue),
				"client_name":   optString(e.ClientName),
				"client_state":  optString(e.ClientState),
				"notes":         optString(e.Notes),
			}
		},
		Defaults: func() map[string]string {
			return map[string]string{
				"crop_type":     string(models.CropSmallGrain),
				"pricing_model": string(models.PricingPerAcre),
			}
		},
		Decode: func(f *page.Form, s page.Scope) (models.RevenueInput, error) {
			in := models.RevenueInput{
				HarvestSeasonID: s.SeasonID,
				HarvestDate:     f.Date("harvest_date", "Harvest date"),
				CropType:        models.CropType(f.Enum("crop_type", "Crop", models.CropTypes)),
				PricingModel:    models.PricingModel(f.Enum("pricing_model", "Pricing model", models.PricingModels)),
				Quantity:        f.Float("quantity", "Quantity"),
				Rate:            f.Float("rate", "Rate"),
				ClientName:      f.OptionalString("client_name"),
				ClientState:     f.OptionalString("client_state"),
				Notes:           f.OptionalString("notes"),
			}
			if total := f.OptionalFloat("total_revenue", "Total"); total != nil {
				in.TotalRevenue = *total
			} else {
				in.TotalRevenue = decimal.NewFromFloat(in.Quantity).Mul(decimal.NewFromFloat(in.Rate)).Round(2).InexactFloat64()
			}
			return in, f.Err()
		},
		Stats: func(entries []models.RevenueEntry) []page.Stat {
			s := aggregate.Summarize(aggregate.Items(entries,
				func(e models.RevenueEntry) string { return models.LabelFor(models.CropTypes, string(e.CropType)) },
				func(e models.RevenueEntry) float64 { return e.TotalRevenue }))
			return []page.Stat{
				{Label: "Entries", Value: count(s.Count)},
				{Label: "Total revenue", Value: page.MoneyDecimal(s.Total)},
				{Label: "Average per entry", Value: page.MoneyDecimal(s.Average)},
				{Label: "Top crop", Value: topOr(s, "-")},
			}
		},
		List: func(ctx context.Context, c *harvestapi.Client, s page.Scope) ([]models.RevenueEntry, error) {
			return c.Revenue().ListBySeason(ctx, s.SeasonID)
		},
		Create: func(ctx context.Context, c *harvestapi.Client, in models.RevenueInput) error {
			_, err := c.Revenue().Create(ctx, in)
			return err
		},
		Update: func(ctx context.Context, c *harvestapi.Client, id int64, in models.RevenueInput) error {
			_, err := c.Revenue().Update(ctx, id, in)
			return err
		},
		Delete: func(ctx context.Context, c *harvestapi.Client, id int64) error {
			return c.Revenue().Delete(ctx, id)
		},
	}
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
