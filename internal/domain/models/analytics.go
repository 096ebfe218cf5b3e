package models

// PeriodProfitLoss is the dashboard's income-versus-expense figure for a period.
type PeriodProfitLoss struct {
	TotalIncome   float64   `json:"total_income"`
	TotalExpenses float64   `json:"total_expenses"`
	ProfitLoss    float64   `json:"profit_loss"`
	PeriodStart   Timestamp `json:"period_start"`
	PeriodEnd     Timestamp `json:"period_end"`
}

// CategoryBreakdown is one slice of the expense pie.
type CategoryBreakdown struct {
	Category   string  `json:"category"`
	Amount     float64 `json:"amount"`
	Percentage float64 `json:"percentage"`
}

// PeerComparison ranks one metric of the user against state and national peers.
type PeerComparison struct {
	Metric             string  `json:"metric"`
	UserValue          float64 `json:"user_value"`
	StateAverage       float64 `json:"state_average"`
	NationalAverage    float64 `json:"national_average"`
	StatePercentile    int     `json:"state_percentile"`
	NationalPercentile int     `json:"national_percentile"`
}

// AnalyticsResponse is the /api/analytics/dashboard payload.
type AnalyticsResponse struct {
	ProfitLoss       PeriodProfitLoss    `json:"profit_loss"`
	ExpenseBreakdown []CategoryBreakdown `json:"expense_breakdown"`
	PeerComparisons  []PeerComparison    `json:"peer_comparisons"`
	Insights         []string            `json:"insights"`
}
