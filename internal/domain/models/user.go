package models

// BillingMethod is how a custom harvester bills clients.
type BillingMethod string

const (
	BillingPerAcre   BillingMethod = "per_acre"
	BillingPerBushel BillingMethod = "per_bushel"
	BillingPerHour   BillingMethod = "per_hour"
)

// BillingMethods lists the accepted billing methods in display order.
var BillingMethods = []Option{
	{Value: string(BillingPerAcre), Label: "Per Acre"},
	{Value: string(BillingPerBushel), Label: "Per Bushel"},
	{Value: string(BillingPerHour), Label: "Per Hour"},
}

// User is the authenticated account as returned by /api/auth/me.
type User struct {
	ID               int64         `json:"id"`
	Email            string        `json:"email"`
	Name             string        `json:"name"`
	State            string        `json:"state"`
	BillingMethod    BillingMethod `json:"billing_method"`
	EquipmentOwned   bool          `json:"equipment_owned"`
	EquipmentDetails *string       `json:"equipment_details,omitempty"`
	IsActive         bool          `json:"is_active"`
	IsAdmin          bool          `json:"is_admin"`
	CreatedAt        Timestamp     `json:"created_at"`
	UpdatedAt        *Timestamp    `json:"updated_at,omitempty"`
}

// RegisterRequest is the sign-up payload.
type RegisterRequest struct {
	Email            string        `json:"email"`
	Name             string        `json:"name"`
	Password         string        `json:"password"`
	State            string        `json:"state"`
	BillingMethod    BillingMethod `json:"billing_method"`
	EquipmentOwned   bool          `json:"equipment_owned"`
	EquipmentDetails *string       `json:"equipment_details,omitempty"`
}

// UserUpdate is a partial profile update; nil fields are left untouched.
type UserUpdate struct {
	Name             *string        `json:"name,omitempty"`
	State            *string        `json:"state,omitempty"`
	BillingMethod    *BillingMethod `json:"billing_method,omitempty"`
	EquipmentOwned   *bool          `json:"equipment_owned,omitempty"`
	EquipmentDetails *string        `json:"equipment_details,omitempty"`
}

// AuthToken is the login response.
type AuthToken struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Option is a selectable enum value with its display label.
type Option struct {
	Value string
	Label string
}

// LabelFor returns the label of value within options, or value itself.
func LabelFor(options []Option, value string) string {
	for _, o := range options {
		if o.Value == value {
			return o.Label
		}
	}
	return value
}

// ValidOption reports whether value is one of options.
func ValidOption(options []Option, value string) bool {
	for _, o := range options {
		if o.Value == value {
			return true
		}
	}
	return false
}
