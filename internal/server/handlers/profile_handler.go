package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/harvest-tracker/internal/domain/models"
	"github.com/mamadbah2/harvest-tracker/pkg/clients/harvestapi"
)

// ProfileHandler shows and edits the signed-in account.
type ProfileHandler struct {
	*Base
}

// NewProfileHandler constructs the profile handler.
func NewProfileHandler(base *Base) *ProfileHandler {
	return &ProfileHandler{Base: base}
}

func profileValues(u models.User) map[string]string {
	values := map[string]string{
		"name":              u.Name,
		"email":             u.Email,
		"state":             u.State,
		"billing_method":    string(u.BillingMethod),
		"equipment_details": optString(u.EquipmentDetails),
	}
	if u.EquipmentOwned {
		values["equipment_owned"] = "on"
	}
	return values
}

// Show renders the profile form from the session's cached profile.
func (h *ProfileHandler) Show(c *gin.Context) {
	s := CurrentSession(c)
	h.render(c, http.StatusOK, "profile.html", "Profile", gin.H{
		"Form":           profileValues(s.User),
		"BillingMethods": models.BillingMethods,
	})
}

// Update sends the edited fields and refreshes the session's profile.
func (h *ProfileHandler) Update(c *gin.Context) {
	s := CurrentSession(c)
	form, err := submitted(c)
	if err != nil {
		h.renderError(c, http.StatusBadRequest, "Malformed form submission")
		return
	}

	name := form.String("name", "Name")
	state := form.String("state", "State")
	billing := models.BillingMethod(form.Enum("billing_method", "Billing method", models.BillingMethods))
	owned := form.Bool("equipment_owned")
	// Sent even when blank so the stored text can be cleared.
	details := form.Value("equipment_details")
	in := models.UserUpdate{
		Name:             &name,
		State:            &state,
		BillingMethod:    &billing,
		EquipmentOwned:   &owned,
		EquipmentDetails: &details,
	}

	values := profileValues(s.User)
	for _, k := range []string{"name", "state", "billing_method", "equipment_details"} {
		values[k] = form.Value(k)
	}
	delete(values, "equipment_owned")
	if owned {
		values["equipment_owned"] = "on"
	}
	data := gin.H{"Form": values, "BillingMethods": models.BillingMethods}

	if err := form.Err(); err != nil {
		data["Banner"] = err.Error()
		h.render(c, http.StatusUnprocessableEntity, "profile.html", "Profile", data)
		return
	}

	user, err := h.client(c).Users().UpdateMe(c.Request.Context(), in)
	if err != nil {
		if h.endSession(c, err) {
			return
		}
		data["Banner"] = harvestapi.Message(err, "Failed to update profile")
		h.render(c, statusFor(err), "profile.html", "Profile", data)
		return
	}

	if err := h.sessions.Refresh(c.Request.Context(), s, *user); err != nil {
		h.logger.Warn("failed to refresh session profile", zap.Error(err))
	}
	h.render(c, http.StatusOK, "profile.html", "Profile", gin.H{
		"Form":           profileValues(*user),
		"BillingMethods": models.BillingMethods,
		"Notice":         "Profile updated successfully",
	})
}
