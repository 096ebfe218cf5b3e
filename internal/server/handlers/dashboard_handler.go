package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mamadbah2/harvest-tracker/internal/domain/models"
	"github.com/mamadbah2/harvest-tracker/internal/service/dashboard"
	"github.com/mamadbah2/harvest-tracker/pkg/clients/harvestapi"
)

// DashboardHandler renders the analytics overview.
type DashboardHandler struct {
	*Base
	svc *dashboard.Service
}

// NewDashboardHandler constructs the dashboard handler.
func NewDashboardHandler(base *Base, svc *dashboard.Service) *DashboardHandler {
	return &DashboardHandler{Base: base, svc: svc}
}

// Show loads every dashboard panel or none of them. start_date and end_date
// narrow the period; unparsable values fall back to the last 30 days.
func (h *DashboardHandler) Show(c *gin.Context) {
	r := harvestapi.DateRange{
		Start: queryDay(c, "start_date"),
		End:   queryDay(c, "end_date"),
	}

	view, err := h.svc.Load(c.Request.Context(), h.client(c), r)
	if err != nil {
		if h.endSession(c, err) {
			return
		}
		h.render(c, statusFor(err), "dashboard.html", "Dashboard", gin.H{
			"Banner": harvestapi.Message(err, "Failed to load dashboard"),
			"Start":  c.Query("start_date"),
			"End":    c.Query("end_date"),
		})
		return
	}

	h.render(c, http.StatusOK, "dashboard.html", "Dashboard", gin.H{
		"View":  view,
		"Start": view.Range.Start.Format(models.DayLayout),
		"End":   view.Range.End.Format(models.DayLayout),
	})
}

func queryDay(c *gin.Context, key string) time.Time {
	t, err := time.Parse(models.DayLayout, c.Query(key))
	if err != nil {
		return time.Time{}
	}
	return t
}
