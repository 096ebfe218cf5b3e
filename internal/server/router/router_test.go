package router

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/harvest-tracker/internal/config"
	"github.com/mamadbah2/harvest-tracker/internal/domain/models"
	"github.com/mamadbah2/harvest-tracker/internal/server/handlers"
	"github.com/mamadbah2/harvest-tracker/internal/service/dashboard"
	"github.com/mamadbah2/harvest-tracker/internal/service/reporting"
	"github.com/mamadbah2/harvest-tracker/internal/service/session"
	"github.com/mamadbah2/harvest-tracker/pkg/clients/harvestapi"
)

const revokedUser = "revoked@example.com"

// fakeAPI is an in-memory stand-in for the REST backend.
type fakeAPI struct {
	mu     sync.Mutex
	income []models.IncomeEntry
	nextID int64
	calls  []string

	profileUpdate map[string]any
}

func (f *fakeAPI) called(call string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.calls {
		if c == call {
			return true
		}
	}
	return false
}

func reply(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

func (f *fakeAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, r.Method+" "+r.URL.Path)

	if r.URL.Path == "/api/auth/login" {
		_ = r.ParseForm()
		if r.PostForm.Get("password") != "secret" {
			reply(w, http.StatusUnauthorized, map[string]string{"detail": "Incorrect email or password"})
			return
		}
		reply(w, http.StatusOK, models.AuthToken{AccessToken: "tok-" + r.PostForm.Get("username"), TokenType: "bearer"})
		return
	}

	auth := r.Header.Get("Authorization")
	if !strings.HasPrefix(auth, "Bearer tok-") {
		reply(w, http.StatusUnauthorized, map[string]string{"detail": "Not authenticated"})
		return
	}
	if r.URL.Path == "/api/auth/me" {
		reply(w, http.StatusOK, models.User{ID: 1, Email: strings.TrimPrefix(auth, "Bearer tok-"), Name: "Jo Harvester"})
		return
	}
	if auth == "Bearer tok-"+revokedUser {
		reply(w, http.StatusUnauthorized, map[string]string{"detail": "Could not validate credentials"})
		return
	}

	switch {
	case r.Method == http.MethodPut && r.URL.Path == "/api/users/me":
		f.profileUpdate = map[string]any{}
		_ = json.NewDecoder(r.Body).Decode(&f.profileUpdate)
		reply(w, http.StatusOK, models.User{ID: 1, Email: "jo@example.com", Name: f.profileUpdate["name"].(string)})
	case r.Method == http.MethodGet && r.URL.Path == "/api/income/":
		reply(w, http.StatusOK, f.income)
	case r.Method == http.MethodPost && r.URL.Path == "/api/income/":
		var in models.IncomeInput
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			reply(w, http.StatusUnprocessableEntity, map[string]string{"detail": err.Error()})
			return
		}
		f.nextID++
		entry := models.IncomeEntry{
			ID: f.nextID, AcresHarvested: in.AcresHarvested, RatePerUnit: in.RatePerUnit,
			TotalEarned: in.TotalEarned, ClientName: in.ClientName, HarvestDate: in.HarvestDate,
		}
		f.income = append(f.income, entry)
		reply(w, http.StatusOK, entry)
	case r.Method == http.MethodDelete && strings.HasPrefix(r.URL.Path, "/api/income/"):
		id, _ := strconv.ParseInt(strings.TrimPrefix(r.URL.Path, "/api/income/"), 10, 64)
		for i, e := range f.income {
			if e.ID == id {
				f.income = append(f.income[:i], f.income[i+1:]...)
				reply(w, http.StatusOK, map[string]string{"message": "deleted"})
				return
			}
		}
		reply(w, http.StatusNotFound, map[string]string{"detail": "Income entry not found"})
	case r.URL.Path == "/api/expenses/":
		reply(w, http.StatusOK, []models.ExpenseEntry{{ID: 1, Category: models.ExpenseFuel, Amount: 250}})
	case r.URL.Path == "/api/analytics/dashboard":
		reply(w, http.StatusOK, models.AnalyticsResponse{
			ProfitLoss: models.PeriodProfitLoss{TotalIncome: 1000, TotalExpenses: 250, ProfitLoss: 750},
			Insights:   []string{"Fuel is your largest expense"},
		})
	case r.URL.Path == "/api/harvest-seasons/":
		reply(w, http.StatusOK, []models.HarvestSeason{{ID: 7, BusinessName: "North Run", PayCycle: models.PayWeekly, IsActive: true}})
	case r.URL.Path == "/api/harvest-seasons/7":
		reply(w, http.StatusOK, models.HarvestSeason{ID: 7, UserID: 1, BusinessName: "North Run", IsActive: true})
	case r.Method == http.MethodPost && r.URL.Path == "/api/harvest-seasons/7/calculate":
		reply(w, http.StatusOK, map[string]string{"message": "ok"})
	case r.URL.Path == "/api/equipment/harvest-season/7":
		reply(w, http.StatusOK, []models.Equipment{{ID: 3, HarvestSeasonID: 7, Name: "Combine A", EquipmentType: models.EquipmentCombine, OwnershipType: models.OwnershipLeased}})
	case r.URL.Path == "/api/summary/harvest-season/7/profit-loss":
		reply(w, http.StatusOK, models.SeasonProfitLoss{TotalRevenue: 5000, TotalExpenses: 2000, NetProfit: 3000})
	case r.URL.Path == "/api/summary/harvest-season/7/cost-breakdown":
		reply(w, http.StatusOK, models.CostBreakdown{FuelCost: 2000, TotalCost: 2000})
	case r.URL.Path == "/api/summary/harvest-season/7/revenue-breakdown":
		reply(w, http.StatusOK, models.RevenueBreakdown{TotalRevenue: 5000, RevenueByCrop: map[string]float64{"corn": 5000}})
	case r.URL.Path == "/api/summary/harvest-season/7/equipment-analysis":
		reply(w, http.StatusOK, models.EquipmentAnalysis{EquipmentCostBreakdown: map[string]float64{"Combine A": 900}})
	default:
		reply(w, http.StatusNotFound, map[string]string{"detail": "Not Found"})
	}
}

type harness struct {
	t      *testing.T
	engine *gin.Engine
	api    *fakeAPI
	store  *session.MemoryStore
	cookie *http.Cookie
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	return newHarnessWithReports(t, reporting.NewService(nil, nil, nil))
}

func newHarnessWithReports(t *testing.T, reports *reporting.Service) *harness {
	t.Helper()
	gin.SetMode(gin.TestMode)

	api := &fakeAPI{}
	srv := httptest.NewServer(api)
	t.Cleanup(srv.Close)

	client := harvestapi.NewClient(config.APIConfig{BaseURL: srv.URL, Timeout: 5 * time.Second}, nil)
	store := session.NewMemoryStore()
	templates, err := handlers.LoadTemplates()
	require.NoError(t, err)

	engine := New(Deps{
		Sessions:  session.NewManager(client, store, time.Hour, nil),
		Dashboard: dashboard.NewService(nil),
		Reports:   reports,
		Templates: templates,
	}, nil)
	return &harness{t: t, engine: engine, api: api, store: store}
}

func (h *harness) do(method, path string, form url.Values) *httptest.ResponseRecorder {
	h.t.Helper()
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, path, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if h.cookie != nil {
		req.AddCookie(h.cookie)
	}
	rec := httptest.NewRecorder()
	h.engine.ServeHTTP(rec, req)
	return rec
}

func (h *harness) login(email string) {
	h.t.Helper()
	rec := h.do(http.MethodPost, "/login", url.Values{"email": {email}, "password": {"secret"}})
	require.Equal(h.t, http.StatusSeeOther, rec.Code)
	assert.Equal(h.t, "/dashboard", rec.Header().Get("Location"))
	for _, c := range rec.Result().Cookies() {
		if c.Name == handlers.SessionCookie {
			h.cookie = c
		}
	}
	require.NotNil(h.t, h.cookie)
}

func TestHealthzAndHeaders(t *testing.T) {
	h := newHarness(t)
	rec := h.do(http.MethodGet, "/healthz", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", rec.Header().Get("X-Frame-Options"))
	assert.NotEmpty(t, rec.Header().Get(requestIDHeader))
}

func TestRequestIDIsPropagated(t *testing.T) {
	h := newHarness(t)
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(requestIDHeader, "abc-123")
	rec := httptest.NewRecorder()
	h.engine.ServeHTTP(rec, req)

	assert.Equal(t, "abc-123", rec.Header().Get(requestIDHeader))
}

func TestStaticAssetsServed(t *testing.T) {
	h := newHarness(t)
	rec := h.do(http.MethodGet, "/static/app.css", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), ".topbar")
}

func TestProtectedRoutesRedirectWithoutSession(t *testing.T) {
	h := newHarness(t)
	for _, path := range []string{"/", "/dashboard", "/income", "/seasons/7/equipment", "/seasons/7/summary"} {
		rec := h.do(http.MethodGet, path, nil)
		assert.Equal(t, http.StatusSeeOther, rec.Code, path)
		assert.Equal(t, "/login", rec.Header().Get("Location"), path)
	}
}

func TestLoginPageAndFailedLogin(t *testing.T) {
	h := newHarness(t)

	rec := h.do(http.MethodGet, "/login", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `action="/login"`)

	rec = h.do(http.MethodPost, "/login", url.Values{"email": {"jo@example.com"}, "password": {"wrong"}})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Incorrect email or password")
	assert.Equal(t, 0, h.store.Len())

	rec = h.do(http.MethodPost, "/login", url.Values{})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "Email is required, Password is required")
}

func TestRootRedirectsToDashboard(t *testing.T) {
	h := newHarness(t)
	h.login("jo@example.com")

	rec := h.do(http.MethodGet, "/", nil)
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/dashboard", rec.Header().Get("Location"))
}

func TestDashboardRendersAllPanels(t *testing.T) {
	h := newHarness(t)
	h.login("jo@example.com")

	rec := h.do(http.MethodGet, "/dashboard?start_date=2024-06-01&end_date=2024-06-30", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "$1,000.00")
	assert.Contains(t, body, "$750.00")
	assert.Contains(t, body, "Fuel is your largest expense")
	assert.Contains(t, body, `value="2024-06-01"`)
	assert.Contains(t, body, "Jo Harvester")
}

func TestIncomeCreateValidationAndDelete(t *testing.T) {
	h := newHarness(t)
	h.login("jo@example.com")

	rec := h.do(http.MethodGet, "/income", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Nothing recorded yet.")

	rec = h.do(http.MethodGet, "/income/new", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Add income entry")

	rec = h.do(http.MethodPost, "/income", url.Values{"acres_harvested": {"abc"}, "client_name": {"Miller"}})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Harvest date is required")
	assert.Contains(t, body, "Acres harvested must be a number")
	assert.Contains(t, body, `value="Miller"`)
	assert.False(t, h.api.called("POST /api/income/"))

	rec = h.do(http.MethodPost, "/income", url.Values{
		"harvest_date":    {"2024-06-15"},
		"acres_harvested": {"120"},
		"rate_per_unit":   {"35"},
		"total_earned":    {"4,200"},
		"client_name":     {"Miller"},
	})
	require.Equal(t, http.StatusOK, rec.Code)
	body = rec.Body.String()
	assert.Contains(t, body, "$4,200.00")
	assert.Contains(t, body, "Miller")
	assert.NotContains(t, body, `class="overlay"`)

	rec = h.do(http.MethodGet, "/income/1/edit", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Edit income entry")
	assert.Contains(t, rec.Body.String(), `value="2024-06-15"`)

	rec = h.do(http.MethodGet, "/income/99/edit", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "That income entry no longer exists")

	rec = h.do(http.MethodPost, "/income/1/delete", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Nothing recorded yet.")

	// Already gone: treated as deleted, no banner.
	rec = h.do(http.MethodPost, "/income/1/delete", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "Failed to delete")
}

func TestSeasonActionAndScopedEquipment(t *testing.T) {
	h := newHarness(t)
	h.login("jo@example.com")

	rec := h.do(http.MethodGet, "/seasons", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "North Run")
	assert.Contains(t, rec.Body.String(), "/seasons/7/equipment")

	rec = h.do(http.MethodPost, "/seasons/7/actions/calculate", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, h.api.called("POST /api/harvest-seasons/7/calculate"))

	rec = h.do(http.MethodPost, "/seasons/7/actions/bogus", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = h.do(http.MethodGet, "/seasons/7/equipment", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Combine A")
	assert.Contains(t, rec.Body.String(), "Leased")

	rec = h.do(http.MethodGet, "/seasons/abc/equipment", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSummaryAndDisabledExport(t *testing.T) {
	h := newHarness(t)
	h.login("jo@example.com")

	rec := h.do(http.MethodGet, "/seasons/7/summary", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "North Run")
	assert.Contains(t, body, "$3,000.00")
	assert.Contains(t, body, "Corn")
	assert.Contains(t, body, "Combine A")
	assert.NotContains(t, body, "Export to Sheets")

	rec = h.do(http.MethodPost, "/seasons/7/summary/export", nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "Report export is not configured")

	rec = h.do(http.MethodGet, "/seasons/8/summary", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Not Found")
}

type fakeSnapshots struct {
	reports []models.SeasonReport
}

func (f *fakeSnapshots) SaveSeasonReport(_ context.Context, report models.SeasonReport) error {
	f.reports = append(f.reports, report)
	return nil
}

func (f *fakeSnapshots) LatestSeasonReport(_ context.Context, ownerID, seasonID int64) (*models.SeasonReport, error) {
	for i := len(f.reports) - 1; i >= 0; i-- {
		if r := f.reports[i]; r.OwnerID == ownerID && r.SeasonID == seasonID {
			return &r, nil
		}
	}
	return nil, errors.New("no snapshot")
}

func TestSummarySnapshotsStayWithTheirOwner(t *testing.T) {
	snaps := &fakeSnapshots{reports: []models.SeasonReport{
		{SeasonID: 7, OwnerID: 1, ProfitLoss: models.SeasonProfitLoss{NetProfit: 1234.5}, GeneratedAt: time.Now().UTC()},
		{SeasonID: 8, OwnerID: 2, ProfitLoss: models.SeasonProfitLoss{NetProfit: 98765.43}, GeneratedAt: time.Now().UTC()},
	}}
	h := newHarnessWithReports(t, reporting.NewService(nil, snaps, nil))
	h.login("jo@example.com")

	rec := h.do(http.MethodGet, "/seasons/7/summary", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "$1,234.50")

	rec = h.do(http.MethodGet, "/seasons/8/summary", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.NotContains(t, rec.Body.String(), "98,765.43")
	assert.NotContains(t, rec.Body.String(), "Last stored report")
}

func TestProfileUpdateClearsEquipmentDetails(t *testing.T) {
	h := newHarness(t)
	h.login("jo@example.com")

	rec := h.do(http.MethodPost, "/profile", url.Values{
		"name":              {"Jo Cutter"},
		"state":             {"KS"},
		"billing_method":    {"per_acre"},
		"equipment_details": {""},
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Profile updated successfully")

	h.api.mu.Lock()
	defer h.api.mu.Unlock()
	require.Contains(t, h.api.profileUpdate, "equipment_details")
	assert.Equal(t, "", h.api.profileUpdate["equipment_details"])
	assert.Equal(t, false, h.api.profileUpdate["equipment_owned"])
}

func TestRevokedTokenEndsSession(t *testing.T) {
	h := newHarness(t)
	h.login(revokedUser)
	require.Equal(t, 1, h.store.Len())

	rec := h.do(http.MethodGet, "/income", nil)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))
	assert.Equal(t, 0, h.store.Len())
}

func TestLogoutClearsSession(t *testing.T) {
	h := newHarness(t)
	h.login("jo@example.com")

	rec := h.do(http.MethodPost, "/logout", nil)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, 0, h.store.Len())

	rec = h.do(http.MethodGet, "/dashboard", nil)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
}
