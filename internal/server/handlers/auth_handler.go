package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/harvest-tracker/internal/domain/models"
	"github.com/mamadbah2/harvest-tracker/internal/page"
	"github.com/mamadbah2/harvest-tracker/pkg/clients/harvestapi"
)

const homePath = "/dashboard"

// AuthHandler serves sign-in, sign-up and sign-out.
type AuthHandler struct {
	*Base
}

// NewAuthHandler constructs the auth handler.
func NewAuthHandler(base *Base) *AuthHandler {
	return &AuthHandler{Base: base}
}

// LoginForm renders the sign-in page.
func (h *AuthHandler) LoginForm(c *gin.Context) {
	h.render(c, http.StatusOK, "login.html", "Sign in", gin.H{"Email": ""})
}

// Login authenticates and starts a session.
func (h *AuthHandler) Login(c *gin.Context) {
	form, err := submitted(c)
	if err != nil {
		h.renderError(c, http.StatusBadRequest, "Malformed form submission")
		return
	}
	email := form.String("email", "Email")
	password := form.String("password", "Password")
	if err := form.Err(); err != nil {
		h.loginFailed(c, email, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	s, err := h.sessions.Login(c.Request.Context(), email, password)
	if err != nil {
		status := http.StatusBadGateway
		if errors.Is(err, harvestapi.ErrUnauthorized) {
			status = http.StatusUnauthorized
		}
		h.logger.Info("login failed", zap.Error(err))
		h.loginFailed(c, email, harvestapi.Message(err, "Login failed"), status)
		return
	}

	h.startSession(c, s)
	c.Redirect(http.StatusSeeOther, homePath)
}

func (h *AuthHandler) loginFailed(c *gin.Context, email, banner string, status int) {
	h.render(c, status, "login.html", "Sign in", gin.H{"Email": email, "Banner": banner})
}

// RegisterForm renders the sign-up page.
func (h *AuthHandler) RegisterForm(c *gin.Context) {
	h.render(c, http.StatusOK, "register.html", "Create account", gin.H{
		"Form":           map[string]string{"billing_method": string(models.BillingPerAcre), "equipment_owned": "on"},
		"BillingMethods": models.BillingMethods,
	})
}

// Register creates the account and signs it in.
func (h *AuthHandler) Register(c *gin.Context) {
	form, err := submitted(c)
	if err != nil {
		h.renderError(c, http.StatusBadRequest, "Malformed form submission")
		return
	}

	in := models.RegisterRequest{
		Email:            form.String("email", "Email"),
		Name:             form.String("name", "Name"),
		Password:         form.String("password", "Password"),
		State:            form.String("state", "State"),
		BillingMethod:    models.BillingMethod(form.Enum("billing_method", "Billing method", models.BillingMethods)),
		EquipmentOwned:   form.Bool("equipment_owned"),
		EquipmentDetails: form.OptionalString("equipment_details"),
	}
	form.Check(form.Value("password") == form.Value("confirm_password"), "Passwords do not match")
	if err := form.Err(); err != nil {
		h.registerFailed(c, form, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	s, err := h.sessions.Register(c.Request.Context(), in)
	if err != nil {
		h.logger.Info("registration failed", zap.Error(err))
		h.registerFailed(c, form, harvestapi.Message(err, "Registration failed"), statusFor(err))
		return
	}

	h.startSession(c, s)
	c.Redirect(http.StatusSeeOther, homePath)
}

func (h *AuthHandler) registerFailed(c *gin.Context, form *page.Form, banner string, status int) {
	values := map[string]string{}
	for _, name := range []string{"email", "name", "state", "billing_method", "equipment_details"} {
		values[name] = form.Value(name)
	}
	if form.Bool("equipment_owned") {
		values["equipment_owned"] = "on"
	}
	h.render(c, status, "register.html", "Create account", gin.H{
		"Form":           values,
		"Banner":         banner,
		"BillingMethods": models.BillingMethods,
	})
}

// Logout ends the session.
func (h *AuthHandler) Logout(c *gin.Context) {
	if id, err := c.Cookie(SessionCookie); err == nil {
		if err := h.sessions.Logout(c.Request.Context(), id); err != nil {
			h.logger.Warn("logout failed", zap.Error(err))
		}
	}
	h.clearCookie(c)
	c.Redirect(http.StatusSeeOther, loginPath)
}
