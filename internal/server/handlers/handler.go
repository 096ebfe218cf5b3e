package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/harvest-tracker/internal/page"
	"github.com/mamadbah2/harvest-tracker/internal/service/session"
	"github.com/mamadbah2/harvest-tracker/pkg/clients/harvestapi"
)

const (
	// SessionCookie carries the session id.
	SessionCookie = "hs_session"

	sessionKey = "session"
	loginPath  = "/login"
)

// Base holds what every handler needs: the session manager and cookie policy.
type Base struct {
	sessions     *session.Manager
	cookieSecure bool
	logger       *zap.Logger
}

// NewBase constructs the shared handler state.
func NewBase(sessions *session.Manager, cookieSecure bool, logger *zap.Logger) *Base {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Base{sessions: sessions, cookieSecure: cookieSecure, logger: logger}
}

// RequireSession resumes the session named by the cookie or redirects to the
// login page.
func (b *Base) RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, _ := c.Cookie(SessionCookie)
		s, err := b.sessions.Resume(c.Request.Context(), id)
		if err != nil {
			if !errors.Is(err, session.ErrSessionNotFound) && !errors.Is(err, session.ErrSessionExpired) {
				b.logger.Error("failed to resume session", zap.Error(err))
			}
			b.clearCookie(c)
			c.Redirect(http.StatusSeeOther, loginPath)
			c.Abort()
			return
		}
		c.Set(sessionKey, s)
		c.Next()
	}
}

// CurrentSession returns the session resumed by RequireSession.
func CurrentSession(c *gin.Context) *session.Session {
	v, ok := c.Get(sessionKey)
	if !ok {
		return nil
	}
	s, _ := v.(*session.Session)
	return s
}

func (b *Base) client(c *gin.Context) *harvestapi.Client {
	return b.sessions.Client(CurrentSession(c))
}

func (b *Base) startSession(c *gin.Context, s *session.Session) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookie, s.ID, int(b.sessions.TTL().Seconds()), "/", "", b.cookieSecure, true)
}

func (b *Base) clearCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookie, "", -1, "/", "", b.cookieSecure, true)
}

// endSession tears the session down when err says the token was rejected.
// It reports whether the response was written.
func (b *Base) endSession(c *gin.Context, err error) bool {
	if !harvestapi.IsSessionInvalid(err) {
		return false
	}
	if s := CurrentSession(c); s != nil {
		if lerr := b.sessions.Logout(c.Request.Context(), s.ID); lerr != nil {
			b.logger.Warn("failed to end rejected session", zap.Error(lerr))
		}
	}
	b.clearCookie(c)
	c.Redirect(http.StatusSeeOther, loginPath)
	return true
}

// render writes an HTML page with the layout fields filled in.
func (b *Base) render(c *gin.Context, status int, name, title string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	data["Title"] = title
	data["Path"] = c.Request.URL.Path
	if s := CurrentSession(c); s != nil {
		data["User"] = s.User
	}
	c.HTML(status, name, data)
}

func (b *Base) renderError(c *gin.Context, status int, message string) {
	b.render(c, status, "error.html", http.StatusText(status), gin.H{"Message": message})
}

// statusFor picks the response code of a page that failed with err.
func statusFor(err error) int {
	var formErr *page.FormError
	switch {
	case err == nil:
		return http.StatusOK
	case errors.As(err, &formErr), errors.Is(err, harvestapi.ErrValidation):
		return http.StatusUnprocessableEntity
	case errors.Is(err, harvestapi.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, harvestapi.ErrForbidden):
		return http.StatusForbidden
	default:
		return http.StatusBadGateway
	}
}

func paramID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
