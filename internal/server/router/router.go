package router

import (
	"html/template"
	"io/fs"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mamadbah2/harvest-tracker/internal/server/handlers"
	"github.com/mamadbah2/harvest-tracker/internal/service/dashboard"
	"github.com/mamadbah2/harvest-tracker/internal/service/reporting"
	"github.com/mamadbah2/harvest-tracker/internal/service/session"
	"github.com/mamadbah2/harvest-tracker/web"
)

const requestIDHeader = "X-Request-ID"

// Deps are the services the HTTP surface needs.
type Deps struct {
	Sessions     *session.Manager
	Dashboard    *dashboard.Service
	Reports      *reporting.Service
	Templates    *template.Template
	CookieSecure bool
}

// New wires the Gin engine with required routes and middlewares.
func New(deps Deps, logger *zap.Logger) *gin.Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	if gin.Mode() != gin.TestMode {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(zapLoggerMiddleware(logger))
	r.Use(securityHeaders())
	r.SetHTMLTemplate(deps.Templates)

	if sub, err := fs.Sub(web.StaticFS, "static"); err == nil {
		r.StaticFS("/static", http.FS(sub))
	} else {
		logger.Warn("static assets unavailable", zap.Error(err))
	}

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	base := handlers.NewBase(deps.Sessions, deps.CookieSecure, logger.Named("handlers"))
	auth := handlers.NewAuthHandler(base)
	r.GET("/login", auth.LoginForm)
	r.POST("/login", auth.Login)
	r.GET("/register", auth.RegisterForm)
	r.POST("/register", auth.Register)

	protected := r.Group("/", base.RequireSession())
	protected.GET("", func(c *gin.Context) {
		c.Redirect(http.StatusFound, "/dashboard")
	})
	protected.POST("/logout", auth.Logout)

	protected.GET("/dashboard", handlers.NewDashboardHandler(base, deps.Dashboard).Show)

	profile := handlers.NewProfileHandler(base)
	protected.GET("/profile", profile.Show)
	protected.POST("/profile", profile.Update)

	handlers.NewResourceHandler(base, handlers.IncomeConfig(), "").Register(protected.Group("/income"))
	handlers.NewResourceHandler(base, handlers.ExpenseConfig(), "").Register(protected.Group("/expenses"))
	handlers.NewResourceHandler(base, handlers.SeasonConfig(), handlers.SeasonParam).Register(protected.Group("/seasons"))

	season := protected.Group("/seasons/:" + handlers.SeasonParam)
	handlers.NewResourceHandler(base, handlers.EquipmentConfig(), "").Register(season.Group("/equipment"))
	handlers.NewResourceHandler(base, handlers.RevenueConfig(), "").Register(season.Group("/revenue"))

	summary := handlers.NewSummaryHandler(base, deps.Reports)
	season.GET("/summary", summary.Show)
	season.POST("/summary/recalculate", summary.Recalculate)
	season.POST("/summary/export", summary.Export)

	logger.Info("router initialized")
	return r
}

func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		requestID := c.GetHeader(requestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Header(requestIDHeader, requestID)

		c.Next()

		logger.Info("request completed",
			zap.String("request_id", requestID),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("client_ip", c.ClientIP()))
	}
}

func securityHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.Writer.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		h.Set("Content-Security-Policy", "default-src 'self'; style-src 'self' 'unsafe-inline'; img-src 'self' data:; form-action 'self'")
		c.Next()
	}
}
