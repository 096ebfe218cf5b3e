// Package harvestapi is a typed client for the harvest tracking REST backend.
//
// A Client carries no credentials by default. WithToken returns a view bound
// to one user's bearer token; resource facades hang off that view.
package harvestapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/mamadbah2/harvest-tracker/internal/config"
)

const userAgent = "harvest-tracker/1.0"

// Client is a resty-backed handle on the backend.
type Client struct {
	httpClient *resty.Client
	token      string
	logger     *zap.Logger
}

// NewClient builds an unauthenticated client from the API configuration.
func NewClient(cfg config.APIConfig, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	restyClient := resty.New()
	restyClient.
		SetBaseURL(cfg.BaseURL).
		SetHeader("Accept", "application/json").
		SetHeader("User-Agent", userAgent).
		SetTimeout(timeout)

	return &Client{httpClient: restyClient, logger: logger}
}

// WithToken returns a client that authenticates every request with token.
// The underlying transport is shared.
func (c *Client) WithToken(token string) *Client {
	clone := *c
	clone.token = token
	return &clone
}

// Token returns the bearer token this client is bound to, if any.
func (c *Client) Token() string {
	return c.token
}

// Auth returns the authentication facade.
func (c *Client) Auth() *AuthService { return &AuthService{c: c} }

// Users returns the profile facade.
func (c *Client) Users() *UserService { return &UserService{c: c} }

// Income returns the income entries facade.
func (c *Client) Income() *IncomeService { return &IncomeService{c: c} }

// Expenses returns the expense entries facade.
func (c *Client) Expenses() *ExpenseService { return &ExpenseService{c: c} }

// HarvestSeasons returns the harvest seasons facade.
func (c *Client) HarvestSeasons() *HarvestSeasonService { return &HarvestSeasonService{c: c} }

// Equipment returns the equipment facade.
func (c *Client) Equipment() *EquipmentService { return &EquipmentService{c: c} }

// Revenue returns the harvest revenue facade.
func (c *Client) Revenue() *RevenueService { return &RevenueService{c: c} }

// Summary returns the computed summary facade.
func (c *Client) Summary() *SummaryService { return &SummaryService{c: c} }

// Analytics returns the dashboard analytics facade.
func (c *Client) Analytics() *AnalyticsService { return &AnalyticsService{c: c} }

func (c *Client) request(ctx context.Context) *resty.Request {
	req := c.httpClient.R().SetContext(ctx)
	if c.token != "" {
		req.SetAuthToken(c.token)
	}
	return req
}

func (c *Client) execute(req *resty.Request, method, path string) error {
	start := time.Now()
	resp, err := req.Execute(method, path)
	if err != nil {
		if ctxErr := req.Context().Err(); ctxErr != nil {
			return fmt.Errorf("%s %s: %w", method, path, ctxErr)
		}
		c.logger.Warn("backend request failed", zap.String("method", method), zap.String("path", path), zap.Error(err))
		return fmt.Errorf("%w: %s %s: %v", ErrNetwork, method, path, err)
	}

	c.logger.Debug("backend request completed",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode()),
		zap.Duration("duration", time.Since(start)))

	if resp.StatusCode() >= http.StatusBadRequest {
		return newAPIError(resp.StatusCode(), resp.Body())
	}
	return nil
}

func (c *Client) get(ctx context.Context, path string, query map[string]string, result any) error {
	req := c.request(ctx).SetResult(result)
	if len(query) > 0 {
		req.SetQueryParams(query)
	}
	return c.execute(req, http.MethodGet, path)
}

func (c *Client) send(ctx context.Context, method, path string, body, result any) error {
	req := c.request(ctx)
	if body != nil {
		req.SetBody(body)
	}
	if result != nil {
		req.SetResult(result)
	}
	return c.execute(req, method, path)
}

func idPath(prefix string, id int64) string {
	return prefix + strconv.FormatInt(id, 10)
}

// IsSessionInvalid reports whether err means the bearer token was rejected.
func IsSessionInvalid(err error) bool {
	return errors.Is(err, ErrUnauthorized)
}
