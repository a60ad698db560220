// Package backend provides a client for the CryptoAI assistant backend API
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/bobmcallan/cryptoai-portal/internal/common"
	"github.com/bobmcallan/cryptoai-portal/internal/interfaces"
	"github.com/bobmcallan/cryptoai-portal/internal/models"
)

const (
	DefaultBaseURL   = "http://localhost:8000"
	DefaultTimeout   = 30 * time.Second
	DefaultRateLimit = 5 // requests per second
)

// Client implements the BackendClient interface
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *common.Logger
	limiter    *rate.Limiter
}

// ClientOption configures the client
type ClientOption func(*Client)

// WithBaseURL sets the base URL
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(baseURL, "/")
	}
}

// WithLogger sets the logger
func WithLogger(logger *common.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithRateLimit sets the rate limit
func WithRateLimit(requestsPerSecond int) ClientOption {
	return func(c *Client) {
		c.limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), requestsPerSecond)
	}
}

// WithTimeout sets the HTTP timeout
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// WithHTTPClient replaces the underlying HTTP client
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// NewClient creates a new backend client
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		limiter: rate.NewLimiter(rate.Limit(DefaultRateLimit), DefaultRateLimit),
		logger:  common.NewSilentLogger(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// APIError represents a non-2xx response from the backend
type APIError struct {
	StatusCode int
	Message    string
	Endpoint   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("backend API error: %s (status: %d, endpoint: %s)", e.Message, e.StatusCode, e.Endpoint)
}

// do performs a rate-limited request and decodes the JSON response into result.
// result may be nil when the response body is irrelevant (ack-only endpoints).
func (c *Client) do(ctx context.Context, method, path string, body, result interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait: %w", err)
	}

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.logger.Debug().Str("method", method).Str("path", path).Msg("Backend API request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		respBody, _ := io.ReadAll(resp.Body)
		return &APIError{
			StatusCode: resp.StatusCode,
			Message:    string(respBody),
			Endpoint:   path,
		}
	}

	if result == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}

func (c *Client) get(ctx context.Context, path string, result interface{}) error {
	return c.do(ctx, http.MethodGet, path, nil, result)
}

func (c *Client) post(ctx context.Context, path string, body, result interface{}) error {
	return c.do(ctx, http.MethodPost, path, body, result)
}

// Chat submits one conversational turn and returns the assistant's reply
func (c *Client) Chat(ctx context.Context, message string) (*models.ChatReply, error) {
	req := chatRequest{Message: message}
	var resp models.ChatReply
	if err := c.post(ctx, "/chat", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

type chatRequest struct {
	Message string `json:"message"`
}

// GetMarketData retrieves the current market snapshot for the given assets.
// When assets is empty the backend's default set is returned.
func (c *Client) GetMarketData(ctx context.Context, assets []string) (models.MarketSnapshot, error) {
	path := "/market-data"
	if len(assets) > 0 {
		path += "?ids=" + url.QueryEscape(strings.Join(assets, ","))
	}

	var snapshot models.MarketSnapshot
	if err := c.get(ctx, path, &snapshot); err != nil {
		return nil, err
	}
	return snapshot, nil
}

// GetPortfolioAnalytics retrieves portfolio risk metrics
func (c *Client) GetPortfolioAnalytics(ctx context.Context) (*models.AnalyticsSummary, error) {
	var resp models.AnalyticsSummary
	if err := c.get(ctx, "/portfolio/analytics", &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetStrategies retrieves the DCA plan and rebalancing signals
func (c *Client) GetStrategies(ctx context.Context) (*models.StrategyRecommendation, error) {
	var resp models.StrategyRecommendation
	if err := c.get(ctx, "/portfolio/strategies", &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetForecast retrieves the price projection for a single asset
func (c *Client) GetForecast(ctx context.Context, asset string) (*models.ForecastSeries, error) {
	var resp models.ForecastSeries
	path := fmt.Sprintf("/market/forecast/%s", url.PathEscape(asset))
	if err := c.get(ctx, path, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetProfile retrieves the stored user profile
func (c *Client) GetProfile(ctx context.Context) (*models.Profile, error) {
	var resp models.Profile
	if err := c.get(ctx, "/profile", &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// SaveProfile persists the user profile
func (c *Client) SaveProfile(ctx context.Context, profile models.Profile) error {
	return c.post(ctx, "/profile", profile, nil)
}

// Health checks backend reachability
func (c *Client) Health(ctx context.Context) error {
	var resp healthResponse
	if err := c.get(ctx, "/health", &resp); err != nil {
		return err
	}
	if resp.Status != "ok" {
		return fmt.Errorf("backend unhealthy: %s", resp.Status)
	}
	return nil
}

type healthResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// Ensure Client implements BackendClient
var _ interfaces.BackendClient = (*Client)(nil)
