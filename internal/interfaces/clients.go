// Package interfaces defines client and session contracts for the portal.
package interfaces

import (
	"context"

	"github.com/bobmcallan/cryptoai-portal/internal/models"
)

// BackendClient provides typed access to the assistant backend API.
// Implementations normalize all transport failures (network unreachable,
// non-2xx status, undecodable body) into ordinary errors; callers at the
// session layer convert those into local fallbacks and never surface them.
type BackendClient interface {
	// Chat submits one conversational turn and returns the assistant's reply.
	Chat(ctx context.Context, message string) (*models.ChatReply, error)

	// GetMarketData retrieves the current market snapshot for the given assets.
	GetMarketData(ctx context.Context, assets []string) (models.MarketSnapshot, error)

	// GetPortfolioAnalytics retrieves portfolio risk metrics.
	GetPortfolioAnalytics(ctx context.Context) (*models.AnalyticsSummary, error)

	// GetStrategies retrieves the DCA plan and rebalancing signals.
	GetStrategies(ctx context.Context) (*models.StrategyRecommendation, error)

	// GetForecast retrieves the price projection for a single asset.
	GetForecast(ctx context.Context, asset string) (*models.ForecastSeries, error)

	// GetProfile retrieves the stored user profile.
	GetProfile(ctx context.Context) (*models.Profile, error)

	// SaveProfile persists the user profile.
	SaveProfile(ctx context.Context, profile models.Profile) error

	// Health checks backend reachability.
	Health(ctx context.Context) error
}
