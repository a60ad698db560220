package sessions

import (
	"context"

	"github.com/bobmcallan/cryptoai-portal/internal/common"
	"github.com/bobmcallan/cryptoai-portal/internal/interfaces"
	"github.com/bobmcallan/cryptoai-portal/internal/models"
	"github.com/bobmcallan/cryptoai-portal/internal/sessions/dispatch"
)

// AnalyticsSession coordinates the analytics view: a one-shot fetch of the
// portfolio summary and strategy recommendations per activation, and a
// forecast series keyed by the selected asset. The three slots load and fail
// independently; a failure in one never blocks or clears another.
type AnalyticsSession struct {
	loop   *dispatch.Loop
	client interfaces.BackendClient
	logger *common.Logger

	defaultAsset string

	active        bool
	epoch         int // bumped on activate/deactivate; stale results are dropped
	selectedAsset string
	forecastSeq   int // request token; only the latest forecast response applies

	summary    *models.AnalyticsSummary
	strategies *models.StrategyRecommendation
	forecast   *models.ForecastSeries
}

// NewAnalyticsSession creates an inactive session.
func NewAnalyticsSession(loop *dispatch.Loop, client interfaces.BackendClient, logger *common.Logger, defaultAsset string) *AnalyticsSession {
	if defaultAsset == "" {
		defaultAsset = models.DefaultForecastAsset
	}
	return &AnalyticsSession{
		loop:         loop,
		client:       client,
		logger:       logger,
		defaultAsset: defaultAsset,
	}
}

// Active reports whether the session is live.
func (s *AnalyticsSession) Active() bool { return s.active }

// SelectedAsset returns the asset the forecast is keyed to.
func (s *AnalyticsSession) SelectedAsset() string { return s.selectedAsset }

// Summary returns the analytics summary, or nil if not yet loaded.
func (s *AnalyticsSession) Summary() *models.AnalyticsSummary { return s.summary }

// Strategies returns the strategy recommendations, or nil if not yet loaded.
func (s *AnalyticsSession) Strategies() *models.StrategyRecommendation { return s.strategies }

// Forecast returns the forecast series for the selected asset, or nil if not
// yet loaded.
func (s *AnalyticsSession) Forecast() *models.ForecastSeries { return s.forecast }

// Activate resets all data slots and issues the summary, strategies and
// default-asset forecast fetches concurrently. Activating an active session
// is a no-op; nothing is cached across activations.
func (s *AnalyticsSession) Activate() {
	if s.active {
		return
	}
	s.active = true
	s.epoch++
	s.summary = nil
	s.strategies = nil
	s.forecast = nil
	s.selectedAsset = s.defaultAsset

	s.fetchSummary()
	s.fetchStrategies()
	s.fetchForecast(s.selectedAsset)
}

// Deactivate tears the session down. In-flight responses resolve against a
// dead epoch and are discarded.
func (s *AnalyticsSession) Deactivate() {
	if !s.active {
		return
	}
	s.active = false
	s.epoch++
}

// SelectAsset switches the forecast to a new asset and refetches. Selecting
// the current asset is a no-op. A still-in-flight forecast for a previously
// selected asset is superseded: last selection wins, not first response.
func (s *AnalyticsSession) SelectAsset(asset string) {
	if !s.active || asset == "" || asset == s.selectedAsset {
		return
	}
	s.selectedAsset = asset
	s.fetchForecast(asset)
}

func (s *AnalyticsSession) fetchSummary() {
	epoch := s.epoch
	dispatch.Go(s.loop, func() (*models.AnalyticsSummary, error) {
		return s.client.GetPortfolioAnalytics(context.Background())
	}, func(summary *models.AnalyticsSummary, err error) {
		if epoch != s.epoch {
			return
		}
		if err != nil {
			s.logger.Warn().Err(err).Msg("Analytics summary fetch failed")
			return
		}
		s.summary = summary
	})
}

func (s *AnalyticsSession) fetchStrategies() {
	epoch := s.epoch
	dispatch.Go(s.loop, func() (*models.StrategyRecommendation, error) {
		return s.client.GetStrategies(context.Background())
	}, func(strategies *models.StrategyRecommendation, err error) {
		if epoch != s.epoch {
			return
		}
		if err != nil {
			s.logger.Warn().Err(err).Msg("Strategy recommendations fetch failed")
			return
		}
		s.strategies = strategies
	})
}

func (s *AnalyticsSession) fetchForecast(asset string) {
	s.forecastSeq++
	seq := s.forecastSeq
	epoch := s.epoch
	dispatch.Go(s.loop, func() (*models.ForecastSeries, error) {
		return s.client.GetForecast(context.Background(), asset)
	}, func(series *models.ForecastSeries, err error) {
		if epoch != s.epoch || seq != s.forecastSeq {
			return
		}
		if err != nil {
			s.logger.Warn().Err(err).Str("asset", asset).Msg("Forecast fetch failed")
			return
		}
		s.forecast = series
	})
}
