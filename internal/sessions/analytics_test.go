package sessions

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bobmcallan/cryptoai-portal/internal/models"
)

func newAnalytics(h *harness) *AnalyticsSession {
	return NewAnalyticsSession(h.loop, h.backend, h.logger, "bitcoin")
}

// activationCalls collects the three concurrent fetches issued on activation,
// keyed by operation. Goroutine scheduling makes their arrival order
// unpredictable.
func activationCalls(t *testing.T, h *harness) map[string]*backendCall {
	t.Helper()
	calls := make(map[string]*backendCall, 3)
	for i := 0; i < 3; i++ {
		c := h.backend.next(t)
		calls[c.op] = c
	}
	require.Contains(t, calls, "analytics")
	require.Contains(t, calls, "strategies")
	require.Contains(t, calls, "forecast")
	return calls
}

func analyticsState(h *harness, s *AnalyticsSession) (summary *models.AnalyticsSummary, strategies *models.StrategyRecommendation, forecast *models.ForecastSeries, selected string) {
	h.loop.Do(func() {
		summary = s.Summary()
		strategies = s.Strategies()
		forecast = s.Forecast()
		selected = s.SelectedAsset()
	})
	return
}

func TestAnalytics_ActivateIssuesAllFetches(t *testing.T) {
	h := newHarness(t)
	s := newAnalytics(h)

	h.loop.Do(s.Activate)

	calls := activationCalls(t, h)
	assert.Equal(t, "bitcoin", calls["forecast"].arg)

	calls["analytics"].resolve(&models.AnalyticsSummary{SharpeRatio: 1.8, Status: "Healthy"}, nil)
	calls["strategies"].resolve(&models.StrategyRecommendation{
		DCAPlan: models.DCAPlan{Frequency: "Bi-weekly", RecommendedAmount: 10000},
	}, nil)
	calls["forecast"].resolve(&models.ForecastSeries{
		Asset:  "bitcoin",
		Points: []models.ForecastPoint{{Day: 1, Price: 65500, Upper: 66800, Lower: 64200}},
	}, nil)

	h.waitFor(t, "all slots loaded", func() bool {
		return s.Summary() != nil && s.Strategies() != nil && s.Forecast() != nil
	})

	summary, strategies, forecast, selected := analyticsState(h, s)
	assert.Equal(t, 1.8, summary.SharpeRatio)
	assert.Equal(t, "Bi-weekly", strategies.DCAPlan.Frequency)
	assert.Equal(t, "bitcoin", forecast.Asset)
	assert.Equal(t, "bitcoin", selected)
}

func TestAnalytics_SlotFailureIsIsolated(t *testing.T) {
	h := newHarness(t)
	s := newAnalytics(h)

	h.loop.Do(s.Activate)
	calls := activationCalls(t, h)

	calls["analytics"].resolve(nil, errors.New("500 internal"))
	calls["strategies"].resolve(&models.StrategyRecommendation{
		Signals: []models.RebalanceSignal{{Asset: "BTC", Action: models.ActionSell, DeviationPct: 15}},
	}, nil)
	calls["forecast"].resolve(nil, errors.New("timeout"))

	h.waitFor(t, "strategies slot", func() bool { return s.Strategies() != nil })
	h.settle()

	summary, strategies, forecast, _ := analyticsState(h, s)
	assert.Nil(t, summary, "failed slot stays unloaded")
	assert.Nil(t, forecast, "failed slot stays unloaded")
	require.NotNil(t, strategies)
	require.Len(t, strategies.Signals, 1)
	assert.Equal(t, models.ActionSell, strategies.Signals[0].Action)
}

func TestAnalytics_StaleForecastDiscarded(t *testing.T) {
	h := newHarness(t)
	s := newAnalytics(h)

	h.loop.Do(s.Activate)
	calls := activationCalls(t, h)
	calls["analytics"].resolve(&models.AnalyticsSummary{}, nil)
	calls["strategies"].resolve(&models.StrategyRecommendation{}, nil)

	// Selection moves to ethereum while the bitcoin forecast is in flight.
	h.loop.Do(func() { s.SelectAsset("ethereum") })
	ethCall := h.backend.next(t)
	require.Equal(t, "forecast", ethCall.op)
	require.Equal(t, "ethereum", ethCall.arg)

	// The bitcoin response arrives late: it must not become ethereum's series.
	calls["forecast"].resolve(&models.ForecastSeries{Asset: "bitcoin"}, nil)
	h.settle()

	_, _, forecast, selected := analyticsState(h, s)
	assert.Equal(t, "ethereum", selected)
	assert.Nil(t, forecast, "stale response must be discarded")

	// Last selection wins once its own response lands.
	ethCall.resolve(&models.ForecastSeries{Asset: "ethereum"}, nil)
	h.waitFor(t, "ethereum forecast", func() bool { return s.Forecast() != nil })

	_, _, forecast, _ = analyticsState(h, s)
	assert.Equal(t, "ethereum", forecast.Asset)
}

func TestAnalytics_SelectSameAssetNoRefetch(t *testing.T) {
	h := newHarness(t)
	s := newAnalytics(h)

	h.loop.Do(s.Activate)
	calls := activationCalls(t, h)
	calls["analytics"].resolve(&models.AnalyticsSummary{}, nil)
	calls["strategies"].resolve(&models.StrategyRecommendation{}, nil)
	calls["forecast"].resolve(&models.ForecastSeries{Asset: "bitcoin"}, nil)
	h.waitFor(t, "forecast", func() bool { return s.Forecast() != nil })

	h.loop.Do(func() { s.SelectAsset("bitcoin") })
	h.backend.expectNone(t)
}

func TestAnalytics_DeactivateDropsLateResponses(t *testing.T) {
	h := newHarness(t)
	s := newAnalytics(h)

	h.loop.Do(s.Activate)
	calls := activationCalls(t, h)

	h.loop.Do(s.Deactivate)

	calls["analytics"].resolve(&models.AnalyticsSummary{SharpeRatio: 9.9}, nil)
	calls["strategies"].resolve(&models.StrategyRecommendation{}, nil)
	calls["forecast"].resolve(&models.ForecastSeries{Asset: "bitcoin"}, nil)
	h.settle()

	summary, strategies, forecast, _ := analyticsState(h, s)
	assert.Nil(t, summary)
	assert.Nil(t, strategies)
	assert.Nil(t, forecast)
}

func TestAnalytics_ReactivationFetchesFresh(t *testing.T) {
	h := newHarness(t)
	s := newAnalytics(h)

	h.loop.Do(s.Activate)
	calls := activationCalls(t, h)
	calls["analytics"].resolve(&models.AnalyticsSummary{SharpeRatio: 1.0}, nil)
	calls["strategies"].resolve(&models.StrategyRecommendation{}, nil)
	calls["forecast"].resolve(&models.ForecastSeries{Asset: "bitcoin"}, nil)
	h.waitFor(t, "first load", func() bool { return s.Summary() != nil })

	// Selection had moved to solana; re-activation resets to the default.
	h.loop.Do(func() { s.SelectAsset("solana") })
	h.backend.next(t).resolve(&models.ForecastSeries{Asset: "solana"}, nil)

	h.loop.Do(s.Deactivate)
	h.loop.Do(s.Activate)

	// Slots were cleared and all three fetches reissued.
	summary, _, _, selected := analyticsState(h, s)
	assert.Nil(t, summary)
	assert.Equal(t, "bitcoin", selected)

	fresh := activationCalls(t, h)
	assert.Equal(t, "bitcoin", fresh["forecast"].arg)
	fresh["analytics"].resolve(&models.AnalyticsSummary{SharpeRatio: 2.0}, nil)
	fresh["strategies"].resolve(&models.StrategyRecommendation{}, nil)
	fresh["forecast"].resolve(&models.ForecastSeries{Asset: "bitcoin"}, nil)
	h.waitFor(t, "second load", func() bool {
		sum := s.Summary()
		return sum != nil && sum.SharpeRatio == 2.0
	})
}
