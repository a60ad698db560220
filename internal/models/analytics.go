package models

// AnalyticsSummary holds portfolio risk metrics computed by the backend.
// Volatility and VaR are fractions (0.25 = 25%), not percentages.
type AnalyticsSummary struct {
	SharpeRatio      float64 `json:"sharpe_ratio"`
	VolatilityAnnual float64 `json:"volatility"`
	VaR95            float64 `json:"var_95"`
	Status           string  `json:"status"`
}

// DCAPlan is a dollar-cost-averaging recommendation derived from the user's
// risk profile.
type DCAPlan struct {
	Type              string   `json:"type"`
	Frequency         string   `json:"frequency"`
	RecommendedAmount float64  `json:"recommended_amount"`
	Rationale         string   `json:"rationale"`
	TargetAssets      []string `json:"target_assets"`
}

// SignalAction is the direction of a rebalancing signal.
type SignalAction string

const (
	ActionBuy  SignalAction = "BUY"
	ActionSell SignalAction = "SELL"
)

// RebalanceSignal flags a holding that has drifted from its target allocation.
type RebalanceSignal struct {
	Asset        string       `json:"asset"`
	Action       SignalAction `json:"action"`
	DeviationPct float64      `json:"deviation_pct"`
	Message      string       `json:"message,omitempty"`
}

// MarketSentiment is the backend's aggregate fear/greed reading.
type MarketSentiment struct {
	Score      int    `json:"score"`
	Label      string `json:"label"`
	Trend      string `json:"trend"`
	Suggestion string `json:"suggestion"`
}

// StrategyRecommendation bundles the DCA plan and rebalancing signals served
// by the strategies endpoint. An empty Signals slice is a meaningful result
// ("no rebalancing needed"), distinct from the recommendation not being
// loaded at all, which is represented by a nil *StrategyRecommendation.
type StrategyRecommendation struct {
	DCAPlan   DCAPlan           `json:"dca_plan"`
	Signals   []RebalanceSignal `json:"rebalancing_signals"`
	Sentiment *MarketSentiment  `json:"market_sentiment,omitempty"`
}
